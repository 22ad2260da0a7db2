package pipeline

import (
	"log/slog"

	"github.com/visionforge/labelpipe/internal/fsys"
)

// pipelineOptions holds internal configuration options for the Pipeline.
type pipelineOptions struct {
	// logger for structured logging (nil = no logging)
	logger *slog.Logger

	// filesystem used for writing report outputs
	filesystem fsys.Filesystem
}

// Option configures a Pipeline.
type Option func(*pipelineOptions)

// WithLogger sets a custom logger for the Pipeline.
// If not set, no logging will be performed.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *pipelineOptions) {
		opts.logger = logger
	}
}

// WithFilesystem sets a custom filesystem implementation for report
// outputs. If not set, the OS filesystem is used.
func WithFilesystem(filesystem fsys.Filesystem) Option {
	return func(opts *pipelineOptions) {
		if filesystem != nil {
			opts.filesystem = filesystem
		}
	}
}

// defaultOptions returns the default pipeline options.
func defaultOptions() *pipelineOptions {
	return &pipelineOptions{
		logger:     nil,
		filesystem: fsys.NewOSFS("/"),
	}
}

// applyOptions applies the given options to the pipeline options.
func applyOptions(options *pipelineOptions, opts []Option) {
	for _, opt := range opts {
		opt(options)
	}
}
