package storage

import (
	"log/slog"

	"github.com/visionforge/labelpipe/internal/fsys"
)

// clientOptions holds configuration options for the storage client.
type clientOptions struct {
	logger     *slog.Logger
	filesystem fsys.Filesystem
}

// Option is a functional option for configuring the Client.
type Option func(*clientOptions)

// WithLogger configures the client with a custom logger.
// If logger is nil, logging will be disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *clientOptions) {
		opts.logger = logger
	}
}

// WithFilesystem configures the client with a filesystem implementation.
// Tests use this to read upload sources from an in-memory filesystem.
func WithFilesystem(filesystem fsys.Filesystem) Option {
	return func(opts *clientOptions) {
		opts.filesystem = filesystem
	}
}

// defaultOptions returns the default configuration options.
func defaultOptions() *clientOptions {
	return &clientOptions{
		logger:     nil,               // No default logger
		filesystem: fsys.NewOSFS("/"), // OS filesystem rooted at /
	}
}

// applyOptions applies the given options to the client options.
func applyOptions(opts *clientOptions, options []Option) {
	for _, option := range options {
		option(opts)
	}
}
