package labels

import "log/slog"

// detectorOptions holds internal configuration options for the Detector.
type detectorOptions struct {
	// logger for structured logging (nil = no logging)
	logger *slog.Logger

	// maxLabels bounds how many labels a single detection call returns
	maxLabels int

	// minConfidence filters labels below this confidence (0-100 scale)
	minConfidence float64
}

// Option configures a Detector.
type Option func(*detectorOptions)

// WithLogger sets a custom logger for the Detector.
// If not set, no logging will be performed.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *detectorOptions) {
		opts.logger = logger
	}
}

// WithMaxLabels overrides the maximum number of labels returned per object.
// Values below one fall back to the default.
func WithMaxLabels(n int) Option {
	return func(opts *detectorOptions) {
		if n > 0 {
			opts.maxLabels = n
		}
	}
}

// WithMinConfidence overrides the confidence threshold (0-100 scale).
// Negative values fall back to the default.
func WithMinConfidence(c float64) Option {
	return func(opts *detectorOptions) {
		if c >= 0 {
			opts.minConfidence = c
		}
	}
}

// defaultOptions returns the default detector options.
func defaultOptions() *detectorOptions {
	return &detectorOptions{
		logger:        nil,
		maxLabels:     DefaultMaxLabels,
		minConfidence: DefaultMinConfidence,
	}
}

// applyOptions applies the given options to the detector options.
func applyOptions(options *detectorOptions, opts []Option) {
	for _, opt := range opts {
		opt(options)
	}
}
