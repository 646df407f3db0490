package platform

import (
	"log/slog"
)

// options holds the internal configuration for opening a stack store.
type options struct {
	logger       *slog.Logger
	storage      string
	readOnly     bool
	mustExist    bool
	strict       bool
	errorHandler func(error)
}

// Option defines a functional option for configuring the store.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		storage: "json",
	}
}

// WithLogger sets the logger used by the store.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStorage selects the file format for new stacks ("json" or "yaml").
// Existing stacks keep whatever format they were written in.
func WithStorage(format string) Option {
	return func(o *options) {
		if format != "" {
			o.storage = format
		}
	}
}

// WithReadOnly enables read-only mode.
// Saves return core.ErrReadOnly and the data directory is never created.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithMustExist ensures the data directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithStrict rejects stack files carrying unknown fields.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithWatcherErrorHandler registers a callback for errors raised while
// watching a stack, which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}
