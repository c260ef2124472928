package ui

import (
	"io"

	"github.com/charmbracelet/log"
)

// Option configures the shell and the TUI.
type Option func(*options)

type options struct {
	capitalize bool
	noColor    bool
	logger     *log.Logger
}

func applyOptions(opts []Option) options {
	o := options{
		capitalize: true,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithCapitalize toggles capitalization of entered task names. It is on by default.
func WithCapitalize(enabled bool) Option {
	return func(o *options) {
		o.capitalize = enabled
	}
}

// WithNoColor disables styling even on a terminal.
func WithNoColor(disabled bool) Option {
	return func(o *options) {
		o.noColor = disabled
	}
}

// WithLogger sets the logger used for failed operations.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
