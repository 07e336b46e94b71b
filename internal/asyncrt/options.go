package asyncrt

import (
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// runtimeOptions holds configuration resolved from Option values.
type runtimeOptions struct {
	logger *logiface.Logger[*stumpy.Event]
}

// Option configures a Runtime.
type Option interface {
	applyRuntime(*runtimeOptions)
}

type optionFunc func(*runtimeOptions)

func (f optionFunc) applyRuntime(o *runtimeOptions) { f(o) }

// WithLogger sets the structured logger the runtime uses for lifecycle,
// dismissal, and I/O-failure diagnostics. A nil logger (the default)
// disables logging entirely.
func WithLogger(l *logiface.Logger[*stumpy.Event]) Option {
	return optionFunc(func(o *runtimeOptions) {
		o.logger = l
	})
}

func resolveOptions(opts []Option) *runtimeOptions {
	cfg := &runtimeOptions{}
	for _, o := range opts {
		if o == nil {
			continue
		}
		o.applyRuntime(cfg)
	}
	return cfg
}
