// Options for configuring Machine instances.
package core

import "log/slog"

type options struct {
	id         string
	logger     *slog.Logger
	hooks      []Hook
	publishers []EventPublisher
	persister  Persister
}

// Option applies configuration to a Machine via the functional options
// pattern.
type Option func(*options)

// WithID sets the machine identifier.
func WithID(id string) Option {
	return func(o *options) {
		if id != "" {
			o.id = id
		}
	}
}

// WithLogger sets the logger used to report publish and persist failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithHook adds a synchronous state-change hook.
func WithHook(h Hook) Option {
	return func(o *options) {
		if h != nil {
			o.hooks = append(o.hooks, h)
		}
	}
}

// WithPublisher adds an EventPublisher. May be given more than once.
func WithPublisher(p EventPublisher) Option {
	return func(o *options) {
		if p != nil {
			o.publishers = append(o.publishers, p)
		}
	}
}

// WithPersister configures snapshot persistence after each state change.
func WithPersister(p Persister) Option {
	return func(o *options) {
		o.persister = p
	}
}
