package presencex

import (
	"log/slog"

	"github.com/comalice/presencex/internal/core"
	"github.com/comalice/presencex/internal/extensibility"
)

type trackerOptions struct {
	id         string
	logger     *slog.Logger
	publishers []EventPublisher
	persister  Persister
}

// Option configures a Tracker and the wrappers that own one.
type Option func(*trackerOptions)

// WithID names the tracker's machine in logs, published metadata and
// snapshots. Default "presence".
func WithID(id string) Option {
	return func(o *trackerOptions) {
		if id != "" {
			o.id = id
		}
	}
}

// WithLogger logs every transition at debug level and publish or persist
// failures at warn level.
func WithLogger(l *slog.Logger) Option {
	return func(o *trackerOptions) {
		o.logger = l
	}
}

// WithPublisher forwards every transition to p. May be given more than
// once.
func WithPublisher(p EventPublisher) Option {
	return func(o *trackerOptions) {
		if p != nil {
			o.publishers = append(o.publishers, p)
		}
	}
}

// WithPersister saves a snapshot after every transition.
func WithPersister(p Persister) Option {
	return func(o *trackerOptions) {
		o.persister = p
	}
}

func (o trackerOptions) machineOptions(hook core.Hook) []core.Option {
	opts := []core.Option{core.WithID(o.id), core.WithHook(hook)}
	if o.logger != nil {
		opts = append(opts,
			core.WithLogger(o.logger),
			core.WithHook(extensibility.NewLoggingHook(o.logger)),
		)
	}
	for _, p := range o.publishers {
		opts = append(opts, core.WithPublisher(p))
	}
	if o.persister != nil {
		opts = append(opts, core.WithPersister(o.persister))
	}
	return opts
}
