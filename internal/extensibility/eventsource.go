package extensibility

import (
	"errors"

	"github.com/comalice/presencex/dom"
)

// ErrQueueFull is returned by Push when the source buffer is full.
var ErrQueueFull = errors.New("animation event queue full (backpressure)")

// ChannelEventSource buffers animation events produced while a platform
// steps its animations, so they can be delivered afterwards on the UI
// loop in the order they were produced.
type ChannelEventSource struct {
	ch chan dom.AnimationEvent
}

// NewChannelEventSource creates a ChannelEventSource buffering up to size
// events.
func NewChannelEventSource(size int) *ChannelEventSource {
	if size <= 0 {
		size = 64
	}
	return &ChannelEventSource{ch: make(chan dom.AnimationEvent, size)}
}

// Push enqueues ev without blocking.
func (s *ChannelEventSource) Push(ev dom.AnimationEvent) error {
	select {
	case s.ch <- ev:
		return nil
	default:
		return ErrQueueFull
	}
}

// Events returns the receive-only channel for events.
func (s *ChannelEventSource) Events() <-chan dom.AnimationEvent {
	return s.ch
}

// Len returns the number of queued events.
func (s *ChannelEventSource) Len() int {
	return len(s.ch)
}

// Drain delivers every event queued at call time to fn, in push order, and
// returns how many were delivered. Events pushed by fn are left for the
// next Drain.
func (s *ChannelEventSource) Drain(fn func(dom.AnimationEvent)) int {
	n := len(s.ch)
	for i := 0; i < n; i++ {
		fn(<-s.ch)
	}
	return n
}

// Close closes the channel. Push must not be called afterwards.
func (s *ChannelEventSource) Close() {
	close(s.ch)
}
