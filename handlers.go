package presencex

import "github.com/comalice/presencex/dom"

type composeOptions struct {
	checkDefaultPrevented bool
}

// ComposeOption configures ComposeEventHandlers.
type ComposeOption func(*composeOptions)

// WithoutDefaultPreventedCheck makes the composed handler run ours even
// when original called PreventDefault.
func WithoutDefaultPreventedCheck() ComposeOption {
	return func(o *composeOptions) {
		o.checkDefaultPrevented = false
	}
}

// ComposeEventHandlers returns a handler that calls original and then ours.
// ours is skipped when original prevented the event's default.
func ComposeEventHandlers(original, ours dom.EventHandler, opts ...ComposeOption) dom.EventHandler {
	o := composeOptions{checkDefaultPrevented: true}
	for _, opt := range opts {
		opt(&o)
	}
	return func(ev *dom.Event) {
		if original != nil {
			original(ev)
		}
		if ours == nil {
			return
		}
		if !o.checkDefaultPrevented || !ev.DefaultPrevented() {
			ours(ev)
		}
	}
}
