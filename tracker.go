package presencex

import (
	"github.com/comalice/presencex/dom"
	"github.com/comalice/presencex/internal/core"
)

// State is a presence lifecycle state.
type State string

const (
	// StateMounted: visible and not exiting.
	StateMounted State = "mounted"
	// StateUnmountSuspended: present is false but an exit animation is
	// still playing, so the element stays rendered.
	StateUnmountSuspended State = "unmount-suspended"
	// StateUnmounted: not rendered.
	StateUnmounted State = "unmounted"
)

// Event drives the presence machine.
type Event string

const (
	EventExitWithAnimation Event = "EXIT_REQUESTED_WITH_ANIM"
	EventExitNoAnimation   Event = "EXIT_REQUESTED_NO_ANIM"
	EventReenter           Event = "REENTER"
	EventAnimationFinished Event = "ANIMATION_FINISHED"
	EventEnterRequested    Event = "ENTER_REQUESTED"
)

// presenceTable is shared read-only by every Tracker.
var presenceTable = Table[State, Event]{
	StateMounted: {
		EventExitWithAnimation: StateUnmountSuspended,
		EventExitNoAnimation:   StateUnmounted,
	},
	StateUnmountSuspended: {
		EventReenter:           StateMounted,
		EventAnimationFinished: StateUnmounted,
	},
	StateUnmounted: {
		EventEnterRequested: StateMounted,
	},
}

func init() {
	if err := presenceTable.Validate(); err != nil {
		panic(err)
	}
}

// PresenceTable returns a copy of the presence transition table.
func PresenceTable() Table[State, Event] {
	out := make(Table[State, Event], len(presenceTable))
	for s, events := range presenceTable {
		row := make(map[Event]State, len(events))
		for e, to := range events {
			row[e] = to
		}
		out[s] = row
	}
	return out
}

// Tracker resolves whether one element must stay rendered after its
// present flag goes false, holding it until its exit animation ends.
//
// A Tracker is driven from the host's UI loop and is not safe for
// concurrent use.
type Tracker struct {
	platform dom.Platform
	machine  *core.Machine[State, Event]
	ref      dom.Ref

	node      dom.Element
	unsubs    []func()
	listeners []changeListener
	nextID    int

	prevPresent       bool
	prevAnimationName string
}

type changeListener struct {
	id int
	fn func(from, to State)
}

// NewTracker returns a Tracker that starts mounted iff present.
func NewTracker(platform dom.Platform, present bool, opts ...Option) *Tracker {
	o := trackerOptions{id: "presence"}
	for _, opt := range opts {
		opt(&o)
	}

	t := &Tracker{
		platform:          platform,
		prevPresent:       present,
		prevAnimationName: dom.AnimationNone,
	}
	t.ref = t.attach

	initial := StateUnmounted
	if present {
		initial = StateMounted
	}
	m, err := core.NewMachine(presenceTable, initial, o.machineOptions(t.onTransition)...)
	if err != nil {
		// presenceTable is validated in init and initial is one of its keys.
		panic(err)
	}
	t.machine = m
	return t
}

// State returns the current lifecycle state.
func (t *Tracker) State() State {
	return t.machine.State()
}

// Visible reports whether the element must be rendered.
func (t *Tracker) Visible() bool {
	s := t.machine.State()
	return s == StateMounted || s == StateUnmountSuspended
}

// Element returns the attached element, or nil.
func (t *Tracker) Element() dom.Element {
	return t.node
}

// Ref returns the attach handle to bind to the rendered element. The same
// Ref is returned on every call.
func (t *Tracker) Ref() dom.Ref {
	return t.ref
}

// Machine exposes the underlying state machine for snapshots and
// inspection.
func (t *Tracker) Machine() *Machine[State, Event] {
	return t.machine
}

// OnChange registers fn to run after every state change. The returned
// func unregisters it.
func (t *Tracker) OnChange(fn func(from, to State)) (cancel func()) {
	t.nextID++
	id := t.nextID
	t.listeners = append(t.listeners, changeListener{id: id, fn: fn})
	return func() {
		for i, l := range t.listeners {
			if l.id == id {
				t.listeners = append(t.listeners[:i:i], t.listeners[i+1:]...)
				return
			}
		}
	}
}

// SetPresent applies a new present value. The host must already have
// applied the matching styles to the element, so the animation-name read
// here is the one the change produced.
func (t *Tracker) SetPresent(present bool) {
	wasPresent := t.prevPresent
	if wasPresent == present {
		return
	}
	t.prevPresent = present

	if present {
		if t.machine.State() == StateUnmountSuspended {
			t.machine.Dispatch(EventReenter)
		} else {
			t.machine.Dispatch(EventEnterRequested)
		}
		return
	}

	style := t.computedStyle()
	current := animationName(style)
	if current == dom.AnimationNone || style.Display == dom.DisplayNone {
		// Nothing can play on a hidden or unanimated element.
		t.machine.Dispatch(EventExitNoAnimation)
		return
	}

	// animationstart fires after animation-delay, too late to decide here,
	// so a changed animation-name is what marks an exit animation.
	isAnimating := t.prevAnimationName != current
	if wasPresent && isAnimating {
		t.machine.Dispatch(EventExitWithAnimation)
	} else {
		t.machine.Dispatch(EventExitNoAnimation)
	}
}

// Close releases the element's listeners and closes any publishers.
func (t *Tracker) Close() error {
	t.unsubscribe()
	t.node = nil
	return t.machine.Close()
}

func (t *Tracker) attach(el dom.Element) {
	if el == t.node {
		return
	}
	t.unsubscribe()
	t.node = el

	if el == nil {
		// Detached before its animation could report back.
		t.machine.Dispatch(EventAnimationFinished)
		return
	}

	t.unsubs = append(t.unsubs,
		t.platform.AddAnimationListener(el, dom.AnimationStart, t.handleAnimationStart),
		t.platform.AddAnimationListener(el, dom.AnimationCancel, t.handleAnimationEnd),
		t.platform.AddAnimationListener(el, dom.AnimationEnd, t.handleAnimationEnd),
	)
	t.refreshBaseline()
}

func (t *Tracker) unsubscribe() {
	for _, remove := range t.unsubs {
		if remove != nil {
			remove()
		}
	}
	t.unsubs = nil
}

func (t *Tracker) handleAnimationStart(ev dom.AnimationEvent) {
	if ev.Target != t.node {
		return
	}
	t.prevAnimationName = animationName(t.computedStyle())
}

// handleAnimationEnd finishes the exit only for the animation currently
// applied; an interrupted enter animation cancels after the exit began.
func (t *Tracker) handleAnimationEnd(ev dom.AnimationEvent) {
	if ev.Target != t.node {
		return
	}
	if dom.HasAnimation(animationName(t.computedStyle()), ev.AnimationName) {
		t.machine.Dispatch(EventAnimationFinished)
	}
}

func (t *Tracker) onTransition(md MachineMetadata) {
	t.refreshBaseline()
	from, to := State(md.From), State(md.To)
	for _, l := range append([]changeListener(nil), t.listeners...) {
		l.fn(from, to)
	}
}

func (t *Tracker) refreshBaseline() {
	if t.machine != nil && t.machine.State() == StateMounted {
		t.prevAnimationName = animationName(t.computedStyle())
		return
	}
	t.prevAnimationName = dom.AnimationNone
}

func (t *Tracker) computedStyle() dom.ComputedStyle {
	if t.node == nil {
		return dom.ComputedStyle{}
	}
	return t.platform.ComputedStyle(t.node)
}

func animationName(style dom.ComputedStyle) string {
	if style.AnimationName == "" {
		return dom.AnimationNone
	}
	return style.AnimationName
}
