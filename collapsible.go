package presencex

import (
	"strconv"
	"sync/atomic"

	"github.com/comalice/presencex/dom"
)

var contentIDs atomic.Uint64

// CollapsibleOptions configures a Collapsible.
type CollapsibleOptions struct {
	// Open makes the collapsible controlled: its open state only changes
	// through SetControlledOpen, and SetOpen/Toggle only report the
	// requested value to OnOpenChange.
	Open         *bool
	DefaultOpen  bool
	Disabled     bool
	ContentID    string // generated when empty
	OnOpenChange func(open bool)
}

// Collapsible is the open/closed state shared by a disclosure trigger and
// its Content.
type Collapsible struct {
	open         bool
	controlled   bool
	disabled     bool
	contentID    string
	onOpenChange func(bool)
}

// NewCollapsible returns a Collapsible configured by opts.
func NewCollapsible(opts CollapsibleOptions) *Collapsible {
	c := &Collapsible{
		open:         opts.DefaultOpen,
		disabled:     opts.Disabled,
		contentID:    opts.ContentID,
		onOpenChange: opts.OnOpenChange,
	}
	if opts.Open != nil {
		c.controlled = true
		c.open = *opts.Open
	}
	if c.contentID == "" {
		c.contentID = "collapsible-content-" + strconv.FormatUint(contentIDs.Add(1), 10)
	}
	return c
}

// Open reports whether the collapsible is open.
func (c *Collapsible) Open() bool { return c.open }

// Disabled reports whether the trigger ignores clicks.
func (c *Collapsible) Disabled() bool { return c.disabled }

// ContentID is the id shared by the content node and the trigger's
// aria-controls.
func (c *Collapsible) ContentID() string { return c.contentID }

// State returns "open" or "closed", the value of data-state.
func (c *Collapsible) State() string { return openState(c.open) }

// SetOpen requests a new open state. Uncontrolled collapsibles apply it;
// OnOpenChange is called whenever it differs from the current state.
func (c *Collapsible) SetOpen(open bool) {
	if open == c.open {
		return
	}
	if !c.controlled {
		c.open = open
	}
	if c.onOpenChange != nil {
		c.onOpenChange(open)
	}
}

// Toggle requests the opposite of the current open state.
func (c *Collapsible) Toggle() {
	c.SetOpen(!c.open)
}

// SetControlledOpen applies an open value owned by the caller and makes
// the collapsible controlled.
func (c *Collapsible) SetControlledOpen(open bool) {
	c.controlled = true
	c.open = open
}

// SetDisabled enables or disables the trigger.
func (c *Collapsible) SetDisabled(disabled bool) {
	c.disabled = disabled
}

// Trigger returns the button node that toggles the collapsible. onClick,
// when set, runs first and may call PreventDefault to keep the state.
func (c *Collapsible) Trigger(onClick dom.EventHandler) *dom.Node {
	n := &dom.Node{Tag: "button"}
	n.SetAttr("type", "button").
		SetAttr("aria-controls", c.contentID).
		SetAttr("aria-expanded", strconv.FormatBool(c.open)).
		SetAttr("data-state", c.State())
	if c.disabled {
		n.SetAttr("data-disabled", "").SetAttr("disabled", "")
	}
	n.OnClick = ComposeEventHandlers(onClick, func(*dom.Event) {
		if !c.disabled {
			c.Toggle()
		}
	})
	return n
}

func openState(open bool) string {
	if open {
		return "open"
	}
	return "closed"
}
