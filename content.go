package presencex

import (
	"strconv"

	"github.com/comalice/presencex/dom"
	"github.com/comalice/presencex/realtime"
)

const (
	// HeightProperty carries the measured content height, e.g. "120px".
	HeightProperty = "--collapsible-content-height"
	// WidthProperty carries the measured content width.
	WidthProperty = "--collapsible-content-width"
)

// FrameScheduler runs callbacks on the next animation frame.
// *realtime.FrameLoop implements it.
type FrameScheduler interface {
	RequestFrame(fn func()) (realtime.FrameID, error)
	CancelFrame(id realtime.FrameID) bool
}

// ContentOptions configures a Content.
type ContentOptions struct {
	// ForceMount keeps the content present even while closed, for callers
	// that drive the animation themselves.
	ForceMount bool
	// Ref is attached to the content element alongside the tracker.
	Ref dom.Ref
	// OnInvalidate is called when an exit finishes outside Render, so the
	// host renders again.
	OnInvalidate func()
	// Options configure the content's presence tracker.
	Options []Option
}

// Content is the collapsible region. Before every open or close it
// measures the element's natural size with animations pinned off and
// publishes it through HeightProperty and WidthProperty.
type Content struct {
	root     *Collapsible
	platform dom.Platform
	presence *Presence
	frames   FrameScheduler
	opts     ContentOptions
	ref      dom.Ref

	node      dom.Element
	isPresent bool
	dims      dom.Rect

	original       map[string]string
	mountPrevented bool
	frameID        realtime.FrameID

	// layout deps of the last measurement
	measured    bool
	lastOpen    bool
	lastPresent bool
	pending     bool

	rendering    bool
	cancelChange func()
}

// NewContent returns the content region of root. frames may be nil, in
// which case mount animations are suppressed for the first render only.
func NewContent(root *Collapsible, platform dom.Platform, frames FrameScheduler, opts ContentOptions) *Content {
	present := opts.ForceMount || root.Open()
	c := &Content{
		root:      root,
		platform:  platform,
		presence:  New(platform, present, opts.Options...),
		frames:    frames,
		opts:      opts,
		isPresent: present,
	}
	c.ref = ComposeRefs(opts.Ref, c.attach)
	c.mountPrevented = root.Open() || c.isPresent
	if frames != nil {
		if id, err := frames.RequestFrame(c.allowMountAnimation); err == nil {
			c.frameID = id
		} else {
			c.mountPrevented = false
		}
	}
	c.cancelChange = c.presence.Tracker().OnChange(func(_, _ State) {
		if !c.rendering && c.opts.OnInvalidate != nil {
			c.opts.OnInvalidate()
		}
	})
	return c
}

// Tracker returns the content's presence tracker.
func (c *Content) Tracker() *Tracker {
	return c.presence.Tracker()
}

// Dimensions returns the most recently captured size.
func (c *Content) Dimensions() dom.Rect {
	return c.dims
}

// Render renders the content node. children are included only while open
// or while the close animation plays; otherwise the node is hidden.
//
// The element is measured before the tracker sees the new open value, so
// styles pinned by an earlier measurement are restored before the tracker
// reads the animation-name.
func (c *Content) Render(children ...*dom.Node) (*dom.Node, error) {
	c.rendering = true
	defer func() { c.rendering = false }()

	open := c.root.Open()
	c.sync(open, c.presence.Tracker().Visible())
	return c.presence.Render(c.opts.ForceMount || open, RenderFunc(func(p Props) *dom.Node {
		c.sync(open, p.Present)
		return c.build(open, children)
	}))
}

// Close cancels the pending first-frame callback and releases the
// tracker's listeners.
func (c *Content) Close() error {
	if c.frames != nil && c.frameID != 0 {
		c.frames.CancelFrame(c.frameID)
		c.frameID = 0
	}
	if c.cancelChange != nil {
		c.cancelChange()
		c.cancelChange = nil
	}
	return c.presence.Tracker().Close()
}

// sync measures again whenever open or the resolved presence changed
// since the last measurement.
func (c *Content) sync(open, present bool) {
	if !c.measured || open != c.lastOpen || present != c.lastPresent {
		c.measured = true
		c.lastOpen, c.lastPresent = open, present
		c.pending = true
	}
	if c.pending && c.node != nil {
		c.layout()
	}
}

func (c *Content) build(open bool, children []*dom.Node) *dom.Node {
	isOpen := open || c.isPresent
	n := &dom.Node{Tag: "div", Ref: c.ref}
	n.SetAttr("data-state", openState(open)).SetAttr("id", c.root.ContentID())
	if c.root.Disabled() {
		n.SetAttr("data-disabled", "")
	}
	if !isOpen {
		n.SetAttr("hidden", "")
	}
	if c.dims.Height != 0 {
		n.SetStyle(HeightProperty, px(c.dims.Height))
	}
	if c.dims.Width != 0 {
		n.SetStyle(WidthProperty, px(c.dims.Width))
	}
	if isOpen {
		n.Children = children
	}
	return n
}

// layout measures the element at its full size and settles isPresent.
func (c *Content) layout() {
	c.pending = false
	el := c.node
	if c.original == nil {
		c.original = map[string]string{
			dom.PropTransitionDuration: c.platform.InlineStyle(el, dom.PropTransitionDuration),
			dom.PropAnimationName:      c.platform.InlineStyle(el, dom.PropAnimationName),
		}
	}
	c.platform.SetInlineStyle(el, dom.PropTransitionDuration, "0s")
	c.platform.SetInlineStyle(el, dom.PropAnimationName, dom.AnimationNone)
	c.platform.ForceLayout(el)
	c.dims = c.platform.BoundingRect(el)

	if !c.mountPrevented {
		c.platform.SetInlineStyle(el, dom.PropTransitionDuration, c.original[dom.PropTransitionDuration])
		c.platform.SetInlineStyle(el, dom.PropAnimationName, c.original[dom.PropAnimationName])
	}
	if c.frames == nil {
		c.mountPrevented = false
	}
	c.isPresent = c.lastPresent
}

func (c *Content) attach(el dom.Element) {
	c.node = el
	if el == nil || !c.pending {
		return
	}
	wasPresent := c.isPresent
	c.layout()
	if c.isPresent != wasPresent && !c.rendering && c.opts.OnInvalidate != nil {
		c.opts.OnInvalidate()
	}
}

func (c *Content) allowMountAnimation() {
	c.mountPrevented = false
	c.frameID = 0
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
