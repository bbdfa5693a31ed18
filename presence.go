package presencex

import (
	"fmt"

	"github.com/comalice/presencex/dom"
)

// Props is passed to a RenderFunc.
type Props struct {
	// Present is the tracker's resolved visibility, which stays true while
	// an exit animation plays.
	Present bool
}

// RenderFunc renders a child that stays mounted regardless of visibility.
type RenderFunc func(Props) *dom.Node

// Presence is a conditional-render boundary that keeps its child rendered
// until the child's exit animation finishes.
type Presence struct {
	tracker *Tracker
}

// New returns a Presence whose child starts rendered iff present.
func New(platform dom.Platform, present bool, opts ...Option) *Presence {
	return &Presence{tracker: NewTracker(platform, present, opts...)}
}

// Tracker returns the underlying tracker.
func (p *Presence) Tracker() *Tracker {
	return p.tracker
}

// Render applies present and renders the single child.
//
// A *dom.Node child is returned only while visible. A RenderFunc (or plain
// func(Props) *dom.Node) is always invoked with the resolved visibility and
// its node is always returned, leaving visibility to the caller. Either
// way the returned node is a clone whose Ref also attaches the tracker.
func (p *Presence) Render(present bool, children ...any) (*dom.Node, error) {
	node, render, err := onlyChild(children)
	if err != nil {
		return nil, err
	}

	p.tracker.SetPresent(present)
	visible := p.tracker.Visible()

	if render != nil {
		node = render(Props{Present: visible})
		if node == nil {
			return nil, &ChildError{Count: 1, Reason: "render function returned no node"}
		}
	} else if !visible {
		return nil, nil
	}

	out := node.Clone()
	out.Ref = ComposeRefs(p.tracker.Ref(), node.Ref)
	return out, nil
}

func onlyChild(children []any) (*dom.Node, RenderFunc, error) {
	if len(children) != 1 {
		return nil, nil, &ChildError{
			Count:  len(children),
			Reason: "expected exactly one node or render function",
		}
	}
	switch c := children[0].(type) {
	case *dom.Node:
		if c == nil {
			return nil, nil, &ChildError{Count: 1, Reason: "child node is nil"}
		}
		return c, nil, nil
	case RenderFunc:
		if c == nil {
			return nil, nil, &ChildError{Count: 1, Reason: "render function is nil"}
		}
		return nil, c, nil
	case func(Props) *dom.Node:
		if c == nil {
			return nil, nil, &ChildError{Count: 1, Reason: "render function is nil"}
		}
		return nil, RenderFunc(c), nil
	default:
		return nil, nil, &ChildError{
			Count:  1,
			Type:   fmt.Sprintf("%T", children[0]),
			Reason: "child must be a *dom.Node or a render function",
		}
	}
}
