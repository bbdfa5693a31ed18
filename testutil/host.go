package testutil

import (
	"github.com/comalice/presencex/dom"
)

// Host mounts one rendered node at a time into a single slot, calling the
// node's Ref on attach and detach the way a rendering tree would.
type Host struct {
	platform *FakePlatform
	id       string

	// OnMount, when set, runs on every fresh element before any ref sees
	// it, standing in for stylesheet rules that apply on insertion.
	OnMount func(el *Element)

	node    *dom.Node
	element *Element
}

// NewHost returns a host whose element, once mounted, has the given id.
// An empty id is generated.
func NewHost(platform *FakePlatform, id string) *Host {
	return &Host{platform: platform, id: id}
}

// Commit makes node the slot's content. A nil node unmounts the current
// one; a non-nil node reuses the mounted element, or creates and attaches
// a fresh one when the slot was empty.
func (h *Host) Commit(node *dom.Node) *Element {
	prev := h.node
	h.node = node
	switch {
	case node == nil && prev != nil:
		h.detach(prev)
	case node != nil && prev == nil:
		h.element = h.platform.NewElement(h.id)
		if h.OnMount != nil {
			h.OnMount(h.element)
		}
		if node.Ref != nil {
			node.Ref(h.element)
		}
	}
	if node == nil {
		return nil
	}
	return h.element
}

// Unmount detaches the current node, if any.
func (h *Host) Unmount() {
	h.Commit(nil)
}

// Remount destroys the current element and mounts node on a fresh one.
func (h *Host) Remount(node *dom.Node) *Element {
	h.Unmount()
	return h.Commit(node)
}

func (h *Host) detach(n *dom.Node) {
	if n.Ref != nil {
		n.Ref(nil)
	}
}

// Node returns the committed node, or nil.
func (h *Host) Node() *dom.Node { return h.node }

// Element returns the most recently mounted element. It survives
// unmounting so tests can keep firing events at it; nil until the first
// mount.
func (h *Host) Element() *Element { return h.element }

// Mounted reports whether a node is committed.
func (h *Host) Mounted() bool { return h.node != nil }

// Click delivers a click to the committed node's OnClick handler.
func (h *Host) Click() *dom.Event {
	ev := &dom.Event{Type: "click"}
	if h.element != nil {
		ev.Target = h.element
	}
	if h.node != nil && h.node.OnClick != nil {
		h.node.OnClick(ev)
	}
	return ev
}
