package dom

// Node is the renderable value produced by wrappers. Hosts translate it
// into their own tree and call Ref when the backing element attaches or
// detaches.
type Node struct {
	Tag      string
	Attrs    map[string]string
	Style    map[string]string
	Text     string
	Ref      Ref
	OnClick  EventHandler
	Children []*Node
}

// Clone returns a shallow copy of n with its attribute and style maps
// copied. Children are shared.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	c.Attrs = copyMap(n.Attrs)
	c.Style = copyMap(n.Style)
	if n.Children != nil {
		c.Children = append([]*Node(nil), n.Children...)
	}
	return &c
}

// Attr returns the named attribute and whether it is set.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil || n.Attrs == nil {
		return "", false
	}
	v, ok := n.Attrs[name]
	return v, ok
}

// SetAttr sets an attribute, allocating the map on first use.
func (n *Node) SetAttr(name, value string) *Node {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[name] = value
	return n
}

// SetStyle sets an inline style or custom property; "" removes it.
func (n *Node) SetStyle(prop, value string) *Node {
	if value == "" {
		delete(n.Style, prop)
		return n
	}
	if n.Style == nil {
		n.Style = make(map[string]string)
	}
	n.Style[prop] = value
	return n
}

func copyMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Event is a UI event delivered to EventHandlers.
type Event struct {
	Type   string
	Target Element

	defaultPrevented bool
}

// PreventDefault marks the event so composed handlers can skip their
// default behaviour.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// EventHandler handles a UI event.
type EventHandler func(*Event)
