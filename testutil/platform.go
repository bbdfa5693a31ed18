// Package testutil provides an in-memory dom.Platform and a minimal host
// for exercising presence coordination without a rendering surface.
package testutil

import (
	"fmt"
	"sort"

	"github.com/comalice/presencex/dom"
)

// Element is a fake element. Events fired on it bubble to its parent.
type Element struct {
	id     string
	parent *Element
}

// ElementID implements dom.Element.
func (e *Element) ElementID() string { return e.id }

// Parent returns the element's parent, or nil.
func (e *Element) Parent() *Element { return e.parent }

type listener struct {
	id int
	fn func(dom.AnimationEvent)
}

type elementState struct {
	animationName string
	display       string
	rect          dom.Rect
	inline        map[string]string
	listeners     map[dom.AnimationEventType][]listener
	layouts       int
}

// FakePlatform implements dom.Platform in memory. Style values are set by
// the test; an inline animation-name overrides the stylesheet value, as in
// a browser.
type FakePlatform struct {
	elements     map[*Element]*elementState
	nextListener int
	nextElement  int
}

var _ dom.Platform = (*FakePlatform)(nil)

// NewFakePlatform returns an empty platform.
func NewFakePlatform() *FakePlatform {
	return &FakePlatform{elements: make(map[*Element]*elementState)}
}

// NewElement creates a root element. An empty id is generated.
func (p *FakePlatform) NewElement(id string) *Element {
	return p.NewChild(nil, id)
}

// NewChild creates an element nested under parent.
func (p *FakePlatform) NewChild(parent *Element, id string) *Element {
	p.nextElement++
	if id == "" {
		id = fmt.Sprintf("el-%d", p.nextElement)
	}
	el := &Element{id: id, parent: parent}
	p.elements[el] = &elementState{
		animationName: dom.AnimationNone,
		inline:        make(map[string]string),
		listeners:     make(map[dom.AnimationEventType][]listener),
	}
	return el
}

func (p *FakePlatform) state(el dom.Element) *elementState {
	fe, ok := el.(*Element)
	if !ok {
		panic(fmt.Sprintf("testutil: foreign element %T", el))
	}
	s, ok := p.elements[fe]
	if !ok {
		panic(fmt.Sprintf("testutil: element %q not created by this platform", fe.id))
	}
	return s
}

// SetAnimationName sets the stylesheet animation-name ("" means none).
func (p *FakePlatform) SetAnimationName(el *Element, name string) {
	if name == "" {
		name = dom.AnimationNone
	}
	p.state(el).animationName = name
}

// SetDisplay sets the element's display value.
func (p *FakePlatform) SetDisplay(el *Element, display string) {
	p.state(el).display = display
}

// SetRect sets the layout box BoundingRect reports.
func (p *FakePlatform) SetRect(el *Element, width, height float64) {
	p.state(el).rect = dom.Rect{Width: width, Height: height}
}

// ComputedStyle implements dom.Platform.
func (p *FakePlatform) ComputedStyle(el dom.Element) dom.ComputedStyle {
	s := p.state(el)
	name := s.animationName
	if inline := s.inline[dom.PropAnimationName]; inline != "" {
		name = inline
	}
	return dom.ComputedStyle{AnimationName: name, Display: s.display}
}

// BoundingRect implements dom.Platform.
func (p *FakePlatform) BoundingRect(el dom.Element) dom.Rect {
	return p.state(el).rect
}

// AddAnimationListener implements dom.Platform.
func (p *FakePlatform) AddAnimationListener(el dom.Element, typ dom.AnimationEventType, fn func(dom.AnimationEvent)) func() {
	s := p.state(el)
	p.nextListener++
	id := p.nextListener
	s.listeners[typ] = append(s.listeners[typ], listener{id: id, fn: fn})
	return func() {
		ls := s.listeners[typ]
		for i, l := range ls {
			if l.id == id {
				s.listeners[typ] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

// ForceLayout implements dom.Platform.
func (p *FakePlatform) ForceLayout(el dom.Element) {
	p.state(el).layouts++
}

// InlineStyle implements dom.Platform.
func (p *FakePlatform) InlineStyle(el dom.Element, prop string) string {
	return p.state(el).inline[prop]
}

// SetInlineStyle implements dom.Platform.
func (p *FakePlatform) SetInlineStyle(el dom.Element, prop, value string) {
	s := p.state(el)
	if value == "" {
		delete(s.inline, prop)
		return
	}
	s.inline[prop] = value
}

// InlineStyles returns a copy of the element's inline styles.
func (p *FakePlatform) InlineStyles(el *Element) map[string]string {
	out := make(map[string]string)
	for k, v := range p.state(el).inline {
		out[k] = v
	}
	return out
}

// Fire delivers an animation event targeting el to listeners on el and
// its ancestors, innermost first. It returns the number of listeners run.
func (p *FakePlatform) Fire(typ dom.AnimationEventType, el *Element, name string) int {
	ev := dom.AnimationEvent{Type: typ, Target: el, AnimationName: name}
	n := 0
	for cur := el; cur != nil; cur = cur.parent {
		ls := append([]listener(nil), p.state(cur).listeners[typ]...)
		for _, l := range ls {
			l.fn(ev)
			n++
		}
	}
	return n
}

// ListenerCount returns the number of animation listeners on el.
func (p *FakePlatform) ListenerCount(el *Element) int {
	n := 0
	for _, ls := range p.state(el).listeners {
		n += len(ls)
	}
	return n
}

// LayoutCount returns how many times ForceLayout ran for el.
func (p *FakePlatform) LayoutCount(el *Element) int {
	return p.state(el).layouts
}

// ListenerTypes returns the event types el has listeners for, sorted.
func (p *FakePlatform) ListenerTypes(el *Element) []dom.AnimationEventType {
	var types []dom.AnimationEventType
	for typ, ls := range p.state(el).listeners {
		if len(ls) > 0 {
			types = append(types, typ)
		}
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
