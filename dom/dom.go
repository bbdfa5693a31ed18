// Package dom defines the host platform contract the presence coordinator
// runs against: opaque element handles, the renderable Node value, and the
// capability set for reading styles, measuring layout boxes and observing
// animation lifecycle events.
//
// Hosts implement Platform for their rendering surface. The coordinator
// never owns elements; it only observes them between attach and detach.
package dom

import "strings"

const (
	// AnimationNone is the animation-name sentinel for "no animation active".
	AnimationNone = "none"
	// DisplayNone is the display value of a suppressed element.
	DisplayNone = "none"

	// PropTransitionDuration is the inline style property for transition timing.
	PropTransitionDuration = "transition-duration"
	// PropAnimationName is the inline style property for animation names.
	PropAnimationName = "animation-name"
)

// Element is an opaque, comparable handle to a node owned by the host tree.
// Implementations are expected to be pointer types.
type Element interface {
	ElementID() string
}

// Ref is a callback-style element handle. It is invoked with the element on
// attach and with nil on detach.
type Ref func(Element)

// Rect is an element's layout box.
type Rect struct {
	Width  float64
	Height float64
}

// ComputedStyle is the subset of resolved style the coordinator reads.
type ComputedStyle struct {
	AnimationName string
	Display       string
}

// AnimationEventType identifies an animation lifecycle notification.
type AnimationEventType string

const (
	AnimationStart  AnimationEventType = "animationstart"
	AnimationEnd    AnimationEventType = "animationend"
	AnimationCancel AnimationEventType = "animationcancel"
)

// AnimationEvent is delivered to listeners registered with
// Platform.AddAnimationListener.
type AnimationEvent struct {
	Type          AnimationEventType
	Target        Element
	AnimationName string
}

// Platform is the injectable capability set backing the coordinator.
type Platform interface {
	// ComputedStyle returns the element's resolved style at this instant.
	ComputedStyle(el Element) ComputedStyle
	// BoundingRect returns the element's current layout box.
	BoundingRect(el Element) Rect
	// AddAnimationListener subscribes fn to animation events of typ that
	// target el or its descendants. The returned func removes the listener.
	AddAnimationListener(el Element, typ AnimationEventType, fn func(AnimationEvent)) (remove func())
	// ForceLayout synchronously recomputes layout for el.
	ForceLayout(el Element)
	// InlineStyle returns an inline style property, or "" when unset.
	InlineStyle(el Element, prop string) string
	// SetInlineStyle sets an inline style property; "" removes it.
	SetInlineStyle(el Element, prop, value string)
}

// AnimationNames splits an animation-name signature into its names.
// Empty and "none" signatures yield nil.
func AnimationNames(signature string) []string {
	signature = strings.TrimSpace(signature)
	if signature == "" || signature == AnimationNone {
		return nil
	}
	parts := strings.Split(signature, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" && p != AnimationNone {
			names = append(names, p)
		}
	}
	return names
}

// HasAnimation reports whether name is one of the animations in signature.
func HasAnimation(signature, name string) bool {
	for _, n := range AnimationNames(signature) {
		if n == name {
			return true
		}
	}
	return false
}
