package presencex

import (
	"errors"
	"fmt"
)

// ErrInvalidChild is returned by Render when its children are not exactly
// one node or one render function.
var ErrInvalidChild = errors.New("invalid presence child")

// ChildError describes a misuse of Presence.Render.
type ChildError struct {
	Count  int    // number of children passed
	Type   string // Go type of the offending child, if any
	Reason string
}

func (e *ChildError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("presence: %s (got %d children, type %s)", e.Reason, e.Count, e.Type)
	}
	return fmt.Sprintf("presence: %s (got %d children)", e.Reason, e.Count)
}

func (e *ChildError) Unwrap() error {
	return ErrInvalidChild
}
