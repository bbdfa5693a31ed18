package primitives

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrEmptyTable is returned when a table declares no states.
	ErrEmptyTable = errors.New("transition table has no states")
	// ErrDanglingTarget is returned when a transition targets a state that
	// is not declared in the table.
	ErrDanglingTarget = errors.New("transition targets undeclared state")
)

// Name constrains state and event names of serialisable machines.
type Name interface {
	~string
}

// Table maps state -> event -> next state.
type Table[S, E comparable] map[S]map[E]S

// TableError reports a table-definition error for a specific transition.
type TableError struct {
	State  string
	Event  string
	Target string
	Err    error
}

func (e *TableError) Error() string {
	return fmt.Sprintf("state %q event %q -> %q: %v", e.State, e.Event, e.Target, e.Err)
}

func (e *TableError) Unwrap() error {
	return e.Err
}

// Transition returns the state declared for event in current, or current
// unchanged when the table declares no such transition.
func Transition[S, E comparable](current S, event E, table Table[S, E]) S {
	if next, ok := table[current][event]; ok {
		return next
	}
	return current
}

// Validate checks that the table is non-empty and that every target state
// is declared.
func (t Table[S, E]) Validate() error {
	if len(t) == 0 {
		return ErrEmptyTable
	}
	for state, events := range t {
		for event, target := range events {
			if _, ok := t[target]; !ok {
				return &TableError{
					State:  fmt.Sprint(state),
					Event:  fmt.Sprint(event),
					Target: fmt.Sprint(target),
					Err:    ErrDanglingTarget,
				}
			}
		}
	}
	return nil
}

// Has reports whether state is declared in the table.
func (t Table[S, E]) Has(state S) bool {
	_, ok := t[state]
	return ok
}

// SortedStates returns the table's state names in lexical order.
func SortedStates[S, E Name](t Table[S, E]) []S {
	states := make([]S, 0, len(t))
	for s := range t {
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	return states
}

// SortedEvents returns the events declared for state in lexical order.
func SortedEvents[S, E Name](t Table[S, E], state S) []E {
	events := make([]E, 0, len(t[state]))
	for e := range t[state] {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i] < events[j] })
	return events
}
