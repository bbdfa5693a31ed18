package presencex

import (
	"github.com/comalice/presencex/internal/core"
	"github.com/comalice/presencex/internal/primitives"
)

// Name constrains state and event types of a Machine.
type Name = primitives.Name

// Table maps a state to its declared transitions.
type Table[S, E comparable] = primitives.Table[S, E]

// Machine is a single mutable state cell over a Table.
type Machine[S, E Name] = core.Machine[S, E]

type (
	// MachineMetadata describes one state change.
	MachineMetadata = core.MachineMetadata
	// Snapshot is the serializable runtime state of a machine.
	Snapshot = core.Snapshot
	// EventPublisher forwards state changes to an external sink.
	EventPublisher = core.EventPublisher
	// Persister stores machine snapshots.
	Persister = core.Persister
)

// Transition returns table[current][event], or current when the pair is
// not declared.
func Transition[S, E comparable](current S, event E, table Table[S, E]) S {
	return primitives.Transition(current, event, table)
}

// NewMachine validates table and returns a Machine in state initial.
func NewMachine[S, E Name](table Table[S, E], initial S) (*Machine[S, E], error) {
	return core.NewMachine(table, initial)
}
