// Package core provides the runtime tier of presence state machines: a
// Machine instance holding exactly one current state over an immutable
// transition table, with hooks, publishing and persistence on every state
// change.
//
// Dependencies: internal/primitives.
// Machines are driven from a single UI event loop and are not safe for
// concurrent use.
package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/comalice/presencex/internal/primitives"
)

var (
	// ErrUnknownState is returned when a state is not declared in the table.
	ErrUnknownState = errors.New("state not declared in table")
	// ErrMachineMismatch is returned when restoring a snapshot taken from a
	// different machine.
	ErrMachineMismatch = errors.New("snapshot belongs to a different machine")
)

// MachineMetadata describes one state change.
type MachineMetadata struct {
	MachineID string    `json:"machineID" yaml:"machineID"`
	From      string    `json:"from" yaml:"from"`
	To        string    `json:"to" yaml:"to"`
	Event     string    `json:"event" yaml:"event"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Snapshot is the serializable runtime state of a machine.
type Snapshot struct {
	MachineID string                 `json:"machineID" yaml:"machineID"`
	Version   string                 `json:"version" yaml:"version"`
	Config    primitives.TableConfig `json:"config" yaml:"config"`
	Current   string                 `json:"current" yaml:"current"`
	Timestamp time.Time              `json:"timestamp" yaml:"timestamp"`
}

// Hook observes state changes synchronously, in registration order.
type Hook func(MachineMetadata)

// EventPublisher forwards state changes to an external sink.
type EventPublisher interface {
	Publish(ctx context.Context, metadata MachineMetadata) error
	Close() error
}

// Persister stores machine snapshots.
type Persister interface {
	Save(ctx context.Context, snapshot Snapshot) error
	Load(ctx context.Context, machineID string) (Snapshot, error)
}

// Machine is a single mutable state cell over a transition table.
type Machine[S, E primitives.Name] struct {
	table   primitives.Table[S, E]
	initial S
	current S
	opts    options
}

// NewMachine validates table and creates a Machine in state initial.
func NewMachine[S, E primitives.Name](table primitives.Table[S, E], initial S, opts ...Option) (*Machine[S, E], error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	if !table.Has(initial) {
		return nil, fmt.Errorf("initial state %q: %w", initial, ErrUnknownState)
	}
	m := &Machine[S, E]{
		table:   table,
		initial: initial,
		current: initial,
		opts:    defaultOptions(),
	}
	for _, opt := range opts {
		opt(&m.opts)
	}
	return m, nil
}

// ID returns the machine identifier used in logs, metadata and snapshots.
func (m *Machine[S, E]) ID() string {
	return m.opts.id
}

// State returns the current state.
func (m *Machine[S, E]) State() S {
	return m.current
}

// Dispatch applies event to the current state and returns the resulting
// state. Undeclared events leave the state unchanged and notify nobody.
func (m *Machine[S, E]) Dispatch(event E) S {
	from := m.current
	to := primitives.Transition(from, event, m.table)
	if to == from {
		return from
	}
	m.current = to

	md := MachineMetadata{
		MachineID: m.opts.id,
		From:      string(from),
		To:        string(to),
		Event:     string(event),
		Timestamp: time.Now(),
	}
	for _, h := range m.opts.hooks {
		h(md)
	}

	ctx := context.Background()
	for _, p := range m.opts.publishers {
		if err := p.Publish(ctx, md); err != nil {
			m.opts.logger.Warn("Publishing transition failed.", "machine", m.opts.id, "error", err)
		}
	}
	if m.opts.persister != nil {
		if err := m.opts.persister.Save(ctx, m.Snapshot()); err != nil {
			m.opts.logger.Warn("Persisting snapshot failed.", "machine", m.opts.id, "error", err)
		}
	}
	return to
}

// Config returns the serializable form of the machine's table.
func (m *Machine[S, E]) Config() primitives.TableConfig {
	return primitives.ConfigFromTable(m.opts.id, m.initial, m.table)
}

// Snapshot captures the current state.
func (m *Machine[S, E]) Snapshot() Snapshot {
	cfg := m.Config()
	return Snapshot{
		MachineID: m.opts.id,
		Version:   primitives.ComputeVersion(&cfg),
		Config:    cfg,
		Current:   string(m.current),
		Timestamp: time.Now(),
	}
}

// Restore replaces the current state from a snapshot. Hooks and publishers
// are not notified.
func (m *Machine[S, E]) Restore(snapshot Snapshot) error {
	if snapshot.MachineID != m.opts.id {
		return fmt.Errorf("have %q, snapshot %q: %w", m.opts.id, snapshot.MachineID, ErrMachineMismatch)
	}
	state := S(snapshot.Current)
	if !m.table.Has(state) {
		return fmt.Errorf("restore %q: %w", snapshot.Current, ErrUnknownState)
	}
	m.current = state
	return nil
}

// Close closes every configured publisher.
func (m *Machine[S, E]) Close() error {
	var errs []error
	for _, p := range m.opts.publishers {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func defaultOptions() options {
	return options{
		id:     "machine",
		logger: slog.Default(),
	}
}
