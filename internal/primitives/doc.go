// Package primitives provides the foundational, zero-dependency data
// structures for presence state machines: declarative transition tables,
// the pure transition function over them, and their serialisable form.
//
// This package uses ONLY the Go standard library plus yaml.v3 for table
// configs.
//
// Core invariants:
//   - Every state referenced as a target is itself a key of the table
//   - Undeclared (state, event) pairs are no-ops, never errors
//   - Tables are immutable once validated and are shared read-only
package primitives
