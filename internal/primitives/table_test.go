package primitives

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
)

type light string
type toggle string

func lightTable() Table[light, toggle] {
	return Table[light, toggle]{
		"off":    {"flip": "on"},
		"on":     {"flip": "off", "break": "broken"},
		"broken": {},
	}
}

func TestTransitionDeclared(t *testing.T) {
	table := lightTable()
	if got := Transition("off", "flip", table); got != "on" {
		t.Errorf("Transition(off, flip) = %q, want on", got)
	}
	if got := Transition("on", "break", table); got != "broken" {
		t.Errorf("Transition(on, break) = %q, want broken", got)
	}
}

func TestTransitionUndeclaredIsNoop(t *testing.T) {
	table := lightTable()
	tests := []struct {
		state light
		event toggle
	}{
		{"off", "break"},
		{"broken", "flip"},
		{"missing", "flip"},
		{"on", ""},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.state, tt.event), func(t *testing.T) {
			if got := Transition(tt.state, tt.event, table); got != tt.state {
				t.Errorf("Transition(%q, %q) = %q, want unchanged", tt.state, tt.event, got)
			}
		})
	}
}

// For random tables, any pair not declared in the table leaves the state
// unchanged.
func TestTransitionNoopLawRandomTables(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		nStates := 1 + rng.Intn(6)
		nEvents := 1 + rng.Intn(6)
		table := make(Table[int, int], nStates)
		for s := 0; s < nStates; s++ {
			table[s] = map[int]int{}
			for e := 0; e < nEvents; e++ {
				if rng.Intn(2) == 0 {
					table[s][e] = rng.Intn(nStates)
				}
			}
		}
		if err := table.Validate(); err != nil {
			t.Fatalf("round %d: generated table invalid: %v", round, err)
		}
		for s := 0; s < nStates; s++ {
			for e := 0; e < nEvents+2; e++ {
				next, declared := table[s][e]
				got := Transition(s, e, table)
				if declared && got != next {
					t.Fatalf("round %d: Transition(%d, %d) = %d, want %d", round, s, e, got, next)
				}
				if !declared && got != s {
					t.Fatalf("round %d: undeclared Transition(%d, %d) = %d, want %d", round, s, e, got, s)
				}
			}
		}
	}
}

func TestTableValidate(t *testing.T) {
	tests := []struct {
		name    string
		table   Table[light, toggle]
		wantErr error
	}{
		{name: "valid", table: lightTable()},
		{name: "empty", table: Table[light, toggle]{}, wantErr: ErrEmptyTable},
		{
			name:    "dangling target",
			table:   Table[light, toggle]{"off": {"flip": "on"}},
			wantErr: ErrDanglingTarget,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTableErrorDetails(t *testing.T) {
	err := Table[light, toggle]{"off": {"flip": "on"}}.Validate()
	var te *TableError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TableError, got %T", err)
	}
	if te.State != "off" || te.Event != "flip" || te.Target != "on" {
		t.Errorf("unexpected details: %+v", te)
	}
}

func TestSortedStatesAndEvents(t *testing.T) {
	table := lightTable()
	states := SortedStates(table)
	want := []light{"broken", "off", "on"}
	if fmt.Sprint(states) != fmt.Sprint(want) {
		t.Errorf("SortedStates = %v, want %v", states, want)
	}
	events := SortedEvents(table, "on")
	if fmt.Sprint(events) != "[break flip]" {
		t.Errorf("SortedEvents(on) = %v", events)
	}
}
