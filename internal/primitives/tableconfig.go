package primitives

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// TableConfig is the serialisable form of a transition table.
//
//	id: presence
//	initial: mounted
//	states:
//	  mounted:
//	    on:
//	      EXIT_REQUESTED_NO_ANIM: unmounted
//	  unmounted:
//	    on:
//	      ENTER_REQUESTED: mounted
type TableConfig struct {
	Version string                  `json:"version,omitempty" yaml:"version,omitempty"`
	ID      string                  `json:"id" yaml:"id"`
	Initial string                  `json:"initial" yaml:"initial"`
	States  map[string]*StateConfig `json:"states" yaml:"states"`
}

// StateConfig declares the transitions handled by one state.
type StateConfig struct {
	On map[string]string `json:"on,omitempty" yaml:"on,omitempty"`
}

// Validate validates the configuration:
//   - Non-empty ID and Initial
//   - Initial exists in States
//   - No empty event names or targets
//   - All transition targets exist in States
//   - No orphaned states (all reachable from Initial)
func (c *TableConfig) Validate() error {
	if c.ID == "" {
		return errors.New("table ID is required")
	}
	if c.Initial == "" {
		return errors.New("initial state is required")
	}
	if len(c.States) == 0 {
		return ErrEmptyTable
	}
	if _, ok := c.States[c.Initial]; !ok {
		return fmt.Errorf("initial state %q not found in states", c.Initial)
	}

	for sid, state := range c.States {
		if strings.TrimSpace(sid) == "" {
			return errors.New("empty state name")
		}
		if state == nil {
			continue
		}
		for event, target := range state.On {
			if strings.TrimSpace(event) == "" {
				return fmt.Errorf("empty event name in state %q", sid)
			}
			if target == "" {
				return fmt.Errorf("empty target for event %q in state %q", event, sid)
			}
			if _, ok := c.States[target]; !ok {
				return &TableError{State: sid, Event: event, Target: target, Err: ErrDanglingTarget}
			}
		}
	}

	visited := make(map[string]bool)
	c.markReachable(c.Initial, visited)
	for sid := range c.States {
		if !visited[sid] {
			return fmt.Errorf("orphaned state %q (not reachable from initial %q)", sid, c.Initial)
		}
	}
	return nil
}

// markReachable marks every state reachable from id via transition targets.
func (c *TableConfig) markReachable(id string, visited map[string]bool) {
	if visited[id] {
		return
	}
	visited[id] = true
	state := c.States[id]
	if state == nil {
		return
	}
	for _, target := range state.On {
		c.markReachable(target, visited)
	}
}

// Compile validates the configuration and converts it into a Table.
func Compile[S, E Name](c TableConfig) (Table[S, E], error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	table := make(Table[S, E], len(c.States))
	for sid, state := range c.States {
		events := make(map[E]S)
		if state != nil {
			for event, target := range state.On {
				events[E(event)] = S(target)
			}
		}
		table[S(sid)] = events
	}
	return table, nil
}

// ConfigFromTable builds the serialisable form of table.
func ConfigFromTable[S, E Name](id string, initial S, table Table[S, E]) TableConfig {
	cfg := TableConfig{
		ID:      id,
		Initial: string(initial),
		States:  make(map[string]*StateConfig, len(table)),
	}
	for state, events := range table {
		sc := &StateConfig{}
		if len(events) > 0 {
			sc.On = make(map[string]string, len(events))
			for event, target := range events {
				sc.On[string(event)] = string(target)
			}
		}
		cfg.States[string(state)] = sc
	}
	return cfg
}

// LoadTableConfig decodes a YAML table configuration and validates it.
func LoadTableConfig(data []byte) (TableConfig, error) {
	var cfg TableConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TableConfig{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return TableConfig{}, err
	}
	return cfg, nil
}
