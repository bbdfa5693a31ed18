package production

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/comalice/presencex/internal/primitives"
)

// DefaultVisualizer exports transition tables for inspection.
type DefaultVisualizer struct{}

// Edge represents a transition edge.
type Edge struct {
	From  string
	To    string
	Label string
}

// ExportDOT generates Graphviz DOT source for the table. The current state,
// if any, is highlighted and the initial state is drawn with a double
// border.
func (v *DefaultVisualizer) ExportDOT(config primitives.TableConfig, current string) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", config.ID)
	buf.WriteString(`  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)

	for _, id := range sortedStateIDs(config) {
		attrs := ""
		if id == config.Initial {
			attrs += " peripheries=2"
		}
		if id == current {
			attrs += " style=filled fillcolor=lightgreen"
		}
		fmt.Fprintf(&buf, "  %q [label=%q%s];\n", id, id, attrs)
	}

	for _, edge := range collectEdges(config) {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", edge.From, edge.To, edge.Label)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes the table config to JSON.
func (v *DefaultVisualizer) ExportJSON(config primitives.TableConfig) ([]byte, error) {
	return json.MarshalIndent(config, "", "  ")
}

func sortedStateIDs(config primitives.TableConfig) []string {
	ids := make([]string, 0, len(config.States))
	for id := range config.States {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// collectEdges collects all transitions in deterministic order.
func collectEdges(config primitives.TableConfig) []Edge {
	var edges []Edge
	for _, id := range sortedStateIDs(config) {
		state := config.States[id]
		if state == nil {
			continue
		}
		events := make([]string, 0, len(state.On))
		for event := range state.On {
			events = append(events, event)
		}
		sort.Strings(events)
		for _, event := range events {
			edges = append(edges, Edge{From: id, To: state.On[event], Label: event})
		}
	}
	return edges
}
