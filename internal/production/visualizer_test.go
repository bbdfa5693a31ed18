// Tests for DefaultVisualizer DOT export.
package production

import (
	"strings"
	"testing"

	"github.com/comalice/presencex/internal/primitives"
)

func TestDefaultVisualizer_ExportDOT(t *testing.T) {
	v := &DefaultVisualizer{}
	cfg := primitives.ConfigFromTable("door", phase("closed"), doorTable())
	dot := v.ExportDOT(cfg, "opened")

	if !strings.HasPrefix(dot, `digraph "door" {`) {
		t.Errorf("missing DOT header: %s", dot)
	}
	if !strings.Contains(dot, `"closed" -> "opened" [label="open"];`) {
		t.Error("missing transition edge")
	}
	if !strings.Contains(dot, `"opened" [label="opened" style=filled fillcolor=lightgreen];`) {
		t.Error("missing current state highlight")
	}
	if !strings.Contains(dot, `"closed" [label="closed" peripheries=2];`) {
		t.Error("missing initial state marker")
	}
	if v.ExportDOT(cfg, "opened") != dot {
		t.Error("DOT output is not deterministic")
	}
}

func TestDefaultVisualizer_ExportJSON(t *testing.T) {
	v := &DefaultVisualizer{}
	cfg := primitives.ConfigFromTable("door", phase("closed"), doorTable())
	data, err := v.ExportJSON(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"initial": "closed"`) {
		t.Errorf("unexpected JSON: %s", data)
	}
}
