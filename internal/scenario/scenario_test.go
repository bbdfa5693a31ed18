package scenario

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/comalice/presencex"
)

func TestTestdataScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no scenarios in testdata")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			sc, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			res, err := Run(sc)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if !res.Passed() {
				t.Fatalf("expectation failed: %v\ntrace: %+v", res.Failure, res.Trace)
			}
			if len(res.Trace) != len(sc.Steps) {
				t.Errorf("trace has %d entries for %d steps", len(res.Trace), len(sc.Steps))
			}
		})
	}
}

func TestRunReportsFirstFailure(t *testing.T) {
	sc, err := Parse([]byte(`
name: wrong
initial: true
steps:
  - present: false
  - expect: {state: unmount-suspended}
  - expect: {state: mounted}
`))
	if err != nil {
		t.Fatal(err)
	}
	res, err := Run(sc)
	if err != nil {
		t.Fatal(err)
	}
	if res.Passed() {
		t.Fatal("expected a failure")
	}
	if res.Failure.Step != 2 || res.Failure.Field != "state" || res.Failure.Got != "unmounted" {
		t.Errorf("failure = %+v", res.Failure)
	}
	if res.FinalState() != presencex.StateUnmounted {
		t.Errorf("final state = %s", res.FinalState())
	}
}

func TestRunFireWithoutElement(t *testing.T) {
	sc, err := Parse([]byte(`
name: nothing-mounted
initial: false
steps:
  - animation_end: fade-out
`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Run(sc); err == nil {
		t.Error("expected an error firing at a missing element")
	}
}

func TestRunPublishesThroughOptions(t *testing.T) {
	sc, err := Parse([]byte(`
name: traced
initial: true
steps:
  - present: false
`))
	if err != nil {
		t.Fatal(err)
	}
	var changes []presencex.MachineMetadata
	pub := &collectPublisher{out: &changes}
	if _, err := Run(sc, presencex.WithID("traced"), presencex.WithPublisher(pub)); err != nil {
		t.Fatal(err)
	}
	if len(changes) != 1 || changes[0].MachineID != "traced" {
		t.Errorf("published = %+v", changes)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := map[string]string{
		"missing name": "initial: true\nsteps:\n  - present: false\n",
		"no steps":     "name: x\n",
		"two actions":  "name: x\nsteps:\n  - {present: false, detach: true}\n",
		"empty step":   "name: x\nsteps:\n  - {}\n",
		"unknown kind": "name: x\nkind: modal\nsteps:\n  - detach: true\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(data)); !errors.Is(err, ErrInvalidScenario) {
				t.Errorf("expected ErrInvalidScenario, got %v", err)
			}
		})
	}
}
