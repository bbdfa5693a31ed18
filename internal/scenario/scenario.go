// Package scenario replays scripted presence timelines against the fake
// platform: present flips, style changes, animation events, detaches and
// frames, with expectations checked along the way.
package scenario

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Kinds of scenario.
const (
	KindPresence    = "presence"
	KindCollapsible = "collapsible"
)

// ErrInvalidScenario is returned for scenarios that cannot be replayed.
var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is a scripted timeline for one element.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	// Kind is "presence" (default) or "collapsible".
	Kind    string `yaml:"kind,omitempty"`
	Initial bool   `yaml:"initial"`
	Steps   []Step `yaml:"steps"`
}

// Step holds exactly one action.
type Step struct {
	Present         *bool   `yaml:"present,omitempty"`
	Style           *Style  `yaml:"style,omitempty"`
	Rect            *Rect   `yaml:"rect,omitempty"`
	AnimationStart  string  `yaml:"animation_start,omitempty"`
	AnimationEnd    string  `yaml:"animation_end,omitempty"`
	AnimationCancel string  `yaml:"animation_cancel,omitempty"`
	Detach          bool    `yaml:"detach,omitempty"`
	Attach          bool    `yaml:"attach,omitempty"`
	Frame           int     `yaml:"frame,omitempty"`
	Expect          *Expect `yaml:"expect,omitempty"`
}

// Style is the element's stylesheet state. Empty fields are left alone.
type Style struct {
	Animation string `yaml:"animation,omitempty"`
	Display   string `yaml:"display,omitempty"`
}

// Rect is the element's natural layout box.
type Rect struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Expect checks the coordinator after the previous steps. Unset fields
// are not checked.
type Expect struct {
	State    string `yaml:"state,omitempty"`
	Visible  *bool  `yaml:"visible,omitempty"`
	Rendered *bool  `yaml:"rendered,omitempty"`
	Hidden   *bool  `yaml:"hidden,omitempty"`
	Height   string `yaml:"height,omitempty"`
	Width    string `yaml:"width,omitempty"`
}

// Action names the step's action for traces.
func (s Step) Action() string {
	switch {
	case s.Present != nil:
		return fmt.Sprintf("present=%t", *s.Present)
	case s.Style != nil:
		return "style"
	case s.Rect != nil:
		return fmt.Sprintf("rect=%gx%g", s.Rect.Width, s.Rect.Height)
	case s.AnimationStart != "":
		return "animationstart " + s.AnimationStart
	case s.AnimationEnd != "":
		return "animationend " + s.AnimationEnd
	case s.AnimationCancel != "":
		return "animationcancel " + s.AnimationCancel
	case s.Detach:
		return "detach"
	case s.Attach:
		return "attach"
	case s.Frame > 0:
		return fmt.Sprintf("frame x%d", s.Frame)
	case s.Expect != nil:
		return "expect"
	}
	return ""
}

func (s Step) actions() int {
	n := 0
	for _, set := range []bool{
		s.Present != nil, s.Style != nil, s.Rect != nil,
		s.AnimationStart != "", s.AnimationEnd != "", s.AnimationCancel != "",
		s.Detach, s.Attach, s.Frame > 0, s.Expect != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

// Validate checks the scenario's shape.
func (sc *Scenario) Validate() error {
	if sc.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidScenario)
	}
	switch sc.Kind {
	case "", KindPresence, KindCollapsible:
	default:
		return fmt.Errorf("%w: %s: unknown kind %q", ErrInvalidScenario, sc.Name, sc.Kind)
	}
	if len(sc.Steps) == 0 {
		return fmt.Errorf("%w: %s: no steps", ErrInvalidScenario, sc.Name)
	}
	for i, step := range sc.Steps {
		if n := step.actions(); n != 1 {
			return fmt.Errorf("%w: %s: step %d has %d actions, want 1", ErrInvalidScenario, sc.Name, i+1, n)
		}
		if step.Frame < 0 {
			return fmt.Errorf("%w: %s: step %d: negative frame count", ErrInvalidScenario, sc.Name, i+1)
		}
	}
	return nil
}

// Parse decodes and validates a YAML scenario.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if sc.Kind == "" {
		sc.Kind = KindPresence
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}
