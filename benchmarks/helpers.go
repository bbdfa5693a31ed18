// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"

	"github.com/comalice/presencex"
	"github.com/comalice/presencex/dom"
	"github.com/comalice/presencex/internal/primitives"
	"github.com/comalice/presencex/testutil"
)

// GenRingConfig creates a table of n states cycling via "tick" events.
func GenRingConfig(n int) primitives.TableConfig {
	if n < 1 {
		n = 1
	}
	b := primitives.NewTableBuilder(fmt.Sprintf("ring_%d", n), "s0")
	for i := 0; i < n; i++ {
		b.State(fmt.Sprintf("s%d", i)).On("tick", fmt.Sprintf("s%d", (i+1)%n))
	}
	cfg, err := b.Build()
	if err != nil {
		panic(err)
	}
	return cfg
}

// GenRingTable compiles GenRingConfig(n).
func GenRingTable(n int) presencex.Table[string, string] {
	table, err := primitives.Compile[string, string](GenRingConfig(n))
	if err != nil {
		panic(err)
	}
	return table
}

// Stylesheet animation names for exit fixtures.
const (
	EnterAnimation = "fade-in"
	ExitAnimation  = "fade-out"
)

// ExitFixture is a tracker attached to a fake element that cycles through
// an animated exit and a re-entry.
type ExitFixture struct {
	Platform *testutil.FakePlatform
	Element  *testutil.Element
	Tracker  *presencex.Tracker
}

// NewExitFixture returns a mounted, attached tracker.
func NewExitFixture(opts ...presencex.Option) *ExitFixture {
	p := testutil.NewFakePlatform()
	el := p.NewElement("panel")
	p.SetAnimationName(el, EnterAnimation)
	tr := presencex.NewTracker(p, true, opts...)
	tr.Ref()(el)
	return &ExitFixture{Platform: p, Element: el, Tracker: tr}
}

// Cycle plays one exit to completion and re-enters.
func (f *ExitFixture) Cycle() {
	f.Platform.SetAnimationName(f.Element, ExitAnimation)
	f.Tracker.SetPresent(false)
	f.Platform.Fire(dom.AnimationEnd, f.Element, ExitAnimation)
	f.Platform.SetAnimationName(f.Element, EnterAnimation)
	f.Tracker.SetPresent(true)
}
