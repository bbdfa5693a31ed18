package benchmarks

import (
	"runtime"
	"testing"

	"github.com/comalice/presencex"
	"github.com/comalice/presencex/dom"
	"github.com/comalice/presencex/testutil"
)

func BenchmarkTrackerExitCycle(b *testing.B) {
	f := NewExitFixture()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		f.Cycle()
	}
	if f.Tracker.State() != presencex.StateMounted {
		b.Fatalf("state = %s after cycles", f.Tracker.State())
	}
}

func BenchmarkPresenceRender(b *testing.B) {
	p := testutil.NewFakePlatform()
	host := testutil.NewHost(p, "panel")
	pr := presencex.New(p, true)
	node, err := pr.Render(true, presencex.RenderFunc(func(presencex.Props) *dom.Node {
		return &dom.Node{Tag: "div"}
	}))
	if err != nil {
		b.Fatal(err)
	}
	host.Commit(node)

	child := &dom.Node{Tag: "div", Attrs: map[string]string{"id": "panel"}}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := pr.Render(true, child); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTrackerFootprint(b *testing.B) {
	const n = 1000
	for i := 0; i < b.N; i++ {
		var before, after runtime.MemStats
		runtime.GC()
		runtime.ReadMemStats(&before)
		fixtures := make([]*ExitFixture, n)
		for j := range fixtures {
			fixtures[j] = NewExitFixture()
		}
		runtime.ReadMemStats(&after)
		b.ReportMetric(float64(after.TotalAlloc-before.TotalAlloc)/n, "B/tracker")
		runtime.KeepAlive(fixtures)
	}
}
