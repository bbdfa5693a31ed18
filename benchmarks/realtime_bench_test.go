package benchmarks

import (
	"fmt"
	"testing"

	"github.com/comalice/presencex/realtime"
)

func BenchmarkFrameLoopTick(b *testing.B) {
	for _, n := range []int{1, 64, 1000} {
		b.Run(fmt.Sprintf("callbacks_%d", n), func(b *testing.B) {
			loop := realtime.NewFrameLoop(realtime.Config{MaxCallbacksPerTick: n})
			ran := 0
			fn := func() { ran++ }
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				for j := 0; j < n; j++ {
					if _, err := loop.RequestFrameWithPriority(fn, j%3); err != nil {
						b.Fatal(err)
					}
				}
				loop.Tick()
			}
			b.StopTimer()
			if ran != n*b.N {
				b.Fatalf("ran %d callbacks, want %d", ran, n*b.N)
			}
		})
	}
}

func BenchmarkRequestCancel(b *testing.B) {
	loop := realtime.NewFrameLoop(realtime.Config{})
	fn := func() {}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		id, err := loop.RequestFrame(fn)
		if err != nil {
			b.Fatal(err)
		}
		loop.CancelFrame(id)
	}
}
