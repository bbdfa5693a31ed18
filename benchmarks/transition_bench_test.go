// Package benchmarks provides performance benchmarks for table transitions.
package benchmarks

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/comalice/presencex"
	"github.com/comalice/presencex/internal/core"
	"github.com/comalice/presencex/internal/extensibility"
	"github.com/comalice/presencex/internal/primitives"
)

func BenchmarkTransition(b *testing.B) {
	table := presencex.PresenceTable()
	state := presencex.StateMounted
	events := []presencex.Event{
		presencex.EventExitWithAnimation,
		presencex.EventReenter,
		presencex.EventAnimationFinished, // no-op from mounted
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		state = presencex.Transition(state, events[i%len(events)], table)
	}
	_ = state
}

func BenchmarkMachineDispatch(b *testing.B) {
	for _, n := range []int{2, 16, 256} {
		b.Run(fmt.Sprintf("ring_%d", n), func(b *testing.B) {
			m, err := core.NewMachine(GenRingTable(n), "s0")
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				m.Dispatch("tick")
			}
		})
	}
}

func BenchmarkMachineDispatchWithLoggingHook(b *testing.B) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m, err := core.NewMachine(GenRingTable(2), "s0",
		core.WithHook(extensibility.NewLoggingHook(logger)),
	)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m.Dispatch("tick")
	}
}

func BenchmarkCompile(b *testing.B) {
	for _, n := range []int{3, 64} {
		cfg := GenRingConfig(n)
		b.Run(fmt.Sprintf("ring_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := primitives.Compile[string, string](cfg); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
