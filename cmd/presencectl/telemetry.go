package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/comalice/presencex/internal/production"
)

// telemetryOutput prints every finished transition span as one line.
type telemetryOutput struct {
	provider *sdktrace.TracerProvider
}

func newTelemetryOutput(w io.Writer) *telemetryOutput {
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(&spanLinePrinter{w: w}))
	return &telemetryOutput{provider: provider}
}

func (o *telemetryOutput) Tracer(name string) trace.Tracer {
	if o == nil || o.provider == nil {
		return otel.Tracer(name)
	}
	return o.provider.Tracer(name)
}

func (o *telemetryOutput) Close() {
	if o == nil || o.provider == nil {
		return
	}
	_ = o.provider.Shutdown(context.Background())
}

type spanLinePrinter struct {
	mu sync.Mutex
	w  io.Writer
}

func (p *spanLinePrinter) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (p *spanLinePrinter) OnEnd(span sdktrace.ReadOnlySpan) {
	attrs := make(map[string]string)
	for _, kv := range span.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "  %s %s %s: %s -> %s (%s)\n",
		mutedStyle.Render("[span]"),
		span.Name(),
		attrs[production.MachineKey],
		attrs[production.FromKey],
		attrs[production.ToKey],
		attrs[production.EventKey],
	)
}

func (p *spanLinePrinter) Shutdown(context.Context) error   { return nil }
func (p *spanLinePrinter) ForceFlush(context.Context) error { return nil }
