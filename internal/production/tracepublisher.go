package production

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/comalice/presencex/internal/core"
)

const (
	TransitionSpanName = "presence.transition"
	MachineKey         = "presence.machine"
	FromKey            = "presence.from"
	ToKey              = "presence.to"
	EventKey           = "presence.event"
)

// TracePublisher records every transition as a short OpenTelemetry span.
type TracePublisher struct {
	tracer trace.Tracer
}

// NewTracePublisher creates a TracePublisher. tracer is required.
func NewTracePublisher(tracer trace.Tracer) (*TracePublisher, error) {
	if tracer == nil {
		return nil, fmt.Errorf("trace publisher: tracer is required")
	}
	return &TracePublisher{tracer: tracer}, nil
}

func (p *TracePublisher) Publish(ctx context.Context, md core.MachineMetadata) error {
	_, span := p.tracer.Start(ctx, TransitionSpanName,
		trace.WithTimestamp(md.Timestamp),
		trace.WithAttributes(
			attribute.String(MachineKey, md.MachineID),
			attribute.String(FromKey, md.From),
			attribute.String(ToKey, md.To),
			attribute.String(EventKey, md.Event),
		),
	)
	span.End()
	return nil
}

func (p *TracePublisher) Close() error {
	return nil
}
