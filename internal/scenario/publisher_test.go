package scenario

import (
	"context"

	"github.com/comalice/presencex"
)

type collectPublisher struct {
	out *[]presencex.MachineMetadata
}

func (c *collectPublisher) Publish(_ context.Context, md presencex.MachineMetadata) error {
	*c.out = append(*c.out, md)
	return nil
}

func (c *collectPublisher) Close() error { return nil }
