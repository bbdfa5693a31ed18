package extensibility

import (
	"log/slog"

	"github.com/comalice/presencex/internal/core"
)

// NewLoggingHook returns a core.Hook that logs every state change at debug
// level.
func NewLoggingHook(logger *slog.Logger) core.Hook {
	if logger == nil {
		logger = slog.Default()
	}
	return func(md core.MachineMetadata) {
		logger.Debug("Presence transition.",
			"machine", md.MachineID,
			"from", md.From,
			"to", md.To,
			"event", md.Event,
		)
	}
}
