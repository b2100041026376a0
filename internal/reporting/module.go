// Package reporting consumes run-summary events and logs them in a form
// operators can grep for credit spend. Outbound reporting itself lives in an
// external system; this module is the in-process seam it hangs off.
package reporting

import (
	"context"

	"dealflow_backend/internal/discovery"
	"dealflow_backend/platform/events"
	"dealflow_backend/platform/logger"
)

// Module subscribes to discovery events. It has no HTTP surface.
type Module struct {
	log *logger.Logger
}

// NewModule creates the reporting module.
func NewModule(log *logger.Logger) *Module {
	return &Module{log: log}
}

// RegisterHandlers subscribes to domain events.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(discovery.EventRunCompleted, m)
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case discovery.RunCompleted:
		m.log.Info("discovery run summary",
			"run_id", e.Summary.RunID,
			"available", e.Summary.Available,
			"searched", e.Summary.Searched,
			"matched", e.Summary.Matched,
			"details_fetched", e.Summary.DetailsFetched,
			"saved", e.Summary.Saved,
			"failures", e.Summary.Failures,
			"duration_ms", e.Summary.DurationMs,
		)
		return nil
	default:
		return nil
	}
}
