package discovery

import (
	"dealflow_backend/internal/discovery/transport"
	"dealflow_backend/platform/events"
)

// EventRunCompleted is published after every discovery run, successful or
// not, so reporting subscribers can track credit spend per run.
const EventRunCompleted = "discovery.run.completed"

// RunCompleted carries the run summary.
type RunCompleted struct {
	events.BaseEvent
	Summary transport.RunSummary `json:"summary"`
}

// EventName implements events.Event.
func (RunCompleted) EventName() string {
	return EventRunCompleted
}
