package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"dealflow_backend/internal/discovery/transport"
)

const TaskDiscoveryRun = "discovery.run"

// DiscoveryRunPayload carries one queued discovery run.
type DiscoveryRunPayload struct {
	Run transport.RunRequest `json:"run"`
}

func NewDiscoveryRunTask(payload DiscoveryRunPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDiscoveryRun, data), nil
}

func ParseDiscoveryRunPayload(task *asynq.Task) (DiscoveryRunPayload, error) {
	var payload DiscoveryRunPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return DiscoveryRunPayload{}, err
	}
	return payload, nil
}
