package scheduler

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"dealflow_backend/internal/discovery"
	"dealflow_backend/platform/config"
	"dealflow_backend/platform/logger"
)

// Worker consumes queued tasks. Discovery runs are long and serialized by
// the upstream throttle anyway, so concurrency defaults low.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	discovery *discovery.Service
	log       *logger.Logger
}

func NewWorker(cfg config.WorkerConfig, discoverySvc *discovery.Service, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetWorkerQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetWorkerConcurrency()
	if concurrency < 1 {
		concurrency = 1
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:    server,
		mux:       mux,
		discovery: discoverySvc,
		log:       log,
	}

	mux.HandleFunc(TaskDiscoveryRun, w.handleDiscoveryRun)

	return w, nil
}

func (w *Worker) handleDiscoveryRun(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseDiscoveryRunPayload(task)
	if err != nil {
		return err
	}

	summary, err := w.discovery.Run(ctx, payload.Run)
	if err != nil {
		w.log.Error("discovery run failed", "run_id", summary.RunID, "error", err)
		return err
	}
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("worker stopped", "error", err)
	}
}
