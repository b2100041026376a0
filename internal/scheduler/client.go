package scheduler

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"dealflow_backend/internal/discovery/transport"
	"dealflow_backend/platform/apperr"
	"dealflow_backend/platform/config"
)

// Client enqueues background tasks on the shared redis queue.
type Client struct {
	client *asynq.Client
	queue  string
}

func NewClient(cfg config.WorkerConfig) (*Client, error) {
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

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueDiscoveryRun queues one discovery run for the worker. MaxRetry is
// zero: a re-run would re-spend metered credits, so failed runs are
// re-triggered deliberately, not replayed.
func (c *Client) EnqueueDiscoveryRun(ctx context.Context, req transport.RunRequest) error {
	if c == nil || c.client == nil {
		return apperr.NotConfigured("task queue is not configured")
	}

	task, err := NewDiscoveryRunTask(DiscoveryRunPayload{Run: req})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue), asynq.MaxRetry(0))
	return err
}

func redisClientOpt(redisURL string) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
