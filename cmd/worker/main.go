package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"dealflow_backend/internal/discovery"
	"dealflow_backend/internal/properties"
	"dealflow_backend/internal/propertydata"
	"dealflow_backend/internal/reporting"
	"dealflow_backend/internal/scheduler"
	"dealflow_backend/platform/config"
	"dealflow_backend/platform/db"
	"dealflow_backend/platform/events"
	"dealflow_backend/platform/logger"
	"dealflow_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env, "queue", cfg.WorkerQueueName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()

	propertyDataModule, err := propertydata.NewModule(cfg, log)
	if err != nil {
		log.Error("failed to initialize property data module", "error", err)
		panic("failed to initialize property data module: " + err.Error())
	}
	defer propertyDataModule.Close()

	propertiesModule := properties.NewModule(pool, cfg, val, log)

	discoveryService := discovery.New(
		propertyDataModule.Service(),
		propertiesModule.Service(),
		discovery.StaticProfileScorer{Value: 50},
		eventBus,
		log,
	)

	reporting.NewModule(log).RegisterHandlers(eventBus)

	worker, err := scheduler.NewWorker(cfg, discoveryService, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	worker.Run(ctx)
	log.Info("worker stopped")
}
