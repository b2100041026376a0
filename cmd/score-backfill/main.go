// Command score-backfill recomputes scores for stored properties after a
// scorer version bump. Records already on the current version are skipped,
// so the command is safe to re-run.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"dealflow_backend/internal/properties"
	"dealflow_backend/internal/scoring"
	"dealflow_backend/platform/config"
	"dealflow_backend/platform/db"
	"dealflow_backend/platform/logger"
	"dealflow_backend/platform/validator"
)

func main() {
	batchSize := flag.Int("batch", 500, "records per rescore batch")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting score backfill", "version", scoring.ScorerVersion, "batch", *batchSize)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	propertiesModule := properties.NewModule(pool, cfg, validator.New(), log)

	updated, err := propertiesModule.Service().Rescore(ctx, *batchSize)
	if err != nil {
		log.Error("score backfill failed", "updated", updated, "error", err)
		panic("score backfill failed: " + err.Error())
	}

	log.Info("score backfill complete", "updated", updated, "version", scoring.ScorerVersion)
}
