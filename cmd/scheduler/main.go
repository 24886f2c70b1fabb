// Command scheduler runs the queued notification worker on its own, for
// deployments that keep delivery out of the API process.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"portfolio_backend/internal/locale"
	"portfolio_backend/internal/notification"
	"portfolio_backend/internal/scheduler"
	"portfolio_backend/platform/config"
	"portfolio_backend/platform/logger"
)

func main() {
	cfg, err := config.LoadWorker()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env, "queue", cfg.GetAsynqQueueName())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := locale.Load()
	if err != nil {
		log.Error("failed to load locale tables", "error", err)
		panic("failed to load locale tables: " + err.Error())
	}

	notifier := notification.NewNotifierFromConfig(cfg, catalog, log)
	log.Info("notification channels configured", "channels", notifier.Channels())

	worker, err := scheduler.NewWorker(cfg, notifier, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	if err := worker.Run(ctx); err != nil {
		log.Error("scheduler worker failed", "error", err)
		os.Exit(1)
	}
}
