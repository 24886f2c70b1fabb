package scheduler

import (
	"context"
	"fmt"

	"portfolio_backend/internal/events"
	"portfolio_backend/platform/config"
	"portfolio_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Deliverer sends a contact notification through its channels.
type Deliverer interface {
	Deliver(ctx context.Context, evt events.ContactSubmitted) error
}

type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	deliverer Deliverer
	log       *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, deliverer Deliverer, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 4
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	w := &Worker{
		server:    server,
		deliverer: deliverer,
		log:       log,
	}
	w.mux = w.routes()

	return w, nil
}

func (w *Worker) routes() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskContactNotification, w.handleContactNotification)
	return mux
}

func (w *Worker) handleContactNotification(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseContactNotificationPayload(task)
	if err != nil {
		return fmt.Errorf("parse contact notification: %v: %w", err, asynq.SkipRetry)
	}

	evt, err := payload.Event()
	if err != nil {
		return fmt.Errorf("invalid submission id %q: %v: %w", payload.SubmissionID, err, asynq.SkipRetry)
	}

	if err := w.deliverer.Deliver(ctx, evt); err != nil {
		w.log.Warn("contact notification delivery failed", "submissionId", payload.SubmissionID, "error", err)
		return err
	}
	return nil
}

// Run processes tasks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil || w.server == nil {
		return nil
	}

	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("start scheduler worker: %w", err)
	}
	w.log.Info("scheduler worker started")

	<-ctx.Done()
	w.server.Shutdown()
	w.log.Info("scheduler worker stopped")
	return nil
}
