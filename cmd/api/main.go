package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio_backend/internal/contact"
	"portfolio_backend/internal/dashboard"
	dashboardauth "portfolio_backend/internal/dashboard/auth"
	"portfolio_backend/internal/events"
	apphttp "portfolio_backend/internal/http"
	"portfolio_backend/internal/http/router"
	"portfolio_backend/internal/locale"
	"portfolio_backend/internal/notification"
	"portfolio_backend/internal/scheduler"
	submissionsrepo "portfolio_backend/internal/submissions/repository"
	"portfolio_backend/platform/config"
	"portfolio_backend/platform/db"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, pool, log)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	catalog, err := locale.Load()
	if err != nil {
		log.Error("failed to load locale tables", "error", err)
		panic("failed to load locale tables: " + err.Error())
	}

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	notifier := notification.NewNotifierFromConfig(cfg, catalog, log)
	log.Info("notification channels configured", "channels", notifier.Channels())

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.NewModule(notifier, log)
	notificationModule.RegisterHandlers(eventBus)

	var worker *scheduler.Worker
	if cfg.IsQueuedDeliveryEnabled() {
		client, err := scheduler.NewClient(cfg)
		if err != nil {
			log.Error("failed to initialize scheduler client", "error", err)
			panic("failed to initialize scheduler client: " + err.Error())
		}
		defer func() { _ = client.Close() }()
		notificationModule.SetEnqueuer(client)

		worker, err = scheduler.NewWorker(cfg, notifier, log)
		if err != nil {
			log.Error("failed to initialize scheduler worker", "error", err)
			panic("failed to initialize scheduler worker: " + err.Error())
		}
	} else {
		log.Warn("REDIS_URL not configured; notifications are delivered in-process")
	}

	submissions := submissionsrepo.New(pool)

	authn, err := dashboardAuthenticator(cfg)
	if err != nil {
		log.Warn("dashboard disabled", "reason", err.Error())
	}

	contactModule := contact.NewModule(submissions, eventBus, val, log)
	dashboardModule := dashboard.NewModule(submissions, authn, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   pool,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			contactModule,
			dashboardModule,
		},
	}

	engine := router.New(app)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if worker != nil {
		g.Go(func() error {
			return worker.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
	}

	// Let in-flight notifications finish before the pool closes.
	eventBus.Wait()
	log.Info("server stopped")
}

// dashboardAuthenticator accepts the static secret and, when configured, signed dashboard JWTs.
func dashboardAuthenticator(cfg config.DashboardAuthConfig) (dashboardauth.Authenticator, error) {
	var providers []dashboardauth.Authenticator
	if cfg.GetDashboardSecretToken() != "" {
		providers = append(providers, dashboardauth.NewStaticTokenAuthenticator(cfg.GetDashboardSecretToken()))
	}
	if cfg.GetDashboardJWTSecret() != "" {
		providers = append(providers, dashboardauth.NewJWTAuthenticator(cfg.GetDashboardJWTSecret()))
	}
	if len(providers) == 0 {
		// Rejects every token, so the dashboard answers 401 rather than disappearing.
		return dashboardauth.NewStaticTokenAuthenticator(""), errors.New("DASHBOARD_SECRET_TOKEN and DASHBOARD_JWT_SECRET are both empty")
	}
	return dashboardauth.AnyOf(providers...), nil
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
