package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/lugatlab/internal/config"
	"github.com/heartmarshall/lugatlab/internal/domain"
	"github.com/heartmarshall/lugatlab/internal/transport/middleware"
	"github.com/heartmarshall/lugatlab/internal/transport/rest"
)

// Run is the HTTP server entry point. It loads configuration, opens the
// storage backend, wires services and serves until ctx is cancelled, then
// shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage", cfg.Storage.Backend),
	)

	st, err := NewStorage(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer st.Close()

	svcs := NewServices(cfg, st, logger)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	handler := rest.NewRouter(rest.RouterDeps{
		Health:         rest.NewHealthHandler(st.Pinger, st.Backend, BuildVersion()),
		Quiz:           rest.NewQuizHandler(svcs.Quiz, logger),
		Reminder:       rest.NewReminderHandler(svcs.Reminder, logger),
		Jobs:           rest.NewJobHandler(svcs.Reminder, cfg.Reminder.CronSecret, cfg.Reminder.BatchTimeout, logger),
		Identity:       NewIdentity(cfg, logger),
		SubscribeLimit: limiter.Limit(cfg.RateLimit.SubscribePerMinute),
		CORS:           cfg.CORS,
		Logger:         logger,
	})

	if cfg.Scheduler.Enabled {
		sched, err := NewScheduler(svcs.Reminder, cfg.Scheduler.Interval, cfg.Reminder.BatchTimeout, logger)
		if err != nil {
			return err
		}
		sched.Start(ctx)
		defer sched.Stop()
		logger.Info("reminder scheduler started", slog.Duration("interval", cfg.Scheduler.Interval))
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

// RunReminders executes one reminder batch and returns its report. It backs
// the one-shot command invoked by an external cron.
func RunReminders(ctx context.Context) (domain.BatchReport, error) {
	cfg, err := config.Load()
	if err != nil {
		return domain.BatchReport{}, err
	}

	logger := NewLogger(cfg.Log)

	st, err := NewStorage(ctx, cfg, logger)
	if err != nil {
		return domain.BatchReport{}, fmt.Errorf("open storage: %w", err)
	}
	defer st.Close()

	svcs := NewServices(cfg, st, logger)

	if cfg.Reminder.BatchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Reminder.BatchTimeout)
		defer cancel()
	}

	start := time.Now()
	report, err := svcs.Reminder.RunBatch(ctx, start)
	if err != nil {
		return report, fmt.Errorf("reminder batch: %w", err)
	}

	logger.Info("reminder batch completed",
		slog.Int("sent", report.SentCount),
		slog.Int("skipped", report.SkippedCount),
		slog.Int("failed", report.FailedCount),
		slog.Int("disabled", report.DisabledCount),
		slog.Duration("took", time.Since(start)),
	)
	return report, nil
}
