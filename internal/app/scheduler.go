package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/heartmarshall/lugatlab/internal/domain"
)

type batchRunner interface {
	RunBatch(ctx context.Context, now time.Time) (domain.BatchReport, error)
}

// Scheduler triggers the reminder batch at a fixed interval. Runs never
// overlap: a tick that fires while the previous batch is still running is
// skipped.
type Scheduler struct {
	cron    *gocron.Scheduler
	runner  batchRunner
	timeout time.Duration
	log     *slog.Logger
	ctx     context.Context
	now     func() time.Time
}

// NewScheduler registers the reminder job. The job runs first on Start and
// then every interval.
func NewScheduler(runner batchRunner, interval, timeout time.Duration, log *slog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    gocron.NewScheduler(time.UTC),
		runner:  runner,
		timeout: timeout,
		log:     log.With("component", "scheduler"),
		ctx:     context.Background(),
		now:     time.Now,
	}

	s.cron.SingletonModeAll()
	if _, err := s.cron.Every(interval).Do(s.run); err != nil {
		return nil, fmt.Errorf("schedule reminder job: %w", err)
	}
	return s, nil
}

// Start runs the scheduler in the background. Batches started after ctx is
// cancelled see a cancelled context.
func (s *Scheduler) Start(ctx context.Context) {
	s.ctx = ctx
	s.cron.StartAsync()
}

// Stop halts the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) run() {
	ctx := s.ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	report, err := s.runner.RunBatch(ctx, s.now())
	if err != nil {
		s.log.ErrorContext(ctx, "scheduled reminder batch failed", slog.String("error", err.Error()))
		return
	}
	s.log.DebugContext(ctx, "scheduled reminder batch done",
		slog.Int("sent", report.SentCount),
		slog.Int("skipped", report.SkippedCount),
		slog.Int("failed", report.FailedCount),
		slog.Int("disabled", report.DisabledCount),
	)
}
