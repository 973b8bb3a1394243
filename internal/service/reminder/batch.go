package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/lugatlab/internal/domain"
)

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeSent
	outcomeFailed
)

type userResult struct {
	outcome outcome
	sent    int
	dead    []uuid.UUID
}

// RunBatch sends the daily reminder to every enabled user who is due at now.
// A failure for one user never stops the others; only failures to load the
// batch itself are returned.
func (s *Service) RunBatch(ctx context.Context, now time.Time) (domain.BatchReport, error) {
	if s.sender == nil || s.subs == nil {
		return domain.BatchReport{}, fmt.Errorf("reminder.RunBatch: push delivery: %w", domain.ErrConfig)
	}

	settings, err := s.settings.ListEnabled(ctx)
	if err != nil {
		return domain.BatchReport{}, fmt.Errorf("reminder.RunBatch: list settings: %w", err)
	}
	if len(settings) == 0 {
		s.log.InfoContext(ctx, "reminder batch finished, no enabled users")
		return domain.BatchReport{}, nil
	}

	userIDs := make([]uuid.UUID, len(settings))
	for i, st := range settings {
		userIDs[i] = st.UserID
	}

	subs, err := s.subs.ListEnabledByUserIDs(ctx, userIDs)
	if err != nil {
		return domain.BatchReport{}, fmt.Errorf("reminder.RunBatch: list subscriptions: %w", err)
	}

	byUser := make(map[uuid.UUID][]domain.PushSubscription, len(settings))
	for _, sub := range subs {
		byUser[sub.UserID] = append(byUser[sub.UserID], sub)
	}

	results := make([]userResult, len(settings))
	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)
	for i, st := range settings {
		g.Go(func() error {
			results[i] = s.processUser(ctx, st, byUser[st.UserID], now)
			return nil
		})
	}
	_ = g.Wait()

	var report domain.BatchReport
	var dead []uuid.UUID
	for _, r := range results {
		report.SentCount += r.sent
		switch r.outcome {
		case outcomeSkipped:
			report.SkippedCount++
		case outcomeFailed:
			report.FailedCount++
		}
		dead = append(dead, r.dead...)
	}

	if len(dead) > 0 {
		n, err := s.subs.Disable(ctx, dead)
		if err != nil {
			s.log.ErrorContext(ctx, "disable stale subscriptions",
				slog.Int("count", len(dead)),
				slog.String("error", err.Error()),
			)
		}
		report.DisabledCount = n
	}

	s.log.InfoContext(ctx, "reminder batch finished",
		slog.Int("users", len(settings)),
		slog.Int("sent", report.SentCount),
		slog.Int("skipped", report.SkippedCount),
		slog.Int("failed", report.FailedCount),
		slog.Int("disabled", report.DisabledCount),
	)

	return report, nil
}

// processUser delivers to one user's subscriptions in order and records the
// send once at least one delivery succeeded.
func (s *Service) processUser(ctx context.Context, setting domain.ReminderSetting, subs []domain.PushSubscription, now time.Time) userResult {
	log := s.log.With(slog.String("user_id", setting.UserID.String()))

	decision, err := s.gate.Evaluate(setting, now)
	if err != nil {
		log.WarnContext(ctx, "reminder evaluation failed", slog.String("error", err.Error()))
		return userResult{outcome: outcomeFailed}
	}
	if !decision.Due {
		return userResult{outcome: outcomeSkipped}
	}
	if len(subs) == 0 {
		log.DebugContext(ctx, "reminder due but no enabled subscriptions")
		return userResult{outcome: outcomeSkipped}
	}

	var res userResult
	for _, sub := range subs {
		err := s.sender.Send(ctx, sub, s.cfg.Message)
		if err == nil {
			res.sent++
			continue
		}

		var de *domain.DeliveryError
		if errors.As(err, &de) && de.Gone() {
			res.dead = append(res.dead, sub.ID)
		}
		log.WarnContext(ctx, "push delivery failed",
			slog.String("subscription_id", sub.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	if res.sent == 0 {
		res.outcome = outcomeFailed
		return res
	}

	if err := s.settings.MarkSent(ctx, setting.UserID, now.UTC()); err != nil {
		log.ErrorContext(ctx, "mark reminder sent", slog.String("error", err.Error()))
		res.outcome = outcomeFailed
		return res
	}

	res.outcome = outcomeSent
	return res
}
