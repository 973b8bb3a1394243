package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/lugatlab/internal/domain"
	"github.com/heartmarshall/lugatlab/pkg/ctxutil"
)

// Subscribe registers a push endpoint for the user and switches their daily
// reminder on in the given timezone.
func (s *Service) Subscribe(ctx context.Context, input SubscribeInput) (*domain.PushSubscription, error) {
	if s.subs == nil {
		return nil, fmt.Errorf("reminder.Subscribe: subscriptions store: %w", domain.ErrConfig)
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	tz := input.Timezone
	if tz == "" {
		tz = s.cfg.DefaultTimezone
	}

	var saved *domain.PushSubscription
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		sub, err := s.subs.Upsert(txCtx, domain.PushSubscription{
			UserID:   userID,
			Endpoint: strings.TrimSpace(input.Endpoint),
			P256dh:   input.P256dh,
			Auth:     input.Auth,
			Enabled:  true,
		})
		if err != nil {
			return fmt.Errorf("upsert subscription: %w", err)
		}
		saved = sub

		if err := s.settings.EnableWithTimezone(txCtx, userID, tz); err != nil {
			return fmt.Errorf("enable reminders: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reminder.Subscribe: %w", err)
	}

	s.log.InfoContext(ctx, "push subscription saved",
		slog.String("user_id", userID.String()),
		slog.String("subscription_id", saved.ID.String()),
		slog.String("timezone", tz),
	)

	return saved, nil
}
