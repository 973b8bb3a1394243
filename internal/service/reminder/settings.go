package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/lugatlab/internal/domain"
	"github.com/heartmarshall/lugatlab/pkg/ctxutil"
)

// GetSettings returns the user's reminder setting, or the defaults when none
// is stored or the store cannot be read.
func (s *Service) GetSettings(ctx context.Context) (domain.ReminderSetting, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ReminderSetting{}, domain.ErrUnauthorized
	}

	setting, err := s.settings.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "reminder settings unavailable, using defaults",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()),
			)
		}
		def := domain.DefaultReminderSetting(userID)
		def.Timezone = s.cfg.DefaultTimezone
		return def, nil
	}

	return *setting, nil
}

// SaveSettings stores the user's reminder setting. The last send time is
// kept as is.
func (s *Service) SaveSettings(ctx context.Context, input SaveSettingsInput) (domain.ReminderSetting, error) {
	if err := input.Validate(); err != nil {
		return domain.ReminderSetting{}, err
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ReminderSetting{}, domain.ErrUnauthorized
	}

	tz := input.Timezone
	if tz == "" {
		tz = s.cfg.DefaultTimezone
	}

	saved, err := s.settings.Upsert(ctx, domain.ReminderSetting{
		UserID:         userID,
		Enabled:        input.Enabled,
		DailyTimeLocal: input.DailyTimeLocal,
		Timezone:       tz,
	})
	if err != nil {
		return domain.ReminderSetting{}, fmt.Errorf("reminder.SaveSettings: %w", err)
	}

	s.log.InfoContext(ctx, "reminder settings saved",
		slog.String("user_id", userID.String()),
		slog.Bool("enabled", saved.Enabled),
		slog.String("daily_time_local", saved.DailyTimeLocal),
		slog.String("timezone", saved.Timezone),
	)

	return *saved, nil
}
