package localstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lugatlab/internal/domain"
)

type settingsRecord struct {
	Enabled        bool       `json:"enabled"`
	DailyTimeLocal string     `json:"daily_time_local"`
	Timezone       string     `json:"timezone"`
	LastSentAt     *time.Time `json:"last_sent_at,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// SettingsRepo stores the reminder setting of the local profile.
type SettingsRepo struct {
	store *Store
}

// NewSettingsRepo creates a settings repository over store.
func NewSettingsRepo(store *Store) *SettingsRepo {
	return &SettingsRepo{store: store}
}

// Get returns the stored setting or domain.ErrNotFound. Missing fields fall
// back to the defaults.
func (r *SettingsRepo) Get(_ context.Context, userID uuid.UUID) (*domain.ReminderSetting, error) {
	rec, ok := r.load()
	if !ok {
		return nil, domain.ErrNotFound
	}
	s := rec.toDomain(userID)
	return &s, nil
}

// Upsert saves the setting, keeping the last delivery time.
func (r *SettingsRepo) Upsert(ctx context.Context, s domain.ReminderSetting) (*domain.ReminderSetting, error) {
	var saved settingsRecord
	err := modify(ctx, r.store, KeySettings, func(rec *settingsRecord) error {
		rec.Enabled = s.Enabled
		rec.DailyTimeLocal = s.DailyTimeLocal
		rec.Timezone = s.Timezone
		rec.UpdatedAt = r.store.now().UTC()
		saved = *rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := saved.toDomain(s.UserID)
	return &out, nil
}

// EnableWithTimezone switches reminders on and records timezone.
func (r *SettingsRepo) EnableWithTimezone(ctx context.Context, _ uuid.UUID, timezone string) error {
	return modify(ctx, r.store, KeySettings, func(rec *settingsRecord) error {
		rec.Enabled = true
		rec.Timezone = timezone
		if rec.DailyTimeLocal == "" {
			rec.DailyTimeLocal = domain.DefaultReminderTime
		}
		rec.UpdatedAt = r.store.now().UTC()
		return nil
	})
}

// ListEnabled returns the local setting when reminders are on.
func (r *SettingsRepo) ListEnabled(_ context.Context) ([]domain.ReminderSetting, error) {
	rec, ok := r.load()
	if !ok || !rec.Enabled {
		return nil, nil
	}
	return []domain.ReminderSetting{rec.toDomain(domain.LocalUserID)}, nil
}

// MarkSent stamps the last delivery time.
func (r *SettingsRepo) MarkSent(ctx context.Context, _ uuid.UUID, at time.Time) error {
	if _, ok := r.load(); !ok {
		return domain.ErrNotFound
	}
	return modify(ctx, r.store, KeySettings, func(rec *settingsRecord) error {
		rec.LastSentAt = &at
		rec.UpdatedAt = at
		return nil
	})
}

func (r *SettingsRepo) load() (settingsRecord, bool) {
	var rec *settingsRecord
	view(r.store, KeySettings, &rec)
	if rec == nil {
		return settingsRecord{}, false
	}
	return *rec, true
}

func (s settingsRecord) toDomain(userID uuid.UUID) domain.ReminderSetting {
	out := domain.DefaultReminderSetting(userID)
	out.Enabled = s.Enabled
	if s.DailyTimeLocal != "" {
		out.DailyTimeLocal = s.DailyTimeLocal
	}
	if s.Timezone != "" {
		out.Timezone = s.Timezone
	}
	out.LastSentAt = s.LastSentAt
	out.UpdatedAt = s.UpdatedAt
	return out
}
