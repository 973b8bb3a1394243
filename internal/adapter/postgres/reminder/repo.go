// Package reminder implements the per-user reminder settings repository
// using PostgreSQL.
package reminder

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/lugatlab/internal/adapter/postgres"
	"github.com/heartmarshall/lugatlab/internal/domain"
)

// Repo provides reminder settings persistence backed by PostgreSQL.
type Repo struct {
	db  postgres.Querier
	now func() time.Time
}

// New creates a new reminder settings repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db, now: time.Now}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const settingColumns = `user_id, enabled, daily_time_local, timezone, last_sent_at, updated_at`

const getSQL = `
SELECT ` + settingColumns + `
FROM reminder_settings
WHERE user_id = $1`

const upsertSQL = `
INSERT INTO reminder_settings (user_id, enabled, daily_time_local, timezone, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id) DO UPDATE SET
	enabled = EXCLUDED.enabled,
	daily_time_local = EXCLUDED.daily_time_local,
	timezone = EXCLUDED.timezone,
	updated_at = EXCLUDED.updated_at
RETURNING ` + settingColumns

const enableSQL = `
INSERT INTO reminder_settings (user_id, enabled, daily_time_local, timezone, updated_at)
VALUES ($1, true, $2, $3, $4)
ON CONFLICT (user_id) DO UPDATE SET
	enabled = true,
	timezone = EXCLUDED.timezone,
	updated_at = EXCLUDED.updated_at`

const listEnabledSQL = `
SELECT ` + settingColumns + `
FROM reminder_settings
WHERE enabled = true
ORDER BY user_id`

const markSentSQL = `
UPDATE reminder_settings
SET last_sent_at = $2, updated_at = $2
WHERE user_id = $1`

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// Get returns the settings of the user or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID) (*domain.ReminderSetting, error) {
	row := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, getSQL, userID)

	s, err := scanSetting(row)
	if err != nil {
		return nil, postgres.MapError(err, "reminder_settings", userID.String())
	}
	return &s, nil
}

// Upsert saves enabled, time and timezone. last_sent_at is left untouched.
func (r *Repo) Upsert(ctx context.Context, s domain.ReminderSetting) (*domain.ReminderSetting, error) {
	row := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, upsertSQL,
		s.UserID, s.Enabled, s.DailyTimeLocal, s.Timezone, r.now().UTC(),
	)

	saved, err := scanSetting(row)
	if err != nil {
		return nil, postgres.MapError(err, "reminder_settings", s.UserID.String())
	}
	return &saved, nil
}

// EnableWithTimezone turns reminders on and records the timezone, creating
// the row with the default time when it does not exist yet.
func (r *Repo) EnableWithTimezone(ctx context.Context, userID uuid.UUID, timezone string) error {
	_, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, enableSQL,
		userID, domain.DefaultReminderTime, timezone, r.now().UTC(),
	)
	if err != nil {
		return postgres.MapError(err, "reminder_settings", userID.String())
	}
	return nil
}

// ListEnabled returns every setting with reminders switched on.
func (r *Repo) ListEnabled(ctx context.Context) ([]domain.ReminderSetting, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, listEnabledSQL)
	if err != nil {
		return nil, postgres.MapError(err, "reminder_settings", "")
	}

	settings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ReminderSetting, error) {
		return scanSetting(row)
	})
	if err != nil {
		return nil, postgres.MapError(err, "reminder_settings", "")
	}
	return settings, nil
}

// MarkSent stamps the last successful delivery time.
func (r *Repo) MarkSent(ctx context.Context, userID uuid.UUID, at time.Time) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, markSentSQL, userID, at)
	if err != nil {
		return postgres.MapError(err, "reminder_settings", userID.String())
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "reminder_settings", userID.String())
	}
	return nil
}

func scanSetting(row pgx.Row) (domain.ReminderSetting, error) {
	var (
		s        domain.ReminderSetting
		lastSent *time.Time
	)
	err := row.Scan(&s.UserID, &s.Enabled, &s.DailyTimeLocal, &s.Timezone, &lastSent, &s.UpdatedAt)
	if err != nil {
		return domain.ReminderSetting{}, err
	}
	s.LastSentAt = lastSent
	return s, nil
}
