// Package subscription implements the browser push subscription repository
// using PostgreSQL.
package subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/lugatlab/internal/adapter/postgres"
	"github.com/heartmarshall/lugatlab/internal/domain"
)

// Repo provides push subscription persistence backed by PostgreSQL.
type Repo struct {
	db  postgres.Querier
	now func() time.Time
}

// New creates a new subscription repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db, now: time.Now}
}

const table = "push_subscriptions"

var columns = []string{"id", "user_id", "endpoint", "p256dh", "auth", "enabled", "created_at", "updated_at"}

const upsertSQL = `
INSERT INTO push_subscriptions (id, user_id, endpoint, p256dh, auth, enabled, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, true, $6, $6)
ON CONFLICT (user_id, endpoint) DO UPDATE SET
	p256dh = EXCLUDED.p256dh,
	auth = EXCLUDED.auth,
	enabled = true,
	updated_at = EXCLUDED.updated_at
RETURNING id, user_id, endpoint, p256dh, auth, enabled, created_at, updated_at`

// Upsert registers an endpoint for the user, re-enabling it and refreshing
// its keys when it already exists.
func (r *Repo) Upsert(ctx context.Context, s domain.PushSubscription) (*domain.PushSubscription, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	row := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, upsertSQL,
		s.ID, s.UserID, s.Endpoint, s.P256dh, s.Auth, r.now().UTC(),
	)

	saved, err := scanSubscription(row)
	if err != nil {
		return nil, postgres.MapError(err, "push_subscription", s.Endpoint)
	}
	return &saved, nil
}

// ListEnabledByUserIDs returns the enabled subscriptions of the given users.
func (r *Repo) ListEnabledByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]domain.PushSubscription, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	ids := make([]string, len(userIDs))
	for i, id := range userIDs {
		ids[i] = id.String()
	}

	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"enabled": true, "user_id": ids}).
		OrderBy("user_id", "created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list subscriptions query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "push_subscriptions", "")
	}

	subs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PushSubscription, error) {
		return scanSubscription(row)
	})
	if err != nil {
		return nil, postgres.MapError(err, "push_subscriptions", "")
	}
	return subs, nil
}

// Disable switches off the given subscriptions and returns how many rows
// changed.
func (r *Repo) Disable(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}

	query, args, err := postgres.Builder().
		Update(table).
		Set("enabled", false).
		Set("updated_at", r.now().UTC()).
		Where(squirrel.Eq{"id": keys, "enabled": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build disable subscriptions query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "push_subscriptions", "")
	}
	return int(tag.RowsAffected()), nil
}

func scanSubscription(row pgx.Row) (domain.PushSubscription, error) {
	var s domain.PushSubscription
	err := row.Scan(&s.ID, &s.UserID, &s.Endpoint, &s.P256dh, &s.Auth, &s.Enabled, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}
