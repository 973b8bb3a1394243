// Package attempt implements quiz attempt persistence using PostgreSQL.
package attempt

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/lugatlab/internal/adapter/postgres"
	"github.com/heartmarshall/lugatlab/internal/domain"
)

const table = "quiz_attempts"

var columns = []string{"id", "user_id", "score", "total", "duration_sec", "created_at"}

// Repo provides attempt persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new attempt repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts an attempt.
func (r *Repo) Create(ctx context.Context, a domain.QuizAttempt) error {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(a.ID, a.UserID, a.Score, a.Total, a.DurationSec, a.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert attempt query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "attempt", a.ID.String())
	}
	return nil
}

// ListRecent returns up to limit attempts of the user, newest first.
func (r *Repo) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.QuizAttempt, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(max(limit, 0))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list attempts query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "attempts", userID.String())
	}

	attempts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.QuizAttempt, error) {
		var a domain.QuizAttempt
		err := row.Scan(&a.ID, &a.UserID, &a.Score, &a.Total, &a.DurationSec, &a.CreatedAt)
		return a, err
	})
	if err != nil {
		return nil, postgres.MapError(err, "attempts", userID.String())
	}

	return attempts, nil
}
