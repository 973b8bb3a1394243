// Package progress implements per-user word mastery persistence using
// PostgreSQL.
package progress

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/lugatlab/internal/adapter/postgres"
	"github.com/heartmarshall/lugatlab/internal/domain"
)

const table = "user_word_progress"

var columns = []string{"word_id", "correct_count", "wrong_count", "mastery_score", "last_seen_at"}

// Repo provides progress persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new progress repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByUser returns every progress record of the user.
func (r *Repo) GetByUser(ctx context.Context, userID uuid.UUID) (domain.ProgressMap, error) {
	return r.list(ctx, squirrel.Eq{"user_id": userID})
}

// GetByWordIDs returns the user's records for the given words. Words without
// a record are absent from the map.
func (r *Repo) GetByWordIDs(ctx context.Context, userID uuid.UUID, wordIDs []string) (domain.ProgressMap, error) {
	if len(wordIDs) == 0 {
		return domain.ProgressMap{}, nil
	}
	return r.list(ctx, squirrel.Eq{"user_id": userID, "word_id": wordIDs})
}

// Upsert writes the records in a single statement.
func (r *Repo) Upsert(ctx context.Context, userID uuid.UUID, records []domain.ProgressRecord) error {
	if len(records) == 0 {
		return nil
	}

	insert := postgres.Builder().
		Insert(table).
		Columns("user_id", "word_id", "correct_count", "wrong_count", "mastery_score", "last_seen_at")
	for _, rec := range records {
		insert = insert.Values(userID, rec.WordID, rec.CorrectCount, rec.WrongCount, rec.MasteryScore, rec.LastSeenAt)
	}

	query, args, err := insert.
		Suffix(`ON CONFLICT (user_id, word_id) DO UPDATE SET
			correct_count = EXCLUDED.correct_count,
			wrong_count = EXCLUDED.wrong_count,
			mastery_score = EXCLUDED.mastery_score,
			last_seen_at = EXCLUDED.last_seen_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert progress query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "progress", userID.String())
	}
	return nil
}

func (r *Repo) list(ctx context.Context, where squirrel.Eq) (domain.ProgressMap, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build progress query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "progress", "")
	}

	records, err := pgx.CollectRows(rows, scanRecord)
	if err != nil {
		return nil, postgres.MapError(err, "progress", "")
	}

	m := make(domain.ProgressMap, len(records))
	for _, rec := range records {
		m[rec.WordID] = rec
	}
	return m, nil
}

func scanRecord(row pgx.CollectableRow) (domain.ProgressRecord, error) {
	var rec domain.ProgressRecord
	err := row.Scan(&rec.WordID, &rec.CorrectCount, &rec.WrongCount, &rec.MasteryScore, &rec.LastSeenAt)
	return rec, err
}
