// Package word implements the quiz word catalog repository using PostgreSQL.
package word

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	postgres "github.com/heartmarshall/lugatlab/internal/adapter/postgres"
	"github.com/heartmarshall/lugatlab/internal/domain"
)

const (
	table     = "words"
	chunkSize = 500
)

var columns = []string{"id", "word", "translation", "example", "level", "category", "is_active"}

// Repo provides word persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new word repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ListActive returns active words of the given levels ordered by id.
func (r *Repo) ListActive(ctx context.Context, levels []domain.WordLevel) ([]domain.Word, error) {
	lv := make([]string, len(levels))
	for i, l := range levels {
		lv[i] = l.String()
	}

	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"is_active": true, "level": lv}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list words query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "words", "")
	}
	defer rows.Close()

	var words []domain.Word
	for rows.Next() {
		var (
			w     domain.Word
			level string
		)
		if err := rows.Scan(&w.ID, &w.Word, &w.Translation, &w.Example, &level, &w.Category, &w.Active); err != nil {
			return nil, postgres.MapError(err, "words", "")
		}
		w.Level = domain.WordLevel(level)
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "words", "")
	}

	return words, nil
}

// Upsert inserts words or updates them by id. Returns the number of rows
// written.
func (r *Repo) Upsert(ctx context.Context, words []domain.Word) (int, error) {
	total := 0
	for start := 0; start < len(words); start += chunkSize {
		chunk := words[start:min(start+chunkSize, len(words))]

		insert := postgres.Builder().Insert(table).Columns(columns...)
		for _, w := range chunk {
			insert = insert.Values(w.ID, w.Word, w.Translation, w.Example, w.Level.String(), w.Category, w.Active)
		}

		query, args, err := insert.
			Suffix(`ON CONFLICT (id) DO UPDATE SET
				word = EXCLUDED.word,
				translation = EXCLUDED.translation,
				example = EXCLUDED.example,
				level = EXCLUDED.level,
				category = EXCLUDED.category,
				is_active = EXCLUDED.is_active`).
			ToSql()
		if err != nil {
			return total, fmt.Errorf("build upsert words query: %w", err)
		}

		tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
		if err != nil {
			return total, postgres.MapError(err, "words", "")
		}
		total += int(tag.RowsAffected())
	}

	return total, nil
}
