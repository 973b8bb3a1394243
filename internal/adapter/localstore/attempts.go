package localstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lugatlab/internal/domain"
)

type attemptRecord struct {
	ID          uuid.UUID `json:"id"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	DurationSec int       `json:"duration_sec"`
	CreatedAt   time.Time `json:"created_at"`
}

// AttemptRepo stores attempts of the local profile, newest first.
type AttemptRepo struct {
	store *Store
}

// NewAttemptRepo creates an attempt repository over store.
func NewAttemptRepo(store *Store) *AttemptRepo {
	return &AttemptRepo{store: store}
}

// Create prepends the attempt and drops everything past MaxAttempts.
func (r *AttemptRepo) Create(ctx context.Context, a domain.QuizAttempt) error {
	return modify(ctx, r.store, KeyAttempts, func(list *[]attemptRecord) error {
		rec := attemptRecord{
			ID:          a.ID,
			Score:       a.Score,
			Total:       a.Total,
			DurationSec: a.DurationSec,
			CreatedAt:   a.CreatedAt,
		}
		*list = append([]attemptRecord{rec}, *list...)
		if len(*list) > MaxAttempts {
			*list = (*list)[:MaxAttempts]
		}
		return nil
	})
}

// ListRecent returns up to limit attempts, newest first. userID is ignored;
// the store holds a single profile.
func (r *AttemptRepo) ListRecent(_ context.Context, userID uuid.UUID, limit int) ([]domain.QuizAttempt, error) {
	var list []attemptRecord
	view(r.store, KeyAttempts, &list)

	n := min(max(limit, 0), len(list))
	out := make([]domain.QuizAttempt, n)
	for i, rec := range list[:n] {
		out[i] = domain.QuizAttempt{
			ID:          rec.ID,
			UserID:      userID,
			Score:       rec.Score,
			Total:       rec.Total,
			DurationSec: rec.DurationSec,
			CreatedAt:   rec.CreatedAt,
		}
	}
	return out, nil
}
