package localstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lugatlab/internal/domain"
)

type progressRecord struct {
	CorrectCount int       `json:"correct_count"`
	WrongCount   int       `json:"wrong_count"`
	MasteryScore float64   `json:"mastery_score"`
	LastSeenAt   time.Time `json:"last_seen_at"`
}

// ProgressRepo stores per-word mastery of the local profile.
type ProgressRepo struct {
	store *Store
}

// NewProgressRepo creates a progress repository over store.
func NewProgressRepo(store *Store) *ProgressRepo {
	return &ProgressRepo{store: store}
}

// GetByUser returns all records.
func (r *ProgressRepo) GetByUser(_ context.Context, _ uuid.UUID) (domain.ProgressMap, error) {
	var m map[string]progressRecord
	view(r.store, KeyProgress, &m)

	out := make(domain.ProgressMap, len(m))
	for id, rec := range m {
		out[id] = rec.toDomain(id)
	}
	return out, nil
}

// GetByWordIDs returns the records of the given words.
func (r *ProgressRepo) GetByWordIDs(_ context.Context, _ uuid.UUID, wordIDs []string) (domain.ProgressMap, error) {
	var m map[string]progressRecord
	view(r.store, KeyProgress, &m)

	out := make(domain.ProgressMap, len(wordIDs))
	for _, id := range wordIDs {
		if rec, ok := m[id]; ok {
			out[id] = rec.toDomain(id)
		}
	}
	return out, nil
}

// Upsert replaces the records of the given words.
func (r *ProgressRepo) Upsert(ctx context.Context, _ uuid.UUID, records []domain.ProgressRecord) error {
	if len(records) == 0 {
		return nil
	}
	return modify(ctx, r.store, KeyProgress, func(m *map[string]progressRecord) error {
		if *m == nil {
			*m = make(map[string]progressRecord, len(records))
		}
		for _, rec := range records {
			(*m)[rec.WordID] = progressRecord{
				CorrectCount: rec.CorrectCount,
				WrongCount:   rec.WrongCount,
				MasteryScore: rec.MasteryScore,
				LastSeenAt:   rec.LastSeenAt,
			}
		}
		return nil
	})
}

func (p progressRecord) toDomain(wordID string) domain.ProgressRecord {
	return domain.ProgressRecord{
		WordID:       wordID,
		CorrectCount: p.CorrectCount,
		WrongCount:   p.WrongCount,
		MasteryScore: p.MasteryScore,
		LastSeenAt:   p.LastSeenAt,
	}
}
