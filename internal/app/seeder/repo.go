// Package seeder imports word lists into the word catalog.
package seeder

import (
	"context"

	"github.com/heartmarshall/lugatlab/internal/domain"
)

// WordBulkRepo is the write side of the word catalog consumed by the
// pipeline. Upsert inserts or replaces words by id and returns the number of
// rows written. Implemented by word.Repo.
type WordBulkRepo interface {
	Upsert(ctx context.Context, words []domain.Word) (int, error)
}
