package quiz

import (
	"slices"

	"github.com/heartmarshall/lugatlab/internal/domain"
)

const (
	maxWeight = 1.2
	minWeight = 0.2
)

// Weight returns the selection weight of a word with the given mastery.
// Unseen words (mastery 0) get the maximum weight; fully mastered words keep
// the floor so they still come up occasionally.
func Weight(mastery float64) float64 {
	return clamp(maxWeight-mastery, minWeight, maxWeight)
}

type candidate struct {
	word   domain.Word
	weight float64
}

// Select draws min(count, len(pool)) distinct words from pool, weighted
// towards low mastery, without replacement.
func Select(pool []domain.Word, progress domain.ProgressMap, count int, rng Rand) ([]domain.Word, error) {
	if len(pool) < domain.MinQuizWords {
		return nil, &domain.InsufficientWordsError{Have: len(pool), Need: domain.MinQuizWords}
	}

	count = min(max(count, 0), len(pool))

	candidates := make([]candidate, len(pool))
	for i, w := range pool {
		candidates[i] = candidate{word: w, weight: Weight(progress.Mastery(w.ID))}
	}

	picked := make([]domain.Word, 0, count)
	for len(picked) < count && len(candidates) > 0 {
		i := pickIndex(candidates, rng)
		picked = append(picked, candidates[i].word)
		candidates = slices.Delete(candidates, i, i+1)
	}

	return picked, nil
}

// pickIndex draws a ticket in [0, sum) and walks the list until the ticket
// falls inside an item's span.
func pickIndex(candidates []candidate, rng Rand) int {
	total := 0.0
	for _, c := range candidates {
		total += c.weight
	}

	ticket := rng.Float64() * total
	for i, c := range candidates {
		if ticket < c.weight {
			return i
		}
		ticket -= c.weight
	}

	// Rounding can leave a sliver past the last span.
	return len(candidates) - 1
}

func clamp(v, lo, hi float64) float64 {
	return min(hi, max(lo, v))
}
