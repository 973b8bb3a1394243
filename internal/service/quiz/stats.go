package quiz

import (
	"math"

	"github.com/heartmarshall/lugatlab/internal/domain"
)

const (
	statsWindow    = 20
	recentAttempts = 5
	defaultBestOf  = DefaultQuestionCount
)

// ComputeStats aggregates attempts ordered newest first.
func ComputeStats(attempts []domain.QuizAttempt) domain.Stats {
	stats := domain.Stats{
		Attempts:  len(attempts),
		BestTotal: defaultBestOf,
		Recent:    attempts[:min(recentAttempts, len(attempts))],
	}
	if len(attempts) == 0 {
		stats.Recent = []domain.QuizAttempt{}
		return stats
	}

	var totalPercent float64
	for _, a := range attempts {
		totalPercent += a.Percent()
		if a.Score > stats.BestScore {
			stats.BestScore = a.Score
			stats.BestTotal = a.Total
			if stats.BestTotal == 0 {
				stats.BestTotal = defaultBestOf
			}
		}
	}
	stats.AveragePercent = int(math.Round(totalPercent / float64(len(attempts))))

	return stats
}
