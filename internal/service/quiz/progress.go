package quiz

import (
	"time"

	"github.com/heartmarshall/lugatlab/internal/domain"
)

const (
	correctDelta = 0.10
	wrongDelta   = -0.08
)

// ApplyAnswers folds a session's answers into the prior progress and returns
// the updated records in first-answer order. Repeated answers to the same
// word apply cumulatively. prior is not modified.
func ApplyAnswers(prior domain.ProgressMap, answers []domain.AnswerRecord, now time.Time) []domain.ProgressRecord {
	index := make(map[string]int, len(answers))
	out := make([]domain.ProgressRecord, 0, len(answers))

	for _, a := range answers {
		i, ok := index[a.WordID]
		if !ok {
			rec := prior[a.WordID]
			rec.WordID = a.WordID
			out = append(out, rec)
			i = len(out) - 1
			index[a.WordID] = i
		}
		out[i] = applyAnswer(out[i], a.IsCorrect, now)
	}

	return out
}

func applyAnswer(rec domain.ProgressRecord, correct bool, now time.Time) domain.ProgressRecord {
	delta := wrongDelta
	if correct {
		rec.CorrectCount++
		delta = correctDelta
	} else {
		rec.WrongCount++
	}
	rec.MasteryScore = clamp(rec.MasteryScore+delta, 0, 1)
	rec.LastSeenAt = now
	return rec
}

// answeredWordIDs returns the distinct word ids in answer order.
func answeredWordIDs(answers []domain.AnswerRecord) []string {
	seen := make(map[string]struct{}, len(answers))
	ids := make([]string, 0, len(answers))
	for _, a := range answers {
		if _, ok := seen[a.WordID]; ok {
			continue
		}
		seen[a.WordID] = struct{}{}
		ids = append(ids, a.WordID)
	}
	return ids
}

// countCorrect returns the number of correct answers.
func countCorrect(answers []domain.AnswerRecord) int {
	n := 0
	for _, a := range answers {
		if a.IsCorrect {
			n++
		}
	}
	return n
}
