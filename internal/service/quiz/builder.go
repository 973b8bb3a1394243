package quiz

import "github.com/heartmarshall/lugatlab/internal/domain"

const (
	// DefaultQuestionCount is used when the caller does not ask for a size.
	DefaultQuestionCount = 10

	// UnknownOption pads the distractors when the pool has fewer than three
	// distinct wrong translations. It may repeat within a question.
	UnknownOption = "Noma'lum"

	distractorCount = domain.QuizOptionCount - 1
)

// Build selects words by mastery and turns each into a four-option
// question. Distractors are drawn from the whole pool, not only from the
// selected words.
func Build(pool []domain.Word, progress domain.ProgressMap, requested int, rng Rand) (*domain.QuizSession, error) {
	if requested <= 0 {
		requested = DefaultQuestionCount
	}

	selected, err := Select(pool, progress, min(requested, len(pool)), rng)
	if err != nil {
		return nil, err
	}

	questions := make([]domain.QuizQuestion, 0, len(selected))
	for _, w := range selected {
		questions = append(questions, buildQuestion(w, pool, rng))
	}

	return &domain.QuizSession{
		Questions: questions,
		Total:     len(questions),
	}, nil
}

func buildQuestion(word domain.Word, pool []domain.Word, rng Rand) domain.QuizQuestion {
	options := make([]string, 0, domain.QuizOptionCount)
	options = append(options, word.Translation)
	options = append(options, distractors(word, pool, rng)...)

	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return domain.QuizQuestion{
		WordID:        word.ID,
		PromptWord:    word.Word,
		Example:       word.Example,
		CorrectAnswer: word.Translation,
		Options:       options,
	}
}

// distractors returns exactly three wrong translations for word.
func distractors(word domain.Word, pool []domain.Word, rng Rand) []string {
	seen := make(map[string]struct{}, len(pool))
	unique := make([]string, 0, len(pool))
	for _, other := range pool {
		if other.ID == word.ID || other.Translation == word.Translation {
			continue
		}
		if _, dup := seen[other.Translation]; dup {
			continue
		}
		seen[other.Translation] = struct{}{}
		unique = append(unique, other.Translation)
	}

	rng.Shuffle(len(unique), func(i, j int) {
		unique[i], unique[j] = unique[j], unique[i]
	})

	out := unique[:min(distractorCount, len(unique))]
	for len(out) < distractorCount {
		out = append(out, UnknownOption)
	}
	return out
}
