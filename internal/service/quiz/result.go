package quiz

import "github.com/heartmarshall/lugatlab/internal/domain"

// AttemptResult is the outcome of a submitted quiz.
type AttemptResult struct {
	Attempt domain.QuizAttempt
	Level   domain.ResultLevel
}
