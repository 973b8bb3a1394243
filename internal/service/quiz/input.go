package quiz

import (
	"strings"

	"github.com/heartmarshall/lugatlab/internal/domain"
)

const (
	// MaxQuestionCount bounds both requested quiz size and submitted totals.
	MaxQuestionCount = 50
	maxDurationSec   = 24 * 60 * 60
)

// StartQuizInput holds the parameters for starting a quiz.
// Count 0 means the configured default.
type StartQuizInput struct {
	Count int
}

// Validate checks all fields and collects all errors.
func (i *StartQuizInput) Validate() error {
	var errs []domain.FieldError

	if i.Count < 0 || i.Count > MaxQuestionCount {
		errs = append(errs, domain.FieldError{Field: "count", Message: "must be between 0 and 50"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SubmitAttemptInput holds a finished quiz run.
type SubmitAttemptInput struct {
	Total       int
	DurationSec int
	Answers     []domain.AnswerRecord
}

// Validate checks all fields and collects all errors.
func (i *SubmitAttemptInput) Validate() error {
	var errs []domain.FieldError

	if len(i.Answers) == 0 {
		errs = append(errs, domain.FieldError{Field: "answers", Message: "required"})
	}
	if i.Total < len(i.Answers) {
		errs = append(errs, domain.FieldError{Field: "total", Message: "must not be less than the number of answers"})
	}
	if i.Total > MaxQuestionCount {
		errs = append(errs, domain.FieldError{Field: "total", Message: "max 50"})
	}
	if i.DurationSec < 0 || i.DurationSec > maxDurationSec {
		errs = append(errs, domain.FieldError{Field: "durationSec", Message: "must be between 0 and 86400"})
	}
	for _, a := range i.Answers {
		if strings.TrimSpace(a.WordID) == "" {
			errs = append(errs, domain.FieldError{Field: "answers.wordId", Message: "required"})
			break
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
