package domain

import (
	"time"

	"github.com/google/uuid"
)

// QuizOptionCount is the number of choices per question.
const QuizOptionCount = 4

// QuizQuestion is a single multiple-choice question.
type QuizQuestion struct {
	WordID        string
	PromptWord    string
	Example       string
	CorrectAnswer string
	Options       []string
}

// QuizSession is an ordered set of questions for one quiz run.
type QuizSession struct {
	Questions []QuizQuestion
	Total     int
}

// AnswerRecord is one answered question within a session.
type AnswerRecord struct {
	WordID    string
	IsCorrect bool
}

// QuizAttempt is a completed quiz stored for statistics.
type QuizAttempt struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Score       int
	Total       int
	DurationSec int
	CreatedAt   time.Time
}

// Percent returns the attempt score as a percentage of total.
func (a QuizAttempt) Percent() float64 {
	if a.Total == 0 {
		return 0
	}
	return float64(a.Score) / float64(a.Total) * 100
}

// ResultLevel is the qualitative label of a quiz score.
type ResultLevel string

const (
	ResultLevelNone      ResultLevel = "no_result"
	ResultLevelBeginner  ResultLevel = "beginner"
	ResultLevelGood      ResultLevel = "good"
	ResultLevelExcellent ResultLevel = "excellent"
)

func (l ResultLevel) String() string { return string(l) }

// Label returns the user-facing text for the level.
func (l ResultLevel) Label() string {
	switch l {
	case ResultLevelBeginner:
		return "Boshlang'ich"
	case ResultLevelGood:
		return "Yaxshi"
	case ResultLevelExcellent:
		return "Zo'r"
	default:
		return "Natija yo'q"
	}
}

// Stats aggregates recent quiz attempts.
type Stats struct {
	Attempts       int
	AveragePercent int
	BestScore      int
	BestTotal      int
	Recent         []QuizAttempt
}
