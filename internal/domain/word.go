package domain

import "time"

// WordLevel is the CEFR level of a word.
type WordLevel string

const (
	WordLevelA1 WordLevel = "A1"
	WordLevelA2 WordLevel = "A2"
)

func (l WordLevel) String() string { return string(l) }

func (l WordLevel) IsValid() bool {
	switch l {
	case WordLevelA1, WordLevelA2:
		return true
	}
	return false
}

// QuizLevels are the levels served by the quiz.
var QuizLevels = []WordLevel{WordLevelA1, WordLevelA2}

// DefaultCategory is used for words imported without a category.
const DefaultCategory = "general"

// Word is immutable reference data for the quiz.
type Word struct {
	ID          string
	Word        string
	Translation string
	Example     string
	Level       WordLevel
	Category    string
	Active      bool
}

// ProgressRecord is the per-user learning state of a single word.
type ProgressRecord struct {
	WordID       string
	CorrectCount int
	WrongCount   int
	MasteryScore float64
	LastSeenAt   time.Time
}

// ProgressMap indexes progress records by word id.
type ProgressMap map[string]ProgressRecord

// Mastery returns the mastery score for wordID, or 0 when unseen.
func (m ProgressMap) Mastery(wordID string) float64 {
	if rec, ok := m[wordID]; ok {
		return rec.MasteryScore
	}
	return 0
}
