package quiz

import "github.com/heartmarshall/lugatlab/internal/domain"

// LevelFor maps a final score to its qualitative level.
func LevelFor(score, total int) domain.ResultLevel {
	switch {
	case total == 0:
		return domain.ResultLevelNone
	case score <= 4:
		return domain.ResultLevelBeginner
	case score <= 7:
		return domain.ResultLevelGood
	default:
		return domain.ResultLevelExcellent
	}
}
