package quiz

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/lugatlab/internal/domain"
	"github.com/heartmarshall/lugatlab/pkg/ctxutil"
)

type testDeps struct {
	words    *wordRepoMock
	fallback *wordRepoMock
	progress *progressRepoMock
	attempts *attemptRepoMock
	tx       *txManagerMock
}

func newTestDeps(pool []domain.Word) *testDeps {
	return &testDeps{
		words: &wordRepoMock{
			ListActiveFunc: func(ctx context.Context, levels []domain.WordLevel) ([]domain.Word, error) {
				return pool, nil
			},
		},
		progress: &progressRepoMock{
			GetByUserFunc: func(ctx context.Context, userID uuid.UUID) (domain.ProgressMap, error) {
				return domain.ProgressMap{}, nil
			},
			GetByWordIDsFunc: func(ctx context.Context, userID uuid.UUID, wordIDs []string) (domain.ProgressMap, error) {
				return domain.ProgressMap{}, nil
			},
			UpsertFunc: func(ctx context.Context, userID uuid.UUID, records []domain.ProgressRecord) error {
				return nil
			},
		},
		attempts: &attemptRepoMock{
			CreateFunc: func(ctx context.Context, attempt domain.QuizAttempt) error {
				return nil
			},
			ListRecentFunc: func(ctx context.Context, userID uuid.UUID, limit int) ([]domain.QuizAttempt, error) {
				return nil, nil
			},
		},
		tx: &txManagerMock{
			RunInTxFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
				return fn(ctx)
			},
		},
	}
}

// newTestService creates a Service with the given mocks and a fixed clock.
func newTestService(t *testing.T, d *testDeps) *Service {
	t.Helper()
	svc := &Service{
		words:    d.words,
		progress: d.progress,
		attempts: d.attempts,
		tx:       d.tx,
		log:      slog.Default(),
		cfg:      Config{DefaultQuestionCount: DefaultQuestionCount},
		rng:      seeded(),
		now:      func() time.Time { return testNow },
	}
	if d.fallback != nil {
		svc.fallback = d.fallback
	}
	return svc
}

func userCtx() (context.Context, uuid.UUID) {
	userID := uuid.New()
	return ctxutil.WithUserID(context.Background(), userID), userID
}

// ---------------------------------------------------------------------------
// StartQuiz
// ---------------------------------------------------------------------------

func TestStartQuiz_Success(t *testing.T) {
	t.Parallel()

	d := newTestDeps(makeWords(12))
	svc := newTestService(t, d)
	ctx, userID := userCtx()

	session, err := svc.StartQuiz(ctx, StartQuizInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Total != DefaultQuestionCount {
		t.Errorf("total: got %d, want %d", session.Total, DefaultQuestionCount)
	}

	calls := d.words.ListActiveCalls()
	if len(calls) != 1 {
		t.Fatalf("ListActive calls: got %d, want 1", len(calls))
	}
	if len(calls[0].Levels) != 2 {
		t.Errorf("levels: got %v, want A1 and A2", calls[0].Levels)
	}
	if got := d.progress.GetByUserCalls(); len(got) != 1 || got[0].UserID != userID {
		t.Errorf("GetByUser calls: %+v", got)
	}
}

func TestStartQuiz_ExplicitCount(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newTestDeps(makeWords(12)))
	ctx, _ := userCtx()

	session, err := svc.StartQuiz(ctx, StartQuizInput{Count: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Total != 5 {
		t.Errorf("total: got %d, want 5", session.Total)
	}
}

func TestStartQuiz_Unauthorized(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newTestDeps(makeWords(12)))

	_, err := svc.StartQuiz(context.Background(), StartQuizInput{})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestStartQuiz_InvalidCount(t *testing.T) {
	t.Parallel()

	d := newTestDeps(makeWords(12))
	svc := newTestService(t, d)
	ctx, _ := userCtx()

	_, err := svc.StartQuiz(ctx, StartQuizInput{Count: MaxQuestionCount + 1})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(d.words.ListActiveCalls()) != 0 {
		t.Error("words should not be loaded for invalid input")
	}
}

func TestStartQuiz_FallbackOnStoreError(t *testing.T) {
	t.Parallel()

	d := newTestDeps(nil)
	d.words.ListActiveFunc = func(ctx context.Context, levels []domain.WordLevel) ([]domain.Word, error) {
		return nil, domain.ErrStorage
	}
	d.fallback = &wordRepoMock{
		ListActiveFunc: func(ctx context.Context, levels []domain.WordLevel) ([]domain.Word, error) {
			return makeWords(5), nil
		},
	}
	svc := newTestService(t, d)
	ctx, _ := userCtx()

	session, err := svc.StartQuiz(ctx, StartQuizInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Total != 5 {
		t.Errorf("total: got %d, want 5", session.Total)
	}
	if len(d.fallback.ListActiveCalls()) != 1 {
		t.Errorf("fallback calls: got %d, want 1", len(d.fallback.ListActiveCalls()))
	}
}

func TestStartQuiz_FallbackOnEmptyStore(t *testing.T) {
	t.Parallel()

	d := newTestDeps([]domain.Word{})
	d.fallback = &wordRepoMock{
		ListActiveFunc: func(ctx context.Context, levels []domain.WordLevel) ([]domain.Word, error) {
			return makeWords(8), nil
		},
	}
	svc := newTestService(t, d)
	ctx, _ := userCtx()

	session, err := svc.StartQuiz(ctx, StartQuizInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Total != 8 {
		t.Errorf("total: got %d, want 8", session.Total)
	}
}

func TestStartQuiz_StoreErrorWithoutFallback(t *testing.T) {
	t.Parallel()

	d := newTestDeps(nil)
	d.words.ListActiveFunc = func(ctx context.Context, levels []domain.WordLevel) ([]domain.Word, error) {
		return nil, domain.ErrStorage
	}
	svc := newTestService(t, d)
	ctx, _ := userCtx()

	_, err := svc.StartQuiz(ctx, StartQuizInput{})
	if !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}

func TestStartQuiz_ProgressErrorIsTolerated(t *testing.T) {
	t.Parallel()

	d := newTestDeps(makeWords(6))
	d.progress.GetByUserFunc = func(ctx context.Context, userID uuid.UUID) (domain.ProgressMap, error) {
		return nil, errors.New("connection reset")
	}
	svc := newTestService(t, d)
	ctx, _ := userCtx()

	session, err := svc.StartQuiz(ctx, StartQuizInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Total != 6 {
		t.Errorf("total: got %d, want 6", session.Total)
	}
}

func TestStartQuiz_InsufficientWords(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newTestDeps(makeWords(3)))
	ctx, _ := userCtx()

	_, err := svc.StartQuiz(ctx, StartQuizInput{})
	if !errors.Is(err, domain.ErrInsufficientWords) {
		t.Fatalf("expected ErrInsufficientWords, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// SubmitAttempt
// ---------------------------------------------------------------------------

func TestSubmitAttempt_Success(t *testing.T) {
	t.Parallel()

	d := newTestDeps(nil)
	d.progress.GetByWordIDsFunc = func(ctx context.Context, userID uuid.UUID, wordIDs []string) (domain.ProgressMap, error) {
		return domain.ProgressMap{"w2": {WordID: "w2", CorrectCount: 3, MasteryScore: 0.3}}, nil
	}
	svc := newTestService(t, d)
	ctx, userID := userCtx()

	result, err := svc.SubmitAttempt(ctx, SubmitAttemptInput{
		Total:       3,
		DurationSec: 42,
		Answers: []domain.AnswerRecord{
			{WordID: "w1", IsCorrect: true},
			{WordID: "w2", IsCorrect: false},
			{WordID: "w1", IsCorrect: true},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Attempt.Score != 2 || result.Attempt.Total != 3 || result.Attempt.DurationSec != 42 {
		t.Errorf("attempt: got %+v", result.Attempt)
	}
	if result.Attempt.UserID != userID {
		t.Errorf("user: got %v, want %v", result.Attempt.UserID, userID)
	}
	if !result.Attempt.CreatedAt.Equal(testNow) {
		t.Errorf("created at: got %v, want %v", result.Attempt.CreatedAt, testNow)
	}
	if result.Level != domain.ResultLevelBeginner {
		t.Errorf("level: got %s, want beginner", result.Level)
	}

	if len(d.tx.RunInTxCalls()) != 1 {
		t.Errorf("RunInTx calls: got %d, want 1", len(d.tx.RunInTxCalls()))
	}
	if len(d.attempts.CreateCalls()) != 1 {
		t.Errorf("Create calls: got %d, want 1", len(d.attempts.CreateCalls()))
	}

	lookups := d.progress.GetByWordIDsCalls()
	if len(lookups) != 1 || len(lookups[0].WordIDs) != 2 {
		t.Fatalf("GetByWordIDs calls: %+v", lookups)
	}

	upserts := d.progress.UpsertCalls()
	if len(upserts) != 1 {
		t.Fatalf("Upsert calls: got %d, want 1", len(upserts))
	}
	records := upserts[0].Records
	if len(records) != 2 {
		t.Fatalf("records: got %d, want 2", len(records))
	}
	if records[0].WordID != "w1" || records[0].CorrectCount != 2 || !approx(records[0].MasteryScore, 0.2) {
		t.Errorf("w1: got %+v", records[0])
	}
	if records[1].WordID != "w2" || records[1].WrongCount != 1 || !approx(records[1].MasteryScore, 0.22) {
		t.Errorf("w2: got %+v", records[1])
	}
}

func TestSubmitAttempt_UpsertFailureAborts(t *testing.T) {
	t.Parallel()

	d := newTestDeps(nil)
	d.progress.UpsertFunc = func(ctx context.Context, userID uuid.UUID, records []domain.ProgressRecord) error {
		return domain.ErrStorage
	}
	svc := newTestService(t, d)
	ctx, _ := userCtx()

	result, err := svc.SubmitAttempt(ctx, SubmitAttemptInput{
		Total:   1,
		Answers: []domain.AnswerRecord{{WordID: "w1", IsCorrect: true}},
	})
	if !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if result != nil {
		t.Errorf("result should be nil, got %+v", result)
	}
}

func TestSubmitAttempt_CreateFailureSkipsProgress(t *testing.T) {
	t.Parallel()

	d := newTestDeps(nil)
	d.attempts.CreateFunc = func(ctx context.Context, attempt domain.QuizAttempt) error {
		return domain.ErrStorage
	}
	svc := newTestService(t, d)
	ctx, _ := userCtx()

	_, err := svc.SubmitAttempt(ctx, SubmitAttemptInput{
		Total:   1,
		Answers: []domain.AnswerRecord{{WordID: "w1", IsCorrect: true}},
	})
	if !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if len(d.progress.UpsertCalls()) != 0 {
		t.Error("progress should not be written after a failed attempt insert")
	}
}

func TestSubmitAttempt_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input SubmitAttemptInput
		field string
	}{
		{"no answers", SubmitAttemptInput{Total: 10}, "answers"},
		{"total below answers", SubmitAttemptInput{Total: 1, Answers: []domain.AnswerRecord{{WordID: "a"}, {WordID: "b"}}}, "total"},
		{"negative duration", SubmitAttemptInput{Total: 1, DurationSec: -1, Answers: []domain.AnswerRecord{{WordID: "a"}}}, "durationSec"},
		{"blank word id", SubmitAttemptInput{Total: 1, Answers: []domain.AnswerRecord{{WordID: " "}}}, "answers.wordId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newTestService(t, newTestDeps(nil))
			ctx, _ := userCtx()

			_, err := svc.SubmitAttempt(ctx, tt.input)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}
			if ve.Errors[0].Field != tt.field {
				t.Errorf("field: got %q, want %q", ve.Errors[0].Field, tt.field)
			}
		})
	}
}

func TestSubmitAttempt_Unauthorized(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newTestDeps(nil))

	_, err := svc.SubmitAttempt(context.Background(), SubmitAttemptInput{
		Total:   1,
		Answers: []domain.AnswerRecord{{WordID: "w1", IsCorrect: true}},
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Stats
// ---------------------------------------------------------------------------

func TestStats_Success(t *testing.T) {
	t.Parallel()

	d := newTestDeps(nil)
	d.attempts.ListRecentFunc = func(ctx context.Context, userID uuid.UUID, limit int) ([]domain.QuizAttempt, error) {
		return []domain.QuizAttempt{attempt(9, 10), attempt(6, 10)}, nil
	}
	svc := newTestService(t, d)
	ctx, userID := userCtx()

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Attempts != 2 || stats.AveragePercent != 75 || stats.BestScore != 9 {
		t.Errorf("stats: got %+v", stats)
	}

	calls := d.attempts.ListRecentCalls()
	if len(calls) != 1 || calls[0].Limit != statsWindow || calls[0].UserID != userID {
		t.Errorf("ListRecent calls: %+v", calls)
	}
}

func TestStats_ReadErrorYieldsEmpty(t *testing.T) {
	t.Parallel()

	d := newTestDeps(nil)
	d.attempts.ListRecentFunc = func(ctx context.Context, userID uuid.UUID, limit int) ([]domain.QuizAttempt, error) {
		return nil, domain.ErrStorage
	}
	svc := newTestService(t, d)
	ctx, _ := userCtx()

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Attempts != 0 || stats.BestTotal != DefaultQuestionCount {
		t.Errorf("stats: got %+v", stats)
	}
}

func TestStats_Unauthorized(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newTestDeps(nil))

	_, err := svc.Stats(context.Background())
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
