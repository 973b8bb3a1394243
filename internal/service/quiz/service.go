package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lugatlab/internal/domain"
	"github.com/heartmarshall/lugatlab/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type wordRepo interface {
	ListActive(ctx context.Context, levels []domain.WordLevel) ([]domain.Word, error)
}

type progressRepo interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (domain.ProgressMap, error)
	GetByWordIDs(ctx context.Context, userID uuid.UUID, wordIDs []string) (domain.ProgressMap, error)
	Upsert(ctx context.Context, userID uuid.UUID, records []domain.ProgressRecord) error
}

type attemptRepo interface {
	Create(ctx context.Context, attempt domain.QuizAttempt) error
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.QuizAttempt, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Config holds quiz service settings.
type Config struct {
	DefaultQuestionCount int
}

// Service implements quiz delivery, attempt scoring and statistics.
type Service struct {
	words    wordRepo
	fallback wordRepo
	progress progressRepo
	attempts attemptRepo
	tx       txManager
	log      *slog.Logger
	cfg      Config
	rng      Rand
	now      func() time.Time
}

// NewService creates a new quiz service. fallback may be nil; when set it
// serves the word list whenever the primary store fails or is empty.
func NewService(
	log *slog.Logger,
	words wordRepo,
	fallback wordRepo,
	progress progressRepo,
	attempts attemptRepo,
	tx txManager,
	cfg Config,
) *Service {
	if cfg.DefaultQuestionCount <= 0 {
		cfg.DefaultQuestionCount = DefaultQuestionCount
	}
	return &Service{
		words:    words,
		fallback: fallback,
		progress: progress,
		attempts: attempts,
		tx:       tx,
		log:      log.With("service", "quiz"),
		cfg:      cfg,
		rng:      DefaultRand(),
		now:      time.Now,
	}
}

// StartQuiz builds a fresh quiz for the authenticated user. Nothing is
// persisted; the session lives with the client until it submits.
func (s *Service) StartQuiz(ctx context.Context, input StartQuizInput) (*domain.QuizSession, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	words, err := s.loadWords(ctx)
	if err != nil {
		return nil, err
	}

	progress, err := s.progress.GetByUser(ctx, userID)
	if err != nil {
		s.log.WarnContext(ctx, "progress unavailable, using uniform weights",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		progress = domain.ProgressMap{}
	}

	count := input.Count
	if count == 0 {
		count = s.cfg.DefaultQuestionCount
	}

	session, err := Build(words, progress, count, s.rng)
	if err != nil {
		return nil, fmt.Errorf("build quiz: %w", err)
	}

	s.log.InfoContext(ctx, "quiz started",
		slog.String("user_id", userID.String()),
		slog.Int("total", session.Total),
		slog.Int("pool", len(words)),
	)

	return session, nil
}

// SubmitAttempt scores a finished quiz and commits the attempt together
// with the mastery updates. Either everything is written or nothing is.
func (s *Service) SubmitAttempt(ctx context.Context, input SubmitAttemptInput) (*AttemptResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	now := s.now().UTC()
	attempt := domain.QuizAttempt{
		ID:          uuid.New(),
		UserID:      userID,
		Score:       countCorrect(input.Answers),
		Total:       input.Total,
		DurationSec: input.DurationSec,
		CreatedAt:   now,
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.attempts.Create(txCtx, attempt); err != nil {
			return fmt.Errorf("create attempt: %w", err)
		}

		prior, err := s.progress.GetByWordIDs(txCtx, userID, answeredWordIDs(input.Answers))
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}

		updated := ApplyAnswers(prior, input.Answers, now)
		if err := s.progress.Upsert(txCtx, userID, updated); err != nil {
			return fmt.Errorf("upsert progress: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("quiz.SubmitAttempt: %w", err)
	}

	level := LevelFor(attempt.Score, attempt.Total)

	s.log.InfoContext(ctx, "quiz attempt saved",
		slog.String("user_id", userID.String()),
		slog.String("attempt_id", attempt.ID.String()),
		slog.Int("score", attempt.Score),
		slog.Int("total", attempt.Total),
		slog.String("level", level.String()),
	)

	return &AttemptResult{Attempt: attempt, Level: level}, nil
}

// Stats returns aggregates over the user's latest attempts. A failed read
// yields empty statistics rather than an error.
func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Stats{}, domain.ErrUnauthorized
	}

	attempts, err := s.attempts.ListRecent(ctx, userID, statsWindow)
	if err != nil {
		s.log.WarnContext(ctx, "attempts unavailable",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		attempts = nil
	}

	return ComputeStats(attempts), nil
}

func (s *Service) loadWords(ctx context.Context) ([]domain.Word, error) {
	words, err := s.words.ListActive(ctx, domain.QuizLevels)
	if err == nil && len(words) > 0 {
		return words, nil
	}

	if s.fallback == nil {
		if err != nil {
			return nil, fmt.Errorf("list words: %w", err)
		}
		return words, nil
	}

	if err != nil {
		s.log.WarnContext(ctx, "word store unavailable, using built-in catalog",
			slog.String("error", err.Error()),
		)
	}

	words, err = s.fallback.ListActive(ctx, domain.QuizLevels)
	if err != nil {
		return nil, fmt.Errorf("list fallback words: %w", err)
	}
	return words, nil
}
