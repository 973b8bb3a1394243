package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lugatlab/internal/adapter/localstore"
	"github.com/heartmarshall/lugatlab/internal/adapter/postgres"
	"github.com/heartmarshall/lugatlab/internal/adapter/postgres/attempt"
	"github.com/heartmarshall/lugatlab/internal/adapter/postgres/progress"
	"github.com/heartmarshall/lugatlab/internal/adapter/postgres/reminder"
	"github.com/heartmarshall/lugatlab/internal/adapter/postgres/subscription"
	"github.com/heartmarshall/lugatlab/internal/adapter/postgres/word"
	"github.com/heartmarshall/lugatlab/internal/config"
	"github.com/heartmarshall/lugatlab/internal/domain"
)

// WordStore lists the active word catalog.
type WordStore interface {
	ListActive(ctx context.Context, levels []domain.WordLevel) ([]domain.Word, error)
}

// ProgressStore persists per-user word mastery.
type ProgressStore interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (domain.ProgressMap, error)
	GetByWordIDs(ctx context.Context, userID uuid.UUID, wordIDs []string) (domain.ProgressMap, error)
	Upsert(ctx context.Context, userID uuid.UUID, records []domain.ProgressRecord) error
}

// AttemptStore persists finished quizzes.
type AttemptStore interface {
	Create(ctx context.Context, attempt domain.QuizAttempt) error
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.QuizAttempt, error)
}

// SettingsStore persists reminder settings.
type SettingsStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.ReminderSetting, error)
	Upsert(ctx context.Context, setting domain.ReminderSetting) (*domain.ReminderSetting, error)
	EnableWithTimezone(ctx context.Context, userID uuid.UUID, timezone string) error
	ListEnabled(ctx context.Context) ([]domain.ReminderSetting, error)
	MarkSent(ctx context.Context, userID uuid.UUID, at time.Time) error
}

// SubscriptionStore persists push subscriptions.
type SubscriptionStore interface {
	Upsert(ctx context.Context, sub domain.PushSubscription) (*domain.PushSubscription, error)
	ListEnabledByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]domain.PushSubscription, error)
	Disable(ctx context.Context, ids []uuid.UUID) (int, error)
}

// TxRunner runs fn atomically against the selected backend.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Pinger reports backend reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Storage is the set of repositories of one backend.
// Fallback and Subscriptions are nil when the backend has none.
type Storage struct {
	Backend       string
	Words         WordStore
	Fallback      WordStore
	Progress      ProgressStore
	Attempts      AttemptStore
	Settings      SettingsStore
	Subscriptions SubscriptionStore
	Tx            TxRunner
	Pinger        Pinger

	close func()
}

// Close releases backend resources.
func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
}

// NewStorage opens the backend selected by cfg.Storage.Backend.
func NewStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Storage, error) {
	switch strings.ToLower(cfg.Storage.Backend) {
	case config.BackendPostgres:
		return newPostgresStorage(ctx, cfg.Database, log)
	case config.BackendLocal:
		return newLocalStorage(cfg.Storage.LocalPath, log)
	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q", domain.ErrConfig, cfg.Storage.Backend)
	}
}

func newPostgresStorage(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*Storage, error) {
	if cfg.AutoMigrate() {
		if err := postgres.Migrate(ctx, cfg.DSN, log); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}

	log.Info("storage ready", slog.String("backend", config.BackendPostgres))

	return &Storage{
		Backend:       config.BackendPostgres,
		Words:         word.New(pool),
		Fallback:      localstore.NewCatalog(),
		Progress:      progress.New(pool),
		Attempts:      attempt.New(pool),
		Settings:      reminder.New(pool),
		Subscriptions: subscription.New(pool),
		Tx:            postgres.NewTxManager(pool),
		Pinger:        pool,
		close:         pool.Close,
	}, nil
}

func newLocalStorage(path string, log *slog.Logger) (*Storage, error) {
	store, err := localstore.Open(path, log)
	if err != nil {
		return nil, err
	}

	log.Info("storage ready",
		slog.String("backend", config.BackendLocal),
		slog.String("path", store.Path()),
	)

	return &Storage{
		Backend:  config.BackendLocal,
		Words:    localstore.NewCatalog(),
		Progress: localstore.NewProgressRepo(store),
		Attempts: localstore.NewAttemptRepo(store),
		Settings: localstore.NewSettingsRepo(store),
		Tx:       localstore.NewTxManager(store),
		Pinger:   store,
	}, nil
}
