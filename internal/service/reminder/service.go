package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lugatlab/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type settingsRepo interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.ReminderSetting, error)
	Upsert(ctx context.Context, setting domain.ReminderSetting) (*domain.ReminderSetting, error)
	EnableWithTimezone(ctx context.Context, userID uuid.UUID, timezone string) error
	ListEnabled(ctx context.Context) ([]domain.ReminderSetting, error)
	MarkSent(ctx context.Context, userID uuid.UUID, at time.Time) error
}

type subscriptionRepo interface {
	Upsert(ctx context.Context, sub domain.PushSubscription) (*domain.PushSubscription, error)
	ListEnabledByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]domain.PushSubscription, error)
	Disable(ctx context.Context, ids []uuid.UUID) (int, error)
}

type pushSender interface {
	Send(ctx context.Context, sub domain.PushSubscription, msg domain.PushMessage) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Config holds reminder service settings.
type Config struct {
	Window          time.Duration
	DefaultTimezone string
	Concurrency     int
	Message         domain.PushMessage
	VAPIDPublicKey  string
}

// DefaultMessage is the push payload sent when none is configured.
var DefaultMessage = domain.PushMessage{
	Title: "LugatLab",
	Body:  "Bugungi quizni bajarish vaqti keldi.",
	URL:   "/",
}

const defaultConcurrency = 8

// Service manages reminder settings, push subscriptions and the daily
// reminder batch.
type Service struct {
	settings settingsRepo
	subs     subscriptionRepo
	sender   pushSender
	tx       txManager
	gate     *Gate
	log      *slog.Logger
	cfg      Config
}

// NewService creates a reminder service. subs and sender may be nil when the
// backend has no push support; the operations that need them then fail with
// domain.ErrConfig.
func NewService(
	log *slog.Logger,
	settings settingsRepo,
	subs subscriptionRepo,
	sender pushSender,
	tx txManager,
	cfg Config,
) *Service {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if cfg.DefaultTimezone == "" {
		cfg.DefaultTimezone = domain.DefaultReminderTimezone
	}
	if cfg.Message == (domain.PushMessage{}) {
		cfg.Message = DefaultMessage
	}
	return &Service{
		settings: settings,
		subs:     subs,
		sender:   sender,
		tx:       tx,
		gate:     NewGate(cfg.Window, cfg.DefaultTimezone),
		log:      log.With("service", "reminder"),
		cfg:      cfg,
	}
}

// PublicKey returns the VAPID public key browsers subscribe with.
func (s *Service) PublicKey() (string, error) {
	if s.cfg.VAPIDPublicKey == "" {
		return "", domain.ErrConfig
	}
	return s.cfg.VAPIDPublicKey, nil
}
