package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/heartmarshall/lugatlab/internal/adapter/identity"
	"github.com/heartmarshall/lugatlab/internal/adapter/push"
	"github.com/heartmarshall/lugatlab/internal/auth"
	"github.com/heartmarshall/lugatlab/internal/config"
	"github.com/heartmarshall/lugatlab/internal/domain"
	"github.com/heartmarshall/lugatlab/internal/service/quiz"
	"github.com/heartmarshall/lugatlab/internal/service/reminder"
	"github.com/heartmarshall/lugatlab/internal/transport/middleware"
)

type pushSender interface {
	Send(ctx context.Context, sub domain.PushSubscription, msg domain.PushMessage) error
}

type identityResolver interface {
	Resolve(ctx context.Context, token string) (domain.Identity, error)
}

// Services holds the business services built on one Storage.
type Services struct {
	Quiz     *quiz.Service
	Reminder *reminder.Service
}

// NewServices wires the services onto st. The push sender is only created
// when both VAPID keys are configured.
func NewServices(cfg *config.Config, st *Storage, log *slog.Logger) *Services {
	var sender pushSender
	if cfg.Push.Enabled() {
		sender = push.NewSender(push.Config{
			VAPIDPublicKey:  cfg.Push.VAPIDPublicKey,
			VAPIDPrivateKey: cfg.Push.VAPIDPrivateKey,
			Subject:         cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
			Timeout:         cfg.Push.Timeout,
		}, nil, log)
	} else {
		log.Warn("push disabled: VAPID keys not configured")
	}

	return &Services{
		Quiz: quiz.NewService(log, st.Words, st.Fallback, st.Progress, st.Attempts, st.Tx, quiz.Config{
			DefaultQuestionCount: cfg.Quiz.DefaultQuestionCount,
		}),
		Reminder: reminder.NewService(log, st.Settings, st.Subscriptions, sender, st.Tx, reminder.Config{
			Window:          cfg.Reminder.Window,
			DefaultTimezone: cfg.Reminder.DefaultTimezone,
			Concurrency:     cfg.Reminder.Concurrency,
			VAPIDPublicKey:  cfg.Push.VAPIDPublicKey,
			Message: domain.PushMessage{
				Title: cfg.Push.Title,
				Body:  cfg.Push.Body,
				URL:   cfg.Push.URL,
			},
		}),
	}
}

// NewIdentity returns the middleware that resolves callers of /api routes.
// The local backend serves a single profile without tokens.
func NewIdentity(cfg *config.Config, log *slog.Logger) middleware.Middleware {
	if !cfg.Storage.IsPostgres() {
		return middleware.LocalIdentity
	}

	var resolver identityResolver
	if strings.EqualFold(cfg.Auth.Mode, config.AuthModeRemote) {
		resolver = identity.NewSupabase(cfg.Auth.SupabaseURL, cfg.Auth.SupabaseAnonKey, cfg.Auth.RemoteTimeout, nil, log)
	} else {
		resolver = auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience)
	}
	return middleware.Auth(resolver, log)
}
