// Package push delivers Web Push notifications signed with VAPID keys.
package push

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/heartmarshall/lugatlab/internal/domain"
)

const maxErrorBody = 512

// Config holds VAPID credentials and delivery options.
type Config struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	Subject         string
	TTL             int
	Timeout         time.Duration
}

// Sender sends one encrypted message per call.
type Sender struct {
	cfg    Config
	client webpush.HTTPClient
	log    *slog.Logger
}

// NewSender creates a Sender. client may be nil, in which case an
// *http.Client with cfg.Timeout is used.
func NewSender(cfg Config, client webpush.HTTPClient, log *slog.Logger) *Sender {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Sender{
		cfg:    cfg,
		client: client,
		log:    log.With("adapter", "push"),
	}
}

// Send encrypts msg for sub and posts it to the push service. Any non-2xx
// answer is returned as *domain.DeliveryError carrying the status code.
func (s *Sender) Send(ctx context.Context, sub domain.PushSubscription, msg domain.PushMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("push.Send: encode payload: %w", err)
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload,
		&webpush.Subscription{
			Endpoint: sub.Endpoint,
			Keys: webpush.Keys{
				P256dh: sub.P256dh,
				Auth:   sub.Auth,
			},
		},
		&webpush.Options{
			HTTPClient:      s.client,
			Subscriber:      s.cfg.Subject,
			TTL:             s.cfg.TTL,
			Urgency:         webpush.UrgencyNormal,
			VAPIDPublicKey:  s.cfg.VAPIDPublicKey,
			VAPIDPrivateKey: s.cfg.VAPIDPrivateKey,
		},
	)
	if err != nil {
		return &domain.DeliveryError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	s.log.DebugContext(ctx, "push rejected",
		slog.String("subscription_id", sub.ID.String()),
		slog.Int("status", resp.StatusCode),
	)

	return &domain.DeliveryError{
		StatusCode: resp.StatusCode,
		Err:        fmt.Errorf("push service: %s", strings.TrimSpace(string(body))),
	}
}
