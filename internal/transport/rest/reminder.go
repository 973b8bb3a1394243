package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/lugatlab/internal/domain"
	"github.com/heartmarshall/lugatlab/internal/service/reminder"
)

// reminderService defines the minimal interface needed by ReminderHandler.
type reminderService interface {
	GetSettings(ctx context.Context) (domain.ReminderSetting, error)
	SaveSettings(ctx context.Context, input reminder.SaveSettingsInput) (domain.ReminderSetting, error)
	Subscribe(ctx context.Context, input reminder.SubscribeInput) (*domain.PushSubscription, error)
	PublicKey() (string, error)
}

// ReminderHandler serves reminder settings and push subscription endpoints.
type ReminderHandler struct {
	svc reminderService
	log *slog.Logger
}

// NewReminderHandler creates a ReminderHandler.
func NewReminderHandler(svc reminderService, logger *slog.Logger) *ReminderHandler {
	return &ReminderHandler{svc: svc, log: logger.With("handler", "reminder")}
}

type settingsRequest struct {
	Enabled        bool   `json:"enabled"`
	DailyTimeLocal string `json:"dailyTimeLocal"`
	Timezone       string `json:"timezone"`
}

type settingsResponse struct {
	Enabled        bool       `json:"enabled"`
	DailyTimeLocal string     `json:"dailyTimeLocal"`
	Timezone       string     `json:"timezone"`
	LastSentAt     *time.Time `json:"lastSentAt"`
}

// subscribeRequest mirrors the browser PushSubscription JSON plus timezone.
type subscribeRequest struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
	Timezone string `json:"timezone"`
}

// GetSettings handles GET /api/reminders/settings.
func (h *ReminderHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	setting, err := h.svc.GetSettings(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(setting))
}

// SaveSettings handles PUT /api/reminders/settings.
func (h *ReminderHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	setting, err := h.svc.SaveSettings(r.Context(), reminder.SaveSettingsInput{
		Enabled:        req.Enabled,
		DailyTimeLocal: req.DailyTimeLocal,
		Timezone:       req.Timezone,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(setting))
}

// PublicKey handles GET /api/push/public-key.
func (h *ReminderHandler) PublicKey(w http.ResponseWriter, r *http.Request) {
	key, err := h.svc.PublicKey()
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"publicKey": key})
}

// Subscribe handles POST /api/push/subscribe.
func (h *ReminderHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, err := h.svc.Subscribe(r.Context(), reminder.SubscribeInput{
		Endpoint: req.Endpoint,
		P256dh:   req.Keys.P256dh,
		Auth:     req.Keys.Auth,
		Timezone: req.Timezone,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func toSettingsResponse(s domain.ReminderSetting) settingsResponse {
	return settingsResponse{
		Enabled:        s.Enabled,
		DailyTimeLocal: s.DailyTimeLocal,
		Timezone:       s.Timezone,
		LastSentAt:     s.LastSentAt,
	}
}
