package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultReminderTimezone = "Asia/Tashkent"
	DefaultReminderTime     = "20:00"
)

// ReminderSetting is the per-user daily reminder configuration.
type ReminderSetting struct {
	UserID         uuid.UUID
	Enabled        bool
	DailyTimeLocal string
	Timezone       string
	LastSentAt     *time.Time
	UpdatedAt      time.Time
}

// DefaultReminderSetting returns the setting a user has before saving any.
func DefaultReminderSetting(userID uuid.UUID) ReminderSetting {
	return ReminderSetting{
		UserID:         userID,
		Enabled:        false,
		DailyTimeLocal: DefaultReminderTime,
		Timezone:       DefaultReminderTimezone,
	}
}

// PushSubscription is a browser push endpoint registered by a user.
type PushSubscription struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Endpoint  string
	P256dh    string
	Auth      string
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PushMessage is the JSON payload shown by the service worker.
type PushMessage struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

// BatchReport summarises one reminder batch run.
// SentCount counts delivered messages; the other counters count users,
// except DisabledCount which counts subscriptions.
type BatchReport struct {
	SentCount     int
	SkippedCount  int
	FailedCount   int
	DisabledCount int
}
