package reminder

import (
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/lugatlab/internal/domain"
)

const maxEndpointLen = 2048

// SaveSettingsInput holds the reminder settings a user submits.
type SaveSettingsInput struct {
	Enabled        bool
	DailyTimeLocal string
	Timezone       string
}

// Validate checks all fields and collects all errors.
func (i *SaveSettingsInput) Validate() error {
	var errs []domain.FieldError

	if !ValidClock(i.DailyTimeLocal) {
		errs = append(errs, domain.FieldError{Field: "dailyTimeLocal", Message: "must be HH:MM"})
	}
	if i.Timezone != "" {
		if _, err := time.LoadLocation(i.Timezone); err != nil {
			errs = append(errs, domain.FieldError{Field: "timezone", Message: "unknown timezone"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SubscribeInput is a browser PushSubscription plus the client timezone.
type SubscribeInput struct {
	Endpoint string
	P256dh   string
	Auth     string
	Timezone string
}

// Validate checks all fields and collects all errors.
func (i *SubscribeInput) Validate() error {
	var errs []domain.FieldError

	endpoint := strings.TrimSpace(i.Endpoint)
	switch {
	case endpoint == "":
		errs = append(errs, domain.FieldError{Field: "endpoint", Message: "required"})
	case len(endpoint) > maxEndpointLen:
		errs = append(errs, domain.FieldError{Field: "endpoint", Message: "too long"})
	default:
		u, err := url.Parse(endpoint)
		if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
			errs = append(errs, domain.FieldError{Field: "endpoint", Message: "must be an absolute URL"})
		}
	}
	if strings.TrimSpace(i.P256dh) == "" {
		errs = append(errs, domain.FieldError{Field: "keys.p256dh", Message: "required"})
	}
	if strings.TrimSpace(i.Auth) == "" {
		errs = append(errs, domain.FieldError{Field: "keys.auth", Message: "required"})
	}
	if i.Timezone != "" {
		if _, err := time.LoadLocation(i.Timezone); err != nil {
			errs = append(errs, domain.FieldError{Field: "timezone", Message: "unknown timezone"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
