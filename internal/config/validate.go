package config

import (
	"fmt"
	"strings"
	"time"
)

const minJWTSecretLen = 32

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Storage.Backend) {
	case BackendLocal:
		if strings.TrimSpace(c.Storage.LocalPath) == "" {
			return fmt.Errorf("storage.local_path is required for the local backend")
		}
	case BackendPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the postgres backend")
		}
		if err := c.Auth.validate(); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	default:
		return fmt.Errorf("storage.backend must be %q or %q (got %q)", BackendLocal, BackendPostgres, c.Storage.Backend)
	}

	if (c.Push.VAPIDPublicKey == "") != (c.Push.VAPIDPrivateKey == "") {
		return fmt.Errorf("push: vapid_public_key and vapid_private_key must be set together")
	}
	if c.Push.TTL < 0 {
		return fmt.Errorf("push.ttl must be >= 0 (got %d)", c.Push.TTL)
	}

	if err := c.Reminder.validate(); err != nil {
		return fmt.Errorf("reminder: %w", err)
	}

	if c.Scheduler.Enabled {
		if c.Scheduler.Interval <= 0 {
			return fmt.Errorf("scheduler.interval must be > 0 (got %v)", c.Scheduler.Interval)
		}
		// A longer interval can step over a user's whole firing window.
		if c.Scheduler.Interval > c.Reminder.Window {
			return fmt.Errorf("scheduler.interval %v must not exceed reminder.window %v", c.Scheduler.Interval, c.Reminder.Window)
		}
	}

	if n := c.Quiz.DefaultQuestionCount; n < 1 || n > 50 {
		return fmt.Errorf("quiz.default_question_count must be between 1 and 50 (got %d)", n)
	}

	if c.RateLimit.SubscribePerMinute <= 0 {
		return fmt.Errorf("rate_limit.subscribe_per_minute must be > 0 (got %d)", c.RateLimit.SubscribePerMinute)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (a *AuthConfig) validate() error {
	switch strings.ToLower(a.Mode) {
	case AuthModeJWT:
		if len(a.JWTSecret) < minJWTSecretLen {
			return fmt.Errorf("jwt_secret must be at least %d characters (got %d)", minJWTSecretLen, len(a.JWTSecret))
		}
	case AuthModeRemote:
		if a.SupabaseURL == "" || a.SupabaseAnonKey == "" {
			return fmt.Errorf("supabase_url and supabase_anon_key are required in remote mode")
		}
		if a.RemoteTimeout <= 0 {
			return fmt.Errorf("remote_timeout must be > 0 (got %v)", a.RemoteTimeout)
		}
	default:
		return fmt.Errorf("mode must be %q or %q (got %q)", AuthModeJWT, AuthModeRemote, a.Mode)
	}
	return nil
}

func (r *ReminderConfig) validate() error {
	if r.Window <= 0 {
		return fmt.Errorf("window must be > 0 (got %v)", r.Window)
	}
	if r.Window > 12*time.Hour {
		return fmt.Errorf("window must not exceed 12h (got %v)", r.Window)
	}
	if _, err := time.LoadLocation(r.DefaultTimezone); err != nil || r.DefaultTimezone == "" {
		return fmt.Errorf("default_timezone %q is not a known timezone", r.DefaultTimezone)
	}
	if r.Concurrency < 1 {
		return fmt.Errorf("concurrency must be >= 1 (got %d)", r.Concurrency)
	}
	if r.BatchTimeout <= 0 {
		return fmt.Errorf("batch_timeout must be > 0 (got %v)", r.BatchTimeout)
	}
	return nil
}
