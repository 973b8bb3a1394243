package config

import (
	"strings"
	"time"
)

// Storage backends.
const (
	BackendLocal    = "local"
	BackendPostgres = "postgres"
)

// Identity modes for the postgres backend.
const (
	AuthModeJWT    = "jwt"
	AuthModeRemote = "remote"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Push      PushConfig      `yaml:"push"`
	Reminder  ReminderConfig  `yaml:"reminder"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Quiz      QuizConfig      `yaml:"quiz"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Backend   string `yaml:"backend"    env:"STORAGE_BACKEND"  env-default:"local"`
	LocalPath string `yaml:"local_path" env:"LOCAL_STORE_PATH" env-default:"./data/lugatlab.json"`
}

// IsPostgres reports whether the postgres backend is selected.
func (c StorageConfig) IsPostgres() bool {
	return strings.EqualFold(c.Backend, BackendPostgres)
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	SkipMigrations  bool          `yaml:"skip_migrations"    env:"DATABASE_SKIP_MIGRATIONS"`
}

// AutoMigrate reports whether embedded migrations run before the pool opens.
// Migrations are on unless explicitly skipped, so a false value in YAML
// cannot be overwritten by a default.
func (c DatabaseConfig) AutoMigrate() bool {
	return !c.SkipMigrations
}

// AuthConfig holds bearer token verification settings.
// In jwt mode tokens are verified locally with the project JWT secret; in
// remote mode every token is looked up at {SupabaseURL}/auth/v1/user.
type AuthConfig struct {
	Mode            string        `yaml:"mode"              env:"AUTH_MODE"           env-default:"jwt"`
	JWTSecret       string        `yaml:"jwt_secret"        env:"SUPABASE_JWT_SECRET"`
	JWTIssuer       string        `yaml:"jwt_issuer"        env:"AUTH_JWT_ISSUER"`
	JWTAudience     string        `yaml:"jwt_audience"      env:"AUTH_JWT_AUDIENCE"   env-default:"authenticated"`
	SupabaseURL     string        `yaml:"supabase_url"      env:"SUPABASE_URL"`
	SupabaseAnonKey string        `yaml:"supabase_anon_key" env:"SUPABASE_ANON_KEY"`
	RemoteTimeout   time.Duration `yaml:"remote_timeout"    env:"AUTH_REMOTE_TIMEOUT" env-default:"5s"`
}

// PushConfig holds Web Push (VAPID) settings and the reminder payload.
type PushConfig struct {
	VAPIDPublicKey  string        `yaml:"vapid_public_key"  env:"VAPID_PUBLIC_KEY"`
	VAPIDPrivateKey string        `yaml:"vapid_private_key" env:"VAPID_PRIVATE_KEY"`
	Subject         string        `yaml:"subject"           env:"VAPID_SUBJECT"      env-default:"mailto:admin@lugatlab.uz"`
	TTL             int           `yaml:"ttl"               env:"PUSH_TTL"           env-default:"3600"`
	Timeout         time.Duration `yaml:"timeout"           env:"PUSH_TIMEOUT"       env-default:"10s"`
	Title           string        `yaml:"title"             env:"PUSH_TITLE"         env-default:"LugatLab"`
	Body            string        `yaml:"body"              env:"PUSH_BODY"          env-default:"Bugungi quizni bajarish vaqti keldi."`
	URL             string        `yaml:"url"               env:"PUSH_URL"           env-default:"/"`
}

// Enabled reports whether both VAPID keys are configured.
func (c PushConfig) Enabled() bool {
	return c.VAPIDPublicKey != "" && c.VAPIDPrivateKey != ""
}

// ReminderConfig holds daily reminder settings.
type ReminderConfig struct {
	Window          time.Duration `yaml:"window"           env:"REMINDER_WINDOW"           env-default:"15m"`
	DefaultTimezone string        `yaml:"default_timezone" env:"REMINDER_DEFAULT_TIMEZONE" env-default:"Asia/Tashkent"`
	Concurrency     int           `yaml:"concurrency"      env:"REMINDER_CONCURRENCY"      env-default:"8"`
	CronSecret      string        `yaml:"cron_secret"      env:"CRON_SECRET"`
	BatchTimeout    time.Duration `yaml:"batch_timeout"    env:"REMINDER_BATCH_TIMEOUT"    env-default:"25s"`
}

// SchedulerConfig holds the in-process reminder scheduler settings.
type SchedulerConfig struct {
	Enabled  bool          `yaml:"enabled"  env:"SCHEDULER_ENABLED"  env-default:"false"`
	Interval time.Duration `yaml:"interval" env:"SCHEDULER_INTERVAL" env-default:"5m"`
}

// QuizConfig holds quiz generation settings.
type QuizConfig struct {
	DefaultQuestionCount int `yaml:"default_question_count" env:"QUIZ_DEFAULT_QUESTION_COUNT" env-default:"10"`
}

// RateLimitConfig holds per-IP limits for sensitive endpoints.
type RateLimitConfig struct {
	SubscribePerMinute int           `yaml:"subscribe_per_minute" env:"RATE_LIMIT_SUBSCRIBE_PER_MINUTE" env-default:"10"`
	CleanupInterval    time.Duration `yaml:"cleanup_interval"     env:"RATE_LIMIT_CLEANUP_INTERVAL"     env-default:"5m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
