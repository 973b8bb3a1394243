package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/lugatlab/internal/config"
	"github.com/heartmarshall/lugatlab/internal/transport/middleware"
)

// RouterDeps holds the handlers and middleware the router mounts.
// Identity resolves the caller for /api routes: middleware.Auth for the
// postgres backend, middleware.LocalIdentity for the local one.
// SubscribeLimit may be nil.
type RouterDeps struct {
	Health         *HealthHandler
	Quiz           *QuizHandler
	Reminder       *ReminderHandler
	Jobs           *JobHandler
	Identity       middleware.Middleware
	SubscribeLimit middleware.Middleware
	CORS           config.CORSConfig
	Logger         *slog.Logger
}

// NewRouter builds the HTTP handler for the whole API.
// The job endpoint authenticates with the cron secret, so it is mounted
// outside the identity middleware.
func NewRouter(d RouterDeps) http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("POST /api/quiz", d.Quiz.Start)
	api.HandleFunc("POST /api/quiz/attempts", d.Quiz.SubmitAttempt)
	api.HandleFunc("GET /api/stats", d.Quiz.Stats)
	api.HandleFunc("GET /api/reminders/settings", d.Reminder.GetSettings)
	api.HandleFunc("PUT /api/reminders/settings", d.Reminder.SaveSettings)
	api.HandleFunc("GET /api/push/public-key", d.Reminder.PublicKey)

	var subscribe http.Handler = http.HandlerFunc(d.Reminder.Subscribe)
	if d.SubscribeLimit != nil {
		subscribe = d.SubscribeLimit(subscribe)
	}
	api.Handle("POST /api/push/subscribe", subscribe)

	identity := d.Identity
	if identity == nil {
		identity = middleware.Chain()
	}

	root := http.NewServeMux()
	root.HandleFunc("GET /live", d.Health.Live)
	root.HandleFunc("GET /ready", d.Health.Ready)
	root.HandleFunc("GET /health", d.Health.Health)
	root.HandleFunc("GET /api/jobs/send-daily-reminders", d.Jobs.SendDailyReminders)
	root.HandleFunc("POST /api/jobs/send-daily-reminders", d.Jobs.SendDailyReminders)
	root.Handle("/api/", identity(api))

	return middleware.Chain(
		middleware.Recovery(d.Logger),
		middleware.RequestID,
		middleware.Logger(d.Logger),
		middleware.CORS(d.CORS),
	)(root)
}
