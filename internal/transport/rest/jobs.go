package rest

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/lugatlab/internal/domain"
	"github.com/heartmarshall/lugatlab/internal/transport/middleware"
)

// batchRunner defines the minimal interface needed by JobHandler.
type batchRunner interface {
	RunBatch(ctx context.Context, now time.Time) (domain.BatchReport, error)
}

// JobHandler serves the externally triggered reminder batch.
type JobHandler struct {
	runner  batchRunner
	secret  string
	timeout time.Duration
	log     *slog.Logger
	now     func() time.Time
}

// NewJobHandler creates a JobHandler. An empty secret rejects every call.
func NewJobHandler(runner batchRunner, secret string, timeout time.Duration, logger *slog.Logger) *JobHandler {
	return &JobHandler{
		runner:  runner,
		secret:  secret,
		timeout: timeout,
		log:     logger.With("handler", "jobs"),
		now:     time.Now,
	}
}

type batchReportResponse struct {
	SentCount     int `json:"sentCount"`
	SkippedCount  int `json:"skippedCount"`
	FailedCount   int `json:"failedCount"`
	DisabledCount int `json:"disabledCount"`
}

// SendDailyReminders handles GET|POST /api/jobs/send-daily-reminders.
func (h *JobHandler) SendDailyReminders(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	// The batch outlives a dropped cron connection but not the timeout.
	ctx := context.WithoutCancel(r.Context())
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	report, err := h.runner.RunBatch(ctx, h.now())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, batchReportResponse{
		SentCount:     report.SentCount,
		SkippedCount:  report.SkippedCount,
		FailedCount:   report.FailedCount,
		DisabledCount: report.DisabledCount,
	})
}

func (h *JobHandler) authorized(r *http.Request) bool {
	if h.secret == "" {
		return false
	}
	token := middleware.BearerToken(r)
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.secret)) == 1
}
