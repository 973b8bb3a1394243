package rest

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/heartmarshall/lugatlab/internal/domain"
	"github.com/heartmarshall/lugatlab/internal/service/quiz"
)

// quizService defines the minimal interface needed by QuizHandler.
type quizService interface {
	StartQuiz(ctx context.Context, input quiz.StartQuizInput) (*domain.QuizSession, error)
	SubmitAttempt(ctx context.Context, input quiz.SubmitAttemptInput) (*quiz.AttemptResult, error)
	Stats(ctx context.Context) (domain.Stats, error)
}

// QuizHandler serves quiz, attempt and statistics endpoints.
type QuizHandler struct {
	svc quizService
	log *slog.Logger
}

// NewQuizHandler creates a QuizHandler.
func NewQuizHandler(svc quizService, logger *slog.Logger) *QuizHandler {
	return &QuizHandler{svc: svc, log: logger.With("handler", "quiz")}
}

type startQuizRequest struct {
	Count int `json:"count"`
}

type questionResponse struct {
	WordID        string   `json:"wordId"`
	PromptWord    string   `json:"promptWord"`
	Example       string   `json:"example"`
	CorrectAnswer string   `json:"correctAnswer"`
	Options       []string `json:"options"`
}

type quizResponse struct {
	Total     int                `json:"total"`
	Questions []questionResponse `json:"questions"`
}

type answerRequest struct {
	WordID    string `json:"wordId"`
	IsCorrect bool   `json:"isCorrect"`
}

type submitAttemptRequest struct {
	Total       int             `json:"total"`
	DurationSec int             `json:"durationSec"`
	Answers     []answerRequest `json:"answers"`
}

type attemptResponse struct {
	ID          string    `json:"id"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	DurationSec int       `json:"durationSec"`
	Percent     int       `json:"percent"`
	CreatedAt   time.Time `json:"createdAt"`
}

type submitAttemptResponse struct {
	attemptResponse
	Level string `json:"level"`
	Label string `json:"label"`
}

type statsResponse struct {
	Attempts       int               `json:"attempts"`
	AveragePercent int               `json:"averagePercent"`
	BestScore      int               `json:"bestScore"`
	BestTotal      int               `json:"bestTotal"`
	Recent         []attemptResponse `json:"recent"`
}

// Start handles POST /api/quiz. The body is optional.
func (h *QuizHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startQuizRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.svc.StartQuiz(r.Context(), quiz.StartQuizInput{Count: req.Count})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := quizResponse{
		Total:     session.Total,
		Questions: make([]questionResponse, 0, len(session.Questions)),
	}
	for _, q := range session.Questions {
		resp.Questions = append(resp.Questions, questionResponse{
			WordID:        q.WordID,
			PromptWord:    q.PromptWord,
			Example:       q.Example,
			CorrectAnswer: q.CorrectAnswer,
			Options:       q.Options,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// SubmitAttempt handles POST /api/quiz/attempts.
func (h *QuizHandler) SubmitAttempt(w http.ResponseWriter, r *http.Request) {
	var req submitAttemptRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answers := make([]domain.AnswerRecord, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, domain.AnswerRecord{WordID: a.WordID, IsCorrect: a.IsCorrect})
	}

	result, err := h.svc.SubmitAttempt(r.Context(), quiz.SubmitAttemptInput{
		Total:       req.Total,
		DurationSec: req.DurationSec,
		Answers:     answers,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, submitAttemptResponse{
		attemptResponse: toAttemptResponse(result.Attempt),
		Level:           result.Level.String(),
		Label:           result.Level.Label(),
	})
}

// Stats handles GET /api/stats.
func (h *QuizHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := statsResponse{
		Attempts:       stats.Attempts,
		AveragePercent: stats.AveragePercent,
		BestScore:      stats.BestScore,
		BestTotal:      stats.BestTotal,
		Recent:         make([]attemptResponse, 0, len(stats.Recent)),
	}
	for _, a := range stats.Recent {
		resp.Recent = append(resp.Recent, toAttemptResponse(a))
	}

	writeJSON(w, http.StatusOK, resp)
}

func toAttemptResponse(a domain.QuizAttempt) attemptResponse {
	return attemptResponse{
		ID:          a.ID.String(),
		Score:       a.Score,
		Total:       a.Total,
		DurationSec: a.DurationSec,
		Percent:     int(math.Round(a.Percent())),
		CreatedAt:   a.CreatedAt,
	}
}
