package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/service/quiz"
)

type quizService interface {
	Start(ctx context.Context, in quiz.StartInput) (quiz.Question, error)
	Status(ctx context.Context) (quiz.Status, error)
	Question(ctx context.Context) (quiz.Question, error)
	Submit(ctx context.Context, in quiz.SubmitInput) (quiz.Graded, error)
	Next(ctx context.Context) (domain.QuizPhase, error)
	Results(ctx context.Context) (quiz.Results, error)
	Retake(ctx context.Context) (quiz.Status, error)
}

// QuizHandler serves fixed-length tests.
type QuizHandler struct {
	svc quizService
	log *slog.Logger
}

// NewQuizHandler creates a QuizHandler.
func NewQuizHandler(svc quizService, log *slog.Logger) *QuizHandler {
	return &QuizHandler{svc: svc, log: log.With("handler", "quiz")}
}

func (h *QuizHandler) register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/quiz", h.Status)
	mux.HandleFunc("POST /api/v1/quiz", h.Start)
	mux.HandleFunc("GET /api/v1/quiz/question", h.Question)
	mux.HandleFunc("POST /api/v1/quiz/answer", h.Submit)
	mux.HandleFunc("POST /api/v1/quiz/next", h.Next)
	mux.HandleFunc("GET /api/v1/quiz/results", h.Results)
	mux.HandleFunc("POST /api/v1/quiz/retake", h.Retake)
}

type startRequest struct {
	Size      int              `json:"size"`
	Direction domain.Direction `json:"direction"`
	Mode      domain.InputMode `json:"mode"`
}

type questionDTO struct {
	Index    int              `json:"index"`
	Total    int              `json:"total"`
	WordID   uuid.UUID        `json:"word_id"`
	Prompt   string           `json:"prompt"`
	Mode     domain.InputMode `json:"mode"`
	Options  []string         `json:"options,omitempty"`
	Answered bool             `json:"answered"`
	Correct  *bool            `json:"correct,omitempty"`
	Answer   string           `json:"answer,omitempty"`
	Accepted []string         `json:"accepted,omitempty"`
}

type gradedDTO struct {
	Correct  bool     `json:"correct"`
	Answer   string   `json:"answer"`
	Accepted []string `json:"accepted"`
	Last     bool     `json:"last"`
}

type quizStatusDTO struct {
	Phase    domain.QuizPhase `json:"phase"`
	Index    int              `json:"index"`
	Total    int              `json:"total"`
	Answered int              `json:"answered"`
}

type resultItemDTO struct {
	WordID   uuid.UUID `json:"word_id"`
	Prompt   string    `json:"prompt"`
	Accepted []string  `json:"accepted"`
	Answer   string    `json:"answer"`
	Correct  bool      `json:"correct"`
}

type resultsDTO struct {
	Direction       domain.Direction `json:"direction"`
	Mode            domain.InputMode `json:"mode"`
	Total           int              `json:"total"`
	Correct         int              `json:"correct"`
	Score           float64          `json:"score"`
	Items           []resultItemDTO  `json:"items"`
	StartedAt       time.Time        `json:"started_at"`
	FinishedAt      time.Time        `json:"finished_at"`
	DurationSeconds float64          `json:"duration_seconds"`
}

func toQuestion(q quiz.Question) questionDTO {
	dto := questionDTO{
		Index:    q.Index,
		Total:    q.Total,
		WordID:   q.WordID,
		Prompt:   q.Prompt,
		Mode:     q.Mode,
		Options:  q.Options,
		Answered: q.Answered,
	}
	// Grading is only revealed once the question is answered.
	if q.Answered {
		correct := q.Correct
		dto.Correct = &correct
		dto.Answer = q.Answer
		dto.Accepted = q.Accepted
	}
	return dto
}

func toResults(res quiz.Results) resultsDTO {
	items := make([]resultItemDTO, 0, len(res.Items))
	for _, it := range res.Items {
		items = append(items, resultItemDTO(it))
	}
	return resultsDTO{
		Direction:       res.Direction,
		Mode:            res.Mode,
		Total:           res.Total,
		Correct:         res.Correct,
		Score:           res.Score(),
		Items:           items,
		StartedAt:       res.StartedAt,
		FinishedAt:      res.FinishedAt,
		DurationSeconds: res.Duration.Seconds(),
	}
}

// Start samples a new test and returns its first question.
func (h *QuizHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	q, err := h.svc.Start(r.Context(), quiz.StartInput(req))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toQuestion(q))
}

// Status reports the phase and progress of the caller's test.
func (h *QuizHandler) Status(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Status(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, quizStatusDTO(st))
}

// Question returns the current question.
func (h *QuizHandler) Question(w http.ResponseWriter, r *http.Request) {
	q, err := h.svc.Question(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuestion(q))
}

// Submit grades the answer to the current question.
func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req answersRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	g, err := h.svc.Submit(r.Context(), quiz.SubmitInput{Answers: req.Answers})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, gradedDTO(g))
}

// Next moves past an answered question. The response carries the phase so
// the client knows whether results are ready.
func (h *QuizHandler) Next(w http.ResponseWriter, r *http.Request) {
	phase, err := h.svc.Next(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]domain.QuizPhase{"phase": phase})
}

// Results returns the review of a finished test.
func (h *QuizHandler) Results(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Results(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toResults(res))
}

// Retake discards the test and returns to setup.
func (h *QuizHandler) Retake(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Retake(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, quizStatusDTO(st))
}
