package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/service/practice"
)

type practiceService interface {
	Get(ctx context.Context) (practice.State, error)
	Check(ctx context.Context, in practice.CheckInput) (practice.CheckResult, error)
	Advance(ctx context.Context) (practice.Transition, error)
	Reset(ctx context.Context) (practice.State, error)
	Finish(ctx context.Context) (*domain.PracticeSummary, error)
	Refresh(ctx context.Context) (practice.Transition, error)
	UpdateSettings(ctx context.Context, in practice.SettingsInput) (practice.State, error)
}

// PracticeHandler serves the free-practice loop.
type PracticeHandler struct {
	svc practiceService
	log *slog.Logger
}

// NewPracticeHandler creates a PracticeHandler.
func NewPracticeHandler(svc practiceService, log *slog.Logger) *PracticeHandler {
	return &PracticeHandler{svc: svc, log: log.With("handler", "practice")}
}

func (h *PracticeHandler) register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/practice", h.State)
	mux.HandleFunc("POST /api/v1/practice/check", h.Check)
	mux.HandleFunc("POST /api/v1/practice/advance", h.Advance)
	mux.HandleFunc("POST /api/v1/practice/reset", h.Reset)
	mux.HandleFunc("POST /api/v1/practice/finish", h.Finish)
	mux.HandleFunc("POST /api/v1/practice/refresh", h.Refresh)
	mux.HandleFunc("PATCH /api/v1/practice/settings", h.Settings)
}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type settingsDTO struct {
	Direction    domain.Direction `json:"direction"`
	Order        domain.OrderMode `json:"order"`
	AllowReguess bool             `json:"allow_reguess"`
}

type cardDTO struct {
	WordID       uuid.UUID            `json:"word_id"`
	Prompt       string               `json:"prompt"`
	PartOfSpeech *domain.PartOfSpeech `json:"part_of_speech,omitempty"`
	Description  *string              `json:"description,omitempty"`
}

type mistakeDTO struct {
	Prompt   string   `json:"prompt"`
	Answer   string   `json:"answer"`
	Accepted []string `json:"accepted"`
}

type summaryDTO struct {
	ID            uuid.UUID        `json:"id"`
	Direction     domain.Direction `json:"direction"`
	TotalAttempts int              `json:"total_attempts"`
	CorrectCount  int              `json:"correct_count"`
	Accuracy      float64          `json:"accuracy"`
	Mistakes      []mistakeDTO     `json:"mistakes"`
	FinishedAt    time.Time        `json:"finished_at"`
}

type practiceStateDTO struct {
	Phase         domain.PracticePhase  `json:"phase"`
	Settings      settingsDTO           `json:"settings"`
	Current       *cardDTO              `json:"current"`
	Remaining     int                   `json:"remaining"`
	TotalWords    int                   `json:"total_words"`
	CorrectCount  int                   `json:"correct_count"`
	TotalAttempts int                   `json:"total_attempts"`
	Mistakes      []mistakeDTO          `json:"mistakes"`
	LastCheck     *practice.CheckResult `json:"last_check"`
	Summary       *summaryDTO           `json:"summary,omitempty"`
}

// HistoryRecorded is set whenever a summary is returned, so clients can
// tell the user that a finished session was not saved.
type transitionDTO struct {
	Requeued        bool        `json:"requeued"`
	Dropped         int         `json:"dropped"`
	Completed       bool        `json:"completed"`
	Summary         *summaryDTO `json:"summary,omitempty"`
	HistoryRecorded *bool       `json:"history_recorded,omitempty"`
}

type finishDTO struct {
	summaryDTO
	HistoryRecorded bool `json:"history_recorded"`
}

type answersRequest struct {
	Answers []string `json:"answers"`
}

type settingsRequest struct {
	Direction    *domain.Direction `json:"direction"`
	Order        *domain.OrderMode `json:"order"`
	AllowReguess *bool             `json:"allow_reguess"`
}

func toMistakes(ms []domain.Mistake) []mistakeDTO {
	out := make([]mistakeDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, mistakeDTO(m))
	}
	return out
}

func toSummary(s *domain.PracticeSummary) *summaryDTO {
	if s == nil {
		return nil
	}
	return &summaryDTO{
		ID:            s.ID,
		Direction:     s.Direction,
		TotalAttempts: s.TotalAttempts,
		CorrectCount:  s.CorrectCount,
		Accuracy:      s.Accuracy(),
		Mistakes:      toMistakes(s.Mistakes),
		FinishedAt:    s.FinishedAt,
	}
}

func toPracticeState(st practice.State) practiceStateDTO {
	dto := practiceStateDTO{
		Phase:         st.Phase,
		Settings:      settingsDTO(st.Settings),
		Remaining:     st.Remaining,
		TotalWords:    st.TotalWords,
		CorrectCount:  st.CorrectCount,
		TotalAttempts: st.TotalAttempts,
		Mistakes:      toMistakes(st.Mistakes),
		LastCheck:     st.LastCheck,
		Summary:       toSummary(st.Summary),
	}
	if st.Current != nil {
		dto.Current = &cardDTO{
			WordID:       st.Current.WordID,
			Prompt:       st.Current.Prompt,
			PartOfSpeech: st.Current.PartOfSpeech,
			Description:  st.Current.Description,
		}
	}
	return dto
}

func toTransition(t practice.Transition, recorded bool) transitionDTO {
	dto := transitionDTO{
		Requeued:  t.Requeued,
		Dropped:   t.Dropped,
		Completed: t.Completed,
		Summary:   toSummary(t.Summary),
	}
	if dto.Summary != nil {
		dto.HistoryRecorded = &recorded
	}
	return dto
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

// State returns the caller's session, opening it on first use.
func (h *PracticeHandler) State(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Get(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toPracticeState(st))
}

// Check grades answers for the current card.
func (h *PracticeHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req answersRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	res, err := h.svc.Check(r.Context(), practice.CheckInput{Answers: req.Answers})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Advance moves to the next card.
func (h *PracticeHandler) Advance(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Advance)
}

// Refresh reconciles the queue with the current word list.
func (h *PracticeHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Refresh)
}

func (h *PracticeHandler) transition(w http.ResponseWriter, r *http.Request, op func(context.Context) (practice.Transition, error)) {
	t, err := op(r.Context())
	if err != nil && !t.Completed {
		writeError(w, r, h.log, err)
		return
	}
	if err != nil {
		// The session completed; only recording it in history failed.
		h.log.WarnContext(r.Context(), "practice history not recorded", slog.String("error", err.Error()))
	}
	writeJSON(w, http.StatusOK, toTransition(t, err == nil))
}

// Reset clears statistics and rebuilds the queue.
func (h *PracticeHandler) Reset(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Reset(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toPracticeState(st))
}

// Finish records the session in history and starts over. A session with no
// attempts answers 204.
func (h *PracticeHandler) Finish(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Finish(r.Context())
	if err != nil && summary == nil {
		writeError(w, r, h.log, err)
		return
	}
	if err != nil {
		h.log.WarnContext(r.Context(), "practice history not recorded", slog.String("error", err.Error()))
	}
	if summary == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, finishDTO{summaryDTO: *toSummary(summary), HistoryRecorded: err == nil})
}

// Settings changes practice preferences.
func (h *PracticeHandler) Settings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	st, err := h.svc.UpdateSettings(r.Context(), practice.SettingsInput(req))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toPracticeState(st))
}
