package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/service/history"
)

const defaultHistoryPage = 20

type historyService interface {
	List(ctx context.Context, in history.ListInput) (*history.ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.PracticeSummary, error)
}

// HistoryHandler serves finished practice sessions.
type HistoryHandler struct {
	svc historyService
	log *slog.Logger
}

// NewHistoryHandler creates a HistoryHandler.
func NewHistoryHandler(svc historyService, log *slog.Logger) *HistoryHandler {
	return &HistoryHandler{svc: svc, log: log.With("handler", "history")}
}

func (h *HistoryHandler) register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/history", h.List)
	mux.HandleFunc("GET /api/v1/history/{id}", h.Get)
}

type historyPageDTO struct {
	Items      []summaryDTO `json:"items"`
	TotalCount int          `json:"total_count"`
}

// List returns finished sessions, newest first.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultHistoryPage)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	page, err := h.svc.List(r.Context(), history.ListInput{Limit: limit, Offset: offset})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	dto := historyPageDTO{Items: make([]summaryDTO, 0, len(page.Items)), TotalCount: page.TotalCount}
	for i := range page.Items {
		dto.Items = append(dto.Items, *toSummary(&page.Items[i]))
	}
	writeJSON(w, http.StatusOK, dto)
}

// Get returns one finished session.
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	s, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummary(s))
}
