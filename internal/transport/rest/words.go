package rest

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/service/vocabulary"
)

const (
	maxSheetUpload = 10 << 20
	xlsxMIME       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type wordService interface {
	CreateWord(ctx context.Context, input vocabulary.CreateInput) (*domain.Word, error)
	GetWord(ctx context.Context, wordID uuid.UUID) (*domain.Word, error)
	ListWords(ctx context.Context, input vocabulary.ListInput) (*vocabulary.ListResult, error)
	UpdateWord(ctx context.Context, input vocabulary.UpdateInput) (*domain.Word, error)
	DeleteWord(ctx context.Context, wordID uuid.UUID) error
	ImportSheet(ctx context.Context, r io.Reader) (*vocabulary.ImportReport, error)
	ExportSheet(ctx context.Context, w io.Writer) error
}

// practiceReconciler drops edited or deleted words from an open practice
// queue.
type practiceReconciler interface {
	Reconcile(ctx context.Context) (bool, error)
}

// WordsHandler serves the caller's word list.
type WordsHandler struct {
	svc      wordService
	practice practiceReconciler
	log      *slog.Logger
}

// NewWordsHandler creates a WordsHandler. practice may be nil.
func NewWordsHandler(svc wordService, practice practiceReconciler, log *slog.Logger) *WordsHandler {
	return &WordsHandler{svc: svc, practice: practice, log: log.With("handler", "words")}
}

func (h *WordsHandler) register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/words", h.List)
	mux.HandleFunc("POST /api/v1/words", h.Create)
	mux.HandleFunc("GET /api/v1/words/export", h.Export)
	mux.HandleFunc("POST /api/v1/words/import", h.Import)
	mux.HandleFunc("GET /api/v1/words/{id}", h.Get)
	mux.HandleFunc("PUT /api/v1/words/{id}", h.Update)
	mux.HandleFunc("DELETE /api/v1/words/{id}", h.Delete)
}

type wordRequest struct {
	Headword     string               `json:"headword"`
	Definitions  []string             `json:"definitions"`
	Description  *string              `json:"description"`
	PartOfSpeech *domain.PartOfSpeech `json:"part_of_speech"`
}

type wordDTO struct {
	ID           uuid.UUID            `json:"id"`
	Headword     string               `json:"headword"`
	Definitions  []string             `json:"definitions"`
	Description  *string              `json:"description,omitempty"`
	PartOfSpeech *domain.PartOfSpeech `json:"part_of_speech,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

type wordPageDTO struct {
	Words      []wordDTO `json:"words"`
	TotalCount int       `json:"total_count"`
	Limit      int       `json:"limit"`
	Offset     int       `json:"offset"`
}

type importRowDTO struct {
	Row      int    `json:"row"`
	Headword string `json:"headword"`
	Reason   string `json:"reason"`
}

type importReportDTO struct {
	Imported int            `json:"imported"`
	Skipped  int            `json:"skipped"`
	Errors   []importRowDTO `json:"errors"`
}

func toWord(w *domain.Word) wordDTO {
	return wordDTO{
		ID:           w.ID,
		Headword:     w.Headword,
		Definitions:  w.Definitions,
		Description:  w.Description,
		PartOfSpeech: w.PartOfSpeech,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
}

// List returns one page of words in creation order.
func (h *WordsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	page, err := h.svc.ListWords(r.Context(), vocabulary.ListInput{Limit: limit, Offset: offset})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	dto := wordPageDTO{
		Words:      make([]wordDTO, 0, len(page.Words)),
		TotalCount: page.TotalCount,
		Limit:      page.Limit,
		Offset:     page.Offset,
	}
	for i := range page.Words {
		dto.Words = append(dto.Words, toWord(&page.Words[i]))
	}
	writeJSON(w, http.StatusOK, dto)
}

// Get returns one word.
func (h *WordsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	word, err := h.svc.GetWord(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toWord(word))
}

// Create adds a word.
func (h *WordsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req wordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	word, err := h.svc.CreateWord(r.Context(), vocabulary.CreateInput(req))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.reconcile(r)
	writeJSON(w, http.StatusCreated, toWord(word))
}

// Update replaces a word's editable fields.
func (h *WordsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req wordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	word, err := h.svc.UpdateWord(r.Context(), vocabulary.UpdateInput{
		WordID:       id,
		Headword:     req.Headword,
		Definitions:  req.Definitions,
		Description:  req.Description,
		PartOfSpeech: req.PartOfSpeech,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.reconcile(r)
	writeJSON(w, http.StatusOK, toWord(word))
}

// Delete removes a word.
func (h *WordsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.svc.DeleteWord(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.reconcile(r)
	w.WriteHeader(http.StatusNoContent)
}

// Import adds words from an xlsx upload: either a multipart form with a
// "file" part or the raw workbook as the request body.
func (h *WordsHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSheetUpload)

	src, closeSrc, err := sheetSource(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	defer closeSrc()

	report, err := h.svc.ImportSheet(r.Context(), src)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if report.Imported > 0 {
		h.reconcile(r)
	}

	dto := importReportDTO{
		Imported: report.Imported,
		Skipped:  report.Skipped,
		Errors:   make([]importRowDTO, 0, len(report.Errors)),
	}
	for _, e := range report.Errors {
		dto.Errors = append(dto.Errors, importRowDTO(e))
	}
	writeJSON(w, http.StatusOK, dto)
}

// Export streams the caller's words as an xlsx workbook.
func (h *WordsHandler) Export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.svc.ExportSheet(r.Context(), &buf); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.Header().Set("Content-Type", xlsxMIME)
	w.Header().Set("Content-Disposition", `attachment; filename="words.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *WordsHandler) reconcile(r *http.Request) {
	if h.practice == nil {
		return
	}
	if _, err := h.practice.Reconcile(r.Context()); err != nil {
		h.log.WarnContext(r.Context(), "practice reconcile failed", slog.String("error", err.Error()))
	}
}

func sheetSource(r *http.Request) (io.Reader, func(), error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, func() {}, nil
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, nil, domain.NewValidationError("file", "multipart part \"file\" required")
	}
	return file, func() { _ = file.Close() }, nil
}
