package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
)

const maxJSONBody = 1 << 20

// ErrorBody is the envelope of every non-2xx JSON response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldIssue `json:"fields,omitempty"`
}

// FieldIssue is one field-level validation failure.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// writeError maps domain sentinels to HTTP statuses. Unexpected errors are
// logged and reported as a bare 500.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, detail := classify(err)
	if status == http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
	writeJSON(w, status, ErrorBody{Error: detail})
}

func classify(err error) (int, ErrorDetail) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		fields := make([]FieldIssue, 0, len(verr.Errors))
		for _, fe := range verr.Errors {
			fields = append(fields, FieldIssue{Field: fe.Field, Message: fe.Message})
		}
		return http.StatusBadRequest, ErrorDetail{Code: "VALIDATION", Message: "invalid input", Fields: fields}
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, ErrorDetail{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, ErrorDetail{Code: "UNAUTHORIZED", Message: "missing or invalid X-User-Id"}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrorDetail{Code: "NOT_FOUND", Message: "not found"}
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict, ErrorDetail{Code: "ALREADY_EXISTS", Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, ErrorDetail{Code: "CONFLICT", Message: err.Error()}
	default:
		return http.StatusInternalServerError, ErrorDetail{Code: "INTERNAL", Message: "internal server error"}
	}
}

// decodeJSON reads a single JSON object into dst. An empty body leaves dst
// untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.NewValidationError("body", fmt.Sprintf("must be at most %d bytes", tooLarge.Limit))
		}
		return domain.NewValidationError("body", "malformed JSON: "+err.Error())
	}
	if dec.More() {
		return domain.NewValidationError("body", "must contain a single JSON object")
	}
	return nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "must be a UUID")
	}
	return id, nil
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return n, nil
}
