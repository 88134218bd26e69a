package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/pkg/ctxutil"
)

// UserIDHeader names the learner on every request. Authentication happens
// upstream of this service; the header is trusted as-is.
const UserIDHeader = "X-User-Id"

const unauthorizedBody = `{"error":{"code":"UNAUTHORIZED","message":"malformed user id"}}` + "\n"

// Identity attaches the X-User-Id to the request context. A request without
// the header passes through anonymously and is rejected by the services that
// need a learner; a malformed or nil id is rejected here with 401.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil || userID == uuid.Nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(unauthorizedBody))
			return
		}

		next.ServeHTTP(w, r.WithContext(ctxutil.WithUserID(r.Context(), userID)))
	})
}
