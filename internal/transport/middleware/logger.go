package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/pkg/ctxutil"
)

// AccessLog writes one "http.request" record per request. 5xx responses are
// logged at ERROR, 4xx at WARN, everything else at INFO.
func AccessLog(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			rw := &recordingWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rw, r)

			ctx := r.Context()
			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rw.status),
				slog.Int("bytes", rw.written),
				slog.Duration("duration", time.Since(started)),
				slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
			}
			if userID, ok := ctxutil.UserIDFromCtx(ctx); ok {
				attrs = append(attrs, slog.String("user_id", userID.String()))
			}

			logger.LogAttrs(ctx, levelFor(rw.status), "http.request", attrs...)
		})
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// recordingWriter captures the status code and body size of a response.
type recordingWriter struct {
	http.ResponseWriter
	status      int
	written     int
	wroteHeader bool
}

func (w *recordingWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(b)
	w.written += n
	return n, err
}

func (w *recordingWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
