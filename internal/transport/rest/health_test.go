package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var healthNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func probe(name string, err error) Probe {
	return Probe{Name: name, Check: func(context.Context) error { return err }}
}

func serveHealth(t *testing.T, h *HealthHandler, path string) (int, HealthResponse) {
	t.Helper()

	mux := http.NewServeMux()
	h.register(mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec.Code, resp
}

func TestHealth_Live(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("v1", clockwork.NewFakeClockAt(healthNow), probe("database", errors.New("refused")))
	code, resp := serveHealth(t, h, "/live")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Timestamp.Equal(healthNow))
	assert.Empty(t, resp.Components)
}

func TestHealth_Ready(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		probes   []Probe
		wantCode int
		want     string
	}{
		{"no probes", nil, http.StatusOK, "ok"},
		{"all up", []Probe{probe("database", nil), probe("snapshots", nil)}, http.StatusOK, "ok"},
		{"one down", []Probe{probe("database", nil), probe("snapshots", errors.New("missing dir"))}, http.StatusServiceUnavailable, "down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := NewHealthHandler("v1", clockwork.NewFakeClockAt(healthNow), tt.probes...)
			code, resp := serveHealth(t, h, "/ready")
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.want, resp.Status)
			assert.Empty(t, resp.Version)
		})
	}
}

func TestHealth_Components(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("v1.2.3", clockwork.NewFakeClockAt(healthNow),
		probe("database", nil),
		probe("snapshots", errors.New("permission denied")),
	)
	code, resp := serveHealth(t, h, "/health")

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "down", resp.Status)
	assert.Equal(t, "v1.2.3", resp.Version)
	require.Len(t, resp.Components, 2)

	db := resp.Components["database"]
	assert.Equal(t, "ok", db.Status)
	assert.Equal(t, "0s", db.Latency)

	snap := resp.Components["snapshots"]
	assert.Equal(t, "down", snap.Status)
	assert.Equal(t, "permission denied", snap.Error)
}

func TestHealth_ProbeSeesDeadline(t *testing.T) {
	t.Parallel()

	var hasDeadline bool
	h := NewHealthHandler("v1", clockwork.NewFakeClockAt(healthNow), Probe{
		Name: "database",
		Check: func(ctx context.Context) error {
			_, hasDeadline = ctx.Deadline()
			return nil
		},
	})
	code, _ := serveHealth(t, h, "/ready")

	assert.Equal(t, http.StatusOK, code)
	assert.True(t, hasDeadline)
}
