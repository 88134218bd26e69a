package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
)

const probeTimeout = 3 * time.Second

// Probe is one dependency checked by the readiness endpoints.
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthHandler serves liveness and readiness endpoints.
type HealthHandler struct {
	probes  []Probe
	version string
	clock   clockwork.Clock
}

// NewHealthHandler creates a HealthHandler over the given probes.
func NewHealthHandler(version string, clock clockwork.Clock, probes ...Probe) *HealthHandler {
	return &HealthHandler{probes: probes, version: version, clock: clock}
}

func (h *HealthHandler) register(mux *http.ServeMux) {
	mux.HandleFunc("GET /live", h.Live)
	mux.HandleFunc("GET /ready", h.Ready)
	mux.HandleFunc("GET /health", h.Health)
}

// HealthResponse is the JSON body of every health endpoint.
type HealthResponse struct {
	Status     string                     `json:"status"`
	Version    string                     `json:"version,omitempty"`
	Components map[string]ComponentStatus `json:"components,omitempty"`
	Timestamp  time.Time                  `json:"timestamp"`
}

// ComponentStatus is the result of one probe.
type ComponentStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Live answers 200 as long as the process serves HTTP.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: h.clock.Now()})
}

// Ready answers 503 when any probe fails.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	_, ok := h.run(r.Context())
	status, code := "ok", http.StatusOK
	if !ok {
		status, code = "down", http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{Status: status, Timestamp: h.clock.Now()})
}

// Health is Ready with per-component detail and the build version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components, ok := h.run(r.Context())
	status, code := "ok", http.StatusOK
	if !ok {
		status, code = "down", http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{
		Status:     status,
		Version:    h.version,
		Components: components,
		Timestamp:  h.clock.Now(),
	})
}

// run checks all probes concurrently.
func (h *HealthHandler) run(ctx context.Context) (map[string]ComponentStatus, bool) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	results := make([]ComponentStatus, len(h.probes))
	var g errgroup.Group
	for i, p := range h.probes {
		g.Go(func() error {
			started := h.clock.Now()
			if err := p.Check(ctx); err != nil {
				results[i] = ComponentStatus{Status: "down", Error: err.Error()}
				return nil
			}
			results[i] = ComponentStatus{Status: "ok", Latency: h.clock.Since(started).String()}
			return nil
		})
	}
	_ = g.Wait()

	components := make(map[string]ComponentStatus, len(h.probes))
	healthy := true
	for i, p := range h.probes {
		components[p.Name] = results[i]
		healthy = healthy && results[i].Status == "ok"
	}
	return components, healthy
}
