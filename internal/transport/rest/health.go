package rest

import (
	"context"
	"net/http"
	"time"
)

const checkTimeout = 3 * time.Second

// Check is a named dependency probe. Ping must respect ctx.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	checks  []Check
	version string
}

// NewHealthHandler creates a HealthHandler reporting version and running
// checks on /ready and /health.
func NewHealthHandler(version string, checks ...Check) *HealthHandler {
	return &HealthHandler{checks: checks, version: version}
}

// HealthResponse is the JSON response for /live, /ready and /health.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live always answers 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready answers 503 if any check fails.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	_, ok := h.run(r.Context())
	status, code := "ok", http.StatusOK
	if !ok {
		status, code = "down", http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{Status: status, Timestamp: time.Now()})
}

// Health is Ready with per-component latency and the build version.
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
		Timestamp:  time.Now(),
	})
}

func (h *HealthHandler) run(ctx context.Context) (map[string]CompStatus, bool) {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	components := make(map[string]CompStatus, len(h.checks))
	healthy := true
	for _, c := range h.checks {
		start := time.Now()
		if err := c.Ping(ctx); err != nil {
			components[c.Name] = CompStatus{Status: "down"}
			healthy = false
			continue
		}
		components[c.Name] = CompStatus{Status: "ok", Latency: time.Since(start).String()}
	}
	return components, healthy
}
