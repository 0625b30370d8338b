package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/GabrielaCA88/ibitracker/internal/version"
)

var startTime = time.Now()

// HealthHandler обробляє health check endpoints
type HealthHandler struct {
	chainID string
}

// NewHealthHandler створює новий HealthHandler
func NewHealthHandler(chainID string) *HealthHandler {
	return &HealthHandler{chainID: chainID}
}

// HealthResponse структура відповіді health check
type HealthResponse struct {
	Status    string            `json:"status"`
	ChainID   string            `json:"chain_id"`
	Uptime    string            `json:"uptime"`
	Version   string            `json:"version"`
	Go        string            `json:"go_version"`
	BuildInfo map[string]string `json:"build_info,omitempty"`
}

// Health перевіряє статус системи
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		ChainID:   h.chainID,
		Uptime:    time.Since(startTime).String(),
		Version:   version.Current(),
		Go:        runtime.Version(),
		BuildInfo: version.Info(),
	})
}

// Ping простий ping endpoint
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message":"pong"}`))
}
