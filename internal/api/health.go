package api

import (
	"net/http"
	"time"

	"phoneaddr/internal/version"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Store     string    `json:"store"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// handleHealth responds to health check requests. The store is pinged on
// every call; a failing ping degrades the service instead of erroring.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	storeStatus := "ok"
	if err := s.kv.Ping(r.Context()); err != nil {
		s.logger.Warn("Store ping failed", map[string]interface{}{
			"error": err.Error(),
		})
		storeStatus = "unavailable"
	}

	response := HealthResponse{
		Status:    "ok",
		Store:     storeStatus,
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
	}

	statusCode := http.StatusOK
	if storeStatus != "ok" {
		response.Status = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	WriteJSON(w, response, statusCode)
}
