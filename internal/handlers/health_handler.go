package handlers

import (
	"net/http"

	"concierge-backend/internal/health"
	"concierge-backend/pkg/utils"
)

type HealthHandler struct {
	Checker *health.HealthChecker
}

func NewHealthHandler(checker *health.HealthChecker) *HealthHandler {
	return &HealthHandler{Checker: checker}
}

// Health reports liveness. Always 200 so orchestrators do not restart
// the process over a degraded dependency.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.Checker.CheckBasic())
}

// Ready reports readiness: 503 until the database answers.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status := h.Checker.CheckBasic()
	code := http.StatusOK
	if status.Status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}
	utils.JSON(w, code, status)
}
