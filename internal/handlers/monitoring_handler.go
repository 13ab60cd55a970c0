package handlers

import (
	"net/http"

	"concierge-backend/internal/monitoring"
	"concierge-backend/pkg/utils"
)

type MonitoringHandler struct {
	Collector *monitoring.Collector
}

func NewMonitoringHandler(collector *monitoring.Collector) *MonitoringHandler {
	return &MonitoringHandler{Collector: collector}
}

// SystemStats returns a point-in-time snapshot of host and dependency
// state for the admin dashboard.
func (h *MonitoringHandler) SystemStats(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.Collector.Collect(r.Context()))
}
