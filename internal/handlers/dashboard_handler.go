package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"concierge-backend/internal/cache"
	"concierge-backend/internal/services"
	"concierge-backend/pkg/utils"
)

// dashboardCacheTTL is short: the dashboard polls, and stale counters are
// tolerable for half a minute.
const dashboardCacheTTL = 30 * time.Second

type DashboardHandler struct {
	Service *services.DashboardService
}

func NewDashboardHandler(s *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Service: s}
}

func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	key := "dashboard:stats:" + companyID(r)
	if data, ok := cache.GetCached(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	stats, err := h.Service.GetStats(r.Context(), companyID(r))
	if err != nil {
		utils.Error(w, err)
		return
	}

	if data, err := json.Marshal(stats); err == nil {
		cache.SetCached(r.Context(), key, data, dashboardCacheTTL)
	}
	utils.JSON(w, http.StatusOK, stats)
}
