package http

import (
	"net/http"

	"rentdesk-backend/internal/service"
)

type StatsHandler struct {
	stats service.StatsService
}

func NewStatsHandler(stats service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.GetDashboardStats(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
