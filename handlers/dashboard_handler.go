package handlers

import (
	"net/http"

	"github.com/Dosada05/prediction-league/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(ds services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: ds,
	}
}

func (h *DashboardHandler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.GetDashboardStats(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"dashboard": stats,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
