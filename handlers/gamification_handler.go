package handlers

import (
	"net/http"

	"github.com/Dosada05/prediction-league/services"
)

type GamificationHandler struct {
	gamificationService services.GamificationService
}

func NewGamificationHandler(gs services.GamificationService) *GamificationHandler {
	return &GamificationHandler{
		gamificationService: gs,
	}
}

func (h *GamificationHandler) GetGamificationData(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.gamificationService.GetGamificationData(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GamificationHandler) GetBadges(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	badges, err := h.gamificationService.GetBadges(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"badges": badges,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GamificationHandler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	stats, err := h.gamificationService.GetUserStats(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"stats": stats,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
