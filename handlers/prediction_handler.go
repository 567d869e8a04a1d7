package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Dosada05/prediction-league/middleware"
	"github.com/Dosada05/prediction-league/services"
)

var errInvalidLimit = errors.New("limit must be a positive integer")

type PredictionHandler struct {
	predictionService services.PredictionService
}

func NewPredictionHandler(ps services.PredictionService) *PredictionHandler {
	return &PredictionHandler{
		predictionService: ps,
	}
}

func (h *PredictionHandler) PlacePrediction(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input services.PlacePredictionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if problems := validateStruct(input); problems != nil {
		failedValidationResponse(w, r, problems)
		return
	}

	prediction, err := h.predictionService.PlacePrediction(r.Context(), currentUserID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"prediction": prediction,
	}

	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PredictionHandler) GetOwnPrediction(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	groupID, err := idParam(r, "groupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	fixtureID, err := idParam(r, "fixtureID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	prediction, err := h.predictionService.GetOwnPrediction(r.Context(), currentUserID, groupID, fixtureID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"prediction": prediction,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PredictionHandler) CreateFixture(w http.ResponseWriter, r *http.Request) {
	var input services.CreateFixtureInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if problems := validateStruct(input); problems != nil {
		failedValidationResponse(w, r, problems)
		return
	}

	fixture, err := h.predictionService.CreateFixture(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"fixture": fixture,
	}

	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PredictionHandler) ListUpcomingFixtures(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			badRequestResponse(w, r, errInvalidLimit)
			return
		}
		limit = parsed
	}

	fixtures, err := h.predictionService.ListUpcomingFixtures(r.Context(), limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"fixtures": fixtures,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PredictionHandler) RecordFixtureResult(w http.ResponseWriter, r *http.Request) {
	fixtureID, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.RecordResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if problems := validateStruct(input); problems != nil {
		failedValidationResponse(w, r, problems)
		return
	}

	if err := h.predictionService.RecordFixtureResult(r.Context(), fixtureID, input); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PredictionHandler) SettleFixture(w http.ResponseWriter, r *http.Request) {
	fixtureID, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.predictionService.SettleFixture(r.Context(), fixtureID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
