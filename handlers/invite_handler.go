package handlers

import (
	"net/http"

	"github.com/Dosada05/prediction-league/middleware"
	"github.com/Dosada05/prediction-league/services"
)

type InviteHandler struct {
	inviteService services.InviteService
}

func NewInviteHandler(is services.InviteService) *InviteHandler {
	return &InviteHandler{
		inviteService: is,
	}
}

func (h *InviteHandler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	groupID, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	invite, err := h.inviteService.CreateInvite(r.Context(), groupID, currentUserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"invite": invite,
	}

	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *InviteHandler) ListGroupInvites(w http.ResponseWriter, r *http.Request) {
	groupID, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	invites, err := h.inviteService.ListGroupInvites(r.Context(), groupID, currentUserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"invites": invites,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type acceptInviteInput struct {
	Token string `json:"token" validate:"required,len=32"`
}

func (h *InviteHandler) AcceptInvite(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input acceptInviteInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if problems := validateStruct(input); problems != nil {
		failedValidationResponse(w, r, problems)
		return
	}

	group, err := h.inviteService.AcceptInvite(r.Context(), input.Token, currentUserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"group": group,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *InviteHandler) DeleteInvite(w http.ResponseWriter, r *http.Request) {
	inviteID, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	if err := h.inviteService.DeleteInvite(r.Context(), inviteID, currentUserID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
