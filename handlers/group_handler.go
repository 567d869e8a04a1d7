package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/prediction-league/middleware"
	"github.com/Dosada05/prediction-league/services"
)

type GroupHandler struct {
	groupService services.GroupService
}

func NewGroupHandler(gs services.GroupService) *GroupHandler {
	return &GroupHandler{
		groupService: gs,
	}
}

func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input services.CreateGroupInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if problems := validateStruct(input); problems != nil {
		failedValidationResponse(w, r, problems)
		return
	}

	group, err := h.groupService.CreateGroup(r.Context(), currentUserID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"group": group,
	}

	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GroupHandler) GetGroupByID(w http.ResponseWriter, r *http.Request) {
	groupID, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	group, err := h.groupService.GetGroupByID(r.Context(), groupID, true)
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

func (h *GroupHandler) ListMyGroups(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	groups, err := h.groupService.ListUserGroups(r.Context(), currentUserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"groups": groups,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GroupHandler) LeaveGroup(w http.ResponseWriter, r *http.Request) {
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

	if err := h.groupService.LeaveGroup(r.Context(), groupID, currentUserID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *GroupHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	groupID, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entries, err := h.groupService.GetLeaderboard(r.Context(), groupID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"leaderboard": entries,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GroupHandler) UploadGroupLogo(w http.ResponseWriter, r *http.Request) {
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

	file, header, err := r.FormFile("logo")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("content type required"))
		return
	}

	group, err := h.groupService.UpdateGroupLogo(r.Context(), groupID, currentUserID, file, contentType)
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
