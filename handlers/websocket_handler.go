package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Dosada05/prediction-league/live"
	"github.com/Dosada05/prediction-league/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin filtering is handled by the CORS layer in front of the router.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WebSocketHandler struct {
	hub          *live.Hub
	groupService services.GroupService
}

func NewWebSocketHandler(hub *live.Hub, gs services.GroupService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:          hub,
		groupService: gs,
	}
}

// SubscribeGroup upgrades the connection and joins the caller to the group's
// live room, where leaderboard updates are pushed after each settlement.
func (h *WebSocketHandler) SubscribeGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.groupService.GetGroupByID(r.Context(), groupID, false); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		return
	}

	h.hub.Subscribe(conn, live.GroupRoom(groupID))
}
