package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/clinicore/clinicore-api/internal/application/feed"
	"github.com/clinicore/clinicore-api/internal/presentation/http/dto/response"
	"github.com/clinicore/clinicore-api/internal/presentation/http/middleware"
)

// FeedHandler upgrades connections to the live clinic event feed
type FeedHandler struct {
	hub      *feed.Hub
	upgrader websocket.Upgrader
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(hub *feed.Hub) *FeedHandler {
	return &FeedHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browsers connect from the clinic's own frontend; CORS is
			// enforced at the HTTP layer.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Subscribe upgrades the request to a websocket and streams clinic events
func (h *FeedHandler) Subscribe(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	clinicID := middleware.GetClinicID(c)
	if clinicID == uuid.Nil {
		response.BadRequest(c, "Clinic context required")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response
		return
	}

	h.hub.Subscribe(conn, clinicID.String())
}

// Status reports feed connectivity for health dashboards
func (h *FeedHandler) Status(c *gin.Context) {
	response.OK(c, "Feed status", gin.H{
		"clients": h.hub.ClientCount(),
		"seq":     h.hub.Seq(),
	})
}
