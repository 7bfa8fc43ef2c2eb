package handlers

import (
	"net/http"

	"github.com/dmarkova/slacklite/internal/handlers/dto"
	"github.com/dmarkova/slacklite/internal/realtime"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PresenceSource reports which users currently hold a live socket.
type PresenceSource interface {
	OnlineUsers() []uuid.UUID
}

type StatusHandler struct {
	store     StatusStore
	presence  PresenceSource
	publisher realtime.Publisher
	logger    *zap.Logger
}

func NewStatusHandler(store StatusStore, presence PresenceSource, publisher realtime.Publisher, logger *zap.Logger) *StatusHandler {
	return &StatusHandler{store: store, presence: presence, publisher: publisher, logger: logger}
}

// SetStatus handles POST /user/status. Upsert plus a broadcast on the
// global status topic so every client can update its presence map.
func (h *StatusHandler) SetStatus(c *gin.Context) {
	userID := currentUserID(c)

	var req dto.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Emoji == "" && req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "emoji or text is required"})
		return
	}

	status, err := h.store.UpsertStatus(c.Request.Context(), userID, req.Emoji, req.Text)
	if err != nil {
		respondError(c, err, "failed to set status")
		return
	}

	delayed := h.broadcast(c, realtime.StatusPayload{UserID: userID, Status: status})

	resp := gin.H{"status": status}
	if delayed {
		resp["realtime_delayed"] = true
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StatusHandler) GetOwnStatus(c *gin.Context) {
	h.getStatus(c, currentUserID(c))
}

func (h *StatusHandler) GetUserStatus(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	h.getStatus(c, userID)
}

func (h *StatusHandler) getStatus(c *gin.Context, userID uuid.UUID) {
	status, err := h.store.GetStatus(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "status not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// ClearStatus handles DELETE /user/status and broadcasts an absent status.
func (h *StatusHandler) ClearStatus(c *gin.Context) {
	userID := currentUserID(c)

	if err := h.store.ClearStatus(c.Request.Context(), userID); err != nil {
		respondError(c, err, "failed to clear status")
		return
	}

	delayed := h.broadcast(c, realtime.StatusPayload{UserID: userID, Status: nil})

	resp := gin.H{"cleared": true}
	if delayed {
		resp["realtime_delayed"] = true
	}
	c.JSON(http.StatusOK, resp)
}

// Presence handles GET /presence — the users currently online on this
// instance's hub.
func (h *StatusHandler) Presence(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"online": h.presence.OnlineUsers()})
}

func (h *StatusHandler) broadcast(c *gin.Context, payload realtime.StatusPayload) bool {
	event, err := realtime.NewEvent(realtime.EventStatusUpdate, realtime.StatusTopic, payload)
	if err == nil {
		err = h.publisher.Publish(c.Request.Context(), realtime.StatusTopic, event)
	}
	if err != nil {
		h.logger.Warn("status fan-out failed", zap.Error(err))
		return true
	}
	return false
}
