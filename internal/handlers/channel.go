package handlers

import (
	"net/http"
	"time"

	"github.com/dmarkova/slacklite/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ChannelHandler struct {
	store  ChannelStore
	logger *zap.Logger
}

func NewChannelHandler(store ChannelStore, logger *zap.Logger) *ChannelHandler {
	return &ChannelHandler{store: store, logger: logger}
}

// CreateChannel is admin-only (enforced by middleware). The channel name
// is immutable after creation; a duplicate name comes back as a conflict.
func (h *ChannelHandler) CreateChannel(c *gin.Context) {
	userID := currentUserID(c)

	var req struct {
		Name     string     `json:"name" binding:"required,min=1,max=80"`
		ServerID *uuid.UUID `json:"server_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	channel := &models.Channel{
		Name:      req.Name,
		ServerID:  req.ServerID,
		CreatedBy: userID,
		CreatedAt: time.Now(),
	}

	if err := h.store.CreateChannel(c.Request.Context(), channel); err != nil {
		h.logger.Warn("create channel failed", zap.String("name", req.Name), zap.Error(err))
		respondError(c, err, "failed to create channel")
		return
	}

	c.JSON(http.StatusCreated, channel)
}

func (h *ChannelHandler) ListChannels(c *gin.Context) {
	channels, err := h.store.ListChannels(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list channels")
		return
	}
	c.JSON(http.StatusOK, gin.H{"channels": channels})
}

func (h *ChannelHandler) GetChannel(c *gin.Context) {
	channelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel id"})
		return
	}

	channel, err := h.store.GetChannel(c.Request.Context(), channelID)
	if err != nil {
		respondError(c, err, "channel not found")
		return
	}
	c.JSON(http.StatusOK, channel)
}
