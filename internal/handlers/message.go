package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dmarkova/slacklite/internal/database"
	"github.com/dmarkova/slacklite/internal/handlers/dto"
	"github.com/dmarkova/slacklite/internal/models"
	"github.com/dmarkova/slacklite/internal/realtime"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MessageHandler struct {
	store     MessageStore
	publisher realtime.Publisher
	logger    *zap.Logger
}

func NewMessageHandler(store MessageStore, publisher realtime.Publisher, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{store: store, publisher: publisher, logger: logger}
}

// CreateMessage posts a top-level message into a channel or a direct
// conversation, then fans it out on the conversation's topic. A publish
// failure does not undo the committed write: the response carries
// realtime_delayed instead.
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	userID := currentUserID(c)

	var req dto.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if (req.ChannelID == nil) == (req.ReceiverID == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exactly one of channel_id or receiver_id is required"})
		return
	}

	var topic string
	switch {
	case req.ChannelID != nil:
		if _, err := h.store.GetChannel(c.Request.Context(), *req.ChannelID); err != nil {
			respondError(c, err, "channel not found")
			return
		}
		topic = realtime.ChannelTopic(*req.ChannelID)
	default:
		if *req.ReceiverID == userID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot message yourself"})
			return
		}
		if _, err := h.store.GetUser(c.Request.Context(), *req.ReceiverID); err != nil {
			respondError(c, err, "receiver not found")
			return
		}
		topic = realtime.DirectTopic(userID, *req.ReceiverID)
	}

	message := &models.Message{
		Content:    req.Content,
		AuthorID:   userID,
		ChannelID:  req.ChannelID,
		ReceiverID: req.ReceiverID,
		CreatedAt:  time.Now(),
	}

	if err := h.store.SaveMessage(c.Request.Context(), message); err != nil {
		respondError(c, err, "failed to save message")
		return
	}

	if err := h.store.UpdateLastSeen(c.Request.Context(), userID); err != nil {
		h.logger.Warn("last seen update failed", zap.String("user_id", userID.String()), zap.Error(err))
	}

	delayed := false
	event, err := realtime.NewEvent(realtime.EventNewMessage, topic, formatMessage(message))
	if err == nil {
		err = h.publisher.Publish(c.Request.Context(), topic, event)
	}
	if err != nil {
		h.logger.Warn("message fan-out failed", zap.String("topic", topic), zap.Error(err))
		delayed = true
	}

	resp := gin.H{"message": formatMessage(message)}
	if delayed {
		resp["realtime_delayed"] = true
	}
	c.JSON(http.StatusCreated, resp)
}

// ListMessages handles GET /messages?channel_id=|receiver_id=&limit=&before=
func (h *MessageHandler) ListMessages(c *gin.Context) {
	userID := currentUserID(c)

	limit := 50
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	var beforeID *uuid.UUID
	if before := c.Query("before"); before != "" {
		if id, err := uuid.Parse(before); err == nil {
			beforeID = &id
		}
	}

	var (
		messages []models.Message
		err      error
	)
	switch {
	case c.Query("channel_id") != "":
		channelID, parseErr := uuid.Parse(c.Query("channel_id"))
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel_id"})
			return
		}
		messages, err = h.store.ListChannelMessages(c.Request.Context(), channelID, limit, beforeID)
	case c.Query("receiver_id") != "":
		receiverID, parseErr := uuid.Parse(c.Query("receiver_id"))
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid receiver_id"})
			return
		}
		messages, err = h.store.ListDirectMessages(c.Request.Context(), userID, receiverID, limit, beforeID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "channel_id or receiver_id is required"})
		return
	}
	if err != nil {
		respondError(c, err, "failed to list messages")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": formatMessages(messages),
		"has_more": len(messages) == limit,
	})
}

// Search handles GET /messages/search?query=&channel_id=|receiver_id=
// Matching is case-insensitive substring, newest first, capped at 50.
func (h *MessageHandler) Search(c *gin.Context) {
	userID := currentUserID(c)

	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter is required"})
		return
	}

	scope := database.SearchScope{UserID: userID}
	switch {
	case c.Query("channel_id") != "":
		channelID, err := uuid.Parse(c.Query("channel_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel_id"})
			return
		}
		scope.ChannelID = &channelID
	case c.Query("receiver_id") != "":
		receiverID, err := uuid.Parse(c.Query("receiver_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid receiver_id"})
			return
		}
		scope.ReceiverID = &receiverID
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "channel_id or receiver_id is required"})
		return
	}

	results, err := h.store.SearchMessages(c.Request.Context(), query, scope)
	if err != nil {
		respondError(c, err, "search failed")
		return
	}

	out := make([]gin.H, len(results))
	for i, r := range results {
		out[i] = gin.H{
			"message":     formatMessage(&r.Message),
			"reply_count": r.ReplyCount,
		}
	}
	c.JSON(http.StatusOK, gin.H{"results": out})
}
