package handlers

import (
	"net/http"

	"github.com/dmarkova/slacklite/internal/errs"
	"github.com/dmarkova/slacklite/internal/handlers/dto"
	"github.com/dmarkova/slacklite/internal/models"
	"github.com/dmarkova/slacklite/internal/realtime"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReactionHandler struct {
	store     ReactionStore
	publisher realtime.Publisher
	logger    *zap.Logger
}

func NewReactionHandler(store ReactionStore, publisher realtime.Publisher, logger *zap.Logger) *ReactionHandler {
	return &ReactionHandler{store: store, publisher: publisher, logger: logger}
}

// ToggleReaction handles POST /reactions. Toggle semantics: the same call
// adds the reaction if absent and removes it if present, so repeated
// submissions alternate state. After the mutation the full reaction set is
// re-read and fanned out on the message's conversation topic.
func (h *ReactionHandler) ToggleReaction(c *gin.Context) {
	userID := currentUserID(c)

	var req dto.ToggleReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.store.GetMessage(c.Request.Context(), req.MessageID)
	if err != nil {
		respondError(c, err, "message not found")
		return
	}

	if !canAccessMessage(userID, message) {
		respondError(c, errs.ErrForbidden, "not a participant of this conversation")
		return
	}

	action, reaction, err := h.store.ToggleReaction(c.Request.Context(), req.MessageID, userID, req.Emoji)
	if err != nil {
		respondError(c, err, "failed to toggle reaction")
		return
	}

	groups, err := h.store.ListReactionGroups(c.Request.Context(), req.MessageID)
	if err != nil {
		respondError(c, err, "failed to read reactions")
		return
	}

	topic := conversationTopic(message)

	delayed := false
	if topic != "" {
		event, evErr := realtime.NewEvent(realtime.EventReactionUpdate, topic, realtime.ReactionPayload{
			MessageID: req.MessageID,
			Action:    action,
			Emoji:     req.Emoji,
			UserID:    userID,
			Groups:    groups,
		})
		if evErr == nil {
			evErr = h.publisher.Publish(c.Request.Context(), topic, event)
		}
		if evErr != nil {
			h.logger.Warn("reaction fan-out failed", zap.String("topic", topic), zap.Error(evErr))
			delayed = true
		}
	}

	resp := gin.H{
		"action":   action,
		"reaction": reaction,
		"groups":   groups,
	}
	if delayed {
		resp["realtime_delayed"] = true
	}
	c.JSON(http.StatusOK, resp)
}

// conversationTopic picks the main topic of the conversation a message
// lives in. Reactions to thread replies go to the thread topic instead.
func conversationTopic(message *models.Message) string {
	switch {
	case message.ThreadID != nil && message.ChannelID != nil:
		return realtime.ThreadChannelTopic(*message.ChannelID, *message.ThreadID)
	case message.ThreadID != nil && message.ReceiverID != nil:
		return realtime.ThreadDirectTopic(message.AuthorID, *message.ReceiverID, *message.ThreadID)
	case message.ChannelID != nil:
		return realtime.ChannelTopic(*message.ChannelID)
	case message.ReceiverID != nil:
		return realtime.DirectTopic(message.AuthorID, *message.ReceiverID)
	}
	return ""
}
