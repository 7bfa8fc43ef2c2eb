package handlers

import (
	"net/http"

	"github.com/dmarkova/slacklite/internal/errs"
	"github.com/dmarkova/slacklite/internal/handlers/dto"
	"github.com/dmarkova/slacklite/internal/models"
	"github.com/dmarkova/slacklite/internal/realtime"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ThreadHandler struct {
	store     ThreadStore
	publisher realtime.Publisher
	logger    *zap.Logger
}

func NewThreadHandler(store ThreadStore, publisher realtime.Publisher, logger *zap.Logger) *ThreadHandler {
	return &ThreadHandler{store: store, publisher: publisher, logger: logger}
}

// CreateReply handles POST /messages/thread/:id. The reply row and the
// parent's thread-starter flag commit in one transaction; after that the
// authoritative reply count is recomputed and two events go out — the
// reply on the thread topic, the count on the conversation's main topic.
func (h *ThreadHandler) CreateReply(c *gin.Context) {
	userID := currentUserID(c)

	parentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	var req dto.CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.store.CreateReply(c.Request.Context(), parentID, userID, req.Content)
	if err != nil {
		respondError(c, err, "failed to create reply")
		return
	}

	count, err := h.store.CountReplies(c.Request.Context(), parentID)
	if err != nil {
		h.logger.Warn("reply count read failed", zap.String("thread_id", parentID.String()), zap.Error(err))
		count = -1
	}

	delayed := h.fanOut(c, reply, parentID, count)

	resp := gin.H{"reply": formatMessage(reply)}
	if count >= 0 {
		resp["reply_count"] = count
	}
	if delayed {
		resp["realtime_delayed"] = true
	}
	c.JSON(http.StatusCreated, resp)
}

// fanOut publishes the reply and the updated count. Both publishes are
// best-effort; the reply is already durable.
func (h *ThreadHandler) fanOut(c *gin.Context, reply *models.Message, parentID uuid.UUID, count int64) bool {
	var threadTopic, mainTopic string
	switch {
	case reply.ChannelID != nil:
		threadTopic = realtime.ThreadChannelTopic(*reply.ChannelID, parentID)
		mainTopic = realtime.ChannelTopic(*reply.ChannelID)
	case reply.ReceiverID != nil:
		threadTopic = realtime.ThreadDirectTopic(reply.AuthorID, *reply.ReceiverID, parentID)
		mainTopic = realtime.DirectTopic(reply.AuthorID, *reply.ReceiverID)
	default:
		return false
	}

	delayed := false

	event, err := realtime.NewEvent(realtime.EventThreadReply, threadTopic, formatMessage(reply))
	if err == nil {
		err = h.publisher.Publish(c.Request.Context(), threadTopic, event)
	}
	if err != nil {
		h.logger.Warn("thread reply fan-out failed", zap.String("topic", threadTopic), zap.Error(err))
		delayed = true
	}

	if count >= 0 {
		event, err = realtime.NewEvent(realtime.EventThreadCount, mainTopic, realtime.ThreadCountPayload{
			ThreadID:   parentID,
			ReplyCount: count,
		})
		if err == nil {
			err = h.publisher.Publish(c.Request.Context(), mainTopic, event)
		}
		if err != nil {
			h.logger.Warn("thread count fan-out failed", zap.String("topic", mainTopic), zap.Error(err))
			delayed = true
		}
	}

	return delayed
}

// GetThread handles GET /messages/thread/:id — the parent plus all replies,
// oldest first. This is the reconciliation read clients use after a missed
// or delayed fan-out event.
func (h *ThreadHandler) GetThread(c *gin.Context) {
	userID := currentUserID(c)

	parentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	parent, err := h.store.GetMessage(c.Request.Context(), parentID)
	if err != nil {
		respondError(c, err, "message not found")
		return
	}

	if !canAccessMessage(userID, parent) {
		respondError(c, errs.ErrForbidden, "not a participant of this conversation")
		return
	}

	replies, err := h.store.ListThreadReplies(c.Request.Context(), parentID)
	if err != nil {
		respondError(c, err, "failed to list replies")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"parent":      formatMessage(parent),
		"replies":     formatMessages(replies),
		"reply_count": len(replies),
	})
}
