package handlers

import (
	"context"

	"github.com/dmarkova/slacklite/internal/database"
	"github.com/dmarkova/slacklite/internal/errs"
	"github.com/dmarkova/slacklite/internal/middleware"
	"github.com/dmarkova/slacklite/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Store interfaces are declared on the consumer side so handler tests can
// swap in fakes. *database.Database satisfies all of them.

type UserStore interface {
	SaveUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastSeen(ctx context.Context, id uuid.UUID) error
}

type ChannelStore interface {
	CreateChannel(ctx context.Context, channel *models.Channel) error
	GetChannel(ctx context.Context, id uuid.UUID) (*models.Channel, error)
	ListChannels(ctx context.Context) ([]models.Channel, error)
}

type MessageStore interface {
	SaveMessage(ctx context.Context, message *models.Message) error
	GetMessage(ctx context.Context, id uuid.UUID) (*models.Message, error)
	GetChannel(ctx context.Context, id uuid.UUID) (*models.Channel, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateLastSeen(ctx context.Context, id uuid.UUID) error
	ListChannelMessages(ctx context.Context, channelID uuid.UUID, limit int, beforeID *uuid.UUID) ([]models.Message, error)
	ListDirectMessages(ctx context.Context, userA, userB uuid.UUID, limit int, beforeID *uuid.UUID) ([]models.Message, error)
	SearchMessages(ctx context.Context, query string, scope database.SearchScope) ([]database.SearchResult, error)
}

type ThreadStore interface {
	GetMessage(ctx context.Context, id uuid.UUID) (*models.Message, error)
	CreateReply(ctx context.Context, parentID, authorID uuid.UUID, content string) (*models.Message, error)
	CountReplies(ctx context.Context, parentID uuid.UUID) (int64, error)
	ListThreadReplies(ctx context.Context, parentID uuid.UUID) ([]models.Message, error)
}

type ReactionStore interface {
	GetMessage(ctx context.Context, id uuid.UUID) (*models.Message, error)
	ToggleReaction(ctx context.Context, messageID, userID uuid.UUID, emoji string) (string, *models.Reaction, error)
	ListReactionGroups(ctx context.Context, messageID uuid.UUID) ([]models.ReactionGroup, error)
}

type StatusStore interface {
	UpsertStatus(ctx context.Context, userID uuid.UUID, emoji, text string) (*models.UserStatus, error)
	GetStatus(ctx context.Context, userID uuid.UUID) (*models.UserStatus, error)
	ClearStatus(ctx context.Context, userID uuid.UUID) error
}

func currentUserID(c *gin.Context) uuid.UUID {
	return c.MustGet(middleware.UserIDKey).(uuid.UUID)
}

// canAccessMessage reports whether the user may read the conversation a
// message belongs to. Channel messages are open to any authenticated user;
// direct messages admit only the two participants, matching the subscribe
// check on dm topics.
func canAccessMessage(userID uuid.UUID, m *models.Message) bool {
	if m.ReceiverID == nil {
		return true
	}
	return userID == m.AuthorID || userID == *m.ReceiverID
}

func respondError(c *gin.Context, err error, msg string) {
	c.JSON(errs.HTTPStatus(err), gin.H{"error": msg})
}
