package database

import (
	"context"
	"fmt"

	"github.com/dmarkova/slacklite/internal/errs"
	"github.com/dmarkova/slacklite/internal/models"
	"github.com/google/uuid"
)

const searchLimit = 50

// SearchScope narrows a search to one conversation: either a channel, or
// the direct messages between UserID and ReceiverID.
type SearchScope struct {
	ChannelID  *uuid.UUID
	UserID     uuid.UUID
	ReceiverID *uuid.UUID
}

// SearchResult is a message annotated with its derived reply count. The
// count comes from a correlated subquery, not a stored column.
type SearchResult struct {
	models.Message `gorm:"embedded"`
	ReplyCount     int64 `json:"reply_count"`
}

// validate enforces that the scope names exactly one conversation.
func (s SearchScope) validate() error {
	if (s.ChannelID == nil) == (s.ReceiverID == nil) {
		return fmt.Errorf("%w: search scope requires exactly one of channel_id or receiver_id", errs.ErrValidation)
	}
	return nil
}

// SearchMessages matches message content by case-insensitive substring,
// newest first, capped at searchLimit.
func (d *Database) SearchMessages(ctx context.Context, query string, scope SearchScope) ([]SearchResult, error) {
	if err := scope.validate(); err != nil {
		return nil, err
	}

	q := d.db.WithContext(ctx).
		Model(&models.Message{}).
		Select("messages.*, (SELECT count(*) FROM messages r WHERE r.thread_id = messages.id) AS reply_count").
		Where("content ILIKE ?", "%"+query+"%")

	switch {
	case scope.ChannelID != nil:
		q = q.Where("channel_id = ?", scope.ChannelID)
	default:
		q = q.Where("(author_id = ? AND receiver_id = ?) OR (author_id = ? AND receiver_id = ?)",
			scope.UserID, scope.ReceiverID, scope.ReceiverID, scope.UserID)
	}

	results := make([]SearchResult, 0)
	err := q.
		Order("created_at DESC").
		Limit(searchLimit).
		Find(&results).Error
	if err != nil {
		return nil, translate(err)
	}
	return results, nil
}
