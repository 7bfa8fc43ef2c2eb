package database

import (
	"context"

	"github.com/dmarkova/slacklite/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (d *Database) SaveMessage(ctx context.Context, message *models.Message) error {
	return translate(d.db.WithContext(ctx).Create(message).Error)
}

func (d *Database) GetMessage(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	var message models.Message
	if err := d.db.WithContext(ctx).First(&message, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &message, nil
}

// ListChannelMessages returns top-level channel messages (thread replies
// excluded), oldest first, with pagination before a given message.
func (d *Database) ListChannelMessages(ctx context.Context, channelID uuid.UUID, limit int, beforeID *uuid.UUID) ([]models.Message, error) {
	query := d.db.WithContext(ctx).
		Where("channel_id = ? AND thread_id IS NULL", channelID)
	return d.listMessages(ctx, query, limit, beforeID)
}

// ListDirectMessages returns the top-level messages between two users, in
// either direction.
func (d *Database) ListDirectMessages(ctx context.Context, userA, userB uuid.UUID, limit int, beforeID *uuid.UUID) ([]models.Message, error) {
	query := d.db.WithContext(ctx).
		Where("thread_id IS NULL AND ((author_id = ? AND receiver_id = ?) OR (author_id = ? AND receiver_id = ?))",
			userA, userB, userB, userA)
	return d.listMessages(ctx, query, limit, beforeID)
}

func (d *Database) listMessages(ctx context.Context, query *gorm.DB, limit int, beforeID *uuid.UUID) ([]models.Message, error) {
	if beforeID != nil {
		var before models.Message
		if err := d.db.WithContext(ctx).First(&before, "id = ?", beforeID).Error; err == nil {
			query = query.Where("created_at < ?", before.CreatedAt)
		}
	}

	var messages []models.Message
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Preload("Author").
		Find(&messages).Error
	if err != nil {
		return nil, translate(err)
	}

	// Reverse so the oldest message comes first.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}
