package database

import (
	"context"
	"fmt"

	"github.com/dmarkova/slacklite/internal/errs"
	"github.com/dmarkova/slacklite/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateReply creates a thread reply and flips the parent's thread-starter
// flag in one transaction. Either both rows commit or neither does; a
// reader can never observe a reply whose parent is not marked as a thread
// starter.
func (d *Database) CreateReply(ctx context.Context, parentID, authorID uuid.UUID, content string) (*models.Message, error) {
	var reply *models.Message

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parent models.Message
		if err := tx.First(&parent, "id = ?", parentID).Error; err != nil {
			return translate(err)
		}
		if parent.ThreadID != nil {
			return fmt.Errorf("%w: cannot reply to a thread reply", errs.ErrValidation)
		}

		m := &models.Message{
			Content:  content,
			AuthorID: authorID,
			ThreadID: &parent.ID,
		}
		switch {
		case parent.ChannelID != nil:
			m.ChannelID = parent.ChannelID
		case parent.ReceiverID != nil:
			// A DM reply goes to the other participant.
			if authorID != parent.AuthorID && authorID != *parent.ReceiverID {
				return fmt.Errorf("%w: not a participant of this conversation", errs.ErrForbidden)
			}
			receiver := *parent.ReceiverID
			if authorID == receiver {
				receiver = parent.AuthorID
			}
			m.ReceiverID = &receiver
		default:
			return fmt.Errorf("%w: parent message has no conversation context", errs.ErrValidation)
		}

		if err := tx.Create(m).Error; err != nil {
			return translate(err)
		}

		if !parent.IsThreadStarter {
			err := tx.Model(&models.Message{}).
				Where("id = ?", parent.ID).
				Update("is_thread_starter", true).Error
			if err != nil {
				return translate(err)
			}
		}

		reply = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reply, nil
}

// CountReplies is the authoritative reply count for a thread, always
// computed from the child rows rather than a stored counter.
func (d *Database) CountReplies(ctx context.Context, parentID uuid.UUID) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("thread_id = ?", parentID).
		Count(&count).Error
	if err != nil {
		return 0, translate(err)
	}
	return count, nil
}

// ListThreadReplies returns all replies in a thread, oldest first.
func (d *Database) ListThreadReplies(ctx context.Context, parentID uuid.UUID) ([]models.Message, error) {
	var replies []models.Message
	err := d.db.WithContext(ctx).
		Where("thread_id = ?", parentID).
		Order("created_at ASC").
		Preload("Author").
		Find(&replies).Error
	if err != nil {
		return nil, translate(err)
	}
	return replies, nil
}
