package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmarkova/slacklite/internal/errs"
	"github.com/dmarkova/slacklite/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReactionAdded   = "added"
	ReactionRemoved = "removed"
)

// ToggleReaction adds or removes the (message, user, emoji) reaction.
// Concurrent toggles of the same triple race; the unique index turns a
// double-add into ErrConflict and a lost delete is reported the same way,
// so the caller always sees a defined outcome.
func (d *Database) ToggleReaction(ctx context.Context, messageID, userID uuid.UUID, emoji string) (string, *models.Reaction, error) {
	if _, err := d.GetMessage(ctx, messageID); err != nil {
		return "", nil, err
	}

	var existing models.Reaction
	err := d.db.WithContext(ctx).
		Where("message_id = ? AND user_id = ? AND emoji = ?", messageID, userID, emoji).
		First(&existing).Error

	switch {
	case err == nil:
		res := d.db.WithContext(ctx).Delete(&models.Reaction{}, "id = ?", existing.ID)
		if res.Error != nil {
			return "", nil, translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return "", nil, fmt.Errorf("%w: reaction removed concurrently", errs.ErrConflict)
		}
		return ReactionRemoved, &existing, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		reaction := &models.Reaction{
			MessageID: messageID,
			UserID:    userID,
			Emoji:     emoji,
		}
		if err := d.db.WithContext(ctx).Create(reaction).Error; err != nil {
			return "", nil, translate(err)
		}
		return ReactionAdded, reaction, nil

	default:
		return "", nil, translate(err)
	}
}

// ListReactionGroups returns the full reaction set for a message rolled up
// per emoji.
func (d *Database) ListReactionGroups(ctx context.Context, messageID uuid.UUID) ([]models.ReactionGroup, error) {
	var reactions []models.Reaction
	err := d.db.WithContext(ctx).
		Where("message_id = ?", messageID).
		Order("created_at ASC").
		Find(&reactions).Error
	if err != nil {
		return nil, translate(err)
	}

	groups := make([]models.ReactionGroup, 0)
	index := make(map[string]int)
	for _, r := range reactions {
		i, ok := index[r.Emoji]
		if !ok {
			i = len(groups)
			index[r.Emoji] = i
			groups = append(groups, models.ReactionGroup{Emoji: r.Emoji})
		}
		groups[i].Count++
		groups[i].Users = append(groups[i].Users, r.UserID)
	}
	return groups, nil
}
