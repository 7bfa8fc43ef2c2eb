package database

import (
	"context"
	"time"

	"github.com/dmarkova/slacklite/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// UpsertStatus creates or replaces the user's status. The unique index on
// user_id guarantees one row per user.
func (d *Database) UpsertStatus(ctx context.Context, userID uuid.UUID, emoji, text string) (*models.UserStatus, error) {
	status := &models.UserStatus{
		UserID:    userID,
		Emoji:     emoji,
		Text:      text,
		UpdatedAt: time.Now(),
	}
	err := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"emoji", "text", "updated_at"}),
		}).
		Create(status).Error
	if err != nil {
		return nil, translate(err)
	}
	return d.GetStatus(ctx, userID)
}

func (d *Database) GetStatus(ctx context.Context, userID uuid.UUID) (*models.UserStatus, error) {
	var status models.UserStatus
	if err := d.db.WithContext(ctx).Where("user_id = ?", userID).First(&status).Error; err != nil {
		return nil, translate(err)
	}
	return &status, nil
}

// ClearStatus removes the user's status. Clearing an absent status is a
// no-op.
func (d *Database) ClearStatus(ctx context.Context, userID uuid.UUID) error {
	return translate(d.db.WithContext(ctx).
		Delete(&models.UserStatus{}, "user_id = ?", userID).Error)
}
