package database

import (
	"context"

	"github.com/dmarkova/slacklite/internal/models"
	"github.com/google/uuid"
)

// CreateChannel inserts a channel; a duplicate name surfaces as ErrConflict
// through the unique index on name.
func (d *Database) CreateChannel(ctx context.Context, channel *models.Channel) error {
	return translate(d.db.WithContext(ctx).Create(channel).Error)
}

func (d *Database) GetChannel(ctx context.Context, id uuid.UUID) (*models.Channel, error) {
	var channel models.Channel
	if err := d.db.WithContext(ctx).First(&channel, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &channel, nil
}

func (d *Database) ListChannels(ctx context.Context) ([]models.Channel, error) {
	var channels []models.Channel
	err := d.db.WithContext(ctx).Order("created_at ASC").Find(&channels).Error
	if err != nil {
		return nil, translate(err)
	}
	return channels, nil
}
