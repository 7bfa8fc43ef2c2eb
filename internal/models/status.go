package models

import (
	"time"

	"github.com/google/uuid"
)

// UserStatus is one-to-one with User and only ever upserted.
type UserStatus struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Emoji     string    `json:"emoji"`
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updated_at"`
}
