package models

import (
	"time"

	"github.com/google/uuid"
)

// Message lives in exactly one conversation: either ChannelID is set
// (channel message) or ReceiverID is set (direct message to that user).
// ThreadID marks a reply to another message in the same conversation;
// IsThreadStarter is flipped on the parent when its first reply lands.
type Message struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Content         string     `gorm:"not null" json:"content"`
	AuthorID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"author_id"`
	ChannelID       *uuid.UUID `gorm:"type:uuid;index" json:"channel_id,omitempty"`
	ReceiverID      *uuid.UUID `gorm:"type:uuid;index" json:"receiver_id,omitempty"`
	ThreadID        *uuid.UUID `gorm:"type:uuid;index" json:"thread_id,omitempty"`
	IsThreadStarter bool       `gorm:"not null;default:false" json:"is_thread_starter"`
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`

	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}
