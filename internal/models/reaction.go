package models

import (
	"time"

	"github.com/google/uuid"
)

// Reaction rows are unique per (message, user, emoji). The index is what
// turns a concurrent double-toggle into a duplicate-key conflict instead
// of a silent second row.
type Reaction struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MessageID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reaction_triple" json:"message_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reaction_triple" json:"user_id"`
	Emoji     string    `gorm:"not null;uniqueIndex:idx_reaction_triple" json:"emoji"`
	CreatedAt time.Time `json:"created_at"`
}

// ReactionGroup is the per-emoji rollup sent to clients: count plus who
// reacted, so the UI can highlight the current user's own reactions.
type ReactionGroup struct {
	Emoji string      `json:"emoji"`
	Count int         `json:"count"`
	Users []uuid.UUID `json:"users"`
}
