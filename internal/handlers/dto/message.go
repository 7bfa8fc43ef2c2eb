package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateMessageRequest targets exactly one conversation: channel_id for a
// channel message or receiver_id for a direct message.
type CreateMessageRequest struct {
	Content    string     `json:"content" binding:"required,max=4000"`
	ChannelID  *uuid.UUID `json:"channel_id"`
	ReceiverID *uuid.UUID `json:"receiver_id"`
}

type CreateReplyRequest struct {
	Content string `json:"content" binding:"required,max=4000"`
}

type ToggleReactionRequest struct {
	MessageID uuid.UUID `json:"message_id" binding:"required"`
	Emoji     string    `json:"emoji" binding:"required,max=32"`
}

type SetStatusRequest struct {
	Emoji string `json:"emoji" binding:"max=32"`
	Text  string `json:"text" binding:"max=120"`
}

type MessageResponse struct {
	ID              uuid.UUID  `json:"id"`
	Content         string     `json:"content"`
	AuthorID        uuid.UUID  `json:"author_id"`
	ChannelID       *uuid.UUID `json:"channel_id,omitempty"`
	ReceiverID      *uuid.UUID `json:"receiver_id,omitempty"`
	ThreadID        *uuid.UUID `json:"thread_id,omitempty"`
	IsThreadStarter bool       `json:"is_thread_starter"`
	CreatedAt       time.Time  `json:"created_at"`
	Author          *UserInfo  `json:"author,omitempty"`
}

type UserInfo struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Image string    `json:"image,omitempty"`
}
