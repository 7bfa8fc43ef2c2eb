package realtime

import (
	"encoding/json"
	"time"

	"github.com/dmarkova/slacklite/internal/models"
	"github.com/google/uuid"
)

// EventType tags every fan-out payload so consumers can switch on it
// exhaustively instead of probing fields.
type EventType string

const (
	EventNewMessage     EventType = "message"
	EventThreadReply    EventType = "thread_reply"
	EventThreadCount    EventType = "thread_count"
	EventReactionUpdate EventType = "reaction_update"
	EventStatusUpdate   EventType = "status_update"
	EventPresenceUpdate EventType = "presence_update"
)

// Event is the wire envelope for every fan-out message.
type Event struct {
	Type      EventType       `json:"type"`
	Topic     string          `json:"topic"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

func NewEvent(typ EventType, topic string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		Type:      typ,
		Topic:     topic,
		Timestamp: time.Now(),
		Data:      data,
	}, nil
}

func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// ThreadCountPayload is published on the parent conversation's main topic
// so list views can show reply counts without subscribing to every thread.
type ThreadCountPayload struct {
	ThreadID   uuid.UUID `json:"thread_id"`
	ReplyCount int64     `json:"reply_count"`
}

type ReactionPayload struct {
	MessageID uuid.UUID              `json:"message_id"`
	Action    string                 `json:"action"`
	Emoji     string                 `json:"emoji"`
	UserID    uuid.UUID              `json:"user_id"`
	Groups    []models.ReactionGroup `json:"groups"`
}

// StatusPayload carries the new status, or nil when the status was cleared.
type StatusPayload struct {
	UserID uuid.UUID          `json:"user_id"`
	Status *models.UserStatus `json:"status"`
}

type PresencePayload struct {
	UserID uuid.UUID `json:"user_id"`
	Online bool      `json:"online"`
}
