package realtime

import (
	"testing"

	"github.com/google/uuid"
)

func TestCanSubscribe(t *testing.T) {
	userA, userB, stranger := uuid.New(), uuid.New(), uuid.New()
	channelID, threadID := uuid.New(), uuid.New()

	tests := []struct {
		name   string
		userID uuid.UUID
		topic  string
		want   bool
	}{
		{"StatusOpen", stranger, StatusTopic, true},
		{"ChannelOpen", stranger, ChannelTopic(channelID), true},
		{"ThreadChannelOpen", stranger, ThreadChannelTopic(channelID, threadID), true},
		{"DirectParticipantA", userA, DirectTopic(userA, userB), true},
		{"DirectParticipantB", userB, DirectTopic(userA, userB), true},
		{"DirectStranger", stranger, DirectTopic(userA, userB), false},
		{"ThreadDirectParticipant", userA, ThreadDirectTopic(userA, userB, threadID), true},
		{"ThreadDirectStranger", stranger, ThreadDirectTopic(userA, userB, threadID), false},
		{"Malformed", userA, "dm-bogus", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanSubscribe(tt.userID, tt.topic); got != tt.want {
				t.Errorf("CanSubscribe(%s, %q) = %v, want %v", tt.userID, tt.topic, got, tt.want)
			}
		})
	}
}
