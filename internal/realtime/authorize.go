package realtime

import "github.com/google/uuid"

// CanSubscribe is the per-socket authorization check performed at
// subscribe time. Direct-message topics admit only the two encoded
// participants; channel, thread-channel and status topics are open to any
// authenticated socket.
func CanSubscribe(userID uuid.UUID, topic string) bool {
	t, err := ParseTopic(topic)
	if err != nil {
		return false
	}

	switch t.Kind {
	case KindStatus, KindChannel, KindThreadChannel:
		return true
	case KindDirect, KindThreadDirect:
		return userID == t.UserA || userID == t.UserB
	}
	return false
}
