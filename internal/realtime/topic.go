package realtime

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Topic names are deterministic so every client derives the same name
// without asking the server:
//
//	channel-{channelID}
//	dm-{min(a,b)}-{max(a,b)}
//	thread-channel-{channelID}-{threadID}
//	thread-dm-{min(a,b)}-{max(a,b)}-{threadID}
//	status
//
// UUID segments are fixed-width (36 chars), which is what makes the names
// parseable despite the hyphens inside UUIDs.

const (
	KindChannel       = "channel"
	KindDirect        = "dm"
	KindThreadChannel = "thread-channel"
	KindThreadDirect  = "thread-dm"
	KindStatus        = "status"
)

// StatusTopic is the single global topic for status and presence changes.
const StatusTopic = "status"

var ErrInvalidTopic = errors.New("invalid topic name")

type Topic struct {
	Kind      string
	ChannelID uuid.UUID
	UserA     uuid.UUID
	UserB     uuid.UUID
	ThreadID  uuid.UUID
}

func ChannelTopic(channelID uuid.UUID) string {
	return "channel-" + channelID.String()
}

// DirectTopic is commutative: both participants compute the same name.
func DirectTopic(a, b uuid.UUID) string {
	lo, hi := a.String(), b.String()
	if hi < lo {
		lo, hi = hi, lo
	}
	return "dm-" + lo + "-" + hi
}

func ThreadChannelTopic(channelID, threadID uuid.UUID) string {
	return "thread-channel-" + channelID.String() + "-" + threadID.String()
}

func ThreadDirectTopic(a, b, threadID uuid.UUID) string {
	lo, hi := a.String(), b.String()
	if hi < lo {
		lo, hi = hi, lo
	}
	return "thread-dm-" + lo + "-" + hi + "-" + threadID.String()
}

// ParseTopic decomposes a topic name into its kind and identifiers.
func ParseTopic(s string) (Topic, error) {
	switch {
	case s == StatusTopic:
		return Topic{Kind: KindStatus}, nil

	case strings.HasPrefix(s, "thread-channel-"):
		ids, ok := splitIDs(strings.TrimPrefix(s, "thread-channel-"), 2)
		if !ok {
			return Topic{}, ErrInvalidTopic
		}
		return Topic{Kind: KindThreadChannel, ChannelID: ids[0], ThreadID: ids[1]}, nil

	case strings.HasPrefix(s, "thread-dm-"):
		ids, ok := splitIDs(strings.TrimPrefix(s, "thread-dm-"), 3)
		if !ok {
			return Topic{}, ErrInvalidTopic
		}
		return Topic{Kind: KindThreadDirect, UserA: ids[0], UserB: ids[1], ThreadID: ids[2]}, nil

	case strings.HasPrefix(s, "channel-"):
		ids, ok := splitIDs(strings.TrimPrefix(s, "channel-"), 1)
		if !ok {
			return Topic{}, ErrInvalidTopic
		}
		return Topic{Kind: KindChannel, ChannelID: ids[0]}, nil

	case strings.HasPrefix(s, "dm-"):
		ids, ok := splitIDs(strings.TrimPrefix(s, "dm-"), 2)
		if !ok {
			return Topic{}, ErrInvalidTopic
		}
		return Topic{Kind: KindDirect, UserA: ids[0], UserB: ids[1]}, nil
	}

	return Topic{}, ErrInvalidTopic
}

const uuidLen = 36

// splitIDs parses n hyphen-joined fixed-width UUIDs.
func splitIDs(s string, n int) ([]uuid.UUID, bool) {
	if len(s) != n*uuidLen+(n-1) {
		return nil, false
	}
	ids := make([]uuid.UUID, n)
	for i := 0; i < n; i++ {
		start := i * (uuidLen + 1)
		if i > 0 && s[start-1] != '-' {
			return nil, false
		}
		id, err := uuid.Parse(s[start : start+uuidLen])
		if err != nil {
			return nil, false
		}
		ids[i] = id
	}
	return ids, true
}
