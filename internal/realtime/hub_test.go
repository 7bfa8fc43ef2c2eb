package realtime

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// testClient builds a client without a live connection; hub delivery goes
// through the Send channel, which is all these tests observe.
func testClient(hub *Hub, userID uuid.UUID) *Client {
	return NewClient(hub, nil, userID, zap.NewNop())
}

func drain(t *testing.T, c *Client) [][]byte {
	t.Helper()
	var out [][]byte
	for {
		select {
		case msg := <-c.Send:
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestHubBroadcastToSubscribers(t *testing.T) {
	hub := NewHub(zap.NewNop())
	channelID := uuid.New()
	topic := ChannelTopic(channelID)

	sub := testClient(hub, uuid.New())
	other := testClient(hub, uuid.New())
	hub.registerClient(sub)
	hub.registerClient(other)
	drain(t, sub)
	drain(t, other)

	if err := hub.Subscribe(sub, topic); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	hub.Broadcast(topic, []byte(`{"type":"message"}`))

	if got := drain(t, sub); len(got) != 1 {
		t.Errorf("subscriber received %d events, want 1", len(got))
	}
	if got := drain(t, other); len(got) != 0 {
		t.Errorf("non-subscriber received %d events, want 0", len(got))
	}
}

func TestHubSubscribeDenied(t *testing.T) {
	hub := NewHub(zap.NewNop())
	userA, userB := uuid.New(), uuid.New()

	stranger := testClient(hub, uuid.New())
	hub.registerClient(stranger)

	err := hub.Subscribe(stranger, DirectTopic(userA, userB))
	if err != ErrSubscribeDenied {
		t.Fatalf("Subscribe = %v, want ErrSubscribeDenied", err)
	}

	hub.Broadcast(DirectTopic(userA, userB), []byte("x"))
	drainedAfterPresence := drain(t, stranger)
	for _, msg := range drainedAfterPresence {
		var ev Event
		if json.Unmarshal(msg, &ev) == nil && ev.Type != EventPresenceUpdate {
			t.Errorf("denied subscriber received event %s", ev.Type)
		}
	}
}

func TestHubStatusTopicReachesAllClients(t *testing.T) {
	hub := NewHub(zap.NewNop())

	a := testClient(hub, uuid.New())
	b := testClient(hub, uuid.New())
	hub.registerClient(a)
	hub.registerClient(b)
	drain(t, a)
	drain(t, b)

	hub.Broadcast(StatusTopic, []byte(`{"type":"status_update"}`))

	if got := drain(t, a); len(got) != 1 {
		t.Errorf("client a received %d events, want 1", len(got))
	}
	if got := drain(t, b); len(got) != 1 {
		t.Errorf("client b received %d events, want 1", len(got))
	}
}

func TestHubPresenceTransitions(t *testing.T) {
	hub := NewHub(zap.NewNop())
	userID := uuid.New()

	watcher := testClient(hub, uuid.New())
	hub.registerClient(watcher)
	drain(t, watcher)

	first := testClient(hub, userID)
	second := testClient(hub, userID)
	hub.registerClient(first)

	events := presenceEvents(t, drain(t, watcher))
	if len(events) != 1 || !events[0].Online || events[0].UserID != userID {
		t.Fatalf("first socket: presence events = %+v, want single online for %s", events, userID)
	}

	// A second socket for the same user is not a presence transition.
	hub.registerClient(second)
	if events := presenceEvents(t, drain(t, watcher)); len(events) != 0 {
		t.Fatalf("second socket: presence events = %+v, want none", events)
	}

	hub.unregisterClient(first)
	if events := presenceEvents(t, drain(t, watcher)); len(events) != 0 {
		t.Fatalf("first disconnect: presence events = %+v, want none", events)
	}

	if !hub.IsOnline(userID) {
		t.Fatal("user should still be online with one socket left")
	}

	hub.unregisterClient(second)
	events = presenceEvents(t, drain(t, watcher))
	if len(events) != 1 || events[0].Online {
		t.Fatalf("last disconnect: presence events = %+v, want single offline", events)
	}
	if hub.IsOnline(userID) {
		t.Fatal("user should be offline after last socket closed")
	}
}

func TestHubUnsubscribeOnDisconnect(t *testing.T) {
	hub := NewHub(zap.NewNop())
	topic := ChannelTopic(uuid.New())

	client := testClient(hub, uuid.New())
	hub.registerClient(client)
	if err := hub.Subscribe(client, topic); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	hub.unregisterClient(client)

	hub.mu.RLock()
	_, ok := hub.topics[topic]
	hub.mu.RUnlock()
	if ok {
		t.Error("topic still has subscribers after the only client disconnected")
	}
}

func presenceEvents(t *testing.T, raw [][]byte) []PresencePayload {
	t.Helper()
	var out []PresencePayload
	for _, msg := range raw {
		var ev Event
		if err := json.Unmarshal(msg, &ev); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if ev.Type != EventPresenceUpdate {
			continue
		}
		var p PresencePayload
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			t.Fatalf("unmarshal presence payload: %v", err)
		}
		out = append(out, p)
	}
	return out
}
