package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dmarkova/slacklite/internal/errs"
	"github.com/dmarkova/slacklite/internal/handlers/dto"
	"github.com/dmarkova/slacklite/internal/models"
	"github.com/dmarkova/slacklite/internal/realtime"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type memStatusStore struct {
	statuses map[uuid.UUID]*models.UserStatus
}

func newMemStatusStore() *memStatusStore {
	return &memStatusStore{statuses: make(map[uuid.UUID]*models.UserStatus)}
}

func (s *memStatusStore) UpsertStatus(_ context.Context, userID uuid.UUID, emoji, text string) (*models.UserStatus, error) {
	status, ok := s.statuses[userID]
	if !ok {
		status = &models.UserStatus{ID: uuid.New(), UserID: userID}
		s.statuses[userID] = status
	}
	status.Emoji = emoji
	status.Text = text
	status.UpdatedAt = time.Now()
	return status, nil
}

func (s *memStatusStore) GetStatus(_ context.Context, userID uuid.UUID) (*models.UserStatus, error) {
	status, ok := s.statuses[userID]
	if !ok {
		return nil, fmt.Errorf("%w: status", errs.ErrNotFound)
	}
	return status, nil
}

func (s *memStatusStore) ClearStatus(_ context.Context, userID uuid.UUID) error {
	delete(s.statuses, userID)
	return nil
}

type stubPresence struct {
	online []uuid.UUID
}

func (p *stubPresence) OnlineUsers() []uuid.UUID { return p.online }

func statusRouter(store StatusStore, presence PresenceSource, pub realtime.Publisher, userID uuid.UUID) *gin.Engine {
	r := newTestRouter(userID)
	h := NewStatusHandler(store, presence, pub, zap.NewNop())
	r.POST("/user/status", h.SetStatus)
	r.GET("/user/status", h.GetOwnStatus)
	r.GET("/user/status/:id", h.GetUserStatus)
	r.DELETE("/user/status", h.ClearStatus)
	r.GET("/presence", h.Presence)
	return r
}

func TestStatusRoundTrip(t *testing.T) {
	userID := uuid.New()
	store := newMemStatusStore()
	pub := &fakePublisher{}
	r := statusRouter(store, &stubPresence{}, pub, userID)

	w := doJSON(t, r, http.MethodPost, "/user/status", dto.SetStatusRequest{Emoji: "🎮", Text: "gaming"})
	if w.Code != http.StatusOK {
		t.Fatalf("set status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/user/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	status := decodeBody(t, w)["status"].(map[string]any)
	if status["emoji"] != "🎮" || status["text"] != "gaming" {
		t.Errorf("status = %v, want emoji 🎮 and text gaming", status)
	}
}

func TestStatusRequiresEmojiOrText(t *testing.T) {
	r := statusRouter(newMemStatusStore(), &stubPresence{}, &fakePublisher{}, uuid.New())

	w := doJSON(t, r, http.MethodPost, "/user/status", dto.SetStatusRequest{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestStatusBroadcastsGlobally(t *testing.T) {
	userID := uuid.New()
	pub := &fakePublisher{}
	r := statusRouter(newMemStatusStore(), &stubPresence{}, pub, userID)

	doJSON(t, r, http.MethodPost, "/user/status", dto.SetStatusRequest{Emoji: "☕"})

	if len(pub.events) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.events))
	}
	got := pub.events[0]
	if got.Topic != realtime.StatusTopic {
		t.Errorf("topic = %q, want %q", got.Topic, realtime.StatusTopic)
	}
	if got.Event.Type != realtime.EventStatusUpdate {
		t.Errorf("event type = %q", got.Event.Type)
	}

	var payload realtime.StatusPayload
	if err := json.Unmarshal(got.Event.Data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.UserID != userID {
		t.Errorf("payload user = %s, want %s", payload.UserID, userID)
	}
	if payload.Status == nil || payload.Status.Emoji != "☕" {
		t.Errorf("payload status = %v, want emoji ☕", payload.Status)
	}
}

func TestClearStatus(t *testing.T) {
	userID := uuid.New()
	store := newMemStatusStore()
	pub := &fakePublisher{}
	r := statusRouter(store, &stubPresence{}, pub, userID)

	doJSON(t, r, http.MethodPost, "/user/status", dto.SetStatusRequest{Text: "brb"})

	w := doJSON(t, r, http.MethodDelete, "/user/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("clear status = %d", w.Code)
	}

	// A nil status on the wire tells clients the status went away.
	last := pub.events[len(pub.events)-1]
	var payload realtime.StatusPayload
	if err := json.Unmarshal(last.Event.Data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Status != nil {
		t.Errorf("cleared payload status = %v, want nil", payload.Status)
	}

	w = doJSON(t, r, http.MethodGet, "/user/status", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after clear = %d, want 404", w.Code)
	}
}

func TestGetOtherUserStatus(t *testing.T) {
	owner := uuid.New()
	viewer := uuid.New()
	store := newMemStatusStore()

	ownerRouter := statusRouter(store, &stubPresence{}, &fakePublisher{}, owner)
	doJSON(t, ownerRouter, http.MethodPost, "/user/status", dto.SetStatusRequest{Text: "afk"})

	viewerRouter := statusRouter(store, &stubPresence{}, &fakePublisher{}, viewer)
	w := doJSON(t, viewerRouter, http.MethodGet, "/user/status/"+owner.String(), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	status := decodeBody(t, w)["status"].(map[string]any)
	if status["text"] != "afk" {
		t.Errorf("text = %v, want afk", status["text"])
	}
}

func TestPresenceEndpoint(t *testing.T) {
	online := []uuid.UUID{uuid.New(), uuid.New()}
	r := statusRouter(newMemStatusStore(), &stubPresence{online: online}, &fakePublisher{}, uuid.New())

	w := doJSON(t, r, http.MethodGet, "/presence", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	got, ok := decodeBody(t, w)["online"].([]any)
	if !ok || len(got) != 2 {
		t.Fatalf("online = %v, want 2 ids", got)
	}
	for i, id := range online {
		if got[i] != id.String() {
			t.Errorf("online[%d] = %v, want %s", i, got[i], id)
		}
	}
}
