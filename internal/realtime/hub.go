package realtime

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrSubscribeDenied = errors.New("subscription denied for topic")

// Hub fans events out to connected websocket clients. Topic membership is
// tracked per socket; one user may hold several sockets at once. The
// status topic is special: its events go to every connected socket,
// subscribed or not, so all clients can maintain a presence map.
type Hub struct {
	clients map[uuid.UUID]*Client

	// userClients groups sockets by user so presence transitions fire on
	// the first connect and last disconnect only.
	userClients map[uuid.UUID]map[uuid.UUID]*Client

	topics map[string]map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc

	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[uuid.UUID]*Client),
		userClients: make(map[uuid.UUID]map[uuid.UUID]*Client),
		topics:      make(map[string]map[uuid.UUID]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		if client.Conn != nil {
			client.Conn.Close()
		}
	}
	h.clients = make(map[uuid.UUID]*Client)
	h.userClients = make(map[uuid.UUID]map[uuid.UUID]*Client)
	h.topics = make(map[string]map[uuid.UUID]*Client)
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	first := false
	if _, ok := h.userClients[client.UserID]; !ok {
		h.userClients[client.UserID] = make(map[uuid.UUID]*Client)
		first = true
	}
	h.userClients[client.UserID][client.ID] = client

	h.logger.Debug("client registered",
		zap.String("client_id", client.ID.String()),
		zap.String("user_id", client.UserID.String()),
	)

	if first {
		h.notifyPresenceLocked(client.UserID, true)
	}
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	for topic := range client.Topics {
		h.dropFromTopicLocked(client, topic)
	}

	if userClients, ok := h.userClients[client.UserID]; ok {
		delete(userClients, client.ID)
		if len(userClients) == 0 {
			delete(h.userClients, client.UserID)
			h.notifyPresenceLocked(client.UserID, false)
		}
	}

	delete(h.clients, client.ID)
	close(client.Send)

	h.logger.Debug("client unregistered",
		zap.String("client_id", client.ID.String()),
		zap.String("user_id", client.UserID.String()),
	)
}

// Subscribe adds the client to a topic after the per-socket authorization
// check.
func (h *Hub) Subscribe(client *Client, topic string) error {
	if !CanSubscribe(client.UserID, topic) {
		return ErrSubscribeDenied
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.topics[topic]; !ok {
		h.topics[topic] = make(map[uuid.UUID]*Client)
	}
	h.topics[topic][client.ID] = client

	client.mu.Lock()
	client.Topics[topic] = true
	client.mu.Unlock()

	return nil
}

func (h *Hub) Unsubscribe(client *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.dropFromTopicLocked(client, topic)
}

func (h *Hub) dropFromTopicLocked(client *Client, topic string) {
	if subs, ok := h.topics[topic]; ok {
		delete(subs, client.ID)
		if len(subs) == 0 {
			delete(h.topics, topic)
		}
	}
	client.mu.Lock()
	delete(client.Topics, topic)
	client.mu.Unlock()
}

// Broadcast delivers an encoded event to the local subscribers of a topic.
// Status-topic traffic goes to every connected socket.
func (h *Hub) Broadcast(topic string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if topic == StatusTopic {
		for _, client := range h.clients {
			h.send(client, data)
		}
		return
	}

	for _, client := range h.topics[topic] {
		h.send(client, data)
	}
}

func (h *Hub) send(client *Client, data []byte) {
	select {
	case client.Send <- data:
	default:
		h.logger.Warn("client send queue full, dropping event",
			zap.String("client_id", client.ID.String()))
	}
}

func (h *Hub) notifyPresenceLocked(userID uuid.UUID, online bool) {
	event, err := NewEvent(EventPresenceUpdate, StatusTopic, PresencePayload{
		UserID: userID,
		Online: online,
	})
	if err != nil {
		return
	}
	data, err := event.Encode()
	if err != nil {
		return
	}
	for _, client := range h.clients {
		h.send(client, data)
	}
}

// OnlineUsers lists users with at least one connected socket.
func (h *Hub) OnlineUsers() []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]uuid.UUID, 0, len(h.userClients))
	for userID := range h.userClients {
		users = append(users, userID)
	}
	return users
}

func (h *Hub) IsOnline(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, ok := h.userClients[userID]
	return ok
}
