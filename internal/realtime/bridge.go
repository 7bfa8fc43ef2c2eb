package realtime

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const bridgeChannel = "slacklite:events"

// Bridge relays published events through Redis pub/sub so subscribers
// connected to a different instance still receive them. Frames carry an
// origin id; an instance skips its own frames since it already delivered
// them locally.
type Bridge struct {
	rdb    *redis.Client
	hub    *Hub
	origin string
	logger *zap.Logger
}

type bridgeFrame struct {
	Origin string          `json:"origin"`
	Topic  string          `json:"topic"`
	Data   json.RawMessage `json:"data"`
}

func NewBridge(rdb *redis.Client, hub *Hub, logger *zap.Logger) *Bridge {
	return &Bridge{
		rdb:    rdb,
		hub:    hub,
		origin: uuid.NewString(),
		logger: logger,
	}
}

func (b *Bridge) Publish(ctx context.Context, topic string, data []byte) error {
	frame, err := json.Marshal(bridgeFrame{
		Origin: b.origin,
		Topic:  topic,
		Data:   data,
	})
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, bridgeChannel, frame).Err()
}

// Run consumes bridge traffic until ctx is cancelled. Intended to run in
// its own goroutine next to the hub.
func (b *Bridge) Run(ctx context.Context) {
	pubsub := b.rdb.Subscribe(ctx, bridgeChannel)
	defer pubsub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-pubsub.Channel():
			if !ok {
				return
			}
			var frame bridgeFrame
			if err := json.Unmarshal([]byte(msg.Payload), &frame); err != nil {
				b.logger.Warn("malformed bridge frame", zap.Error(err))
				continue
			}
			if frame.Origin == b.origin {
				continue
			}
			b.hub.Broadcast(frame.Topic, frame.Data)
		}
	}
}
