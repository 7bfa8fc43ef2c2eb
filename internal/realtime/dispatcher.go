package realtime

import (
	"context"
	"fmt"

	"github.com/dmarkova/slacklite/internal/errs"
	"go.uber.org/zap"
)

// Publisher is the fan-out contract handlers depend on. A failed publish
// never undoes the persistence write that preceded it: fan-out is a
// notification side-channel, and clients re-fetch authoritative state on
// reconnect.
type Publisher interface {
	Publish(ctx context.Context, topic string, event Event) error
}

// Dispatcher delivers events to local hub subscribers and, when a bridge
// is configured, to other instances through Redis.
type Dispatcher struct {
	hub    *Hub
	bridge *Bridge
	logger *zap.Logger
}

func NewDispatcher(hub *Hub, bridge *Bridge, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{hub: hub, bridge: bridge, logger: logger}
}

func (d *Dispatcher) Publish(ctx context.Context, topic string, event Event) error {
	data, err := event.Encode()
	if err != nil {
		return fmt.Errorf("%w: encode event: %v", errs.ErrTransport, err)
	}

	d.hub.Broadcast(topic, data)

	if d.bridge != nil {
		if err := d.bridge.Publish(ctx, topic, data); err != nil {
			d.logger.Warn("bridge publish failed",
				zap.String("topic", topic),
				zap.String("event", string(event.Type)),
				zap.Error(err),
			)
			return fmt.Errorf("%w: %v", errs.ErrTransport, err)
		}
	}

	return nil
}
