package nats

import (
	"log/slog"

	"github.com/Bootj05/Solder-goggles/internal/events"
)

// Bridge forwards event bus events to NATS state subjects, so remote
// subscribers see the same applied/rejected stream as local SSE clients.
type Bridge struct {
	client   *Client
	eventBus *events.Bus
	logger   *slog.Logger
	unsubs   []func()
}

// NewBridge creates a new EventBus-to-NATS bridge.
func NewBridge(client *Client, eventBus *events.Bus, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}

	return &Bridge{
		client:   client,
		eventBus: eventBus,
		logger:   logger.With("component", "nats-bridge"),
	}
}

// Start subscribes to the event bus. Publishing is a no-op while the
// client is offline, so the bridge can start before NATS is reachable.
func (b *Bridge) Start() {
	b.unsubs = append(b.unsubs, b.eventBus.Subscribe(func(e events.PresetAppliedEvent) {
		b.client.PublishApplied(AppliedMessage{
			PresetIndex: e.PresetIndex,
			Color:       e.Color,
			Pixels:      e.Pixels,
			Brightness:  e.Brightness,
			IntervalMs:  e.IntervalMs,
			Timestamp:   e.Timestamp,
		})
		b.logger.Debug("Published applied state", "preset", e.PresetIndex)
	}))

	b.unsubs = append(b.unsubs, b.eventBus.Subscribe(func(e events.CommandRejectedEvent) {
		b.client.PublishRejected(RejectedMessage{
			Command:   e.Command,
			Reason:    e.Reason,
			Timestamp: e.Timestamp,
		})
		b.logger.Debug("Published rejection", "command", e.Command, "reason", e.Reason)
	}))

	b.logger.Info("NATS bridge subscribed to event bus")
}

// Stop unsubscribes from the event bus.
func (b *Bridge) Stop() {
	for _, unsub := range b.unsubs {
		unsub()
	}
	b.unsubs = nil
	b.logger.Info("NATS bridge stopped")
}
