// Package events provides the in-process event bus connecting the
// command dispatcher to its collaborators (strip renderer, SSE clients).
package events

import (
	"github.com/kelindar/event"
)

// Bus wraps a kelindar/event dispatcher for event broadcasting.
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus.
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers.
// Usage: bus.Publish(PresetAppliedEvent{...})
func (b *Bus) Publish(ev Event) {
	// kelindar/event dispatches on the concrete type, so fan out through
	// a type switch rather than the interface.
	switch e := ev.(type) {
	case PresetAppliedEvent:
		event.Publish(b.dispatcher, e)
	case CommandRejectedEvent:
		event.Publish(b.dispatcher, e)
	case LogEntryEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe subscribes to events with a handler function; the handler's
// parameter type determines which events it receives. Returns an
// unsubscribe function.
// Usage: unsub := bus.Subscribe(func(e PresetAppliedEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(PresetAppliedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(CommandRejectedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(LogEntryEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		// Unrecognized handler type: no-op unsubscribe.
		return func() {}
	}
}

// SubscribeToChannel bridges kelindar/event callback subscriptions to
// channels, for SSE handlers that select on a channel.
func SubscribeToChannel[T Event](bus *Bus, ch chan<- any) func() {
	return event.Subscribe(bus.dispatcher, func(e T) {
		select {
		case ch <- e:
		default:
			// Drop the event rather than block the publisher.
		}
	})
}
