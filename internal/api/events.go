package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"

	"github.com/Bootj05/Solder-goggles/internal/events"
)

// registerSSERoutes registers the native Huma SSE endpoint.
func (s *Server) registerSSERoutes() {
	sse.Register(s.api, huma.Operation{
		OperationID: "events-stream",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Server-Sent Events Stream",
		Description: "Real-time stream of applied presets and rejected commands",
		Tags:        []string{"events"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, map[string]any{
		"preset-applied":   events.PresetAppliedEvent{},
		"command-rejected": events.CommandRejectedEvent{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		// Create event channel for this connection
		eventCh := make(chan any, 10)

		unsubscribers := []func(){
			events.SubscribeToChannel[events.PresetAppliedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.CommandRejectedEvent](s.eventBus, eventCh),
		}
		defer func() {
			for _, unsub := range unsubscribers {
				unsub()
			}
		}()

		// Send the current state first so late subscribers don't have
		// to wait for the next command.
		snap := s.options.Snapshot()
		if err := send.Data(events.PresetAppliedEvent{
			PresetIndex: snap.PresetIndex,
			Color:       snap.Color,
			Pixels:      snap.Pixels,
			Brightness:  snap.Brightness,
			IntervalMs:  snap.IntervalMs,
			Timestamp:   time.Now().Format(time.RFC3339),
		}); err != nil {
			return
		}

		// Keep connection alive and forward events
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventCh:
				if err := send.Data(event); err != nil {
					// Connection failed, clean up and exit
					return
				}
			}
		}
	})
}
