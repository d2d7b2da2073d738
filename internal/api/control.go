package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Bootj05/Solder-goggles/internal/api/models"
)

// registerControlRoutes registers the command and state endpoints.
func (s *Server) registerControlRoutes() {
	// Submit a command
	huma.Register(s.api, huma.Operation{
		OperationID:   "submit-command",
		Method:        http.MethodPost,
		Path:          "/api/command",
		Summary:       "Submit Command",
		Description:   "Queue a raw command string (next, prev, set:<n>, bright:<n>, color:#RRGGBB, speed:<ms>, leds:<colors>) for the dispatcher. Malformed commands are accepted and silently dropped.",
		Tags:          []string{"control"},
		DefaultStatus: http.StatusAccepted,
		Errors:        []int{401, 503},
		Security:      withAuth(),
	}, func(ctx context.Context, input *models.CommandRequest) (*models.CommandResponse, error) {
		if !s.options.CommandSink(input.RawBody) {
			return nil, huma.Error503ServiceUnavailable("Command queue is full")
		}

		return &models.CommandResponse{
			Status: http.StatusAccepted,
			Body:   models.CommandData{Queued: true},
		}, nil
	})

	// Get controller state
	huma.Register(s.api, huma.Operation{
		OperationID: "get-state",
		Method:      http.MethodGet,
		Path:        "/api/state",
		Summary:     "Controller State",
		Description: "Get the controller state as of the last applied command",
		Tags:        []string{"control"},
		Errors:      []int{401},
		Security:    withAuth(),
	}, func(ctx context.Context, input *struct{}) (*models.StateResponse, error) {
		snap := s.options.Snapshot()

		connected := false
		if s.options.NATSConnected != nil {
			connected = s.options.NATSConnected()
		}

		return &models.StateResponse{
			Body: models.StateData{
				PresetIndex: snap.PresetIndex,
				Color:       snap.Color,
				Pixels:      snap.Pixels,
				Brightness:  snap.Brightness,
				IntervalMs:  snap.IntervalMs,
				NATS:        connected,
			},
		}, nil
	})
}
