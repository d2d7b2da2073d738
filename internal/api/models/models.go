package models

import (
	"github.com/Bootj05/Solder-goggles/internal/hexcolor"
)

// Health check models
type HealthData struct {
	Status  string `json:"status" example:"ok" doc:"Service status"`
	Message string `json:"message" example:"API is healthy" doc:"Status message"`
}

type HealthResponse struct {
	Body HealthData
}

// Version models
type VersionData struct {
	Version   string `json:"version" example:"1.2.0" doc:"Application version"`
	GitCommit string `json:"git_commit" example:"a1b2c3d" doc:"Git commit hash"`
	BuildDate string `json:"build_date" example:"2024-01-01T00:00:00Z" doc:"Build timestamp"`
	GoVersion string `json:"go_version" example:"go1.24.0" doc:"Go toolchain version"`
	Platform  string `json:"platform" example:"linux/arm64" doc:"Build platform"`
}

type VersionResponse struct {
	Body VersionData
}

// Command models

// CommandRequest carries a raw command string (next, set:1, color:#ff8800, ...).
type CommandRequest struct {
	RawBody []byte `contentType:"text/plain" doc:"Command string"`
}

type CommandData struct {
	Queued bool `json:"queued" example:"true" doc:"Whether the command was queued for the dispatcher"`
}

// CommandResponse acknowledges that a command was queued. Invalid
// commands are still acknowledged; the dispatcher drops them silently.
type CommandResponse struct {
	Status int
	Body   CommandData
}

// State models
type StateData struct {
	PresetIndex int              `json:"preset_index" example:"0" doc:"Active preset index"`
	Color       hexcolor.Color   `json:"color" doc:"Base color of the active preset"`
	Pixels      []hexcolor.Color `json:"pixels" doc:"Per-pixel colors of the active preset"`
	Brightness  uint8            `json:"brightness" example:"255" doc:"Global brightness"`
	IntervalMs  int              `json:"interval_ms" example:"50" doc:"Animation interval in milliseconds"`
	NATS        bool             `json:"nats_connected" example:"true" doc:"Whether the NATS link is up"`
}

type StateResponse struct {
	Body StateData
}
