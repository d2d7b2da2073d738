package events

import "github.com/Bootj05/Solder-goggles/internal/hexcolor"

// Event type constants for kelindar/event.
const (
	TypePresetApplied uint32 = iota + 1
	TypeCommandRejected
	TypeLogEntry
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// PresetAppliedEvent carries the post-mutation snapshot of the active
// preset. Published once per applied command; renderers repaint from it
// instead of reading the controller state.
type PresetAppliedEvent struct {
	PresetIndex int              `json:"preset_index" example:"0" doc:"Active preset index"`
	Color       hexcolor.Color   `json:"color" doc:"Base color of the active preset"`
	Pixels      []hexcolor.Color `json:"pixels" doc:"Per-pixel colors of the active preset"`
	Brightness  uint8            `json:"brightness" example:"255" doc:"Global brightness (0-255)"`
	IntervalMs  int              `json:"interval_ms" example:"50" doc:"Animation frame interval in milliseconds"`
	Timestamp   string           `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for PresetAppliedEvent.
func (e PresetAppliedEvent) Type() uint32 { return TypePresetApplied }

// CommandRejectedEvent reports a control command dropped during
// validation. Rejections never mutate state; this event exists for
// debugging UIs only.
type CommandRejectedEvent struct {
	Command   string `json:"command" example:"bright" doc:"Command keyword, or \"unknown\""`
	Reason    string `json:"reason" example:"out_of_range" doc:"Rejection reason"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for CommandRejectedEvent.
func (e CommandRejectedEvent) Type() uint32 { return TypeCommandRejected }

// LogEntryEvent carries a structured log entry to SSE clients.
type LogEntryEvent struct {
	Timestamp  string         `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Log timestamp"`
	Level      string         `json:"level" example:"info" doc:"Log level"`
	Module     string         `json:"module" example:"command" doc:"Module that emitted the entry"`
	Message    string         `json:"message" doc:"Log message"`
	Attributes map[string]any `json:"attributes,omitempty" doc:"Structured attributes"`
}

// Type returns the event type identifier for LogEntryEvent.
func (e LogEntryEvent) Type() uint32 { return TypeLogEntry }
