package nats

import (
	"encoding/json"

	"github.com/Bootj05/Solder-goggles/internal/hexcolor"
)

// Subjects for NATS topics.
const (
	// SubjectCommand carries raw command strings (next, set:1, ...).
	SubjectCommand = "soldergoggles.control.command"
	// SubjectApplied carries the controller state after each applied command.
	SubjectApplied = "soldergoggles.state.applied"
	// SubjectRejected carries commands the controller dropped.
	SubjectRejected = "soldergoggles.state.rejected"
)

// AppliedMessage mirrors the controller state after a command took effect.
type AppliedMessage struct {
	PresetIndex int              `json:"preset_index"`
	Color       hexcolor.Color   `json:"color"`
	Pixels      []hexcolor.Color `json:"pixels"`
	Brightness  uint8            `json:"brightness"`
	IntervalMs  int              `json:"interval_ms"`
	Timestamp   string           `json:"timestamp"`
}

// Marshal serializes the message to JSON.
func (m AppliedMessage) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// RejectedMessage describes a command the controller dropped.
type RejectedMessage struct {
	Command   string `json:"command"`
	Reason    string `json:"reason"`
	Timestamp string `json:"timestamp"`
}

// Marshal serializes the message to JSON.
func (m RejectedMessage) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// UnmarshalApplied deserializes an AppliedMessage from JSON.
func UnmarshalApplied(data []byte) (AppliedMessage, error) {
	var m AppliedMessage
	err := json.Unmarshal(data, &m)
	return m, err
}

// UnmarshalRejected deserializes a RejectedMessage from JSON.
func UnmarshalRejected(data []byte) (RejectedMessage, error) {
	var m RejectedMessage
	err := json.Unmarshal(data, &m)
	return m, err
}
