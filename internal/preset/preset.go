// Package preset holds the in-memory LED preset model: a fixed set of
// presets, the active preset index, the global brightness, and the
// animation interval. The state is exclusively owned by the command
// dispatcher; every other component works on snapshots.
package preset

import "github.com/Bootj05/Solder-goggles/internal/hexcolor"

// Startup defaults, matching the device firmware.
const (
	DefaultBrightness = 255
	DefaultIntervalMs = 50
)

// Preset is one saved LED configuration: a base color plus one color per
// pixel on the strip.
type Preset struct {
	Color  hexcolor.Color
	Pixels []hexcolor.Color
}

// State is the controller state. It is not safe for concurrent use; the
// dispatcher serializes all access.
type State struct {
	presets    []Preset
	current    int
	brightness uint8
	intervalMs int
}

// NewState creates a controller state with presetCount presets of
// ledCount pixels each, all black. Counts below one are clamped to one
// so the current-index invariant holds from construction on.
func NewState(presetCount, ledCount int) *State {
	if presetCount < 1 {
		presetCount = 1
	}
	if ledCount < 1 {
		ledCount = 1
	}
	presets := make([]Preset, presetCount)
	for i := range presets {
		presets[i] = Preset{Pixels: make([]hexcolor.Color, ledCount)}
	}
	return &State{
		presets:    presets,
		brightness: DefaultBrightness,
		intervalMs: DefaultIntervalMs,
	}
}

// PresetCount returns the fixed number of presets.
func (s *State) PresetCount() int { return len(s.presets) }

// LEDCount returns the fixed number of pixels per preset.
func (s *State) LEDCount() int { return len(s.presets[0].Pixels) }

// Current returns the active preset index.
func (s *State) Current() int { return s.current }

// Brightness returns the global brightness.
func (s *State) Brightness() uint8 { return s.brightness }

// IntervalMs returns the animation frame interval in milliseconds.
func (s *State) IntervalMs() int { return s.intervalMs }

// Next cyclically advances the active preset.
func (s *State) Next() {
	s.current = (s.current + 1) % len(s.presets)
}

// Prev cyclically rewinds the active preset.
func (s *State) Prev() {
	s.current = (s.current - 1 + len(s.presets)) % len(s.presets)
}

// SetCurrent activates the preset at idx. Returns false when idx is out
// of range, leaving the state untouched.
func (s *State) SetCurrent(idx int) bool {
	if idx < 0 || idx >= len(s.presets) {
		return false
	}
	s.current = idx
	return true
}

// SetBrightness sets the global brightness. Values outside [0,255] are
// rejected.
func (s *State) SetBrightness(v int) bool {
	if v < 0 || v > 255 {
		return false
	}
	s.brightness = uint8(v)
	return true
}

// SetIntervalMs sets the animation frame interval. Non-positive values
// are rejected.
func (s *State) SetIntervalMs(ms int) bool {
	if ms <= 0 {
		return false
	}
	s.intervalMs = ms
	return true
}

// SetColor sets the base color of the active preset.
func (s *State) SetColor(c hexcolor.Color) {
	s.presets[s.current].Color = c
}

// SetPixels replaces the active preset's pixel sequence wholesale. The
// input is copied; trailing slots beyond len(colors) are left black.
// More colors than pixels are rejected without touching the preset.
func (s *State) SetPixels(colors []hexcolor.Color) bool {
	p := &s.presets[s.current]
	if len(colors) > len(p.Pixels) {
		return false
	}
	fresh := make([]hexcolor.Color, len(p.Pixels))
	copy(fresh, colors)
	p.Pixels = fresh
	return true
}

// CurrentPreset returns an independent copy of the active preset.
func (s *State) CurrentPreset() Preset {
	p := s.presets[s.current]
	pixels := make([]hexcolor.Color, len(p.Pixels))
	copy(pixels, p.Pixels)
	return Preset{Color: p.Color, Pixels: pixels}
}

// Snapshot captures everything a collaborator needs to repaint the strip.
type Snapshot struct {
	PresetIndex int              `json:"preset_index" doc:"Active preset index"`
	Color       hexcolor.Color   `json:"color" doc:"Base color of the active preset"`
	Pixels      []hexcolor.Color `json:"pixels" doc:"Per-pixel colors of the active preset"`
	Brightness  uint8            `json:"brightness" doc:"Global brightness (0-255)"`
	IntervalMs  int              `json:"interval_ms" doc:"Animation frame interval in milliseconds"`
}

// Snapshot returns an independent copy of the rendering-relevant state.
func (s *State) Snapshot() Snapshot {
	p := s.CurrentPreset()
	return Snapshot{
		PresetIndex: s.current,
		Color:       p.Color,
		Pixels:      p.Pixels,
		Brightness:  s.brightness,
		IntervalMs:  s.intervalMs,
	}
}
