package preset

import (
	"testing"

	"github.com/Bootj05/Solder-goggles/internal/hexcolor"
)

func TestNewState_Defaults(t *testing.T) {
	s := NewState(3, 13)

	if s.PresetCount() != 3 {
		t.Errorf("PresetCount() = %d, want 3", s.PresetCount())
	}
	if s.LEDCount() != 13 {
		t.Errorf("LEDCount() = %d, want 13", s.LEDCount())
	}
	if s.Current() != 0 {
		t.Errorf("Current() = %d, want 0", s.Current())
	}
	if s.Brightness() != DefaultBrightness {
		t.Errorf("Brightness() = %d, want %d", s.Brightness(), DefaultBrightness)
	}
	if s.IntervalMs() != DefaultIntervalMs {
		t.Errorf("IntervalMs() = %d, want %d", s.IntervalMs(), DefaultIntervalMs)
	}

	p := s.CurrentPreset()
	for i, c := range p.Pixels {
		if c != 0 {
			t.Errorf("pixel %d = %v, want black", i, c)
		}
	}
}

func TestNewState_ClampsCounts(t *testing.T) {
	s := NewState(0, -5)
	if s.PresetCount() != 1 {
		t.Errorf("PresetCount() = %d, want 1", s.PresetCount())
	}
	if s.LEDCount() != 1 {
		t.Errorf("LEDCount() = %d, want 1", s.LEDCount())
	}
}

func TestState_NextPrevCyclic(t *testing.T) {
	s := NewState(3, 13)

	s.Next()
	if s.Current() != 1 {
		t.Errorf("after Next: Current() = %d, want 1", s.Current())
	}
	s.Next()
	s.Next()
	if s.Current() != 0 {
		t.Errorf("after full cycle: Current() = %d, want 0", s.Current())
	}

	s.Prev()
	if s.Current() != 2 {
		t.Errorf("after Prev from 0: Current() = %d, want 2", s.Current())
	}
}

func TestState_SetCurrent(t *testing.T) {
	s := NewState(3, 13)

	if !s.SetCurrent(2) {
		t.Error("SetCurrent(2) = false, want true")
	}
	if s.Current() != 2 {
		t.Errorf("Current() = %d, want 2", s.Current())
	}

	for _, idx := range []int{-1, 3, 100} {
		if s.SetCurrent(idx) {
			t.Errorf("SetCurrent(%d) = true, want false", idx)
		}
		if s.Current() != 2 {
			t.Errorf("Current() changed to %d after rejected SetCurrent(%d)", s.Current(), idx)
		}
	}
}

func TestState_SetBrightness(t *testing.T) {
	s := NewState(3, 13)

	if !s.SetBrightness(0) || !s.SetBrightness(128) || !s.SetBrightness(255) {
		t.Error("SetBrightness rejected an in-range value")
	}
	if s.Brightness() != 255 {
		t.Errorf("Brightness() = %d, want 255", s.Brightness())
	}
	if s.SetBrightness(256) || s.SetBrightness(-1) {
		t.Error("SetBrightness accepted an out-of-range value")
	}
}

func TestState_SetIntervalMs(t *testing.T) {
	s := NewState(3, 13)

	if !s.SetIntervalMs(123) {
		t.Error("SetIntervalMs(123) = false, want true")
	}
	if s.SetIntervalMs(0) || s.SetIntervalMs(-10) {
		t.Error("SetIntervalMs accepted a non-positive value")
	}
	if s.IntervalMs() != 123 {
		t.Errorf("IntervalMs() = %d, want 123", s.IntervalMs())
	}
}

func TestState_SetPixels(t *testing.T) {
	s := NewState(3, 4)

	colors := []hexcolor.Color{0x010203, 0xA0B0C0}
	if !s.SetPixels(colors) {
		t.Fatal("SetPixels rejected a valid list")
	}

	p := s.CurrentPreset()
	if p.Pixels[0] != 0x010203 || p.Pixels[1] != 0xA0B0C0 {
		t.Errorf("pixels = %v, want leading colors set", p.Pixels)
	}
	if p.Pixels[2] != 0 || p.Pixels[3] != 0 {
		t.Errorf("trailing pixels = %v %v, want black padding", p.Pixels[2], p.Pixels[3])
	}

	// The caller's slice must not alias the state.
	colors[0] = 0xFFFFFF
	if s.CurrentPreset().Pixels[0] != 0x010203 {
		t.Error("SetPixels aliased the caller's slice")
	}

	if s.SetPixels(make([]hexcolor.Color, 5)) {
		t.Error("SetPixels accepted more colors than pixels")
	}
}

func TestState_SnapshotIndependence(t *testing.T) {
	s := NewState(2, 3)
	s.SetColor(0x112233)
	snap := s.Snapshot()

	s.SetColor(0x445566)
	s.SetPixels([]hexcolor.Color{0xFFFFFF})

	if snap.Color != 0x112233 {
		t.Errorf("snapshot color = %v, want original", snap.Color)
	}
	if snap.Pixels[0] != 0 {
		t.Error("snapshot pixels mutated by later state changes")
	}
	if snap.IntervalMs != DefaultIntervalMs || snap.Brightness != DefaultBrightness {
		t.Error("snapshot missing default brightness/interval")
	}
}
