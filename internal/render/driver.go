// Package render paints preset snapshots onto the LED strip. The
// Manager listens for applied presets on the event bus and drives the
// animation ticker; Driver implementations talk to the hardware.
package render

import "github.com/Bootj05/Solder-goggles/internal/hexcolor"

// Driver writes one frame of pixel colors to the physical strip.
// Implementations handle the board-specific wire protocol.
type Driver interface {
	// Render pushes the frame, scaled by the global brightness (0-255).
	Render(pixels []hexcolor.Color, brightness uint8) error

	// Close releases the underlying device.
	Close() error
}

// scale applies the global brightness to one color channel.
func scale(v, brightness uint8) uint8 {
	return uint8(uint16(v) * uint16(brightness) / 255)
}
