package render

import (
	"log/slog"

	"github.com/Bootj05/Solder-goggles/internal/hexcolor"
)

// noop implements Driver for systems without a strip attached.
type noop struct {
	logger *slog.Logger
}

func newNoop(logger *slog.Logger) *noop {
	return &noop{logger: logger}
}

// Render logs the frame but drives no hardware.
func (n *noop) Render(pixels []hexcolor.Color, brightness uint8) error {
	n.logger.Debug("Strip render (no-op)",
		"pixels", len(pixels),
		"brightness", brightness)
	return nil
}

// Close is a no-op.
func (n *noop) Close() error {
	return nil
}
