package render

import (
	"log/slog"
	"os"
)

// New creates a strip driver for the given SPI device node.
// Falls back to the no-op driver when the device is absent or cannot be
// configured, so the daemon still runs on development machines.
func New(device string, logger *slog.Logger) Driver {
	if device == "" {
		logger.Info("No strip device configured, using no-op driver")
		return newNoop(logger)
	}

	if _, err := os.Stat(device); err != nil {
		logger.Info("Strip device not present, using no-op driver", "device", device)
		return newNoop(logger)
	}

	drv, err := newSpidev(device)
	if err != nil {
		logger.Warn("Failed to open strip device, using no-op driver", "device", device, "error", err)
		return newNoop(logger)
	}

	logger.Info("Strip driver ready", "device", device)
	return drv
}
