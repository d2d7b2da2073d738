package render

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Bootj05/Solder-goggles/internal/events"
	"github.com/Bootj05/Solder-goggles/internal/hexcolor"
	"github.com/Bootj05/Solder-goggles/internal/metrics"
	"github.com/Bootj05/Solder-goggles/internal/preset"
)

// Manager bridges the event bus and the strip driver: it repaints on
// every applied preset and rotates the frame between applies at the
// snapshot's animation interval. It never reads the controller state;
// the applied event carries everything it needs. All driver writes
// happen on the run goroutine, so Driver implementations may reuse
// buffers across calls.
type Manager struct {
	driver  Driver
	bus     *events.Bus
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu         sync.Mutex
	pixels     []hexcolor.Color
	brightness uint8
	interval   time.Duration
	phase      int
	haveFrame  bool

	unsubscribe func()
	kick        chan struct{}
	stop        chan struct{}
	done        chan struct{}
}

// NewManager creates a render manager over the given driver and bus.
func NewManager(driver Driver, bus *events.Bus, logger *slog.Logger, m *metrics.Metrics) *Manager {
	return &Manager{
		driver:   driver,
		bus:      bus,
		logger:   logger,
		metrics:  m,
		interval: time.Duration(preset.DefaultIntervalMs) * time.Millisecond,
		kick:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start subscribes to applied presets and begins the animation loop.
func (m *Manager) Start() {
	m.unsubscribe = m.bus.Subscribe(func(e events.PresetAppliedEvent) {
		m.handleApply(e)
	})
	go m.run()
	m.logger.Info("Render manager started")
}

// Stop unsubscribes and halts the animation loop.
func (m *Manager) Stop() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	close(m.stop)
	<-m.done
	m.logger.Info("Render manager stopped")
}

// handleApply stores the snapshot's frame, restarts the animation
// phase, and wakes the run loop for the repaint. It never touches the
// driver itself: the event bus delivers applies on its own goroutine,
// and the driver must not be entered concurrently with the ticker.
func (m *Manager) handleApply(e events.PresetAppliedEvent) {
	frame := effectiveFrame(e.Color, e.Pixels)

	m.mu.Lock()
	m.pixels = frame
	m.brightness = e.Brightness
	if e.IntervalMs > 0 {
		m.interval = time.Duration(e.IntervalMs) * time.Millisecond
	}
	m.phase = 0
	m.haveFrame = true
	m.mu.Unlock()

	select {
	case m.kick <- struct{}{}:
	default:
		// A wakeup is already pending; it will paint this frame.
	}
}

// run owns every driver write: immediate repaints on apply and the
// rotation between applies.
func (m *Manager) run() {
	defer close(m.done)

	timer := time.NewTimer(m.currentInterval())
	defer timer.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-m.kick:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			m.repaint()
			timer.Reset(m.currentInterval())
		case <-timer.C:
			m.advance()
			timer.Reset(m.currentInterval())
		}
	}
}

func (m *Manager) currentInterval() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.interval
}

// repaint paints the stored frame from phase zero, after an apply.
func (m *Manager) repaint() {
	m.mu.Lock()
	if !m.haveFrame {
		m.mu.Unlock()
		return
	}
	frame := make([]hexcolor.Color, len(m.pixels))
	copy(frame, m.pixels)
	brightness := m.brightness
	m.mu.Unlock()

	m.render(frame, brightness)
}

// advance rotates the frame by one pixel and repaints.
func (m *Manager) advance() {
	m.mu.Lock()
	if !m.haveFrame || len(m.pixels) == 0 {
		m.mu.Unlock()
		return
	}
	m.phase = (m.phase + 1) % len(m.pixels)
	frame := make([]hexcolor.Color, len(m.pixels))
	for i := range frame {
		frame[i] = m.pixels[(i+m.phase)%len(m.pixels)]
	}
	brightness := m.brightness
	m.mu.Unlock()

	m.render(frame, brightness)
}

func (m *Manager) render(frame []hexcolor.Color, brightness uint8) {
	err := m.driver.Render(frame, brightness)
	m.metrics.RenderDone(err)
	if err != nil {
		m.logger.Warn("Failed to render frame", "error", err)
	}
}

// effectiveFrame resolves the frame to paint: pixel slots left black
// show the preset's base color, so a plain color: command is visible
// even when no per-pixel colors were ever set.
func effectiveFrame(base hexcolor.Color, pixels []hexcolor.Color) []hexcolor.Color {
	frame := make([]hexcolor.Color, len(pixels))
	for i, c := range pixels {
		if c == 0 {
			frame[i] = base
		} else {
			frame[i] = c
		}
	}
	return frame
}
