// Package metrics exposes Prometheus instrumentation for the controller.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the controller's Prometheus collectors. All methods are
// safe on a nil receiver so the core stays testable without a registry.
type Metrics struct {
	registry *prometheus.Registry

	commandsApplied  *prometheus.CounterVec
	commandsRejected *prometheus.CounterVec
	rendersTotal     prometheus.Counter
	renderErrors     prometheus.Counter

	currentPreset prometheus.Gauge
	brightness    prometheus.Gauge
	intervalMs    prometheus.Gauge
}

// New creates a metrics set backed by its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commandsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "soldergoggles_commands_applied_total",
			Help: "Control commands that mutated the preset state.",
		}, []string{"command"}),
		commandsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "soldergoggles_commands_rejected_total",
			Help: "Control commands dropped during validation.",
		}, []string{"command", "reason"}),
		rendersTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "soldergoggles_renders_total",
			Help: "Frames pushed to the strip driver.",
		}),
		renderErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "soldergoggles_render_errors_total",
			Help: "Frames the strip driver failed to write.",
		}),
		currentPreset: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "soldergoggles_current_preset",
			Help: "Index of the active preset.",
		}),
		brightness: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "soldergoggles_brightness",
			Help: "Global brightness (0-255).",
		}),
		intervalMs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "soldergoggles_animation_interval_ms",
			Help: "Animation frame interval in milliseconds.",
		}),
	}

	m.registry.MustRegister(
		m.commandsApplied,
		m.commandsRejected,
		m.rendersTotal,
		m.renderErrors,
		m.currentPreset,
		m.brightness,
		m.intervalMs,
	)
	return m
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// CommandApplied counts a command that mutated state.
func (m *Metrics) CommandApplied(command string) {
	if m == nil {
		return
	}
	m.commandsApplied.WithLabelValues(command).Inc()
}

// CommandRejected counts a command dropped during validation.
func (m *Metrics) CommandRejected(command, reason string) {
	if m == nil {
		return
	}
	m.commandsRejected.WithLabelValues(command, reason).Inc()
}

// RenderDone counts a frame written to the strip driver.
func (m *Metrics) RenderDone(err error) {
	if m == nil {
		return
	}
	m.rendersTotal.Inc()
	if err != nil {
		m.renderErrors.Inc()
	}
}

// ObserveState updates the state gauges after a mutation.
func (m *Metrics) ObserveState(presetIndex int, brightness uint8, intervalMs int) {
	if m == nil {
		return
	}
	m.currentPreset.Set(float64(presetIndex))
	m.brightness.Set(float64(brightness))
	m.intervalMs.Set(float64(intervalMs))
}
