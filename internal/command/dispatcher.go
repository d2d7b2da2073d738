// Package command implements the control-channel dispatcher: it parses
// short text commands and applies validated mutations to the preset
// state, signalling the rendering collaborator on every applied change.
package command

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/Bootj05/Solder-goggles/internal/hexcolor"
	"github.com/Bootj05/Solder-goggles/internal/metrics"
	"github.com/Bootj05/Solder-goggles/internal/preset"
)

// Rejection reasons used for logs, metrics labels, and rejection events.
const (
	ReasonInvalidFormat  = "invalid_format"
	ReasonOutOfRange     = "out_of_range"
	ReasonUnknownCommand = "unknown_command"
)

// Options configures a Dispatcher.
type Options struct {
	// State is the controller state the dispatcher exclusively owns.
	State *preset.State
	// Notify is invoked exactly once per applied mutation that requires
	// a repaint. Speed changes do not notify. May be nil.
	Notify func()
	// OnReject is invoked when a command is dropped during validation.
	// May be nil.
	OnReject func(command, reason string)
	// Logger defaults to slog.Default when nil.
	Logger *slog.Logger
	// Metrics may be nil.
	Metrics *metrics.Metrics
}

// Dispatcher translates incoming text commands into state mutations.
// Handle must be invoked from a single goroutine; the transports
// serialize messages before they reach the dispatcher.
type Dispatcher struct {
	state    *preset.State
	notify   func()
	onReject func(command, reason string)
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// New creates a dispatcher over the given state.
func New(opts *Options) *Dispatcher {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		state:    opts.State,
		notify:   opts.Notify,
		onReject: opts.OnReject,
		logger:   logger,
		metrics:  opts.Metrics,
	}
}

// Handle processes one control message. Malformed, out-of-range, and
// unknown commands are dropped without mutating state and without
// notifying; Handle never fails.
func (d *Dispatcher) Handle(payload []byte) {
	msg := string(payload)

	switch {
	case msg == "next":
		d.state.Next()
		d.applied("next")
	case msg == "prev":
		d.state.Prev()
		d.applied("prev")
	case strings.HasPrefix(msg, "set:"):
		d.handleSet(msg[len("set:"):])
	case strings.HasPrefix(msg, "bright:"):
		d.handleBright(msg[len("bright:"):])
	case strings.HasPrefix(msg, "color:"):
		d.handleColor(msg[len("color:"):])
	case strings.HasPrefix(msg, "speed:"):
		d.handleSpeed(msg[len("speed:"):])
	case strings.HasPrefix(msg, "leds:"):
		d.handleLeds(msg[len("leds:"):])
	default:
		d.rejected("unknown", ReasonUnknownCommand)
	}
}

func (d *Dispatcher) handleSet(arg string) {
	n, ok := parseDigits(arg)
	if !ok {
		d.rejected("set", ReasonInvalidFormat)
		return
	}
	if !d.state.SetCurrent(n) {
		d.rejected("set", ReasonOutOfRange)
		return
	}
	d.applied("set")
}

func (d *Dispatcher) handleBright(arg string) {
	n, ok := parseDigits(arg)
	if !ok {
		d.rejected("bright", ReasonInvalidFormat)
		return
	}
	if !d.state.SetBrightness(n) {
		d.rejected("bright", ReasonOutOfRange)
		return
	}
	d.applied("bright")
}

func (d *Dispatcher) handleColor(arg string) {
	if len(arg) != 7 || arg[0] != '#' {
		d.rejected("color", ReasonInvalidFormat)
		return
	}
	c, err := hexcolor.Parse(arg[1:])
	if err != nil {
		d.rejected("color", ReasonInvalidFormat)
		return
	}
	d.state.SetColor(c)
	d.applied("color")
}

// handleSpeed changes the animation interval. Interval changes do not
// repaint the strip, so no notification fires.
func (d *Dispatcher) handleSpeed(arg string) {
	n, ok := parseDigits(arg)
	if !ok {
		d.rejected("speed", ReasonInvalidFormat)
		return
	}
	if !d.state.SetIntervalMs(n) {
		d.rejected("speed", ReasonOutOfRange)
		return
	}
	d.metrics.CommandApplied("speed")
	d.metrics.ObserveState(d.state.Current(), d.state.Brightness(), d.state.IntervalMs())
	d.logger.Debug("Animation interval changed", "interval_ms", n)
}

// handleLeds replaces the active preset's pixels. All tokens are parsed
// into a scratch buffer first; the preset is committed only when every
// token is valid, so a bad list never leaves it partially updated.
func (d *Dispatcher) handleLeds(arg string) {
	tokens := strings.Split(arg, ",")
	if len(tokens) > d.state.LEDCount() {
		d.rejected("leds", ReasonOutOfRange)
		return
	}

	colors := make([]hexcolor.Color, 0, len(tokens))
	for _, tok := range tokens {
		c, err := hexcolor.Parse(strings.TrimPrefix(tok, "#"))
		if err != nil {
			d.rejected("leds", ReasonInvalidFormat)
			return
		}
		colors = append(colors, c)
	}

	if !d.state.SetPixels(colors) {
		d.rejected("leds", ReasonOutOfRange)
		return
	}
	d.applied("leds")
}

func (d *Dispatcher) applied(command string) {
	d.metrics.CommandApplied(command)
	d.metrics.ObserveState(d.state.Current(), d.state.Brightness(), d.state.IntervalMs())
	d.logger.Debug("Command applied", "command", command, "preset", d.state.Current())
	if d.notify != nil {
		d.notify()
	}
}

func (d *Dispatcher) rejected(command, reason string) {
	d.metrics.CommandRejected(command, reason)
	d.logger.Debug("Command dropped", "command", command, "reason", reason)
	if d.onReject != nil {
		d.onReject(command, reason)
	}
}

// parseDigits converts a strictly decimal string. Signs, whitespace,
// and partial matches are rejected: the payload comes from an untrusted
// client and must never reach a converting function when invalid.
func parseDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Out-of-range for int, e.g. absurdly long digit strings.
		return 0, false
	}
	return n, true
}
