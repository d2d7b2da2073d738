package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"

	"github.com/Bootj05/Solder-goggles/cmd"
	"github.com/Bootj05/Solder-goggles/internal/api"
	"github.com/Bootj05/Solder-goggles/internal/command"
	"github.com/Bootj05/Solder-goggles/internal/config"
	"github.com/Bootj05/Solder-goggles/internal/events"
	"github.com/Bootj05/Solder-goggles/internal/logging"
	"github.com/Bootj05/Solder-goggles/internal/metrics"
	"github.com/Bootj05/Solder-goggles/internal/nats"
	"github.com/Bootj05/Solder-goggles/internal/preset"
	"github.com/Bootj05/Solder-goggles/internal/render"
)

// commandQueueSize bounds how many commands can wait for the dispatcher.
const commandQueueSize = 64

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// Server settings
	Port string `help:"Port to listen on" short:"p" default:":8090" toml:"server.port" env:"SERVER_PORT"`

	// Strip settings
	PresetCount int    `help:"Number of presets" default:"3" toml:"strip.preset_count" env:"STRIP_PRESET_COUNT"`
	LEDCount    int    `help:"Number of LEDs on the strip" default:"13" toml:"strip.led_count" env:"STRIP_LED_COUNT"`
	SPIDevice   string `help:"SPI device driving the strip (empty for no hardware)" default:"/dev/spidev0.0" toml:"strip.spi_device" env:"STRIP_SPI_DEVICE"`

	// NATS settings
	NATSURL      string `help:"NATS server URL (empty disables NATS)" default:"nats://127.0.0.1:4222" toml:"nats.url" env:"NATS_URL"`
	NATSEmbedded bool   `help:"Run an embedded NATS server" default:"false" toml:"nats.embedded" env:"NATS_EMBEDDED"`

	// Auth settings
	AuthUsername string `help:"Basic auth username" default:"admin" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" default:"password" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Logging settings
	LoggingLevel   string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat  string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingCommand string `help:"Command dispatcher logging level" default:"info" toml:"logging.command" env:"LOGGING_COMMAND"`
	LoggingRender  string `help:"Render logging level" default:"info" toml:"logging.render" env:"LOGGING_RENDER"`
	LoggingAPI     string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
	LoggingNATS    string `help:"NATS logging level" default:"info" toml:"logging.nats" env:"LOGGING_NATS"`
}

func main() {
	var cli humacli.CLI
	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		// Load configuration automatically
		if loadErr := config.Load(opts, cli.Root()); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		// Initialize logging system
		logging.Initialize(logging.Config{
			Level:  opts.LoggingLevel,
			Format: opts.LoggingFormat,
			Modules: map[string]string{
				"command": opts.LoggingCommand,
				"render":  opts.LoggingRender,
				"api":     opts.LoggingAPI,
				"nats":    opts.LoggingNATS,
			},
		})

		logger := logging.GetLogger("main")

		// Create event bus for in-process event handling
		eventBus := events.New()

		// Forward log entries to SSE subscribers
		logging.SetEntryCallback(func(entry logging.LogEntry) {
			eventBus.Publish(events.LogEntryEvent{
				Timestamp:  entry.Timestamp.Format(time.RFC3339Nano),
				Level:      entry.Level,
				Module:     entry.Module,
				Message:    entry.Message,
				Attributes: entry.Attributes,
			})
		})

		m := metrics.New()

		// Controller state, owned by the dispatcher goroutine below.
		state := preset.NewState(opts.PresetCount, opts.LEDCount)

		// Snapshot of the state as of the last handled command, for
		// readers outside the dispatcher goroutine.
		var current atomic.Pointer[preset.Snapshot]
		initial := state.Snapshot()
		current.Store(&initial)

		dispatcher := command.New(&command.Options{
			State: state,
			Notify: func() {
				snap := state.Snapshot()
				eventBus.Publish(events.PresetAppliedEvent{
					PresetIndex: snap.PresetIndex,
					Color:       snap.Color,
					Pixels:      snap.Pixels,
					Brightness:  snap.Brightness,
					IntervalMs:  snap.IntervalMs,
					Timestamp:   time.Now().Format(time.RFC3339),
				})
			},
			OnReject: func(cmdStr, reason string) {
				eventBus.Publish(events.CommandRejectedEvent{
					Command:   cmdStr,
					Reason:    reason,
					Timestamp: time.Now().Format(time.RFC3339),
				})
			},
			Logger:  logging.GetLogger("command"),
			Metrics: m,
		})

		// All transports funnel commands through this channel; a single
		// goroutine drains it so the dispatcher never runs concurrently.
		commands := make(chan []byte, commandQueueSize)
		dispatcherDone := make(chan struct{})
		go func() {
			defer close(dispatcherDone)
			for payload := range commands {
				dispatcher.Handle(payload)
				snap := state.Snapshot()
				current.Store(&snap)
			}
		}()

		enqueue := func(payload []byte) bool {
			buf := make([]byte, len(payload))
			copy(buf, payload)
			select {
			case commands <- buf:
				return true
			default:
				logger.Warn("Command queue full, dropping command")
				return false
			}
		}

		// Strip renderer
		driver := render.New(opts.SPIDevice, logging.GetLogger("render"))
		renderManager := render.NewManager(driver, eventBus, logging.GetLogger("render"), m)

		// Embedded NATS server, optional
		var natsServer *nats.Server
		if opts.NATSEmbedded {
			natsServer = nats.NewServer(nats.ServerOptions{
				Logger: logging.GetLogger("nats"),
			})
		}

		// NATS client and bus bridge, optional
		var natsClient *nats.Client
		var natsBridge *nats.Bridge
		if opts.NATSURL != "" {
			natsClient = nats.NewClient(opts.NATSURL, logging.GetLogger("nats"))
			natsClient.OnCommand(func(payload []byte) {
				enqueue(payload)
			})
			natsBridge = nats.NewBridge(natsClient, eventBus, logging.GetLogger("nats"))
		}

		server := api.NewServer(&api.Options{
			AuthUsername: opts.AuthUsername,
			AuthPassword: opts.AuthPassword,
			CommandSink:  enqueue,
			Snapshot: func() preset.Snapshot {
				return *current.Load()
			},
			NATSConnected: func() bool {
				return natsClient != nil && natsClient.IsConnected()
			},
			EventBus:          eventBus,
			PrometheusHandler: m.Handler(),
		})

		// Reload log levels when the config file changes
		watcher := config.NewWatcher(opts.Config, func(path string) (logging.Config, error) {
			return config.LoadLoggingConfig(path), nil
		}, logger)
		watcher.OnReload(func(cfg logging.Config) {
			logger.Info("Reloading logging configuration")
			logging.Initialize(cfg)
		})

		hooks.OnStart(func() {
			renderManager.Start()

			if natsServer != nil {
				if startErr := natsServer.Start(); startErr != nil {
					logger.Error("Failed to start embedded NATS server", "error", startErr)
					os.Exit(1)
				}
			}

			if natsClient != nil {
				// Connection failures leave the controller HTTP-only.
				_ = natsClient.Connect()
				natsBridge.Start()
			}

			if watchErr := watcher.Start(); watchErr != nil {
				logger.Debug("Config watcher not started", "error", watchErr)
			}

			logger.Info("Starting HTTP server", "port", opts.Port)
			if startErr := server.Start(opts.Port); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
				logger.Error("Failed to start HTTP server", "error", startErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down")
			if stopErr := server.Stop(); stopErr != nil {
				logger.Error("Error stopping HTTP server", "error", stopErr)
			}

			_ = watcher.Stop()

			if natsBridge != nil {
				natsBridge.Stop()
			}
			if natsClient != nil {
				natsClient.Close()
			}
			if natsServer != nil {
				natsServer.Stop()
			}

			// All command producers are stopped; drain the queue and
			// wait for the dispatcher goroutine to exit.
			close(commands)
			<-dispatcherDone

			renderManager.Stop()
			if closeErr := driver.Close(); closeErr != nil {
				logger.Warn("Error closing strip driver", "error", closeErr)
			}
		})
	})

	// Add send command
	cli.Root().AddCommand(cmd.CreateSendCmd())

	cli.Run()
}
