package nats

import (
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// Client is the controller-side NATS client. It receives raw command
// strings on the command subject and publishes state changes back.
// Gracefully degrades when NATS is unavailable.
type Client struct {
	url       string
	conn      *nats.Conn
	sub       *nats.Subscription
	logger    *slog.Logger
	mu        sync.RWMutex
	sink      func([]byte)
	connected bool
}

// NewClient creates a NATS client for the controller.
func NewClient(url string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		url:    url,
		logger: logger.With("component", "nats-client"),
	}
}

// Connect establishes a connection to the NATS server.
// Returns the error so the caller can decide to keep running offline.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	opts := []nats.Option{
		nats.Name("soldergoggles-controller"),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(-1), // Infinite reconnects
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			c.mu.Lock()
			c.connected = false
			c.mu.Unlock()
			if err != nil {
				c.logger.Warn("NATS disconnected", "error", err)
			} else {
				c.logger.Debug("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			c.mu.Lock()
			c.connected = true
			// Resubscribe to commands after reconnect
			c.subscribeCommandsLocked()
			c.mu.Unlock()
			c.logger.Info("NATS reconnected")
		}),
		nats.ConnectHandler(func(_ *nats.Conn) {
			c.logger.Debug("NATS connected")
		}),
	}

	conn, err := nats.Connect(c.url, opts...)
	if err != nil {
		c.logger.Warn("Failed to connect to NATS, running in offline mode", "error", err)
		return err
	}

	c.conn = conn
	c.connected = true
	c.logger.Info("Connected to NATS", "url", c.url)

	c.subscribeCommandsLocked()

	return nil
}

// subscribeCommandsLocked subscribes to the command subject (must hold lock).
func (c *Client) subscribeCommandsLocked() {
	if c.conn == nil || c.sink == nil {
		return
	}

	sub, err := c.conn.Subscribe(SubjectCommand, func(msg *nats.Msg) {
		c.logger.Debug("Received command", "command", string(msg.Data))
		c.sink(msg.Data)
	})
	if err != nil {
		c.logger.Warn("Failed to subscribe to commands", "error", err)
		return
	}

	// Unsubscribe from old subscription if exists
	if c.sub != nil {
		_ = c.sub.Unsubscribe()
	}
	c.sub = sub
}

// OnCommand sets the sink for incoming command payloads.
func (c *Client) OnCommand(fn func([]byte)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sink = fn

	// Subscribe if already connected
	if c.conn != nil && c.connected {
		c.subscribeCommandsLocked()
	}
}

// PublishApplied publishes the controller state after an applied command.
// No-op if not connected (graceful degradation).
func (c *Client) PublishApplied(m AppliedMessage) {
	c.mu.RLock()
	conn := c.conn
	connected := c.connected
	c.mu.RUnlock()

	if conn == nil || !connected {
		return
	}

	data, err := m.Marshal()
	if err != nil {
		c.logger.Warn("Failed to marshal applied state", "error", err)
		return
	}

	if err := conn.Publish(SubjectApplied, data); err != nil {
		c.logger.Warn("Failed to publish applied state", "error", err)
	}
}

// PublishRejected publishes a dropped command.
// No-op if not connected (graceful degradation).
func (c *Client) PublishRejected(m RejectedMessage) {
	c.mu.RLock()
	conn := c.conn
	connected := c.connected
	c.mu.RUnlock()

	if conn == nil || !connected {
		return
	}

	data, err := m.Marshal()
	if err != nil {
		c.logger.Warn("Failed to marshal rejection", "error", err)
		return
	}

	if err := conn.Publish(SubjectRejected, data); err != nil {
		c.logger.Warn("Failed to publish rejection", "error", err)
	}
}

// IsConnected returns true if connected to NATS.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected && c.conn != nil
}

// Close closes the NATS connection.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sub != nil {
		_ = c.sub.Unsubscribe()
		c.sub = nil
	}

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}

	c.connected = false
	c.logger.Debug("NATS client closed")
}

// CommandPublisher sends command strings to a running controller. Used
// by the send subcommand.
type CommandPublisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

// NewCommandPublisher connects to NATS for publishing commands.
func NewCommandPublisher(url string, logger *slog.Logger) (*CommandPublisher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := nats.Connect(url,
		nats.Name("soldergoggles-send"),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(5),
	)
	if err != nil {
		return nil, err
	}

	return &CommandPublisher{
		conn:   conn,
		logger: logger.With("component", "nats-send"),
	}, nil
}

// Send publishes a raw command string and flushes the connection.
func (p *CommandPublisher) Send(command string) error {
	if err := p.conn.Publish(SubjectCommand, []byte(command)); err != nil {
		return err
	}
	if err := p.conn.Flush(); err != nil {
		return err
	}

	p.logger.Info("Sent command", "command", command)
	return nil
}

// Close closes the publisher connection.
func (p *CommandPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
