package nats

import (
	"log/slog"
	"os"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestServerStartStop(t *testing.T) {
	server := NewServer(ServerOptions{
		Port:   14222, // Use non-default port for testing
		Logger: testLogger(),
	})

	if err := server.Start(); err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}

	if !server.IsRunning() {
		t.Error("Server should be running after Start()")
	}

	url := server.ClientURL()
	if url == "" {
		t.Error("ClientURL should not be empty")
	}

	server.Stop()

	if server.IsRunning() {
		t.Error("Server should not be running after Stop()")
	}
}

func TestClientGracefulDegradation(t *testing.T) {
	// Create client with non-existent server
	client := NewClient("nats://localhost:59999", testLogger())

	// Connect should fail but not panic
	err := client.Connect()
	if err == nil {
		t.Error("Connect should fail with non-existent server")
	}

	// These should be no-ops without panicking
	client.PublishApplied(AppliedMessage{PresetIndex: 0, Brightness: 255})
	client.PublishRejected(RejectedMessage{Command: "set:abc", Reason: "invalid_format"})

	if client.IsConnected() {
		t.Error("Client should not be connected")
	}

	client.Close()
}

func TestClientConnectAndPublish(t *testing.T) {
	logger := testLogger()

	server := NewServer(ServerOptions{
		Port:   14223,
		Logger: logger,
	})
	if err := server.Start(); err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	defer server.Stop()

	client := NewClient(server.ClientURL(), logger)
	if err := client.Connect(); err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer client.Close()

	if !client.IsConnected() {
		t.Error("Client should be connected")
	}

	// Publish state updates (no error expected)
	client.PublishApplied(AppliedMessage{
		PresetIndex: 1,
		Brightness:  128,
		IntervalMs:  50,
		Timestamp:   time.Now().Format(time.RFC3339),
	})
	client.PublishRejected(RejectedMessage{
		Command:   "bright:300",
		Reason:    "out_of_range",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func TestClientReceivesCommands(t *testing.T) {
	logger := testLogger()

	server := NewServer(ServerOptions{
		Port:   14224,
		Logger: logger,
	})
	if err := server.Start(); err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	defer server.Stop()

	client := NewClient(server.ClientURL(), logger)
	if err := client.Connect(); err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer client.Close()

	received := make(chan string, 1)
	client.OnCommand(func(payload []byte) {
		received <- string(payload)
	})

	publisher, err := NewCommandPublisher(server.ClientURL(), logger)
	if err != nil {
		t.Fatalf("Failed to create command publisher: %v", err)
	}
	defer publisher.Close()

	if err := publisher.Send("color:#ff8800"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	select {
	case got := <-received:
		if got != "color:#ff8800" {
			t.Errorf("Received %q, want %q", got, "color:#ff8800")
		}
	case <-time.After(2 * time.Second):
		t.Error("Command was not received within timeout")
	}
}

func TestClientResubscribesAfterReconnect(t *testing.T) {
	logger := testLogger()

	server := NewServer(ServerOptions{Port: 14225, Logger: logger})
	if err := server.Start(); err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	url := server.ClientURL()

	client := NewClient(url, logger)
	if err := client.Connect(); err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer client.Close()

	received := make(chan string, 1)
	client.OnCommand(func(payload []byte) {
		received <- string(payload)
	})

	// Bounce the broker and wait for the client to reconnect.
	server.Stop()
	server = NewServer(ServerOptions{Port: 14225, Logger: logger})
	if err := server.Start(); err != nil {
		t.Fatalf("Failed to restart server: %v", err)
	}
	defer server.Stop()

	deadline := time.Now().Add(15 * time.Second)
	for !client.IsConnected() {
		if time.Now().After(deadline) {
			t.Fatal("Client did not reconnect within timeout")
		}
		time.Sleep(100 * time.Millisecond)
	}

	publisher, err := NewCommandPublisher(url, logger)
	if err != nil {
		t.Fatalf("Failed to create command publisher: %v", err)
	}
	defer publisher.Close()

	if err := publisher.Send("bright:42"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	select {
	case got := <-received:
		if got != "bright:42" {
			t.Errorf("Received %q, want %q", got, "bright:42")
		}
	case <-time.After(5 * time.Second):
		t.Error("Command was not received after reconnect")
	}
}

func TestAppliedMessageRoundTrip(t *testing.T) {
	original := AppliedMessage{
		PresetIndex: 2,
		Color:       0xFF8800,
		Brightness:  200,
		IntervalMs:  50,
		Timestamp:   "2024-01-01T00:00:00Z",
	}

	data, err := original.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	parsed, err := UnmarshalApplied(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if parsed.PresetIndex != original.PresetIndex {
		t.Errorf("PresetIndex mismatch: got %d, want %d", parsed.PresetIndex, original.PresetIndex)
	}
	if parsed.Color != original.Color {
		t.Errorf("Color mismatch: got %v, want %v", parsed.Color, original.Color)
	}
}
