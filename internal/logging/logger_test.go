package logging

import (
	"context"
	"log/slog"
	"testing"
	"time"
)

func resetState() {
	mutex.Lock()
	moduleLoggers = make(map[string]*slog.Logger)
	moduleLevelVars = make(map[string]*slog.LevelVar)
	isInitialized = false
	logBuffer = nil
	logCallback = nil
	mutex.Unlock()
}

func TestModuleLevelOverride(t *testing.T) {
	resetState()

	Initialize(Config{
		Level:  "info",
		Format: "text",
		Modules: map[string]string{
			"command": "debug",
			"api":     "warn",
		},
	})

	tests := []struct {
		module    string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{"command", true, true, true},
		{"api", false, false, true},
		{"other", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.module, func(t *testing.T) {
			handler := GetLogger(tt.module).Handler()
			ctx := context.Background()

			if got := handler.Enabled(ctx, slog.LevelDebug); got != tt.wantDebug {
				t.Errorf("Debug enabled = %v, want %v", got, tt.wantDebug)
			}
			if got := handler.Enabled(ctx, slog.LevelInfo); got != tt.wantInfo {
				t.Errorf("Info enabled = %v, want %v", got, tt.wantInfo)
			}
			if got := handler.Enabled(ctx, slog.LevelWarn); got != tt.wantWarn {
				t.Errorf("Warn enabled = %v, want %v", got, tt.wantWarn)
			}
		})
	}
}

func TestReinitializeUpdatesLevels(t *testing.T) {
	resetState()

	Initialize(Config{Level: "info", Format: "text"})
	logger := GetLogger("render")

	if logger.Handler().Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("render logger should start at info")
	}

	Initialize(Config{
		Level:   "info",
		Format:  "text",
		Modules: map[string]string{"render": "debug"},
	})

	if !GetLogger("render").Handler().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("render logger did not pick up new debug level")
	}
}

func TestGetLogger_SameInstance(t *testing.T) {
	resetState()
	Initialize(Config{Level: "info", Format: "text"})

	if GetLogger("nats") != GetLogger("nats") {
		t.Error("GetLogger returned different instances for the same module")
	}
}

func TestBufferReceivesEntries(t *testing.T) {
	resetState()
	Initialize(Config{Level: "info", Format: "text"})

	GetLogger("command").Info("Command applied", "command", "next")

	entries := GetBuffer().ReadAll()
	if len(entries) == 0 {
		t.Fatal("ring buffer is empty after logging")
	}
	last := entries[len(entries)-1]
	if last.Module != "command" {
		t.Errorf("module = %q, want %q", last.Module, "command")
	}
	if last.Message != "Command applied" {
		t.Errorf("message = %q, want %q", last.Message, "Command applied")
	}
	if last.Attributes["command"] != "next" {
		t.Errorf("attributes = %v, want command=next", last.Attributes)
	}
}

func TestEntryCallback(t *testing.T) {
	resetState()
	Initialize(Config{Level: "info", Format: "text"})

	got := make(chan LogEntry, 1)
	SetEntryCallback(func(entry LogEntry) {
		select {
		case got <- entry:
		default:
		}
	})

	GetLogger("api").Warn("Request rejected")

	select {
	case entry := <-got:
		if entry.Level != "warn" {
			t.Errorf("level = %q, want warn", entry.Level)
		}
	case <-time.After(time.Second):
		t.Fatal("entry callback was not invoked")
	}
}

func TestRingBuffer_Wraparound(t *testing.T) {
	rb := NewRingBuffer(3)
	for i := 0; i < 5; i++ {
		rb.Write(LogEntry{Message: string(rune('a' + i))})
	}

	if rb.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", rb.Count())
	}
	entries := rb.ReadAll()
	want := []string{"c", "d", "e"}
	for i, w := range want {
		if entries[i].Message != w {
			t.Errorf("entry %d = %q, want %q", i, entries[i].Message, w)
		}
	}
}
