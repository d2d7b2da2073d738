package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_ReloadOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nlevel = \"info\"\n"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	w := NewWatcher(path, func(p string) (string, error) {
		data, err := os.ReadFile(p)
		return string(data), err
	}, logger)
	w.debounce = 50 * time.Millisecond

	reloaded := make(chan string, 1)
	w.OnReload(func(content string) {
		select {
		case reloaded <- content:
		default:
		}
	})

	if err := w.Start(); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("[logging]\nlevel = \"debug\"\n"), 0644); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}

	select {
	case content := <-reloaded:
		if content == "" {
			t.Error("handler received empty config")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called after file change")
	}
}

func TestWatcher_Unsubscribe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("a = 1\n"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	w := NewWatcher(path, func(p string) (int, error) { return 42, nil }, logger)
	w.debounce = 50 * time.Millisecond

	called := make(chan struct{}, 1)
	unsub := w.OnReload(func(int) {
		select {
		case called <- struct{}{}:
		default:
		}
	})
	unsub()

	if err := w.Start(); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("a = 2\n"), 0644); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}

	select {
	case <-called:
		t.Error("unsubscribed handler was called")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcher_MissingFile(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	w := NewWatcher("/nonexistent/config.toml", func(p string) (int, error) { return 0, nil }, logger)

	if err := w.Start(); err == nil {
		w.Stop()
		t.Error("Start succeeded for a missing file")
	}
}
