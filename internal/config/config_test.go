package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

type testOptions struct {
	Config      string
	Port        string `toml:"server.port" env:"SERVER_PORT"`
	LEDCount    int    `toml:"strip.leds" env:"STRIP_LEDS"`
	PresetCount int    `toml:"strip.presets" env:"STRIP_PRESETS"`
	Debug       bool   `toml:"logging.debug" env:"LOGGING_DEBUG"`
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_FromTOML(t *testing.T) {
	path := writeConfig(t, `
[server]
port = ":9000"

[strip]
leds = 13
presets = 3

[logging]
debug = true
`)

	opts := &testOptions{Config: path, Port: ":8090"}
	if err := Load(opts, nil); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if opts.Port != ":9000" {
		t.Errorf("Port = %q, want :9000", opts.Port)
	}
	if opts.LEDCount != 13 {
		t.Errorf("LEDCount = %d, want 13", opts.LEDCount)
	}
	if opts.PresetCount != 3 {
		t.Errorf("PresetCount = %d, want 3", opts.PresetCount)
	}
	if !opts.Debug {
		t.Error("Debug = false, want true")
	}
}

func TestLoad_EnvOverridesTOML(t *testing.T) {
	path := writeConfig(t, `
[strip]
leds = 13
`)
	t.Setenv("SOLDERGOGGLES_STRIP_LEDS", "24")

	opts := &testOptions{Config: path}
	if err := Load(opts, nil); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if opts.LEDCount != 24 {
		t.Errorf("LEDCount = %d, want env override 24", opts.LEDCount)
	}
}

func TestLoad_CLIFlagWins(t *testing.T) {
	path := writeConfig(t, `
[strip]
leds = 13
`)
	t.Setenv("SOLDERGOGGLES_STRIP_LEDS", "24")

	cmd := &cobra.Command{}
	cmd.Flags().Int("l-e-d-count", 0, "")
	// Mark the flag as explicitly set on the command line.
	if err := cmd.Flags().Set("l-e-d-count", "7"); err != nil {
		t.Fatalf("setting flag: %v", err)
	}

	opts := &testOptions{Config: path, LEDCount: 7}
	if err := Load(opts, cmd); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if opts.LEDCount != 7 {
		t.Errorf("LEDCount = %d, want CLI value 7", opts.LEDCount)
	}
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	opts := &testOptions{Config: "/nonexistent/config.toml", Port: ":8090"}
	if err := Load(opts, nil); err != nil {
		t.Fatalf("Load returned error for missing file: %v", err)
	}
	if opts.Port != ":8090" {
		t.Errorf("Port = %q, want default preserved", opts.Port)
	}
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := writeConfig(t, "this is not toml = [")
	opts := &testOptions{Config: path}
	if err := Load(opts, nil); err == nil {
		t.Error("Load accepted malformed TOML")
	}
}

func TestLoadLoggingConfig(t *testing.T) {
	path := writeConfig(t, `
[logging]
level = "debug"
format = "json"
command = "warn"
render = "error"
`)

	cfg := LoadLoggingConfig(path)
	if cfg.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
	if cfg.Modules["command"] != "warn" || cfg.Modules["render"] != "error" {
		t.Errorf("Modules = %v, want command=warn render=error", cfg.Modules)
	}
}

func TestLoadLoggingConfig_Defaults(t *testing.T) {
	cfg := LoadLoggingConfig("/nonexistent/config.toml")
	if cfg.Level != "info" || cfg.Format != "text" {
		t.Errorf("defaults = %q/%q, want info/text", cfg.Level, cfg.Format)
	}
}

func TestFieldNameToFlag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Port", "port"},
		{"LoggingLevel", "logging-level"},
		{"NATSURL", "n-a-t-s-u-r-l"},
	}
	for _, tt := range tests {
		if got := fieldNameToFlag(tt.in); got != tt.want {
			t.Errorf("fieldNameToFlag(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
