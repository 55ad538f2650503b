package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.General.TickIntervalMS != 500 {
		t.Errorf("Expected tick interval 500, got %d", cfg.General.TickIntervalMS)
	}
	if cfg.General.InitialFocus != "status" {
		t.Errorf("Expected initial focus 'status', got %q", cfg.General.InitialFocus)
	}
	if cfg.Network.MaxCredentialAttempts != 4 {
		t.Errorf("Expected 4 credential attempts, got %d", cfg.Network.MaxCredentialAttempts)
	}
	if cfg.TickInterval() != 500*time.Millisecond {
		t.Errorf("Expected 500ms, got %v", cfg.TickInterval())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantWarning bool
	}{
		{
			name:        "default config is valid",
			mutate:      func(*Config) {},
			wantWarning: false,
		},
		{
			name:        "tick interval too small",
			mutate:      func(c *Config) { c.General.TickIntervalMS = 10 },
			wantWarning: true,
		},
		{
			name:        "invalid initial focus",
			mutate:      func(c *Config) { c.General.InitialFocus = "popup" },
			wantWarning: true,
		},
		{
			name:        "credential attempts other than four",
			mutate:      func(c *Config) { c.Network.MaxCredentialAttempts = 10 },
			wantWarning: true,
		},
		{
			name:        "invalid theme",
			mutate:      func(c *Config) { c.UI.Theme = "neon" },
			wantWarning: true,
		},
		{
			name:        "non-positive log limit",
			mutate:      func(c *Config) { c.General.LogLimit = 0 },
			wantWarning: true,
		},
		{
			name:        "duplicate key binding",
			mutate:      func(c *Config) { c.Keys.Log = "2" },
			wantWarning: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			warnings := cfg.Validate()
			if hasWarning := len(warnings) > 0; hasWarning != tt.wantWarning {
				t.Errorf("Validate() warnings = %v, wantWarning %v", warnings, tt.wantWarning)
			}
		})
	}
}

func TestLoadFromPathMissingFile(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Expected no error for missing file, got %v", err)
	}
	if cfg.General.LogLimit != 500 {
		t.Errorf("Expected defaults, got log limit %d", cfg.General.LogLimit)
	}
}

func TestLoadFromPathKeepsUnsetDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[general]\nremote = \"upstream\"\n\n[ui]\nshow_help = false\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.General.Remote != "upstream" {
		t.Errorf("Expected remote 'upstream', got %q", cfg.General.Remote)
	}
	if cfg.UI.ShowHelp {
		t.Error("Expected show_help to be overridden to false")
	}
	if cfg.General.TickIntervalMS != 500 {
		t.Errorf("Expected default tick interval, got %d", cfg.General.TickIntervalMS)
	}
	if cfg.Keys.Quit != "q,ctrl+c" {
		t.Errorf("Expected default quit keys, got %q", cfg.Keys.Quit)
	}
}

func TestLoadFromPathInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[general\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromPath(path); err == nil {
		t.Error("Expected parse error")
	}
}

func TestWriteDefaultRoundTripsThroughLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twig", "config.toml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "max_credential_attempts = 4") {
		t.Errorf("Expected credential ceiling in generated file, got:\n%s", data)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("Generated config does not parse: %v", err)
	}
	if warnings := cfg.Validate(); len(warnings) > 0 {
		t.Errorf("Generated config has warnings: %v", warnings)
	}
}

func TestConcurrentWritesDoNotInterleave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cfg := DefaultConfig()
			cfg.General.LogLimit = 100 + i
			if err := Save(path, cfg); err != nil {
				t.Errorf("Save failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("Final file does not parse: %v", err)
	}
	if cfg.General.LogLimit < 100 || cfg.General.LogLimit > 107 {
		t.Errorf("Unexpected log limit %d", cfg.General.LogLimit)
	}
}

func TestConfigPathHonorsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	want := filepath.Join(dir, "twig", "config.toml")
	if got := ConfigPath(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestEditorCommand(t *testing.T) {
	t.Setenv("GIT_EDITOR", "")
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "nano")

	cfg := DefaultConfig()
	if got := cfg.EditorCommand(); got != "nano" {
		t.Errorf("Expected nano, got %q", got)
	}

	cfg.General.Editor = "hx"
	if got := cfg.EditorCommand(); got != "hx" {
		t.Errorf("Expected configured editor, got %q", got)
	}
}
