// Package config handles twig configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"
)

// CredentialCeiling is the only supported value for network.max_credential_attempts.
const CredentialCeiling = 4

// Config represents twig configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Network NetworkConfig `toml:"network"`
	UI      UIConfig      `toml:"ui"`
	Keys    KeysConfig    `toml:"keys"`
}

// GeneralConfig contains general settings.
type GeneralConfig struct {
	// Milliseconds between refresh ticks
	TickIntervalMS int `toml:"tick_interval_ms"`

	// Remote used for push/fetch/pull (empty = auto-detect)
	Remote string `toml:"remote"`

	// Editor for commit messages (empty = $GIT_EDITOR, $VISUAL, $EDITOR, vi)
	Editor string `toml:"editor"`

	// Screen focused at startup: status, branches, log, diff, staged
	InitialFocus string `toml:"initial_focus"`

	// Maximum number of commits shown in the log
	LogLimit int `toml:"log_limit"`
}

// NetworkConfig contains settings for fetch/push/pull.
type NetworkConfig struct {
	// Credential attempts before an operation gives up
	MaxCredentialAttempts int `toml:"max_credential_attempts"`
}

// UIConfig contains UI settings.
type UIConfig struct {
	// Color theme: auto, dark, light
	Theme string `toml:"theme"`

	// Show key hints in the footer
	ShowHelp bool `toml:"show_help"`
}

// KeysConfig contains global keybinding settings.
type KeysConfig struct {
	Quit     string `toml:"quit"`
	Status   string `toml:"status"`
	Branches string `toml:"branches"`
	Log      string `toml:"log"`
	Diff     string `toml:"diff"`
	Staged   string `toml:"staged"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			TickIntervalMS: 500,
			Remote:         "",
			Editor:         "",
			InitialFocus:   "status",
			LogLimit:       500,
		},
		Network: NetworkConfig{
			MaxCredentialAttempts: CredentialCeiling,
		},
		UI: UIConfig{
			Theme:    "auto",
			ShowHelp: true,
		},
		Keys: KeysConfig{
			Quit:     "q,ctrl+c",
			Status:   "1",
			Branches: "2",
			Log:      "3",
			Diff:     "4",
			Staged:   "5",
		},
	}
}

// TickInterval returns the refresh interval, falling back to the default
// for non-positive values.
func (c *Config) TickInterval() time.Duration {
	if c.General.TickIntervalMS <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(c.General.TickIntervalMS) * time.Millisecond
}

// EditorCommand resolves the editor used for commit messages.
func (c *Config) EditorCommand() string {
	if c.General.Editor != "" {
		return c.General.Editor
	}
	for _, env := range []string{"GIT_EDITOR", "VISUAL", "EDITOR"} {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return "vi"
}

// ConfigPath returns the path to the config file.
// Uses ~/.config/twig/config.toml (XDG style) on all Unix systems.
func ConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "twig", "config.toml")
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", "twig", "config.toml")
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "twig", "config.toml")
	}
	return filepath.Join(configDir, "twig", "config.toml")
}

// Load loads configuration from the config file.
func Load() (*Config, error) {
	return LoadFromPath(ConfigPath())
}

// LoadFromPath loads configuration from a specific path.
// A missing file yields the defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	// go-toml/v2 only overwrites fields present in the file, so unspecified
	// fields keep their defaults.
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// WriteDefault writes a commented default config file to path.
func WriteDefault(path string) error {
	return writeLocked(path, []byte(generateDefaultConfigContent()))
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return writeLocked(path, data)
}

// writeLocked writes data atomically while holding an exclusive lock on a
// sibling lock file, so concurrent instances never interleave writes.
func writeLocked(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	fileLock := flock.New(path + ".lock")
	if err := fileLock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", path, err)
	}
	defer fileLock.Unlock()

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

func generateDefaultConfigContent() string {
	var b strings.Builder
	cfg := DefaultConfig()

	b.WriteString("# twig configuration\n\n")

	b.WriteString("[general]\n")
	b.WriteString("# Milliseconds between refresh ticks\n")
	fmt.Fprintf(&b, "tick_interval_ms = %d\n", cfg.General.TickIntervalMS)
	b.WriteString("# Remote used for push/fetch/pull (empty = the only remote, else \"origin\")\n")
	fmt.Fprintf(&b, "remote = %q\n", cfg.General.Remote)
	b.WriteString("# Editor for commit messages (empty = $GIT_EDITOR, $VISUAL, $EDITOR, vi)\n")
	fmt.Fprintf(&b, "editor = %q\n", cfg.General.Editor)
	b.WriteString("# Screen focused at startup: status, branches, log, diff, staged\n")
	fmt.Fprintf(&b, "initial_focus = %q\n", cfg.General.InitialFocus)
	b.WriteString("# Maximum number of commits shown in the log\n")
	fmt.Fprintf(&b, "log_limit = %d\n\n", cfg.General.LogLimit)

	b.WriteString("[network]\n")
	b.WriteString("# Credential attempts before giving up (fixed at 4)\n")
	fmt.Fprintf(&b, "max_credential_attempts = %d\n\n", cfg.Network.MaxCredentialAttempts)

	b.WriteString("[ui]\n")
	b.WriteString("# Color theme: \"auto\", \"dark\", or \"light\"\n")
	fmt.Fprintf(&b, "theme = %q\n", cfg.UI.Theme)
	b.WriteString("# Show key hints in the footer\n")
	fmt.Fprintf(&b, "show_help = %v\n\n", cfg.UI.ShowHelp)

	b.WriteString("[keys]\n")
	b.WriteString("# Global keybindings (comma-separated for multiple keys)\n")
	fmt.Fprintf(&b, "# quit = %q\n", cfg.Keys.Quit)
	fmt.Fprintf(&b, "# status = %q\n", cfg.Keys.Status)
	fmt.Fprintf(&b, "# branches = %q\n", cfg.Keys.Branches)
	fmt.Fprintf(&b, "# log = %q\n", cfg.Keys.Log)
	fmt.Fprintf(&b, "# diff = %q\n", cfg.Keys.Diff)
	fmt.Fprintf(&b, "# staged = %q\n", cfg.Keys.Staged)

	return b.String()
}

var validFocus = []string{"status", "branches", "log", "diff", "staged"}

// Validate validates the configuration and returns warnings.
func (c *Config) Validate() []string {
	var warnings []string

	if c.General.TickIntervalMS < 50 {
		warnings = append(warnings, fmt.Sprintf("general.tick_interval_ms too small: %d (minimum 50)", c.General.TickIntervalMS))
	}

	if c.General.LogLimit <= 0 {
		warnings = append(warnings, fmt.Sprintf("general.log_limit must be positive, got %d", c.General.LogLimit))
	}

	if c.General.InitialFocus != "" && !contains(validFocus, c.General.InitialFocus) {
		warnings = append(warnings, fmt.Sprintf("Invalid value for general.initial_focus: %s (expected %s)",
			c.General.InitialFocus, strings.Join(validFocus, ", ")))
	}

	if c.Network.MaxCredentialAttempts != 0 && c.Network.MaxCredentialAttempts != CredentialCeiling {
		warnings = append(warnings, fmt.Sprintf("network.max_credential_attempts is fixed at %d; ignoring %d",
			CredentialCeiling, c.Network.MaxCredentialAttempts))
	}

	if c.UI.Theme != "" &&
		c.UI.Theme != "auto" &&
		c.UI.Theme != "dark" &&
		c.UI.Theme != "light" {
		warnings = append(warnings, fmt.Sprintf("Invalid value for ui.theme: %s (expected auto, dark, or light)", c.UI.Theme))
	}

	bindings := map[string]string{
		"quit":     c.Keys.Quit,
		"status":   c.Keys.Status,
		"branches": c.Keys.Branches,
		"log":      c.Keys.Log,
		"diff":     c.Keys.Diff,
		"staged":   c.Keys.Staged,
	}
	seen := make(map[string]string)
	for _, name := range []string{"quit", "status", "branches", "log", "diff", "staged"} {
		for _, k := range strings.Split(bindings[name], ",") {
			k = strings.TrimSpace(k)
			if k == "" {
				continue
			}
			if other, ok := seen[k]; ok {
				warnings = append(warnings, fmt.Sprintf("Key %q bound to both keys.%s and keys.%s", k, other, name))
				continue
			}
			seen[k] = name
		}
	}

	return warnings
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
