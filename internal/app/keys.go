package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/henri123lemoine/twig/internal/config"
	"github.com/henri123lemoine/twig/internal/engine"
)

// KeyMap defines the global keybindings. They are only checked while no
// popup is open and the focused screen is not capturing text.
type KeyMap struct {
	Quit key.Binding
	Exit key.Binding

	// Jump moves focus straight to a browsable screen.
	Status   key.Binding
	Branches key.Binding
	Log      key.Binding
	Diff     key.Binding
	Staged   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Exit: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "exit"),
		),
		Status: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "status"),
		),
		Branches: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "branches"),
		),
		Log: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "log"),
		),
		Diff: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "diff"),
		),
		Staged: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "staged"),
		),
	}
}

// KeyMapFromConfig creates a KeyMap from config settings.
func KeyMapFromConfig(cfg *config.KeysConfig) KeyMap {
	km := DefaultKeyMap()

	override := func(b *key.Binding, keys, desc string) {
		parsed := parseKeys(keys)
		if len(parsed) == 0 {
			return
		}
		*b = key.NewBinding(
			key.WithKeys(parsed...),
			key.WithHelp(parsed[0], desc),
		)
	}
	override(&km.Quit, cfg.Quit, "quit")
	override(&km.Status, cfg.Status, "status")
	override(&km.Branches, cfg.Branches, "branches")
	override(&km.Log, cfg.Log, "log")
	override(&km.Diff, cfg.Diff, "diff")
	override(&km.Staged, cfg.Staged, "staged")

	return km
}

// parseKeys parses a comma-separated list of keys.
func parseKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		k = strings.TrimSpace(k)
		if k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// jumps pairs each jump binding with its screen.
func (km KeyMap) jumps() []struct {
	binding key.Binding
	id      engine.ScreenID
} {
	return []struct {
		binding key.Binding
		id      engine.ScreenID
	}{
		{km.Status, engine.FileStatus},
		{km.Branches, engine.BranchList},
		{km.Log, engine.CommitLog},
		{km.Diff, engine.WorkingDiff},
		{km.Staged, engine.StagedDiff},
	}
}

// ShortHelp returns the footer hints.
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Status, km.Branches, km.Log, km.Diff, km.Staged, km.Quit}
}
