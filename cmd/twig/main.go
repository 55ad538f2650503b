package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/henri123lemoine/twig/internal/app"
	"github.com/henri123lemoine/twig/internal/config"
	"github.com/henri123lemoine/twig/internal/debug"
	"github.com/henri123lemoine/twig/internal/engine"
	"github.com/henri123lemoine/twig/internal/git"
	"github.com/henri123lemoine/twig/internal/ui"
)

var version = "dev"

var (
	errNotTerminal = errors.New("twig needs an interactive terminal")
	errDeclined    = errors.New("no repository")
)

// CLI is the command line of twig.
type CLI struct {
	Path        string           `arg:"" optional:"" default:"." type:"path" help:"Repository to open."`
	Debug       bool             `help:"Write a debug log."`
	DebugFile   string           `type:"path" placeholder:"FILE" help:"Debug log location (implies --debug)."`
	Config      string           `type:"path" placeholder:"FILE" help:"Config file to use."`
	WriteConfig bool             `help:"Write a commented default config file and exit."`
	Version     kong.VersionFlag `short:"V" help:"Show version."`
}

// Run starts the dashboard.
func (c *CLI) Run() error {
	cfgPath := c.Config
	if cfgPath == "" {
		cfgPath = config.ConfigPath()
	}

	if c.WriteConfig {
		if err := config.WriteDefault(cfgPath); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Println("Wrote", cfgPath)
		return nil
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errNotTerminal
	}

	cfg, err := config.LoadFromPath(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if c.Debug || c.DebugFile != "" {
		path := c.DebugFile
		if path == "" {
			path = debug.DefaultPath()
		}
		if err := debug.Enable(path); err != nil {
			return fmt.Errorf("debug log: %w", err)
		}
		defer debug.Close()
	}
	for _, w := range cfg.Validate() {
		fmt.Fprintf(os.Stderr, "twig: config: %s\n", w)
		debug.Log("config warning: %s", w)
	}
	ui.ApplyTheme(cfg.UI.Theme)

	repo, err := openRepository(c.Path)
	if err != nil {
		return err
	}
	repo.LogLimit = cfg.General.LogLimit

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pause := &engine.PauseFlag{}
	p := tea.NewProgram(app.New(ctx, cfg, repo, pause), tea.WithAltScreen(), tea.WithContext(ctx))
	go engine.RunTicker(ctx, cfg.TickInterval(), pause, func(msg any) { p.Send(msg) })

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// openRepository opens the repository at path, offering to create one
// when there is none.
func openRepository(path string) (*git.Repo, error) {
	repo, err := git.Open(path)
	if err == nil {
		return repo, nil
	}
	if !errors.Is(err, git.ErrNotRepository) {
		return nil, err
	}

	ok, err := confirm(fmt.Sprintf("Initialize new repo at %s?", path))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, errDeclined)
	}
	return git.Init(path)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("twig"),
		kong.Description("A keyboard-driven terminal dashboard for git."),
		kong.Vars{"version": version},
	)
	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "twig: %s\n", err)
		os.Exit(1)
	}
}
