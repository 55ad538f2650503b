package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri123lemoine/twig/internal/engine"
	"github.com/henri123lemoine/twig/internal/git"
	"github.com/henri123lemoine/twig/internal/ui"
)

// Diff shows the working tree or staged diff.
type Diff struct {
	base
	deps   *Deps
	staged bool
	lines  []git.DiffLine
	window *engine.ScrollWindow
}

// NewDiff returns the WorkingDiff screen, or StagedDiff when staged is set.
func NewDiff(deps *Deps, staged bool) *Diff {
	return &Diff{deps: deps, staged: staged, window: engine.NewScrollWindow(0, 0)}
}

func (s *Diff) Update() error {
	lines, err := s.deps.Backend.Diff(s.staged)
	if err != nil {
		return err
	}
	s.lines = lines
	if len(lines) != s.window.Size() {
		s.window.SetSize(len(lines))
		s.window.Reset()
	}
	return nil
}

func (s *Diff) SetViewport(width, height int) {
	s.base.SetViewport(width, height)
	if height != s.window.Height() {
		s.window.SetHeight(height)
		s.window.Reset()
	}
}

// Window exposes the scroll state.
func (s *Diff) Window() *engine.ScrollWindow {
	return s.window
}

func (s *Diff) HandleInput(msg tea.KeyMsg) error {
	half := max(s.height/2, 1)
	switch {
	case key.Matches(msg, keys.Up):
		s.window.ScrollUp(1)
	case key.Matches(msg, keys.Down):
		s.window.ScrollDown(1)
	case key.Matches(msg, keys.HalfUp):
		s.window.ScrollUp(half)
	case key.Matches(msg, keys.HalfDown):
		s.window.ScrollDown(half)
	case key.Matches(msg, keys.Top):
		s.window.Reset()
	case key.Matches(msg, keys.Bottom):
		s.window.ScrollDown(s.window.Size())
	}
	return nil
}

func (s *Diff) View() string {
	if len(s.lines) == 0 {
		if s.staged {
			return ui.HelpStyle.Render("Nothing staged")
		}
		return ui.HelpStyle.Render("No unstaged changes")
	}

	end := min(s.window.End(), len(s.lines)-1, s.window.Start()+max(s.height, 1)-1)
	out := make([]string, 0, end-s.window.Start()+1)
	for i := s.window.Start(); i <= end; i++ {
		out = append(out, ui.Truncate(ui.DiffLine(s.lines[i]), s.width))
	}
	return strings.Join(out, "\n")
}
