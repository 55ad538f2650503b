package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri123lemoine/twig/internal/engine"
	"github.com/henri123lemoine/twig/internal/git"
	"github.com/henri123lemoine/twig/internal/ui"
)

// DetailPopup shows one commit in full.
type DetailPopup struct {
	base
	deps     *Deps
	commit   git.Commit
	viewport viewport.Model
}

// NewDetailPopup returns the commit detail popup.
func NewDetailPopup(deps *Deps) *DetailPopup {
	return &DetailPopup{deps: deps, viewport: viewport.New(0, 0)}
}

func (p *DetailPopup) Update() error { return nil }

// SetCommit sets the commit to show.
func (p *DetailPopup) SetCommit(c git.Commit) {
	p.commit = c
	p.viewport.SetContent(p.content())
	p.viewport.GotoTop()
}

// Commit returns the shown commit.
func (p *DetailPopup) Commit() git.Commit {
	return p.commit
}

func (p *DetailPopup) SetViewport(width, height int) {
	p.base.SetViewport(width, height)
	p.viewport.Width = width
	p.viewport.Height = max(height-2, 1)
	p.viewport.SetContent(p.content())
}

func (p *DetailPopup) content() string {
	c := p.commit
	lines := []string{
		ui.HashStyle.Render(c.ID),
		fmt.Sprintf("Author: %s <%s>", c.Author, c.Email),
		"Date:   " + c.Time.Format("Mon Jan 2 15:04:05 2006 -0700"),
		"",
		ui.HeaderStyle.Render(c.Summary),
	}
	if c.Body != "" {
		lines = append(lines, "", c.Body)
	}
	return strings.Join(lines, "\n")
}

func (p *DetailPopup) HandleInput(msg tea.KeyMsg) error {
	switch {
	case key.Matches(msg, keys.Cancel):
		p.deps.focus(engine.CommitLog)
	case key.Matches(msg, keys.Copy):
		if err := p.deps.copy(p.commit.ID); err != nil {
			return err
		}
	default:
		p.viewport, _ = p.viewport.Update(msg)
	}
	return nil
}

func (p *DetailPopup) View() string {
	return p.viewport.View() + "\n\n" + ui.HelpStyle.Render(helpLine(keys.Copy, keys.Cancel))
}
