package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri123lemoine/twig/internal/engine"
	"github.com/henri123lemoine/twig/internal/git"
	"github.com/henri123lemoine/twig/internal/ui"
)

// CherryPickPopup lets the user pick commits from another branch.
type CherryPickPopup struct {
	base
	deps       *Deps
	candidates []git.Commit
	marked     map[int]bool
	cursor     cursor
}

// NewCherryPickPopup returns the cherry-pick popup.
func NewCherryPickPopup(deps *Deps) *CherryPickPopup {
	return &CherryPickPopup{deps: deps, marked: make(map[int]bool)}
}

func (p *CherryPickPopup) Update() error { return nil }

// SetCandidates replaces the offered commits and clears the selection.
func (p *CherryPickPopup) SetCandidates(commits []git.Commit) {
	p.candidates = commits
	p.marked = make(map[int]bool)
	p.cursor = cursor{height: p.cursor.height}
	p.cursor.SetSize(len(commits))
}

func (p *CherryPickPopup) SetViewport(width, height int) {
	p.base.SetViewport(width, height)
	p.cursor.SetHeight(max(height-2, 1))
}

// Marked returns the selected commit ids in list order.
func (p *CherryPickPopup) Marked() []string {
	var ids []string
	for i, c := range p.candidates {
		if p.marked[i] {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

func (p *CherryPickPopup) HandleInput(msg tea.KeyMsg) error {
	switch {
	case key.Matches(msg, keys.Cancel):
		p.deps.focus(engine.BranchList)
	case key.Matches(msg, keys.Up):
		p.cursor.Move(-1)
	case key.Matches(msg, keys.Down):
		p.cursor.Move(1)
	case key.Matches(msg, keys.Mark):
		if i, ok := p.cursor.Index(); ok {
			p.marked[i] = !p.marked[i]
		}
	case key.Matches(msg, keys.Confirm):
		ids := p.Marked()
		if len(ids) == 0 {
			return nil
		}
		if err := p.deps.Backend.CherryPick(ids); err != nil {
			return err
		}
		p.deps.changed(engine.LogStale)
		p.deps.focus(engine.BranchList)
	}
	return nil
}

func (p *CherryPickPopup) View() string {
	if len(p.candidates) == 0 {
		return ui.HelpStyle.Render("No commits to cherry-pick") + "\n\n" + ui.HelpStyle.Render(helpLine(keys.Cancel))
	}

	var lines []string
	start, end := p.cursor.Visible()
	sel, _ := p.cursor.Index()
	for i := start; i < end; i++ {
		c := p.candidates[i]
		mark := ui.SymbolUnmarked
		if p.marked[i] {
			mark = ui.MarkedStyle.Render(ui.SymbolMarked)
		}
		line := mark + " " + ui.HashStyle.Render(c.ShortID()) + " " + c.Summary
		lines = append(lines, row(line, i == sel, p.width))
	}
	lines = append(lines, "", ui.HelpStyle.Render(helpLine(keys.Mark, keys.Confirm, keys.Cancel)))
	return strings.Join(lines, "\n")
}
