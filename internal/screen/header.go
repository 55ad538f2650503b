package screen

import (
	"fmt"

	"github.com/henri123lemoine/twig/internal/git"
	"github.com/henri123lemoine/twig/internal/ui"
)

// Header summarizes HEAD and the working tree. It is drawn above the panes
// and never takes focus.
type Header struct {
	deps    *Deps
	head    git.HeadInfo
	staged  int
	changed int
}

// NewHeader returns the status header.
func NewHeader(deps *Deps) *Header {
	return &Header{deps: deps}
}

// Update reloads HEAD and file counts.
func (h *Header) Update() error {
	head, err := h.deps.Backend.Head()
	if err != nil {
		return err
	}
	entries, err := h.deps.Backend.Status()
	if err != nil {
		return err
	}
	h.head = head
	h.staged, h.changed = 0, 0
	for _, e := range entries {
		if e.Staged() {
			h.staged++
		}
		if e.Unstaged() {
			h.changed++
		}
	}
	return nil
}

// View renders the one-line summary.
func (h *Header) View() string {
	var branch string
	switch {
	case h.head.Detached:
		branch = ui.BranchStyle.Render("(detached)")
	case h.head.Unborn:
		branch = ui.BranchStyle.Render(h.head.Branch) + ui.HelpStyle.Render(" (no commits)")
	default:
		branch = ui.BranchStyle.Render(h.head.Branch)
	}

	out := ui.TitleStyle.Render("twig") + " " + branch
	if h.head.Upstream != "" {
		out += ui.HelpStyle.Render(" → " + h.head.Upstream)
	}
	if h.head.Ahead > 0 {
		out += " " + ui.AheadStyle.Render(fmt.Sprintf("%s%d", ui.SymbolAhead, h.head.Ahead))
	}
	if h.head.Behind > 0 {
		out += " " + ui.BehindStyle.Render(fmt.Sprintf("%s%d", ui.SymbolBehind, h.head.Behind))
	}
	out += ui.HelpStyle.Render(fmt.Sprintf("  %d staged, %d changed", h.staged, h.changed))
	return out
}
