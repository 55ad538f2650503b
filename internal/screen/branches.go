package screen

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/henri123lemoine/twig/internal/engine"
	"github.com/henri123lemoine/twig/internal/git"
	"github.com/henri123lemoine/twig/internal/ui"
)

// Branches lists local and remote branches on two tabs.
type Branches struct {
	base
	deps *Deps

	all     []git.Branch
	visible []git.Branch
	tab     git.BranchKind
	cursor  cursor

	filter    textinput.Model
	filtering bool
}

// NewBranches returns the BranchList screen.
func NewBranches(deps *Deps) *Branches {
	return &Branches{deps: deps, filter: newInput("filter branches", 0)}
}

func (s *Branches) Update() error {
	branches, err := s.deps.Backend.Branches()
	if err != nil {
		return err
	}
	s.all = branches
	s.applyFilter()
	return nil
}

func (s *Branches) SetViewport(width, height int) {
	s.base.SetViewport(width, height)
	s.filter.Width = max(width-4, 1)
	s.cursor.SetHeight(s.listHeight())
}

// Capturing is true while the filter is being typed.
func (s *Branches) Capturing() bool {
	return s.filtering
}

// Tab returns the shown branch kind.
func (s *Branches) Tab() git.BranchKind {
	return s.tab
}

// Selected returns the highlighted branch.
func (s *Branches) Selected() (git.Branch, bool) {
	i, ok := s.cursor.Index()
	if !ok {
		return git.Branch{}, false
	}
	return s.visible[i], true
}

// listHeight is the viewport minus the tab bar and filter line.
func (s *Branches) listHeight() int {
	h := s.height - 1
	if s.filtering || s.filter.Value() != "" {
		h--
	}
	return max(h, 0)
}

func (s *Branches) applyFilter() {
	query := strings.TrimSpace(s.filter.Value())

	var names []string
	var pool []git.Branch
	for _, b := range s.all {
		if b.Kind == s.tab {
			pool = append(pool, b)
			names = append(names, b.Name)
		}
	}

	if query == "" {
		s.visible = pool
	} else {
		matched := make(map[int]bool)
		for _, r := range fuzzy.RankFindNormalizedFold(query, names) {
			matched[r.OriginalIndex] = true
		}
		s.visible = nil
		for i, b := range pool {
			if matched[i] {
				s.visible = append(s.visible, b)
			}
		}
	}
	s.cursor.SetSize(len(s.visible))
	s.cursor.SetHeight(s.listHeight())
}

func (s *Branches) switchTab(kind git.BranchKind) {
	if s.tab == kind {
		return
	}
	s.tab = kind
	s.cursor.Top()
	s.applyFilter()
}

func (s *Branches) HandleInput(msg tea.KeyMsg) error {
	if s.filtering {
		s.handleFilterKey(msg)
		return nil
	}

	switch {
	case key.Matches(msg, keys.Up):
		s.cursor.Move(-1)
	case key.Matches(msg, keys.Down):
		s.cursor.Move(1)
	case key.Matches(msg, keys.Top):
		s.cursor.Top()
	case key.Matches(msg, keys.Bottom):
		s.cursor.Bottom()
	case key.Matches(msg, keys.PrevTab):
		s.switchTab(git.LocalBranch)
	case key.Matches(msg, keys.NextTab):
		s.switchTab(git.RemoteBranch)
	case key.Matches(msg, keys.Filter):
		s.filtering = true
		s.filter.Focus()
		s.cursor.SetHeight(s.listHeight())

	case key.Matches(msg, keys.NewBranch):
		s.deps.focus(engine.BranchCreatePopup)
	case key.Matches(msg, keys.Fetch):
		return startFetch(s.deps)
	case key.Matches(msg, keys.PullHead):
		return s.withRemote(func(remote string) {
			s.deps.Ops.RunPullHead(remote)
		})

	case key.Matches(msg, keys.Checkout):
		return s.onSelected(s.checkout)
	case key.Matches(msg, keys.Delete):
		return s.onSelected(s.delete)
	case key.Matches(msg, keys.PullBranch):
		return s.onSelected(s.pull)
	case key.Matches(msg, keys.Merge):
		return s.onSelected(s.merge)
	case key.Matches(msg, keys.CherryPick):
		return s.onSelected(s.cherryPick)
	}
	return nil
}

func (s *Branches) handleFilterKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, keys.Confirm):
		s.filtering = false
		s.filter.Blur()
	case key.Matches(msg, keys.Cancel):
		s.filtering = false
		s.filter.Blur()
		s.filter.SetValue("")
	default:
		s.filter = updateInput(s.filter, msg)
		s.cursor.Top()
	}
	s.applyFilter()
}

func (s *Branches) onSelected(fn func(git.Branch) error) error {
	b, ok := s.Selected()
	if !ok {
		return nil
	}
	return fn(b)
}

func (s *Branches) withRemote(fn func(remote string)) error {
	remotes, err := s.deps.Backend.Remotes()
	if err != nil {
		return err
	}
	if len(remotes) == 0 {
		s.deps.focus(engine.RemoteSetupPopup)
		return nil
	}
	fn(s.deps.remote())
	return nil
}

func (s *Branches) checkout(b git.Branch) error {
	var err error
	if b.Kind == git.RemoteBranch {
		err = s.deps.Backend.CheckoutRemote(b.Name)
	} else {
		err = s.deps.Backend.Checkout(b.Name)
	}
	if err != nil {
		return err
	}
	s.deps.changed(engine.BranchesStale)
	return nil
}

func (s *Branches) delete(b git.Branch) error {
	if b.Kind == git.RemoteBranch {
		return fmt.Errorf("cannot delete remote branch %s", b.Name)
	}
	if err := s.deps.Backend.DeleteBranch(b.Name); err != nil {
		return err
	}
	s.deps.changed(engine.BranchesStale)
	return nil
}

func (s *Branches) pull(b git.Branch) error {
	name := b.Name
	if b.Kind == git.RemoteBranch {
		_, name, _ = strings.Cut(name, "/")
	}
	return s.withRemote(func(remote string) {
		s.deps.Ops.RunPullSelected(remote, name)
	})
}

func (s *Branches) merge(b git.Branch) error {
	if err := s.deps.Backend.Merge(b.Name); err != nil {
		return err
	}
	s.deps.changed(engine.BranchesStale)
	s.deps.changed(engine.LogStale)
	return nil
}

// cherryPick offers the commits on b missing from HEAD, oldest first so
// that picking them in list order replays history forward.
func (s *Branches) cherryPick(b git.Branch) error {
	commits, err := s.deps.Backend.CommitsNotOnHead(b.Name)
	if err != nil {
		return err
	}
	slices.Reverse(commits)
	s.deps.focus(engine.CherryPick{Candidates: commits})
	return nil
}

func (s *Branches) View() string {
	var tabs string
	for _, t := range []struct {
		kind  git.BranchKind
		label string
	}{{git.LocalBranch, "Local"}, {git.RemoteBranch, "Remote"}} {
		if t.kind == s.tab {
			tabs += ui.TabActiveStyle.Render(t.label)
		} else {
			tabs += ui.TabStyle.Render(t.label)
		}
	}

	lines := []string{tabs}
	if s.filtering || s.filter.Value() != "" {
		lines = append(lines, s.filter.View())
	}

	if len(s.visible) == 0 {
		lines = append(lines, ui.HelpStyle.Render("  No branches"))
		return strings.Join(lines, "\n")
	}

	now := s.deps.now()
	start, end := s.cursor.Visible()
	sel, _ := s.cursor.Index()
	for i := start; i < end; i++ {
		b := s.visible[i]
		name := ui.BranchStyle.Render(b.Name)
		if b.IsCurrent {
			name = ui.CurrentStyle.Render(ui.SymbolCurrent + " " + b.Name)
		}
		line := name
		if !b.Time.IsZero() {
			line += " " + ui.HelpStyle.Render(humanize.RelTime(b.Time, now, "ago", "from now"))
		}
		if b.Summary != "" {
			line += " " + ui.NormalStyle.Render(b.Summary)
		}
		lines = append(lines, row(line, i == sel, s.width))
	}
	return strings.Join(lines, "\n")
}
