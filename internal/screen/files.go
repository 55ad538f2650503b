package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri123lemoine/twig/internal/engine"
	"github.com/henri123lemoine/twig/internal/git"
	"github.com/henri123lemoine/twig/internal/ui"
)

// Files lists the working tree status.
type Files struct {
	base
	deps    *Deps
	entries []git.FileEntry
	cursor  cursor
}

// NewFiles returns the FileStatus screen.
func NewFiles(deps *Deps) *Files {
	return &Files{deps: deps}
}

func (s *Files) Update() error {
	entries, err := s.deps.Backend.Status()
	if err != nil {
		return err
	}
	s.entries = entries
	s.cursor.SetSize(len(entries))
	return nil
}

func (s *Files) SetViewport(width, height int) {
	s.base.SetViewport(width, height)
	s.cursor.SetHeight(height)
}

// Selected returns the highlighted entry.
func (s *Files) Selected() (git.FileEntry, bool) {
	i, ok := s.cursor.Index()
	if !ok {
		return git.FileEntry{}, false
	}
	return s.entries[i], true
}

func (s *Files) HandleInput(msg tea.KeyMsg) error {
	switch {
	case key.Matches(msg, keys.Up):
		s.cursor.Move(-1)
	case key.Matches(msg, keys.Down):
		s.cursor.Move(1)
	case key.Matches(msg, keys.Top):
		s.cursor.Top()
	case key.Matches(msg, keys.Bottom):
		s.cursor.Bottom()

	case key.Matches(msg, keys.Stage):
		entry, ok := s.Selected()
		if !ok {
			return nil
		}
		if err := s.deps.Backend.Stage(entry.Path); err != nil {
			return err
		}
		s.deps.changed(engine.StatusStale)
	case key.Matches(msg, keys.Unstage):
		entry, ok := s.Selected()
		if !ok {
			return nil
		}
		if err := s.deps.Backend.Unstage(entry.Path); err != nil {
			return err
		}
		s.deps.changed(engine.StatusStale)
	case key.Matches(msg, keys.StageAll):
		if err := s.deps.Backend.StageAll(); err != nil {
			return err
		}
		s.deps.changed(engine.StatusStale)

	case key.Matches(msg, keys.Commit):
		s.deps.focus(engine.CommitPopup)
	case key.Matches(msg, keys.EditorCommit):
		s.deps.emit(engine.RunExternal{
			Cmd: s.deps.Backend.EditorCommitCmd(s.deps.Editor),
			OnExit: func(err error) engine.Event {
				if err != nil {
					return engine.ReportFailure{Err: err}
				}
				return engine.RepositoryChanged{Change: engine.LogStale}
			},
		})

	case key.Matches(msg, keys.Push):
		return s.push()
	case key.Matches(msg, keys.Fetch):
		return startFetch(s.deps)
	}
	return nil
}

func (s *Files) push() error {
	remotes, err := s.deps.Backend.Remotes()
	if err != nil {
		return err
	}
	if len(remotes) == 0 {
		s.deps.focus(engine.RemoteSetupPopup)
		return nil
	}
	branch, err := s.deps.Backend.CurrentBranch()
	if err != nil {
		return err
	}
	s.deps.Ops.RunPush(s.deps.remote(), branch)
	return nil
}

// startFetch fetches the primary remote, or opens the remote setup popup
// when there is none.
func startFetch(deps *Deps) error {
	remotes, err := deps.Backend.Remotes()
	if err != nil {
		return err
	}
	if len(remotes) == 0 {
		deps.focus(engine.RemoteSetupPopup)
		return nil
	}
	deps.Ops.RunFetch(deps.remote())
	return nil
}

func (s *Files) View() string {
	if len(s.entries) == 0 {
		return ui.HelpStyle.Render("Working tree clean")
	}

	start, end := s.cursor.Visible()
	sel, _ := s.cursor.Index()
	var b strings.Builder
	for i := start; i < end; i++ {
		e := s.entries[i]
		path := e.Path
		if e.OrigPath != "" {
			path = e.OrigPath + " → " + e.Path
		}
		line := ui.StatusLetter(e.Index, true) + ui.StatusLetter(e.Worktree, false) + " " + path
		b.WriteString(row(line, i == sel, s.width))
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// row renders one list row with the selection marker.
func row(content string, selected bool, width int) string {
	if selected {
		return ui.Truncate(ui.SelectedStyle.Render(ui.SymbolCursor+" ")+content, width)
	}
	return ui.Truncate("  "+content, width)
}
