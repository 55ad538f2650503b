package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/henri123lemoine/twig/internal/engine"
	"github.com/henri123lemoine/twig/internal/git"
	"github.com/henri123lemoine/twig/internal/ui"
)

// Log shows commit history with fuzzy search over summaries.
type Log struct {
	base
	deps *Deps

	commits []git.Commit
	matches []logMatch
	cursor  cursor

	search    textinput.Model
	searching bool
}

// logMatch is a visible commit and the summary runes the query matched.
type logMatch struct {
	commit  git.Commit
	indexes []int
}

// commitSource implements fuzzy.Source over commit summaries.
type commitSource []git.Commit

func (c commitSource) String(i int) string { return c[i].Summary }
func (c commitSource) Len() int            { return len(c) }

// NewLog returns the CommitLog screen.
func NewLog(deps *Deps) *Log {
	return &Log{deps: deps, search: newInput("search commits", 0)}
}

func (s *Log) Update() error {
	commits, err := s.deps.Backend.Log()
	if err != nil {
		return err
	}
	s.commits = commits
	s.applySearch()
	return nil
}

func (s *Log) SetViewport(width, height int) {
	s.base.SetViewport(width, height)
	s.search.Width = max(width-4, 1)
	s.cursor.SetHeight(s.listHeight())
}

// Capturing is true while the search term is being typed.
func (s *Log) Capturing() bool {
	return s.searching
}

// Selected returns the highlighted commit.
func (s *Log) Selected() (git.Commit, bool) {
	i, ok := s.cursor.Index()
	if !ok {
		return git.Commit{}, false
	}
	return s.matches[i].commit, true
}

func (s *Log) listHeight() int {
	h := s.height
	if s.searching || s.search.Value() != "" {
		h--
	}
	return max(h, 0)
}

func (s *Log) applySearch() {
	query := s.search.Value()
	s.matches = s.matches[:0]
	if query == "" {
		for _, c := range s.commits {
			s.matches = append(s.matches, logMatch{commit: c})
		}
	} else {
		for _, m := range fuzzy.FindFrom(query, commitSource(s.commits)) {
			s.matches = append(s.matches, logMatch{commit: s.commits[m.Index], indexes: m.MatchedIndexes})
		}
	}
	s.cursor.SetSize(len(s.matches))
	s.cursor.SetHeight(s.listHeight())
}

func (s *Log) HandleInput(msg tea.KeyMsg) error {
	if s.searching {
		switch {
		case key.Matches(msg, keys.Confirm):
			s.searching = false
			s.search.Blur()
		case key.Matches(msg, keys.Cancel):
			s.searching = false
			s.search.Blur()
			s.search.SetValue("")
		default:
			s.search = updateInput(s.search, msg)
			s.cursor.Top()
		}
		s.applySearch()
		return nil
	}

	half := max(s.listHeight()/2, 1)
	switch {
	case key.Matches(msg, keys.Up):
		s.cursor.Move(-1)
	case key.Matches(msg, keys.Down):
		s.cursor.Move(1)
	case key.Matches(msg, keys.HalfUp):
		s.cursor.Move(-half)
	case key.Matches(msg, keys.HalfDown):
		s.cursor.Move(half)
	case key.Matches(msg, keys.Top):
		s.cursor.Top()
	case key.Matches(msg, keys.Bottom):
		s.cursor.Bottom()
	case key.Matches(msg, keys.Filter):
		s.searching = true
		s.search.Focus()
		s.cursor.SetHeight(s.listHeight())

	case key.Matches(msg, keys.Checkout):
		c, ok := s.Selected()
		if !ok {
			return nil
		}
		if err := s.deps.Backend.Checkout(c.ID); err != nil {
			return err
		}
		s.deps.changed(engine.BranchesStale)
	case key.Matches(msg, keys.Revert):
		c, ok := s.Selected()
		if !ok {
			return nil
		}
		if err := s.deps.Backend.Revert(c.ID); err != nil {
			return err
		}
		s.deps.changed(engine.LogStale)
	case key.Matches(msg, keys.Copy):
		c, ok := s.Selected()
		if !ok {
			return nil
		}
		if err := s.deps.copy(c.ID); err != nil {
			return err
		}
		s.deps.focus(engine.TransientMessage{Text: "Copied " + c.ShortID()})
	case key.Matches(msg, keys.Detail):
		if c, ok := s.Selected(); ok {
			s.deps.focus(engine.CommitDetail{Commit: c})
		}
	}
	return nil
}

func (s *Log) View() string {
	var lines []string
	if s.searching || s.search.Value() != "" {
		lines = append(lines, s.search.View())
	}
	if len(s.matches) == 0 {
		if len(s.commits) == 0 {
			lines = append(lines, ui.HelpStyle.Render("  No commits yet"))
		} else {
			lines = append(lines, ui.HelpStyle.Render("  No matching commits"))
		}
		return strings.Join(lines, "\n")
	}

	start, end := s.cursor.Visible()
	sel, _ := s.cursor.Index()
	for i := start; i < end; i++ {
		m := s.matches[i]
		line := ui.HashStyle.Render(m.commit.ShortID()) + " " + highlight(m.commit.Summary, m.indexes)
		lines = append(lines, row(line, i == sel, s.width))
	}
	return strings.Join(lines, "\n")
}

// highlight styles the matched byte offsets of s.
func highlight(s string, indexes []int) string {
	if len(indexes) == 0 {
		return ui.NormalStyle.Render(s)
	}
	hit := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		hit[i] = true
	}
	var b strings.Builder
	for i, r := range s {
		if hit[i] {
			b.WriteString(ui.MarkedStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
