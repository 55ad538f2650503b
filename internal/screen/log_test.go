package screen

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri123lemoine/twig/internal/engine"
	"github.com/henri123lemoine/twig/internal/git"
)

func newLog(t *testing.T, f *fixture) *Log {
	t.Helper()
	f.backend.LogCommits = []git.Commit{
		commit("aaaaaaaa1", "Add login form"),
		commit("bbbbbbbb2", "Fix typo in README"),
		commit("cccccccc3", "Refactor parser"),
	}
	s := NewLog(f.deps)
	s.SetViewport(60, 10)
	if err := s.Update(); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	return s
}

func TestLogActions(t *testing.T) {
	f := newFixture()
	s := newLog(t, f)

	if err := press(s, runes("j"), runes("c"), runes("r"), runes("y")); err != nil {
		t.Fatal(err)
	}
	if want := []string{"checkout bbbbbbbb2", "revert bbbbbbbb2"}; !reflect.DeepEqual(f.backend.Calls(), want) {
		t.Errorf("calls = %v, want %v", f.backend.Calls(), want)
	}
	if want := []string{"bbbbbbbb2"}; !reflect.DeepEqual(f.copied, want) {
		t.Errorf("copied = %v, want %v", f.copied, want)
	}
	if got := changes(f.events.Drain()); !reflect.DeepEqual(got, []engine.Change{engine.BranchesStale, engine.LogStale}) {
		t.Errorf("changes = %v", got)
	}
}

func TestLogDetail(t *testing.T) {
	f := newFixture()
	s := newLog(t, f)

	if err := press(s, runes("G"), keyOf(tea.KeyEnter)); err != nil {
		t.Fatal(err)
	}
	targets := focusTargets(f.events.Drain())
	if len(targets) != 1 {
		t.Fatalf("targets = %v, want one", targets)
	}
	if d, ok := targets[0].(engine.CommitDetail); !ok || d.Commit.ID != "cccccccc3" {
		t.Errorf("target = %#v, want CommitDetail of cccccccc3", targets[0])
	}
}

func TestLogSearch(t *testing.T) {
	f := newFixture()
	s := newLog(t, f)

	if err := press(s, runes("/"), runes("rdme")); err != nil {
		t.Fatal(err)
	}
	if !s.Capturing() {
		t.Fatal("search should capture input")
	}
	if c, ok := s.Selected(); !ok || c.ID != "bbbbbbbb2" {
		t.Errorf("Selected() = %q, want bbbbbbbb2", c.ID)
	}
	if len(f.backend.Calls()) != 0 {
		t.Errorf("typing while searching ran %v", f.backend.Calls())
	}

	if err := s.HandleInput(keyOf(tea.KeyEnter)); err != nil {
		t.Fatal(err)
	}
	if s.Capturing() {
		t.Error("enter should end typing")
	}
	if strings.Contains(s.View(), "Refactor") {
		t.Error("non-matching commits should be hidden")
	}

	if err := press(s, runes("/"), runes("zzz")); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(s.View(), "No matching commits") {
		t.Errorf("View() = %q", s.View())
	}
	if err := s.HandleInput(keyOf(tea.KeyEsc)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(s.View(), "Refactor") {
		t.Error("esc should clear the search")
	}
}

func TestLogHalfPage(t *testing.T) {
	f := newFixture()
	for i := 0; i < 30; i++ {
		f.backend.LogCommits = append(f.backend.LogCommits, commit(strings.Repeat("a", 8), "c"))
	}
	s := NewLog(f.deps)
	s.SetViewport(40, 10)
	if err := s.Update(); err != nil {
		t.Fatal(err)
	}

	if err := s.HandleInput(keyOf(tea.KeyCtrlD)); err != nil {
		t.Fatal(err)
	}
	if i, _ := s.cursor.Index(); i != 5 {
		t.Errorf("after ctrl+d index = %d, want 5", i)
	}
	if err := s.HandleInput(keyOf(tea.KeyCtrlU)); err != nil {
		t.Fatal(err)
	}
	if i, _ := s.cursor.Index(); i != 0 {
		t.Errorf("after ctrl+u index = %d, want 0", i)
	}
}

func TestHighlight(t *testing.T) {
	if got := highlight("héllo", []int{0, 3}); !strings.Contains(got, "é") || !strings.Contains(got, "o") {
		t.Errorf("highlight() = %q", got)
	}
}
