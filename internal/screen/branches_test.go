package screen

import (
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri123lemoine/twig/internal/engine"
	"github.com/henri123lemoine/twig/internal/git"
)

func newBranches(t *testing.T, f *fixture) *Branches {
	t.Helper()
	now := f.deps.now()
	f.backend.BranchList = []git.Branch{
		{Name: "main", Kind: git.LocalBranch, IsCurrent: true, Time: now.Add(-time.Hour)},
		{Name: "feature/login", Kind: git.LocalBranch, Time: now.Add(-48 * time.Hour)},
		{Name: "fix-typo", Kind: git.LocalBranch, Time: now.Add(-72 * time.Hour)},
		{Name: "origin/main", Kind: git.RemoteBranch, Time: now.Add(-time.Hour)},
		{Name: "origin/release", Kind: git.RemoteBranch, Time: now.Add(-96 * time.Hour)},
	}
	s := NewBranches(f.deps)
	s.SetViewport(60, 10)
	if err := s.Update(); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	return s
}

func TestBranchesTabs(t *testing.T) {
	f := newFixture()
	s := newBranches(t, f)

	if b, _ := s.Selected(); b.Name != "main" {
		t.Errorf("Selected() = %q, want main", b.Name)
	}
	if err := press(s, runes("l"), runes("j")); err != nil {
		t.Fatal(err)
	}
	if s.Tab() != git.RemoteBranch {
		t.Fatalf("Tab() = %v, want remote", s.Tab())
	}
	if b, _ := s.Selected(); b.Name != "origin/release" {
		t.Errorf("Selected() = %q, want origin/release", b.Name)
	}
	if err := s.HandleInput(runes("h")); err != nil {
		t.Fatal(err)
	}
	if b, _ := s.Selected(); b.Name != "main" {
		t.Errorf("after switching back Selected() = %q, want main", b.Name)
	}
}

func TestBranchesCheckout(t *testing.T) {
	f := newFixture()
	s := newBranches(t, f)

	if err := press(s, runes("j"), runes("c"), runes("l"), runes("j"), runes("c")); err != nil {
		t.Fatal(err)
	}
	want := []string{"checkout feature/login", "checkout-remote origin/release"}
	if !reflect.DeepEqual(f.backend.Calls(), want) {
		t.Errorf("calls = %v, want %v", f.backend.Calls(), want)
	}
	for _, c := range changes(f.events.Drain()) {
		if c != engine.BranchesStale {
			t.Errorf("change = %v, want BranchesStale", c)
		}
	}
}

func TestBranchesFilter(t *testing.T) {
	f := newFixture()
	s := newBranches(t, f)

	if err := s.HandleInput(runes("/")); err != nil {
		t.Fatal(err)
	}
	if !s.Capturing() {
		t.Fatal("filter should capture input")
	}
	if err := press(s, runes("lgn")); err != nil {
		t.Fatal(err)
	}
	if b, ok := s.Selected(); !ok || b.Name != "feature/login" {
		t.Errorf("Selected() = %q, want feature/login", b.Name)
	}
	if err := s.HandleInput(keyOf(tea.KeyEnter)); err != nil {
		t.Fatal(err)
	}
	if s.Capturing() {
		t.Error("enter should stop capturing")
	}
	if !strings.Contains(s.View(), "feature/login") || strings.Contains(s.View(), "fix-typo") {
		t.Errorf("View() should only list the match:\n%s", s.View())
	}

	if err := press(s, runes("/"), keyOf(tea.KeyEsc)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(s.View(), "fix-typo") {
		t.Error("esc should clear the filter")
	}
}

func TestBranchesDeleteRemoteRefused(t *testing.T) {
	f := newFixture()
	s := newBranches(t, f)

	if err := press(s, runes("l"), runes("d")); err == nil {
		t.Error("deleting a remote branch should fail")
	}
	if len(f.backend.Calls()) != 0 {
		t.Errorf("calls = %v, want none", f.backend.Calls())
	}
}

func TestBranchesCherryPickOldestFirst(t *testing.T) {
	f := newFixture()
	s := newBranches(t, f)
	f.backend.AheadOf["feature/login"] = []git.Commit{commit("c3", "third"), commit("c2", "second"), commit("c1", "first")}

	if err := press(s, runes("j"), runes("C")); err != nil {
		t.Fatal(err)
	}
	targets := focusTargets(f.events.Drain())
	if len(targets) != 1 {
		t.Fatalf("targets = %v, want one", targets)
	}
	pick, ok := targets[0].(engine.CherryPick)
	if !ok {
		t.Fatalf("target = %T, want CherryPick", targets[0])
	}
	var ids []string
	for _, c := range pick.Candidates {
		ids = append(ids, c.ID)
	}
	if want := []string{"c1", "c2", "c3"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("candidates = %v, want %v", ids, want)
	}
}

func TestBranchesNetwork(t *testing.T) {
	f := newFixture()
	f.backend.RemoteList = []string{"origin"}
	s := newBranches(t, f)

	if err := press(s, runes("f"), runes("p"), runes("j"), runes("P"), runes("l"), runes("j"), runes("P")); err != nil {
		t.Fatal(err)
	}
	want := []string{"fetch origin", "pull-head origin", "pull origin feature/login", "pull origin release"}
	if !reflect.DeepEqual(f.ops.started, want) {
		t.Errorf("started = %v, want %v", f.ops.started, want)
	}
}

func TestBranchesMerge(t *testing.T) {
	f := newFixture()
	s := newBranches(t, f)

	if err := press(s, runes("j"), runes("m")); err != nil {
		t.Fatal(err)
	}
	if want := []string{"merge feature/login"}; !reflect.DeepEqual(f.backend.Calls(), want) {
		t.Errorf("calls = %v, want %v", f.backend.Calls(), want)
	}
}

func TestBranchesViewShowsAge(t *testing.T) {
	f := newFixture()
	s := newBranches(t, f)
	if view := s.View(); !strings.Contains(view, "2 days ago") {
		t.Errorf("View() missing relative age:\n%s", view)
	}
}
