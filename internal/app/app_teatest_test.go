package app

import (
	"bytes"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/henri123lemoine/twig/internal/config"
	"github.com/henri123lemoine/twig/internal/engine"
	"github.com/henri123lemoine/twig/internal/git"
	"github.com/henri123lemoine/twig/internal/git/gittest"
)

func TestProgramEndToEnd(t *testing.T) {
	fake := gittest.New()
	fake.StatusEntries = []git.FileEntry{{Path: "README.md", Index: 'A', Worktree: ' '}}
	fake.BranchList = []git.Branch{
		{Name: "main", Kind: git.LocalBranch, IsCurrent: true},
		{Name: "topic", Kind: git.LocalBranch},
	}
	fake.HeadState = git.HeadInfo{Branch: "main"}
	fake.RemoteList = []string{"origin"}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := New(ctx, config.DefaultConfig(), fake, &engine.PauseFlag{})

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("README.md"))
	}, teatest.WithDuration(2*time.Second))

	// Focus branches, move to topic and check it out.
	tm.Type("2")
	tm.Type("j")
	tm.Type("c")
	// Fetch goes through the background manager and returns focus.
	tm.Type("f")

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		for _, c := range fake.Calls() {
			if c == "fetch origin" {
				return true
			}
		}
		return false
	}, teatest.WithDuration(2*time.Second))

	// ctrl+c quits even if the fetch popup still has focus.
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final := tm.FinalModel(t).(*Model)
	if !final.quitting {
		t.Error("model should have quit")
	}
	calls := fake.Calls()
	if len(calls) < 2 || calls[0] != "checkout topic" {
		t.Errorf("calls = %v, want checkout topic then fetch origin", calls)
	}
}
