// Package gittest provides an in-memory git.Backend for tests.
package gittest

import (
	"context"
	"os/exec"
	"strings"
	"sync"

	"github.com/henri123lemoine/twig/internal/git"
)

// Fake is a git.Backend backed by its exported fields. Mutating calls are
// recorded and fail with Err when it is set. Network methods run the
// matching func field when present.
type Fake struct {
	StatusEntries []git.FileEntry
	WorkingDiff   []git.DiffLine
	StagedDiff    []git.DiffLine
	LogCommits    []git.Commit
	BranchList    []git.Branch
	AheadOf       map[string][]git.Commit
	RemoteList    []string
	HeadState     git.HeadInfo

	// Current is the checked-out branch; empty means detached.
	Current string

	Err error

	// StatusErr fails Status, standing in for an unreadable repository.
	StatusErr error

	FetchFunc func(ctx context.Context, remote string, cb git.RemoteCallbacks) error
	PushFunc  func(ctx context.Context, remote, branch string, cb git.RemoteCallbacks) error
	PullFunc  func(ctx context.Context, remote, branch string, cb git.RemoteCallbacks) error

	mu    sync.Mutex
	calls []string
}

var _ git.Backend = (*Fake)(nil)

// New returns a fake on branch main.
func New() *Fake {
	return &Fake{Current: "main", AheadOf: make(map[string][]git.Commit)}
}

// Calls returns the recorded calls in order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *Fake) record(parts ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, strings.Join(parts, " "))
	return f.Err
}

func (f *Fake) Status() ([]git.FileEntry, error) {
	if f.StatusErr != nil {
		return nil, f.StatusErr
	}
	return f.StatusEntries, nil
}

func (f *Fake) Diff(staged bool) ([]git.DiffLine, error) {
	if staged {
		return f.StagedDiff, nil
	}
	return f.WorkingDiff, nil
}

func (f *Fake) Log() ([]git.Commit, error)      { return f.LogCommits, nil }
func (f *Fake) Branches() ([]git.Branch, error) { return f.BranchList, nil }
func (f *Fake) Head() (git.HeadInfo, error)     { return f.HeadState, nil }

func (f *Fake) CommitsNotOnHead(branch string) ([]git.Commit, error) {
	return append([]git.Commit(nil), f.AheadOf[branch]...), nil
}

func (f *Fake) Remotes() ([]string, error) { return f.RemoteList, nil }

func (f *Fake) AddRemote(name, url string) error {
	if err := f.record("add-remote", name, url); err != nil {
		return err
	}
	f.RemoteList = append(f.RemoteList, name)
	return nil
}

func (f *Fake) PrimaryRemote(configured string) string {
	if configured != "" {
		return configured
	}
	if len(f.RemoteList) > 0 {
		return f.RemoteList[0]
	}
	return "origin"
}

func (f *Fake) Checkout(ref string) error        { return f.record("checkout", ref) }
func (f *Fake) CheckoutRemote(name string) error { return f.record("checkout-remote", name) }
func (f *Fake) CreateBranch(name string) error   { return f.record("create", name) }
func (f *Fake) DeleteBranch(name string) error   { return f.record("delete", name) }
func (f *Fake) Stage(path string) error          { return f.record("stage", path) }
func (f *Fake) Unstage(path string) error        { return f.record("unstage", path) }
func (f *Fake) StageAll() error                  { return f.record("stage-all") }
func (f *Fake) Commit(message string) error      { return f.record("commit", message) }
func (f *Fake) Revert(id string) error           { return f.record("revert", id) }
func (f *Fake) Merge(rev string) error           { return f.record("merge", rev) }

func (f *Fake) CherryPick(ids []string) error {
	return f.record(append([]string{"cherry-pick"}, ids...)...)
}

// EditorCommitCmd returns a command that exits immediately.
func (f *Fake) EditorCommitCmd(editor string) *exec.Cmd {
	return exec.Command("true")
}

func (f *Fake) CurrentBranch() (string, error) {
	if f.Current == "" {
		return "", git.ErrDetachedHead
	}
	return f.Current, nil
}

func (f *Fake) Fetch(ctx context.Context, remote string, cb git.RemoteCallbacks) error {
	if f.FetchFunc != nil {
		return f.FetchFunc(ctx, remote, cb)
	}
	return f.record("fetch", remote)
}

func (f *Fake) Push(ctx context.Context, remote, branch string, cb git.RemoteCallbacks) error {
	if f.PushFunc != nil {
		return f.PushFunc(ctx, remote, branch, cb)
	}
	return f.record("push", remote, branch)
}

func (f *Fake) Pull(ctx context.Context, remote, branch string, cb git.RemoteCallbacks) error {
	if f.PullFunc != nil {
		return f.PullFunc(ctx, remote, branch, cb)
	}
	return f.record("pull", remote, branch)
}
