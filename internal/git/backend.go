package git

import (
	"context"
	"os/exec"
)

// RemoteCallbacks are invoked synchronously on the goroutine that called a
// network operation.
type RemoteCallbacks struct {
	// Credentials is called each time the remote rejects authentication,
	// before the next attempt. A non-nil error aborts the operation and is
	// returned wrapped.
	Credentials func(remote string) error

	// Progress reports transferred objects out of total.
	Progress func(current, total int)
}

func (cb RemoteCallbacks) progress(current, total int) {
	if cb.Progress != nil {
		cb.Progress(current, total)
	}
}

// Backend is everything the dashboard needs from a repository.
type Backend interface {
	Status() ([]FileEntry, error)
	Diff(staged bool) ([]DiffLine, error)
	Log() ([]Commit, error)
	Branches() ([]Branch, error)
	Head() (HeadInfo, error)
	CommitsNotOnHead(branch string) ([]Commit, error)

	Remotes() ([]string, error)
	AddRemote(name, url string) error
	PrimaryRemote(configured string) string

	Checkout(ref string) error
	CheckoutRemote(name string) error
	CreateBranch(name string) error
	DeleteBranch(name string) error
	Stage(path string) error
	Unstage(path string) error
	StageAll() error
	Commit(message string) error
	EditorCommitCmd(editor string) *exec.Cmd
	CherryPick(ids []string) error
	Revert(id string) error
	Merge(rev string) error

	Network
}

// Network is the subset of Backend that talks to remotes.
type Network interface {
	Fetch(ctx context.Context, remote string, cb RemoteCallbacks) error
	Push(ctx context.Context, remote, branch string, cb RemoteCallbacks) error
	Pull(ctx context.Context, remote, branch string, cb RemoteCallbacks) error
	CurrentBranch() (string, error)
}
