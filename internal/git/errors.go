package git

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var (
	// ErrNonFastForward is returned when a pull or merge would need a real merge.
	ErrNonFastForward = errors.New("not a fast-forward; merge manually")

	// ErrAuth is returned when the remote rejected our credentials.
	ErrAuth = errors.New("authentication failed")

	// ErrBranchExists is returned when checking out a remote branch whose local
	// counterpart already exists.
	ErrBranchExists = errors.New("local branch already exists")

	// ErrNotRepository is returned when a path is not inside a work tree.
	ErrNotRepository = errors.New("not a git repository")

	// ErrDetachedHead is returned by operations that need a current branch.
	ErrDetachedHead = errors.New("HEAD is not on a branch")

	// ErrInvalidRemote is returned when a remote name or URL is rejected.
	ErrInvalidRemote = errors.New("invalid remote")
)

// CommandError is a failed git invocation with its captured stderr.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
	}
	return fmt.Sprintf("git %s: %v: %s", strings.Join(e.Args, " "), e.Err, msg)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func newCommandError(args []string, err error, stderr string) error {
	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	cmdErr := &CommandError{Args: args, ExitCode: code, Stderr: stderr, Err: err}
	if isAuthFailure(stderr) {
		return fmt.Errorf("%w: %w", ErrAuth, cmdErr)
	}
	return cmdErr
}

var authMarkers = []string{
	"Authentication failed",
	"could not read Username",
	"could not read Password",
	"terminal prompts disabled",
	"Permission denied (publickey",
	"Host key verification failed",
	"HTTP Basic: Access denied",
	"Invalid username or password",
}

func isAuthFailure(stderr string) bool {
	for _, m := range authMarkers {
		if strings.Contains(stderr, m) {
			return true
		}
	}
	return false
}

// exitCode returns the exit status of a failed git command, or -1.
func exitCode(err error) int {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}
	return -1
}
