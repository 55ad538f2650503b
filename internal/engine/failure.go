package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/henri123lemoine/twig/internal/git"
)

// Kind classifies failures shown to the user.
type Kind int

const (
	BackendFailure Kind = iota
	IoFailure
	CredentialFailure
	UnsupportedOperation
)

func (k Kind) String() string {
	switch k {
	case BackendFailure:
		return "Backend failure"
	case IoFailure:
		return "I/O failure"
	case CredentialFailure:
		return "Credential failure"
	case UnsupportedOperation:
		return "Unsupported operation"
	}
	return "Failure"
}

// ErrBadCredentials is returned when an operation's RetryBudget runs out.
var ErrBadCredentials = errors.New("bad credentials")

// Failure is a classified, user-facing error.
type Failure struct {
	Kind    Kind
	Message string

	// Code is the backend's exit code, or 0 when there is none.
	Code int
	Err  error
}

func (f *Failure) Error() string {
	if f.Code != 0 {
		return fmt.Sprintf("%s (code %d): %s", f.Kind, f.Code, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// AsFailure classifies err. A *Failure already in the chain is returned as is.
func AsFailure(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}

	f = &Failure{Kind: BackendFailure, Message: err.Error(), Err: err}

	var cmdErr *git.CommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode > 0 {
		f.Code = cmdErr.ExitCode
	}

	var pathErr *fs.PathError
	var sysErr *os.SyscallError
	switch {
	case errors.Is(err, ErrBadCredentials), errors.Is(err, git.ErrAuth):
		f.Kind = CredentialFailure
	case errors.Is(err, git.ErrNonFastForward):
		f.Kind = UnsupportedOperation
	case errors.As(err, &pathErr), errors.As(err, &sysErr):
		f.Kind = IoFailure
	}
	return f
}
