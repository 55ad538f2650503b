package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/henri123lemoine/twig/internal/debug"
	"github.com/henri123lemoine/twig/internal/git"
)

// OpID identifies one background operation.
type OpID int

// Operations starts network operations. Screens depend on this interface.
type Operations interface {
	RunPush(remote, branch string)
	RunFetch(remote string)
	RunPullSelected(remote, branch string)
	RunPullHead(remote string)
}

// Manager runs network operations on their own goroutines and reports on a
// Bus. Run methods must be called from the event loop goroutine.
type Manager struct {
	ctx     context.Context
	network git.Network
	bus     *Bus
	nextID  OpID
	ceiling int
}

var _ Operations = (*Manager)(nil)

// NewManager returns a manager whose operations stop posting once ctx is done.
func NewManager(ctx context.Context, network git.Network, bus *Bus) *Manager {
	return &Manager{ctx: ctx, network: network, bus: bus, ceiling: CredentialCeiling}
}

// RunPush pushes branch to remote. Success returns focus to FileStatus.
func (m *Manager) RunPush(remote, branch string) {
	m.start("Pushing", FileStatus, func(ctx context.Context, cb git.RemoteCallbacks) error {
		return m.network.Push(ctx, remote, branch, cb)
	})
}

// RunFetch fetches remote.
func (m *Manager) RunFetch(remote string) {
	m.start("Fetching", Return{}, func(ctx context.Context, cb git.RemoteCallbacks) error {
		return m.network.Fetch(ctx, remote, cb)
	})
}

// RunPullSelected fetches remote and fast-forwards branch.
func (m *Manager) RunPullSelected(remote, branch string) {
	m.start("Pulling "+branch, Return{}, func(ctx context.Context, cb git.RemoteCallbacks) error {
		return m.network.Pull(ctx, remote, branch, cb)
	})
}

// RunPullHead fetches remote and fast-forwards the current branch.
func (m *Manager) RunPullHead(remote string) {
	m.start("Pulling", Return{}, func(ctx context.Context, cb git.RemoteCallbacks) error {
		branch, err := m.network.CurrentBranch()
		if err != nil {
			return err
		}
		return m.network.Pull(ctx, remote, branch, cb)
	})
}

func (m *Manager) start(label string, done Target, call func(context.Context, git.RemoteCallbacks) error) {
	m.nextID++
	op := &operation{
		id:     m.nextID,
		label:  label,
		ctx:    m.ctx,
		bus:    m.bus,
		budget: NewRetryBudget(m.ceiling),
		done:   done,
	}
	go op.run(call)
}

// operation is the state of one in-flight network call. Every field is
// touched only by the goroutine running it.
type operation struct {
	id     OpID
	label  string
	ctx    context.Context
	bus    *Bus
	budget *RetryBudget
	done   Target

	lastPercent  int
	transferDone bool

	// closed is set once the terminal event has been decided; nothing is
	// posted afterwards.
	closed bool
}

func (op *operation) run(call func(context.Context, git.RemoteCallbacks) error) {
	defer debug.Timed(fmt.Sprintf("op %d %s", op.id, op.label))()

	op.post(RequestFocus{Target: TransientMessage{Text: op.label}})

	err := call(op.ctx, git.RemoteCallbacks{
		Credentials: op.credentials,
		Progress:    op.progress,
	})
	if op.budget.Exhausted() && !errors.Is(err, ErrBadCredentials) {
		// The backend swallowed the abort; the budget still decides.
		err = fmt.Errorf("%w after %d attempts", ErrBadCredentials, op.budget.Attempts())
	}

	op.closed = true
	if err != nil {
		debug.Event("background", "op %d %s failed: %v", op.id, op.label, err)
		op.send(ReportFailure{Err: err})
		return
	}
	debug.Event("background", "op %d %s done", op.id, op.label)
	op.send(RequestFocus{Target: op.done})
}

// credentials is handed to the backend as the credential callback. It only
// records the attempt; the budget check decides whether to continue.
func (op *operation) credentials(string) error {
	op.budget.Spend()
	if op.budget.Exhausted() {
		op.closed = true
		return ErrBadCredentials
	}
	return nil
}

func (op *operation) progress(current, total int) {
	if op.closed || op.transferDone {
		return
	}
	percent := 100
	if total > 0 {
		percent = min(max(current*100/total, 0), 100)
	}
	percent = max(percent, op.lastPercent)
	op.lastPercent = percent
	if percent == 100 {
		op.transferDone = true
	}
	op.post(OperationProgress{Op: op.id, Label: op.label, Percent: percent})
}

func (op *operation) post(ev Event) {
	if op.closed {
		return
	}
	op.send(ev)
}

func (op *operation) send(ev Event) {
	if !op.bus.Post(op.ctx, ev) {
		debug.Event("background", "op %d: dropped %T after shutdown", op.id, ev)
	}
}
