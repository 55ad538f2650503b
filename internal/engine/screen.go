package engine

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri123lemoine/twig/internal/git"
)

// Screen is implemented by every browsable view and popup.
type Screen interface {
	// Update refreshes the screen from the repository. Called every tick for
	// non-popup screens.
	Update() error

	// Focus is called with false when the screen loses focus and true when
	// it gains it.
	Focus(focused bool)

	// HandleInput handles one key while the screen is focused.
	HandleInput(key tea.KeyMsg) error

	// SetViewport gives the screen the size of its drawing area.
	SetViewport(width, height int)

	// View renders the screen into its viewport.
	View() string
}

// InputCapturer is implemented by screens that sometimes need every key,
// for example while typing a search term.
type InputCapturer interface {
	Capturing() bool
}

// Payload setters, one per payload-carrying Target.
type (
	CandidateSetter interface{ SetCandidates([]git.Commit) }
	CommitSetter    interface{ SetCommit(git.Commit) }
	MessageSetter   interface{ SetMessage(string) }
	FailureSetter   interface{ SetFailure(*Failure) }
)

// ProgressSink receives OperationProgress events.
type ProgressSink interface {
	SetProgress(label string, percent int)
}
