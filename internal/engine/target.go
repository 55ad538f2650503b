package engine

import "github.com/henri123lemoine/twig/internal/git"

// ScreenID names a registered Screen. Every ScreenID is also a payload-free
// Target.
type ScreenID int

const (
	None ScreenID = iota
	FileStatus
	BranchList
	CommitLog
	WorkingDiff
	StagedDiff
	CommitPopup
	BranchCreatePopup
	RemoteSetupPopup
	ErrorPopup
	CherryPickPopup
	CommitDetailPopup
	TransientMessagePopup
)

var screenNames = map[ScreenID]string{
	None:                  "None",
	FileStatus:            "FileStatus",
	BranchList:            "BranchList",
	CommitLog:             "CommitLog",
	WorkingDiff:           "WorkingDiff",
	StagedDiff:            "StagedDiff",
	CommitPopup:           "CommitPopup",
	BranchCreatePopup:     "BranchCreatePopup",
	RemoteSetupPopup:      "RemoteSetupPopup",
	ErrorPopup:            "ErrorPopup",
	CherryPickPopup:       "CherryPickPopup",
	CommitDetailPopup:     "CommitDetailPopup",
	TransientMessagePopup: "TransientMessagePopup",
}

func (id ScreenID) String() string {
	if name, ok := screenNames[id]; ok {
		return name
	}
	return "ScreenID(?)"
}

// IsPopup reports whether the screen is modal while focused.
func (id ScreenID) IsPopup() bool {
	return id >= CommitPopup
}

// Target names what should own keyboard focus and carries any payload the
// Screen needs before it gains focus. The set of implementations is closed.
type Target interface {
	Screen() ScreenID
	inject(Screen)
}

// Screen lets a bare ScreenID be used as a Target.
func (id ScreenID) Screen() ScreenID { return id }

func (ScreenID) inject(Screen) {}

// CherryPick focuses the cherry-pick popup with the commits to choose from.
type CherryPick struct {
	Candidates []git.Commit
}

func (CherryPick) Screen() ScreenID { return CherryPickPopup }

func (t CherryPick) inject(s Screen) {
	if setter, ok := s.(CandidateSetter); ok {
		setter.SetCandidates(t.Candidates)
	}
}

// CommitDetail focuses the detail popup for one commit.
type CommitDetail struct {
	Commit git.Commit
}

func (CommitDetail) Screen() ScreenID { return CommitDetailPopup }

func (t CommitDetail) inject(s Screen) {
	if setter, ok := s.(CommitSetter); ok {
		setter.SetCommit(t.Commit)
	}
}

// TransientMessage focuses the message popup with text.
type TransientMessage struct {
	Text string
}

func (TransientMessage) Screen() ScreenID { return TransientMessagePopup }

func (t TransientMessage) inject(s Screen) {
	if setter, ok := s.(MessageSetter); ok {
		setter.SetMessage(t.Text)
	}
}

// ShowFailure focuses the error popup with f.
type ShowFailure struct {
	Failure *Failure
}

func (ShowFailure) Screen() ScreenID { return ErrorPopup }

func (t ShowFailure) inject(s Screen) {
	if setter, ok := s.(FailureSetter); ok {
		setter.SetFailure(t.Failure)
	}
}

// Return focuses whichever non-popup screen was focused last.
type Return struct{}

func (Return) Screen() ScreenID { return None }

func (Return) inject(Screen) {}
