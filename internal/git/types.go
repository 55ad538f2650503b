package git

import "time"

// FileEntry is one path reported by git status.
type FileEntry struct {
	Path string

	// OrigPath is the source path of a rename or copy.
	OrigPath string

	// Index and Worktree are the two porcelain status letters.
	Index    byte
	Worktree byte
}

// Untracked reports whether git does not track the path yet.
func (f FileEntry) Untracked() bool {
	return f.Index == '?'
}

// Staged reports whether the path has changes in the index.
func (f FileEntry) Staged() bool {
	return f.Index != ' ' && f.Index != '?' && f.Index != '!'
}

// Unstaged reports whether the path has changes not yet in the index.
func (f FileEntry) Unstaged() bool {
	return f.Worktree != ' ' && f.Worktree != '!'
}

// DiffOrigin classifies one line of a unified diff.
type DiffOrigin byte

const (
	OriginContext    DiffOrigin = ' '
	OriginAddition   DiffOrigin = '+'
	OriginDeletion   DiffOrigin = '-'
	OriginFileHeader DiffOrigin = 'F'
	OriginHunkHeader DiffOrigin = 'H'
)

// DiffLine is one rendered line of a diff.
type DiffLine struct {
	Origin  DiffOrigin
	Content string
}

// Commit represents a single commit.
type Commit struct {
	ID      string
	Author  string
	Email   string
	Time    time.Time
	Summary string
	Body    string
}

// ShortID returns the abbreviated commit id.
func (c Commit) ShortID() string {
	if len(c.ID) > 7 {
		return c.ID[:7]
	}
	return c.ID
}

// BranchKind distinguishes local from remote-tracking branches.
type BranchKind int

const (
	LocalBranch BranchKind = iota
	RemoteBranch
)

// Branch represents a Git branch.
type Branch struct {
	Name      string
	Kind      BranchKind
	IsCurrent bool
	Head      string
	Time      time.Time
	Summary   string
}

// HeadInfo describes the checked-out state of the repository.
type HeadInfo struct {
	// Branch is empty when HEAD is detached or unborn.
	Branch   string
	Detached bool
	Unborn   bool
	Ahead    int
	Behind   int

	// Upstream is empty when no tracking branch is configured.
	Upstream string
}
