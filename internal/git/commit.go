package git

import (
	"errors"
	"os"
	"os/exec"
	"strings"
)

// Stage adds path to the index.
func (r *Repo) Stage(path string) error {
	_, err := r.run("add", "--", path)
	return err
}

// StageAll adds every change, including untracked files, to the index.
func (r *Repo) StageAll() error {
	_, err := r.run("add", "--all")
	return err
}

// Unstage removes path from the index, keeping work tree changes.
func (r *Repo) Unstage(path string) error {
	if !r.hasHead() {
		_, err := r.run("rm", "--cached", "--quiet", "--", path)
		return err
	}
	_, err := r.run("restore", "--staged", "--", path)
	return err
}

// Commit records the index with message.
func (r *Repo) Commit(message string) error {
	_, err := r.run("commit", "-m", message)
	return err
}

// EditorCommitCmd returns a git commit invocation that asks editor for the
// message. The caller hands it the terminal.
func (r *Repo) EditorCommitCmd(editor string) *exec.Cmd {
	cmd := exec.Command("git", "commit")
	cmd.Dir = r.Root
	cmd.Env = append(os.Environ(), "GIT_EDITOR="+editor)
	return cmd
}

// CherryPick applies ids onto HEAD in the given order.
func (r *Repo) CherryPick(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.run(append([]string{"cherry-pick"}, ids...)...)
	if err != nil {
		// Leave the repository as it was rather than mid-sequence.
		_, _ = r.run("cherry-pick", "--abort")
	}
	return err
}

// Revert creates a commit undoing id.
func (r *Repo) Revert(id string) error {
	_, err := r.run("revert", "--no-edit", id)
	if err != nil {
		_, _ = r.run("revert", "--abort")
	}
	return err
}

// Merge fast-forwards the current branch to rev. Anything that is not a
// fast-forward fails with ErrNonFastForward.
func (r *Repo) Merge(rev string) error {
	branch, err := r.CurrentBranch()
	if err != nil {
		return err
	}
	return r.fastForward(branch, rev)
}

type mergeAnalysis int

const (
	upToDate mergeAnalysis = iota
	fastForward
	diverged
)

// analyze compares local with upstream the way a merge would.
func (r *Repo) analyze(local, upstream string) (mergeAnalysis, error) {
	localHash, err := r.resolve(local)
	if err != nil {
		return 0, err
	}
	upstreamHash, err := r.resolve(upstream)
	if err != nil {
		return 0, err
	}
	if localHash == upstreamHash {
		return upToDate, nil
	}

	ahead, err := r.isAncestor(upstreamHash, localHash)
	if err != nil {
		return 0, err
	}
	if ahead {
		return upToDate, nil
	}

	ff, err := r.isAncestor(localHash, upstreamHash)
	if err != nil {
		return 0, err
	}
	if ff {
		return fastForward, nil
	}
	return diverged, nil
}

// fastForward moves branch to upstream when that is a fast-forward.
func (r *Repo) fastForward(branch, upstream string) error {
	analysis, err := r.analyze("refs/heads/"+branch, upstream)
	if err != nil {
		return err
	}
	switch analysis {
	case upToDate:
		return nil
	case diverged:
		return ErrNonFastForward
	}

	current, err := r.CurrentBranch()
	if err != nil && !errors.Is(err, ErrDetachedHead) {
		return err
	}
	if current == branch {
		_, err = r.run("merge", "--ff-only", upstream)
		return err
	}

	target, err := r.resolve(upstream)
	if err != nil {
		return err
	}
	_, err = r.run("update-ref", "-m", "twig: fast-forward", "refs/heads/"+branch, target)
	return err
}

func (r *Repo) resolve(rev string) (string, error) {
	output, err := r.run("rev-parse", "--verify", "--quiet", rev+"^{commit}")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

func (r *Repo) isAncestor(ancestor, descendant string) (bool, error) {
	_, err := r.run("merge-base", "--is-ancestor", ancestor, descendant)
	if err == nil {
		return true, nil
	}
	if exitCode(err) == 1 {
		return false, nil
	}
	return false, err
}

func (r *Repo) hasHead() bool {
	_, err := r.run("rev-parse", "--verify", "--quiet", "HEAD")
	return err == nil
}
