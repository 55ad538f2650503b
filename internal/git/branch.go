package git

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

// Branches returns local and remote-tracking branches, most recent commit first.
func (r *Repo) Branches() ([]Branch, error) {
	repo, err := r.open()
	if err != nil {
		return nil, err
	}

	var current plumbing.ReferenceName
	if head, err := repo.Head(); err == nil {
		current = head.Name()
	}

	refs, err := repo.References()
	if err != nil {
		return nil, err
	}
	defer refs.Close()

	var branches []Branch
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		// Skips symbolic refs such as origin/HEAD.
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		name := ref.Name()
		var kind BranchKind
		switch {
		case name.IsBranch():
			kind = LocalBranch
		case name.IsRemote():
			kind = RemoteBranch
		default:
			return nil
		}

		b := Branch{
			Name:      name.Short(),
			Kind:      kind,
			IsCurrent: name == current,
			Head:      ref.Hash().String(),
		}
		if c, err := repo.CommitObject(ref.Hash()); err == nil {
			b.Time = c.Committer.When
			b.Summary = toCommit(c).Summary
		}
		branches = append(branches, b)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(branches, func(i, j int) bool {
		if !branches[i].Time.Equal(branches[j].Time) {
			return branches[i].Time.After(branches[j].Time)
		}
		return branches[i].Name < branches[j].Name
	})
	return branches, nil
}

// Checkout switches to a branch, or detaches at a commit.
func (r *Repo) Checkout(ref string) error {
	_, err := r.run("checkout", ref)
	return err
}

// CheckoutRemote creates a local branch tracking the remote branch name
// (e.g. "origin/feature") and switches to it.
func (r *Repo) CheckoutRemote(name string) error {
	_, local, ok := strings.Cut(name, "/")
	if !ok || local == "" {
		return fmt.Errorf("%q is not a remote branch", name)
	}
	if r.branchExists(local) {
		return fmt.Errorf("%s: %w", local, ErrBranchExists)
	}
	_, err := r.run("checkout", "-b", local, "--track", name)
	return err
}

// CreateBranch creates a branch at HEAD and switches to it.
func (r *Repo) CreateBranch(name string) error {
	_, err := r.run("checkout", "-b", name)
	return err
}

// DeleteBranch deletes a fully merged local branch.
func (r *Repo) DeleteBranch(name string) error {
	_, err := r.run("branch", "-d", name)
	return err
}

func (r *Repo) branchExists(name string) bool {
	_, err := r.run("rev-parse", "--verify", "--quiet", "refs/heads/"+name)
	return err == nil
}
