package git

import (
	"errors"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// Log returns commits reachable from HEAD, newest first, up to LogLimit.
func (r *Repo) Log() ([]Commit, error) {
	repo, err := r.open()
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	iter, err := repo.Log(&gogit.LogOptions{From: head.Hash(), Order: gogit.LogOrderCommitterTime})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	limit := r.LogLimit
	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if limit > 0 && len(commits) >= limit {
			return storer.ErrStop
		}
		commits = append(commits, toCommit(c))
		return nil
	})
	return commits, err
}

// CommitsNotOnHead returns commits reachable from branch but not from HEAD,
// newest first.
func (r *Repo) CommitsNotOnHead(branch string) ([]Commit, error) {
	repo, err := r.open()
	if err != nil {
		return nil, err
	}

	onHead := make(map[plumbing.Hash]bool)
	if head, err := repo.Head(); err == nil {
		iter, err := repo.Log(&gogit.LogOptions{From: head.Hash()})
		if err != nil {
			return nil, err
		}
		err = iter.ForEach(func(c *object.Commit) error {
			onHead[c.Hash] = true
			return nil
		})
		iter.Close()
		if err != nil {
			return nil, err
		}
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(branch))
	if err != nil {
		return nil, err
	}
	iter, err := repo.Log(&gogit.LogOptions{From: *hash, Order: gogit.LogOrderCommitterTime})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if onHead[c.Hash] {
			return nil
		}
		commits = append(commits, toCommit(c))
		return nil
	})
	return commits, err
}

func toCommit(c *object.Commit) Commit {
	summary, body, _ := strings.Cut(strings.TrimSpace(c.Message), "\n")
	return Commit{
		ID:      c.Hash.String(),
		Author:  c.Author.Name,
		Email:   c.Author.Email,
		Time:    c.Author.When,
		Summary: strings.TrimSpace(summary),
		Body:    strings.TrimSpace(body),
	}
}
