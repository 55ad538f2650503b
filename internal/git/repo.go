// Package git implements repository access for twig.
//
// Reads go through go-git; anything that mutates the repository or talks to
// a remote runs the git binary so hooks, credential helpers and config are
// honored.
package git

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"

	"github.com/henri123lemoine/twig/internal/debug"
)

// Repo is a non-bare repository on disk.
type Repo struct {
	// Root is the work tree root directory.
	Root string

	// GitDir is the path to the .git directory.
	GitDir string

	// LogLimit caps the number of commits returned by Log.
	LogLimit int
}

var _ Backend = (*Repo)(nil)

// Open finds the repository containing path.
func Open(path string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	r, err := gogit.PlainOpenWithOptions(abs, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", abs, ErrNotRepository)
		}
		return nil, err
	}

	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", abs, err)
	}
	root := wt.Filesystem.Root()

	gitDir, err := runGitInDir(root, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return nil, err
	}

	debug.Event("git", "opened repository at %s", root)
	return &Repo{
		Root:     root,
		GitDir:   strings.TrimSpace(gitDir),
		LogLimit: 500,
	}, nil
}

// IsRepository reports whether path is inside a work tree.
func IsRepository(path string) bool {
	_, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	return err == nil
}

// Init creates a repository at path with an empty initial commit.
func Init(path string) (*Repo, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, err
	}
	if _, err := runGitInDir(path, "init"); err != nil {
		return nil, err
	}
	if _, err := runGitInDir(path, "commit", "--allow-empty", "-m", "Initial commit"); err != nil {
		return nil, err
	}
	return Open(path)
}

// open returns a fresh go-git handle so pack files written by the git binary
// since the last read are picked up.
func (r *Repo) open() (*gogit.Repository, error) {
	return gogit.PlainOpenWithOptions(r.Root, &gogit.PlainOpenOptions{EnableDotGitCommonDir: true})
}

func (r *Repo) run(args ...string) (string, error) {
	return runGitInDir(r.Root, args...)
}

// runGitInDir executes a git command in a specific directory.
func runGitInDir(dir string, args ...string) (string, error) {
	defer debug.Timed("git " + strings.Join(args, " "))()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", newCommandError(args, err, stderr.String())
	}

	return stdout.String(), nil
}
