package git

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-git/go-git/v5/config"

	"github.com/henri123lemoine/twig/internal/debug"
)

var (
	remoteURLPattern  = regexp.MustCompile(`^(([A-Za-z0-9]+@|http(|s)://)|(http(|s)://[A-Za-z0-9]+@))([A-Za-z0-9.]+(:\d+)?)(?::|/)([\d/\w.-]+?)(\.git){1}$`)
	remoteNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
	progressPattern   = regexp.MustCompile(`(\d+)% \((\d+)/(\d+)\)`)
)

// ValidateRemote checks a remote name and URL before they are added.
func ValidateRemote(name, url string) error {
	if !remoteNamePattern.MatchString(name) {
		return fmt.Errorf("%w: name %q may only contain letters, digits, '-', '_' and '.'", ErrInvalidRemote, name)
	}
	if !remoteURLPattern.MatchString(url) {
		return fmt.Errorf("%w: %q is not a git URL", ErrInvalidRemote, url)
	}
	return nil
}

// Remotes returns the configured remote names, sorted.
func (r *Repo) Remotes() ([]string, error) {
	repo, err := r.open()
	if err != nil {
		return nil, err
	}
	remotes, err := repo.Remotes()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(remotes))
	for _, rem := range remotes {
		names = append(names, rem.Config().Name)
	}
	sort.Strings(names)
	return names, nil
}

// AddRemote validates and adds a remote.
func (r *Repo) AddRemote(name, url string) error {
	if err := ValidateRemote(name, url); err != nil {
		return err
	}
	repo, err := r.open()
	if err != nil {
		return err
	}
	_, err = repo.CreateRemote(&config.RemoteConfig{Name: name, URLs: []string{url}})
	return err
}

// PrimaryRemote returns the remote used for network operations.
// If configured is non-empty, it's used directly. Otherwise a single remote
// wins, then "origin", then the first alphabetically.
func (r *Repo) PrimaryRemote(configured string) string {
	if configured != "" {
		return configured
	}
	remotes, err := r.Remotes()
	if err != nil || len(remotes) == 0 {
		return "origin"
	}
	if len(remotes) == 1 {
		return remotes[0]
	}
	for _, name := range remotes {
		if name == "origin" {
			return name
		}
	}
	return remotes[0]
}

// Fetch downloads objects and refs from remote.
func (r *Repo) Fetch(ctx context.Context, remote string, cb RemoteCallbacks) error {
	return r.withCredentials(remote, cb, func() error {
		return r.runNetwork(ctx, cb, "Receiving objects", "fetch", "--progress", "--prune", remote)
	})
}

// Push updates branch on remote.
func (r *Repo) Push(ctx context.Context, remote, branch string, cb RemoteCallbacks) error {
	refspec := "refs/heads/" + branch + ":refs/heads/" + branch
	return r.withCredentials(remote, cb, func() error {
		return r.runNetwork(ctx, cb, "Writing objects", "push", "--progress", remote, refspec)
	})
}

// Pull fetches remote and fast-forwards branch to its upstream.
func (r *Repo) Pull(ctx context.Context, remote, branch string, cb RemoteCallbacks) error {
	if err := r.Fetch(ctx, remote, cb); err != nil {
		return err
	}
	return r.fastForward(branch, r.upstreamOf(remote, branch))
}

// upstreamOf returns the tracking branch of branch, or remote/branch.
func (r *Repo) upstreamOf(remote, branch string) string {
	output, err := r.run("for-each-ref", "--format=%(upstream:short)", "refs/heads/"+branch)
	if err == nil {
		if upstream := strings.TrimSpace(output); upstream != "" {
			return upstream
		}
	}
	return remote + "/" + branch
}

// withCredentials retries run after authentication failures for as long as
// cb.Credentials allows it.
func (r *Repo) withCredentials(remote string, cb RemoteCallbacks, run func() error) error {
	for {
		err := run()
		if err == nil || !errors.Is(err, ErrAuth) || cb.Credentials == nil {
			return err
		}
		if cerr := cb.Credentials(remote); cerr != nil {
			return fmt.Errorf("%w (%w)", cerr, err)
		}
		debug.Event("git", "retrying %s after authentication failure", remote)
	}
}

// runNetwork runs a git command that reports progress on stderr, forwarding
// lines of the given phase to cb.Progress.
func (r *Repo) runNetwork(ctx context.Context, cb RemoteCallbacks, phase string, args ...string) error {
	defer debug.Timed("git " + strings.Join(args, " "))()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Root
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0", "LC_ALL=C")
	if os.Getenv("GIT_SSH_COMMAND") == "" {
		// ssh would otherwise prompt on the controlling terminal.
		cmd.Env = append(cmd.Env, "GIT_SSH_COMMAND=ssh -o BatchMode=yes")
	}
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return newCommandError(args, err, "")
	}

	var stderr strings.Builder
	scanner := bufio.NewScanner(stderrPipe)
	scanner.Split(scanProgressLines)
	for scanner.Scan() {
		line := scanner.Text()
		if current, total, ok := parseProgress(line, phase); ok {
			cb.progress(current, total)
			continue
		}
		if line != "" {
			stderr.WriteString(line)
			stderr.WriteByte('\n')
		}
	}

	if err := cmd.Wait(); err != nil {
		return newCommandError(args, err, stderr.String())
	}
	return nil
}

// parseProgress extracts "current/total" from a progress line of phase.
func parseProgress(line, phase string) (current, total int, ok bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, phase) {
		return 0, 0, false
	}
	m := progressPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, false
	}
	current, _ = strconv.Atoi(m[2])
	total, _ = strconv.Atoi(m[3])
	return current, total, true
}

// scanProgressLines splits on both '\r' and '\n', since git redraws progress
// lines in place with carriage returns.
func scanProgressLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
