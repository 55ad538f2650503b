package git

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

// Status returns the changed paths in the work tree and index.
func (r *Repo) Status() ([]FileEntry, error) {
	output, err := r.run("status", "--porcelain=v1", "-z", "--untracked-files=all")
	if err != nil {
		return nil, err
	}
	return parseStatus(output), nil
}

// parseStatus parses NUL-separated porcelain v1 output.
func parseStatus(output string) []FileEntry {
	var entries []FileEntry
	fields := strings.Split(output, "\x00")
	for i := 0; i < len(fields); i++ {
		field := fields[i]
		if len(field) < 4 {
			continue
		}
		entry := FileEntry{
			Index:    field[0],
			Worktree: field[1],
			Path:     field[3:],
		}
		// Renames and copies carry the source path in the next field.
		if (entry.Index == 'R' || entry.Index == 'C') && i+1 < len(fields) {
			entry.OrigPath = fields[i+1]
			i++
		}
		entries = append(entries, entry)
	}
	return entries
}

// Diff returns the unstaged diff, or the staged one when staged is true.
func (r *Repo) Diff(staged bool) ([]DiffLine, error) {
	args := []string{"diff", "--no-color", "--no-ext-diff"}
	if staged {
		args = append(args, "--cached")
	}
	output, err := r.run(args...)
	if err != nil {
		return nil, err
	}
	return parseDiff(output), nil
}

func parseDiff(output string) []DiffLine {
	if output == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	diff := make([]DiffLine, 0, len(lines))
	inHunk := false
	for _, line := range lines {
		var origin DiffOrigin
		switch {
		case strings.HasPrefix(line, "diff --git "):
			inHunk = false
			origin = OriginFileHeader
		case strings.HasPrefix(line, "@@"):
			inHunk = true
			origin = OriginHunkHeader
		case !inHunk:
			origin = OriginFileHeader
		case strings.HasPrefix(line, "+"):
			origin = OriginAddition
		case strings.HasPrefix(line, "-"):
			origin = OriginDeletion
		default:
			origin = OriginContext
		}
		content := line
		if inHunk && origin != OriginHunkHeader && len(line) > 0 {
			content = line[1:]
		}
		diff = append(diff, DiffLine{Origin: origin, Content: content})
	}
	return diff
}

// Head describes the current branch and its upstream distance.
func (r *Repo) Head() (HeadInfo, error) {
	repo, err := r.open()
	if err != nil {
		return HeadInfo{}, err
	}

	ref, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		info := HeadInfo{Unborn: true}
		if name, err := r.run("symbolic-ref", "--short", "HEAD"); err == nil {
			info.Branch = strings.TrimSpace(name)
		}
		return info, nil
	}
	if err != nil {
		return HeadInfo{}, err
	}

	if !ref.Name().IsBranch() {
		return HeadInfo{Detached: true}, nil
	}

	info := HeadInfo{Branch: ref.Name().Short()}
	info.Ahead, info.Behind, info.Upstream = r.upstreamStatus(info.Branch)
	return info, nil
}

// upstreamStatus returns how many commits branch is ahead/behind its upstream.
// An empty upstream means no tracking branch is configured.
func (r *Repo) upstreamStatus(branch string) (ahead, behind int, upstream string) {
	output, err := r.run("rev-parse", "--abbrev-ref", branch+"@{upstream}")
	if err != nil {
		return 0, 0, ""
	}
	upstream = strings.TrimSpace(output)

	output, err = r.run("rev-list", "--left-right", "--count", branch+"@{upstream}..."+branch)
	if err != nil {
		return 0, 0, upstream
	}
	parts := strings.Fields(strings.TrimSpace(output))
	if len(parts) != 2 {
		return 0, 0, upstream
	}
	behind, _ = strconv.Atoi(parts[0])
	ahead, _ = strconv.Atoi(parts[1])
	return ahead, behind, upstream
}

// CurrentBranch returns the checked-out branch name.
func (r *Repo) CurrentBranch() (string, error) {
	output, err := r.run("symbolic-ref", "--short", "-q", "HEAD")
	if err != nil {
		if exitCode(err) == 1 {
			return "", ErrDetachedHead
		}
		return "", err
	}
	return strings.TrimSpace(output), nil
}
