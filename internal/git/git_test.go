package git

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	output := " M README.md\x00A  new.go\x00R  renamed.go\x00old.go\x00?? notes.txt\x00"

	entries := parseStatus(output)
	if len(entries) != 4 {
		t.Fatalf("Expected 4 entries, got %d: %+v", len(entries), entries)
	}

	tests := []struct {
		path      string
		staged    bool
		unstaged  bool
		untracked bool
	}{
		{"README.md", false, true, false},
		{"new.go", true, false, false},
		{"renamed.go", true, false, false},
		{"notes.txt", false, true, true},
	}
	for i, tt := range tests {
		e := entries[i]
		if e.Path != tt.path {
			t.Errorf("entry %d: expected path %q, got %q", i, tt.path, e.Path)
		}
		if e.Staged() != tt.staged {
			t.Errorf("%s: expected Staged()=%v", tt.path, tt.staged)
		}
		if e.Unstaged() != tt.unstaged {
			t.Errorf("%s: expected Unstaged()=%v", tt.path, tt.unstaged)
		}
		if e.Untracked() != tt.untracked {
			t.Errorf("%s: expected Untracked()=%v", tt.path, tt.untracked)
		}
	}
	if entries[2].OrigPath != "old.go" {
		t.Errorf("Expected rename source 'old.go', got %q", entries[2].OrigPath)
	}
}

func TestParseDiff(t *testing.T) {
	output := "diff --git a/a.txt b/a.txt\n" +
		"index 1111111..2222222 100644\n" +
		"--- a/a.txt\n" +
		"+++ b/a.txt\n" +
		"@@ -1,2 +1,2 @@\n" +
		" keep\n" +
		"-old\n" +
		"+new\n"

	lines := parseDiff(output)
	want := []DiffLine{
		{OriginFileHeader, "diff --git a/a.txt b/a.txt"},
		{OriginFileHeader, "index 1111111..2222222 100644"},
		{OriginFileHeader, "--- a/a.txt"},
		{OriginFileHeader, "+++ b/a.txt"},
		{OriginHunkHeader, "@@ -1,2 +1,2 @@"},
		{OriginContext, "keep"},
		{OriginDeletion, "old"},
		{OriginAddition, "new"},
	}
	if len(lines) != len(want) {
		t.Fatalf("Expected %d lines, got %d: %+v", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %+v, got %+v", i, want[i], lines[i])
		}
	}

	if got := parseDiff(""); got != nil {
		t.Errorf("Expected nil for empty diff, got %+v", got)
	}
}

func TestParseProgress(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		phase   string
		current int
		total   int
		ok      bool
	}{
		{"partial", "Writing objects:  37% (3/8)", "Writing objects", 3, 8, true},
		{"done", "Writing objects: 100% (8/8), 700 bytes | 700.00 KiB/s, done.", "Writing objects", 8, 8, true},
		{"other phase", "Counting objects: 50% (1/2)", "Writing objects", 0, 0, false},
		{"receiving", "Receiving objects:  12% (12/100), 1.00 KiB", "Receiving objects", 12, 100, true},
		{"no numbers", "Writing objects: done", "Writing objects", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, total, ok := parseProgress(tt.line, tt.phase)
			if ok != tt.ok || current != tt.current || total != tt.total {
				t.Errorf("parseProgress(%q) = %d, %d, %v; want %d, %d, %v",
					tt.line, current, total, ok, tt.current, tt.total, tt.ok)
			}
		})
	}
}

func TestScanProgressLines(t *testing.T) {
	data := []byte("a 1%\rb 2%\rc\nd")
	var tokens []string
	for len(data) > 0 {
		advance, token, err := scanProgressLines(data, true)
		if err != nil {
			t.Fatal(err)
		}
		tokens = append(tokens, string(token))
		data = data[advance:]
	}
	want := []string{"a 1%", "b 2%", "c", "d"}
	if len(tokens) != len(want) {
		t.Fatalf("Expected %v, got %v", want, tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token %d: expected %q, got %q", i, want[i], tokens[i])
		}
	}
}

func TestValidateRemote(t *testing.T) {
	tests := []struct {
		name    string
		remote  string
		url     string
		wantErr bool
	}{
		{"ssh", "origin", "git@github.com:user/repo.git", false},
		{"https", "origin", "https://github.com/user/repo.git", false},
		{"https with user", "upstream", "https://user@example.com/group/repo.git", false},
		{"port", "origin", "git@example.com:2222/repo.git", false},
		{"missing suffix", "origin", "https://github.com/user/repo", true},
		{"bad name", "or!gin", "git@github.com:user/repo.git", true},
		{"empty name", "", "git@github.com:user/repo.git", true},
		{"garbage", "origin", "not a url", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRemote(tt.remote, tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRemote(%q, %q) error = %v, wantErr %v", tt.remote, tt.url, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRemote) {
				t.Errorf("Expected ErrInvalidRemote, got %v", err)
			}
		})
	}
}

func TestNewCommandErrorClassifiesAuth(t *testing.T) {
	err := newCommandError([]string{"push"}, errors.New("exit status 128"),
		"fatal: could not read Username for 'https://example.com': terminal prompts disabled")
	if !errors.Is(err, ErrAuth) {
		t.Errorf("Expected ErrAuth, got %v", err)
	}
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("Expected *CommandError in chain, got %T", err)
	}

	err = newCommandError([]string{"status"}, errors.New("exit status 128"), "fatal: bad object")
	if errors.Is(err, ErrAuth) {
		t.Errorf("Did not expect ErrAuth for %v", err)
	}
}

func TestShortID(t *testing.T) {
	c := Commit{ID: "0123456789abcdef"}
	if got := c.ShortID(); got != "0123456" {
		t.Errorf("Expected 0123456, got %q", got)
	}
	if got := (Commit{ID: "abc"}).ShortID(); got != "abc" {
		t.Errorf("Expected abc, got %q", got)
	}
}
