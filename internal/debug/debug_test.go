package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnableWritesTaggedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "debug.log")

	if err := Enable(path); err != nil {
		t.Fatalf("Enable failed: %v", err)
	}
	if !IsEnabled() {
		t.Fatal("Expected logging to be enabled")
	}

	Log("plain %d", 1)
	Event("router", "focus %s", "BranchList")
	Timed("git status")()
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	out := string(data)

	for _, want := range []string{"plain 1", "router", "focus BranchList", "git status took"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected log to contain %q, got:\n%s", want, out)
		}
	}
}

func TestLogDisabledIsNoop(t *testing.T) {
	Close()
	if IsEnabled() {
		t.Fatal("Expected logging to be disabled")
	}
	// Must not panic without a file.
	Log("ignored")
	Event("app", "ignored")
	Timed("ignored")()
}

func TestDefaultPathHonorsStateHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)

	got := DefaultPath()
	want := filepath.Join(dir, "twig", "debug.log")
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
