package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/henri123lemoine/twig/internal/engine"
)

func TestPaneHasExactSize(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		width, height int
	}{
		{"empty", "", 20, 5},
		{"overflowing", strings.Repeat("a very long line indeed\n", 10), 12, 4},
		{"minimal", "x", 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pane := Pane("Title", tt.body, tt.width, tt.height, true)
			lines := strings.Split(pane, "\n")
			if len(lines) != tt.height {
				t.Fatalf("Expected %d lines, got %d", tt.height, len(lines))
			}
			for i, l := range lines {
				if w := ansi.StringWidth(l); w != tt.width {
					t.Errorf("line %d: expected width %d, got %d (%q)", i, tt.width, w, l)
				}
			}
		})
	}
}

func TestPaneTitleInTopBorder(t *testing.T) {
	pane := Pane("Branches", "main", 30, 3, false)
	top := ansi.Strip(strings.Split(pane, "\n")[0])
	if !strings.Contains(top, " Branches ") {
		t.Errorf("Expected title in top border, got %q", top)
	}
}

func TestMainLayoutCoversBody(t *testing.T) {
	l := MainLayout(100, 40, true)

	left := 0
	for _, id := range LeftColumn {
		left += l.Panes[id].H
	}
	right := 0
	for _, id := range RightColumn {
		right += l.Panes[id].H
	}
	if left != 38 || right != 38 {
		t.Errorf("Expected both columns to fill 38 rows, got %d and %d", left, right)
	}
	if l.Panes[engine.WorkingDiff].X != 50 || l.Panes[engine.WorkingDiff].W != 50 {
		t.Errorf("Unexpected diff pane %+v", l.Panes[engine.WorkingDiff])
	}

	w, h := l.Panes[engine.FileStatus].Inner()
	if w != 48 || h != l.Panes[engine.FileStatus].H-2 {
		t.Errorf("Unexpected inner size %dx%d", w, h)
	}
}

func TestMainLayoutClampsSmallTerminals(t *testing.T) {
	l := MainLayout(10, 3, false)
	if l.Width != MinWidth || l.Height != MinHeight {
		t.Errorf("Expected clamped size, got %dx%d", l.Width, l.Height)
	}
}

func TestRendererFrameSize(t *testing.T) {
	l := MainLayout(80, 24, true)
	r := NewRenderer(l)
	r.DrawHeader("main ↑1")
	r.DrawFooter("q quit")
	for id := range l.Panes {
		r.DrawScreen(id, id.String(), "line one\nline two", id == engine.FileStatus)
	}

	frame := r.String()
	lines := strings.Split(frame, "\n")
	if len(lines) != 24 {
		t.Fatalf("Expected 24 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 80 {
			t.Errorf("line %d: expected width 80, got %d", i, w)
		}
	}

	r.DrawPopup("Commit", "message")
	withPopup := strings.Split(r.String(), "\n")
	if len(withPopup) != 24 {
		t.Fatalf("Expected popup frame to keep 24 lines, got %d", len(withPopup))
	}
	if !strings.Contains(ansi.Strip(r.String()), " Commit ") {
		t.Error("Expected popup title in frame")
	}

	r.Clear()
	if strings.Contains(ansi.Strip(r.String()), "line one") {
		t.Error("Expected Clear to drop pane content")
	}
}

func TestOverlayKeepsSurroundings(t *testing.T) {
	bg := strings.Repeat("abcdefghij\n", 4) + "abcdefghij"
	out := Overlay(bg, "XX\nYY", 10, 5)
	lines := strings.Split(ansi.Strip(out), "\n")
	if lines[1] != "abcdXXghij" || lines[2] != "abcdYYghij" {
		t.Errorf("Unexpected overlay:\n%s", strings.Join(lines, "\n"))
	}
	if lines[0] != "abcdefghij" {
		t.Errorf("Expected untouched first line, got %q", lines[0])
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello world", 5); ansi.StringWidth(got) != 5 || !strings.HasSuffix(got, "…") {
		t.Errorf("Unexpected truncation %q", got)
	}
	if got := Truncate("hi", 5); got != "hi" {
		t.Errorf("Expected untouched string, got %q", got)
	}
	if got := Truncate("hi", 0); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}
