package engine

import (
	"math/rand"
	"testing"
)

func window(start, end, selected, size, height int) *ScrollWindow {
	return &ScrollWindow{start: start, end: end, selected: selected, size: size, height: height}
}

func assertWindow(t *testing.T, w *ScrollWindow, start, end, selected int) {
	t.Helper()
	if w.Start() != start || w.End() != end || w.selected != selected {
		t.Errorf("Expected window (start=%d, end=%d, selected=%d), got (start=%d, end=%d, selected=%d)",
			start, end, selected, w.Start(), w.End(), w.selected)
	}
}

func TestScrollWindowReset(t *testing.T) {
	tests := []struct {
		name         string
		size, height int
		wantEnd      int
	}{
		{"list shorter than viewport", 10, 25, 9},
		{"list longer than viewport", 100, 25, 24},
		{"empty list", 0, 25, 0},
		{"zero height", 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := window(7, 30, 12, tt.size, tt.height)
			w.Reset()
			assertWindow(t, w, 0, tt.wantEnd, 0)
		})
	}
}

func TestScrollWindowScrollUp(t *testing.T) {
	tests := []struct {
		name                 string
		from                 *ScrollWindow
		distance             int
		start, end, selected int
	}{
		{"at top stays", window(0, 24, 0, 100, 25), 1, 0, 24, 0},
		{"slides by one", window(5, 29, 29, 100, 25), 1, 4, 28, 4},
		{"at top by a page", window(0, 24, 0, 100, 25), 12, 0, 24, 0},
		{"clamps at zero and reopens", window(10, 34, 10, 100, 25), 12, 0, 24, 0},
		{"slides by a page", window(30, 54, 54, 100, 25), 12, 18, 42, 18},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.from.ScrollUp(tt.distance)
			assertWindow(t, tt.from, tt.start, tt.end, tt.selected)
		})
	}
}

func TestScrollWindowScrollDown(t *testing.T) {
	tests := []struct {
		name                 string
		from                 *ScrollWindow
		distance             int
		start, end, selected int
	}{
		{"at end stays", window(10, 19, 19, 20, 10), 1, 10, 19, 19},
		{"slides by one", window(0, 9, 0, 20, 10), 1, 1, 10, 10},
		{"clamps at end", window(75, 99, 75, 100, 25), 12, 75, 99, 99},
		{"clamps past end", window(70, 94, 70, 100, 25), 12, 75, 99, 99},
		{"slides by a page", window(30, 54, 54, 100, 25), 12, 42, 66, 66},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.from.ScrollDown(tt.distance)
			assertWindow(t, tt.from, tt.start, tt.end, tt.selected)
		})
	}
}

func TestScrollWindowEmptyListIsNoop(t *testing.T) {
	w := NewScrollWindow(0, 10)
	w.ScrollDown(3)
	w.ScrollUp(3)
	assertWindow(t, w, 0, 0, 0)
	if _, ok := w.Position(); ok {
		t.Error("Expected no position for an empty list")
	}
}

func TestScrollWindowSetSizeDoesNotReposition(t *testing.T) {
	w := window(30, 54, 54, 100, 25)
	w.SetSize(10)
	w.SetHeight(5)
	assertWindow(t, w, 30, 54, 54)

	w.Reset()
	assertWindow(t, w, 0, 4, 0)
}

func TestScrollWindowInvariantsHold(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 200; trial++ {
		size := rng.Intn(120)
		height := rng.Intn(40)
		w := NewScrollWindow(size, height)
		for step := 0; step < 100; step++ {
			d := rng.Intn(30)
			if rng.Intn(2) == 0 {
				w.ScrollUp(d)
			} else {
				w.ScrollDown(d)
			}
			if !(w.Start() <= w.selected && w.selected <= w.End()) {
				t.Fatalf("size=%d height=%d: start %d <= selected %d <= end %d violated",
					size, height, w.Start(), w.selected, w.End())
			}
			if size > 0 && w.selected >= size {
				t.Fatalf("size=%d height=%d: selected %d out of range", size, height, w.selected)
			}
			if pos, ok := w.Position(); ok != (size > 0) || (ok && pos != w.selected) {
				t.Fatalf("Position() = %d, %v for size %d", pos, ok, size)
			}
		}
	}
}
