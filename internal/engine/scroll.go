package engine

// ScrollWindow tracks the visible slice [Start, End] of a list and the
// selected index inside it.
//
// Scrolling up always moves the selection to the old window start minus the
// distance, and scrolling down to the old window end plus the distance, so
// the selection rides the window edge in the scroll direction.
type ScrollWindow struct {
	start    int
	end      int
	selected int
	size     int
	height   int
}

// NewScrollWindow returns a window over size items shown in height rows,
// anchored at the top.
func NewScrollWindow(size, height int) *ScrollWindow {
	w := &ScrollWindow{size: max(size, 0), height: max(height, 0)}
	w.Reset()
	return w
}

// Reset re-anchors the window to the top of the list.
func (w *ScrollWindow) Reset() {
	w.start = 0
	w.selected = 0
	w.end = w.topEnd()
}

// topEnd is the window end when the window starts at 0.
func (w *ScrollWindow) topEnd() int {
	n := min(w.size, w.height)
	if n == 0 {
		return 0
	}
	return n - 1
}

// ScrollUp moves the window and selection toward index 0. Landing on 0
// reopens the full first page.
func (w *ScrollWindow) ScrollUp(distance int) {
	if w.size == 0 || distance <= 0 {
		return
	}
	w.selected = subClamp(w.start, distance)
	w.start = subClamp(w.start, distance)
	if w.selected == 0 {
		w.end = w.topEnd()
		return
	}
	w.end = subClamp(w.end, distance)
}

// ScrollDown moves the window and selection toward the end of the list,
// clamping to the last full page.
func (w *ScrollWindow) ScrollDown(distance int) {
	if w.size == 0 || distance <= 0 {
		return
	}
	last := w.size - 1
	target := w.end + distance
	if target > last {
		w.selected = last
		w.end = last
		w.start = subClamp(w.size, max(w.height, 1))
		return
	}
	w.selected = target
	w.end += distance
	w.start += distance
}

// SetHeight changes the viewport height without repositioning.
func (w *ScrollWindow) SetHeight(h int) {
	w.height = max(h, 0)
}

// SetSize changes the list length without repositioning.
func (w *ScrollWindow) SetSize(n int) {
	w.size = max(n, 0)
}

// Position returns the selected index, or false if the list is empty.
func (w *ScrollWindow) Position() (int, bool) {
	if w.size == 0 {
		return 0, false
	}
	return w.selected, true
}

// Start returns the first visible index.
func (w *ScrollWindow) Start() int { return w.start }

// End returns the last visible index.
func (w *ScrollWindow) End() int { return w.end }

// Size returns the list length.
func (w *ScrollWindow) Size() int { return w.size }

// Height returns the viewport height.
func (w *ScrollWindow) Height() int { return w.height }

func subClamp(a, b int) int {
	if b >= a {
		return 0
	}
	return a - b
}
