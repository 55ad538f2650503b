package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/henri123lemoine/twig/internal/engine"
)

// MinWidth is the smallest terminal width the layout supports.
const MinWidth = 40

// MinHeight is the smallest terminal height the layout supports.
const MinHeight = 12

// Rect is a cell rectangle on screen.
type Rect struct {
	X, Y, W, H int
}

// Inner returns the content size inside a one-cell border.
func (r Rect) Inner() (width, height int) {
	return max(r.W-2, 0), max(r.H-2, 0)
}

// Layout assigns a rectangle to the header, footer and every pane.
type Layout struct {
	Width, Height int
	Header        Rect
	Footer        Rect
	Panes         map[engine.ScreenID]Rect
}

// LeftColumn and RightColumn list pane screens top to bottom.
var (
	LeftColumn  = []engine.ScreenID{engine.FileStatus, engine.BranchList, engine.CommitLog}
	RightColumn = []engine.ScreenID{engine.WorkingDiff, engine.StagedDiff}
)

// MainLayout splits the terminal into a one-line header, an optional
// one-line footer, a left column (files, branches, log) and a right column
// (working and staged diffs).
func MainLayout(width, height int, footer bool) Layout {
	width = max(width, MinWidth)
	height = max(height, MinHeight)

	l := Layout{
		Width:  width,
		Height: height,
		Header: Rect{X: 0, Y: 0, W: width, H: 1},
		Panes:  make(map[engine.ScreenID]Rect),
	}
	bodyTop := 1
	bodyHeight := height - 1
	if footer {
		bodyHeight--
		l.Footer = Rect{X: 0, Y: height - 1, W: width, H: 1}
	}

	leftW := width / 2
	rightW := width - leftW

	files := max(bodyHeight*3/10, 3)
	branches := max(bodyHeight*3/10, 3)
	logH := max(bodyHeight-files-branches, 3)
	ys := bodyTop
	for i, h := range []int{files, branches, logH} {
		l.Panes[LeftColumn[i]] = Rect{X: 0, Y: ys, W: leftW, H: h}
		ys += h
	}

	diff := max(bodyHeight/2, 3)
	staged := max(bodyHeight-diff, 3)
	l.Panes[engine.WorkingDiff] = Rect{X: leftW, Y: bodyTop, W: rightW, H: diff}
	l.Panes[engine.StagedDiff] = Rect{X: leftW, Y: bodyTop + diff, W: rightW, H: staged}

	return l
}

// PopupWidth returns the outer width used for popups.
func (l Layout) PopupWidth() int {
	return min(max(l.Width*6/10, 40), l.Width-2)
}

// PopupMaxHeight returns the tallest a popup may be.
func (l Layout) PopupMaxHeight() int {
	return max(l.Height-4, 5)
}

// Renderer accumulates one frame.
type Renderer struct {
	layout Layout
	header string
	footer string
	panes  map[engine.ScreenID]string
	popup  string
}

// NewRenderer returns an empty frame for layout.
func NewRenderer(layout Layout) *Renderer {
	return &Renderer{layout: layout, panes: make(map[engine.ScreenID]string)}
}

// Clear discards everything drawn so far.
func (r *Renderer) Clear() {
	r.header, r.footer, r.popup = "", "", ""
	r.panes = make(map[engine.ScreenID]string)
}

// DrawHeader draws the status line.
func (r *Renderer) DrawHeader(content string) {
	r.header = fitLine(content, r.layout.Width)
}

// DrawFooter draws the help line.
func (r *Renderer) DrawFooter(content string) {
	r.footer = fitLine(content, r.layout.Width)
}

// DrawScreen draws content in the pane assigned to id.
func (r *Renderer) DrawScreen(id engine.ScreenID, title, content string, focused bool) {
	rect, ok := r.layout.Panes[id]
	if !ok {
		return
	}
	r.panes[id] = Pane(title, content, rect.W, rect.H, focused)
}

// DrawPopup draws a popup centered over the panes.
func (r *Renderer) DrawPopup(title, content string) {
	width := r.layout.PopupWidth()
	lines := strings.Count(content, "\n") + 1
	height := min(lines+2, r.layout.PopupMaxHeight())
	r.popup = Pane(title, content, width, height, true)
}

// String composes the frame.
func (r *Renderer) String() string {
	left := r.column(LeftColumn)
	right := r.column(RightColumn)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	parts := []string{r.header, body}
	if r.layout.Footer.H > 0 {
		parts = append(parts, r.footer)
	}
	frame := strings.Join(parts, "\n")

	if r.popup != "" {
		frame = Overlay(frame, r.popup, r.layout.Width, r.layout.Height)
	}
	return frame
}

func (r *Renderer) column(ids []engine.ScreenID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		pane, ok := r.panes[id]
		if !ok {
			rect := r.layout.Panes[id]
			pane = Pane("", "", rect.W, rect.H, false)
		}
		parts = append(parts, pane)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Pane draws body inside a rounded border of exactly width x height cells,
// with title set into the top edge.
func Pane(title, body string, width, height int, focused bool) string {
	if width < 2 || height < 2 {
		return ""
	}
	color := ColorSecondary
	if focused {
		color = ColorPrimary
	}
	border := lipgloss.RoundedBorder()
	edge := lipgloss.NewStyle().Foreground(color)
	inner := width - 2

	label := ""
	if title != "" {
		label = " " + title + " "
	}
	seg := ansi.Truncate(border.Top+label, inner, "")
	top := border.TopLeft + seg + strings.Repeat(border.Top, inner-ansi.StringWidth(seg)) + border.TopRight
	bottom := border.BottomLeft + strings.Repeat(border.Bottom, inner) + border.BottomRight

	var b strings.Builder
	b.WriteString(edge.Render(top))
	for _, line := range FitLines(body, inner, height-2) {
		b.WriteString("\n")
		b.WriteString(edge.Render(border.Left))
		b.WriteString(line)
		b.WriteString(edge.Render(border.Right))
	}
	b.WriteString("\n")
	b.WriteString(edge.Render(bottom))
	return b.String()
}

// FitLines returns exactly height lines of exactly width cells.
func FitLines(body string, width, height int) []string {
	if height <= 0 {
		return nil
	}
	var src []string
	if body != "" {
		src = strings.Split(body, "\n")
	}
	lines := make([]string, height)
	for i := range lines {
		if i < len(src) {
			lines[i] = fitLine(src[i], width)
		} else {
			lines[i] = strings.Repeat(" ", width)
		}
	}
	return lines
}

// fitLine truncates or pads s to width cells.
func fitLine(s string, width int) string {
	s = Truncate(s, width)
	return s + strings.Repeat(" ", max(width-ansi.StringWidth(s), 0))
}

// Truncate shortens s to width cells, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// Overlay draws fg centered on bg, which is width x height cells.
func Overlay(bg, fg string, width, height int) string {
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}
	fgLines := strings.Split(fg, "\n")
	fw := lipgloss.Width(fg)

	x := max((width-fw)/2, 0)
	y := max((height-len(fgLines))/2, 0)
	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		under := bgLines[row]
		left := ansi.Truncate(under, x, "")
		left += strings.Repeat(" ", max(x-ansi.StringWidth(left), 0))
		right := ansi.TruncateLeft(under, x+ansi.StringWidth(line), "")
		bgLines[row] = left + ansi.ResetStyle + line + ansi.ResetStyle + right
	}
	return strings.Join(bgLines, "\n")
}

// CompactHelp returns the shortened help text on narrow terminals.
func CompactHelp(full, compact string, width int) string {
	if width >= lipgloss.Width(full) {
		return full
	}
	return compact
}
