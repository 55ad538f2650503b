package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/henri123lemoine/twig/internal/git"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("4")   // Blue
	ColorSecondary = lipgloss.Color("8")   // Gray
	ColorSuccess   = lipgloss.Color("2")   // Green
	ColorWarning   = lipgloss.Color("3")   // Yellow
	ColorDanger    = lipgloss.Color("1")   // Red
	ColorMuted     = lipgloss.Color("245") // Light gray
	ColorHighlight = lipgloss.Color("6")   // Cyan
	ColorText      = lipgloss.AdaptiveColor{Light: "235", Dark: "252"}
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorMuted)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	BranchStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	CurrentStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	MarkedStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	PathStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	HashStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	AheadStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	BehindStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)

	InputStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	TabActiveStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true).
			Underline(true)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	addStyle     = lipgloss.NewStyle().Foreground(ColorSuccess)
	deleteStyle  = lipgloss.NewStyle().Foreground(ColorDanger)
	hunkStyle    = lipgloss.NewStyle().Foreground(ColorHighlight)
	fileStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorText)
	contextStyle = lipgloss.NewStyle().Foreground(ColorText)
)

// Symbols
const (
	SymbolCursor   = "›"
	SymbolAhead    = "↑"
	SymbolBehind   = "↓"
	SymbolCurrent  = "•"
	SymbolMarked   = "◆"
	SymbolUnmarked = "◇"
)

// ApplyTheme forces a light or dark palette; "auto" keeps terminal detection.
func ApplyTheme(theme string) {
	switch theme {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}
}

// DiffLine renders one diff line with its origin marker.
func DiffLine(l git.DiffLine) string {
	switch l.Origin {
	case git.OriginAddition:
		return addStyle.Render("+" + l.Content)
	case git.OriginDeletion:
		return deleteStyle.Render("-" + l.Content)
	case git.OriginHunkHeader:
		return hunkStyle.Render(l.Content)
	case git.OriginFileHeader:
		return fileStyle.Render(l.Content)
	}
	return contextStyle.Render(" " + l.Content)
}

// StatusLetter colors a porcelain status letter.
func StatusLetter(c byte, staged bool) string {
	s := string(c)
	switch {
	case c == ' ':
		return " "
	case c == '?':
		return PathStyle.Render(s)
	case staged:
		return SuccessStyle.Render(s)
	}
	return ErrorStyle.Render(s)
}
