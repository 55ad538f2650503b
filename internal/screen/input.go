package screen

import (
	"strings"

	bcursor "github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri123lemoine/twig/internal/ui"
)

// newInput returns a text input with a steady cursor. Screens cannot hand
// blink commands back to the loop, so blinking is off.
func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Prompt = "> "
	in.TextStyle = ui.InputStyle
	in.Cursor.SetMode(bcursor.CursorStatic)
	return in
}

// updateInput feeds msg to in and returns the result.
func updateInput(in textinput.Model, msg tea.KeyMsg) textinput.Model {
	in, _ = in.Update(msg)
	return in
}

// deleteLastWord drops the last whitespace-separated word of s along with
// the spaces after it.
func deleteLastWord(s string) string {
	trimmed := strings.TrimRight(s, " ")
	i := strings.LastIndexByte(trimmed, ' ')
	if i < 0 {
		return ""
	}
	return trimmed[:i+1]
}
