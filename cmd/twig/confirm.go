package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri123lemoine/twig/internal/ui"
)

var (
	yesKey = key.NewBinding(key.WithKeys("y", "Y", "enter"))
	noKey  = key.NewBinding(key.WithKeys("n", "N", "esc", "q", "ctrl+c"))
)

// confirmModel is a one-question Yes/No prompt.
type confirmModel struct {
	question string
	answer   bool
	done     bool
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, yesKey):
			m.answer, m.done = true, true
			return m, tea.Quit
		case key.Matches(msg, noKey):
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	return ui.HeaderStyle.Render(m.question) + " " + ui.HelpStyle.Render("[y/n]") + "\n"
}

// confirm asks question on the terminal and reports a yes.
func confirm(question string) (bool, error) {
	final, err := tea.NewProgram(confirmModel{question: question}).Run()
	if err != nil {
		return false, err
	}
	return final.(confirmModel).answer, nil
}
