package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	questionStyle = lipgloss.NewStyle().Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ConfirmModel is a yes/no prompt. Enter accepts.
type ConfirmModel struct {
	question string
	answer   bool
	done     bool
}

// NewConfirm creates a confirmation prompt for question.
func NewConfirm(question string) ConfirmModel {
	return ConfirmModel{question: question}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "enter", "y", "Y":
		m.answer = true
	case "n", "N", "q", "esc", "ctrl+c":
		m.answer = false
	default:
		return m, nil
	}
	m.done = true
	return m, tea.Quit
}

func (m ConfirmModel) View() string {
	if m.done {
		answer := "no"
		if m.answer {
			answer = "yes"
		}
		return questionStyle.Render(m.question) + " " + answer + "\n"
	}
	return questionStyle.Render(m.question) + " " + hintStyle.Render("[Y/n]")
}

// Answer reports whether the prompt was accepted.
func (m ConfirmModel) Answer() bool {
	return m.done && m.answer
}

// ConfirmPrompter asks yes/no questions with a bubbletea prompt.
type ConfirmPrompter struct {
	In  io.Reader
	Out io.Writer
}

// Confirm runs the prompt until the operator answers.
func (p *ConfirmPrompter) Confirm(question string) (bool, error) {
	var opts []tea.ProgramOption
	if p.In != nil {
		opts = append(opts, tea.WithInput(p.In))
	}
	if p.Out != nil {
		opts = append(opts, tea.WithOutput(p.Out))
	}

	final, err := tea.NewProgram(NewConfirm(question), opts...).Run()
	if err != nil {
		return false, err
	}
	return final.(ConfirmModel).Answer(), nil
}
