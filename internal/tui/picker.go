package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/piraterna/piratpkg/internal/repo"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionInstall
	ActionUninstall
	ActionInspect
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionInstall:
		return "install"
	case ActionUninstall:
		return "uninstall"
	case ActionInspect:
		return "inspect"
	case ActionQuit:
		return "quit"
	}
	return "none"
}

// PickerResult holds the result of the picker
type PickerResult struct {
	Action  Action
	Package *repo.Entry
}

// Address returns the branch-qualified address of the picked package.
func (r PickerResult) Address() string {
	if r.Package == nil {
		return ""
	}
	return repo.Address{Name: r.Package.Name, Branch: r.Package.Branch}.String()
}

// packageItem implements list.Item for package display
type packageItem struct {
	entry repo.Entry
}

func (i packageItem) Title() string {
	return i.entry.Name
}

func (i packageItem) Description() string {
	return fmt.Sprintf("%s | %s", i.entry.Branch, truncatePath(i.entry.Path, 50))
}

func (i packageItem) FilterValue() string {
	return i.entry.Name
}

func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// Model is the bubbletea model for the package picker
type Model struct {
	list     list.Model
	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a new package picker
func NewPicker(entries []repo.Entry) Model {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = packageItem{entry: e}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = "piratpkg - Select Package"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{list: l}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			return m.choose(ActionInstall)
		case "u":
			return m.choose(ActionUninstall)
		case "i":
			return m.choose(ActionInspect)
		case "q", "esc":
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) choose(action Action) (tea.Model, tea.Cmd) {
	item, ok := m.list.SelectedItem().(packageItem)
	if !ok {
		return m, nil
	}
	entry := item.entry
	m.result = PickerResult{Action: action, Package: &entry}
	m.quitting = true
	return m, tea.Quit
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Install  [u] Uninstall  [i] Inspect  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive package picker
func RunPicker(entries []repo.Entry) (PickerResult, error) {
	if len(entries) == 0 {
		return PickerResult{Action: ActionNone}, nil
	}

	m := NewPicker(entries)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}

// SimplePicker is a non-interactive picker that just lists packages
func SimplePicker(entries []repo.Entry) string {
	var sb strings.Builder

	sb.WriteString("piratpkg - Packages\n")
	sb.WriteString(strings.Repeat("─", 60) + "\n\n")

	if len(entries) == 0 {
		sb.WriteString("No packages found.\n")
		sb.WriteString("Add branches to the configuration file and place <name>.pkg manifests in them.\n")
		return sb.String()
	}

	for i, e := range entries {
		sb.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, e.Name, e.Branch))
		sb.WriteString(fmt.Sprintf("   %s\n\n", truncatePath(e.Path, 56)))
	}

	return sb.String()
}
