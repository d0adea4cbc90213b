package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// refreshMsg tells the program the grid changed and the view is stale.
type refreshMsg struct{}

// Color palette for the terminal LCD
var (
	borderColor = lipgloss.Color("#43BF6D") // Green - the classic LCD look
	screenText  = lipgloss.Color("#D7FFD7")
	screenBack  = lipgloss.Color("#1C3A1C")
	hintColor   = lipgloss.Color("#626262")
)

var (
	screenStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Foreground(screenText).
			Background(screenBack).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().
			Foreground(hintColor).
			PaddingLeft(1)
)

type keyMap struct {
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type model struct {
	terminal *Terminal
	keys     keyMap
}

func newModel(terminal *Terminal) model {
	return model{
		terminal: terminal,
		keys:     defaultKeyMap(),
	}
}

// Init implements tea.Model
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
	case refreshMsg:
		// The view re-reads the grid; nothing to do here.
	}
	return m, nil
}

// View implements tea.Model
func (m model) View() string {
	screen := strings.Join(m.terminal.Rows(), "\n")

	var b strings.Builder
	b.WriteString(screenStyle.Render(screen))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(m.keys.Quit.Help().Key + " to " + m.keys.Quit.Help().Desc))
	b.WriteString("\n")
	return b.String()
}
