// Package settings renders the blocked-date list with a movable cursor.
package settings

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

type Model struct {
	dates  []string
	cursor int
	width  int
	height int
}

func New(width, height int) Model {
	return Model{width: width, height: height}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.dates)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Blocked dates") + "\n")
	b.WriteString(dimStyle.Render("press a to block a day, d to unblock the selected day") + "\n\n")

	if len(m.dates) == 0 {
		b.WriteString(dimStyle.Render("no blocked dates") + "\n")
	}
	for i, d := range m.dates {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> "+d) + "\n")
		} else {
			b.WriteString("  " + d + "\n")
		}
	}
	return b.String()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) SetDates(dates []string) {
	m.dates = dates
	if m.cursor >= len(dates) {
		m.cursor = len(dates) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Selected returns the date under the cursor.
func (m Model) Selected() (string, bool) {
	if len(m.dates) == 0 {
		return "", false
	}
	return m.dates[m.cursor], true
}
