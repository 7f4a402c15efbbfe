// Package inventory renders the device and cable fleet as a single table
// and tracks which row is selected for rename and remove actions.
package inventory

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"holterdesk/internal/models"
)

type Model struct {
	table  table.Model
	width  int
	height int
}

func New(width, height int) Model {
	columns := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Serial", Width: 12},
		{Title: "Type", Width: 10},
		{Title: "Status", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)

	return Model{table: t, width: width, height: height}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.table.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetWidth(width)
	m.table.SetHeight(height)
}

// SetData replaces the table rows: devices first, then cables.
func (m *Model) SetData(devices []models.Device, cables []models.Cable) {
	rows := make([]table.Row, 0, len(devices)+len(cables))
	for _, d := range devices {
		rows = append(rows, table.Row{d.ID, d.SerialNumber, string(d.Kind), string(d.Status)})
	}
	for _, c := range cables {
		rows = append(rows, table.Row{c.ID, c.SerialNumber, "cable", string(c.Status)})
	}
	m.table.SetRows(rows)
}

// Selected returns the selected resource id and whether it is a cable.
// The bool result is false with an empty id when the table is empty.
func (m Model) Selected() (string, bool, bool) {
	row := m.table.SelectedRow()
	if row == nil {
		return "", false, false
	}
	return row[0], row[2] == "cable", true
}
