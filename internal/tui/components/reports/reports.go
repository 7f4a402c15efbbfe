// Package reports shows the full appointment book as a filterable table
// with per-row actions (edit, mark returned, release) and names the
// export key bindings.
package reports

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"holterdesk/internal/report"
)

var dimStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240"))

type Model struct {
	table  table.Model
	rows   []report.Row
	shown  []report.Row
	filter string
	width  int
	height int
}

func New(width, height int) Model {
	columns := []table.Column{
		{Title: "Patient", Width: 20},
		{Title: "Record", Width: 8},
		{Title: "Holter", Width: 10},
		{Title: "Cable", Width: 8},
		{Title: "Install", Width: 17},
		{Title: "Return", Width: 17},
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
	hint := "press / to filter, e to edit, m to mark returned, r to release, c/p to export"
	if m.filter != "" {
		hint = "filter: " + m.filter + "  (press / to change, empty query clears)"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		dimStyle.Render(hint),
		"",
		m.table.View(),
	)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetWidth(width)
	if height > 3 {
		m.table.SetHeight(height - 3)
	}
}

func (m *Model) SetRows(rows []report.Row) {
	m.rows = rows
	m.apply()
}

// SetFilter narrows the table to rows whose patient name or record
// number contains the query, case-insensitively.
func (m *Model) SetFilter(query string) {
	m.filter = strings.TrimSpace(query)
	m.apply()
}

func (m *Model) apply() {
	q := strings.ToLower(m.filter)
	m.shown = m.shown[:0]
	var rows []table.Row
	for _, r := range m.rows {
		if q != "" &&
			!strings.Contains(strings.ToLower(r.PatientName), q) &&
			!strings.Contains(strings.ToLower(r.RecordNumber), q) {
			continue
		}
		rows = append(rows, table.Row{
			r.PatientName, r.RecordNumber, r.HolterSerial, r.CableSerial,
			r.InstallDate, r.ReturnDate, r.Status,
		})
		m.shown = append(m.shown, r)
	}
	m.table.SetRows(rows)
}

// Selected returns the highlighted report row.
func (m Model) Selected() (report.Row, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.shown) {
		return report.Row{}, false
	}
	return m.shown[idx], true
}
