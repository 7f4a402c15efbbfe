// Package handover lists the open loans so the doctor can release a
// returned device back into the pool.
package handover

import (
	"sort"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"holterdesk/internal/models"
)

type Model struct {
	table  table.Model
	ids    []string
	width  int
	height int
}

func New(width, height int) Model {
	columns := []table.Column{
		{Title: "Patient", Width: 22},
		{Title: "Holter", Width: 8},
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
	return m.table.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetWidth(width)
	m.table.SetHeight(height)
}

// SetData shows every appointment that has not been completed yet,
// soonest return first.
func (m *Model) SetData(appointments []models.Appointment, patients []models.Patient) {
	names := make(map[string]string)
	for _, p := range patients {
		names[p.ID] = p.Name
	}

	sorted := append([]models.Appointment(nil), appointments...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ReturnDate.Before(sorted[j].ReturnDate)
	})

	m.ids = m.ids[:0]
	var rows []table.Row
	for _, a := range sorted {
		if a.Status.Terminal() {
			continue
		}
		name := names[a.PatientID]
		if name == "" {
			name = "unknown"
		}
		rows = append(rows, table.Row{
			name, a.HolterID, a.CableID,
			a.InstallDate.Format(models.DateTimeFormat),
			a.ReturnDate.Format(models.DateTimeFormat),
			string(a.Status),
		})
		m.ids = append(m.ids, a.ID)
	}
	m.table.SetRows(rows)
}

// SelectedID returns the appointment id of the highlighted row.
func (m Model) SelectedID() (string, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.ids) {
		return "", false
	}
	return m.ids[idx], true
}
