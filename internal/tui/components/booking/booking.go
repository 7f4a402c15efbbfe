// Package booking shows the appointment calendar, upcoming installs
// first. New bookings are made through the form flow owned by the parent
// model.
package booking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"holterdesk/internal/models"
)

var (
	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

type Model struct {
	viewport viewport.Model
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

func (m *Model) SetData(appointments []models.Appointment, patients []models.Patient) {
	names := make(map[string]string)
	for _, p := range patients {
		names[p.ID] = p.Name
	}

	sorted := append([]models.Appointment(nil), appointments...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].InstallDate.Before(sorted[j].InstallDate)
	})

	var b strings.Builder
	b.WriteString(headingStyle.Render("Appointments") + "\n")
	b.WriteString(dimStyle.Render("press b to book a new appointment") + "\n\n")

	if len(sorted) == 0 {
		b.WriteString(dimStyle.Render("no appointments yet") + "\n")
	}
	for _, a := range sorted {
		name := names[a.PatientID]
		if name == "" {
			name = "unknown"
		}
		line := fmt.Sprintf("%s -> %s  %-22s %s + %s  [%s]",
			a.InstallDate.Format(models.DateTimeFormat),
			a.ReturnDate.Format(models.DateTimeFormat),
			name, a.HolterID, a.CableID, a.Status)
		if a.Status.Terminal() {
			line = dimStyle.Render(line)
		}
		b.WriteString(line + "\n")
		if len(a.AdditionalServices) > 0 {
			b.WriteString(dimStyle.Render("    services: "+strings.Join(a.AdditionalServices, ", ")) + "\n")
		}
	}

	m.viewport.SetContent(b.String())
}
