// Package dashboard renders the landing tab: today's installs and
// returns, outstanding overdue notifications, and fleet headroom.
package dashboard

import (
	"fmt"
	"strings"
	"time"

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

	overdueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
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

// SetData rebuilds the dashboard content from fresh snapshots.
func (m *Model) SetData(
	appointments []models.Appointment,
	patients []models.Patient,
	devices []models.Device,
	cables []models.Cable,
	notifications []models.Notification,
	now time.Time,
) {
	names := make(map[string]string)
	for _, p := range patients {
		names[p.ID] = p.Name
	}
	name := func(id string) string {
		if n, ok := names[id]; ok {
			return n
		}
		return "unknown"
	}

	var b strings.Builder
	today := now.Format(models.DateFormat)

	b.WriteString(headingStyle.Render("Today's installations") + "\n")
	count := 0
	for _, a := range appointments {
		if a.Status.Terminal() || a.InstallDate.Format(models.DateFormat) != today {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s  %s  %s + %s\n",
			a.InstallDate.Format(models.TimeFormat), name(a.PatientID), a.HolterID, a.CableID))
		count++
	}
	if count == 0 {
		b.WriteString(dimStyle.Render("  none") + "\n")
	}

	b.WriteString("\n" + headingStyle.Render("Today's returns") + "\n")
	count = 0
	for _, a := range appointments {
		if a.Status.Terminal() || a.ReturnDate.Format(models.DateFormat) != today {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s  %s  %s + %s\n",
			a.ReturnDate.Format(models.TimeFormat), name(a.PatientID), a.HolterID, a.CableID))
		count++
	}
	if count == 0 {
		b.WriteString(dimStyle.Render("  none") + "\n")
	}

	b.WriteString("\n" + headingStyle.Render("Notifications") + "\n")
	if len(notifications) == 0 {
		b.WriteString(dimStyle.Render("  none") + "\n")
	}
	for _, n := range notifications {
		b.WriteString(overdueStyle.Render(fmt.Sprintf("  %s  %s",
			n.CreatedAt.Format(models.DateTimeFormat), n.Message)) + "\n")
	}

	freeDevices, freeCables := 0, 0
	for _, d := range devices {
		if d.Status == models.ResourceAvailable {
			freeDevices++
		}
	}
	for _, c := range cables {
		if c.Status == models.ResourceAvailable {
			freeCables++
		}
	}
	b.WriteString("\n" + headingStyle.Render("Fleet") + "\n")
	b.WriteString(fmt.Sprintf("  %d of %d holters free, %d of %d cables free\n",
		freeDevices, len(devices), freeCables, len(cables)))

	m.viewport.SetContent(b.String())
}
