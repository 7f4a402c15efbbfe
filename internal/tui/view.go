package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var tabTitles = []string{"Dashboard", "Booking", "Inventory", "Handover", "Reports", "Settings"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == StateLogin {
		return m.viewLogin()
	}

	var content string
	switch m.state {
	case StateDashboard:
		content = docStyle.Render(m.dashboardModel.View())
	case StateBooking:
		content = docStyle.Render(m.bookingModel.View())
	case StateInventory:
		content = docStyle.Render(m.inventoryModel.View())
	case StateHandover:
		content = docStyle.Render(m.handoverModel.View())
	case StateReports:
		content = docStyle.Render(m.reportsModel.View())
	case StateSettings:
		content = docStyle.Render(m.settingsModel.View())
	case StateBookingWindow, StateBookingDetails, StatePatientForm, StateBlockedForm,
		StateRenameForm, StateReportFilter, StateApptEdit:
		content = docStyle.Render(m.form.View())
	case StateConfirmRemove:
		content = m.viewConfirmRemove()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewLogin() string {
	body := m.form.View()
	if m.formError != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, errorStyle.Render(m.formError), "", body)
	}
	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			activeTabStyle.Render("holterdesk"),
			"",
			body,
		),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.tabIndex() == i {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// tabIndex maps the current state onto the tab bar, keeping the source
// tab highlighted while a form or confirmation is open.
func (m Model) tabIndex() int {
	s := m.state
	switch s {
	case StateBookingWindow, StateBookingDetails, StatePatientForm, StateRenameForm,
		StateBlockedForm, StateReportFilter, StateApptEdit:
		s = m.previousState
	case StateConfirmRemove:
		s = StateInventory
	}
	if s < firstTab || s > lastTab {
		return -1
	}
	return int(s - firstTab)
}

func (m Model) viewStatus() string {
	if m.formError != "" {
		return errorStyle.Render(m.formError)
	}
	if m.statusMsg != "" {
		return statusStyle.Render(m.statusMsg)
	}
	return ""
}

func (m Model) viewConfirmRemove() string {
	kind := "device"
	if m.removeIsCable {
		kind = "cable"
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Remove %s %s from the fleet?", kind, m.removeID)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
