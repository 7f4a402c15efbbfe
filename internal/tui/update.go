package tui

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"holterdesk/internal/auth"
	"holterdesk/internal/engine"
	"holterdesk/internal/models"
	"holterdesk/internal/report"
)

// tickMsg drives the periodic overdue scan.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) refreshReport() {
	m.reportsModel.SetRows(report.Build(m.engine))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentHeight := msg.Height - 6
		if contentHeight < 3 {
			contentHeight = 3
		}
		m.dashboardModel.SetSize(msg.Width-4, contentHeight)
		m.bookingModel.SetSize(msg.Width-4, contentHeight)
		m.inventoryModel.SetSize(msg.Width-4, contentHeight)
		m.handoverModel.SetSize(msg.Width-4, contentHeight)
		m.reportsModel.SetSize(msg.Width-4, contentHeight)
		m.settingsModel.SetSize(msg.Width-4, contentHeight)
		return m, nil

	case tickMsg:
		if created := m.engine.ScanOverdue(time.Time(msg)); len(created) > 0 {
			m.statusMsg = fmt.Sprintf("%d appointment(s) went overdue", len(created))
		}
		m.refresh()
		return m, tickCmd()
	}

	switch m.state {
	case StateLogin:
		return m.updateLogin(msg)
	case StateBookingWindow, StateBookingDetails, StatePatientForm, StateBlockedForm,
		StateRenameForm, StateReportFilter, StateApptEdit:
		return m.updateForm(msg)
	case StateConfirmRemove:
		return m.updateConfirmRemove(msg)
	}
	return m.updateTabs(msg)
}

func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if auth.Check(m.loginForm.Username, m.loginForm.Password) {
			m.formError = ""
			m.state = StateDashboard
			m.refresh()
			return m, nil
		}
		m.formError = "Invalid username or password"
		m.newLoginForm()
		return m, m.form.Init()
	case huh.StateAborted:
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.completeForm()
	case huh.StateAborted:
		m.state = m.previousState
		return m, nil
	}
	return m, cmd
}

func (m Model) completeForm() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateBookingWindow:
		install, err := parseDay(m.windowForm.Install)
		if err != nil {
			m.formError = err.Error()
			m.state = m.previousState
			return m, nil
		}
		days, err := strconv.Atoi(strings.TrimSpace(m.windowForm.Days))
		if err != nil || days < 1 {
			m.formError = "Duration must be a whole number of days"
			m.state = m.previousState
			return m, nil
		}
		devices, cables := m.engine.AvailableResources(install, days, m.windowForm.ReturnTime)
		if len(devices) == 0 || len(cables) == 0 {
			m.formError = "No free holter and cable pair for that window"
			m.state = m.previousState
			return m, nil
		}
		patients := m.engine.Patients()
		if len(patients) == 0 {
			m.formError = "Register a patient before booking"
			m.state = m.previousState
			return m, nil
		}
		m.newBookingDetailsForm(install, days, m.windowForm.ReturnTime, devices, cables, patients)
		m.state = StateBookingDetails
		return m, m.form.Init()

	case StateBookingDetails:
		a, err := m.engine.Book(engine.BookingInput{
			PatientID:          m.detailsForm.PatientID,
			HolterID:           m.detailsForm.HolterID,
			CableID:            m.detailsForm.CableID,
			InstallDate:        m.detailsForm.install,
			DurationDays:       m.detailsForm.days,
			AdditionalServices: m.detailsForm.Services,
			ReturnTime:         m.detailsForm.returnTime,
			Notes:              m.detailsForm.Notes,
		})
		if err != nil {
			m.formError = err.Error()
		} else {
			m.formError = ""
			m.statusMsg = "Booked, return due " + a.ReturnDate.Format(models.DateTimeFormat)
			m.refresh()
		}
		m.state = m.previousState
		return m, nil

	case StatePatientForm:
		in := engine.PatientInput{
			Name:          m.patientForm.Name,
			RecordNumber:  m.patientForm.Record,
			MobilePhone:   m.patientForm.Mobile,
			LandlinePhone: m.patientForm.Landline,
		}
		if s := strings.TrimSpace(m.patientForm.Age); s != "" {
			if age, err := strconv.Atoi(s); err == nil {
				in.Age = &age
			}
		}
		p, err := m.engine.RegisterPatient(in)
		if err != nil {
			m.formError = err.Error()
		} else {
			m.formError = ""
			m.statusMsg = "Registered " + p.Name
			m.refresh()
		}
		m.state = m.previousState
		return m, nil

	case StateBlockedForm:
		date := strings.TrimSpace(m.blockedForm.Date)
		if _, err := time.Parse(models.DateFormat, date); err != nil {
			m.formError = "Blocked day must be YYYY-MM-DD"
		} else {
			m.formError = ""
			m.engine.AddBlockedDate(date)
			m.statusMsg = "Blocked " + date
			m.refresh()
		}
		m.state = m.previousState
		return m, nil

	case StateRenameForm:
		err := m.engine.RenameSerial(m.renameForm.targetID, m.renameForm.Serial, m.renameForm.isCable)
		if err != nil {
			m.formError = err.Error()
		} else {
			m.formError = ""
			m.statusMsg = m.renameForm.targetID + " renamed"
			m.refresh()
		}
		m.state = m.previousState
		return m, nil

	case StateReportFilter:
		m.reportsModel.SetFilter(m.filterForm.Query)
		m.state = m.previousState
		return m, nil

	case StateApptEdit:
		if err := m.applyAppointmentEdit(); err != nil {
			m.formError = err.Error()
		} else {
			m.formError = ""
			m.statusMsg = "Appointment updated"
			m.refresh()
		}
		m.state = m.previousState
		return m, nil
	}

	m.state = m.previousState
	return m, nil
}

func (m Model) updateConfirmRemove(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "y":
			if err := m.engine.RemoveResource(m.removeID, m.removeIsCable); err != nil {
				m.formError = err.Error()
			} else {
				m.formError = ""
				m.statusMsg = "Removed " + m.removeID
				m.refresh()
			}
			m.state = StateInventory
		case "n", "esc", "q":
			m.state = StateInventory
		}
	}
	return m, nil
}

func (m Model) updateTabs(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			m.statusMsg, m.formError = "", ""
			if m.state == lastTab {
				m.state = firstTab
			} else {
				m.state++
			}
			return m, nil
		case "shift+tab":
			m.statusMsg, m.formError = "", ""
			if m.state == firstTab {
				m.state = lastTab
			} else {
				m.state--
			}
			return m, nil
		case "?":
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

		if handled, model, cmd := m.handleTabKey(key); handled {
			return model, cmd
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateDashboard:
		m.dashboardModel, cmd = m.dashboardModel.Update(msg)
	case StateBooking:
		m.bookingModel, cmd = m.bookingModel.Update(msg)
	case StateInventory:
		m.inventoryModel, cmd = m.inventoryModel.Update(msg)
	case StateHandover:
		m.handoverModel, cmd = m.handoverModel.Update(msg)
	case StateReports:
		m.reportsModel, cmd = m.reportsModel.Update(msg)
	case StateSettings:
		m.settingsModel, cmd = m.settingsModel.Update(msg)
	}
	return m, cmd
}

// handleTabKey dispatches the per-tab action keys.
func (m Model) handleTabKey(key tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	switch m.state {
	case StateDashboard, StateBooking:
		switch key.String() {
		case "b":
			m.previousState = m.state
			m.newBookingWindowForm()
			m.state = StateBookingWindow
			return true, m, m.form.Init()
		case "a":
			m.previousState = m.state
			m.newPatientForm()
			m.state = StatePatientForm
			return true, m, m.form.Init()
		}

	case StateInventory:
		switch key.String() {
		case "a":
			m.engine.AddDevice(models.HolterRhythm)
			m.statusMsg = "Added rhythm holter"
			m.refresh()
			return true, m, nil
		case "A":
			m.engine.AddDevice(models.HolterPressure)
			m.statusMsg = "Added pressure holter"
			m.refresh()
			return true, m, nil
		case "n":
			m.engine.AddCable()
			m.statusMsg = "Added cable"
			m.refresh()
			return true, m, nil
		case "e":
			if id, isCable, ok := m.inventoryModel.Selected(); ok {
				m.previousState = m.state
				m.newRenameForm(id, isCable, "")
				m.state = StateRenameForm
				return true, m, m.form.Init()
			}
		case "d":
			if id, isCable, ok := m.inventoryModel.Selected(); ok {
				m.removeID = id
				m.removeIsCable = isCable
				m.state = StateConfirmRemove
				return true, m, nil
			}
		}

	case StateHandover:
		if key.String() == "r" {
			if id, ok := m.handoverModel.SelectedID(); ok {
				m.engine.Release(id)
				m.statusMsg = "Released appointment"
				m.refresh()
				return true, m, nil
			}
		}

	case StateReports:
		switch key.String() {
		case "c":
			m.exportReport("csv")
			return true, m, nil
		case "p":
			m.exportReport("pdf")
			return true, m, nil
		case "/":
			m.previousState = m.state
			m.newReportFilterForm("")
			m.state = StateReportFilter
			return true, m, m.form.Init()
		case "e":
			if row, ok := m.reportsModel.Selected(); ok {
				if a, found := m.findAppointment(row.AppointmentID); found {
					m.previousState = m.state
					m.newApptEditForm(a)
					m.state = StateApptEdit
					return true, m, m.form.Init()
				}
			}
		case "m":
			if row, ok := m.reportsModel.Selected(); ok {
				if err := m.engine.UpdateStatus(row.AppointmentID, models.StatusReturned); err != nil {
					m.formError = err.Error()
				} else {
					m.formError = ""
					m.statusMsg = "Marked returned"
					m.refresh()
				}
				return true, m, nil
			}
		case "r":
			if row, ok := m.reportsModel.Selected(); ok {
				m.engine.Release(row.AppointmentID)
				m.statusMsg = "Released appointment"
				m.refresh()
				return true, m, nil
			}
		}

	case StateSettings:
		switch key.String() {
		case "a":
			m.previousState = m.state
			m.newBlockedForm()
			m.state = StateBlockedForm
			return true, m, m.form.Init()
		case "d":
			if date, ok := m.settingsModel.Selected(); ok {
				m.engine.RemoveBlockedDate(date)
				m.statusMsg = "Unblocked " + date
				m.refresh()
				return true, m, nil
			}
		}
	}

	return false, m, nil
}

func (m Model) findAppointment(id string) (models.Appointment, bool) {
	for _, a := range m.engine.Appointments() {
		if a.ID == id {
			return a, true
		}
	}
	return models.Appointment{}, false
}

// applyAppointmentEdit turns the edit form back into a record and replaces
// the appointment wholesale. The return date is recomputed from the edited
// install date and duration, preserving the install time of day.
func (m *Model) applyAppointmentEdit() error {
	a, ok := m.findAppointment(m.editForm.id)
	if !ok {
		return fmt.Errorf("appointment no longer exists")
	}

	install, err := parseDay(m.editForm.Install)
	if err != nil {
		return err
	}
	days, err := strconv.Atoi(strings.TrimSpace(m.editForm.Days))
	if err != nil || days < 1 {
		return fmt.Errorf("duration must be a whole number of days")
	}

	a.Status = models.AppointmentStatus(m.editForm.Status)
	a.InstallDate = install
	a.DurationDays = days
	a.ReturnDate = install.AddDate(0, 0, days)
	a.AdditionalServices = m.editForm.Services
	a.Notes = m.editForm.Notes
	return m.engine.EditAppointment(a)
}

func (m *Model) exportReport(format string) {
	now := time.Now()
	path := report.Filename(format, now)
	f, err := os.Create(path)
	if err != nil {
		m.formError = err.Error()
		return
	}
	defer f.Close()

	rows := report.Build(m.engine)
	if format == "pdf" {
		err = report.WritePDF(f, rows, now)
	} else {
		err = report.WriteCSV(f, rows)
	}
	if err != nil {
		m.formError = err.Error()
		return
	}
	m.formError = ""
	m.statusMsg = "Wrote " + path
}

// parseDay accepts a calendar day with an optional wall-clock time.
func parseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(models.DateTimeFormat, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(models.DateFormat, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("install date must be YYYY-MM-DD or YYYY-MM-DD HH:MM")
	}
	return t, nil
}
