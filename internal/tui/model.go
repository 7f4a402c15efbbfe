package tui

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"holterdesk/internal/engine"
	"holterdesk/internal/models"
	"holterdesk/internal/tui/components/booking"
	"holterdesk/internal/tui/components/dashboard"
	"holterdesk/internal/tui/components/handover"
	"holterdesk/internal/tui/components/inventory"
	"holterdesk/internal/tui/components/reports"
	"holterdesk/internal/tui/components/settings"
)

type SessionState int

const (
	StateLogin SessionState = iota
	StateDashboard
	StateBooking
	StateInventory
	StateHandover
	StateReports
	StateSettings
	StateBookingWindow
	StateBookingDetails
	StatePatientForm
	StateBlockedForm
	StateRenameForm
	StateReportFilter
	StateApptEdit
	StateConfirmRemove
)

// firstTab and lastTab bound the states reachable with tab cycling.
const (
	firstTab = StateDashboard
	lastTab  = StateSettings
)

var errDuration = errors.New("loan duration is 1 to 7 days")

type LoginFormModel struct {
	Username string
	Password string
}

// BookingWindowModel is the first booking step: pick the loan window so
// availability can be computed before resources are offered.
type BookingWindowModel struct {
	Install    string
	Days       string
	ReturnTime string
}

type BookingDetailsModel struct {
	PatientID string
	HolterID  string
	CableID   string
	Services  []string
	Notes     string

	install    time.Time
	days       int
	returnTime string
}

type PatientFormModel struct {
	Name     string
	Record   string
	Mobile   string
	Landline string
	Age      string
}

type BlockedFormModel struct {
	Date string
}

type RenameFormModel struct {
	Serial string

	targetID string
	isCable  bool
}

type ReportFilterModel struct {
	Query string
}

type ApptEditModel struct {
	Status   string
	Install  string
	Days     string
	Services []string
	Notes    string

	id string
}

type Model struct {
	engine        *engine.Engine
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	dashboardModel dashboard.Model
	bookingModel   booking.Model
	inventoryModel inventory.Model
	handoverModel  handover.Model
	reportsModel   reports.Model
	settingsModel  settings.Model

	form        *huh.Form
	loginForm   *LoginFormModel
	windowForm  *BookingWindowModel
	detailsForm *BookingDetailsModel
	patientForm *PatientFormModel
	blockedForm *BlockedFormModel
	renameForm  *RenameFormModel
	filterForm  *ReportFilterModel
	editForm    *ApptEditModel

	removeID      string
	removeIsCable bool

	statusMsg string
	formError string
	quitting  bool
	width     int
	height    int
}

func NewModel(e *engine.Engine) Model {
	m := Model{
		engine:         e,
		state:          StateLogin,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		dashboardModel: dashboard.New(0, 0),
		bookingModel:   booking.New(0, 0),
		inventoryModel: inventory.New(0, 10),
		handoverModel:  handover.New(0, 10),
		reportsModel:   reports.New(0, 0),
		settingsModel:  settings.New(0, 0),
	}
	m.newLoginForm()

	// Flag loans that went overdue while the app was closed.
	e.ScanOverdue(time.Now())
	m.refresh()
	return m
}

func (m *Model) newLoginForm() {
	m.loginForm = &LoginFormModel{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&m.loginForm.Username),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.loginForm.Password),
		),
	).WithTheme(huh.ThemeDracula())
}

func (m *Model) newBookingWindowForm() {
	m.windowForm = &BookingWindowModel{
		Install: time.Now().Format(models.DateFormat),
		Days:    "1",
	}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Install date").
				Description("YYYY-MM-DD or YYYY-MM-DD HH:MM").
				Value(&m.windowForm.Install),
			huh.NewInput().
				Title("Duration (days)").
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 || n > 7 {
						return errDuration
					}
					return nil
				}).
				Value(&m.windowForm.Days),
			huh.NewInput().
				Title("Return time").
				Description("HH:MM, optional").
				Value(&m.windowForm.ReturnTime),
		),
	).WithTheme(huh.ThemeDracula())
}

func (m *Model) newBookingDetailsForm(install time.Time, days int, returnTime string,
	devices []models.Device, cables []models.Cable, patients []models.Patient) {

	m.detailsForm = &BookingDetailsModel{
		install:    install,
		days:       days,
		returnTime: returnTime,
	}

	patientOpts := make([]huh.Option[string], 0, len(patients))
	for _, p := range patients {
		patientOpts = append(patientOpts, huh.NewOption(p.Name+" ("+p.RecordNumber+")", p.ID))
	}
	deviceOpts := make([]huh.Option[string], 0, len(devices))
	for _, d := range devices {
		deviceOpts = append(deviceOpts, huh.NewOption(d.ID+" "+d.SerialNumber+" ("+string(d.Kind)+")", d.ID))
	}
	cableOpts := make([]huh.Option[string], 0, len(cables))
	for _, c := range cables {
		cableOpts = append(cableOpts, huh.NewOption(c.ID+" "+c.SerialNumber, c.ID))
	}
	serviceOpts := make([]huh.Option[string], 0, len(models.AdditionalServices))
	for _, s := range models.AdditionalServices {
		serviceOpts = append(serviceOpts, huh.NewOption(s, s))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Patient").
				Options(patientOpts...).
				Value(&m.detailsForm.PatientID),
			huh.NewSelect[string]().
				Title("Holter").
				Options(deviceOpts...).
				Value(&m.detailsForm.HolterID),
			huh.NewSelect[string]().
				Title("Cable").
				Options(cableOpts...).
				Value(&m.detailsForm.CableID),
			huh.NewMultiSelect[string]().
				Title("Additional services").
				Options(serviceOpts...).
				Value(&m.detailsForm.Services),
			huh.NewInput().
				Title("Notes").
				Value(&m.detailsForm.Notes),
		),
	).WithTheme(huh.ThemeDracula())
}

func (m *Model) newPatientForm() {
	m.patientForm = &PatientFormModel{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Full name").
				Value(&m.patientForm.Name),
			huh.NewInput().
				Title("Record number").
				Value(&m.patientForm.Record),
			huh.NewInput().
				Title("Mobile phone").
				Value(&m.patientForm.Mobile),
			huh.NewInput().
				Title("Landline").
				Value(&m.patientForm.Landline),
			huh.NewInput().
				Title("Age").
				Value(&m.patientForm.Age),
		),
	).WithTheme(huh.ThemeDracula())
}

func (m *Model) newBlockedForm() {
	m.blockedForm = &BlockedFormModel{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Blocked day").
				Description("YYYY-MM-DD").
				Value(&m.blockedForm.Date),
		),
	).WithTheme(huh.ThemeDracula())
}

func (m *Model) newReportFilterForm(current string) {
	m.filterForm = &ReportFilterModel{Query: current}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Filter").
				Description("patient name or record number, empty clears").
				Value(&m.filterForm.Query),
		),
	).WithTheme(huh.ThemeDracula())
}

func (m *Model) newApptEditForm(a models.Appointment) {
	m.editForm = &ApptEditModel{
		Status:   string(a.Status),
		Install:  a.InstallDate.Format(models.DateTimeFormat),
		Days:     strconv.Itoa(a.DurationDays),
		Services: append([]string(nil), a.AdditionalServices...),
		Notes:    a.Notes,
		id:       a.ID,
	}

	statusOpts := []huh.Option[string]{
		huh.NewOption("scheduled", string(models.StatusScheduled)),
		huh.NewOption("active", string(models.StatusActive)),
		huh.NewOption("overdue", string(models.StatusOverdue)),
		huh.NewOption("returned", string(models.StatusReturned)),
		huh.NewOption("completed", string(models.StatusCompleted)),
	}
	serviceOpts := make([]huh.Option[string], 0, len(models.AdditionalServices))
	for _, s := range models.AdditionalServices {
		serviceOpts = append(serviceOpts, huh.NewOption(s, s))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Status").
				Options(statusOpts...).
				Value(&m.editForm.Status),
			huh.NewInput().
				Title("Install date").
				Description("YYYY-MM-DD HH:MM").
				Value(&m.editForm.Install),
			huh.NewInput().
				Title("Duration (days)").
				Value(&m.editForm.Days),
			huh.NewMultiSelect[string]().
				Title("Additional services").
				Options(serviceOpts...).
				Value(&m.editForm.Services),
			huh.NewInput().
				Title("Notes").
				Value(&m.editForm.Notes),
		),
	).WithTheme(huh.ThemeDracula())
}

func (m *Model) newRenameForm(id string, isCable bool, current string) {
	m.renameForm = &RenameFormModel{Serial: current, targetID: id, isCable: isCable}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Serial number").
				Value(&m.renameForm.Serial),
		),
	).WithTheme(huh.ThemeDracula())
}

// refresh pulls fresh snapshots into every component.
func (m *Model) refresh() {
	appointments := m.engine.Appointments()
	patients := m.engine.Patients()
	devices := m.engine.Devices()
	cables := m.engine.Cables()
	notifications := m.engine.Notifications()

	m.dashboardModel.SetData(appointments, patients, devices, cables, notifications, time.Now())
	m.bookingModel.SetData(appointments, patients)
	m.inventoryModel.SetData(devices, cables)
	m.handoverModel.SetData(appointments, patients)
	m.settingsModel.SetDates(m.engine.BlockedDates())
	m.refreshReport()
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateDashboard, StateBooking:
		keys = append(keys, m.keys.Book, m.keys.Add)
	case StateInventory:
		keys = append(keys, m.keys.Add, m.keys.Rename, m.keys.Remove)
	case StateHandover:
		keys = append(keys, m.keys.Release)
	case StateReports:
		keys = append(keys, m.keys.ExportC, m.keys.ExportP)
	case StateSettings:
		keys = append(keys, m.keys.Add, m.keys.Remove)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case StateDashboard, StateBooking:
		actions = []key.Binding{m.keys.Book, m.keys.Add}
	case StateInventory:
		actions = []key.Binding{m.keys.Add, m.keys.Rename, m.keys.Remove}
	case StateHandover:
		actions = []key.Binding{m.keys.Release}
	case StateReports:
		actions = []key.Binding{m.keys.ExportC, m.keys.ExportP}
	case StateSettings:
		actions = []key.Binding{m.keys.Add, m.keys.Remove}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.form.Init(), tickCmd())
}
