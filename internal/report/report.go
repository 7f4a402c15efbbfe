// Package report flattens the appointment book into rows for CSV and PDF
// export. Rows reference resources by serial number so the exported file
// stays readable after devices are renamed or retired.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"holterdesk/internal/engine"
	"holterdesk/internal/models"
)

// MissingSerial marks a device or cable that has since been removed from
// the inventory.
const MissingSerial = "N/A"

// Row is one exported appointment. AppointmentID is carried for
// interactive row actions and is not part of the exported columns.
type Row struct {
	AppointmentID string

	PatientName  string
	RecordNumber string
	HolterSerial string
	CableSerial  string
	InstallDate  string
	ReturnDate   string
	Status       string
	Services     string
	Notes        string
}

// Header returns the column titles in export order.
func Header() []string {
	return []string{
		"Patient", "Record #", "Holter S/N", "Cable S/N",
		"Install", "Return", "Status", "Services", "Notes",
	}
}

// Fields returns the row's values in the same order as Header.
func (r Row) Fields() []string {
	return []string{
		r.PatientName, r.RecordNumber, r.HolterSerial, r.CableSerial,
		r.InstallDate, r.ReturnDate, r.Status, r.Services, r.Notes,
	}
}

// Build assembles report rows from the engine's current state, newest
// install first.
func Build(e *engine.Engine) []Row {
	patients := make(map[string]models.Patient)
	for _, p := range e.Patients() {
		patients[p.ID] = p
	}
	deviceSerials := make(map[string]string)
	for _, d := range e.Devices() {
		deviceSerials[d.ID] = d.SerialNumber
	}
	cableSerials := make(map[string]string)
	for _, c := range e.Cables() {
		cableSerials[c.ID] = c.SerialNumber
	}

	appointments := e.Appointments()
	sort.Slice(appointments, func(i, j int) bool {
		return appointments[i].InstallDate.After(appointments[j].InstallDate)
	})

	rows := make([]Row, 0, len(appointments))
	for _, a := range appointments {
		row := Row{
			AppointmentID: a.ID,
			PatientName:   engine.UnknownPatientName,
			HolterSerial:  serialOr(deviceSerials, a.HolterID),
			CableSerial:   serialOr(cableSerials, a.CableID),
			InstallDate:   a.InstallDate.Format(models.DateTimeFormat),
			ReturnDate:    a.ReturnDate.Format(models.DateTimeFormat),
			Status:        string(a.Status),
			Services:      strings.Join(a.AdditionalServices, ", "),
			Notes:         a.Notes,
		}
		if p, ok := patients[a.PatientID]; ok {
			row.PatientName = p.Name
			row.RecordNumber = p.RecordNumber
		}
		rows = append(rows, row)
	}
	return rows
}

// Filename suggests an export filename carrying the report date.
func Filename(ext string, now time.Time) string {
	return fmt.Sprintf("holter-report-%s.%s", now.Format(models.DateFormat), ext)
}

func serialOr(serials map[string]string, id string) string {
	if s, ok := serials[id]; ok {
		return s
	}
	return MissingSerial
}
