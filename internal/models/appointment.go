package models

import "time"

const (
	// DateFormat is the calendar-day key used for blocked dates and
	// day-level comparisons.
	DateFormat = "2006-01-02"
	// TimeFormat is the wall-clock format for install and return times.
	TimeFormat = "15:04"
	// DateTimeFormat combines both for CLI input and report output.
	DateTimeFormat = "2006-01-02 15:04"
)

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	// StatusActive is reserved: it exists in the status domain but no
	// operation currently transitions into it.
	StatusActive    AppointmentStatus = "active"
	StatusOverdue   AppointmentStatus = "overdue"
	StatusReturned  AppointmentStatus = "returned"
	StatusCompleted AppointmentStatus = "completed"
)

// Terminal reports whether the appointment has released its device and
// cable. Only release produces a terminal appointment.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted
}

// Reserves reports whether the appointment still reserves its device and
// cable for its install interval. Returned devices are physically back at
// the clinic, so they no longer block overlapping bookings even before
// release.
func (s AppointmentStatus) Reserves() bool {
	return s != StatusCompleted && s != StatusReturned
}

// AdditionalServices are the service tags that can accompany a Holter
// appointment.
var AdditionalServices = []string{
	"ECG",
	"Echocardiogram",
	"Stress Test",
	"Analysis",
	"Pressure Holter",
}

type Appointment struct {
	ID                 string            `json:"id"`
	PatientID          string            `json:"patient_id"`
	HolterID           string            `json:"holter_id"`
	CableID            string            `json:"cable_id"`
	InstallDate        time.Time         `json:"install_date"`
	DurationDays       int               `json:"duration_days"`
	ReturnDate         time.Time         `json:"return_date"`
	Status             AppointmentStatus `json:"status"`
	AdditionalServices []string          `json:"additional_services"`
	Notes              string            `json:"notes,omitempty"`
}

// Overlaps reports whether the appointment's reservation interval
// [InstallDate, ReturnDate) intersects [start, end). Touching boundaries
// do not overlap.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.InstallDate.Before(end) && a.ReturnDate.After(start)
}
