package engine

import (
	"time"

	"github.com/google/uuid"

	"holterdesk/internal/logger"
	"holterdesk/internal/models"
)

// BookingInput carries everything needed to create an appointment. The
// return date is derived, never supplied.
type BookingInput struct {
	PatientID          string
	HolterID           string
	CableID            string
	InstallDate        time.Time
	DurationDays       int
	AdditionalServices []string
	// ReturnTime optionally overrides the wall-clock time of the derived
	// return date ("HH:MM"). A malformed value is ignored and the install
	// time carries over, as in the original intake form.
	ReturnTime string
	Notes      string
}

// computeReturnDate adds the loan duration as calendar days, preserving
// the install time-of-day unless an explicit return time overrides it.
func computeReturnDate(install time.Time, durationDays int, returnTime string) time.Time {
	rd := install.AddDate(0, 0, durationDays)
	if returnTime != "" {
		if t, err := time.Parse(models.TimeFormat, returnTime); err == nil {
			rd = time.Date(rd.Year(), rd.Month(), rd.Day(), t.Hour(), t.Minute(), 0, 0, rd.Location())
		}
	}
	return rd
}

// conflictFor is the single overlap predicate behind both the booking
// conflict check and the availability listing: it finds an appointment
// that still reserves the given resource over an interval intersecting
// [start, end). Intervals are half-open, so a booking starting exactly at
// another's return instant does not conflict.
func (e *Engine) conflictFor(isCable bool, resourceID string, start, end time.Time) (models.Appointment, bool) {
	for _, a := range e.appointments {
		ref := a.HolterID
		if isCable {
			ref = a.CableID
		}
		if ref == resourceID && a.Status.Reserves() && a.Overlaps(start, end) {
			return a, true
		}
	}
	return models.Appointment{}, false
}

// Book validates the request against the current collections, and on
// success creates a Scheduled appointment and marks its device and cable
// InUse. Nothing is mutated when an error is returned.
func (e *Engine) Book(in BookingInput) (models.Appointment, error) {
	if in.DurationDays < 1 {
		return models.Appointment{}, ValidationError{Field: "duration", Reason: "must be at least one day"}
	}
	if in.InstallDate.IsZero() {
		return models.Appointment{}, ValidationError{Field: "install date", Reason: "is required"}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	day := in.InstallDate.Format(models.DateFormat)
	if e.dateBlocked(day) {
		return models.Appointment{}, ValidationError{Field: "install date", Reason: "the doctor is unavailable on " + day}
	}
	if !e.patientExists(in.PatientID) {
		return models.Appointment{}, ValidationError{Field: "patient", Reason: "unknown id " + in.PatientID}
	}
	holterIdx := e.deviceIndex(in.HolterID)
	if holterIdx < 0 {
		return models.Appointment{}, ValidationError{Field: "holter", Reason: "unknown id " + in.HolterID}
	}
	cableIdx := e.cableIndex(in.CableID)
	if cableIdx < 0 {
		return models.Appointment{}, ValidationError{Field: "cable", Reason: "unknown id " + in.CableID}
	}

	returnDate := computeReturnDate(in.InstallDate, in.DurationDays, in.ReturnTime)

	if existing, ok := e.conflictFor(false, in.HolterID, in.InstallDate, returnDate); ok {
		return models.Appointment{}, ConflictError{Resource: "holter", ResourceID: in.HolterID, AppointmentID: existing.ID}
	}
	if existing, ok := e.conflictFor(true, in.CableID, in.InstallDate, returnDate); ok {
		return models.Appointment{}, ConflictError{Resource: "cable", ResourceID: in.CableID, AppointmentID: existing.ID}
	}

	a := models.Appointment{
		ID:                 uuid.New().String(),
		PatientID:          in.PatientID,
		HolterID:           in.HolterID,
		CableID:            in.CableID,
		InstallDate:        in.InstallDate,
		DurationDays:       in.DurationDays,
		ReturnDate:         returnDate,
		Status:             models.StatusScheduled,
		AdditionalServices: append([]string(nil), in.AdditionalServices...),
		Notes:              in.Notes,
	}
	e.appointments = append(e.appointments, a)
	e.devices[holterIdx].Status = models.ResourceInUse
	e.cables[cableIdx].Status = models.ResourceInUse

	logger.Info("appointment booked", "id", a.ID, "holter", a.HolterID, "cable", a.CableID, "return", a.ReturnDate)
	a.AdditionalServices = append([]string(nil), a.AdditionalServices...)
	return a, nil
}

// AvailableResources lists the devices and cables free for the given
// install interval. Availability is defined purely by the overlap
// predicate used by Book, independent of each resource's stored status,
// so the two can never disagree.
func (e *Engine) AvailableResources(install time.Time, durationDays int, returnTime string) ([]models.Device, []models.Cable) {
	if install.IsZero() || durationDays < 1 {
		return nil, nil
	}
	end := computeReturnDate(install, durationDays, returnTime)

	e.mu.Lock()
	defer e.mu.Unlock()

	var devices []models.Device
	for _, d := range e.devices {
		if _, ok := e.conflictFor(false, d.ID, install, end); !ok {
			devices = append(devices, d)
		}
	}
	var cables []models.Cable
	for _, c := range e.cables {
		if _, ok := e.conflictFor(true, c.ID, install, end); !ok {
			cables = append(cables, c)
		}
	}
	return devices, cables
}

// EditAppointment replaces an appointment record wholesale. Dates and
// status may change freely; no overlap re-validation happens here, which
// mirrors the original edit dialog.
func (e *Engine) EditAppointment(updated models.Appointment) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.appointments {
		if e.appointments[i].ID == updated.ID {
			updated.AdditionalServices = append([]string(nil), updated.AdditionalServices...)
			e.appointments[i] = updated
			return nil
		}
	}
	return NotFoundError{Kind: "appointment", ID: updated.ID}
}

// UpdateStatus sets an appointment's status directly. No transition
// legality is enforced; the lifecycle operations are the intended path.
func (e *Engine) UpdateStatus(id string, status models.AppointmentStatus) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.appointments {
		if e.appointments[i].ID == id {
			e.appointments[i].Status = status
			return nil
		}
	}
	return NotFoundError{Kind: "appointment", ID: id}
}

// Release completes an appointment and hands its device and cable back to
// the Available pool. Releasing an unknown appointment is a logged no-op,
// and releasing twice leaves the same end state.
func (e *Engine) Release(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	for i := range e.appointments {
		if e.appointments[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		logger.Warn("release of unknown appointment ignored", "id", id)
		return
	}

	a := &e.appointments[idx]
	a.Status = models.StatusCompleted
	if i := e.deviceIndex(a.HolterID); i >= 0 {
		e.devices[i].Status = models.ResourceAvailable
	}
	if i := e.cableIndex(a.CableID); i >= 0 {
		e.cables[i].Status = models.ResourceAvailable
	}
	logger.Info("appointment released", "id", id, "holter", a.HolterID, "cable", a.CableID)
}

func (e *Engine) patientExists(id string) bool {
	for _, p := range e.patients {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (e *Engine) deviceIndex(id string) int {
	for i := range e.devices {
		if e.devices[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) cableIndex(id string) int {
	for i := range e.cables {
		if e.cables[i].ID == id {
			return i
		}
	}
	return -1
}
