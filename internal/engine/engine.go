// Package engine owns the clinic's in-memory collections and keeps device
// availability, appointment status, and overdue notifications mutually
// consistent. All mutation goes through the engine; callers only ever see
// copies of its records.
package engine

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"holterdesk/internal/models"
)

// InitialData carries the collections an Engine starts with. Device and
// cable statuses in the input are advisory: the engine re-derives InUse
// from the appointments it is given, preserving only explicit Broken
// markers.
type InitialData struct {
	Devices      []models.Device
	Cables       []models.Cable
	Patients     []models.Patient
	Appointments []models.Appointment
	BlockedDates []string
}

// Engine is the single writer for all clinic state. Operations run under
// one mutex so the read-then-write sequences behind the overlap and
// idempotence guarantees stay atomic even if a caller drives the engine
// from more than one goroutine.
type Engine struct {
	mu sync.Mutex

	devices       []models.Device
	cables        []models.Cable
	patients      []models.Patient
	appointments  []models.Appointment
	notifications []models.Notification
	blockedDates  []string

	// notified indexes appointment ids that already produced an overdue
	// notification, so repeated scans stay idempotent.
	notified map[string]bool

	rhythmSeq   int
	pressureSeq int
	cableSeq    int
}

// New builds an engine around the given collections and reconciles every
// device and cable status with the appointments that reference it.
func New(data InitialData) *Engine {
	e := &Engine{
		devices:      append([]models.Device(nil), data.Devices...),
		cables:       append([]models.Cable(nil), data.Cables...),
		patients:     append([]models.Patient(nil), data.Patients...),
		blockedDates: append([]string(nil), data.BlockedDates...),
		notified:     make(map[string]bool),
	}

	for _, a := range data.Appointments {
		a.AdditionalServices = append([]string(nil), a.AdditionalServices...)
		e.appointments = append(e.appointments, a)
	}

	inUseHolters := make(map[string]bool)
	inUseCables := make(map[string]bool)
	for _, a := range e.appointments {
		if !a.Status.Terminal() {
			inUseHolters[a.HolterID] = true
			inUseCables[a.CableID] = true
		}
	}
	for i := range e.devices {
		e.devices[i].Status = reconcileStatus(e.devices[i].Status, inUseHolters[e.devices[i].ID])
		e.bumpSeq(e.devices[i].ID)
	}
	for i := range e.cables {
		e.cables[i].Status = reconcileStatus(e.cables[i].Status, inUseCables[e.cables[i].ID])
		e.bumpSeq(e.cables[i].ID)
	}

	return e
}

func reconcileStatus(current models.ResourceStatus, inUse bool) models.ResourceStatus {
	if current == models.ResourceBroken {
		return current
	}
	if inUse {
		return models.ResourceInUse
	}
	return models.ResourceAvailable
}

// bumpSeq advances the id counters past any seeded HR-n/HP-n/CBL-n id so
// later additions never recycle an identifier, even after removals.
func (e *Engine) bumpSeq(id string) {
	idx := strings.LastIndex(id, "-")
	if idx < 0 {
		return
	}
	n, err := strconv.Atoi(id[idx+1:])
	if err != nil {
		return
	}
	switch {
	case strings.HasPrefix(id, "HR-") && n > e.rhythmSeq:
		e.rhythmSeq = n
	case strings.HasPrefix(id, "HP-") && n > e.pressureSeq:
		e.pressureSeq = n
	case strings.HasPrefix(id, "CBL-") && n > e.cableSeq:
		e.cableSeq = n
	}
}

// AddDevice allocates a fresh holter of the given kind. It always
// succeeds.
func (e *Engine) AddDevice(kind models.HolterKind) models.Device {
	e.mu.Lock()
	defer e.mu.Unlock()

	var d models.Device
	if kind == models.HolterPressure {
		e.pressureSeq++
		d = models.Device{
			ID:           fmt.Sprintf("HP-%d", e.pressureSeq),
			Kind:         models.HolterPressure,
			SerialNumber: fmt.Sprintf("P-%03d", e.pressureSeq),
			Status:       models.ResourceAvailable,
		}
	} else {
		e.rhythmSeq++
		d = models.Device{
			ID:           fmt.Sprintf("HR-%d", e.rhythmSeq),
			Kind:         models.HolterRhythm,
			SerialNumber: fmt.Sprintf("R-%03d", e.rhythmSeq),
			Status:       models.ResourceAvailable,
		}
	}
	e.devices = append(e.devices, d)
	return d
}

// AddCable allocates a fresh cable. It always succeeds.
func (e *Engine) AddCable() models.Cable {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cableSeq++
	c := models.Cable{
		ID:           fmt.Sprintf("CBL-%d", e.cableSeq),
		SerialNumber: fmt.Sprintf("C-%d", e.cableSeq),
		Status:       models.ResourceAvailable,
	}
	e.cables = append(e.cables, c)
	return c
}

// RenameSerial updates a device or cable serial label in place. Renaming
// an id that does not exist is a no-op, matching the rest of the
// inventory surface which tolerates dangling references.
func (e *Engine) RenameSerial(id, newSerial string, isCable bool) error {
	if strings.TrimSpace(newSerial) == "" {
		return ValidationError{Field: "serial number", Reason: "cannot be empty"}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if isCable {
		for i := range e.cables {
			if e.cables[i].ID == id {
				e.cables[i].SerialNumber = newSerial
				break
			}
		}
		return nil
	}
	for i := range e.devices {
		if e.devices[i].ID == id {
			e.devices[i].SerialNumber = newSerial
			break
		}
	}
	return nil
}

// RemoveResource deletes a device or cable from the fleet. A resource
// that is still referenced by a non-terminal appointment cannot be
// removed; releasing the appointment first clears the way.
func (e *Engine) RemoveResource(id string, isCable bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	resource := "holter"
	if isCable {
		resource = "cable"
	}
	for _, a := range e.appointments {
		if a.Status.Terminal() {
			continue
		}
		ref := a.HolterID
		if isCable {
			ref = a.CableID
		}
		if ref == id {
			return ConflictError{Resource: resource, ResourceID: id, AppointmentID: a.ID}
		}
	}

	if isCable {
		for i := range e.cables {
			if e.cables[i].ID == id {
				e.cables = append(e.cables[:i], e.cables[i+1:]...)
				break
			}
		}
		return nil
	}
	for i := range e.devices {
		if e.devices[i].ID == id {
			e.devices = append(e.devices[:i], e.devices[i+1:]...)
			break
		}
	}
	return nil
}

// PatientInput carries the registration form fields for a new patient.
type PatientInput struct {
	Name          string
	RecordNumber  string
	MobilePhone   string
	LandlinePhone string
	Age           *int
}

// RegisterPatient adds a patient record. Record numbers are clinic
// identifiers and are not required to be unique.
func (e *Engine) RegisterPatient(in PatientInput) (models.Patient, error) {
	p := models.Patient{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(in.Name),
		RecordNumber:  strings.TrimSpace(in.RecordNumber),
		MobilePhone:   strings.TrimSpace(in.MobilePhone),
		LandlinePhone: strings.TrimSpace(in.LandlinePhone),
		Age:           in.Age,
	}
	if err := p.Validate(); err != nil {
		return models.Patient{}, ValidationError{Field: "patient", Reason: err.Error()}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.patients = append(e.patients, p)
	return p, nil
}

// AddBlockedDate marks a calendar day (YYYY-MM-DD) as unavailable for new
// installs. Already-blocked days are left alone; existing appointments on
// the day are untouched.
func (e *Engine) AddBlockedDate(date string) {
	if strings.TrimSpace(date) == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, d := range e.blockedDates {
		if d == date {
			return
		}
	}
	e.blockedDates = append(e.blockedDates, date)
}

// RemoveBlockedDate unblocks a calendar day.
func (e *Engine) RemoveBlockedDate(date string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, d := range e.blockedDates {
		if d == date {
			e.blockedDates = append(e.blockedDates[:i], e.blockedDates[i+1:]...)
			return
		}
	}
}

func (e *Engine) dateBlocked(date string) bool {
	for _, d := range e.blockedDates {
		if d == date {
			return true
		}
	}
	return false
}

// Devices returns a snapshot of the holter fleet.
func (e *Engine) Devices() []models.Device {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.Device(nil), e.devices...)
}

// Cables returns a snapshot of the cable fleet.
func (e *Engine) Cables() []models.Cable {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.Cable(nil), e.cables...)
}

// Patients returns a snapshot of the patient registry.
func (e *Engine) Patients() []models.Patient {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.Patient(nil), e.patients...)
}

// Appointments returns a snapshot of every appointment, including
// completed ones. Appointments are never physically deleted.
func (e *Engine) Appointments() []models.Appointment {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Appointment, len(e.appointments))
	for i, a := range e.appointments {
		a.AdditionalServices = append([]string(nil), a.AdditionalServices...)
		out[i] = a
	}
	return out
}

// Notifications returns the session's notifications, most recent first.
func (e *Engine) Notifications() []models.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.Notification(nil), e.notifications...)
}

// BlockedDates returns the blocked calendar days in insertion order.
func (e *Engine) BlockedDates() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.blockedDates...)
}
