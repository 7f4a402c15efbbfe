package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"holterdesk/internal/logger"
	"holterdesk/internal/models"
)

// UnknownPatientName is the sentinel used when a notification's patient
// record has been removed or never existed.
const UnknownPatientName = "unknown"

// ScanOverdue walks the Scheduled appointments whose return deadline has
// passed, transitions them to Overdue, and creates at most one
// notification per appointment across the whole session. The scan runs at
// startup and again on a timer, so this idempotence is what keeps the
// notification list from growing on every tick.
func (e *Engine) ScanOverdue(now time.Time) []models.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()

	var created []models.Notification
	for i := range e.appointments {
		a := &e.appointments[i]
		if a.Status != models.StatusScheduled || !now.After(a.ReturnDate) {
			continue
		}

		if !e.notified[a.ID] {
			n := models.Notification{
				ID:            uuid.New().String(),
				AppointmentID: a.ID,
				Message: fmt.Sprintf(
					"Return deadline for patient %s has passed. Please call to follow up on the Holter handover.",
					e.patientName(a.PatientID)),
				CreatedAt: now,
			}
			// Most recent first.
			e.notifications = append([]models.Notification{n}, e.notifications...)
			e.notified[a.ID] = true
			created = append(created, n)
			logger.Info("overdue appointment detected", "id", a.ID, "return", a.ReturnDate)
		}
		a.Status = models.StatusOverdue
	}
	return created
}

func (e *Engine) patientName(id string) string {
	for _, p := range e.patients {
		if p.ID == id {
			return p.Name
		}
	}
	return UnknownPatientName
}
