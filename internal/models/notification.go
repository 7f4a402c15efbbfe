package models

import "time"

// Notification is a session-lifetime alert created the first time an
// appointment is detected as overdue. Notifications are never mutated.
type Notification struct {
	ID            string    `json:"id"`
	AppointmentID string    `json:"appointment_id"`
	Message       string    `json:"message"`
	CreatedAt     time.Time `json:"created_at"`
}
