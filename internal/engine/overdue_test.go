package engine

import (
	"strings"
	"testing"
	"time"

	"holterdesk/internal/models"
)

func TestScanOverdueFlagsPastDeadlines(t *testing.T) {
	e := New(testData())
	a := mustBook(t, e, BookingInput{
		PatientID:    "pat-1",
		HolterID:     "HR-1",
		CableID:      "CBL-1",
		InstallDate:  installBase,
		DurationDays: 2,
	})

	now := a.ReturnDate.Add(time.Hour)
	created := e.ScanOverdue(now)
	if len(created) != 1 {
		t.Fatalf("first scan created %d notifications, want 1", len(created))
	}
	n := created[0]
	if n.AppointmentID != a.ID {
		t.Errorf("notification appointment = %q, want %q", n.AppointmentID, a.ID)
	}
	if !strings.Contains(n.Message, "Ana Petrova") {
		t.Errorf("notification message %q does not name the patient", n.Message)
	}
	if got := e.Appointments()[0].Status; got != models.StatusOverdue {
		t.Errorf("appointment status = %q, want %q", got, models.StatusOverdue)
	}
}

func TestScanOverdueIsIdempotent(t *testing.T) {
	e := New(testData())
	a := mustBook(t, e, BookingInput{
		PatientID:    "pat-1",
		HolterID:     "HR-1",
		CableID:      "CBL-1",
		InstallDate:  installBase,
		DurationDays: 2,
	})

	now := a.ReturnDate.Add(time.Hour)
	e.ScanOverdue(now)
	for i := 0; i < 3; i++ {
		if created := e.ScanOverdue(now.Add(time.Duration(i) * time.Minute)); len(created) != 0 {
			t.Fatalf("repeat scan %d created %d notifications, want 0", i, len(created))
		}
	}
	if got := len(e.Notifications()); got != 1 {
		t.Errorf("notification count after repeated scans = %d, want 1", got)
	}

	// Even if the status is forced back to Scheduled, the notification is
	// not re-created.
	if err := e.UpdateStatus(a.ID, models.StatusScheduled); err != nil {
		t.Fatal(err)
	}
	if created := e.ScanOverdue(now); len(created) != 0 {
		t.Error("scan after status reset created a duplicate notification")
	}
}

func TestScanOverdueSkipsFutureAndNonScheduled(t *testing.T) {
	e := New(testData())
	future := mustBook(t, e, BookingInput{
		PatientID:    "pat-1",
		HolterID:     "HR-1",
		CableID:      "CBL-1",
		InstallDate:  installBase,
		DurationDays: 5,
	})
	released := mustBook(t, e, BookingInput{
		PatientID:    "pat-2",
		HolterID:     "HR-2",
		CableID:      "CBL-2",
		InstallDate:  installBase,
		DurationDays: 1,
	})
	e.Release(released.ID)

	// Past the released appointment's deadline but before the other's.
	now := released.ReturnDate.Add(time.Hour)
	if created := e.ScanOverdue(now); len(created) != 0 {
		t.Fatalf("scan created %d notifications, want 0", len(created))
	}

	// Scanning exactly at the deadline does not trigger: the deadline must
	// have passed.
	if created := e.ScanOverdue(future.ReturnDate); len(created) != 0 {
		t.Errorf("scan at the deadline instant created %d notifications", len(created))
	}
}

func TestScanOverdueOrdersNewestFirst(t *testing.T) {
	e := New(testData())
	first := mustBook(t, e, BookingInput{
		PatientID:    "pat-1",
		HolterID:     "HR-1",
		CableID:      "CBL-1",
		InstallDate:  installBase,
		DurationDays: 1,
	})
	second := mustBook(t, e, BookingInput{
		PatientID:    "pat-2",
		HolterID:     "HR-2",
		CableID:      "CBL-2",
		InstallDate:  installBase,
		DurationDays: 2,
	})

	e.ScanOverdue(first.ReturnDate.Add(time.Hour))
	e.ScanOverdue(second.ReturnDate.Add(time.Hour))

	ns := e.Notifications()
	if len(ns) != 2 {
		t.Fatalf("notification count = %d, want 2", len(ns))
	}
	if ns[0].AppointmentID != second.ID || ns[1].AppointmentID != first.ID {
		t.Error("notifications not ordered most recent first")
	}
}

func TestScanOverdueUnknownPatient(t *testing.T) {
	data := testData()
	data.Appointments = []models.Appointment{{
		ID:           "appt-orphan",
		PatientID:    "gone",
		HolterID:     "HR-1",
		CableID:      "CBL-1",
		InstallDate:  installBase,
		DurationDays: 1,
		ReturnDate:   installBase.AddDate(0, 0, 1),
		Status:       models.StatusScheduled,
	}}
	e := New(data)

	created := e.ScanOverdue(installBase.AddDate(0, 0, 2))
	if len(created) != 1 {
		t.Fatalf("scan created %d notifications, want 1", len(created))
	}
	if !strings.Contains(created[0].Message, UnknownPatientName) {
		t.Errorf("message %q missing the unknown-patient placeholder", created[0].Message)
	}
}
