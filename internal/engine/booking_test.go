package engine

import (
	"testing"
	"time"

	"holterdesk/internal/models"
)

func testData() InitialData {
	return InitialData{
		Devices: []models.Device{
			{ID: "HR-1", Kind: models.HolterRhythm, SerialNumber: "R-001", Status: models.ResourceAvailable},
			{ID: "HR-2", Kind: models.HolterRhythm, SerialNumber: "R-002", Status: models.ResourceAvailable},
			{ID: "HP-1", Kind: models.HolterPressure, SerialNumber: "P-001", Status: models.ResourceAvailable},
		},
		Cables: []models.Cable{
			{ID: "CBL-1", SerialNumber: "C-1", Status: models.ResourceAvailable},
			{ID: "CBL-2", SerialNumber: "C-2", Status: models.ResourceAvailable},
		},
		Patients: []models.Patient{
			{ID: "pat-1", Name: "Ana Petrova", RecordNumber: "P001", MobilePhone: "0888123456"},
			{ID: "pat-2", Name: "Boris Iliev", RecordNumber: "P002", MobilePhone: "0888654321"},
		},
	}
}

func mustBook(t *testing.T, e *Engine, in BookingInput) models.Appointment {
	t.Helper()
	a, err := e.Book(in)
	if err != nil {
		t.Fatalf("Book(%+v) failed: %v", in, err)
	}
	return a
}

var installBase = time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

func TestComputeReturnDate(t *testing.T) {
	install := time.Date(2024, 7, 20, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		days       int
		returnTime string
		want       time.Time
	}{
		{
			name: "preserves install time of day",
			days: 2,
			want: time.Date(2024, 7, 22, 10, 0, 0, 0, time.UTC),
		},
		{
			name:       "explicit return time override",
			days:       3,
			returnTime: "08:30",
			want:       time.Date(2024, 7, 23, 8, 30, 0, 0, time.UTC),
		},
		{
			name:       "malformed override is ignored",
			days:       1,
			returnTime: "25:99",
			want:       time.Date(2024, 7, 21, 10, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeReturnDate(install, tt.days, tt.returnTime)
			if !got.Equal(tt.want) {
				t.Errorf("computeReturnDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBookMarksResourcesInUse(t *testing.T) {
	e := New(testData())

	a := mustBook(t, e, BookingInput{
		PatientID:    "pat-1",
		HolterID:     "HR-1",
		CableID:      "CBL-1",
		InstallDate:  installBase,
		DurationDays: 2,
	})

	if a.Status != models.StatusScheduled {
		t.Errorf("new appointment status = %q, want %q", a.Status, models.StatusScheduled)
	}
	want := installBase.AddDate(0, 0, 2)
	if !a.ReturnDate.Equal(want) {
		t.Errorf("return date = %v, want %v", a.ReturnDate, want)
	}

	for _, d := range e.Devices() {
		if d.ID == "HR-1" && d.Status != models.ResourceInUse {
			t.Errorf("HR-1 status = %q, want %q", d.Status, models.ResourceInUse)
		}
	}
	for _, c := range e.Cables() {
		if c.ID == "CBL-1" && c.Status != models.ResourceInUse {
			t.Errorf("CBL-1 status = %q, want %q", c.Status, models.ResourceInUse)
		}
	}
}

func TestBookValidation(t *testing.T) {
	valid := BookingInput{
		PatientID:    "pat-1",
		HolterID:     "HR-1",
		CableID:      "CBL-1",
		InstallDate:  installBase,
		DurationDays: 2,
	}

	tests := []struct {
		name   string
		mutate func(*BookingInput)
	}{
		{"zero duration", func(in *BookingInput) { in.DurationDays = 0 }},
		{"negative duration", func(in *BookingInput) { in.DurationDays = -1 }},
		{"missing install date", func(in *BookingInput) { in.InstallDate = time.Time{} }},
		{"unknown patient", func(in *BookingInput) { in.PatientID = "nobody" }},
		{"unknown holter", func(in *BookingInput) { in.HolterID = "HR-99" }},
		{"unknown cable", func(in *BookingInput) { in.CableID = "CBL-99" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(testData())
			in := valid
			tt.mutate(&in)
			_, err := e.Book(in)
			if !IsValidation(err) {
				t.Errorf("Book() error = %v, want validation error", err)
			}
			if len(e.Appointments()) != 0 {
				t.Errorf("failed booking left %d appointments behind", len(e.Appointments()))
			}
		})
	}
}

func TestBookBlockedDate(t *testing.T) {
	e := New(testData())
	e.AddBlockedDate(installBase.Format(models.DateFormat))

	_, err := e.Book(BookingInput{
		PatientID:    "pat-1",
		HolterID:     "HR-1",
		CableID:      "CBL-1",
		InstallDate:  installBase,
		DurationDays: 2,
	})
	if !IsValidation(err) {
		t.Fatalf("Book() on blocked date error = %v, want validation error", err)
	}

	// Unblocking the day clears the way.
	e.RemoveBlockedDate(installBase.Format(models.DateFormat))
	mustBook(t, e, BookingInput{
		PatientID:    "pat-1",
		HolterID:     "HR-1",
		CableID:      "CBL-1",
		InstallDate:  installBase,
		DurationDays: 2,
	})
}

func TestBookOverlapConflict(t *testing.T) {
	e := New(testData())
	first := mustBook(t, e, BookingInput{
		PatientID:    "pat-1",
		HolterID:     "HR-1",
		CableID:      "CBL-1",
		InstallDate:  installBase,
		DurationDays: 2,
	})

	// Same holter, overlapping interval.
	_, err := e.Book(BookingInput{
		PatientID:    "pat-2",
		HolterID:     "HR-1",
		CableID:      "CBL-2",
		InstallDate:  installBase.AddDate(0, 0, 1),
		DurationDays: 2,
	})
	if !IsConflict(err) {
		t.Errorf("overlapping holter booking error = %v, want conflict", err)
	}

	// Different holter, same cable.
	_, err = e.Book(BookingInput{
		PatientID:    "pat-2",
		HolterID:     "HR-2",
		CableID:      "CBL-1",
		InstallDate:  installBase.AddDate(0, 0, 1),
		DurationDays: 2,
	})
	if !IsConflict(err) {
		t.Errorf("overlapping cable booking error = %v, want conflict", err)
	}

	// Installing exactly at the first booking's return instant is allowed:
	// the reservation interval is half-open.
	mustBook(t, e, BookingInput{
		PatientID:    "pat-2",
		HolterID:     "HR-1",
		CableID:      "CBL-1",
		InstallDate:  first.ReturnDate,
		DurationDays: 3,
	})
}

func TestAvailableResourcesAgreesWithBook(t *testing.T) {
	e := New(testData())
	mustBook(t, e, BookingInput{
		PatientID:    "pat-1",
		HolterID:     "HR-1",
		CableID:      "CBL-1",
		InstallDate:  installBase,
		DurationDays: 2,
	})

	devices, cables := e.AvailableResources(installBase.AddDate(0, 0, 1), 1, "")
	for _, d := range devices {
		if d.ID == "HR-1" {
			t.Error("HR-1 listed available during its reservation")
		}
	}
	for _, c := range cables {
		if c.ID == "CBL-1" {
			t.Error("CBL-1 listed available during its reservation")
		}
	}

	// Every listed resource must actually book without conflict.
	if len(devices) == 0 || len(cables) == 0 {
		t.Fatal("expected free resources for an overlapping window")
	}
	mustBook(t, e, BookingInput{
		PatientID:    "pat-2",
		HolterID:     devices[0].ID,
		CableID:      cables[0].ID,
		InstallDate:  installBase.AddDate(0, 0, 1),
		DurationDays: 1,
	})

	// A window starting at the return instant sees the full fleet again.
	devices, cables = e.AvailableResources(installBase.AddDate(0, 0, 2), 1, "")
	if len(devices) != len(e.Devices()) {
		t.Errorf("post-return window: %d devices available, want %d", len(devices), len(e.Devices()))
	}

	// Zero input yields nothing rather than the whole fleet.
	devices, cables = e.AvailableResources(time.Time{}, 0, "")
	if devices != nil || cables != nil {
		t.Errorf("zero-input availability = %v, %v, want nil, nil", devices, cables)
	}
}

func TestReleaseRestoresAvailability(t *testing.T) {
	e := New(testData())
	a := mustBook(t, e, BookingInput{
		PatientID:    "pat-1",
		HolterID:     "HR-1",
		CableID:      "CBL-1",
		InstallDate:  installBase,
		DurationDays: 2,
	})

	e.Release(a.ID)

	for _, d := range e.Devices() {
		if d.ID == "HR-1" && d.Status != models.ResourceAvailable {
			t.Errorf("HR-1 status after release = %q, want %q", d.Status, models.ResourceAvailable)
		}
	}
	got := e.Appointments()[0]
	if got.Status != models.StatusCompleted {
		t.Errorf("appointment status after release = %q, want %q", got.Status, models.StatusCompleted)
	}

	// Releasing again, or releasing garbage, changes nothing.
	e.Release(a.ID)
	e.Release("no-such-id")
	if e.Appointments()[0].Status != models.StatusCompleted {
		t.Error("double release changed appointment status")
	}

	// The freed resources can carry a booking that overlaps the old one.
	mustBook(t, e, BookingInput{
		PatientID:    "pat-2",
		HolterID:     "HR-1",
		CableID:      "CBL-1",
		InstallDate:  installBase.AddDate(0, 0, 1),
		DurationDays: 2,
	})
}

func TestEditAppointment(t *testing.T) {
	e := New(testData())
	a := mustBook(t, e, BookingInput{
		PatientID:    "pat-1",
		HolterID:     "HR-1",
		CableID:      "CBL-1",
		InstallDate:  installBase,
		DurationDays: 2,
	})

	a.Notes = "patient asked for an earlier slot"
	a.ReturnDate = a.ReturnDate.Add(2 * time.Hour)
	if err := e.EditAppointment(a); err != nil {
		t.Fatalf("EditAppointment() failed: %v", err)
	}
	got := e.Appointments()[0]
	if got.Notes != a.Notes || !got.ReturnDate.Equal(a.ReturnDate) {
		t.Errorf("edit not applied: got %+v", got)
	}

	missing := a
	missing.ID = "no-such-id"
	if err := e.EditAppointment(missing); !IsNotFound(err) {
		t.Errorf("edit of unknown appointment error = %v, want not found", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	e := New(testData())
	a := mustBook(t, e, BookingInput{
		PatientID:    "pat-1",
		HolterID:     "HR-1",
		CableID:      "CBL-1",
		InstallDate:  installBase,
		DurationDays: 2,
	})

	if err := e.UpdateStatus(a.ID, models.StatusReturned); err != nil {
		t.Fatalf("UpdateStatus() failed: %v", err)
	}
	if got := e.Appointments()[0].Status; got != models.StatusReturned {
		t.Errorf("status = %q, want %q", got, models.StatusReturned)
	}

	// A returned device no longer reserves its interval, so an overlapping
	// booking goes through even before release.
	mustBook(t, e, BookingInput{
		PatientID:    "pat-2",
		HolterID:     "HR-1",
		CableID:      "CBL-1",
		InstallDate:  installBase.Add(time.Hour),
		DurationDays: 1,
	})

	if err := e.UpdateStatus("no-such-id", models.StatusOverdue); !IsNotFound(err) {
		t.Errorf("UpdateStatus of unknown id error = %v, want not found", err)
	}
}
