package engine

import (
	"testing"

	"holterdesk/internal/models"
)

func TestNewReconcilesResourceStatuses(t *testing.T) {
	data := testData()
	// Seed claims everything is free, but an open appointment holds HR-1
	// and CBL-1, and HP-1 is marked broken.
	data.Devices[2].Status = models.ResourceBroken
	data.Appointments = []models.Appointment{{
		ID:           "appt-1",
		PatientID:    "pat-1",
		HolterID:     "HR-1",
		CableID:      "CBL-1",
		InstallDate:  installBase,
		DurationDays: 2,
		ReturnDate:   installBase.AddDate(0, 0, 2),
		Status:       models.StatusScheduled,
	}}
	e := New(data)

	want := map[string]models.ResourceStatus{
		"HR-1": models.ResourceInUse,
		"HR-2": models.ResourceAvailable,
		"HP-1": models.ResourceBroken,
	}
	for _, d := range e.Devices() {
		if d.Status != want[d.ID] {
			t.Errorf("%s status = %q, want %q", d.ID, d.Status, want[d.ID])
		}
	}
	for _, c := range e.Cables() {
		wantStatus := models.ResourceAvailable
		if c.ID == "CBL-1" {
			wantStatus = models.ResourceInUse
		}
		if c.Status != wantStatus {
			t.Errorf("%s status = %q, want %q", c.ID, c.Status, wantStatus)
		}
	}
}

func TestAddDeviceNeverRecyclesIDs(t *testing.T) {
	e := New(testData())

	if err := e.RemoveResource("HR-2", false); err != nil {
		t.Fatalf("RemoveResource(HR-2) failed: %v", err)
	}
	d := e.AddDevice(models.HolterRhythm)
	if d.ID != "HR-3" {
		t.Errorf("new rhythm holter id = %q, want HR-3", d.ID)
	}

	p := e.AddDevice(models.HolterPressure)
	if p.ID != "HP-2" {
		t.Errorf("new pressure holter id = %q, want HP-2", p.ID)
	}
	if p.SerialNumber != "P-002" {
		t.Errorf("new pressure holter serial = %q, want P-002", p.SerialNumber)
	}

	c := e.AddCable()
	if c.ID != "CBL-3" {
		t.Errorf("new cable id = %q, want CBL-3", c.ID)
	}
}

func TestRemoveResourceGuard(t *testing.T) {
	e := New(testData())
	a := mustBook(t, e, BookingInput{
		PatientID:    "pat-1",
		HolterID:     "HR-1",
		CableID:      "CBL-1",
		InstallDate:  installBase,
		DurationDays: 2,
	})

	if err := e.RemoveResource("HR-1", false); !IsConflict(err) {
		t.Errorf("removing a reserved holter error = %v, want conflict", err)
	}
	if err := e.RemoveResource("CBL-1", true); !IsConflict(err) {
		t.Errorf("removing a reserved cable error = %v, want conflict", err)
	}

	e.Release(a.ID)
	if err := e.RemoveResource("HR-1", false); err != nil {
		t.Errorf("removing a released holter failed: %v", err)
	}
	for _, d := range e.Devices() {
		if d.ID == "HR-1" {
			t.Error("HR-1 still in the fleet after removal")
		}
	}

	// Removing an id that never existed is a quiet no-op.
	if err := e.RemoveResource("HR-99", false); err != nil {
		t.Errorf("removing unknown holter error = %v, want nil", err)
	}
}

func TestRenameSerial(t *testing.T) {
	e := New(testData())

	if err := e.RenameSerial("HR-1", "R-001-B", false); err != nil {
		t.Fatalf("RenameSerial failed: %v", err)
	}
	if got := e.Devices()[0].SerialNumber; got != "R-001-B" {
		t.Errorf("serial = %q, want R-001-B", got)
	}

	if err := e.RenameSerial("CBL-1", "  ", true); !IsValidation(err) {
		t.Errorf("blank serial error = %v, want validation error", err)
	}
	if err := e.RenameSerial("HR-99", "X", false); err != nil {
		t.Errorf("renaming unknown id error = %v, want nil", err)
	}
}

func TestRegisterPatient(t *testing.T) {
	tests := []struct {
		name    string
		in      PatientInput
		wantErr bool
	}{
		{
			name: "complete registration",
			in:   PatientInput{Name: " Ivan Georgiev ", RecordNumber: "P010", MobilePhone: "0888000111"},
		},
		{
			name:    "missing name",
			in:      PatientInput{RecordNumber: "P011", MobilePhone: "0888000111"},
			wantErr: true,
		},
		{
			name:    "missing record number",
			in:      PatientInput{Name: "Ivan Georgiev", MobilePhone: "0888000111"},
			wantErr: true,
		},
		{
			name:    "missing mobile phone",
			in:      PatientInput{Name: "Ivan Georgiev", RecordNumber: "P012"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(testData())
			p, err := e.RegisterPatient(tt.in)
			if tt.wantErr {
				if !IsValidation(err) {
					t.Errorf("RegisterPatient() error = %v, want validation error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("RegisterPatient() failed: %v", err)
			}
			if p.Name != "Ivan Georgiev" {
				t.Errorf("name not trimmed: %q", p.Name)
			}
			if p.ID == "" {
				t.Error("patient id not assigned")
			}
		})
	}
}

func TestBlockedDates(t *testing.T) {
	e := New(testData())

	e.AddBlockedDate("2026-04-01")
	e.AddBlockedDate("2026-04-01")
	e.AddBlockedDate("")
	if got := e.BlockedDates(); len(got) != 1 {
		t.Fatalf("blocked dates = %v, want exactly one entry", got)
	}

	e.RemoveBlockedDate("2026-04-01")
	if got := e.BlockedDates(); len(got) != 0 {
		t.Errorf("blocked dates after removal = %v, want none", got)
	}
}

func TestSnapshotsAreCopies(t *testing.T) {
	e := New(testData())
	mustBook(t, e, BookingInput{
		PatientID:          "pat-1",
		HolterID:           "HR-1",
		CableID:            "CBL-1",
		InstallDate:        installBase,
		DurationDays:       2,
		AdditionalServices: []string{"ECG"},
	})

	devices := e.Devices()
	devices[0].SerialNumber = "tampered"
	if e.Devices()[0].SerialNumber == "tampered" {
		t.Error("device snapshot shares backing storage with the engine")
	}

	appts := e.Appointments()
	appts[0].AdditionalServices[0] = "tampered"
	if e.Appointments()[0].AdditionalServices[0] == "tampered" {
		t.Error("appointment services snapshot shares backing storage")
	}
}
