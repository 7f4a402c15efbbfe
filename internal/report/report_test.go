package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"holterdesk/internal/engine"
	"holterdesk/internal/models"
)

func reportEngine(t *testing.T) *engine.Engine {
	t.Helper()
	install := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	return engine.New(engine.InitialData{
		Devices: []models.Device{
			{ID: "HR-1", Kind: models.HolterRhythm, SerialNumber: "R-001", Status: models.ResourceAvailable},
		},
		Cables: []models.Cable{
			{ID: "CBL-1", SerialNumber: "C-1", Status: models.ResourceAvailable},
		},
		Patients: []models.Patient{
			{ID: "pat-1", Name: "Ana Petrova", RecordNumber: "P001", MobilePhone: "0888123456"},
		},
		Appointments: []models.Appointment{
			{
				ID:          "appt-old",
				PatientID:   "pat-1",
				HolterID:    "HR-1",
				CableID:     "CBL-1",
				InstallDate: install.AddDate(0, 0, -10),
				ReturnDate:  install.AddDate(0, 0, -8),
				Status:      models.StatusCompleted,
			},
			{
				ID:                 "appt-new",
				PatientID:          "pat-gone",
				HolterID:           "HR-9",
				CableID:            "CBL-9",
				InstallDate:        install,
				ReturnDate:         install.AddDate(0, 0, 2),
				Status:             models.StatusScheduled,
				AdditionalServices: []string{"ECG", "Analysis"},
			},
		},
	})
}

func TestBuildRows(t *testing.T) {
	rows := Build(reportEngine(t))
	if len(rows) != 2 {
		t.Fatalf("row count = %d, want 2", len(rows))
	}

	// Newest install first.
	newest := rows[0]
	if newest.PatientName != engine.UnknownPatientName {
		t.Errorf("missing patient rendered as %q, want %q", newest.PatientName, engine.UnknownPatientName)
	}
	if newest.HolterSerial != MissingSerial || newest.CableSerial != MissingSerial {
		t.Errorf("dangling resources rendered as %q/%q, want %q", newest.HolterSerial, newest.CableSerial, MissingSerial)
	}
	if newest.Services != "ECG, Analysis" {
		t.Errorf("services = %q, want %q", newest.Services, "ECG, Analysis")
	}

	oldest := rows[1]
	if oldest.PatientName != "Ana Petrova" || oldest.HolterSerial != "R-001" {
		t.Errorf("resolved row = %+v", oldest)
	}
	if oldest.InstallDate != "2026-02-28 10:00" {
		t.Errorf("install date = %q, want formatted datetime", oldest.InstallDate)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, Build(reportEngine(t))); err != nil {
		t.Fatalf("WriteCSV() failed: %v", err)
	}

	out := buf.Bytes()
	if !bytes.HasPrefix(out, utf8BOM) {
		t.Error("CSV output missing UTF-8 byte order mark")
	}
	body := string(out[len(utf8BOM):])
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) != 3 {
		t.Fatalf("CSV line count = %d, want header plus 2 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Patient,") {
		t.Errorf("CSV header = %q", lines[0])
	}
	if !strings.Contains(body, "Ana Petrova") {
		t.Error("CSV body missing patient name")
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	if err := WritePDF(&buf, Build(reportEngine(t)), now); err != nil {
		t.Fatalf("WritePDF() failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("PDF output missing %PDF header")
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	if got := Filename("csv", now); got != "holter-report-2026-03-12.csv" {
		t.Errorf("Filename() = %q", got)
	}
}
