// Package seed builds the demo dataset loaded on first start. The fleet
// sizes and appointment shapes mirror a typical single-clinic Holter
// inventory so the dashboard has something to show out of the box.
package seed

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"holterdesk/internal/engine"
	"holterdesk/internal/models"
)

const (
	rhythmCount   = 15
	pressureCount = 5
	cableCount    = 25
	patientCount  = 5
)

// Empty returns a dataset with no resources at all, for --empty starts.
func Empty() engine.InitialData {
	return engine.InitialData{}
}

// Demo returns the standard demonstration dataset: the full device fleet,
// a handful of patients, and appointments spread around the current date so
// that completed, in-progress, overdue, and upcoming loans all appear.
func Demo() engine.InitialData {
	gofakeit.Seed(time.Now().UnixNano())

	data := engine.InitialData{}

	for i := 1; i <= rhythmCount; i++ {
		data.Devices = append(data.Devices, models.Device{
			ID:           fmt.Sprintf("HR-%d", i),
			Kind:         models.HolterRhythm,
			SerialNumber: fmt.Sprintf("R-%03d", i),
			Status:       models.ResourceAvailable,
		})
	}
	for i := 1; i <= pressureCount; i++ {
		data.Devices = append(data.Devices, models.Device{
			ID:           fmt.Sprintf("HP-%d", i),
			Kind:         models.HolterPressure,
			SerialNumber: fmt.Sprintf("P-%03d", i),
			Status:       models.ResourceAvailable,
		})
	}
	for i := 1; i <= cableCount; i++ {
		data.Cables = append(data.Cables, models.Cable{
			ID:           fmt.Sprintf("CBL-%d", i),
			SerialNumber: fmt.Sprintf("C-%d", i),
			Status:       models.ResourceAvailable,
		})
	}

	for i := 1; i <= patientCount; i++ {
		data.Patients = append(data.Patients, models.Patient{
			ID:           uuid.NewString(),
			Name:         gofakeit.Name(),
			RecordNumber: fmt.Sprintf("P%03d", i),
			MobilePhone:  gofakeit.Phone(),
		})
	}

	today := time.Now().Truncate(24 * time.Hour)
	at := func(d time.Time, hour int) time.Time {
		return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, d.Location())
	}

	appointments := []models.Appointment{
		{
			// Finished loan from last week, device already back on the shelf.
			ID:           uuid.NewString(),
			PatientID:    data.Patients[0].ID,
			HolterID:     "HR-3",
			CableID:      "CBL-3",
			DurationDays: 2,
			InstallDate:  at(today.AddDate(0, 0, -7), 9),
			ReturnDate:   at(today.AddDate(0, 0, -5), 9),
			Status:       models.StatusCompleted,
		},
		{
			// Return deadline already passed; the first scan flags this one.
			ID:           uuid.NewString(),
			PatientID:    data.Patients[1].ID,
			HolterID:     "HR-1",
			CableID:      "CBL-1",
			DurationDays: 2,
			InstallDate:  at(today.AddDate(0, 0, -3), 10),
			ReturnDate:   at(today.AddDate(0, 0, -1), 10),
			Status:       models.StatusScheduled,
		},
		{
			// Loan currently out, due back in a few days.
			ID:                 uuid.NewString(),
			PatientID:          data.Patients[2].ID,
			HolterID:           "HR-2",
			CableID:            "CBL-2",
			DurationDays:       5,
			InstallDate:        at(today.AddDate(0, 0, -2), 11),
			ReturnDate:         at(today.AddDate(0, 0, 3), 11),
			Status:             models.StatusScheduled,
			AdditionalServices: []string{"ECG"},
		},
		{
			// Installation happening today.
			ID:           uuid.NewString(),
			PatientID:    data.Patients[3].ID,
			HolterID:     "HP-1",
			CableID:      "CBL-4",
			DurationDays: 1,
			InstallDate:  at(today, 10),
			ReturnDate:   at(today.AddDate(0, 0, 1), 10),
			Status:       models.StatusScheduled,
			Notes:        "First pressure study for this patient.",
		},
		{
			// Booked ahead of time; resources reserved but not yet handed out.
			ID:                 uuid.NewString(),
			PatientID:          data.Patients[4].ID,
			HolterID:           "HR-4",
			CableID:            "CBL-5",
			DurationDays:       3,
			InstallDate:        at(today.AddDate(0, 0, 2), 9),
			ReturnDate:         at(today.AddDate(0, 0, 5), 9),
			Status:             models.StatusScheduled,
			AdditionalServices: []string{"Echocardiogram", "Analysis"},
		},
	}
	data.Appointments = appointments

	data.BlockedDates = []string{
		today.AddDate(0, 0, 10).Format(models.DateFormat),
		today.AddDate(0, 0, 11).Format(models.DateFormat),
	}

	return data
}
