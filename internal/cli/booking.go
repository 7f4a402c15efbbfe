package cli

import (
	"fmt"
	"time"

	"holterdesk/internal/engine"
	"holterdesk/internal/models"
)

type BookCmd struct {
	Patient    string   `required:"" help:"Patient id."`
	Holter     string   `required:"" help:"Holter device id (e.g. HR-1)."`
	Cable      string   `required:"" help:"Cable id (e.g. CBL-1)."`
	Install    string   `required:"" help:"Install date, YYYY-MM-DD or YYYY-MM-DD HH:MM."`
	Days       int      `required:"" help:"Loan duration in days."`
	ReturnTime string   `help:"Return wall-clock time (HH:MM); defaults to the install time." name:"return-time"`
	Services   []string `help:"Additional services." enum:"ECG,Echocardiogram,Stress Test,Analysis,Pressure Holter"`
	Notes      string   `help:"Free-form appointment notes."`
}

func (c *BookCmd) Run(ctx *Context) error {
	install, err := parseInstall(c.Install)
	if err != nil {
		return err
	}

	a, err := ctx.Engine.Book(engine.BookingInput{
		PatientID:          c.Patient,
		HolterID:           c.Holter,
		CableID:            c.Cable,
		InstallDate:        install,
		DurationDays:       c.Days,
		AdditionalServices: c.Services,
		ReturnTime:         c.ReturnTime,
		Notes:              c.Notes,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Booked appointment %s\n", a.ID)
	fmt.Printf("  Install: %s\n", a.InstallDate.Format(models.DateTimeFormat))
	fmt.Printf("  Return:  %s\n", a.ReturnDate.Format(models.DateTimeFormat))
	return nil
}

type AvailabilityCmd struct {
	Install    string `required:"" help:"Planned install date, YYYY-MM-DD or YYYY-MM-DD HH:MM."`
	Days       int    `required:"" help:"Loan duration in days."`
	ReturnTime string `help:"Return wall-clock time (HH:MM)." name:"return-time"`
}

func (c *AvailabilityCmd) Run(ctx *Context) error {
	install, err := parseInstall(c.Install)
	if err != nil {
		return err
	}

	devices, cables := ctx.Engine.AvailableResources(install, c.Days, c.ReturnTime)
	fmt.Printf("Free holters (%d):\n", len(devices))
	for _, d := range devices {
		fmt.Printf("  %-6s %s (%s)\n", d.ID, d.SerialNumber, d.Kind)
	}
	fmt.Printf("Free cables (%d):\n", len(cables))
	for _, cb := range cables {
		fmt.Printf("  %-6s %s\n", cb.ID, cb.SerialNumber)
	}
	return nil
}

type ReleaseCmd struct {
	ID string `arg:"" help:"Appointment id to release."`
}

func (c *ReleaseCmd) Run(ctx *Context) error {
	ctx.Engine.Release(c.ID)
	fmt.Printf("Released appointment %s\n", c.ID)
	return nil
}

type ScanCmd struct{}

func (c *ScanCmd) Run(ctx *Context) error {
	created := ctx.Engine.ScanOverdue(time.Now())
	if len(created) == 0 {
		fmt.Println("No new overdue appointments")
		return nil
	}
	for _, n := range created {
		fmt.Printf("  [%s] %s\n", n.CreatedAt.Format(models.DateTimeFormat), n.Message)
	}
	return nil
}

type AppointmentListCmd struct {
	Status string `help:"Filter by status." enum:",scheduled,active,overdue,returned,completed" default:""`
}

func (c *AppointmentListCmd) Run(ctx *Context) error {
	patients := make(map[string]string)
	for _, p := range ctx.Engine.Patients() {
		patients[p.ID] = p.Name
	}

	appointments := ctx.Engine.Appointments()
	shown := 0
	for _, a := range appointments {
		if c.Status != "" && string(a.Status) != c.Status {
			continue
		}
		name := patients[a.PatientID]
		if name == "" {
			name = engine.UnknownPatientName
		}
		fmt.Printf("%s  %-20s %-6s %-6s %s -> %s  [%s]\n",
			a.ID, name, a.HolterID, a.CableID,
			a.InstallDate.Format(models.DateTimeFormat),
			a.ReturnDate.Format(models.DateTimeFormat),
			a.Status)
		shown++
	}
	if shown == 0 {
		fmt.Println("No appointments found")
	}
	return nil
}
