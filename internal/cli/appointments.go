package cli

import (
	"fmt"

	"holterdesk/internal/models"
)

type AppointmentStatusCmd struct {
	ID     string `arg:"" help:"Appointment id."`
	Status string `arg:"" help:"New status." enum:"scheduled,active,overdue,returned,completed"`
}

func (c *AppointmentStatusCmd) Run(ctx *Context) error {
	if err := ctx.Engine.UpdateStatus(c.ID, models.AppointmentStatus(c.Status)); err != nil {
		return err
	}
	fmt.Printf("Appointment %s is now %s\n", c.ID, c.Status)
	return nil
}

type AppointmentEditCmd struct {
	ID      string   `arg:"" help:"Appointment id."`
	Install string   `help:"New install date, YYYY-MM-DD or YYYY-MM-DD HH:MM."`
	Days    int      `help:"New loan duration in days."`
	Service []string `help:"Replace additional services." enum:"ECG,Echocardiogram,Stress Test,Analysis,Pressure Holter"`
	Notes   string   `help:"Replace appointment notes."`
}

func (c *AppointmentEditCmd) Run(ctx *Context) error {
	var target *models.Appointment
	for _, a := range ctx.Engine.Appointments() {
		if a.ID == c.ID {
			target = &a
			break
		}
	}
	if target == nil {
		return fmt.Errorf("appointment not found: %s", c.ID)
	}

	if c.Install != "" {
		install, err := parseInstall(c.Install)
		if err != nil {
			return err
		}
		target.InstallDate = install
	}
	if c.Days > 0 {
		target.DurationDays = c.Days
	}
	if c.Install != "" || c.Days > 0 {
		target.ReturnDate = target.InstallDate.AddDate(0, 0, target.DurationDays)
	}
	if c.Service != nil {
		target.AdditionalServices = c.Service
	}
	if c.Notes != "" {
		target.Notes = c.Notes
	}

	if err := ctx.Engine.EditAppointment(*target); err != nil {
		return err
	}
	fmt.Printf("Updated appointment %s\n", c.ID)
	return nil
}
