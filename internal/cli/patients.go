package cli

import (
	"fmt"

	"holterdesk/internal/engine"
)

type PatientAddCmd struct {
	Name     string `required:"" help:"Patient full name."`
	Record   string `required:"" help:"Clinic record number."`
	Mobile   string `required:"" help:"Mobile phone number."`
	Landline string `help:"Landline phone number."`
	Age      *int   `help:"Patient age."`
}

func (c *PatientAddCmd) Run(ctx *Context) error {
	p, err := ctx.Engine.RegisterPatient(engine.PatientInput{
		Name:          c.Name,
		RecordNumber:  c.Record,
		MobilePhone:   c.Mobile,
		LandlinePhone: c.Landline,
		Age:           c.Age,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Registered patient %s (%s)\n", p.Name, p.ID)
	return nil
}

type PatientListCmd struct{}

func (c *PatientListCmd) Run(ctx *Context) error {
	patients := ctx.Engine.Patients()
	if len(patients) == 0 {
		fmt.Println("No patients registered")
		return nil
	}
	for _, p := range patients {
		fmt.Printf("%s  %-24s record %-6s mobile %s\n", p.ID, p.Name, p.RecordNumber, p.MobilePhone)
	}
	return nil
}
