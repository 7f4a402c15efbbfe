package cli

import (
	"fmt"

	"holterdesk/internal/models"
)

type DeviceAddCmd struct {
	Kind string `help:"Holter kind." enum:"rhythm,pressure" default:"rhythm"`
}

func (c *DeviceAddCmd) Run(ctx *Context) error {
	d := ctx.Engine.AddDevice(models.HolterKind(c.Kind))
	fmt.Printf("Added %s holter %s (serial %s)\n", d.Kind, d.ID, d.SerialNumber)
	return nil
}

type DeviceRenameCmd struct {
	ID     string `arg:"" help:"Device id."`
	Serial string `arg:"" help:"New serial number."`
}

func (c *DeviceRenameCmd) Run(ctx *Context) error {
	if err := ctx.Engine.RenameSerial(c.ID, c.Serial, false); err != nil {
		return err
	}
	fmt.Printf("Device %s serial set to %s\n", c.ID, c.Serial)
	return nil
}

type DeviceRemoveCmd struct {
	ID string `arg:"" help:"Device id."`
}

func (c *DeviceRemoveCmd) Run(ctx *Context) error {
	if err := ctx.Engine.RemoveResource(c.ID, false); err != nil {
		return err
	}
	fmt.Printf("Removed device %s\n", c.ID)
	return nil
}

type DeviceListCmd struct{}

func (c *DeviceListCmd) Run(ctx *Context) error {
	for _, d := range ctx.Engine.Devices() {
		fmt.Printf("%-6s %-10s %-8s %s\n", d.ID, d.SerialNumber, d.Kind, statusLabel(d.Status))
	}
	return nil
}

type CableAddCmd struct{}

func (c *CableAddCmd) Run(ctx *Context) error {
	cb := ctx.Engine.AddCable()
	fmt.Printf("Added cable %s (serial %s)\n", cb.ID, cb.SerialNumber)
	return nil
}

type CableRenameCmd struct {
	ID     string `arg:"" help:"Cable id."`
	Serial string `arg:"" help:"New serial number."`
}

func (c *CableRenameCmd) Run(ctx *Context) error {
	if err := ctx.Engine.RenameSerial(c.ID, c.Serial, true); err != nil {
		return err
	}
	fmt.Printf("Cable %s serial set to %s\n", c.ID, c.Serial)
	return nil
}

type CableRemoveCmd struct {
	ID string `arg:"" help:"Cable id."`
}

func (c *CableRemoveCmd) Run(ctx *Context) error {
	if err := ctx.Engine.RemoveResource(c.ID, true); err != nil {
		return err
	}
	fmt.Printf("Removed cable %s\n", c.ID)
	return nil
}

type CableListCmd struct{}

func (c *CableListCmd) Run(ctx *Context) error {
	for _, cb := range ctx.Engine.Cables() {
		fmt.Printf("%-7s %-10s %s\n", cb.ID, cb.SerialNumber, statusLabel(cb.Status))
	}
	return nil
}
