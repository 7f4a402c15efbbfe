package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"holterdesk/internal/cli"
	"holterdesk/internal/engine"
	"holterdesk/internal/logger"
	"holterdesk/internal/seed"
)

var CLI struct {
	Version kong.VersionFlag
	Debug   bool   `help:"Enable debug logging to stderr."`
	Empty   bool   `help:"Start without the demo dataset."`
	LogDir  string `help:"Directory for log files; defaults to the user cache dir." name:"log-dir"`

	Tui          cli.TuiCmd             `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Book         cli.BookCmd            `cmd:"" help:"Book a Holter appointment."`
	Availability cli.AvailabilityCmd    `cmd:"" help:"List free devices and cables for a window."`
	Release      cli.ReleaseCmd         `cmd:"" help:"Complete an appointment and free its resources."`
	Scan         cli.ScanCmd            `cmd:"" help:"Scan for overdue appointments."`
	Appointments cli.AppointmentListCmd `cmd:"" help:"List appointments."`
	Appointment  struct {
		Edit   cli.AppointmentEditCmd   `cmd:"" help:"Edit an appointment."`
		Status cli.AppointmentStatusCmd `cmd:"" help:"Set an appointment's status."`
	} `cmd:"" help:"Modify appointments."`
	Patient      struct {
		Add  cli.PatientAddCmd  `cmd:"" help:"Register a patient."`
		List cli.PatientListCmd `cmd:"" help:"List patients." default:"1"`
	} `cmd:"" help:"Manage patients."`
	Device struct {
		Add    cli.DeviceAddCmd    `cmd:"" help:"Add a Holter device."`
		Rename cli.DeviceRenameCmd `cmd:"" help:"Change a device serial number."`
		Remove cli.DeviceRemoveCmd `cmd:"" help:"Remove a device from the fleet."`
		List   cli.DeviceListCmd   `cmd:"" help:"List devices." default:"1"`
	} `cmd:"" help:"Manage the Holter fleet."`
	Cable struct {
		Add    cli.CableAddCmd    `cmd:"" help:"Add a cable."`
		Rename cli.CableRenameCmd `cmd:"" help:"Change a cable serial number."`
		Remove cli.CableRemoveCmd `cmd:"" help:"Remove a cable."`
		List   cli.CableListCmd   `cmd:"" help:"List cables." default:"1"`
	} `cmd:"" help:"Manage cables."`
	Report struct {
		Csv cli.ReportCsvCmd `cmd:"" help:"Export the appointment report as CSV."`
		Pdf cli.ReportPdfCmd `cmd:"" help:"Export the appointment report as PDF."`
	} `cmd:"" help:"Export reports."`
	Blocked struct {
		Add    cli.BlockedAddCmd    `cmd:"" help:"Block a day for new installs."`
		Remove cli.BlockedRemoveCmd `cmd:"" help:"Unblock a day."`
		List   cli.BlockedListCmd   `cmd:"" help:"List blocked days." default:"1"`
	} `cmd:"" help:"Manage blocked dates."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("holterdesk"),
		kong.Description("Holter monitor scheduling and inventory for a single clinic"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, LogDir: CLI.LogDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data := seed.Demo()
	if CLI.Empty {
		data = seed.Empty()
	}

	appCtx := &cli.Context{Engine: engine.New(data)}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
