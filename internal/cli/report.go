package cli

import (
	"fmt"
	"os"
	"time"

	"holterdesk/internal/models"
	"holterdesk/internal/report"
)

type ReportCsvCmd struct {
	Out string `help:"Output path; defaults to a dated filename in the current directory." type:"path"`
}

func (c *ReportCsvCmd) Run(ctx *Context) error {
	now := time.Now()
	path := c.Out
	if path == "" {
		path = report.Filename("csv", now)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	if err := report.WriteCSV(f, report.Build(ctx.Engine)); err != nil {
		return fmt.Errorf("writing CSV report: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

type ReportPdfCmd struct {
	Out string `help:"Output path; defaults to a dated filename in the current directory." type:"path"`
}

func (c *ReportPdfCmd) Run(ctx *Context) error {
	now := time.Now()
	path := c.Out
	if path == "" {
		path = report.Filename("pdf", now)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	if err := report.WritePDF(f, report.Build(ctx.Engine), now); err != nil {
		return fmt.Errorf("writing PDF report: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

type BlockedAddCmd struct {
	Date string `arg:"" help:"Calendar day to block (YYYY-MM-DD)."`
}

func (c *BlockedAddCmd) Run(ctx *Context) error {
	if _, err := time.Parse(models.DateFormat, c.Date); err != nil {
		return fmt.Errorf("invalid date %q: use YYYY-MM-DD", c.Date)
	}
	ctx.Engine.AddBlockedDate(c.Date)
	fmt.Printf("Blocked %s\n", c.Date)
	return nil
}

type BlockedRemoveCmd struct {
	Date string `arg:"" help:"Calendar day to unblock (YYYY-MM-DD)."`
}

func (c *BlockedRemoveCmd) Run(ctx *Context) error {
	ctx.Engine.RemoveBlockedDate(c.Date)
	fmt.Printf("Unblocked %s\n", c.Date)
	return nil
}

type BlockedListCmd struct{}

func (c *BlockedListCmd) Run(ctx *Context) error {
	dates := ctx.Engine.BlockedDates()
	if len(dates) == 0 {
		fmt.Println("No blocked dates")
		return nil
	}
	for _, d := range dates {
		fmt.Println(d)
	}
	return nil
}
