package report

import (
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"holterdesk/internal/models"
)

var pdfColWidths = []float64{42, 24, 28, 28, 32, 32, 24, 40, 27}

// WritePDF renders the report as a landscape A4 table.
func WritePDF(w io.Writer, rows []Row, now time.Time) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Holter Appointment Report")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.Cell(0, 6, "Generated "+now.Format(models.DateTimeFormat))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(30, 41, 59)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range Header() {
		pdf.CellFormat(pdfColWidths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	fill := false
	for _, r := range rows {
		pdf.SetFillColor(241, 245, 249)
		for i, v := range r.Fields() {
			pdf.CellFormat(pdfColWidths[i], 6, v, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
		fill = !fill
	}

	return pdf.Output(w)
}
