package report

import (
	"encoding/csv"
	"io"
)

// utf8BOM keeps Excel from misreading non-ASCII patient names.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes the report as UTF-8 CSV with a leading byte order mark.
func WriteCSV(w io.Writer, rows []Row) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Fields()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
