package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV renders a flattened table as CSV. Values are written as plain
// decimal strings, no currency formatting, so the file re-imports cleanly.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	record := make([]string, len(t.Headers))
	for _, row := range t.Rows {
		record = record[:1]
		record[0] = row.Label
		for _, v := range row.Values {
			record = append(record, v.String())
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row %q: %w", row.Label, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}
