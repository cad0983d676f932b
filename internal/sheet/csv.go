// Package sheet fetches and decodes the published spreadsheet export that
// feeds the dashboard.
package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/natpakans-stack/carpark-live-dashboard/internal/model"
)

// ParseCSV decodes a published-sheet CSV export into raw rows. The first
// record is the header; its spelling is preserved exactly (including
// trailing spaces) because the normalizer matches on it. Rows may be shorter
// than the header across schema generations, so the record width is not
// enforced.
func ParseCSV(r io.Reader) ([]model.RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	if len(header) > 0 {
		// The export occasionally carries a UTF-8 BOM in front of the
		// first header cell.
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	rows := make([]model.RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		values := make(map[string]string, len(header))
		for i, name := range header {
			if i >= len(record) {
				break
			}
			if _, dup := values[name]; dup {
				continue
			}
			values[name] = record[i]
		}
		rows = append(rows, model.RawRow{Columns: header, Values: values})
	}
	return rows, nil
}
