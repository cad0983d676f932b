package model

// RawRow is one data row of the published sheet, as delivered by the CSV
// export. Column order is preserved because the legacy schema carries the
// status in the last column without a stable header.
type RawRow struct {
	// Columns holds the header names in source order, whitespace intact.
	Columns []string
	// Values maps a header name to the cell value of this row.
	Values map[string]string
}

// Field returns the first non-empty value among the given column names, tried
// in order. An empty cell falls through to the next name, so a blank cell
// under the current header still picks up a value a legacy header carries.
func (r RawRow) Field(names ...string) string {
	for _, name := range names {
		if v := r.Values[name]; v != "" {
			return v
		}
	}
	return ""
}

// LastField returns the value of the final column of the row, or an empty
// string for a row without columns.
func (r RawRow) LastField() string {
	if len(r.Columns) == 0 {
		return ""
	}
	return r.Values[r.Columns[len(r.Columns)-1]]
}

// ParkingEvent is the canonical form of one logged parking entry. Values stay
// string-typed: the sheet is the source of truth and the dashboard renders
// them as-is. ExitDate is always populated (explicit cell or backfilled from
// RecordedAt), the other optional fields may be empty.
type ParkingEvent struct {
	RecordedAt  string `json:"recordedAt"`
	TimeOfEvent string `json:"timeOfEvent,omitempty"`
	Location    string `json:"location"`
	Floor       string `json:"floor,omitempty"`
	Note        string `json:"note,omitempty"`
	ExitDate    string `json:"exitDate"`
	Status      string `json:"status,omitempty"`
	MapURL      string `json:"mapUrl,omitempty"`
}

// FloorNotApplicable is the sentinel the sheet uses for entries whose
// location has no parking floors.
const FloorNotApplicable = "-"
