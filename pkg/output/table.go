package output

// Table is a header row plus data rows, the unit every query emits.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable creates an empty table with the given column headers.
func NewTable(columns ...string) *Table {
	return &Table{Columns: columns, Rows: [][]string{}}
}

// Add appends a row.
func (t *Table) Add(values ...string) {
	t.Rows = append(t.Rows, values)
}

// Records returns each row keyed by column name.
// Missing trailing values are left out of the record.
func (t *Table) Records() []map[string]string {
	records := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(map[string]string, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records
}
