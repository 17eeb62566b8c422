package tabular

// Row maps a column name to its parsed cell value. A column absent from the
// map is treated the same as a Null cell.
type Row map[string]Value

// Dataset is an ordered collection of rows parsed from a CSV. Columns holds
// the header order, which doubles as the authoritative column list for
// schema and insert generation: later rows never introduce new columns.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// Empty reports whether the dataset has no rows.
func (d *Dataset) Empty() bool {
	return d == nil || len(d.Rows) == 0
}

// Get returns the value for column in the given row, Null when absent.
func (d *Dataset) Get(row int, column string) Value {
	if row < 0 || row >= len(d.Rows) {
		return Null()
	}
	v, ok := d.Rows[row][column]
	if !ok {
		return Null()
	}
	return v
}
