package model

// Shape is the (rows, columns) size of a table.
type Shape struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Table is an in-memory emissions table.
//
// Columns holds the required columns present in the source, in canonical order.
// A numeric column absent from Columns is never filled or written.
type Table struct {
	Columns       []string
	Rows          []Row
	SourceColumns int
}

// NewTable returns an empty table carrying all required columns.
func NewTable(rows ...Row) *Table {
	cols := RequiredColumns()
	return &Table{Columns: cols, Rows: rows, SourceColumns: len(cols)}
}

// Has reports whether col is present.
func (t *Table) Has(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Shape returns the current row count and column count.
func (t *Table) Shape() Shape {
	return Shape{Rows: len(t.Rows), Cols: len(t.Columns)}
}

// IsNull reports whether the cell (row, col) is missing.
func IsNull(r Row, col string) bool {
	switch col {
	case ColCountry:
		return !r.Country.Valid
	case ColYear:
		return !r.Year.Valid
	default:
		i := NumericIndex(col)
		return i < 0 || !r.Values[i].Valid
	}
}

// NullCounts counts missing cells per present column.
func (t *Table) NullCounts() map[string]int {
	counts := make(map[string]int, len(t.Columns))
	for _, c := range t.Columns {
		counts[c] = 0
	}
	for _, r := range t.Rows {
		for _, c := range t.Columns {
			if IsNull(r, c) {
				counts[c]++
			}
		}
	}
	return counts
}

// MissingColumns returns the required columns the table does not carry.
func (t *Table) MissingColumns() []string {
	var missing []string
	for _, c := range RequiredColumns() {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// LatestYear returns the maximum year across rows with a valid year.
// ok is false when no such row exists.
func (t *Table) LatestYear() (year int, ok bool) {
	for _, r := range t.Rows {
		if !r.Year.Valid {
			continue
		}
		if !ok || r.Year.Int > year {
			year = r.Year.Int
			ok = true
		}
	}
	return year, ok
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns:       append([]string(nil), t.Columns...),
		Rows:          append([]Row(nil), t.Rows...),
		SourceColumns: t.SourceColumns,
	}
	return out
}
