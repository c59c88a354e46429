// Package cleaner turns the raw emissions table into the cleaned table.
package cleaner

import (
	"go.uber.org/zap"

	"github.com/sells-group/emissions-cli/internal/model"
)

// Diagnostics describes what Clean changed.
type Diagnostics struct {
	ShapeBefore        model.Shape    `json:"shape_before"`
	ShapeAfter         model.Shape    `json:"shape_after"`
	NullCounts         map[string]int `json:"null_counts"`
	FilledCells        map[string]int `json:"filled_cells"`
	DroppedMissingYear int            `json:"dropped_missing_year"`
	DuplicatesRemoved  int            `json:"duplicates_removed"`
	MissingColumns     []string       `json:"missing_columns,omitempty"`
}

// Clean returns a cleaned copy of t. t is not modified.
//
// Steps, in order: project to the required columns present in t, fill missing
// numeric cells with 0, fill a missing country with model.DefaultCountry, drop
// rows with no year, then drop rows equal to an earlier row. Row order is kept.
func Clean(t *model.Table) (*model.Table, Diagnostics) {
	diag := Diagnostics{
		ShapeBefore: model.Shape{Rows: len(t.Rows), Cols: t.SourceColumns},
		FilledCells: make(map[string]int),
	}
	if diag.ShapeBefore.Cols == 0 {
		diag.ShapeBefore.Cols = len(t.Columns)
	}

	out := &model.Table{Columns: project(t.Columns)}
	out.SourceColumns = len(out.Columns)
	diag.MissingColumns = out.MissingColumns()

	var fill []int
	for _, col := range out.Columns {
		if i := model.NumericIndex(col); i >= 0 {
			fill = append(fill, i)
		}
	}
	hasCountry := out.Has(model.ColCountry)

	seen := make(map[model.Row]struct{}, len(t.Rows))
	out.Rows = make([]model.Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		r = projectRow(r, fill, hasCountry, out.Has(model.ColYear))

		for _, i := range fill {
			if !r.Values[i].Valid {
				r.Values[i] = model.Float(0)
				diag.FilledCells[model.NumericColumns[i]]++
			}
		}
		if hasCountry && !r.Country.Valid {
			r.Country = model.Str(model.DefaultCountry)
			diag.FilledCells[model.ColCountry]++
		}

		if !r.Year.Valid {
			diag.DroppedMissingYear++
			continue
		}
		if _, dup := seen[r]; dup {
			diag.DuplicatesRemoved++
			continue
		}
		seen[r] = struct{}{}
		out.Rows = append(out.Rows, r)
	}

	diag.ShapeAfter = out.Shape()
	diag.NullCounts = out.NullCounts()
	return out, diag
}

// project keeps the required columns of cols, in canonical order.
func project(cols []string) []string {
	present := make(map[string]bool, len(cols))
	for _, c := range cols {
		present[c] = true
	}
	var out []string
	for _, c := range model.RequiredColumns() {
		if present[c] {
			out = append(out, c)
		}
	}
	return out
}

// projectRow clears the cells of columns the table does not carry, so that
// equality only looks at present columns.
func projectRow(r model.Row, numeric []int, hasCountry, hasYear bool) model.Row {
	var p model.Row
	if hasCountry {
		p.Country = r.Country
	}
	if hasYear {
		p.Year = r.Year
	}
	for _, i := range numeric {
		p.Values[i] = r.Values[i]
	}
	return p
}

// Log writes the diagnostics as one structured log line.
func (d Diagnostics) Log(log *zap.Logger) {
	log.Info("cleaner: dataset cleaned",
		zap.Int("rows_before", d.ShapeBefore.Rows),
		zap.Int("cols_before", d.ShapeBefore.Cols),
		zap.Int("rows_after", d.ShapeAfter.Rows),
		zap.Int("cols_after", d.ShapeAfter.Cols),
		zap.Any("null_counts", d.NullCounts),
		zap.Any("filled_cells", d.FilledCells),
		zap.Int("duplicates_removed", d.DuplicatesRemoved),
		zap.Int("dropped_missing_year", d.DroppedMissingYear),
		zap.Strings("missing_columns", d.MissingColumns),
	)
}
