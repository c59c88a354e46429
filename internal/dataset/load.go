// Package dataset reads the raw OWID CO₂ dataset and writes the cleaned table.
package dataset

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/emissions-cli/internal/model"
)

// Load reads the CSV at path into a raw table.
//
// Only the required columns are kept. The country and year columns must be present;
// a numeric column missing from the header is left out of Table.Columns.
// Every failure is returned as a *model.LoadError.
func Load(path string) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, model.NewLoadError(path, eris.Wrap(err, "dataset: open csv"))
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, model.NewLoadError(path, err)
	}
	return t, nil
}

// Read parses CSV content into a raw table. See Load.
func Read(r io.Reader) (*model.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, eris.New("dataset: csv is empty")
	}
	if err != nil {
		return nil, eris.Wrap(err, "dataset: read header")
	}

	colIdx := mapColumns(header)
	for _, col := range []string{model.ColCountry, model.ColYear} {
		if _, ok := colIdx[col]; !ok {
			return nil, eris.Errorf("dataset: missing required column %q", col)
		}
	}

	t := &model.Table{SourceColumns: len(header)}
	for _, col := range model.RequiredColumns() {
		if _, ok := colIdx[col]; ok {
			t.Columns = append(t.Columns, col)
		}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "dataset: read row")
		}
		line, _ := reader.FieldPos(0)

		row, err := parseRow(record, colIdx, t.Columns)
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: line %d", line)
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// parseRow converts one CSV record into a Row. Columns absent from cols stay missing.
func parseRow(record []string, colIdx map[string]int, cols []string) (model.Row, error) {
	var row model.Row

	if country := getCol(record, colIdx, model.ColCountry); !isNull(country) {
		row.Country = model.Str(country)
	}

	year, ok, err := parseYear(getCol(record, colIdx, model.ColYear))
	if err != nil {
		return row, err
	}
	if ok {
		row.Year = model.Int(year)
	}

	for _, col := range cols {
		i := model.NumericIndex(col)
		if i < 0 {
			continue
		}
		v, ok, err := parseFloat(getCol(record, colIdx, col))
		if err != nil {
			return row, eris.Wrapf(err, "column %s", col)
		}
		if ok {
			row.Values[i] = model.Float(v)
		}
	}

	return row, nil
}
