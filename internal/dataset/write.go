package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/emissions-cli/internal/model"
)

// Write stores the table as CSV at path. The parent directory must already exist.
// Failures are returned as *model.OutputError.
func Write(path string, t *model.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return model.NewOutputError(path, eris.Wrap(err, "dataset: create csv"))
	}

	if err := Encode(f, t); err != nil {
		f.Close()
		return model.NewOutputError(path, err)
	}
	if err := f.Close(); err != nil {
		return model.NewOutputError(path, eris.Wrap(err, "dataset: close csv"))
	}
	return nil
}

// Encode writes the table as CSV to w: a header of t.Columns followed by one line per row.
func Encode(w io.Writer, t *model.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Columns); err != nil {
		return eris.Wrap(err, "dataset: write header")
	}

	record := make([]string, len(t.Columns))
	for _, r := range t.Rows {
		for i, col := range t.Columns {
			record[i] = cell(r, col)
		}
		if err := cw.Write(record); err != nil {
			return eris.Wrap(err, "dataset: write row")
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "dataset: flush csv")
}

// cell renders a single cell. Missing cells are written empty.
func cell(r model.Row, col string) string {
	switch col {
	case model.ColCountry:
		if !r.Country.Valid {
			return ""
		}
		return r.Country.String
	case model.ColYear:
		if !r.Year.Valid {
			return ""
		}
		return strconv.Itoa(r.Year.Int)
	}

	i := model.NumericIndex(col)
	if i < 0 || !r.Values[i].Valid {
		return ""
	}
	return formatFloat(r.Values[i].Float)
}
