package report

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/emissions-cli/internal/aggregate"
	"github.com/sells-group/emissions-cli/internal/model"
)

// Workbook sheet names.
const (
	SheetGlobal     = "Global"
	SheetContinents = "Continents"
	SheetTop        = "Top Countries"
	SheetSectors    = "Sectors"
)

// WriteWorkbook writes the four aggregate views of res as sheets of an XLSX file.
// Failures are returned as *model.OutputError.
func WriteWorkbook(path string, res *aggregate.Result) error {
	f := xlsx.NewFile()

	global, err := addSheet(f, SheetGlobal, "year", "co2")
	if err != nil {
		return model.NewOutputError(path, err)
	}
	for _, v := range res.Global {
		row := global.AddRow()
		row.AddCell().SetInt(v.Year)
		row.AddCell().SetFloat(v.Value)
	}

	continents, err := addSheet(f, SheetContinents, "year", "continent", "co2")
	if err != nil {
		return model.NewOutputError(path, err)
	}
	for _, v := range res.Continents {
		row := continents.AddRow()
		row.AddCell().SetInt(v.Year)
		row.AddCell().SetString(string(v.Continent))
		row.AddCell().SetFloat(v.Value)
	}

	top, err := addSheet(f, SheetTop, "rank", "country", "co2", "year")
	if err != nil {
		return model.NewOutputError(path, err)
	}
	for i, v := range res.Top {
		row := top.AddRow()
		row.AddCell().SetInt(i + 1)
		row.AddCell().SetString(v.Country)
		row.AddCell().SetFloat(v.Value)
		row.AddCell().SetInt(res.TopYear)
	}

	sectors, err := addSheet(f, SheetSectors, "sector", "co2", "year")
	if err != nil {
		return model.NewOutputError(path, err)
	}
	for _, v := range res.Sectors {
		row := sectors.AddRow()
		row.AddCell().SetString(v.Sector)
		row.AddCell().SetFloat(v.Value)
		row.AddCell().SetInt(res.SectorYear)
	}

	if err := f.Save(path); err != nil {
		return model.NewOutputError(path, eris.Wrap(err, "report: save workbook"))
	}
	return nil
}

func addSheet(f *xlsx.File, name string, header ...string) (*xlsx.Sheet, error) {
	sheet, err := f.AddSheet(name)
	if err != nil {
		return nil, eris.Wrapf(err, "report: add sheet %s", name)
	}
	row := sheet.AddRow()
	for _, h := range header {
		row.AddCell().SetString(h)
	}
	return sheet, nil
}

// ReadSheet returns every row of the named sheet as strings, header included.
func ReadSheet(path, name string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "report: open workbook")
	}
	sheet, ok := f.Sheet[name]
	if !ok {
		return nil, eris.Errorf("report: sheet %q not found", name)
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
