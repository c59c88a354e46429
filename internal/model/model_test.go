package model

import (
	"fmt"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredColumns(t *testing.T) {
	cols := RequiredColumns()
	require.Len(t, cols, 10)
	assert.Equal(t, ColCountry, cols[0])
	assert.Equal(t, ColYear, cols[1])
	assert.Equal(t, ColConsumptionCO2, cols[9])
}

func TestNumericIndex(t *testing.T) {
	assert.Equal(t, 0, NumericIndex(ColCO2))
	assert.Equal(t, 3, NumericIndex(ColGasCO2))
	assert.Equal(t, 7, NumericIndex(ColConsumptionCO2))
	assert.Equal(t, -1, NumericIndex(ColCountry))
	assert.Equal(t, -1, NumericIndex("population"))
}

func TestRowEquality(t *testing.T) {
	a := Row{Country: Str("France"), Year: Int(2020)}
	a.Values[0] = Float(10)
	b := a
	assert.True(t, a == b)

	b.Values[3] = Float(0)
	assert.False(t, a == b, "a filled zero differs from a missing cell")
}

func TestTable_NullCountsAndMissing(t *testing.T) {
	tbl := &Table{
		Columns: []string{ColCountry, ColYear, ColCO2},
		Rows: []Row{
			{Country: Str("France"), Year: Int(2020)},
			{Year: Int(2021), Values: [NumValues]NullFloat{Float(1)}},
		},
	}

	counts := tbl.NullCounts()
	assert.Equal(t, map[string]int{ColCountry: 1, ColYear: 0, ColCO2: 1}, counts)
	assert.Len(t, tbl.MissingColumns(), 7)
	assert.Equal(t, Shape{Rows: 2, Cols: 3}, tbl.Shape())
}

func TestTable_LatestYear(t *testing.T) {
	tbl := NewTable(
		Row{Year: Int(2019)},
		Row{Year: NullInt{}},
		Row{Year: Int(2021)},
		Row{Year: Int(2020)},
	)
	year, ok := tbl.LatestYear()
	require.True(t, ok)
	assert.Equal(t, 2021, year)

	_, ok = NewTable().LatestYear()
	assert.False(t, ok)
}

func TestTable_CloneIsIndependent(t *testing.T) {
	tbl := NewTable(Row{Country: Str("Chad"), Year: Int(2000)})
	c := tbl.Clone()
	c.Rows[0].Country = Str("Mali")
	c.Columns[0] = "x"
	assert.Equal(t, "Chad", tbl.Rows[0].Country.String)
	assert.Equal(t, ColCountry, tbl.Columns[0])
}

func TestParseContinent(t *testing.T) {
	c, ok := ParseContinent("North America")
	require.True(t, ok)
	assert.Equal(t, NorthAmerica, c)

	_, ok = ParseContinent("Atlantis")
	assert.False(t, ok)
	assert.Len(t, AllContinents(), 7)
}

func TestSectors_Order(t *testing.T) {
	var names []string
	for _, s := range Sectors() {
		names = append(names, s.Name)
		assert.GreaterOrEqual(t, NumericIndex(s.Column), 1)
	}
	assert.Equal(t, []string{"Coal", "Oil", "Gas", "Cement", "Flaring", "Other Industry"}, names)
}

func TestErrorKinds(t *testing.T) {
	le := NewLoadError("data.csv", fmt.Errorf("boom"))
	assert.True(t, IsLoadFailure(le))
	assert.False(t, IsOutputFailure(le))
	assert.Contains(t, le.Error(), "data.csv")

	oe := NewOutputError("out/chart.png", fmt.Errorf("no such directory"))
	assert.True(t, IsOutputFailure(fmt.Errorf("emit: %w", oe)))
	assert.False(t, IsLoadFailure(oe))

	assert.True(t, IsEmptyDataset(eris.Wrap(ErrEmptyDataset, "aggregate: sectors")))
	assert.False(t, IsEmptyDataset(le))
}
