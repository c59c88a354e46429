package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/emissions-cli/internal/aggregate"
	"github.com/sells-group/emissions-cli/internal/cleaner"
	"github.com/sells-group/emissions-cli/internal/model"
)

func testSnapshot() *Snapshot {
	full := model.Row{Country: model.Str("France"), Year: model.Int(2021)}
	for i := range full.Values {
		full.Values[i] = model.Float(float64(i + 1))
	}
	partial := model.Row{Country: model.Str("Spain"), Year: model.Int(2021)}
	partial.Values[0] = model.Float(200)

	t := model.NewTable(full, partial)
	res := &aggregate.Result{
		Global:     []model.YearValue{{Year: 2021, Value: 201}},
		Continents: []model.ContinentYearValue{{Year: 2021, Continent: model.Europe, Value: 201}},
		TopN:       10,
		TopYear:    2021,
		Top:        []model.CountryValue{{Country: "Spain", Value: 200}, {Country: "France", Value: 1}},
		SectorYear: 2021,
		Sectors:    []model.SectorValue{{Sector: "Coal", Value: 2}},
	}
	_, diag := cleaner.Clean(t)
	return NewSnapshot("data/owid-co2-data.csv", t, diag, res)
}

func TestNewSnapshot(t *testing.T) {
	a := testSnapshot()
	b := testSnapshot()
	assert.Len(t, a.RunID, 36)
	assert.NotEqual(t, a.RunID, b.RunID)
	assert.False(t, a.CreatedAt.IsZero())
	assert.Equal(t, 2, rowCount(a))
}

func TestEmissionRows(t *testing.T) {
	snap := testSnapshot()
	rows := emissionRows(snap.RunID, snap.Table)
	require.Len(t, rows, 2)

	assert.Len(t, rows[0], len(emissionColumns()))
	assert.Equal(t, []any{snap.RunID, "France", 2021, 1.0}, rows[0][:4])
	// Missing cells are NULL.
	assert.Nil(t, rows[1][4])
	assert.Equal(t, 200.0, rows[1][3])
}

func TestAggregateRows(t *testing.T) {
	snap := testSnapshot()
	rows := aggregateRows(snap.RunID, snap.Result)
	require.Len(t, rows, 5)

	views := map[string]int{}
	for _, r := range rows {
		assert.Len(t, r, len(aggregateColumns))
		views[r[1].(string)]++
	}
	assert.Equal(t, map[string]int{ViewGlobal: 1, ViewContinent: 1, ViewTop: 2, ViewSector: 1}, views)
	assert.Equal(t, []any{snap.RunID, ViewTop, 2021, "Spain", 1, 200.0}, rows[2])
}

func TestAggregateRows_Nil(t *testing.T) {
	assert.Nil(t, aggregateRows("x", nil))
	assert.Nil(t, emissionRows("x", nil))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, "", "")
	require.NoError(t, err)
	assert.Nil(t, s)

	_, err = Open(ctx, "mongo", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown driver")
}
