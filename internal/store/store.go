// Package store persists run snapshots of the cleaned table and its aggregates.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/sells-group/emissions-cli/internal/aggregate"
	"github.com/sells-group/emissions-cli/internal/cleaner"
	"github.com/sells-group/emissions-cli/internal/model"
)

// Store defines the persistence interface for run snapshots.
// Snapshots are append-only: nothing is updated in place.
type Store interface {
	SaveSnapshot(ctx context.Context, snap *Snapshot) error
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Snapshot is everything one pipeline run produced.
type Snapshot struct {
	RunID       string
	Source      string
	CreatedAt   time.Time
	Diagnostics cleaner.Diagnostics
	Table       *model.Table
	Result      *aggregate.Result
}

// NewSnapshot stamps a new run ID and creation time.
func NewSnapshot(source string, t *model.Table, diag cleaner.Diagnostics, res *aggregate.Result) *Snapshot {
	return &Snapshot{
		RunID:       uuid.New().String(),
		Source:      source,
		CreatedAt:   time.Now().UTC(),
		Diagnostics: diag,
		Table:       t,
		Result:      res,
	}
}

// RunSummary is one row of the runs table.
type RunSummary struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	RowCount  int       `json:"row_count"`
	CreatedAt time.Time `json:"created_at"`
}

// Open returns the store for driver. An empty driver returns a nil Store.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "":
		return nil, nil
	case "sqlite":
		s, err := NewSQLite(dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres":
		s, err := NewPostgres(ctx, dsn, nil)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}

// emissionColumns are the columns of the emissions table.
func emissionColumns() []string {
	return append([]string{"run_id"}, model.RequiredColumns()...)
}

// emissionRows renders the cleaned rows for insertion. Missing cells become NULL.
func emissionRows(runID string, t *model.Table) [][]any {
	if t == nil {
		return nil
	}
	out := make([][]any, len(t.Rows))
	for i, r := range t.Rows {
		row := make([]any, 0, model.NumValues+3)
		row = append(row, runID, nullable(r.Country.String, r.Country.Valid), nullable(r.Year.Int, r.Year.Valid))
		for _, v := range r.Values {
			row = append(row, nullable(v.Float, v.Valid))
		}
		out[i] = row
	}
	return out
}

func nullable[T any](v T, valid bool) any {
	if !valid {
		return nil
	}
	return v
}

// Aggregate views stored in the aggregates table.
const (
	ViewGlobal    = "global"
	ViewContinent = "continent"
	ViewTop       = "top"
	ViewSector    = "sector"
)

var aggregateColumns = []string{"run_id", "view", "year", "label", "rank", "value"}

// aggregateRows flattens the four views into (view, year, label, rank, value) rows.
func aggregateRows(runID string, res *aggregate.Result) [][]any {
	if res == nil {
		return nil
	}
	var out [][]any
	for _, v := range res.Global {
		out = append(out, []any{runID, ViewGlobal, v.Year, "", 0, v.Value})
	}
	for _, v := range res.Continents {
		out = append(out, []any{runID, ViewContinent, v.Year, string(v.Continent), 0, v.Value})
	}
	for i, v := range res.Top {
		out = append(out, []any{runID, ViewTop, res.TopYear, v.Country, i + 1, v.Value})
	}
	for i, v := range res.Sectors {
		out = append(out, []any{runID, ViewSector, res.SectorYear, v.Sector, i + 1, v.Value})
	}
	return out
}

func rowCount(snap *Snapshot) int {
	if snap.Table == nil {
		return 0
	}
	return len(snap.Table.Rows)
}
