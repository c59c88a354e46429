package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	source      TEXT NOT NULL,
	row_count   INTEGER NOT NULL,
	diagnostics TEXT NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS emissions (
	run_id             TEXT NOT NULL REFERENCES runs(id),
	country            TEXT,
	year               INTEGER,
	co2                REAL,
	coal_co2           REAL,
	oil_co2            REAL,
	gas_co2            REAL,
	cement_co2         REAL,
	flaring_co2        REAL,
	other_industry_co2 REAL,
	consumption_co2    REAL
);

CREATE TABLE IF NOT EXISTS aggregates (
	run_id TEXT NOT NULL REFERENCES runs(id),
	view   TEXT NOT NULL,
	year   INTEGER NOT NULL,
	label  TEXT NOT NULL,
	rank   INTEGER NOT NULL,
	value  REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_emissions_run_id ON emissions(run_id);
CREATE INDEX IF NOT EXISTS idx_aggregates_run_view ON aggregates(run_id, view);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveSnapshot inserts the run, its cleaned rows, and its aggregates in one transaction.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap *Snapshot) error {
	diagJSON, err := json.Marshal(snap.Diagnostics)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal diagnostics")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin snapshot")
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, row_count, diagnostics, created_at) VALUES (?, ?, ?, ?, ?)`,
		snap.RunID, snap.Source, rowCount(snap), string(diagJSON), snap.CreatedAt,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: insert run %s", snap.RunID)
	}

	if err := insertRows(ctx, tx, "emissions", emissionColumns(), emissionRows(snap.RunID, snap.Table)); err != nil {
		return err
	}
	if err := insertRows(ctx, tx, "aggregates", aggregateColumns, aggregateRows(snap.RunID, snap.Result)); err != nil {
		return err
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit snapshot")
}

// insertRows runs one prepared INSERT per row.
func insertRows(ctx context.Context, tx *sql.Tx, table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO `+table+` (`+strings.Join(columns, ", ")+`) VALUES (`+placeholders+`)`,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: prepare insert %s", table)
	}
	defer stmt.Close() //nolint:errcheck

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return eris.Wrapf(err, "sqlite: insert %s", table)
		}
	}
	return nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, row_count, created_at FROM runs ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var createdAt time.Time
		if err := rows.Scan(&r.ID, &r.Source, &r.RowCount, &createdAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		r.CreatedAt = createdAt.UTC()
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: list runs iterate")
}

// CountRows returns the number of rows stored for runID in table
// ("emissions" or "aggregates").
func (s *SQLiteStore) CountRows(ctx context.Context, table, runID string) (int, error) {
	switch table {
	case "emissions", "aggregates":
	default:
		return 0, eris.Errorf("sqlite: unknown table %q", table)
	}
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table+` WHERE run_id = ?`, runID).Scan(&n)
	if err != nil {
		return 0, eris.Wrapf(err, "sqlite: count %s", table)
	}
	return n, nil
}
