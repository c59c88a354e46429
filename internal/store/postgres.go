package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/emissions-cli/internal/db"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(4)
	minConns := int32(1)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	source      TEXT NOT NULL,
	row_count   INTEGER NOT NULL,
	diagnostics JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS emissions (
	run_id             TEXT NOT NULL REFERENCES runs(id),
	country            TEXT,
	year               INTEGER,
	co2                DOUBLE PRECISION,
	coal_co2           DOUBLE PRECISION,
	oil_co2            DOUBLE PRECISION,
	gas_co2            DOUBLE PRECISION,
	cement_co2         DOUBLE PRECISION,
	flaring_co2        DOUBLE PRECISION,
	other_industry_co2 DOUBLE PRECISION,
	consumption_co2    DOUBLE PRECISION
);

CREATE TABLE IF NOT EXISTS aggregates (
	run_id TEXT NOT NULL REFERENCES runs(id),
	view   TEXT NOT NULL,
	year   INTEGER NOT NULL,
	label  TEXT NOT NULL,
	rank   INTEGER NOT NULL,
	value  DOUBLE PRECISION NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_emissions_run_id ON emissions(run_id);
CREATE INDEX IF NOT EXISTS idx_aggregates_run_view ON aggregates(run_id, view);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

// SaveSnapshot inserts the run row, then COPYs the cleaned rows and aggregates,
// all inside one transaction.
func (s *PostgresStore) SaveSnapshot(ctx context.Context, snap *Snapshot) error {
	diagJSON, err := json.Marshal(snap.Diagnostics)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal diagnostics")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin snapshot")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	_, err = tx.Exec(ctx,
		`INSERT INTO runs (id, source, row_count, diagnostics, created_at) VALUES ($1, $2, $3, $4, $5)`,
		snap.RunID, snap.Source, rowCount(snap), diagJSON, snap.CreatedAt,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: insert run %s", snap.RunID)
	}

	if _, err := db.CopyFrom(ctx, tx, "emissions", emissionColumns(), emissionRows(snap.RunID, snap.Table)); err != nil {
		return eris.Wrap(err, "postgres: copy emissions")
	}
	if _, err := db.CopyFrom(ctx, tx, "aggregates", aggregateColumns, aggregateRows(snap.RunID, snap.Result)); err != nil {
		return eris.Wrap(err, "postgres: copy aggregates")
	}

	return eris.Wrap(tx.Commit(ctx), "postgres: commit snapshot")
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, source, row_count, created_at FROM runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.Source, &r.RowCount, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: list runs iterate")
}
