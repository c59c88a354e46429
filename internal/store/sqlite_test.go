package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestSQLite_MigrateIdempotent(t *testing.T) {
	st := newTestSQLiteStore(t)
	require.NoError(t, st.Migrate(context.Background()))
}

func TestSQLite_SaveSnapshot(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	snap := testSnapshot()

	require.NoError(t, st.SaveSnapshot(ctx, snap))

	n, err := st.CountRows(ctx, "emissions", snap.RunID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = st.CountRows(ctx, "aggregates", snap.RunID)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	runs, err := st.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, snap.RunID, runs[0].ID)
	assert.Equal(t, "data/owid-co2-data.csv", runs[0].Source)
	assert.Equal(t, 2, runs[0].RowCount)
}

func TestSQLite_SnapshotsAppend(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveSnapshot(ctx, testSnapshot()))
	require.NoError(t, st.SaveSnapshot(ctx, testSnapshot()))

	runs, err := st.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestSQLite_SaveSnapshot_DuplicateRunRollsBack(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	snap := testSnapshot()

	require.NoError(t, st.SaveSnapshot(ctx, snap))
	err := st.SaveSnapshot(ctx, snap)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert run")

	n, err := st.CountRows(ctx, "emissions", snap.RunID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSQLite_CountRows_UnknownTable(t *testing.T) {
	st := newTestSQLiteStore(t)
	_, err := st.CountRows(context.Background(), "runs; DROP TABLE runs", "x")
	require.Error(t, err)
}

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, "sqlite", filepath.Join(t.TempDir(), "open.db"))
	require.NoError(t, err)
	require.NotNil(t, s)
	defer s.Close() //nolint:errcheck
	require.NoError(t, s.Migrate(ctx))
}
