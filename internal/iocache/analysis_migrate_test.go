package iocache

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/ytdash/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateAnalysis_NoneBackend(t *testing.T) {
	err := MigrateAnalysis(&bytes.Buffer{}, schema.NoneBackend, "", -1)
	assert.ErrorContains(t, err, "migrations are not supported for NoneBackend")
}

func TestMigrationDirsAreEmbedded(t *testing.T) {
	for _, backend := range []schema.DatabaseBackend{schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend} {
		dir, err := migrationDir(backend)
		require.NoError(t, err)
		entries, err := migrationsFS.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 4, "backend %s", backend)
	}
}

func TestMigrateAnalysis_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_migration.db")
	var out bytes.Buffer

	require.NoError(t, MigrateAnalysis(&out, schema.SQLiteBackend, dbPath, -1))
	assert.Contains(t, out.String(), "to version 2")
	_, err := os.Stat(dbPath)
	assert.NoError(t, err)

	// Running again is a no-op
	out.Reset()
	require.NoError(t, MigrateAnalysis(&out, schema.SQLiteBackend, dbPath, -1))
	assert.Contains(t, out.String(), "No migration needed")

	require.NoError(t, MigrateAnalysis(&out, schema.SQLiteBackend, dbPath, 1))
	require.NoError(t, MigrateAnalysis(&out, schema.SQLiteBackend, dbPath, 0))

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, analysisRunsTable).Scan(&count))
	assert.Zero(t, count)

	require.NoError(t, MigrateAnalysis(&out, schema.SQLiteBackend, dbPath, 2))
}

func TestMigratedSchemaAcceptsStoreWrites(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrated.db")
	require.NoError(t, MigrateAnalysis(&bytes.Buffer{}, schema.SQLiteBackend, dbPath, -1))

	store, err := NewAnalysisStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	id, err := store.BeginAnalysis(mustNow(), map[string]any{"k": "v"})
	require.NoError(t, err)
	require.NoError(t, store.RecordVideoMetrics(id, schema.VideoMetricsRecord{VideoID: "a", Title: "A", AnalysisTime: mustNow()}))
}
