//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// exerciseRunHistory migrates the backend, records one aggregate run and clears it.
func exerciseRunHistory(t *testing.T, backend, connStr string) {
	t.Helper()
	env := []string{
		"HOME=" + t.TempDir(),
		"YTDASH_ANALYSIS_BACKEND=" + backend,
		"YTDASH_ANALYSIS_DB_CONNECT=" + connStr,
	}

	// Run ytdash analysis clear
	_, err := runYtdash(t, env, "analysis", "clear")
	require.NoError(t, err)

	// Run ytdash analysis migrate
	_, err = runYtdash(t, env, "analysis", "migrate")
	require.NoError(t, err)

	// Run ytdash aggregate on the fixture export
	_, err = runYtdash(t, env, "aggregate", channelDir, "--limit", "2")
	require.NoError(t, err)

	// Run ytdash analysis status
	out, err := runYtdash(t, env, "analysis", "status")
	require.NoError(t, err)
	assert.Contains(t, out, backend)

	// Run ytdash analysis clear
	_, err = runYtdash(t, env, "analysis", "clear")
	require.NoError(t, err)
}

// TestRunHistoryWithMySQL tests the ytdash CLI with a MySQL run history.
func TestRunHistoryWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "ytdash",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/ytdash?parseTime=true", host, port.Port())
	exerciseRunHistory(t, "mysql", connStr)
}

// TestRunHistoryWithPostgres tests the ytdash CLI with a PostgreSQL run history.
func TestRunHistoryWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
	exerciseRunHistory(t, "postgresql", connStr)
}
