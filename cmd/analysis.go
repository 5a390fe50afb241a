package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/ytdash/internal/contract"
	"github.com/huangsam/ytdash/internal/iocache"
	"github.com/huangsam/ytdash/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadAnalysisBackend reads and validates the run history settings without
// touching the data directory.
func loadAnalysisBackend() error {
	if err := readConfigFile(); err != nil {
		return err
	}
	if err := setupLogger(viper.GetString("log-level")); err != nil {
		return err
	}

	// Handle empty backend as NoneBackend
	backend := schema.NoneBackend
	if backendStr := viper.GetString("analysis-backend"); backendStr != "" {
		backend = schema.DatabaseBackend(backendStr)
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("analysis-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// analysisSetup loads minimal configuration needed for run history operations.
func analysisSetup() error {
	if err := loadAnalysisBackend(); err != nil {
		return err
	}
	if err := iocache.InitStores(cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
		return fmt.Errorf("failed to initialize analysis: %w", err)
	}
	return nil
}

// analysisSetupWrapper wraps analysisSetup to provide PreRunE for analysis commands.
func analysisSetupWrapper(_ *cobra.Command, _ []string) error {
	return analysisSetup()
}

// analysisMigrateSetupWrapper loads the backend settings but does NOT
// initialize stores or create tables, so migrations can run on a fresh database.
func analysisMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return loadAnalysisBackend()
}

// analysisCmd focused on run history management.
//
// Note: Analysis subcommands use minimal initialization (analysisSetup) instead of
// the full sharedSetup. This avoids data directory validation for simple
// run history operations.
var analysisCmd = &cobra.Command{
	Use:   "analysis",
	Short: "Manage the run history of aggregate runs",
	Long: `Manage the optional run history written by 'ytdash aggregate'.

When --analysis-backend is set, every aggregate run stores:
- Run metadata (timestamp, configuration, duration)
- One row per video with its derived metrics
- Each video's deviation from the 12-month median for Views and Engagement ratio

The dashboard itself never reads this history back.

Supported backends: SQLite, MySQL, PostgreSQL, or None (default, disabled)

Subcommands:
  status  - Show run history statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all run history
  migrate - Run database schema migrations

Examples:
  # Check the SQLite run history
  ytdash analysis status --analysis-backend sqlite

  # Export for analysis in pandas/DuckDB
  ytdash analysis export --analysis-backend sqlite --output-file history`,
}

// analysisClearCmd clears the run history.
var analysisClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all run history",
	Long: `Delete all stored runs and per-video rows.

For SQLite the database file is removed. For MySQL and PostgreSQL the
tables are dropped.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  ytdash analysis export --analysis-backend sqlite --output-file backup
  ytdash analysis clear --analysis-backend sqlite`,
	PreRunE: analysisMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearAnalysis(cfg.AnalysisBackend, contract.GetAnalysisDBFilePath(), cfg.AnalysisDBConnect); err != nil {
			contract.LogFatal("Failed to clear analysis data", err)
		}
		fmt.Println("Analysis data cleared successfully.")
	},
}

// analysisStatusCmd shows run history status.
var analysisStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run history statistics and connection details",
	Long: `Show the backend, the number of stored runs, the oldest and latest
run timestamps and the size of each table.

Examples:
  ytdash analysis status --analysis-backend sqlite`,
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetAnalysisStore()
		if store == nil {
			contract.LogFatal("Failed to get analysis status", fmt.Errorf("analysis store is not initialized"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get analysis status", err)
		}
		iocache.PrintAnalysisStatus(os.Stdout, status)
	},
}

// analysisExportCmd exports the run history to Parquet files.
var analysisExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the run history to Parquet for BI tools and analytics",
	Long: `Export all stored runs to Parquet:
- <output-file>.analysis_runs.parquet - one row per run
- <output-file>.video_metrics.parquet - one row per video and run

Requires: --output-file parameter

Examples:
  ytdash analysis export --analysis-backend sqlite --output-file history
  duckdb -c "SELECT * FROM read_parquet('history.video_metrics.parquet') LIMIT 10"`,
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteAnalysisExport(os.Stdout, iocache.Manager.GetAnalysisStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export analysis data", err)
		}
	},
}

// analysisMigrateCmd runs database migrations for the run history store.
var analysisMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage schema versions of the run history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  ytdash analysis migrate --analysis-backend sqlite

  # Rollback to initial state
  ytdash analysis migrate --analysis-backend sqlite --target-version 0`,
	PreRunE: analysisMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateAnalysis(os.Stdout, cfg.AnalysisBackend, cfg.AnalysisDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
