package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/ytdash/internal/contract"
	"github.com/huangsam/ytdash/internal/parquet"
)

// ExecuteAnalysisExport exports the run history of store to Parquet files
// named after outputFile.
func ExecuteAnalysisExport(w io.Writer, store contract.AnalysisStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("analysis store is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get analysis status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no analysis data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total analysis runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total video records: %d\n", status.TableSizes[videoMetricsTable])

	analysisRuns, err := store.GetAllAnalysisRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}
	videoMetrics, err := store.GetAllVideoMetrics()
	if err != nil {
		return fmt.Errorf("failed to retrieve video metrics: %w", err)
	}

	analysisRunsFile := outputFile + ".analysis_runs.parquet"
	if err := parquet.WriteAnalysisRunsParquet(parquet.ConvertAnalysisRunRecords(analysisRuns), analysisRunsFile); err != nil {
		return fmt.Errorf("failed to write analysis runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d analysis runs to: %s\n", len(analysisRuns), analysisRunsFile)

	videoMetricsFile := outputFile + ".video_metrics.parquet"
	if err := parquet.WriteVideoMetricsParquet(parquet.ConvertVideoMetricsRecords(videoMetrics), videoMetricsFile); err != nil {
		return fmt.Errorf("failed to write video metrics: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d video records to: %s\n", len(videoMetrics), videoMetricsFile)
	return nil
}
