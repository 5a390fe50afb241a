// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/huangsam/ytdash/internal/contract"
	"github.com/huangsam/ytdash/internal/parquet"
	"github.com/huangsam/ytdash/schema"
)

// WriteAggregate outputs the benchmark, dispatching based on the output format configured.
func WriteAggregate(result schema.BenchmarkResult, cfg *contract.Config, duration time.Duration) error {
	f := newFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, schema.EnrichAggregate(result))
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAggregateCSV(w, result, f)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetFiles(func() ([]string, error) {
			return parquet.WriteAggregateParquet(result, cfg.OutputFile)
		}); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable tables
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAggregateTable(w, result, cfg, f, duration)
		}, "Wrote table")
	}
	return nil
}

// WriteVideo outputs the analysis of one video, dispatching based on the output format configured.
func WriteVideo(analysis schema.VideoAnalysis, cfg *contract.Config, duration time.Duration) error {
	f := newFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, schema.EnrichVideoAnalysis(analysis))
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComparisonCSV(w, analysis.Comparison, f)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetFiles(func() ([]string, error) {
			return parquet.WriteVideoParquet(analysis.Comparison, cfg.OutputFile)
		}); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeVideoTables(w, analysis, cfg, f, duration)
		}, "Wrote table")
	}
	return nil
}

// WriteVideos outputs the selectable videos, dispatching based on the output format configured.
func WriteVideos(videos []schema.VideoRecord, cfg *contract.Config, duration time.Duration) error {
	f := newFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, schema.SummarizeVideos(videos))
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeVideosCSV(w, videos, f)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetFiles(func() ([]string, error) {
			return parquet.WriteVideosParquet(videos, cfg.OutputFile)
		}); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeVideosTable(w, videos, cfg, f, duration)
		}, "Wrote table")
	}
	return nil
}
