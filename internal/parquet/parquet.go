// Package parquet provides data structures and functions for exporting ytdash
// results and run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/ytdash/schema"
	"github.com/parquet-go/parquet-go"
)

// AnalysisRun represents a single recorded aggregate run with metadata.
// This struct maps to the ytdash_analysis_runs database table.
type AnalysisRun struct {
	// AnalysisID is the unique identifier for this run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// StartTime is when the run began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalVideosAnalyzed is the number of videos recorded in this run
	TotalVideosAnalyzed int32 `parquet:"total_videos_analyzed,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// VideoMetrics represents the derived metrics of one video in a run.
// This struct maps to the ytdash_video_metrics database table.
type VideoMetrics struct {
	AnalysisID          int64     `parquet:"analysis_id,snappy"`
	VideoID             string    `parquet:"video_id,snappy"`
	Title               string    `parquet:"title,snappy"`
	AnalysisTime        time.Time `parquet:"analysis_time,snappy"`
	PublishDate         *string   `parquet:"publish_date,optional,snappy"`
	Views               *float64  `parquet:"views,optional,snappy"`
	EngagementRatio     *float64  `parquet:"engagement_ratio,optional,snappy"`
	AvgDurationSec      *float64  `parquet:"avg_duration_sec,optional,snappy"`
	ViewsPerSubGained   *float64  `parquet:"views_per_sub_gained,optional,snappy"`
	ViewsDeviation      *float64  `parquet:"views_deviation,optional,snappy"`
	EngagementDeviation *float64  `parquet:"engagement_deviation,optional,snappy"`
}

// writeParquet writes rows to a Parquet file whose schema is derived from T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteVideoMetricsParquet writes a slice of VideoMetrics structs to a Parquet file.
func WriteVideoMetricsParquet(data []VideoMetrics, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertAnalysisRunRecords converts store records to Parquet rows.
func ConvertAnalysisRunRecords(records []schema.AnalysisRunRecord) []AnalysisRun {
	result := make([]AnalysisRun, len(records))
	for i, r := range records {
		result[i] = AnalysisRun{
			AnalysisID:          r.AnalysisID,
			StartTime:           r.StartTime,
			EndTime:             r.EndTime,
			RunDurationMs:       r.RunDurationMs,
			TotalVideosAnalyzed: r.TotalVideosAnalyzed,
			ConfigParams:        r.ConfigParams,
		}
	}
	return result
}

// ConvertVideoMetricsRecords converts store records to Parquet rows.
func ConvertVideoMetricsRecords(records []schema.VideoMetricsRecord) []VideoMetrics {
	result := make([]VideoMetrics, len(records))
	for i, r := range records {
		result[i] = VideoMetrics{
			AnalysisID:          r.AnalysisID,
			VideoID:             r.VideoID,
			Title:               r.Title,
			AnalysisTime:        r.AnalysisTime,
			PublishDate:         optionalDate(r.PublishDate),
			Views:               r.Views,
			EngagementRatio:     r.EngagementRatio,
			AvgDurationSec:      r.AvgDurationSec,
			ViewsPerSubGained:   r.ViewsPerSubGained,
			ViewsDeviation:      r.ViewsDeviation,
			EngagementDeviation: r.EngagementDeviation,
		}
	}
	return result
}

func optionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := schema.FormatDate(t)
	return &s
}
