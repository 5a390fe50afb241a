package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/ytdash/internal/contract"
	"github.com/huangsam/ytdash/schema"
)

// runAggregateCore benchmarks the dataset and records the run in the run
// history store when one is configured. Tracking failures are logged and
// never fail the run.
func runAggregateCore(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, data *schema.Dataset) (schema.BenchmarkResult, error) {
	// --- 0. Begin Analysis Tracking (if configured) ---
	var analysisStore contract.AnalysisStore
	if mgr != nil {
		analysisStore = mgr.GetAnalysisStore()
	}
	if analysisStore != nil {
		configParams := map[string]any{
			"data_dir":     cfg.DataDir,
			"video_file":   cfg.Files.VideoFile,
			"country_file": cfg.Files.CountryFile,
			"time_file":    cfg.Files.TimeFile,
			"result_limit": cfg.ResultLimit,
			"videos":       len(data.Videos),
			"null_cells":   data.Report.TotalNulls(),
		}
		analysisID, err := analysisStore.BeginAnalysis(time.Now(), configParams)
		if err != nil {
			contract.LogWarn("Analysis tracking initialization failed", err)
		} else if analysisID > 0 {
			ctx = withAnalysisID(ctx, analysisID)
		}
	}

	// --- 1. Benchmark ---
	result, err := ComputeBenchmark(data.Videos)
	if err != nil {
		return schema.BenchmarkResult{}, err
	}

	// --- 2. Record and finalize ---
	if analysisID := analysisIDFrom(ctx); analysisStore != nil && analysisID > 0 {
		recorded := recordVideoMetrics(analysisStore, analysisID, data.Videos, result)
		if err := analysisStore.EndAnalysis(analysisID, time.Now(), recorded); err != nil {
			contract.LogWarn("Failed to finalize analysis tracking", err)
		}
	}
	return result, nil
}

// recordVideoMetrics stores one snapshot row per video and returns how many
// rows were written.
func recordVideoMetrics(store contract.AnalysisStore, analysisID int64, videos []schema.VideoRecord, result schema.BenchmarkResult) int {
	now := time.Now()
	recorded := 0
	for i, v := range videos {
		record := schema.VideoMetricsRecord{
			AnalysisID:        analysisID,
			VideoID:           v.ID,
			Title:             v.Title,
			AnalysisTime:      now,
			PublishDate:       v.PublishDate,
			Views:             schema.FiniteOrNil(v.Views),
			EngagementRatio:   schema.FiniteOrNil(v.EngagementRatio),
			AvgDurationSec:    schema.FiniteOrNil(v.Metric(schema.MetricAvgDurationSec)),
			ViewsPerSubGained: schema.FiniteOrNil(v.ViewsPerSubGained),
		}
		if i < len(result.Deviations) {
			values := result.Deviations[i].Values
			record.ViewsDeviation = schema.FiniteOrNil(values[schema.MetricViews])
			record.EngagementDeviation = schema.FiniteOrNil(values[schema.MetricEngagementRatio])
		}
		if err := store.RecordVideoMetrics(analysisID, record); err != nil {
			logTrackingError("RecordVideoMetrics", v.ID, err)
			continue
		}
		recorded++
	}
	return recorded
}

// logTrackingError logs database tracking errors without disrupting the run.
func logTrackingError(operation, videoID string, err error) {
	contract.LogWarn(fmt.Sprintf("Analysis tracking failed for %s on %s", operation, videoID), err)
}
