// Package core has core logic for feature derivation, benchmarking and view comparisons.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/ytdash/core/load"
	"github.com/huangsam/ytdash/internal/chart"
	"github.com/huangsam/ytdash/internal/contract"
	"github.com/huangsam/ytdash/internal/outwriter"
	"github.com/huangsam/ytdash/schema"
	"go.uber.org/zap"
)

// ExecutorFunc defines the function signature for executing different CLI modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// NewDatasetProvider returns a memo that loads the exports once and derives
// the video features.
func NewDatasetProvider(files schema.SourceFiles, logger *zap.Logger) *load.Memo {
	loader := load.NewLoader(files, logger)
	return load.NewMemo(func(ctx context.Context) (*schema.Dataset, error) {
		data, err := loader.Load(ctx)
		if err != nil {
			return nil, err
		}
		return withFeatures(data), nil
	})
}

// AnalyzeVideo gathers everything shown for one video, selected by ID or title.
func AnalyzeVideo(data *schema.Dataset, idOrTitle string) (schema.VideoAnalysis, error) {
	video, ok := data.FindVideo(idOrTitle)
	if !ok {
		return schema.VideoAnalysis{}, fmt.Errorf("%w: %q", ErrVideoNotFound, idOrTitle)
	}
	comparison, err := BuildViewComparison(data.Videos, data.Daily, video.ID)
	if err != nil {
		return schema.VideoAnalysis{}, err
	}

	analysis := schema.VideoAnalysis{
		Video:      video,
		Audience:   BuildAudienceBreakdown(data.Countries, video),
		Comparison: comparison,
		Comments:   SummarizeComments(data.Comments, video.ID),
	}
	bench, err := ComputeBenchmark(data.Videos)
	if err != nil {
		return schema.VideoAnalysis{}, err
	}
	for i := range bench.Deviations {
		if bench.Deviations[i].VideoID == video.ID {
			analysis.Deviation = &bench.Deviations[i]
			break
		}
	}
	return analysis, nil
}

// GetAggregateResults benchmarks every video of the configured exports and
// applies the result limit to the deviation table.
func GetAggregateResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.BenchmarkResult, error) {
	data, err := datasetFrom(ctx, cfg).Get(ctx)
	if err != nil {
		return schema.BenchmarkResult{}, err
	}
	result, err := runAggregateCore(ctx, cfg, mgr, data)
	if err != nil {
		return schema.BenchmarkResult{}, err
	}
	result.Deviations = limitResults(result.Deviations, cfg.ResultLimit)
	return result, nil
}

// GetVideoResults analyzes the video selected by cfg.Video.
func GetVideoResults(ctx context.Context, cfg *contract.Config) (schema.VideoAnalysis, error) {
	if cfg.Video == "" {
		return schema.VideoAnalysis{}, errors.New("--video is required")
	}
	data, err := datasetFrom(ctx, cfg).Get(ctx)
	if err != nil {
		return schema.VideoAnalysis{}, err
	}
	return AnalyzeVideo(data, cfg.Video)
}

// GetVideoList returns the selectable videos in export order.
func GetVideoList(ctx context.Context, cfg *contract.Config) ([]schema.VideoRecord, error) {
	data, err := datasetFrom(ctx, cfg).Get(ctx)
	if err != nil {
		return nil, err
	}
	if len(data.Videos) == 0 {
		return nil, ErrNoVideos
	}
	return limitResults(data.Videos, cfg.ResultLimit), nil
}

// ExecuteAggregate benchmarks every video and prints the tiles and the deviation table.
// It serves as the main entry point for the 'aggregate' mode.
func ExecuteAggregate(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	result, err := GetAggregateResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.WriteAggregate(result, cfg, time.Since(start))
}

// ExecuteVideo analyzes the selected video, renders its charts when a chart
// directory is configured and prints the analysis.
// It serves as the main entry point for the 'video' mode.
func ExecuteVideo(ctx context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	start := time.Now()
	analysis, err := GetVideoResults(ctx, cfg)
	if err != nil {
		return err
	}
	if cfg.ChartDir != "" {
		files, err := chart.WriteVideoCharts(cfg.ChartDir, cfg.ChartFormat, analysis)
		if err != nil {
			return fmt.Errorf("failed to render charts: %w", err)
		}
		for _, f := range files {
			_, _ = fmt.Fprintf(os.Stderr, "📊 Wrote chart to %s\n", f)
		}
	}
	return outwriter.WriteVideo(analysis, cfg, time.Since(start))
}

// ExecuteVideos prints the selectable videos in export order.
// It serves as the main entry point for the 'videos' mode.
func ExecuteVideos(ctx context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	start := time.Now()
	videos, err := GetVideoList(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.WriteVideos(videos, cfg, time.Since(start))
}
