package schema

import (
	"math"
	"time"
)

// VideoMetricsRecord is the per-video snapshot recorded for one aggregate run.
// Non-finite values are stored as NULL.
type VideoMetricsRecord struct {
	AnalysisID          int64
	VideoID             string
	Title               string
	AnalysisTime        time.Time
	PublishDate         *time.Time
	Views               *float64
	EngagementRatio     *float64
	AvgDurationSec      *float64
	ViewsPerSubGained   *float64
	ViewsDeviation      *float64
	EngagementDeviation *float64
}

// AnalysisRunRecord represents a row from the ytdash_analysis_runs table.
type AnalysisRunRecord struct {
	AnalysisID          int64
	StartTime           time.Time
	EndTime             *time.Time
	RunDurationMs       *int32
	TotalVideosAnalyzed int32
	ConfigParams        *string
}

// FiniteOrNil returns a pointer to v, or nil when v is NaN or infinite.
func FiniteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
