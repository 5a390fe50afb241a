// Package contract provides interfaces and shared utilities for the ytdash internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/ytdash/schema"
)

// StoreManager defines the interface for managing the run history store.
// This allows the store layer to be mocked for testing.
type StoreManager interface {
	GetAnalysisStore() AnalysisStore
}

// AnalysisStore defines the interface for tracking runs and storing per-video metrics.
type AnalysisStore interface {
	// BeginAnalysis creates a new run and returns its unique ID
	BeginAnalysis(startTime time.Time, configParams map[string]any) (int64, error)

	// EndAnalysis updates the run with completion data
	EndAnalysis(analysisID int64, endTime time.Time, totalVideos int) error

	// RecordVideoMetrics stores the derived metrics and deviations of a video
	RecordVideoMetrics(analysisID int64, record schema.VideoMetricsRecord) error

	// GetStatus returns status information about the store
	GetStatus() (schema.AnalysisStatus, error)

	// GetAllAnalysisRuns returns every recorded run
	GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error)

	// GetAllVideoMetrics returns every recorded video row
	GetAllVideoMetrics() ([]schema.VideoMetricsRecord, error)

	// Close closes the underlying connection
	Close() error
}
