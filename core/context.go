package core

import (
	"context"

	"github.com/huangsam/ytdash/core/load"
	"github.com/huangsam/ytdash/internal/contract"
)

// Context keys for execution options
type contextKey string

const (
	datasetKey    contextKey = "dataset"
	analysisIDKey contextKey = "analysisID"
)

// WithDataset makes the executors read from memo instead of loading the
// configured exports themselves.
func WithDataset(ctx context.Context, memo *load.Memo) context.Context {
	return context.WithValue(ctx, datasetKey, memo)
}

// datasetFrom returns the memo carried by ctx, or a fresh provider for the
// exports named in cfg.
func datasetFrom(ctx context.Context, cfg *contract.Config) *load.Memo {
	if memo, ok := ctx.Value(datasetKey).(*load.Memo); ok && memo != nil {
		return memo
	}
	return NewDatasetProvider(cfg.Files, contract.Logger())
}

// withAnalysisID sets the run history ID in the context
func withAnalysisID(ctx context.Context, analysisID int64) context.Context {
	return context.WithValue(ctx, analysisIDKey, analysisID)
}

// analysisIDFrom returns the run history ID, or 0 when the run is not tracked
func analysisIDFrom(ctx context.Context) int64 {
	id, ok := ctx.Value(analysisIDKey).(int64)
	if !ok {
		return 0
	}
	return id
}
