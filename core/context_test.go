package core

import (
	"context"
	"sync"
	"testing"

	"github.com/huangsam/ytdash/core/load"
	"github.com/huangsam/ytdash/internal/contract"
	"github.com/huangsam/ytdash/schema"
	"github.com/stretchr/testify/assert"
)

// TestContextConcurrentAccess tests that context values can be safely accessed concurrently.
func TestContextConcurrentAccess(t *testing.T) {
	memo := load.Preloaded(&schema.Dataset{})
	ctx := WithDataset(context.Background(), memo)
	ctx = withAnalysisID(ctx, 12345)

	var wg sync.WaitGroup
	for id := range 50 {
		wg.Go(func() {
			assert.Same(t, memo, datasetFrom(ctx, &contract.Config{}), "Goroutine %d: dataset should be shared", id)
			assert.Equal(t, int64(12345), analysisIDFrom(ctx), "Goroutine %d: analysisID should be 12345", id)
		})
	}
	wg.Wait()
}

func TestContextDefaults(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, int64(0), analysisIDFrom(ctx))

	cfg := &contract.Config{Files: schema.SourceFiles{Dir: t.TempDir()}}
	memo := datasetFrom(ctx, cfg)
	assert.NotNil(t, memo)
	assert.NotSame(t, memo, datasetFrom(ctx, cfg), "each call without a carried dataset builds a new provider")
}
