package mcp_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/huangsam/ytdash/core"
	"github.com/huangsam/ytdash/core/load"
	"github.com/huangsam/ytdash/internal/contract"
	"github.com/huangsam/ytdash/internal/iocache"
	mcp_internal "github.com/huangsam/ytdash/internal/mcp"
	"github.com/huangsam/ytdash/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func published(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
	return &t
}

func channelData() *schema.Dataset {
	return &schema.Dataset{
		Videos: core.DeriveFeatures([]schema.VideoRecord{
			{ID: "a", Title: "First", PublishTime: published(2023, time.December, 1), Views: 1000, Likes: 50, SubscribersGained: 5},
			{ID: "b", Title: "Second", PublishTime: published(2023, time.March, 1), Views: 3000, Likes: 90, SubscribersGained: 10},
		}),
		Daily: []schema.DailySample{
			{VideoID: "a", Date: published(2023, time.December, 1), Views: 400},
			{VideoID: "b", Date: published(2023, time.March, 2), Views: 900},
		},
	}
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestMCPServerTools(t *testing.T) {
	s := mcp_internal.NewMCPServer(&contract.Config{}, nil, load.Preloaded(channelData()))

	t.Run("get_aggregate_metrics", func(t *testing.T) {
		res := callTool(t, s, "get_aggregate_metrics", map[string]any{"limit": 1.0})
		require.False(t, res.IsError)

		var out schema.AggregateOutput
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
		assert.Equal(t, "2023-12-01", out.MaxPublish)
		assert.Equal(t, 2, out.Rows12)
		assert.Len(t, out.Deviations, 1)
	})

	t.Run("list_videos", func(t *testing.T) {
		res := callTool(t, s, "list_videos", nil)
		require.False(t, res.IsError)

		var out []schema.VideoSummaryOutput
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
		require.Len(t, out, 2)
		assert.Equal(t, "Second", out[1].Title)
	})

	t.Run("get_video_analysis by title", func(t *testing.T) {
		res := callTool(t, s, "get_video_analysis", map[string]any{"video": "Second"})
		require.False(t, res.IsError)

		var out schema.VideoAnalysisOutput
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
		assert.Equal(t, "b", out.Video.ID)
		require.Len(t, out.Trace, 1)
		assert.Equal(t, 1, out.Trace[0].Day)
	})
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	s := mcp_internal.NewMCPServer(&contract.Config{}, nil, load.Preloaded(channelData()))

	t.Run("get_video_analysis missing video", func(t *testing.T) {
		res := callTool(t, s, "get_video_analysis", map[string]any{"video": ""})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, resultText(t, res), "video is required")
	})

	t.Run("get_video_analysis unknown video", func(t *testing.T) {
		res := callTool(t, s, "get_video_analysis", map[string]any{"video": "nope"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "video not found")
	})

	t.Run("list_videos on an empty export", func(t *testing.T) {
		empty := mcp_internal.NewMCPServer(&contract.Config{}, nil, load.Preloaded(&schema.Dataset{}))
		res := callTool(t, empty, "list_videos", nil)
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "no videos to analyze")
	})
}

func TestMCPAggregateRecordsRun(t *testing.T) {
	store := &iocache.MockAnalysisStore{}
	store.On("BeginAnalysis", mock.Anything, mock.Anything).Return(int64(7), nil)
	store.On("RecordVideoMetrics", int64(7), mock.Anything).Return(nil)
	store.On("EndAnalysis", int64(7), mock.Anything, 2).Return(nil)
	mgr := &iocache.MockStoreManager{}
	mgr.On("GetAnalysisStore").Return(store)

	s := mcp_internal.NewMCPServer(&contract.Config{}, mgr, load.Preloaded(channelData()))
	res := callTool(t, s, "get_aggregate_metrics", nil)
	require.False(t, res.IsError)

	store.AssertNumberOfCalls(t, "RecordVideoMetrics", 2)
	store.AssertExpectations(t)
}
