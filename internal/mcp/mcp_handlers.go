package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/ytdash/core"
	"github.com/huangsam/ytdash/core/load"
	"github.com/huangsam/ytdash/internal/contract"
	"github.com/huangsam/ytdash/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
	memo    *load.Memo
}

// requestConfig clones the base config and applies the optional limit argument.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) *contract.Config {
	cfg := h.baseCfg.Clone()
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = min(l, contract.MaxResultLimit)
	}
	return cfg
}

func (h *toolHandler) dataset(ctx context.Context) context.Context {
	if h.memo == nil {
		return ctx
	}
	return core.WithDataset(ctx, h.memo)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetAggregateMetrics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.requestConfig(request)

	result, err := core.GetAggregateResults(h.dataset(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("aggregate analysis failed: %v", err)), nil
	}
	return jsonResult(schema.EnrichAggregate(result))
}

func (h *toolHandler) handleListVideos(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.requestConfig(request)

	videos, err := core.GetVideoList(h.dataset(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing videos failed: %v", err)), nil
	}
	return jsonResult(schema.SummarizeVideos(videos))
}

func (h *toolHandler) handleGetVideoAnalysis(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	video := request.GetString("video", "")
	if video == "" {
		return mcp.NewToolResultError("video is required"), nil
	}
	cfg := h.baseCfg.CloneWithVideo(video)

	analysis, err := core.GetVideoResults(h.dataset(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("video analysis failed: %v", err)), nil
	}
	return jsonResult(schema.EnrichVideoAnalysis(analysis))
}
