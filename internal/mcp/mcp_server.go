// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/ytdash/core/load"
	"github.com/huangsam/ytdash/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the ytdash MCP server without starting it.
// Every tool reads the dataset held by memo, so the exports are parsed once per process.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager, memo *load.Memo) *server.MCPServer {
	s := server.NewMCPServer(
		"ytdash Channel Analytics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
		memo:    memo,
	}

	// --- 1. Tool: get_aggregate_metrics ---
	s.AddTool(mcp.NewTool("get_aggregate_metrics",
		mcp.WithDescription("Compare the channel's recent videos with the medians of the trailing 6 and 12 months."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of deviation rows returned.")),
	), h.handleGetAggregateMetrics)

	// --- 2. Tool: list_videos ---
	s.AddTool(mcp.NewTool("list_videos",
		mcp.WithDescription("List the videos of the channel export with their headline metrics."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of videos returned.")),
	), h.handleListVideos)

	// --- 3. Tool: get_video_analysis ---
	s.AddTool(mcp.NewTool("get_video_analysis",
		mcp.WithDescription("Analyze one video: deviation from the channel median, audience breakdown and first 30 days of views against the channel percentiles."),
		mcp.WithString("video", mcp.Description("Video ID or exact title."), mcp.Required()),
	), h.handleGetVideoAnalysis)

	return s
}

// StartMCPServer starts the ytdash MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager, memo *load.Memo) error {
	s := NewMCPServer(baseCfg, mgr, memo)
	return server.ServeStdio(s)
}
