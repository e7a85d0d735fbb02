// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/heatgate/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the heatgate MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Heatgate Evaluation Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_heatmap ---
	s.AddTool(mcp.NewTool("get_heatmap",
		mcp.WithDescription("Build the evaluation heatmap (score row plus one row per SLI) for a project, stage and service."),
		mcp.WithString("project", mcp.Description("Project name (defaults to the configured project).")),
		mcp.WithString("stage", mcp.Description("Stage name.")),
		mcp.WithString("service", mcp.Description("Service name.")),
		mcp.WithNumber("limit", mcp.Description("Number of rows shown while collapsed.")),
		mcp.WithBoolean("expanded", mcp.Description("Show every row instead of the collapsed limit.")),
		mcp.WithNumber("width", mcp.Description("Container width in pixels used for the layout.")),
		mcp.WithString("disabled", mcp.Description("Comma separated classifications hidden by the legend (pass, warning, fail, info).")),
	), h.handleGetHeatmap)

	// --- 2. Tool: resolve_highlight ---
	s.AddTool(mcp.NewTool("resolve_highlight",
		mcp.WithDescription("Locate an evaluation in the heatmap and the columns of the evaluations it was compared with."),
		mcp.WithString("id", mcp.Description("Evaluation identifier to highlight."), mcp.Required()),
		mcp.WithString("project", mcp.Description("Project name.")),
		mcp.WithString("stage", mcp.Description("Stage name.")),
		mcp.WithString("service", mcp.Description("Service name.")),
	), h.handleResolveHighlight)

	// --- 3. Tool: check_quality_gate ---
	s.AddTool(mcp.NewTool("check_quality_gate",
		mcp.WithDescription("Check whether the newest evaluation passes the quality gate."),
		mcp.WithString("project", mcp.Description("Project name.")),
		mcp.WithString("stage", mcp.Description("Stage name.")),
		mcp.WithString("service", mcp.Description("Service name.")),
		mcp.WithBoolean("fail_on_warning", mcp.Description("Treat a warning result as a failed gate.")),
	), h.handleCheckQualityGate)

	// --- 4. Tool: compare_evaluation ---
	s.AddTool(mcp.NewTool("compare_evaluation",
		mcp.WithDescription("Compare an evaluation's SLIs with the mean of the evaluations it was compared with."),
		mcp.WithString("id", mcp.Description("Evaluation identifier to compare."), mcp.Required()),
	), h.handleCompareEvaluation)

	// --- 5. Tool: tooltip_position ---
	s.AddTool(mcp.NewTool("tooltip_position",
		mcp.WithDescription("Compute where a tooltip is drawn next to the cursor, flipping left at the viewport edge."),
		mcp.WithNumber("width", mcp.Description("Tooltip width in pixels."), mcp.Required()),
		mcp.WithNumber("cursor_x", mcp.Description("Cursor x position in pixels."), mcp.Required()),
		mcp.WithNumber("cursor_y", mcp.Description("Cursor y position in pixels."), mcp.Required()),
		mcp.WithNumber("scrollbar_width", mcp.Description("Width of the vertical scrollbar.")),
		mcp.WithNumber("viewport_width", mcp.Description("Viewport width in pixels (defaults to 1280).")),
		mcp.WithNumber("device_pixel_ratio", mcp.Description("Device pixel ratio (defaults to 1).")),
	), h.handleTooltipPosition)

	return s
}

// StartMCPServer starts the heatgate MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
