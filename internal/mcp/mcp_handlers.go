package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/heatgate/core"
	"github.com/huangsam/heatgate/core/layout"
	"github.com/huangsam/heatgate/internal/contract"
	"github.com/huangsam/heatgate/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// scopedConfig clones the base config with the project, stage and service arguments applied.
func (h *toolHandler) scopedConfig(request mcp.CallToolRequest) *contract.Config {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("project", ""); p != "" {
		cfg.Project = p
	}
	if s := request.GetString("stage", ""); s != "" {
		cfg.Stage = s
	}
	if s := request.GetString("service", ""); s != "" {
		cfg.Service = s
	}
	return cfg
}

func jsonResult(data any) *mcp.CallToolResult {
	jsonData, _ := json.MarshalIndent(data, "", "  ")
	return mcp.NewToolResultText(string(jsonData))
}

func (h *toolHandler) handleGetHeatmap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.scopedConfig(request)
	if l := request.GetInt("limit", 0); l > 0 {
		if l > contract.MaxResultLimit {
			return mcp.NewToolResultError(fmt.Sprintf("limit cannot exceed %d", contract.MaxResultLimit)), nil
		}
		cfg.RowLimit = l
	}
	cfg.Expanded = request.GetBool("expanded", cfg.Expanded)

	container := core.DefaultContainer(cfg)
	if w := request.GetFloat("width", 0); w > 0 {
		container.Width = w
	}

	legend := schema.LegendState{}
	for _, part := range strings.Split(request.GetString("disabled", ""), ",") {
		c := schema.Classification(strings.TrimSpace(strings.ToLower(part)))
		if c == "" {
			continue
		}
		if _, ok := schema.ValidClassifications[c]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown classification %q", c)), nil
		}
		if !legend.IsDisabled(c) {
			legend = legend.Toggle(c)
		}
	}

	result, err := core.GetHeatmapResultFor(ctx, cfg, h.mgr, container, legend)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("heatmap failed: %v", err)), nil
	}
	return jsonResult(result), nil
}

func (h *toolHandler) handleResolveHighlight(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.scopedConfig(request)
	cfg.Selected = strings.TrimSpace(request.GetString("id", ""))
	if cfg.Selected == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	hl, err := core.GetHighlightResult(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("highlight failed: %v", err)), nil
	}
	if !hl.Found() {
		return mcp.NewToolResultError(fmt.Sprintf("evaluation %s is not in the heatmap window", cfg.Selected)), nil
	}
	return jsonResult(hl), nil
}

func (h *toolHandler) handleCheckQualityGate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.scopedConfig(request)
	cfg.FailOnWarning = request.GetBool("fail_on_warning", cfg.FailOnWarning)

	result, err := core.GetCheckResult(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("check failed: %v", err)), nil
	}
	return jsonResult(result), nil
}

func (h *toolHandler) handleCompareEvaluation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Selected = strings.TrimSpace(request.GetString("id", ""))
	if cfg.Selected == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	result, err := core.GetComparisonResult(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}
	return jsonResult(result), nil
}

func (h *toolHandler) handleTooltipPosition(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	for _, name := range []string{"width", "cursor_x", "cursor_y"} {
		if _, ok := args[name]; !ok {
			return mcp.NewToolResultError(name + " is required"), nil
		}
	}

	pos := layout.TooltipPosition(
		request.GetFloat("width", 0),
		request.GetFloat("scrollbar_width", 0),
		request.GetFloat("cursor_x", 0),
		request.GetFloat("cursor_y", 0),
		request.GetFloat("viewport_width", contract.DefaultViewportWidth),
		request.GetFloat("device_pixel_ratio", 1),
	)
	return jsonResult(pos), nil
}
