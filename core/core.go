// Package core wires the heatmap engine to the evaluation store and the output writers.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/heatgate/core/heatmap"
	"github.com/huangsam/heatgate/core/layout"
	"github.com/huangsam/heatgate/internal/contract"
	"github.com/huangsam/heatgate/internal/outwriter"
	"github.com/huangsam/heatgate/schema"
)

// ExecutorFunc defines the function signature for executing the different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// BuildHeatmap runs the full pipeline over already loaded evaluations:
// aggregate, deduplicate, group and lay out for the given container.
func BuildHeatmap(evs []schema.EvaluationRecord, cfg *contract.Config, container schema.Size, legend schema.LegendState) schema.HeatmapResult {
	points := heatmap.BuildDataPoints(evs, cfg.TimeLayout)
	grid := heatmap.BuildGrid(points)

	view := layout.NewView(grid, cfg.RowLimit, cfg.Layout)
	if cfg.Expanded {
		view.Expand()
	}

	return schema.HeatmapResult{
		Project:     cfg.Project,
		Stage:       cfg.Stage,
		Service:     cfg.Service,
		Evaluations: len(evs),
		Grid:        grid,
		Layout:      view.Layout(container, legend, cfg.Selected),
	}
}

// GetHeatmapResult loads the evaluation window for the config and builds its heatmap.
func GetHeatmapResult(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.HeatmapResult, error) {
	return GetHeatmapResultFor(ctx, cfg, mgr, DefaultContainer(cfg), schema.LegendState{})
}

// GetHeatmapResultFor is GetHeatmapResult for a client supplied container and legend.
func GetHeatmapResultFor(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, container schema.Size, legend schema.LegendState) (schema.HeatmapResult, error) {
	evs, err := loadEvaluations(ctx, cfg, mgr)
	if err != nil {
		return schema.HeatmapResult{}, err
	}
	return BuildHeatmap(evs, cfg, container, legend), nil
}

// ExecuteHeatmap builds the heatmap and prints it in the configured format.
func ExecuteHeatmap(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	result, err := GetHeatmapResult(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintHeatmapResult(result, cfg, time.Since(start))
}

// GetHighlightResult resolves the selected evaluation inside the heatmap window.
// An identifier outside the window yields an empty highlight and no error.
func GetHighlightResult(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.Highlight, error) {
	if cfg.Selected == "" {
		return schema.Highlight{}, errors.New("an evaluation id is required")
	}
	evs, err := loadEvaluations(ctx, cfg, mgr)
	if err != nil {
		return schema.Highlight{}, err
	}
	grid := heatmap.BuildGrid(heatmap.BuildDataPoints(evs, cfg.TimeLayout))
	return heatmap.ResolveHighlight(cfg.Selected, grid), nil
}

// ExecuteHighlight resolves the selected evaluation and prints it.
func ExecuteHighlight(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	h, err := GetHighlightResult(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if !h.Found() {
		return fmt.Errorf("evaluation %s is not in the current heatmap window", cfg.Selected)
	}
	return outwriter.PrintHighlightResult(h, cfg)
}

// GetComparisonResult compares the selected evaluation with the evaluations it lists
// as compared, resolved from the history preceding it.
func GetComparisonResult(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.ComparisonResult, error) {
	if cfg.Selected == "" {
		return schema.ComparisonResult{}, errors.New("an evaluation id is required")
	}
	store, err := evaluationStore(mgr)
	if err != nil {
		return schema.ComparisonResult{}, err
	}
	ev, err := store.GetEvaluation(ctx, cfg.Selected)
	if err != nil {
		return schema.ComparisonResult{}, fmt.Errorf("failed to load evaluation %s: %w", cfg.Selected, err)
	}
	history, err := store.ListEvaluations(ctx, schema.EvaluationFilter{
		Project: ev.Project,
		Stage:   ev.Stage,
		Service: ev.Service,
		Before:  ev.Time,
		Limit:   cfg.HistoryLimit,
	})
	if err != nil {
		return schema.ComparisonResult{}, fmt.Errorf("failed to load history of %s: %w", ev.ID, err)
	}
	compared, missing := resolveCompared(ev, history)
	return CompareEvaluation(ev, compared, missing), nil
}

// ExecuteCompare runs the comparison and prints it.
func ExecuteCompare(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	result, err := GetComparisonResult(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintComparisonResult(result, cfg, time.Since(start))
}

// ExecuteImport fetches evaluations from src and saves them to the store.
func ExecuteImport(ctx context.Context, mgr contract.StoreManager, src contract.EvaluationSource) (int, error) {
	store, err := evaluationStore(mgr)
	if err != nil {
		return 0, err
	}
	evs, err := src.Fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch evaluations: %w", err)
	}
	for i, ev := range evs {
		if err := store.SaveEvaluation(ctx, ev); err != nil {
			return i, fmt.Errorf("failed to save evaluation %s: %w", ev.ID, err)
		}
	}
	return len(evs), nil
}

// DefaultContainer is the drawing area used when no client supplies one.
func DefaultContainer(cfg *contract.Config) schema.Size {
	return schema.Size{
		Width:  contract.DefaultContainerWidth,
		Height: layout.CanvasHeight(cfg.RowLimit, true, cfg.Layout) + cfg.Layout.Margins.Top + cfg.Layout.Margins.Bottom,
	}
}
