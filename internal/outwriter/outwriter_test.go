package outwriter

import (
	"time"

	"github.com/huangsam/heatgate/core/heatmap"
	"github.com/huangsam/heatgate/core/layout"
	"github.com/huangsam/heatgate/internal/contract"
	"github.com/huangsam/heatgate/schema"
)

var outBaseTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func textConfig(width int) *contract.Config {
	return &contract.Config{
		RowLimit:  contract.DefaultRowLimit,
		Output:    schema.TextOut,
		Precision: 1,
		Width:     width,
		Backend:   schema.SQLiteBackend,
	}
}

func outEvaluation(id string, hours int, score float64, result schema.Classification, compared []string, latency float64, status schema.Classification) schema.EvaluationRecord {
	return schema.EvaluationRecord{
		ID:                  id,
		Time:                outBaseTime.Add(time.Duration(hours) * time.Hour),
		Project:             "sockshop",
		Stage:               "staging",
		Service:             "carts",
		Score:               score,
		Result:              result,
		ComparedEvaluations: compared,
		IndicatorResults: []schema.IndicatorResult{
			{Metric: "response_time", Value: schema.IndicatorValue{Value: latency, Success: true}, Score: 1, Status: status},
		},
	}
}

// sampleHeatmap builds a three column heatmap with a score row and one SLI row.
func sampleHeatmap(limit int) schema.HeatmapResult {
	evs := []schema.EvaluationRecord{
		outEvaluation("e1", 0, 100, schema.PassResult, nil, 420, schema.PassResult),
		outEvaluation("e2", 1, 80, schema.WarningResult, []string{"e1"}, 610, schema.WarningResult),
		outEvaluation("e3", 2, 50, schema.FailResult, []string{"e2", "e1"}, 900, schema.FailResult),
	}
	grid := heatmap.BuildGrid(heatmap.BuildDataPoints(evs, ""))
	view := layout.NewView(grid, limit, schema.DefaultLayoutSettings())
	return schema.HeatmapResult{
		Project:     "sockshop",
		Stage:       "staging",
		Service:     "carts",
		Evaluations: len(evs),
		Grid:        grid,
		Layout:      view.Layout(schema.Size{Width: 1000}, schema.LegendState{}, ""),
	}
}
