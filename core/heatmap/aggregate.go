// Package heatmap turns evaluation history into deduplicated, grouped heatmap points.
package heatmap

import (
	"slices"

	"github.com/huangsam/heatgate/schema"
)

// DefaultColumnLayout is the time layout used for column labels.
const DefaultColumnLayout = "2006-01-02 15:04"

// Aggregate builds the score point and one SLI point per indicator for an evaluation.
func Aggregate(ev schema.EvaluationRecord, score float64) []schema.DataPoint {
	return AggregateWithLayout(ev, score, DefaultColumnLayout)
}

// AggregateWithLayout is Aggregate with a custom column time layout.
func AggregateWithLayout(ev schema.EvaluationRecord, score float64, layout string) []schema.DataPoint {
	column := ev.Time.Format(layout)
	points := make([]schema.DataPoint, 0, len(ev.IndicatorResults)+1)
	points = append(points, scorePoint(ev, score, column))

	sum := indicatorScoreSum(ev.IndicatorResults)
	for _, ind := range ev.IndicatorResults {
		points = append(points, sliPoint(ev, ind, score, sum, column))
	}
	return points
}

// BuildDataPoints aggregates every evaluation oldest first and deduplicates the labels.
func BuildDataPoints(evaluations []schema.EvaluationRecord, layout string) []schema.DataPoint {
	if layout == "" {
		layout = DefaultColumnLayout
	}
	sorted := slices.Clone(evaluations)
	slices.SortStableFunc(sorted, func(a, b schema.EvaluationRecord) int {
		return a.Time.Compare(b.Time)
	})

	var points []schema.DataPoint
	for _, ev := range sorted {
		points = append(points, AggregateWithLayout(ev, ev.Score, layout)...)
	}
	DeduplicateLabels(points)
	return points
}

func scorePoint(ev schema.EvaluationRecord, score float64, column string) schema.DataPoint {
	tip := &schema.ScoreTooltip{
		Value:         score,
		PassThreshold: ev.PassThreshold(),
		WarnThreshold: ev.WarnThreshold(),
		IsFail:        ev.Result == schema.FailResult,
		IsWarn:        ev.Result == schema.WarningResult,
	}
	for _, ind := range ev.IndicatorResults {
		warning, failed := 0, 0
		if ind.Status == schema.WarningResult {
			warning = 1
		}
		if ind.Status == schema.FailResult {
			failed = 1
		}
		tip.WarningCount += warning
		tip.FailedCount += failed
		tip.PassCount += 1 - warning - failed
		if ind.KeySLI {
			tip.KeySLICount++
			tip.KeySLIFailedCount += failed
		}
	}

	color := ev.Result
	if color == "" {
		color = schema.InfoResult
	}
	return schema.DataPoint{
		Row:                 schema.ScoreRow,
		Column:              column,
		Identifier:          ev.ID,
		Time:                ev.Time,
		Color:               color,
		ComparedIdentifiers: slices.Clone(ev.ComparedEvaluations),
		Tooltip:             schema.Tooltip{Kind: schema.ScoreTooltipKind, Score: tip},
	}
}

func sliPoint(ev schema.EvaluationRecord, ind schema.IndicatorResult, score, sum float64, column string) schema.DataPoint {
	color := schema.InfoResult
	if ind.Value.Success && ind.Status != "" {
		color = ind.Status
	}
	return schema.DataPoint{
		Row:                 ind.Label(),
		Column:              column,
		Identifier:          ev.ID,
		Time:                ev.Time,
		Color:               color,
		ComparedIdentifiers: slices.Clone(ev.ComparedEvaluations),
		Tooltip: schema.Tooltip{
			Kind: schema.SLITooltipKind,
			SLI: &schema.SLITooltip{
				Value:            ind.Value.Value,
				IsKeySLI:         ind.KeySLI,
				ContributedScore: contributedScore(ind.Score, sum, score),
				PassTargets:      slices.Clone(ind.PassTargets),
				WarningTargets:   slices.Clone(ind.WarningTargets),
			},
		},
	}
}

// indicatorScoreSum returns the sum of indicator scores, or 1 when there are none.
func indicatorScoreSum(indicators []schema.IndicatorResult) float64 {
	if len(indicators) == 0 {
		return 1
	}
	sum := 0.0
	for _, ind := range indicators {
		sum += ind.Score
	}
	return sum
}

func contributedScore(indicatorScore, sum, score float64) float64 {
	if sum == 0 {
		return 0
	}
	return indicatorScore / sum * score
}
