package core

import (
	"math"
	"sort"

	"github.com/huangsam/heatgate/schema"
)

// scoreEpsilon is the smallest indicator score movement reported as a change.
const scoreEpsilon = 0.001

// metricSamples accumulates one metric across compared evaluations.
type metricSamples struct {
	valueSum float64
	scoreSum float64
	count    int
}

// CompareEvaluation describes how each indicator of ev moved against the
// compared evaluations. missing is the number of compared ids that could not be resolved.
func CompareEvaluation(ev schema.EvaluationRecord, compared []schema.EvaluationRecord, missing int) schema.ComparisonResult {
	samples := make(map[string]*metricSamples)
	comparedIDs := make([]string, 0, len(compared))
	var comparedScoreSum float64
	for _, c := range compared {
		comparedIDs = append(comparedIDs, c.ID)
		comparedScoreSum += c.Score
		for _, ind := range c.IndicatorResults {
			s, ok := samples[ind.Metric]
			if !ok {
				s = &metricSamples{}
				samples[ind.Metric] = s
			}
			s.valueSum += ind.Value.Value
			s.scoreSum += ind.Score
			s.count++
		}
	}

	summary := schema.ComparisonSummary{
		ComparedEvaluations: len(compared),
		MissingEvaluations:  missing,
	}
	if len(compared) > 0 {
		summary.ComparedScore = comparedScoreSum / float64(len(compared))
		summary.NetScoreDelta = ev.Score - summary.ComparedScore
	}

	details := make([]schema.ComparisonDetail, 0, len(ev.IndicatorResults))
	for _, ind := range ev.IndicatorResults {
		d := schema.ComparisonDetail{
			Row:    ind.Label(),
			Metric: ind.Metric,
			Value:  ind.Value.Value,
			Score:  ind.Score,
			Result: ind.Status,
			KeySLI: ind.KeySLI,
			Status: schema.MissingStatus,
		}
		if s, ok := samples[ind.Metric]; ok {
			n := float64(s.count)
			d.Samples = s.count
			d.ComparedValue = s.valueSum / n
			d.ComparedScore = s.scoreSum / n
			d.Delta = d.Value - d.ComparedValue
			if d.ComparedValue != 0 {
				d.DeltaPercent = d.Delta / math.Abs(d.ComparedValue) * 100
			}
			d.Status = movement(d.Score - d.ComparedScore)
		}

		switch d.Status {
		case schema.ImprovedStatus:
			summary.TotalImproved++
		case schema.RegressedStatus:
			summary.TotalRegressed++
		case schema.UnchangedStatus:
			summary.TotalUnchanged++
		default:
			summary.TotalMissing++
		}
		details = append(details, d)
	}
	sortComparisonDetails(details)

	return schema.ComparisonResult{
		EvaluationID: ev.ID,
		Time:         ev.Time,
		Score:        ev.Score,
		Result:       ev.Result,
		ComparedIDs:  comparedIDs,
		Details:      details,
		Summary:      summary,
	}
}

func movement(scoreDelta float64) schema.Status {
	switch {
	case scoreDelta > scoreEpsilon:
		return schema.ImprovedStatus
	case scoreDelta < -scoreEpsilon:
		return schema.RegressedStatus
	default:
		return schema.UnchangedStatus
	}
}

var statusOrder = map[schema.Status]int{
	schema.RegressedStatus: 0,
	schema.ImprovedStatus:  1,
	schema.UnchangedStatus: 2,
	schema.MissingStatus:   3,
}

// sortComparisonDetails puts regressions first, then by largest relative change.
// Indicators that tie keep their original order.
func sortComparisonDetails(details []schema.ComparisonDetail) {
	sort.SliceStable(details, func(i, j int) bool {
		oi, oj := statusOrder[details[i].Status], statusOrder[details[j].Status]
		if oi != oj {
			return oi < oj
		}
		return math.Abs(details[i].DeltaPercent) > math.Abs(details[j].DeltaPercent)
	})
}
