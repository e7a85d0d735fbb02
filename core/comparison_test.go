package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/huangsam/heatgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareEvaluation(t *testing.T) {
	ev := evaluation("now", 3, 75, schema.WarningResult, []string{"a", "b"},
		indicator("throughput", 120, 1, schema.PassResult),
		indicator("response_time", 500, 0.5, schema.WarningResult),
		indicator("error_rate", 0.02, 1, schema.PassResult),
		indicator("new_metric", 7, 1, schema.PassResult),
	)
	compared := []schema.EvaluationRecord{
		evaluation("a", 1, 100, schema.PassResult, nil,
			indicator("throughput", 100, 0.5, schema.WarningResult),
			indicator("response_time", 400, 1, schema.PassResult),
			indicator("error_rate", 0.02, 1, schema.PassResult)),
		evaluation("b", 2, 80, schema.PassResult, nil,
			indicator("throughput", 100, 0.5, schema.WarningResult),
			indicator("response_time", 300, 1, schema.PassResult),
			indicator("error_rate", 0.02, 1, schema.PassResult)),
	}

	result := CompareEvaluation(ev, compared, 1)

	assert.Equal(t, "now", result.EvaluationID)
	assert.Equal(t, []string{"a", "b"}, result.ComparedIDs)

	wantSummary := schema.ComparisonSummary{
		ComparedEvaluations: 2,
		MissingEvaluations:  1,
		TotalImproved:       1,
		TotalRegressed:      1,
		TotalUnchanged:      1,
		TotalMissing:        1,
		ComparedScore:       90,
		NetScoreDelta:       -15,
	}
	if diff := cmp.Diff(wantSummary, result.Summary); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}

	rows := make([]string, 0, len(result.Details))
	for _, d := range result.Details {
		rows = append(rows, d.Row)
	}
	assert.Equal(t, []string{"response_time", "throughput", "error_rate", "new_metric"}, rows)

	rt := result.Details[0]
	assert.Equal(t, schema.RegressedStatus, rt.Status)
	assert.Equal(t, 350.0, rt.ComparedValue)
	assert.Equal(t, 150.0, rt.Delta)
	assert.InDelta(t, 42.857, rt.DeltaPercent, 0.001)
	assert.Equal(t, 2, rt.Samples)

	tp := result.Details[1]
	assert.Equal(t, schema.ImprovedStatus, tp.Status)
	assert.Equal(t, 20.0, tp.DeltaPercent)

	missing := result.Details[3]
	assert.Equal(t, schema.MissingStatus, missing.Status)
	assert.Equal(t, 0, missing.Samples)
	assert.Zero(t, missing.Delta)
}

func TestCompareEvaluationNoCompared(t *testing.T) {
	ev := evaluation("solo", 0, 60, schema.FailResult, nil, indicator("latency", 10, 0, schema.FailResult))

	result := CompareEvaluation(ev, nil, 0)
	assert.Empty(t, result.ComparedIDs)
	assert.Zero(t, result.Summary.NetScoreDelta)
	assert.Zero(t, result.Summary.ComparedScore)
	require.Len(t, result.Details, 1)
	assert.Equal(t, schema.MissingStatus, result.Details[0].Status)
	assert.Equal(t, 1, result.Summary.TotalMissing)
}

func TestCompareEvaluationZeroBaseline(t *testing.T) {
	ev := evaluation("x", 1, 100, schema.PassResult, []string{"y"}, indicator("errors", 3, 1, schema.PassResult))
	prev := evaluation("y", 0, 100, schema.PassResult, nil, indicator("errors", 0, 1, schema.PassResult))

	result := CompareEvaluation(ev, []schema.EvaluationRecord{prev}, 0)
	require.Len(t, result.Details, 1)
	assert.Equal(t, 3.0, result.Details[0].Delta)
	assert.Zero(t, result.Details[0].DeltaPercent)
	assert.Equal(t, schema.UnchangedStatus, result.Details[0].Status)
}

func TestMovement(t *testing.T) {
	assert.Equal(t, schema.ImprovedStatus, movement(0.5))
	assert.Equal(t, schema.RegressedStatus, movement(-0.5))
	assert.Equal(t, schema.UnchangedStatus, movement(0.0005))
	assert.Equal(t, schema.UnchangedStatus, movement(-0.001))
}
