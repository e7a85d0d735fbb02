package iocache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/heatgate/internal/contract"
	"github.com/huangsam/heatgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var storeBaseTime = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func sampleRecord(id string, offset time.Duration) schema.EvaluationRecord {
	pass, warn := 90.0, 75.0
	return schema.EvaluationRecord{
		ID:                  id,
		Time:                storeBaseTime.Add(offset),
		Project:             "sockshop",
		Stage:               "staging",
		Service:             "carts",
		Score:               87.5,
		Result:              schema.WarningResult,
		ComparedEvaluations: []string{"prev-1"},
		SLOFileContent:      "c3BlY192ZXJzaW9uOiAnMS4wJw==",
		ScorePassThreshold:  &pass,
		ScoreWarnThreshold:  &warn,
		IndicatorResults: []schema.IndicatorResult{
			{
				Metric:      "response_time_p95",
				DisplayName: "Response time P95",
				Value:       schema.IndicatorValue{Value: 410.2, Success: true},
				Score:       1,
				Status:      schema.PassResult,
				KeySLI:      true,
				PassTargets: []schema.Target{{Criteria: "<=600", TargetValue: 600}},
			},
			{
				Metric:         "error_rate",
				Value:          schema.IndicatorValue{Value: 0.04, Success: true},
				Score:          0.5,
				Status:         schema.WarningResult,
				WarningTargets: []schema.Target{{Criteria: "<=0.05", TargetValue: 0.05}},
			},
		},
	}
}

func newSQLiteStore(t *testing.T) contract.EvaluationStore {
	t.Helper()
	store, err := NewEvaluationStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "heatgate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestEvaluationStore_NoneBackend(t *testing.T) {
	store, err := NewEvaluationStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)
	ctx := context.Background()

	assert.NoError(t, store.SaveEvaluation(ctx, sampleRecord("a", 0)))

	evs, err := store.ListEvaluations(ctx, schema.EvaluationFilter{})
	assert.NoError(t, err)
	assert.Empty(t, evs)

	_, err = store.GetEvaluation(ctx, "a")
	assert.ErrorIs(t, err, contract.ErrNotFound)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.Equal(t, "none", status.Backend)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}

func TestEvaluationStore_UnsupportedBackend(t *testing.T) {
	_, err := NewEvaluationStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

func TestEvaluationStore_SQLiteRoundTrip(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()
	want := sampleRecord("eval-1", 0)

	require.NoError(t, store.SaveEvaluation(ctx, want))

	got, err := store.GetEvaluation(ctx, "eval-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEvaluationStore_SQLiteInMemory(t *testing.T) {
	store, err := NewEvaluationStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ev := sampleRecord("mem", 0)
	ev.ComparedEvaluations = nil
	ev.ScoreWarnThreshold = nil
	require.NoError(t, store.SaveEvaluation(context.Background(), ev))

	got, err := store.GetEvaluation(context.Background(), "mem")
	require.NoError(t, err)
	assert.Nil(t, got.ComparedEvaluations)
	assert.Nil(t, got.ScoreWarnThreshold)
	assert.NotNil(t, got.ScorePassThreshold)
}

func TestEvaluationStore_SaveReplaces(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	ev := sampleRecord("eval-1", 0)
	require.NoError(t, store.SaveEvaluation(ctx, ev))

	ev.Score = 42
	ev.IndicatorResults = ev.IndicatorResults[:1]
	require.NoError(t, store.SaveEvaluation(ctx, ev))

	got, err := store.GetEvaluation(ctx, "eval-1")
	require.NoError(t, err)
	assert.Equal(t, 42.0, got.Score)
	assert.Len(t, got.IndicatorResults, 1)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalEvaluations)
	assert.Equal(t, 1, status.TotalIndicators)
}

func TestEvaluationStore_SaveRequiresID(t *testing.T) {
	store := newSQLiteStore(t)
	err := store.SaveEvaluation(context.Background(), sampleRecord("", 0))
	assert.Error(t, err)
}

func TestEvaluationStore_GetMissing(t *testing.T) {
	store := newSQLiteStore(t)
	_, err := store.GetEvaluation(context.Background(), "nope")
	assert.ErrorIs(t, err, contract.ErrNotFound)
}

func TestEvaluationStore_ListFilters(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	for i, id := range []string{"e1", "e2", "e3", "e4"} {
		require.NoError(t, store.SaveEvaluation(ctx, sampleRecord(id, time.Duration(i)*time.Hour)))
	}
	other := sampleRecord("other", 10*time.Hour)
	other.Service = "orders"
	require.NoError(t, store.SaveEvaluation(ctx, other))

	tests := []struct {
		name   string
		filter schema.EvaluationFilter
		want   []string
	}{
		{"all", schema.EvaluationFilter{}, []string{"other", "e4", "e3", "e2", "e1"}},
		{"service", schema.EvaluationFilter{Service: "carts"}, []string{"e4", "e3", "e2", "e1"}},
		{"limit", schema.EvaluationFilter{Service: "carts", Limit: 2}, []string{"e4", "e3"}},
		{"before", schema.EvaluationFilter{Service: "carts", Before: storeBaseTime.Add(2 * time.Hour)}, []string{"e2", "e1"}},
		{"no match", schema.EvaluationFilter{Project: "unknown"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evs, err := store.ListEvaluations(ctx, tt.filter)
			require.NoError(t, err)
			var ids []string
			for _, ev := range evs {
				ids = append(ids, ev.ID)
				assert.Len(t, ev.IndicatorResults, 2)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestEvaluationStore_Status(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalEvaluations)
	assert.True(t, status.LastEvaluationTime.IsZero())

	require.NoError(t, store.SaveEvaluation(ctx, sampleRecord("old", 0)))
	require.NoError(t, store.SaveEvaluation(ctx, sampleRecord("new", 48*time.Hour)))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.Equal(t, 2, status.TotalEvaluations)
	assert.Equal(t, 4, status.TotalIndicators)
	assert.Equal(t, storeBaseTime, status.OldestEvaluationTime)
	assert.Equal(t, storeBaseTime.Add(48*time.Hour), status.LastEvaluationTime)
	assert.Equal(t, int64(2), status.TableSizes[evaluationsTable])
}

func TestBind(t *testing.T) {
	query := "SELECT * FROM t WHERE a = ? AND b = ?"
	assert.Equal(t, query, bind(query, schema.SQLiteBackend))
	assert.Equal(t, query, bind(query, schema.MySQLBackend))
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = $2", bind(query, schema.PostgreSQLBackend))
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`heatgate_evaluations`", quoteTableName(evaluationsTable, schema.MySQLBackend))
	assert.Equal(t, `"heatgate_evaluations"`, quoteTableName(evaluationsTable, schema.PostgreSQLBackend))
	assert.Equal(t, `"heatgate_evaluations"`, quoteTableName(evaluationsTable, schema.SQLiteBackend))
}

func TestFormatTimeSortsLexically(t *testing.T) {
	early := formatTime(storeBaseTime, schema.SQLiteBackend).(string)
	late := formatTime(storeBaseTime.Add(1500*time.Millisecond), schema.SQLiteBackend).(string)
	assert.Less(t, early, late)
	assert.Len(t, early, len(late))
}
