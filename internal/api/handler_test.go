package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/heatgate/internal/contract"
	"github.com/huangsam/heatgate/internal/iocache"
	"github.com/huangsam/heatgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var apiBaseTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func apiConfig() *contract.Config {
	return &contract.Config{
		RowLimit:     contract.DefaultRowLimit,
		HistoryLimit: contract.DefaultHistoryLimit,
		Project:      "sockshop",
		Stage:        "staging",
		Service:      "carts",
		Precision:    contract.DefaultPrecision,
		Output:       schema.JSONOut,
		TimeLayout:   contract.DefaultTimeLayout,
		Layout:       schema.DefaultLayoutSettings(),
		Backend:      schema.SQLiteBackend,
		Addr:         contract.DefaultAddr,
	}
}

func apiEvaluation(id string, hours int, score float64, result schema.Classification, compared []string, latency, indScore float64, status schema.Classification) schema.EvaluationRecord {
	return schema.EvaluationRecord{
		ID:                  id,
		Time:                apiBaseTime.Add(time.Duration(hours) * time.Hour),
		Project:             "sockshop",
		Stage:               "staging",
		Service:             "carts",
		Score:               score,
		Result:              result,
		ComparedEvaluations: compared,
		IndicatorResults: []schema.IndicatorResult{
			{Metric: "response_time", Value: schema.IndicatorValue{Value: latency, Success: true}, Score: indScore, Status: status},
		},
	}
}

// apiHistory is newest first, as the store returns it.
func apiHistory() []schema.EvaluationRecord {
	return []schema.EvaluationRecord{
		apiEvaluation("e3", 2, 50, schema.FailResult, []string{"e2", "e1"}, 900, 0, schema.FailResult),
		apiEvaluation("e2", 1, 100, schema.PassResult, []string{"e1"}, 400, 1, schema.PassResult),
		apiEvaluation("e1", 0, 100, schema.PassResult, nil, 420, 1, schema.PassResult),
	}
}

// heatmapBody skips the grid, which only encodes.
type heatmapBody struct {
	Evaluations int                 `json:"evaluations"`
	Layout      schema.LayoutResult `json:"layout"`
}

func newTestServer(t *testing.T, store *iocache.MockEvaluationStore) *httptest.Server {
	t.Helper()
	mgr := &iocache.MockStoreManager{}
	mgr.On("GetEvaluationStore").Return(store)

	srv := httptest.NewServer(NewServer(apiConfig(), mgr).Handler)
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHandleHeatmap(t *testing.T) {
	store := &iocache.MockEvaluationStore{}
	store.On("ListEvaluations", mock.Anything, mock.MatchedBy(func(f schema.EvaluationFilter) bool {
		return f.Project == "sockshop" && f.Limit == contract.DefaultHistoryLimit
	})).Return(apiHistory(), nil)
	srv := newTestServer(t, store)

	var result heatmapBody
	code := getJSON(t, srv.URL+"/api/heatmap?width=450&select=e3", &result)
	require.Equal(t, http.StatusOK, code)

	assert.Equal(t, 3, result.Evaluations)
	assert.Equal(t, []string{"response_time", "score"}, result.Layout.Axis.Rows)
	assert.Equal(t, 300.0, result.Layout.Content.Width)
	assert.Equal(t, 100.0, result.Layout.BandWidth)
	require.NotNil(t, result.Layout.Highlight)
	assert.Equal(t, "2024-05-01 12:00", result.Layout.Highlight.Column)
	assert.Len(t, result.Layout.Bands, 3)
}

func TestHandleHeatmapLegend(t *testing.T) {
	store := &iocache.MockEvaluationStore{}
	store.On("ListEvaluations", mock.Anything, mock.Anything).Return(apiHistory(), nil)
	srv := newTestServer(t, store)

	var result heatmapBody
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/heatmap?disabled=fail", &result))

	disabled := 0
	for _, c := range result.Layout.Cells {
		if c.Disabled {
			assert.Equal(t, schema.FailResult, c.Color)
			disabled++
		}
	}
	assert.Equal(t, 2, disabled)
	assert.Equal(t, []schema.Classification{schema.FailResult}, result.Layout.Legend.Disabled)
}

func TestHandleHeatmapCollapsed(t *testing.T) {
	store := &iocache.MockEvaluationStore{}
	store.On("ListEvaluations", mock.Anything, mock.Anything).Return(apiHistory(), nil)
	srv := newTestServer(t, store)

	var result heatmapBody
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/heatmap?limit=1", &result))
	assert.Equal(t, []string{"score"}, result.Layout.Axis.Rows)
	assert.True(t, result.Layout.Axis.HasMore)

	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/heatmap?limit=1&expanded=yes", &result))
	assert.Len(t, result.Layout.Axis.Rows, 2)
	assert.Equal(t, schema.ExpandedState, result.Layout.State)
}

func TestHandleHeatmapBadRequest(t *testing.T) {
	srv := newTestServer(t, &iocache.MockEvaluationStore{})

	for _, query := range []string{
		"limit=0",
		"limit=abc",
		"expanded=maybe",
		"disabled=purple",
		"width=wide",
		"height=-1",
		"before=yesterday",
	} {
		var body map[string]string
		code := getJSON(t, srv.URL+"/api/heatmap?"+query, &body)
		assert.Equal(t, http.StatusBadRequest, code, query)
		assert.NotEmpty(t, body["error"], query)
	}
}

func TestHandleHeatmapStoreError(t *testing.T) {
	store := &iocache.MockEvaluationStore{}
	store.On("ListEvaluations", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
	srv := newTestServer(t, store)

	var body map[string]string
	assert.Equal(t, http.StatusInternalServerError, getJSON(t, srv.URL+"/api/heatmap", &body))
	assert.Contains(t, body["error"], "connection refused")
}

func TestHandleHighlight(t *testing.T) {
	store := &iocache.MockEvaluationStore{}
	store.On("ListEvaluations", mock.Anything, mock.Anything).Return(apiHistory(), nil)
	srv := newTestServer(t, store)

	var body struct {
		Columns  []string                `json:"columns"`
		Compared []schema.ComparedColumn `json:"compared"`
		Point    *schema.DataPoint       `json:"point"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/heatmap/highlight/e3", &body))
	assert.Equal(t, []string{"2024-05-01 12:00", "2024-05-01 11:00", "2024-05-01 10:00"}, body.Columns)
	assert.Len(t, body.Compared, 2)
	require.NotNil(t, body.Point)
	assert.Equal(t, "e3", body.Point.Identifier)

	var missing map[string]string
	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/api/heatmap/highlight/e9", &missing))
	assert.Contains(t, missing["error"], "e9")
}

func TestHandleComparison(t *testing.T) {
	history := apiHistory()
	store := &iocache.MockEvaluationStore{}
	store.On("GetEvaluation", mock.Anything, "e3").Return(history[0], nil)
	store.On("GetEvaluation", mock.Anything, "e9").Return(schema.EvaluationRecord{}, contract.ErrNotFound)
	store.On("ListEvaluations", mock.Anything, mock.MatchedBy(func(f schema.EvaluationFilter) bool {
		return f.Before.Equal(history[0].Time)
	})).Return(history[1:], nil)
	srv := newTestServer(t, store)

	var result schema.ComparisonResult
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/evaluations/e3/comparison", &result))
	assert.Equal(t, "e3", result.EvaluationID)
	assert.Equal(t, 2, result.Summary.ComparedEvaluations)
	require.Len(t, result.Details, 1)
	assert.Equal(t, schema.RegressedStatus, result.Details[0].Status)
	assert.Equal(t, 410.0, result.Details[0].ComparedValue)

	var body map[string]string
	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/api/evaluations/e9/comparison", &body))
}

func TestHandleCheck(t *testing.T) {
	store := &iocache.MockEvaluationStore{}
	store.On("ListEvaluations", mock.Anything, mock.MatchedBy(func(f schema.EvaluationFilter) bool {
		return f.Limit == 1
	})).Return(apiHistory()[:1], nil)
	srv := newTestServer(t, store)

	var result schema.CheckResult
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/check", &result))
	assert.False(t, result.Passed)
	assert.Equal(t, "e3", result.EvaluationID)
	assert.Len(t, result.FailedIndicators, 1)
}

func TestHandleTooltipPosition(t *testing.T) {
	srv := newTestServer(t, &iocache.MockEvaluationStore{})

	var pos schema.Position
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/tooltip-position?width=100&x=200&y=10", &pos))
	assert.Equal(t, schema.Position{Top: 15, Left: 205}, pos)

	// Past the default 1280 viewport the tooltip flips left of the cursor
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/tooltip-position?width=100&x=1200&y=10", &pos))
	assert.Equal(t, schema.Position{Top: 15, Left: 1105}, pos)

	var body map[string]string
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/api/tooltip-position?width=100&y=10", &body))
	assert.Equal(t, "x is required", body["error"])
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, &iocache.MockEvaluationStore{})

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/heatmap", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &iocache.MockEvaluationStore{})
	var body map[string]string
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/healthz", &body))

	empty := &iocache.MockStoreManager{}
	empty.On("GetEvaluationStore").Return(nil)
	noStore := httptest.NewServer(NewServer(apiConfig(), empty).Handler)
	defer noStore.Close()
	assert.Equal(t, http.StatusServiceUnavailable, getJSON(t, noStore.URL+"/healthz", &body))
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, &iocache.MockEvaluationStore{})

	var pos schema.Position
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/tooltip-position?width=1&x=1&y=1", &pos))

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	buf := new(strings.Builder)
	_, err = io.Copy(buf, resp.Body)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `heatgate_api_requests_total{code="200",route="tooltip"}`)
	assert.Contains(t, buf.String(), "heatgate_api_request_duration_seconds")
}

func TestHeatmapPointsProjectLabel(t *testing.T) {
	store := &iocache.MockEvaluationStore{}
	store.On("ListEvaluations", mock.Anything, mock.Anything).Return(apiHistory(), nil)
	srv := newTestServer(t, store)

	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/heatmap", nil))
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/heatmap?project=unbounded-7f3a", nil))

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	buf := new(strings.Builder)
	_, err = io.Copy(buf, resp.Body)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `heatgate_heatmap_points{project="sockshop"}`)
	assert.Contains(t, buf.String(), `heatgate_heatmap_points{project="other"}`)
	assert.NotContains(t, buf.String(), "unbounded-7f3a")
}

func TestProjectLabel(t *testing.T) {
	assert.Equal(t, "sockshop", projectLabel("sockshop", "sockshop"))
	assert.Equal(t, otherProject, projectLabel("sockshop", "podtato"))
	assert.Equal(t, otherProject, projectLabel("", ""))
}
