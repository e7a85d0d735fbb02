package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/huangsam/heatgate/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const payloadArray = `[
  {"id": "e1", "time": "2024-05-01T10:00:00Z", "project": "sockshop", "stage": "staging", "service": "carts",
   "score": 100, "result": "pass",
   "indicator_results": [{"metric": "response_time_p95", "value": {"value": 210.5, "success": true}, "score": 1, "status": "pass"}]},
  {"time": "2024-05-01T11:00:00Z", "project": "sockshop", "stage": "staging", "service": "carts",
   "score": 50, "result": "fail", "indicator_results": [],
   "slo_file_content": "total_score:\n  pass: \"90%\"\n  warning: \"75%\"\n"}
]`

const payloadEnvelope = `{"evaluations": [{"id": "e9", "time": "2024-05-02T10:00:00Z", "score": 75, "result": "warning"}]}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDecode(t *testing.T) {
	t.Run("array", func(t *testing.T) {
		evs, err := Decode([]byte(payloadArray))
		require.NoError(t, err)
		require.Len(t, evs, 2)

		assert.Equal(t, "e1", evs[0].ID)
		assert.Equal(t, "response_time_p95", evs[0].IndicatorResults[0].Metric)
		assert.False(t, evs[0].HasThresholds())

		_, err = uuid.Parse(evs[1].ID)
		assert.NoError(t, err, "missing ids get a uuid")
		assert.Equal(t, 90.0, evs[1].PassThreshold())
		assert.Equal(t, 75.0, evs[1].WarnThreshold())
	})

	t.Run("envelope", func(t *testing.T) {
		evs, err := Decode([]byte(payloadEnvelope))
		require.NoError(t, err)
		require.Len(t, evs, 1)
		assert.Equal(t, "e9", evs[0].ID)
	})

	tests := []struct {
		name    string
		payload string
	}{
		{"empty", "  \n"},
		{"scalar", `"hello"`},
		{"broken array", `[{"id": 1}`},
		{"broken object", `{"evaluations": 3}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.payload))
			assert.Error(t, err)
		})
	}
}

func TestOpenLocal(t *testing.T) {
	ctx := context.Background()
	path := writeFile(t, "evals.json", payloadArray)

	for _, uri := range []string{path, "file://" + path} {
		src, err := Open(ctx, uri, contract.S3Config{})
		require.NoError(t, err)
		assert.Equal(t, uri, src.Location())

		evs, err := src.Fetch(ctx)
		require.NoError(t, err)
		assert.Len(t, evs, 2)
	}
}

func TestOpenErrors(t *testing.T) {
	ctx := context.Background()

	_, err := Open(ctx, "", contract.S3Config{})
	assert.Error(t, err)

	_, err = Open(ctx, "ftp://host/evals.json", contract.S3Config{})
	assert.ErrorContains(t, err, "unsupported source scheme")

	_, err = Open(ctx, "s3://bucket-only", contract.S3Config{})
	assert.ErrorContains(t, err, "must name a bucket and an object")

	src, err := Open(ctx, filepath.Join(t.TempDir(), "missing.json"), contract.S3Config{})
	require.NoError(t, err)
	_, err = src.Fetch(ctx)
	assert.Error(t, err)

	src, err = Open(ctx, writeFile(t, "bad.json", "not json"), contract.S3Config{})
	require.NoError(t, err)
	_, err = src.Fetch(ctx)
	assert.ErrorContains(t, err, "decoding")
}

func TestOpenS3Compatible(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payloadEnvelope))
	}))
	defer server.Close()

	ctx := context.Background()
	src, err := Open(ctx, "s3://quality-gates/sockshop/evals.json", contract.S3Config{
		Endpoint:  server.URL,
		Region:    "us-east-1",
		AccessKey: "test",
		SecretKey: "test",
	})
	require.NoError(t, err)

	evs, err := src.Fetch(ctx)
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, "e9", evs[0].ID)
	assert.Equal(t, "/quality-gates/sockshop/evals.json", gotPath)
}
