//go:build basic || database

// Package integration runs the heatgate binary end to end against real stores.
package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	// sharedBinaryPath holds the path to a heatgate binary built once for all tests.
	sharedBinaryPath string

	buildOnce  sync.Once
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// evaluationsFixture has three evaluations of one service; the newest one fails.
const evaluationsFixture = `{
  "evaluations": [
    {
      "id": "e1", "time": "2024-05-01T10:00:00Z",
      "project": "sockshop", "stage": "hardening", "service": "carts",
      "score": 100, "result": "pass",
      "indicator_results": [
        {"metric": "response_time_p95", "value": {"value": 120, "success": true}, "score": 1, "status": "pass", "key_sli": true}
      ]
    },
    {
      "id": "e2", "time": "2024-05-01T11:00:00Z",
      "project": "sockshop", "stage": "hardening", "service": "carts",
      "score": 80, "result": "warning", "compared_evaluations": ["e1"],
      "indicator_results": [
        {"metric": "response_time_p95", "value": {"value": 240, "success": true}, "score": 0.5, "status": "warning", "key_sli": true}
      ]
    },
    {
      "id": "e3", "time": "2024-05-01T12:00:00Z",
      "project": "sockshop", "stage": "hardening", "service": "carts",
      "score": 20, "result": "fail", "compared_evaluations": ["e2", "e1"],
      "indicator_results": [
        {"metric": "response_time_p95", "value": {"value": 900, "success": false}, "score": 0, "status": "fail", "key_sli": true}
      ]
    }
  ]
}`

// TestMain handles cleanup of the shared binary.
func TestMain(m *testing.M) {
	code := m.Run()
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}
	os.Exit(code)
}

// getHeatgateBinary returns the path to the heatgate binary, building it once if needed.
func getHeatgateBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "heatgate-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binPath := filepath.Join(tempDir, "heatgate")
		buildCmd := exec.Command("go", "build", "-o", binPath, ".")
		buildCmd.Dir = ".." // project root
		if out, err := buildCmd.CombinedOutput(); err != nil {
			panic(fmt.Sprintf("failed to build heatgate: %v\n%s", err, out))
		}
		sharedBinaryPath = binPath
	})

	return sharedBinaryPath
}

// runHeatgate runs the binary with the given store settings and returns its combined output.
func runHeatgate(t *testing.T, backend, connStr string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getHeatgateBinary(), args...)
	cmd.Env = append(os.Environ(),
		"HEATGATE_DB_BACKEND="+backend,
		"HEATGATE_DB_CONNECT="+connStr,
		"HEATGATE_COLOR=no",
	)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// writeFixture writes the evaluation fixture to a temp file and returns its path.
func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "evaluations.json")
	require.NoError(t, os.WriteFile(path, []byte(evaluationsFixture), 0o600))
	return path
}
