package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/ndview/internal/testutil"
)

// createTestStore opens a store in a temp dir with sequential run IDs.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(testutil.NewSequentialIDGenerator("run")))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestResult builds a scenario result with a small trace.
func createTestResult(t *testing.T, runID string, seq int64, scenario string, pass bool, errs ...string) ScenarioResult {
	t.Helper()
	trace := []any{
		map[string]any{"seq": seq, "type": "convert", "array": "a", "outcome": "ok"},
	}
	res, err := NewScenarioResult(runID, seq, scenario, pass, trace, errs)
	require.NoError(t, err)
	return res
}
