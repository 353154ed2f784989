package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRun_Sequencing(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	r1, err := s.NewRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, "run-0001", r1.ID)
	assert.Equal(t, int64(1), r1.Seq)
	assert.Equal(t, int64(0), r1.StartedAtSeq)

	require.NoError(t, s.WriteScenarioResult(ctx, createTestResult(t, r1.ID, 1, "a", true)))
	require.NoError(t, s.WriteScenarioResult(ctx, createTestResult(t, r1.ID, 2, "b", false, "boom")))

	r2, err := s.NewRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, "run-0002", r2.ID)
	assert.Equal(t, int64(2), r2.Seq)
	assert.Equal(t, int64(2), r2.StartedAtSeq)
}

func TestNewRun_DefaultUUIDv7(t *testing.T) {
	s, err := Open(t.TempDir() + "/history.db")
	require.NoError(t, err)
	defer s.Close()

	run, err := s.NewRun(context.Background())
	require.NoError(t, err)

	id, err := uuid.Parse(run.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}

func TestWriteRun_UpdatesCounts(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run, err := s.NewRun(ctx)
	require.NoError(t, err)

	run.ScenarioCount, run.Passed, run.Failed = 3, 2, 1
	require.NoError(t, s.WriteRun(ctx, run))

	got, err := s.ReadRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run, got)
}

func TestWriteRun_RequiresID(t *testing.T) {
	s := createTestStore(t)
	err := s.WriteRun(context.Background(), Run{Seq: 1})
	assert.ErrorContains(t, err, "id is required")
}

func TestWriteScenarioResult_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run, err := s.NewRun(ctx)
	require.NoError(t, err)

	first := createTestResult(t, run.ID, 1, "narrowing", true)
	require.NoError(t, s.WriteScenarioResult(ctx, first))

	second := createTestResult(t, run.ID, 7, "narrowing", false, "changed")
	require.NoError(t, s.WriteScenarioResult(ctx, second))

	results, err := s.ReadScenarioResults(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, first, results[0])
}

func TestWriteScenarioResult_UnknownRun(t *testing.T) {
	s := createTestStore(t)
	err := s.WriteScenarioResult(context.Background(), createTestResult(t, "missing", 1, "a", true))
	assert.Error(t, err)
}

func TestNewScenarioResult_Digest(t *testing.T) {
	trace := []any{map[string]any{"seq": int64(1), "type": "set", "array": "a", "outcome": "ok"}}

	a, err := NewScenarioResult("r", 1, "s", true, trace, nil)
	require.NoError(t, err)
	b, err := NewScenarioResult("r", 2, "t", false, trace, []string{"x"})
	require.NoError(t, err)

	assert.Len(t, a.TraceDigest, 64)
	assert.Equal(t, a.TraceDigest, b.TraceDigest)
	assert.Equal(t, `[{"array":"a","outcome":"ok","seq":1,"type":"set"}]`, string(a.Trace))
	assert.Equal(t, []string{}, a.Errors)

	other, err := NewScenarioResult("r", 1, "s", true, []any{}, nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.TraceDigest, other.TraceDigest)
}

func TestNewScenarioResult_RejectsUnsupportedTrace(t *testing.T) {
	_, err := NewScenarioResult("r", 1, "s", true, struct{}{}, nil)
	assert.ErrorContains(t, err, "marshal trace")
}
