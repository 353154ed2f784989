package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRuns_Ordering(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	// Inserted out of order; listing follows seq.
	for _, run := range []Run{
		{ID: "c", Seq: 3},
		{ID: "a", Seq: 1},
		{ID: "b2", Seq: 2},
		{ID: "b1", Seq: 2},
	} {
		require.NoError(t, s.WriteRun(ctx, run))
	}

	runs, err := s.ReadRuns(ctx, 0)
	require.NoError(t, err)

	var ids []string
	for _, r := range runs {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"a", "b1", "b2", "c"}, ids)
}

func TestReadRuns_Limit(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for range 5 {
		_, err := s.NewRun(ctx)
		require.NoError(t, err)
	}

	runs, err := s.ReadRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-0004", runs[0].ID)
	assert.Equal(t, "run-0005", runs[1].ID)
}

func TestReadRuns_Empty(t *testing.T) {
	s := createTestStore(t)

	runs, err := s.ReadRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestReadRun_NotFound(t *testing.T) {
	s := createTestStore(t)
	_, err := s.ReadRun(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestLatestRun(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.LatestRun(ctx)
	assert.ErrorIs(t, err, ErrNoRuns)

	_, err = s.NewRun(ctx)
	require.NoError(t, err)
	second, err := s.NewRun(ctx)
	require.NoError(t, err)

	latest, err := s.LatestRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, latest)
}

func TestReadScenarioResults_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run, err := s.NewRun(ctx)
	require.NoError(t, err)
	other, err := s.NewRun(ctx)
	require.NoError(t, err)

	want := []ScenarioResult{
		createTestResult(t, run.ID, 1, "allocate", true),
		createTestResult(t, run.ID, 2, "inhomogeneous", false, "assertions[0]: boom", "steps[1]: bang"),
		createTestResult(t, run.ID, 2, "layouts_2d", true),
	}
	// Written in reverse to show that reads are ordered.
	for i := len(want) - 1; i >= 0; i-- {
		require.NoError(t, s.WriteScenarioResult(ctx, want[i]))
	}
	require.NoError(t, s.WriteScenarioResult(ctx, createTestResult(t, other.ID, 1, "allocate", true)))

	got, err := s.ReadScenarioResults(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadScenarioResults_Empty(t *testing.T) {
	s := createTestStore(t)

	results, err := s.ReadScenarioResults(context.Background(), "missing")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}
