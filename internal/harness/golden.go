package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/ndview/internal/ir"
)

// DefaultGoldenDir is where RunWithGolden and AssertGolden keep fixtures.
const DefaultGoldenDir = "testdata/golden"

// Snapshot renders the deterministic part of a result as canonical JSON:
// the scenario name, the trace and the final arrays.
func Snapshot(scenarioName string, result *Result) ([]byte, error) {
	arrays := make(map[string]any, len(result.Arrays))
	for id, snap := range result.Arrays {
		arrays[id] = snap
	}

	return ir.MarshalCanonical(map[string]any{
		"scenario_name": scenarioName,
		"trace":         result.CanonicalTrace(),
		"arrays":        arrays,
	})
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file named {scenario.Name}.golden under testdata/golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Options are passed to goldie and override the defaults.
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario, opts ...goldie.Option) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result, opts...); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares the given result's snapshot against a golden file.
// This is useful when you've already run a scenario and want to compare
// the result against a golden file without re-running.
func AssertGolden(t *testing.T, scenarioName string, result *Result, opts ...goldie.Option) error {
	t.Helper()

	data, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t, append([]goldie.Option{
		goldie.WithFixtureDir(DefaultGoldenDir),
		goldie.WithNameSuffix(".golden"),
	}, opts...)...)
	g.Assert(t, scenarioName, data)

	return nil
}
