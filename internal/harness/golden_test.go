package harness

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedGolden writes the current snapshot of scenario as its golden file in
// dir, so a later comparison checks that a second run reproduces it.
func seedGolden(t *testing.T, dir string, scenario *Scenario) {
	t.Helper()
	result, err := Run(scenario)
	require.NoError(t, err)
	data, err := Snapshot(scenario.Name, result)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, scenario.Name+".golden"), data, 0644))
}

func TestRunWithGolden_Fixtures(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)

	dir := t.TempDir()
	for _, file := range files {
		scenario, err := LoadScenario(file)
		require.NoError(t, err)
		seedGolden(t, dir, scenario)

		t.Run(scenario.Name, func(t *testing.T) {
			result, err := RunWithGolden(t, scenario, goldie.WithFixtureDir(dir))
			require.NoError(t, err)
			assert.True(t, result.Pass)
		})
	}
}

func TestAssertGolden(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/layouts_2d.yaml")
	require.NoError(t, err)

	dir := t.TempDir()
	seedGolden(t, dir, scenario)

	result, err := Run(scenario)
	require.NoError(t, err)
	require.NoError(t, AssertGolden(t, scenario.Name, result, goldie.WithFixtureDir(dir)))
}

func TestSnapshot_Content(t *testing.T) {
	scenario := mustLoad(t, `
name: snap
description: snapshot layout
arrays:
  - {id: a, convert: [1, 2], dtype: int16}
steps:
  - set: {array: a, index: [1], value: 7}
assertions:
  - {type: items, array: a, expect: [1, 7]}
`)
	result, err := Run(scenario)
	require.NoError(t, err)

	data, err := Snapshot(scenario.Name, result)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "snap", decoded["scenario_name"])

	arrays := decoded["arrays"].(map[string]any)
	a := arrays["a"].(map[string]any)
	assert.Equal(t, "int16", a["dtype"])
	assert.Equal(t, []any{1.0, 7.0}, a["items"])
	assert.Equal(t, 4.0, a["byte_size"])

	trace := decoded["trace"].([]any)
	require.Len(t, trace, 2)
	set := trace[1].(map[string]any)
	assert.Equal(t, "set", set["type"])
	assert.Equal(t, 7.0, set["value"])
	assert.Equal(t, "ok", set["outcome"])

	// Keys are sorted, so the document starts with "arrays".
	assert.True(t, len(data) > 10 && string(data[:10]) == `{"arrays":`)
}
