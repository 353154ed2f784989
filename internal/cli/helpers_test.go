package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const onesScenario = `name: ones
description: A small integer vector
arrays:
  - id: a
    convert: [1, 1, 1]
assertions:
  - {type: shape, array: a, expect: [3]}
  - {type: dtype, array: a, expect: int64}
`

const wrongShapeScenario = `name: wrong_shape
description: Expects the wrong shape
arrays:
  - id: a
    convert: [1, 2, 3]
assertions:
  - {type: shape, array: a, expect: [4]}
`

// executeCommand runs the root command with args and returns its output.
// Colour is always off so output can be compared as plain text.
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--color", "never"}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeFile writes content to dir/name and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
