package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSchema_Fixtures(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			data, err := os.ReadFile(file)
			require.NoError(t, err)
			assert.NoError(t, ValidateSchema(data))
		})
	}
}

func TestValidateSchema_Violations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing name", `
description: d
arrays: [{id: a, convert: [1]}]
assertions: [{type: ndim, array: a, expect: 1}]
`},
		{"unknown top-level field", `
name: n
description: d
arrays: [{id: a, convert: [1]}]
assertions: [{type: ndim, array: a, expect: 1}]
flow: []
`},
		{"bad dtype", `
name: n
description: d
arrays: [{id: a, convert: [1], dtype: float16}]
assertions: [{type: ndim, array: a, expect: 1}]
`},
		{"bad order", `
name: n
description: d
arrays: [{id: a, allocate: {shape: [1], dtype: int8, order: diagonal}}]
assertions: [{type: ndim, array: a, expect: 1}]
`},
		{"bad kind", `
name: n
description: d
arrays: [{id: a, convert: [1], expect_error: {kind: Boom}}]
assertions: [{type: ndim, array: a, expect: 1}]
`},
		{"empty arrays", `
name: n
description: d
arrays: []
assertions: [{type: ndim, array: a, expect: 1}]
`},
		{"bad assertion type", `
name: n
description: d
arrays: [{id: a, convert: [1]}]
assertions: [{type: trace_contains, array: a}]
`},
		{"shape not ints", `
name: n
description: d
arrays: [{id: a, allocate: {shape: [two], dtype: int8}}]
assertions: [{type: ndim, array: a, expect: 1}]
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSchema([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "schema violation")
		})
	}
}

func TestValidateSchema_NotYAML(t *testing.T) {
	err := ValidateSchema([]byte("name: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")

	err = ValidateSchema(nil)
	require.Error(t, err)
}
