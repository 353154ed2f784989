package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssertions_Failures(t *testing.T) {
	tests := []struct {
		name      string
		assertion string
		want      string
	}{
		{"shape", "{type: shape, array: a, expect: [3, 2]}", "Expected: shape [3 2]"},
		{"strides", "{type: strides, array: a, expect: [8, 8]}", "Actual: strides [12 4]"},
		{"ndim", "{type: ndim, array: a, expect: 3}", "Expected: ndim 3"},
		{"byte_size", "{type: byte_size, array: a, expect: 48}", "Actual: byte_size 24"},
		{"dtype", "{type: dtype, array: a, expect: int32}", "Actual: dtype float32"},
		{"items", "{type: items, array: a, expect: [[1, 2, 3], [4, 5, 7]]}", "Actual: [[1.0,2.0,3.0],[4.0,5.0,6.0]]"},
		{"items ragged", "{type: items, array: a, expect: [1, 2, 3, 4, 5, 6]}", "Assertion failed: items on a"},
		{"element", "{type: element, array: a, index: [1, 2], expect: 5}", "Actual: 6.0"},
		{"element out of range", "{type: element, array: a, index: [2, 0], expect: 1}", "IndexError"},
		{"equal", "{type: equal, arrays: [a, b]}", "Expected: equal = true"},
		{"not_equal", "{type: not_equal, arrays: [a, a]}", "Actual: equal = true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenario := mustLoad(t, `
name: failing
description: a failing assertion
arrays:
  - {id: a, convert: [[1, 2, 3], [4, 5, 6]], dtype: float32}
  - {id: b, convert: [[1, 2, 3], [4, 5, 0]]}
assertions:
  - `+tt.assertion+`
`)
			result, err := Run(scenario)
			require.NoError(t, err)
			assert.False(t, result.Pass)
			require.Len(t, result.Errors, 1)
			assert.Contains(t, result.Errors[0], tt.want)
			assert.Contains(t, result.Errors[0], "Full trace:")
		})
	}
}

func TestAssertions_Pass(t *testing.T) {
	scenario := mustLoad(t, `
name: passing
description: all assertion types pass
arrays:
  - {id: a, convert: [[1, 2, 3], [4, 5, 6]], dtype: float32}
  - {id: b, convert: [[1, 2, 3], [4, 5, 6]], dtype: int8}
assertions:
  - {type: shape, array: a, expect: [2, 3]}
  - {type: strides, array: a, expect: [12, 4]}
  - {type: ndim, array: a, expect: 2}
  - {type: byte_size, array: b, expect: 6}
  - {type: dtype, array: b, expect: int8}
  - {type: items, array: a, expect: [[1, 2, 3], [4, 5, 6]]}
  - {type: element, array: b, index: [1, 0], expect: 4.0}
  - {type: equal, arrays: [a, b]}
`)
	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestAssertionError_Message(t *testing.T) {
	err := &AssertionError{
		Type:     AssertShape,
		Array:    "a",
		Expected: "shape [2]",
		Actual:   "shape [3]",
		Trace: []TraceEvent{
			{Seq: 1, Type: EventConvert, Array: "a", Outcome: OutcomeOK},
			{Seq: 2, Type: EventSet, Array: "a", Outcome: "IndexError", Message: "IndexError: out"},
		},
	}
	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: shape on a")
	assert.Contains(t, msg, "  Expected: shape [2]")
	assert.Contains(t, msg, "  [1] convert a: ok")
	assert.Contains(t, msg, "  [2] set a: IndexError (IndexError: out)")
}
