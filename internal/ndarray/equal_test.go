package ndarray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ndview/internal/dtype"
)

func TestEqualCompatibleShapes(t *testing.T) {
	suites := map[string][3]any{
		"1D":              {[]int{1, 2, 3, 4}, []int{1, 2, 3, 4}, []int{1, 2, 3, 5}},
		"2D":              {[][]int{{1, 2}, {3, 4}}, [][]int{{1, 2}, {3, 4}}, [][]int{{1, 2}, {3, 5}}},
		"large dimension": {nest([]int{1, 2, 3}, 99), nest([]int{1, 2, 3}, 99), nest([]int{1, 2, 4}, 99)},
	}
	for name, in := range suites {
		t.Run(name, func(t *testing.T) {
			a1 := mustConvert(t, in[0], ConvertOptions{DType: dtype.Int32})
			a2 := mustConvert(t, in[1], ConvertOptions{DType: dtype.Float32})
			a3 := mustConvert(t, in[2], ConvertOptions{DType: dtype.Int32})

			assert.True(t, a1.Equal(a1), "same array")
			assert.True(t, a1.Equal(a2), "int32 == float32")
			assert.False(t, a1.Equal(a3), "int32 != int32")
			assert.False(t, a2.Equal(a3), "float32 != int32")
		})
	}
}

func TestEqualIncompatibleShapes(t *testing.T) {
	pairs := map[string][2]any{
		"1D (4) != (5)":      {[]int{1, 2, 3, 4}, []int{1, 2, 3, 4, 5}},
		"(2x2) != (2x3)":     {[][]int{{1, 2}, {3, 4}}, [][]int{{1, 2, 3}, {4, 5, 6}}},
		"(2x3) != (3x2)":     {[][]int{{1, 2, 3}, {4, 5, 6}}, [][]int{{1, 2}, {3, 4}, {5, 6}}},
		"(3x2) != (2x2)":     {[][]int{{1, 2}, {3, 4}, {5, 6}}, [][]int{{1, 2}, {3, 4}}},
		"(2x2) != (3x3)":     {[][]int{{1, 2}, {3, 4}}, [][]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}},
		"(2x2x2) != (2x2x3)": {[][][]int{{{1, 2}, {3, 4}}, {{5, 6}, {7, 8}}}, [][][]int{{{1, 2, 3}, {4, 5, 6}}, {{2, 3, 4}, {5, 6, 7}}}},
	}
	for name, in := range pairs {
		t.Run(name, func(t *testing.T) {
			a1 := mustConvert(t, in[0], ConvertOptions{})
			a2 := mustConvert(t, in[1], ConvertOptions{})
			assert.False(t, a1.Equal(a2))
			assert.False(t, Equal(a2, a1))
		})
	}
}

func TestEqualDifferentDimensions(t *testing.T) {
	a1 := mustConvert(t, []int{1, 2, 3, 4, 5, 6}, ConvertOptions{})
	a2, err := a1.Reshape([]int{2, 3}, RowMajor)
	require.NoError(t, err)

	assert.False(t, a1.Equal(a2), "1D != 2D")
	assert.False(t, a2.Equal(a1), "2D != 1D")
}

func TestEqualNil(t *testing.T) {
	a := mustConvert(t, []int{1}, ConvertOptions{})
	assert.False(t, Equal(a, nil))
	assert.False(t, Equal(nil, a))
	assert.True(t, Equal(nil, nil))
}
