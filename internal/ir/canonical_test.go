package ir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalScalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"int", Int(-3), `-3`},
		{"uint", Uint(math.MaxUint64), `18446744073709551615`},
		{"integral float keeps marker", Float(1), `1.0`},
		{"fraction", Float(0.25), `0.25`},
		{"large float", Float(1e21), `1e+21`},
		{"rational", NewRational(2, 6), `"1/3"`},
		{"string no html escape", "<a&b>", `"<a&b>"`},
		{"bool", true, `true`},
		{"go int slice", []int{3, 3}, `[3,3]`},
		{"go float", 42.0, `42.0`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalCanonical(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestMarshalCanonicalObjectOrdering(t *testing.T) {
	obj := map[string]any{
		"shape":  []int{2},
		"dtype":  "float64",
		"items":  Seq{Float(1), Float(2)},
		"\uE000": 1,
		"\U00010000": 2,
	}
	got, err := MarshalCanonical(obj)
	require.NoError(t, err)
	// UTF-16: the surrogate pair of U+10000 (0xD800) sorts before U+E000.
	assert.Equal(t, "{\"dtype\":\"float64\",\"items\":[1.0,2.0],\"shape\":[2],\"\U00010000\":2,\"\uE000\":1}", string(got))
}

func TestMarshalCanonicalNFC(t *testing.T) {
	decomposed := "e\u0301"
	got, err := MarshalCanonical(decomposed)
	require.NoError(t, err)
	assert.Equal(t, "\"\u00e9\"", string(got))
}

func TestMarshalCanonicalLineSeparators(t *testing.T) {
	got, err := MarshalCanonical("a\u2028b")
	require.NoError(t, err)
	assert.Equal(t, "\"a\u2028b\"", string(got))

	got, err = MarshalCanonical(`a\u2028b`)
	require.NoError(t, err)
	assert.Equal(t, `"a\\u2028b"`, string(got))
}

func TestMarshalCanonicalRejects(t *testing.T) {
	_, err := MarshalCanonical(nil)
	assert.Error(t, err)

	_, err = MarshalCanonical(Float(math.NaN()))
	assert.Error(t, err)

	_, err = MarshalCanonical([]any{1, math.Inf(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "array[1]")

	_, err = MarshalCanonical(struct{}{})
	assert.Error(t, err)
}

func TestDigest(t *testing.T) {
	snap := map[string]any{"dtype": "int64", "shape": []int{2}, "items": Seq{Int(1), Int(2)}}

	d1, err := ArrayDigest(snap)
	require.NoError(t, err)
	d2, err := ArrayDigest(snap)
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
	assert.Len(t, d1, 64)

	other := map[string]any{"dtype": "float64", "shape": []int{2}, "items": Seq{Int(1), Int(2)}}
	assert.NotEqual(t, d1, MustDigest(DomainArray, other))

	// Same payload under a different domain yields a different digest.
	td, err := TraceDigest(snap)
	require.NoError(t, err)
	assert.NotEqual(t, d1, td)
}
