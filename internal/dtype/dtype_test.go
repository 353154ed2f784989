package dtype

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/ndview/internal/nderr"
)

func TestSize(t *testing.T) {
	tests := []struct {
		d    DType
		size int
	}{
		{None, 0},
		{Int8, 1}, {Uint8, 1},
		{Int16, 2}, {Uint16, 2},
		{Int32, 4}, {Uint32, 4},
		{Int64, 8}, {Uint64, 8},
		{Float32, 4}, {Float64, 8},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			assert.Equal(t, tt.size, tt.d.Size())
		})
	}
}

func TestClasses(t *testing.T) {
	for _, d := range All() {
		assert.True(t, d.Valid(), d.String())
		assert.NotEqual(t, d.IsInteger(), d.IsFloat(), "%s must be in exactly one class", d)
	}
	assert.False(t, None.Valid())
	assert.True(t, Int32.IsSigned())
	assert.False(t, Uint32.IsSigned())
	assert.False(t, Float64.IsSigned())
}

func TestParse(t *testing.T) {
	for _, d := range All() {
		parsed, err := Parse(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
	}

	_, err := Parse("complex128")
	require.Error(t, err)
	assert.True(t, nderr.IsArgumentError(err))
	assert.Contains(t, err.Error(), "unknown dtype: complex128")

	_, err = Parse("none")
	assert.Error(t, err, "none is not a concrete dtype")
}

func TestTextUnmarshal(t *testing.T) {
	var cfg struct {
		DType DType `yaml:"dtype" json:"dtype"`
	}

	require.NoError(t, yaml.Unmarshal([]byte("dtype: uint16\n"), &cfg))
	assert.Equal(t, Uint16, cfg.DType)

	require.NoError(t, json.Unmarshal([]byte(`{"dtype":"float32"}`), &cfg))
	assert.Equal(t, Float32, cfg.DType)

	assert.Error(t, yaml.Unmarshal([]byte("dtype: half\n"), &cfg))

	out, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dtype":"float32"}`, string(out))
}

func TestPromote(t *testing.T) {
	tests := []struct {
		name string
		a, b DType
		want DType
	}{
		{"same", Int32, Int32, Int32},
		{"none left", None, Float32, Float32},
		{"none right", Uint8, None, Uint8},
		{"none both", None, None, None},
		{"wider int", Int8, Int64, Int64},
		{"wider unsigned beats narrower signed", Uint32, Int16, Uint32},
		{"wider signed beats narrower unsigned", Int64, Uint8, Int64},
		{"int then float", Int64, Float32, Float32},
		{"float then int", Float32, Uint64, Float32},
		{"wider float", Float32, Float64, Float64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Promote(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPromoteSignedUnsigned(t *testing.T) {
	pairs := [][2]DType{{Int8, Uint8}, {Int16, Uint16}, {Int32, Uint32}, {Int64, Uint64}}
	for _, p := range pairs {
		_, err := Promote(p[0], p[1])
		require.Error(t, err)
		assert.True(t, nderr.IsTypeError(err))
		assert.Contains(t, err.Error(), "signed and unsigned")

		_, err = Promote(p[1], p[0])
		require.Error(t, err)
		assert.True(t, nderr.IsTypeError(err))
	}
}

func TestPromoteCommutative(t *testing.T) {
	all := append([]DType{None}, All()...)
	for _, a := range all {
		for _, b := range all {
			ab, errAB := Promote(a, b)
			ba, errBA := Promote(b, a)
			if errAB != nil || errBA != nil {
				assert.Error(t, errAB, "%s,%s", a, b)
				assert.Error(t, errBA, "%s,%s", b, a)
				assert.Equal(t, a.Size(), b.Size())
				continue
			}
			assert.Equal(t, ab, ba, "Promote(%s,%s) vs Promote(%s,%s)", a, b, b, a)
		}
	}
}
