// Package dtype defines the fixed-width numeric element kinds an array can
// hold and the promotion rule used when inferring a dtype from mixed input.
package dtype

import (
	"fmt"

	"github.com/roach88/ndview/internal/nderr"
)

// DType is an array element kind.
// The zero value None means "no dtype yet" (a sequence with no scalars).
type DType uint8

const (
	None DType = iota
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float32
	Float64
)

var names = [...]string{
	None:    "none",
	Int8:    "int8",
	Uint8:   "uint8",
	Int16:   "int16",
	Uint16:  "uint16",
	Int32:   "int32",
	Uint32:  "uint32",
	Int64:   "int64",
	Uint64:  "uint64",
	Float32: "float32",
	Float64: "float64",
}

var sizes = [...]int{
	None:    0,
	Int8:    1,
	Uint8:   1,
	Int16:   2,
	Uint16:  2,
	Int32:   4,
	Uint32:  4,
	Int64:   8,
	Uint64:  8,
	Float32: 4,
	Float64: 8,
}

// All returns every concrete dtype in declaration order.
func All() []DType {
	return []DType{Int8, Uint8, Int16, Uint16, Int32, Uint32, Int64, Uint64, Float32, Float64}
}

// Valid reports whether d is a concrete dtype.
func (d DType) Valid() bool {
	return d > None && d <= Float64
}

// Size returns the byte width of one element, or 0 for None.
func (d DType) Size() int {
	if int(d) >= len(sizes) {
		return 0
	}
	return sizes[d]
}

// String returns the dtype name, e.g. "float64".
func (d DType) String() string {
	if int(d) >= len(names) {
		return fmt.Sprintf("dtype(%d)", uint8(d))
	}
	return names[d]
}

// IsInteger reports whether d is a signed or unsigned integer kind.
func (d DType) IsInteger() bool {
	return d >= Int8 && d <= Uint64
}

// IsSigned reports whether d is a signed integer kind.
func (d DType) IsSigned() bool {
	switch d {
	case Int8, Int16, Int32, Int64:
		return true
	}
	return false
}

// IsFloat reports whether d is a floating point kind.
func (d DType) IsFloat() bool {
	return d == Float32 || d == Float64
}

// Parse returns the dtype with the given name.
func Parse(name string) (DType, error) {
	for i, n := range names {
		if DType(i) != None && n == name {
			return DType(i), nil
		}
	}
	return None, nderr.Argument("unknown dtype: %s", name)
}

// MarshalText implements encoding.TextMarshaler.
func (d DType) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// yaml.v3 and encoding/json both use it for dtype fields.
func (d *DType) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
