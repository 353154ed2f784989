package ndarray

import (
	"github.com/roach88/ndview/internal/nderr"
)

// Order is the memory layout of an array.
type Order uint8

const (
	// RowMajor lays out the last axis contiguously. It is the default.
	RowMajor Order = iota
	// ColumnMajor lays out the first axis contiguously.
	ColumnMajor
)

// String returns "row_major" or "column_major".
func (o Order) String() string {
	if o == ColumnMajor {
		return "column_major"
	}
	return "row_major"
}

// ParseOrder maps a layout name to an Order.
// The empty string selects RowMajor.
func ParseOrder(name string) (Order, error) {
	switch name {
	case "", "row_major":
		return RowMajor, nil
	case "column_major":
		return ColumnMajor, nil
	default:
		return RowMajor, nderr.Argument("unknown order: %s", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Order) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Order) UnmarshalText(text []byte) error {
	parsed, err := ParseOrder(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// RowMajorStrides returns contiguous row-major byte strides for shape.
// The last stride is itemSize; strides[i-1] = strides[i] * shape[i].
func RowMajorStrides(shape []int, itemSize int) []int {
	if len(shape) == 0 {
		return nil
	}
	strides := make([]int, len(shape))
	strides[len(shape)-1] = itemSize
	for i := len(shape) - 1; i > 0; i-- {
		strides[i-1] = strides[i] * shape[i]
	}
	return strides
}

// ColumnMajorStrides returns contiguous column-major byte strides for
// shape. The first stride is itemSize; strides[i+1] = strides[i] * shape[i].
func ColumnMajorStrides(shape []int, itemSize int) []int {
	if len(shape) == 0 {
		return nil
	}
	strides := make([]int, len(shape))
	strides[0] = itemSize
	for i := 0; i < len(shape)-1; i++ {
		strides[i+1] = strides[i] * shape[i]
	}
	return strides
}
