package ndarray

import (
	"math"
	"slices"

	"github.com/roach88/ndview/internal/dtype"
	"github.com/roach88/ndview/internal/ir"
	"github.com/roach88/ndview/internal/nderr"
)

// maxColumnMajorNDim is the highest rank column-major allocation supports.
const maxColumnMajorNDim = 2

// NDArray is a strided, typed N-dimensional array.
//
// Arrays produced by Reshape may share storage with their source; writes
// through either are visible through both. An NDArray is not safe for
// concurrent mutation.
type NDArray struct {
	data     []byte
	shape    []int
	strides  []int
	dtype    dtype.DType
	itemSize int
	order    Order
}

// New allocates a zero-filled array.
func New(shape []int, dt dtype.DType, order Order) (*NDArray, error) {
	if len(shape) == 0 {
		return nil, nderr.Argument("shape must have at least one dimension")
	}
	if dt == dtype.None || !dt.Valid() {
		return nil, nderr.Argument("dtype must be specified")
	}
	if order == ColumnMajor && len(shape) > maxColumnMajorNDim {
		return nil, nderr.NotImplemented("column_major order with ndim > %d is unsupported", maxColumnMajorNDim)
	}

	count, err := elementCount(shape)
	if err != nil {
		return nil, err
	}

	itemSize := dt.Size()
	if count > math.MaxInt/itemSize {
		return nil, nderr.Argument("array of %d elements is too large", count)
	}

	var strides []int
	switch order {
	case RowMajor:
		strides = RowMajorStrides(shape, itemSize)
	case ColumnMajor:
		strides = ColumnMajorStrides(shape, itemSize)
	default:
		return nil, nderr.Argument("unknown order: %d", order)
	}

	return &NDArray{
		data:     make([]byte, count*itemSize),
		shape:    slices.Clone(shape),
		strides:  strides,
		dtype:    dt,
		itemSize: itemSize,
		order:    order,
	}, nil
}

// elementCount validates shape and returns the product of its dimensions.
func elementCount(shape []int) (int, error) {
	count := 1
	for i, d := range shape {
		if d < 0 {
			return 0, nderr.Argument("negative size %d at the %s dimension", d, nderr.Ordinal(i))
		}
		if d != 0 && count > math.MaxInt/d {
			return 0, nderr.Argument("shape %v is too large", shape)
		}
		count *= d
	}
	return count, nil
}

// Shape returns a copy of the dimension sizes.
func (a *NDArray) Shape() []int { return slices.Clone(a.shape) }

// Strides returns a copy of the byte strides.
func (a *NDArray) Strides() []int { return slices.Clone(a.strides) }

// NDim returns the number of dimensions.
func (a *NDArray) NDim() int { return len(a.shape) }

// DType returns the element kind.
func (a *NDArray) DType() dtype.DType { return a.dtype }

// ItemSize returns the byte width of one element.
func (a *NDArray) ItemSize() int { return a.itemSize }

// ByteSize returns the size of the logical extent in bytes.
func (a *NDArray) ByteSize() int { return a.itemSize * a.Len() }

// Order returns the layout the array was allocated with.
func (a *NDArray) Order() Order { return a.order }

// Len returns the number of elements.
func (a *NDArray) Len() int {
	n := 1
	for _, d := range a.shape {
		n *= d
	}
	return n
}

// Bytes returns the underlying storage. It is not a copy.
func (a *NDArray) Bytes() []byte { return a.data }

// offset resolves idx to a byte offset, checking rank and bounds.
func (a *NDArray) offset(idx []int) (int, error) {
	if len(idx) != len(a.shape) {
		return 0, nderr.Index("index dimension mismatched (%d for %d)", len(idx), len(a.shape))
	}
	off := 0
	for i, x := range idx {
		if x < 0 || x >= a.shape[i] {
			return 0, nderr.Index("index %d out of bounds for the %s dimension of size %d", x, nderr.Ordinal(i), a.shape[i])
		}
		off += x * a.strides[i]
	}
	return off, nil
}

// At returns the element at idx as ir.Int, ir.Uint (uint64 arrays) or
// ir.Float.
func (a *NDArray) At(idx ...int) (ir.Value, error) {
	off, err := a.offset(idx)
	if err != nil {
		return nil, err
	}
	return decode(a.data[off:off+a.itemSize], a.dtype), nil
}

// Set coerces v to the array's dtype and stores it at idx.
// idx is not retained.
func (a *NDArray) Set(v ir.Value, idx ...int) error {
	off, err := a.offset(idx)
	if err != nil {
		return err
	}
	return encode(a.data[off:off+a.itemSize], a.dtype, v)
}

// IsRowMajorContiguous reports whether the array's elements are laid out
// densely in row-major order.
func (a *NDArray) IsRowMajorContiguous() bool {
	return slices.Equal(a.strides, RowMajorStrides(a.shape, a.itemSize))
}
