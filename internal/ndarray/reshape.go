package ndarray

import (
	"slices"

	"github.com/roach88/ndview/internal/nderr"
)

// Reshape returns an array with the given shape holding the same elements
// in row-major order.
//
// When a is row-major contiguous the result shares a's storage. Otherwise
// the elements are copied into a new row-major buffer. Column-major targets
// are not supported.
func (a *NDArray) Reshape(shape []int, order Order) (*NDArray, error) {
	if len(shape) == 0 {
		return nil, nderr.Argument("shape must have at least one dimension")
	}
	if order == ColumnMajor {
		return nil, nderr.NotImplemented("reshape with column_major order is unsupported")
	}

	count, err := elementCount(shape)
	if err != nil {
		return nil, err
	}
	if count != a.Len() {
		return nil, nderr.Argument("cannot reshape array of size %d into shape %v", a.Len(), shape)
	}

	if a.IsRowMajorContiguous() {
		Logger().Debug("reshape shares storage")
		return &NDArray{
			data:     a.data,
			shape:    slices.Clone(shape),
			strides:  RowMajorStrides(shape, a.itemSize),
			dtype:    a.dtype,
			itemSize: a.itemSize,
			order:    RowMajor,
		}, nil
	}

	out, err := New(shape, a.dtype, RowMajor)
	if err != nil {
		return nil, err
	}
	dst := 0
	a.eachOffset(func(_ []int, off int) bool {
		copy(out.data[dst:dst+a.itemSize], a.data[off:off+a.itemSize])
		dst += a.itemSize
		return true
	})
	Logger().Debug("reshape copied storage")
	return out, nil
}
