package ndarray

import (
	"github.com/roach88/ndview/internal/ir"
)

// Each calls fn for every element in logical row-major order, stopping
// early when fn returns false. The idx slice is reused between calls.
func (a *NDArray) Each(fn func(idx []int, v ir.Value) bool) {
	a.eachOffset(func(idx []int, off int) bool {
		return fn(idx, decode(a.data[off:off+a.itemSize], a.dtype))
	})
}

// eachOffset walks every index in row-major order with its byte offset.
func (a *NDArray) eachOffset(fn func(idx []int, off int) bool) {
	if a.Len() == 0 {
		return
	}

	ndim := len(a.shape)
	idx := make([]int, ndim)
	off := 0
	for {
		if !fn(idx, off) {
			return
		}

		// Increment the index like an odometer, last axis fastest.
		d := ndim - 1
		for ; d >= 0; d-- {
			idx[d]++
			off += a.strides[d]
			if idx[d] < a.shape[d] {
				break
			}
			off -= idx[d] * a.strides[d]
			idx[d] = 0
		}
		if d < 0 {
			return
		}
	}
}

// ToValue rebuilds the array as nested sequences of scalars.
func (a *NDArray) ToValue() ir.Seq {
	return a.build(0, 0)
}

func (a *NDArray) build(depth, off int) ir.Seq {
	n := a.shape[depth]
	seq := make(ir.Seq, n)
	for i := range n {
		elemOff := off + i*a.strides[depth]
		if depth == len(a.shape)-1 {
			seq[i] = decode(a.data[elemOff:elemOff+a.itemSize], a.dtype)
		} else {
			seq[i] = a.build(depth+1, elemOff)
		}
	}
	return seq
}

// Equal reports whether a and b have the same rank, the same dimension
// sizes and numerically equal elements. Dtypes and layouts may differ.
func Equal(a, b *NDArray) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if len(a.shape) != len(b.shape) {
		return false
	}
	for i := range a.shape {
		if a.shape[i] != b.shape[i] {
			return false
		}
	}

	equal := true
	a.Each(func(idx []int, av ir.Value) bool {
		bv, err := b.At(idx...)
		if err != nil || !ir.NumericEqual(av, bv) {
			equal = false
		}
		return equal
	})
	return equal
}

// Equal is shorthand for Equal(a, other).
func (a *NDArray) Equal(other *NDArray) bool {
	return Equal(a, other)
}
