package ndarray

import (
	"go.uber.org/zap"

	"github.com/roach88/ndview/internal/dtype"
	"github.com/roach88/ndview/internal/infer"
	"github.com/roach88/ndview/internal/ir"
	"github.com/roach88/ndview/internal/nderr"
)

// ConvertOptions controls TryConvert.
type ConvertOptions struct {
	// DType forces the element kind. dtype.None infers it.
	DType dtype.DType

	// Order selects the memory layout.
	Order Order
}

// TryConvert builds an array from nested input.
//
// root must be a sequence. When no dtype is forced and the input holds no
// scalar at all (e.g. [] or [[], []]) the array is float64.
func TryConvert(root ir.Value, opts ConvertOptions) (*NDArray, error) {
	if ir.Classify(root) != ir.ClassSequence {
		return nil, nderr.Argument("the argument must be convertible to an ordered sequence (%s given)", ir.TypeName(root))
	}

	res, err := infer.Infer(root, opts.DType)
	if err != nil {
		return nil, err
	}

	dt := res.DType
	if dt == dtype.None {
		dt = dtype.Float64
	}

	arr, err := New(res.Shape, dt, opts.Order)
	if err != nil {
		return nil, err
	}
	if err := infer.Replay(res.Cache, arr); err != nil {
		return nil, err
	}

	Logger().Debug("converted array",
		zap.Stringer("dtype", dt),
		zap.Ints("shape", res.Shape),
		zap.Stringer("order", opts.Order),
	)
	return arr, nil
}

// Convert is TryConvert over a Go value, converted with ir.FromGo.
func Convert(x any, opts ConvertOptions) (*NDArray, error) {
	return TryConvert(ir.FromGo(x), opts)
}
