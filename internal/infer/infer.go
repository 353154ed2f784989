package infer

import (
	"go.uber.org/zap"

	"github.com/roach88/ndview/internal/dtype"
	"github.com/roach88/ndview/internal/ir"
	"github.com/roach88/ndview/internal/nderr"
)

// CacheEntry records one sequence node visited during inference.
type CacheEntry struct {
	// Source is the original sequence node.
	Source ir.Value

	// Items are the node's immediate elements.
	Items []ir.Value

	// Depth is the nesting depth of the node (the root is 0).
	Depth int
}

// Result is the outcome of a successful inference.
type Result struct {
	// DType is the forced dtype if one was given, else the promoted dtype
	// of every scalar. None when the input holds no scalar at all.
	DType dtype.DType

	// Shape holds one dimension size per nesting level.
	Shape []int

	// Cache lists every sequence node in pre-order.
	Cache []CacheEntry
}

// NDim returns the number of dimensions.
func (r *Result) NDim() int {
	return len(r.Shape)
}

// walker holds the state of one Infer call.
type walker struct {
	forced dtype.DType
	shape  []int
	cache  []CacheEntry

	// scalarDepth is the depth of the first scalar seen anywhere, or -1.
	scalarDepth int
}

// Infer walks root and returns its dtype, shape and conversion cache.
//
// forced may be dtype.None to request promotion. A forced dtype skips
// promotion but not structural validation; scalars are still classified
// and an unsupported scalar still fails.
func Infer(root ir.Value, forced dtype.DType) (*Result, error) {
	w := &walker{
		forced:      forced,
		shape:       []int{},
		cache:       []CacheEntry{},
		scalarDepth: -1,
	}

	dt, err := w.walk(root, 0)
	if err == nil && w.scalarDepth >= 0 && w.scalarDepth != len(w.shape) {
		// An empty sequence beside a scalar adds a dimension below it.
		err = nderr.InhomogeneousDepth(w.scalarDepth, len(w.shape))
	}
	if err != nil {
		Logger().Debug("inference failed", zap.Error(err))
		return nil, err
	}
	if forced != dtype.None {
		dt = forced
	}

	Logger().Debug("inference complete",
		zap.Stringer("dtype", dt),
		zap.Ints("shape", w.shape),
		zap.Int("cache_entries", len(w.cache)),
	)

	return &Result{DType: dt, Shape: w.shape, Cache: w.cache}, nil
}

func (w *walker) walk(node ir.Value, depth int) (dtype.DType, error) {
	switch ir.Classify(node) {
	case ir.ClassScalar:
		dt, err := ClassifyScalar(node)
		if err != nil {
			return dtype.None, err
		}
		if w.scalarDepth < 0 {
			w.scalarDepth = depth
		} else if depth != w.scalarDepth {
			return dtype.None, nderr.InhomogeneousDepth(depth, w.scalarDepth)
		}
		return dt, nil

	case ir.ClassSequence:
		return w.walkSeq(node.(ir.Seq), depth)

	default:
		return dtype.None, nderr.UnsupportedType(ir.TypeName(node))
	}
}

func (w *walker) walkSeq(seq ir.Seq, depth int) (dtype.DType, error) {
	w.cache = append(w.cache, CacheEntry{Source: seq, Items: seq, Depth: depth})

	if len(w.shape) <= depth {
		w.shape = append(w.shape, len(seq))
	} else if w.shape[depth] != len(seq) {
		return dtype.None, nderr.SizeMismatch(depth, len(seq), w.shape[depth])
	}

	acc := dtype.None
	for _, elem := range seq {
		sub, err := w.walk(elem, depth+1)
		if err != nil {
			return dtype.None, err
		}
		if w.forced != dtype.None {
			continue
		}
		acc, err = dtype.Promote(acc, sub)
		if err != nil {
			return dtype.None, err
		}
	}
	return acc, nil
}

// ClassifyScalar returns the dtype class of a scalar node: integers map to
// int64, floats and rationals to float64, and a complex number with a zero
// imaginary part to the class of its real part. Anything else is a
// TypeError naming the runtime type.
func ClassifyScalar(v ir.Value) (dtype.DType, error) {
	switch val := v.(type) {
	case ir.Int, ir.Uint:
		return dtype.Int64, nil
	case ir.Float, ir.Rational:
		return dtype.Float64, nil
	case ir.Complex:
		c := complex128(val)
		if imag(c) != 0 {
			return dtype.None, nderr.UnsupportedType(ir.TypeName(v))
		}
		return ClassifyScalar(ir.Float(real(c)))
	default:
		return dtype.None, nderr.UnsupportedType(ir.TypeName(v))
	}
}
