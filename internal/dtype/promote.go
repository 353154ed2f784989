package dtype

import "github.com/roach88/ndview/internal/nderr"

// Promote combines two dtypes into one that can represent both.
//
// Rules:
//   - a == b yields a
//   - None on either side yields the other side
//   - two integer kinds: the wider wins; equal width with differing
//     signedness is a TypeError
//   - an integer and a float kind: the float wins regardless of width
//   - two float kinds: the wider wins
//
// The rule is commutative except for the signed/unsigned case, which fails
// regardless of argument order.
func Promote(a, b DType) (DType, error) {
	if a == b {
		return a, nil
	}
	if a == None {
		return b, nil
	}
	if b == None {
		return a, nil
	}

	sizeA, sizeB := a.Size(), b.Size()

	switch {
	case a.IsInteger() && b.IsInteger():
		if sizeA > sizeB {
			return a, nil
		}
		if sizeB > sizeA {
			return b, nil
		}
		return None, nderr.SignedUnsignedPromotion(a.String(), b.String())
	case a.IsInteger():
		return b, nil
	case b.IsInteger():
		return a, nil
	default:
		if sizeA > sizeB {
			return a, nil
		}
		return b, nil
	}
}
