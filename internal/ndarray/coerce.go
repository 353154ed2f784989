package ndarray

import (
	"encoding/binary"
	"math"

	"github.com/roach88/ndview/internal/dtype"
	"github.com/roach88/ndview/internal/ir"
	"github.com/roach88/ndview/internal/nderr"
)

var byteOrder = binary.NativeEndian

// two63 and two64 bound the float64 values that truncate into 64-bit
// integers.
const (
	two63 = float64(1 << 63)
	two64 = two63 * 2
)

// decode reads one element of kind dt from b.
func decode(b []byte, dt dtype.DType) ir.Value {
	switch dt {
	case dtype.Int8:
		return ir.Int(int8(b[0]))
	case dtype.Uint8:
		return ir.Int(b[0])
	case dtype.Int16:
		return ir.Int(int16(byteOrder.Uint16(b)))
	case dtype.Uint16:
		return ir.Int(byteOrder.Uint16(b))
	case dtype.Int32:
		return ir.Int(int32(byteOrder.Uint32(b)))
	case dtype.Uint32:
		return ir.Int(byteOrder.Uint32(b))
	case dtype.Int64:
		return ir.Int(int64(byteOrder.Uint64(b)))
	case dtype.Uint64:
		return ir.Uint(byteOrder.Uint64(b))
	case dtype.Float32:
		return ir.Float(math.Float32frombits(byteOrder.Uint32(b)))
	case dtype.Float64:
		return ir.Float(math.Float64frombits(byteOrder.Uint64(b)))
	default:
		return nil
	}
}

// encode coerces v to dt and writes it into b.
func encode(b []byte, dt dtype.DType, v ir.Value) error {
	v, err := realPart(v)
	if err != nil {
		return err
	}

	if dt.IsFloat() {
		f, _ := ir.Float64(v)
		if dt == dtype.Float32 {
			if !math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) > math.MaxFloat32 {
				return nderr.Range("float %g too %s to convert to '%s'", f, direction(f < 0), dt)
			}
			byteOrder.PutUint32(b, math.Float32bits(float32(f)))
			return nil
		}
		byteOrder.PutUint64(b, math.Float64bits(f))
		return nil
	}

	neg, mag, err := integerParts(v, dt)
	if err != nil {
		return err
	}
	if err := checkIntegerRange(neg, mag, dt, v); err != nil {
		return err
	}

	u := mag
	if neg {
		u = -mag // two's complement
	}
	switch dt.Size() {
	case 1:
		b[0] = byte(u)
	case 2:
		byteOrder.PutUint16(b, uint16(u))
	case 4:
		byteOrder.PutUint32(b, uint32(u))
	case 8:
		byteOrder.PutUint64(b, u)
	}
	return nil
}

// realPart reduces v to a real scalar: rationals and complex numbers with
// a zero imaginary part become Float.
func realPart(v ir.Value) (ir.Value, error) {
	switch val := v.(type) {
	case ir.Int, ir.Uint, ir.Float:
		return v, nil
	case ir.Rational:
		f, _ := ir.Float64(val)
		return ir.Float(f), nil
	case ir.Complex:
		c := complex128(val)
		if imag(c) != 0 {
			return nil, nderr.Range("can't convert %v into a real number", c)
		}
		return ir.Float(real(c)), nil
	default:
		return nil, nderr.UnsupportedType(ir.TypeName(v))
	}
}

// integerParts splits a real scalar into sign and magnitude, truncating
// floats toward zero.
func integerParts(v ir.Value, dt dtype.DType) (neg bool, mag uint64, err error) {
	switch val := v.(type) {
	case ir.Int:
		if val < 0 {
			return true, uint64(-(val + 1)) + 1, nil
		}
		return false, uint64(val), nil
	case ir.Uint:
		return false, uint64(val), nil
	case ir.Float:
		f := math.Trunc(float64(val))
		switch {
		case math.IsNaN(f):
			return false, 0, nderr.Range("float NaN out of range of '%s'", dt)
		case f >= two64 || math.IsInf(f, 1):
			return false, 0, nderr.Range("float %g too big to convert to '%s'", float64(val), dt)
		case f < -two63 || math.IsInf(f, -1):
			return false, 0, nderr.Range("float %g too small to convert to '%s'", float64(val), dt)
		case f < 0:
			return true, uint64(-f), nil
		default:
			return false, uint64(f), nil
		}
	}
	return false, 0, nderr.UnsupportedType(ir.TypeName(v))
}

// checkIntegerRange verifies that the integer neg*mag fits dt.
func checkIntegerRange(neg bool, mag uint64, dt dtype.DType, orig ir.Value) error {
	bits := uint(dt.Size() * 8)

	var maxPos, maxNeg uint64
	if dt.IsSigned() {
		maxPos = 1<<(bits-1) - 1
		maxNeg = 1 << (bits - 1)
	} else {
		maxPos = math.MaxUint64 >> (64 - bits)
		maxNeg = 0
	}

	switch {
	case !neg && mag > maxPos:
		return rangeError(orig, "big", dt)
	case neg && mag > maxNeg:
		return rangeError(orig, "small", dt)
	}
	return nil
}

func rangeError(v ir.Value, dir string, dt dtype.DType) error {
	if f, ok := v.(ir.Float); ok {
		return nderr.Range("float %g too %s to convert to '%s'", float64(f), dir, dt)
	}
	return nderr.Range("integer %v too %s to convert to '%s'", v, dir, dt)
}

func direction(negative bool) string {
	if negative {
		return "small"
	}
	return "big"
}
