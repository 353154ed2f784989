package ir

import (
	"math"
	"math/big"
	"reflect"
	"strconv"
)

// Value is a sealed interface representing one node of nested input.
// Only the types declared in this file implement it.
type Value interface {
	irValue() // Sealed
}

// Int is a signed integer scalar.
type Int int64

func (Int) irValue() {}

// Uint is an unsigned integer scalar too large or explicitly typed to be
// held as Int. It classifies exactly like Int.
type Uint uint64

func (Uint) irValue() {}

// Float is a real floating point scalar.
type Float float64

func (Float) irValue() {}

// Rational is an exact fraction scalar.
type Rational struct {
	Rat *big.Rat
}

func (Rational) irValue() {}

// NewRational creates a Rational num/den. Panics if den is zero.
func NewRational(num, den int64) Rational {
	return Rational{Rat: big.NewRat(num, den)}
}

// String returns the fraction as "num/den".
func (r Rational) String() string {
	if r.Rat == nil {
		return "0/1"
	}
	return r.Rat.String()
}

// Complex is a complex scalar. Only complex values with a zero imaginary
// part are storable.
type Complex complex128

func (Complex) irValue() {}

// Seq is an ordered sequence of nodes.
type Seq []Value

func (Seq) irValue() {}

// Opaque is any input node that is neither a scalar nor a sequence:
// strings, booleans, null, mappings or unknown Go types.
type Opaque struct {
	// TypeName names the runtime type, e.g. "string".
	TypeName string

	// Repr is a short rendering of the original value.
	Repr string
}

func (Opaque) irValue() {}

// Class is the two-way classification of a node (plus the fallback).
type Class int

const (
	// ClassUnsupported is neither scalar nor sequence.
	ClassUnsupported Class = iota
	// ClassScalar is Int, Uint, Float, Rational or Complex.
	ClassScalar
	// ClassSequence is Seq.
	ClassSequence
)

// Classify resolves v into its class.
func Classify(v Value) Class {
	switch v.(type) {
	case Int, Uint, Float, Rational, Complex:
		return ClassScalar
	case Seq:
		return ClassSequence
	default:
		return ClassUnsupported
	}
}

// TypeName names the runtime type of v for error messages.
func TypeName(v Value) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case Int:
		return "int"
	case Uint:
		return "uint"
	case Float:
		return "float"
	case Rational:
		return "rational"
	case Complex:
		return "complex"
	case Seq:
		return "sequence"
	case Opaque:
		return val.TypeName
	default:
		return reflect.TypeOf(v).String()
	}
}

// FromGo converts a Go value into a Value.
// Slices and arrays become Seq recursively; values of unsupported types
// become Opaque so that inference can report them.
func FromGo(x any) Value {
	switch v := x.(type) {
	case nil:
		return Opaque{TypeName: "nil", Repr: "nil"}
	case Value:
		return v
	case int:
		return Int(v)
	case int8:
		return Int(v)
	case int16:
		return Int(v)
	case int32:
		return Int(v)
	case int64:
		return Int(v)
	case uint:
		return fromUint64(uint64(v))
	case uint8:
		return Int(v)
	case uint16:
		return Int(v)
	case uint32:
		return Int(v)
	case uint64:
		return fromUint64(v)
	case float32:
		return Float(v)
	case float64:
		return Float(v)
	case *big.Rat:
		return Rational{Rat: v}
	case complex64:
		return Complex(v)
	case complex128:
		return Complex(v)
	case string:
		return Opaque{TypeName: "string", Repr: strconv.Quote(v)}
	case bool:
		return Opaque{TypeName: "bool", Repr: strconv.FormatBool(v)}
	case []any:
		seq := make(Seq, len(v))
		for i, elem := range v {
			seq[i] = FromGo(elem)
		}
		return seq
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		seq := make(Seq, rv.Len())
		for i := range seq {
			seq[i] = FromGo(rv.Index(i).Interface())
		}
		return seq
	case reflect.Map:
		return Opaque{TypeName: "mapping", Repr: rv.Type().String()}
	default:
		return Opaque{TypeName: rv.Type().String(), Repr: rv.Type().String()}
	}
}

func fromUint64(u uint64) Value {
	if u <= math.MaxInt64 {
		return Int(u)
	}
	return Uint(u)
}

// Float64 returns the real value of a scalar.
// The second result is false for non-scalars and for complex values with a
// non-zero imaginary part.
func Float64(v Value) (float64, bool) {
	switch val := v.(type) {
	case Int:
		return float64(val), true
	case Uint:
		return float64(val), true
	case Float:
		return float64(val), true
	case Rational:
		if val.Rat == nil {
			return 0, true
		}
		f, _ := val.Rat.Float64()
		return f, true
	case Complex:
		if imag(complex128(val)) != 0 {
			return 0, false
		}
		return real(complex128(val)), true
	default:
		return 0, false
	}
}

// Int64 returns the integer value of a scalar, truncating toward zero.
// The second result is false for non-scalars, non-finite values and values
// outside the int64 range.
func Int64(v Value) (int64, bool) {
	switch val := v.(type) {
	case Int:
		return int64(val), true
	case Uint:
		if uint64(val) > math.MaxInt64 {
			return 0, false
		}
		return int64(val), true
	}

	f, ok := Float64(v)
	if !ok || math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// NumericEqual compares two scalars after numeric coercion.
// Two integers compare exactly; any other pair compares as float64.
func NumericEqual(a, b Value) bool {
	switch x := a.(type) {
	case Int:
		switch y := b.(type) {
		case Int:
			return x == y
		case Uint:
			return x >= 0 && uint64(x) == uint64(y)
		}
	case Uint:
		switch y := b.(type) {
		case Uint:
			return x == y
		case Int:
			return y >= 0 && uint64(x) == uint64(y)
		}
	}

	fa, okA := Float64(a)
	fb, okB := Float64(b)
	return okA && okB && fa == fb
}
