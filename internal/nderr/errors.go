// Package nderr defines the error kinds raised while inferring, allocating
// and populating arrays.
//
// Every failure is reported synchronously as an *Error carrying a Kind.
// Callers test the kind with the Is* predicates, which use errors.As so
// wrapped errors are still recognised.
package nderr

import (
	"errors"
	"fmt"
	"strconv"
)

// Kind categorizes an error.
type Kind string

const (
	// KindArgument indicates malformed or inhomogeneous structural input,
	// including shape and depth mismatches and invalid shapes or dtypes.
	KindArgument Kind = "ArgumentError"

	// KindType indicates an unsupported scalar type or a disallowed
	// signed/unsigned promotion.
	KindType Kind = "TypeError"

	// KindIndex indicates an index of the wrong rank or out of bounds.
	KindIndex Kind = "IndexError"

	// KindRange indicates a scalar that does not fit the target dtype.
	KindRange Kind = "RangeError"

	// KindNotImplemented indicates an order/rank combination the engine
	// does not support.
	KindNotImplemented Kind = "NotImplementedError"
)

// Error is the structured error returned by inference and the array engine.
type Error struct {
	// Kind identifies the error category.
	Kind Kind

	// Message is a human-readable description.
	Message string

	// Details contains the offending dimension/depth and observed vs
	// expected values where they apply.
	Details map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Argument creates an ArgumentError.
func Argument(format string, args ...any) *Error {
	return newError(KindArgument, format, args...)
}

// Type creates a TypeError.
func Type(format string, args ...any) *Error {
	return newError(KindType, format, args...)
}

// Index creates an IndexError.
func Index(format string, args ...any) *Error {
	return newError(KindIndex, format, args...)
}

// Range creates a RangeError.
func Range(format string, args ...any) *Error {
	return newError(KindRange, format, args...)
}

// NotImplemented creates a NotImplementedError.
func NotImplemented(format string, args ...any) *Error {
	return newError(KindNotImplemented, format, args...)
}

// SizeMismatch reports sibling sequences of different lengths at dim.
func SizeMismatch(dim, got, want int) *Error {
	e := Argument("size mismatch at the %s dimension (%d for %d)", Ordinal(dim), got, want)
	e.Details = map[string]string{
		"dimension": strconv.Itoa(dim),
		"observed":  strconv.Itoa(got),
		"expected":  strconv.Itoa(want),
	}
	return e
}

// InhomogeneousDepth reports a scalar found at depth observed when the
// structure established depth expected. The reported dimension is the
// smaller of the two.
func InhomogeneousDepth(observed, expected int) *Error {
	dim := min(observed, expected)
	e := Argument("inhomogeneous array detected at the %s dimension", Ordinal(dim))
	e.Details = map[string]string{
		"dimension": strconv.Itoa(dim),
		"observed":  strconv.Itoa(observed),
		"expected":  strconv.Itoa(expected),
	}
	return e
}

// UnsupportedType reports a scalar whose runtime type cannot be stored.
func UnsupportedType(typeName string) *Error {
	e := Type("%s is unsupported", typeName)
	e.Details = map[string]string{"type": typeName}
	return e
}

// SignedUnsignedPromotion reports an attempt to promote between equal-width
// signed and unsigned integer dtypes.
func SignedUnsignedPromotion(a, b string) *Error {
	e := Type("auto promotion between signed and unsigned is not supported")
	e.Details = map[string]string{"left": a, "right": b}
	return e
}

// KindOf returns the kind of err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsArgumentError returns true if err is an ArgumentError.
func IsArgumentError(err error) bool { return KindOf(err) == KindArgument }

// IsTypeError returns true if err is a TypeError.
func IsTypeError(err error) bool { return KindOf(err) == KindType }

// IsIndexError returns true if err is an IndexError.
func IsIndexError(err error) bool { return KindOf(err) == KindIndex }

// IsRangeError returns true if err is a RangeError.
func IsRangeError(err error) bool { return KindOf(err) == KindRange }

// IsNotImplemented returns true if err is a NotImplementedError.
func IsNotImplemented(err error) bool { return KindOf(err) == KindNotImplemented }

// ParseKind maps a kind name such as "ArgumentError" to its Kind.
func ParseKind(name string) (Kind, bool) {
	switch k := Kind(name); k {
	case KindArgument, KindType, KindIndex, KindRange, KindNotImplemented:
		return k, true
	}
	return "", false
}

// Ordinal renders n with its English ordinal suffix: 1st, 2nd, 3rd, 11th.
func Ordinal(n int) string {
	suffix := "th"
	switch n % 10 {
	case 1:
		if n%100 != 11 {
			suffix = "st"
		}
	case 2:
		if n%100 != 12 {
			suffix = "nd"
		}
	case 3:
		if n%100 != 13 {
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
