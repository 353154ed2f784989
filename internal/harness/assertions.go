package harness

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/ndview/internal/ir"
	"github.com/roach88/ndview/internal/ndarray"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Array    string       // Array under test, or "a, b" for comparisons
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s on %s\n", e.Type, e.Array)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s %s: %s", event.Seq, event.Type, event.Array, event.Outcome)
			if event.Message != "" {
				fmt.Fprintf(&buf, " (%s)", event.Message)
			}
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}

// EvaluateAssertions evaluates all assertions against the built arrays.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(arrays map[string]*ndarray.NDArray, assertions []Assertion, trace []TraceEvent) []string {
	var errors []string

	for i, assertion := range assertions {
		if err := evaluate(arrays, assertion, trace); err != nil {
			errors = append(errors, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}

	return errors
}

func evaluate(arrays map[string]*ndarray.NDArray, a Assertion, trace []TraceEvent) error {
	fail := func(array, expected, actual string) error {
		return &AssertionError{Type: a.Type, Array: array, Expected: expected, Actual: actual, Trace: trace}
	}

	if a.Type == AssertEqual || a.Type == AssertNotEqual {
		if len(a.Arrays) != 2 {
			return fmt.Errorf("%s requires exactly two arrays", a.Type)
		}
		label := strings.Join(a.Arrays, ", ")
		x, y := arrays[a.Arrays[0]], arrays[a.Arrays[1]]
		if x == nil || y == nil {
			return fail(label, "both arrays built", "array missing")
		}
		want := a.Type == AssertEqual
		if got := x.Equal(y); got != want {
			return fail(label, fmt.Sprintf("equal = %t", want), fmt.Sprintf("equal = %t", got))
		}
		return nil
	}

	arr := arrays[a.Array]
	if arr == nil {
		return fail(a.Array, "array built", "array missing")
	}

	switch a.Type {
	case AssertShape:
		return compareInts(&a.Expect, arr.Shape(), func(want, got string) error {
			return fail(a.Array, "shape "+want, "shape "+got)
		})
	case AssertStrides:
		return compareInts(&a.Expect, arr.Strides(), func(want, got string) error {
			return fail(a.Array, "strides "+want, "strides "+got)
		})
	case AssertNDim:
		return compareInt(&a.Expect, arr.NDim(), func(want, got int) error {
			return fail(a.Array, fmt.Sprintf("ndim %d", want), fmt.Sprintf("ndim %d", got))
		})
	case AssertByteSize:
		return compareInt(&a.Expect, arr.ByteSize(), func(want, got int) error {
			return fail(a.Array, fmt.Sprintf("byte_size %d", want), fmt.Sprintf("byte_size %d", got))
		})
	case AssertDType:
		var want string
		if err := a.Expect.Decode(&want); err != nil {
			return fmt.Errorf("decode expect: %w", err)
		}
		if got := arr.DType().String(); got != want {
			return fail(a.Array, "dtype "+want, "dtype "+got)
		}
		return nil
	case AssertItems:
		want, err := ir.FromYAMLNode(&a.Expect)
		if err != nil {
			return fmt.Errorf("decode expect: %w", err)
		}
		got := arr.ToValue()
		if !itemsEqual(got, want) {
			return fail(a.Array, render(want), render(got))
		}
		return nil
	case AssertElement:
		want, err := ir.FromYAMLNode(&a.Expect)
		if err != nil {
			return fmt.Errorf("decode expect: %w", err)
		}
		got, err := arr.At(a.Index...)
		if err != nil {
			return fail(a.Array, fmt.Sprintf("element %v = %s", a.Index, render(want)), err.Error())
		}
		if !ir.NumericEqual(got, want) {
			return fail(a.Array, fmt.Sprintf("element %v = %s", a.Index, render(want)), render(got))
		}
		return nil
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func compareInts(expect *yaml.Node, got []int, fail func(want, got string) error) error {
	var want []int
	if err := expect.Decode(&want); err != nil {
		return fmt.Errorf("decode expect: %w", err)
	}
	if !slices.Equal(want, got) {
		return fail(fmt.Sprint(want), fmt.Sprint(got))
	}
	return nil
}

func compareInt(expect *yaml.Node, got int, fail func(want, got int) error) error {
	var want int
	if err := expect.Decode(&want); err != nil {
		return fmt.Errorf("decode expect: %w", err)
	}
	if want != got {
		return fail(want, got)
	}
	return nil
}

// itemsEqual compares nested values structurally, scalars numerically.
func itemsEqual(got, want ir.Value) bool {
	gs, gotSeq := got.(ir.Seq)
	ws, wantSeq := want.(ir.Seq)
	if gotSeq != wantSeq {
		return false
	}
	if !gotSeq {
		return ir.NumericEqual(got, want)
	}
	if len(gs) != len(ws) {
		return false
	}
	for i := range gs {
		if !itemsEqual(gs[i], ws[i]) {
			return false
		}
	}
	return true
}

// render formats a value for assertion messages.
func render(v ir.Value) string {
	data, err := ir.MarshalCanonical(v)
	if err != nil {
		return fmt.Sprint(ir.ToGo(v))
	}
	return string(data)
}
