package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/ndview/internal/dtype"
	"github.com/roach88/ndview/internal/ir"
	"github.com/roach88/ndview/internal/ndarray"
	"github.com/roach88/ndview/internal/nderr"
)

// Scenario defines an array conversion scenario.
// Scenarios build named arrays, mutate them, and assert on the resulting
// shapes, dtypes, sizes and elements.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Arrays are built in order. Later arrays may reshape earlier ones.
	Arrays []ArraySpec `yaml:"arrays"`

	// Steps mutate arrays after they are built.
	Steps []Step `yaml:"steps,omitempty"`

	// Assertions validate the final arrays.
	// Supported types: shape, ndim, dtype, byte_size, strides, items,
	// element, equal, not_equal
	Assertions []Assertion `yaml:"assertions"`
}

// ArraySpec names one array and how to build it.
// Exactly one of Convert, Allocate and Reshape must be set.
type ArraySpec struct {
	// ID names the array for steps and assertions.
	ID string `yaml:"id"`

	// Convert is nested input passed to ndarray.TryConvert.
	Convert *ir.Node `yaml:"convert,omitempty"`

	// Allocate creates a zero-filled array with ndarray.New.
	Allocate *AllocateSpec `yaml:"allocate,omitempty"`

	// Reshape reshapes an earlier array.
	Reshape *ReshapeSpec `yaml:"reshape,omitempty"`

	// DType forces the dtype of a converted array.
	DType string `yaml:"dtype,omitempty"`

	// Order selects the layout of a converted array.
	Order string `yaml:"order,omitempty"`

	// ExpectError makes building the array a failure expectation.
	// The array is not registered when it is set.
	ExpectError *ExpectError `yaml:"expect_error,omitempty"`
}

// AllocateSpec describes a call to ndarray.New.
type AllocateSpec struct {
	Shape []int  `yaml:"shape"`
	DType string `yaml:"dtype"`
	Order string `yaml:"order,omitempty"`
}

// ReshapeSpec describes a call to NDArray.Reshape.
type ReshapeSpec struct {
	From  string `yaml:"from"`
	Shape []int  `yaml:"shape"`
	Order string `yaml:"order,omitempty"`
}

// ExpectError specifies an expected failure.
type ExpectError struct {
	// Kind is the error kind, e.g. "ArgumentError".
	Kind string `yaml:"kind"`

	// Contains is an optional substring of the error message.
	Contains string `yaml:"contains,omitempty"`
}

// Step mutates an array.
type Step struct {
	Set *SetStep `yaml:"set"`

	// ExpectError makes the step a failure expectation.
	ExpectError *ExpectError `yaml:"expect_error,omitempty"`
}

// SetStep writes one element.
type SetStep struct {
	Array string  `yaml:"array"`
	Index []int   `yaml:"index"`
	Value ir.Node `yaml:"value"`
}

// Assertion validates an array after all steps ran.
type Assertion struct {
	// Type specifies the assertion type:
	// - "shape", "strides": Expect is a list of integers
	// - "ndim", "byte_size": Expect is an integer
	// - "dtype": Expect is a dtype name
	// - "items": Expect is nested values compared numerically
	// - "element": Expect is the scalar at Index
	// - "equal", "not_equal": compares the two Arrays
	Type string `yaml:"type"`

	// Array is the array under test (all types but equal/not_equal).
	Array string `yaml:"array,omitempty"`

	// Arrays names the two arrays compared by equal and not_equal.
	Arrays []string `yaml:"arrays,omitempty"`

	// Index addresses the element checked by element.
	Index []int `yaml:"index,omitempty"`

	// Expect is the expected value, decoded per Type.
	Expect yaml.Node `yaml:"expect,omitempty"`
}

// Assertion type constants.
const (
	AssertShape    = "shape"
	AssertNDim     = "ndim"
	AssertDType    = "dtype"
	AssertByteSize = "byte_size"
	AssertStrides  = "strides"
	AssertItems    = "items"
	AssertElement  = "element"
	AssertEqual    = "equal"
	AssertNotEqual = "not_equal"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return LoadScenarioBytes(data)
}

// LoadScenarioBytes parses and validates scenario YAML.
func LoadScenarioBytes(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := Validate(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// Validate checks that required fields are present and that every
// reference resolves to an array declared earlier.
func Validate(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Arrays) == 0 {
		return fmt.Errorf("arrays list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	// ids holds arrays that exist after building: failure expectations
	// register nothing.
	ids := make(map[string]bool)
	for i, spec := range s.Arrays {
		if err := validateArray(i, &spec, ids); err != nil {
			return err
		}
		if spec.ExpectError == nil {
			ids[spec.ID] = true
		}
	}

	for i, step := range s.Steps {
		if step.Set == nil {
			return fmt.Errorf("steps[%d]: set is required", i)
		}
		if !ids[step.Set.Array] {
			return fmt.Errorf("steps[%d]: unknown array %q", i, step.Set.Array)
		}
		if step.Set.Value.Value == nil {
			return fmt.Errorf("steps[%d]: value is required", i)
		}
		if err := validateExpectError(fmt.Sprintf("steps[%d]", i), step.ExpectError); err != nil {
			return err
		}
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i], ids); err != nil {
			return err
		}
	}

	return nil
}

// validateArray validates a single array spec.
func validateArray(index int, a *ArraySpec, ids map[string]bool) error {
	where := fmt.Sprintf("arrays[%d]", index)
	if a.ID == "" {
		return fmt.Errorf("%s: id is required", where)
	}
	if ids[a.ID] {
		return fmt.Errorf("%s: duplicate array id %q", where, a.ID)
	}

	builders := 0
	if a.Convert != nil {
		builders++
	}
	if a.Allocate != nil {
		builders++
		if a.DType != "" || a.Order != "" {
			return fmt.Errorf("%s: dtype and order belong inside allocate", where)
		}
	}
	if a.Reshape != nil {
		builders++
		if !ids[a.Reshape.From] {
			return fmt.Errorf("%s: reshape from unknown array %q", where, a.Reshape.From)
		}
	}
	if builders != 1 {
		return fmt.Errorf("%s: exactly one of convert, allocate or reshape is required", where)
	}

	if a.DType != "" {
		if _, err := dtype.Parse(a.DType); err != nil {
			return fmt.Errorf("%s: %w", where, err)
		}
	}
	if _, err := ndarray.ParseOrder(a.Order); err != nil {
		return fmt.Errorf("%s: %w", where, err)
	}

	return validateExpectError(where, a.ExpectError)
}

func validateExpectError(where string, e *ExpectError) error {
	if e == nil {
		return nil
	}
	if _, ok := nderr.ParseKind(e.Kind); !ok {
		return fmt.Errorf("%s.expect_error: unknown error kind %q", where, e.Kind)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, ids map[string]bool) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertEqual, AssertNotEqual:
		if len(a.Arrays) != 2 {
			return fmt.Errorf("assertions[%d]: arrays must name exactly two arrays for %s", index, a.Type)
		}
		for _, id := range a.Arrays {
			if !ids[id] {
				return fmt.Errorf("assertions[%d]: unknown array %q", index, id)
			}
		}
		return nil
	case AssertShape, AssertNDim, AssertDType, AssertByteSize, AssertStrides, AssertItems:
	case AssertElement:
		if len(a.Index) == 0 {
			return fmt.Errorf("assertions[%d]: index is required for element", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	if !ids[a.Array] {
		return fmt.Errorf("assertions[%d]: unknown array %q", index, a.Array)
	}
	if a.Expect.Kind == 0 {
		return fmt.Errorf("assertions[%d]: expect is required for %s", index, a.Type)
	}
	return nil
}
