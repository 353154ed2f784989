package harness

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/roach88/ndview/internal/dtype"
	"github.com/roach88/ndview/internal/ndarray"
	"github.com/roach88/ndview/internal/nderr"
	"github.com/roach88/ndview/internal/testutil"
)

// Harness is the scenario execution engine.
// It runs one scenario with a deterministic clock so that traces are
// reproducible byte for byte.
type Harness struct {
	clock  *testutil.DeterministicClock
	arrays map[string]*ndarray.NDArray
	result *Result
}

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Build every array in declaration order
// 2. Apply every step
// 3. Evaluate assertions against the final arrays
// 4. Snapshot the arrays for golden comparison
//
// Expectation and assertion failures are reported in Result.Errors; the
// returned error is non-nil only when the scenario itself is invalid.
func Run(scenario *Scenario) (*Result, error) {
	if err := Validate(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	h := &Harness{
		clock:  testutil.NewDeterministicClock(),
		arrays: make(map[string]*ndarray.NDArray),
		result: NewResult(),
	}

	log := Logger().With(zap.String("scenario", scenario.Name))
	log.Debug("running scenario")

	for i := range scenario.Arrays {
		if err := h.buildArray(&scenario.Arrays[i]); err != nil {
			return nil, fmt.Errorf("arrays[%d]: %w", i, err)
		}
	}

	for i := range scenario.Steps {
		h.applyStep(i, &scenario.Steps[i])
	}

	for _, errMsg := range EvaluateAssertions(h.arrays, scenario.Assertions, h.result.Trace) {
		h.result.AddError(errMsg)
	}

	for id, arr := range h.arrays {
		h.result.Arrays[id] = arr.Snapshot()
	}

	log.Debug("scenario finished",
		zap.Bool("pass", h.result.Pass),
		zap.Int("errors", len(h.result.Errors)),
	)
	return h.result, nil
}

// buildArray builds one array and records it in the trace. The returned
// error reports an invalid reference; operation failures go to the result.
func (h *Harness) buildArray(spec *ArraySpec) error {
	var (
		arr       *ndarray.NDArray
		err       error
		eventType string
	)

	switch {
	case spec.Convert != nil:
		eventType = EventConvert
		opts, optErr := convertOptions(spec)
		if optErr != nil {
			return optErr
		}
		arr, err = ndarray.TryConvert(spec.Convert.Value, opts)

	case spec.Allocate != nil:
		eventType = EventAllocate
		dt, parseErr := dtype.Parse(spec.Allocate.DType)
		if parseErr != nil {
			// Allocation with a bad dtype is a scenario-visible ArgumentError.
			err = parseErr
			break
		}
		order, orderErr := ndarray.ParseOrder(spec.Allocate.Order)
		if orderErr != nil {
			err = orderErr
			break
		}
		arr, err = ndarray.New(spec.Allocate.Shape, dt, order)

	case spec.Reshape != nil:
		eventType = EventReshape
		order, orderErr := ndarray.ParseOrder(spec.Reshape.Order)
		if orderErr != nil {
			return orderErr
		}
		src, ok := h.arrays[spec.Reshape.From]
		if !ok {
			// The source failed to build; its error is already reported.
			err = nderr.Argument("array %s was not built", spec.Reshape.From)
			break
		}
		arr, err = src.Reshape(spec.Reshape.Shape, order)
	}

	event := TraceEvent{
		Seq:   h.clock.Next(),
		Type:  eventType,
		Array: spec.ID,
	}
	h.record(&event, err)
	if err == nil {
		event.Shape = arr.Shape()
		event.DType = arr.DType().String()
	}
	h.result.AddTrace(event)

	where := fmt.Sprintf("array %s", spec.ID)
	if h.checkExpectation(where, spec.ExpectError, err) && err == nil {
		h.arrays[spec.ID] = arr
	}
	return nil
}

func convertOptions(spec *ArraySpec) (ndarray.ConvertOptions, error) {
	var opts ndarray.ConvertOptions
	if spec.DType != "" {
		dt, err := dtype.Parse(spec.DType)
		if err != nil {
			return opts, err
		}
		opts.DType = dt
	}
	order, err := ndarray.ParseOrder(spec.Order)
	if err != nil {
		return opts, err
	}
	opts.Order = order
	return opts, nil
}

// applyStep runs one set step and records it in the trace.
func (h *Harness) applyStep(index int, step *Step) {
	set := step.Set
	arr := h.arrays[set.Array]

	var err error
	if arr == nil {
		// The array failed to build; its error is already reported.
		err = nderr.Argument("array %s was not built", set.Array)
	} else {
		err = arr.Set(set.Value.Value, set.Index...)
	}

	event := TraceEvent{
		Seq:   h.clock.Next(),
		Type:  EventSet,
		Array: set.Array,
		Index: set.Index,
		Value: set.Value.Value,
	}
	h.record(&event, err)
	h.result.AddTrace(event)

	h.checkExpectation(fmt.Sprintf("steps[%d]", index), step.ExpectError, err)
}

// record fills the outcome of event from err.
func (h *Harness) record(event *TraceEvent, err error) {
	if err == nil {
		event.Outcome = OutcomeOK
		return
	}
	kind := nderr.KindOf(err)
	if kind == "" {
		kind = "Error"
	}
	event.Outcome = string(kind)
	event.Message = err.Error()
}

// checkExpectation compares err against expect, adding an error to the
// result on mismatch. It returns true when the outcome was expected.
func (h *Harness) checkExpectation(where string, expect *ExpectError, err error) bool {
	if expect == nil {
		if err != nil {
			h.result.AddError(fmt.Sprintf("%s: unexpected error: %v", where, err))
			return false
		}
		return true
	}

	if err == nil {
		h.result.AddError(fmt.Sprintf("%s: expected %s, got success", where, expect.Kind))
		return false
	}

	var ndErr *nderr.Error
	if !errors.As(err, &ndErr) || string(ndErr.Kind) != expect.Kind {
		h.result.AddError(fmt.Sprintf("%s: expected %s, got %v", where, expect.Kind, err))
		return false
	}
	if expect.Contains != "" && !strings.Contains(err.Error(), expect.Contains) {
		h.result.AddError(fmt.Sprintf("%s: expected error containing %q, got %q", where, expect.Contains, err.Error()))
		return false
	}
	return true
}
