package harness

import (
	"github.com/roach88/ndview/internal/ir"
)

// Trace event types.
const (
	EventConvert  = "convert"
	EventAllocate = "allocate"
	EventReshape  = "reshape"
	EventSet      = "set"
)

// OutcomeOK marks a trace event whose operation succeeded.
// Failed operations record their error kind instead.
const OutcomeOK = "ok"

// TraceEvent records one operation performed while running a scenario.
type TraceEvent struct {
	Seq     int64  `json:"seq"`
	Type    string `json:"type"`
	Array   string `json:"array"`
	Outcome string `json:"outcome"`
	Message string `json:"message,omitempty"`

	// Shape and DType describe the array after the operation succeeded.
	Shape []int  `json:"shape,omitempty"`
	DType string `json:"dtype,omitempty"`

	// Index and Value describe a set step.
	Index []int    `json:"index,omitempty"`
	Value ir.Value `json:"-"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	// True if every expectation and assertion holds.
	Pass bool `json:"pass"`

	// Trace contains every operation in execution order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Arrays holds a canonical snapshot of every array that was built,
	// keyed by array id.
	Arrays map[string]map[string]any `json:"-"`
}

// NewResult creates a new passing result.
// Used as the starting point for scenario execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
		Arrays: make(map[string]map[string]any),
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an event to the trace.
func (r *Result) AddTrace(event TraceEvent) {
	r.Trace = append(r.Trace, event)
}

// CanonicalTrace returns the trace in a form accepted by
// ir.MarshalCanonical and ir.TraceDigest.
func (r *Result) CanonicalTrace() []any {
	trace := make([]any, len(r.Trace))
	for i, event := range r.Trace {
		trace[i] = event.canonical()
	}
	return trace
}

// canonical converts an event to a map for ir.MarshalCanonical.
func (e TraceEvent) canonical() map[string]any {
	m := map[string]any{
		"seq":     e.Seq,
		"type":    e.Type,
		"array":   e.Array,
		"outcome": e.Outcome,
	}
	if e.Message != "" {
		m["message"] = e.Message
	}
	if e.Shape != nil {
		m["shape"] = e.Shape
	}
	if e.DType != "" {
		m["dtype"] = e.DType
	}
	if e.Index != nil {
		m["index"] = e.Index
	}
	if e.Value != nil {
		m["value"] = e.Value
	}
	return m
}
