package store

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/ndview/internal/ir"
)

// IDGenerator produces run IDs.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run IDs.
type UUIDv7Generator struct{}

// Generate returns a new UUIDv7 string.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Run is one harness invocation.
type Run struct {
	ID  string `json:"id"`
	Seq int64  `json:"seq"`

	// StartedAtSeq counts the scenario results stored before this run.
	StartedAtSeq int64 `json:"started_at_seq"`

	ScenarioCount int `json:"scenario_count"`
	Passed        int `json:"passed"`
	Failed        int `json:"failed"`
}

// ScenarioResult is the stored outcome of one scenario within a run.
type ScenarioResult struct {
	RunID       string          `json:"run_id"`
	Seq         int64           `json:"seq"`
	Scenario    string          `json:"scenario"`
	Pass        bool            `json:"pass"`
	TraceDigest string          `json:"trace_digest"`
	Trace       json.RawMessage `json:"trace"`
	Errors      []string        `json:"errors"`
}

// NewScenarioResult canonicalises trace and computes its digest.
// trace must be encodable by ir.MarshalCanonical.
func NewScenarioResult(runID string, seq int64, scenario string, pass bool, trace any, errs []string) (ScenarioResult, error) {
	data, err := ir.MarshalCanonical(trace)
	if err != nil {
		return ScenarioResult{}, fmt.Errorf("marshal trace: %w", err)
	}
	digest, err := ir.TraceDigest(trace)
	if err != nil {
		return ScenarioResult{}, err
	}
	if errs == nil {
		errs = []string{}
	}
	return ScenarioResult{
		RunID:       runID,
		Seq:         seq,
		Scenario:    scenario,
		Pass:        pass,
		TraceDigest: digest,
		Trace:       data,
		Errors:      errs,
	}, nil
}

func marshalErrors(errs []string) (string, error) {
	if errs == nil {
		errs = []string{}
	}
	data, err := ir.MarshalCanonical(errs)
	if err != nil {
		return "", fmt.Errorf("marshal errors: %w", err)
	}
	return string(data), nil
}

func unmarshalErrors(data string) ([]string, error) {
	errs := []string{}
	if data == "" {
		return errs, nil
	}
	if err := json.Unmarshal([]byte(data), &errs); err != nil {
		return nil, fmt.Errorf("unmarshal errors: %w", err)
	}
	return errs, nil
}
