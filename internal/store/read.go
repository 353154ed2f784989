package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoRuns is returned by LatestRun on an empty store.
var ErrNoRuns = errors.New("no runs recorded")

// ReadRuns returns stored runs ordered by seq ASC, id ASC.
// A positive limit keeps only the most recent runs.
//
// Returns an empty slice (not nil) if no runs exist.
func (s *Store) ReadRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, seq, started_at_seq, scenario_count, passed, failed
		FROM runs
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`
	var args []any
	if limit > 0 {
		query = `
			SELECT id, seq, started_at_seq, scenario_count, passed, failed FROM (
				SELECT * FROM runs
				ORDER BY seq DESC, id COLLATE BINARY DESC
				LIMIT ?
			)
			ORDER BY seq ASC, id COLLATE BINARY ASC
		`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Seq, &run.StartedAtSeq, &run.ScenarioCount, &run.Passed, &run.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadRun retrieves a single run by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, started_at_seq, scenario_count, passed, failed
		FROM runs
		WHERE id = ?
	`, id)
	return scanRun(row)
}

// LatestRun returns the run with the highest seq.
// Returns ErrNoRuns if the store is empty.
func (s *Store) LatestRun(ctx context.Context) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, started_at_seq, scenario_count, passed, failed
		FROM runs
		ORDER BY seq DESC, id COLLATE BINARY DESC
		LIMIT 1
	`)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNoRuns
	}
	return run, err
}

func scanRun(row *sql.Row) (Run, error) {
	var run Run
	if err := row.Scan(&run.ID, &run.Seq, &run.StartedAtSeq, &run.ScenarioCount, &run.Passed, &run.Failed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	return run, nil
}

// ReadScenarioResults returns the results of one run ordered by
// seq ASC, scenario ASC.
//
// Returns an empty slice (not nil) if the run has no results.
func (s *Store) ReadScenarioResults(ctx context.Context, runID string) ([]ScenarioResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, seq, scenario, pass, trace_digest, trace, errors
		FROM scenario_results
		WHERE run_id = ?
		ORDER BY seq ASC, scenario COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query scenario results: %w", err)
	}
	defer rows.Close()

	results := []ScenarioResult{}
	for rows.Next() {
		var (
			res       ScenarioResult
			traceJSON string
			errsJSON  string
		)
		if err := rows.Scan(&res.RunID, &res.Seq, &res.Scenario, &res.Pass, &res.TraceDigest, &traceJSON, &errsJSON); err != nil {
			return nil, fmt.Errorf("scan scenario result: %w", err)
		}
		res.Trace = json.RawMessage(traceJSON)
		if res.Errors, err = unmarshalErrors(errsJSON); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scenario results: %w", err)
	}
	return results, nil
}
