package store

import (
	"context"
	"fmt"
)

// NewRun allocates the next run and inserts it with zero counts.
// The run's Seq follows the highest stored seq; StartedAtSeq is the number
// of scenario results already stored.
func (s *Store) NewRun(ctx context.Context) (Run, error) {
	run := Run{ID: s.ids.Generate()}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`,
	).Scan(&run.Seq); err != nil {
		return Run{}, fmt.Errorf("new run: %w", err)
	}
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM scenario_results`,
	).Scan(&run.StartedAtSeq); err != nil {
		return Run{}, fmt.Errorf("new run: %w", err)
	}

	if err := s.WriteRun(ctx, run); err != nil {
		return Run{}, err
	}
	return run, nil
}

// WriteRun inserts a run or updates the counts of an existing one.
func (s *Store) WriteRun(ctx context.Context, run Run) error {
	if run.ID == "" {
		return fmt.Errorf("write run: id is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, started_at_seq, scenario_count, passed, failed)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			scenario_count = excluded.scenario_count,
			passed = excluded.passed,
			failed = excluded.failed
	`,
		run.ID,
		run.Seq,
		run.StartedAtSeq,
		run.ScenarioCount,
		run.Passed,
		run.Failed,
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

// WriteScenarioResult inserts a scenario result.
// Uses ON CONFLICT DO NOTHING so a second write of the same scenario for a
// run is silently ignored. The run must already exist.
func (s *Store) WriteScenarioResult(ctx context.Context, res ScenarioResult) error {
	errsJSON, err := marshalErrors(res.Errors)
	if err != nil {
		return fmt.Errorf("write scenario result: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO scenario_results
		(run_id, seq, scenario, pass, trace_digest, trace, errors)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, scenario) DO NOTHING
	`,
		res.RunID,
		res.Seq,
		res.Scenario,
		res.Pass,
		res.TraceDigest,
		string(res.Trace),
		errsJSON,
	)
	if err != nil {
		return fmt.Errorf("write scenario result: %w", err)
	}
	return nil
}
