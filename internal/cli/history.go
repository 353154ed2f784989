package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/ndview/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DB    string // run history database
	RunID string // show the scenario results of one run
	Limit int    // most recent runs to list, 0 for all
}

// HistoryResult is the JSON payload of the history command.
type HistoryResult struct {
	Runs      []store.Run            `json:"runs,omitempty"`
	Run       *store.Run             `json:"run,omitempty"`
	Scenarios []store.ScenarioResult `json:"scenarios,omitempty"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded test runs",
		Long: `List the test runs recorded with "ndview test --db".

With --run, show the scenario results of one run, including the digest
of each scenario's trace.

Examples:
  ndview history --db runs.db
  ndview history --db runs.db --limit 5
  ndview history --db runs.db --run 0192f0c4-...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "path to the run history database (required)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "show scenario results of this run")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "show only the most recent N runs")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(ctx context.Context, opts *HistoryOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if _, err := os.Stat(opts.DB); os.IsNotExist(err) {
		msg := fmt.Sprintf("database not found: %s", opts.DB)
		_ = formatter.Error(ErrCodeNotFound, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}
	if opts.Limit < 0 {
		msg := fmt.Sprintf("invalid limit %d: must not be negative", opts.Limit)
		_ = formatter.Error(ErrCodeArgument, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	s, err := store.Open(opts.DB)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer s.Close()

	styles := NewStyles(opts.Color, cmd.OutOrStdout())

	if opts.RunID != "" {
		run, err := s.ReadRun(ctx, opts.RunID)
		if errors.Is(err, sql.ErrNoRows) {
			msg := fmt.Sprintf("run not found: %s", opts.RunID)
			_ = formatter.Error(ErrCodeNotFound, msg, nil)
			return NewExitError(ExitCommandError, msg)
		}
		if err != nil {
			_ = formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to read run", err)
		}
		results, err := s.ReadScenarioResults(ctx, run.ID)
		if err != nil {
			_ = formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to read scenario results", err)
		}

		if opts.Format == "json" {
			return formatter.Success(HistoryResult{Run: &run, Scenarios: results})
		}
		writeRunText(cmd.OutOrStdout(), styles, run, results)
		return nil
	}

	runs, err := s.ReadRuns(ctx, opts.Limit)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read runs", err)
	}

	if opts.Format == "json" {
		return formatter.Success(HistoryResult{Runs: runs})
	}
	writeRunsText(cmd.OutOrStdout(), styles, runs)
	return nil
}

func writeRunsText(w io.Writer, styles Styles, runs []store.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}
	for _, run := range runs {
		mark := styles.Pass.Render("✓")
		if run.Failed > 0 {
			mark = styles.Fail.Render("✗")
		}
		fmt.Fprintf(w, "%s #%d %s  %d passed, %d failed, %d total\n",
			mark, run.Seq, run.ID, run.Passed, run.Failed, run.ScenarioCount)
	}
}

func writeRunText(w io.Writer, styles Styles, run store.Run, results []store.ScenarioResult) {
	fmt.Fprintf(w, "%s %s (#%d)\n", styles.Label.Render("Run"), run.ID, run.Seq)
	for _, res := range results {
		if res.Pass {
			fmt.Fprintf(w, "%s %s  %s\n", styles.Pass.Render("✓"), res.Scenario, shortDigest(res.TraceDigest))
			continue
		}
		fmt.Fprintf(w, "%s %s  %s\n", styles.Fail.Render("✗"), res.Scenario, shortDigest(res.TraceDigest))
		for _, e := range res.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}
	fmt.Fprintf(w, "\n%d passed, %d failed, %d total\n", run.Passed, run.Failed, run.ScenarioCount)
}

func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}
