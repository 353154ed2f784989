package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/ndview/internal/harness"
)

// FileValidation is the validation outcome of one scenario file.
type FileValidation struct {
	File   string   `json:"file"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool             `json:"valid"`
	Files []FileValidation `json:"files"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenarios-dir>",
		Short: "Validate scenario files without running them",
		Long: `Validate scenario files against the scenario schema and check that
every array reference resolves.

Exit codes:
  0 - All scenario files are valid
  1 - One or more files are invalid
  2 - Command error (invalid paths, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		msg := fmt.Sprintf("scenarios directory not found: %s", dir)
		_ = formatter.Error(ErrCodeNotFound, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	files, err := findScenarioFiles(dir, "", "")
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to find scenarios", err)
	}
	if len(files) == 0 {
		msg := fmt.Sprintf("no scenario files found in %s", dir)
		_ = formatter.Error(ErrCodeNotFound, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	result := ValidationResult{Valid: true, Files: make([]FileValidation, 0, len(files))}
	for _, file := range files {
		formatter.VerboseLog("Validating %s", file)
		fv := validateScenarioFile(file)
		if !fv.Valid {
			result.Valid = false
		}
		result.Files = append(result.Files, fv)
	}

	if opts.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: result}
		if !result.Valid {
			resp.Status = "error"
			resp.Error = &CLIError{Code: ErrCodeInvalid, Message: "scenario validation failed"}
		}
		if err := formatter.Response(resp); err != nil {
			return err
		}
	} else {
		writeValidationText(cmd.OutOrStdout(), NewStyles(opts.Color, cmd.OutOrStdout()), dir, result)
	}

	if !result.Valid {
		return NewExitError(ExitFailure, "scenario validation failed")
	}
	return nil
}

// validateScenarioFile runs the schema check, then the semantic checks
// done when a scenario is loaded.
func validateScenarioFile(path string) FileValidation {
	fv := FileValidation{File: path, Valid: true}

	data, err := os.ReadFile(path)
	if err != nil {
		fv.Valid = false
		fv.Errors = append(fv.Errors, err.Error())
		return fv
	}

	if err := harness.ValidateSchema(data); err != nil {
		fv.Valid = false
		fv.Errors = append(fv.Errors, err.Error())
		return fv
	}
	if _, err := harness.LoadScenarioBytes(data); err != nil {
		fv.Valid = false
		fv.Errors = append(fv.Errors, err.Error())
	}
	return fv
}

func writeValidationText(w io.Writer, styles Styles, dir string, result ValidationResult) {
	for _, fv := range result.Files {
		name, err := filepath.Rel(dir, fv.File)
		if err != nil {
			name = fv.File
		}
		if fv.Valid {
			fmt.Fprintf(w, "%s %s\n", styles.Pass.Render("✓"), name)
			continue
		}
		fmt.Fprintf(w, "%s %s\n", styles.Fail.Render("✗"), name)
		for _, e := range fv.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}
	if result.Valid {
		fmt.Fprintf(w, "\n%d scenario file(s) valid\n", len(result.Files))
	}
}
