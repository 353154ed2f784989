package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/roach88/ndview/internal/nderr"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Conversion error, failed scenarios or invalid scenario files
	ExitCommandError = 2 // Command error (invalid paths, unreadable database, etc.)
)

// Error codes reported in JSON output.
const (
	ErrCodeArgument       = "E_ARGUMENT"
	ErrCodeType           = "E_TYPE"
	ErrCodeIndex          = "E_INDEX"
	ErrCodeRange          = "E_RANGE"
	ErrCodeNotImplemented = "E_NOT_IMPLEMENTED"
	ErrCodeParse          = "E_PARSE"
	ErrCodeNotFound       = "E_NOT_FOUND"
	ErrCodeInvalid        = "E_INVALID_SCENARIO"
	ErrCodeTestFailed     = "E_TEST_FAILED"
	ErrCodeStore          = "E_STORE"
	ErrCodeGeneric        = "E_ERROR"
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// ErrorCode maps an array error to its CLI error code.
func ErrorCode(err error) string {
	switch nderr.KindOf(err) {
	case nderr.KindArgument:
		return ErrCodeArgument
	case nderr.KindType:
		return ErrCodeType
	case nderr.KindIndex:
		return ErrCodeIndex
	case nderr.KindRange:
		return ErrCodeRange
	case nderr.KindNotImplemented:
		return ErrCodeNotImplemented
	default:
		return ErrCodeGeneric
	}
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Response writes a full response envelope. Used when a command reports
// data alongside an error, as test does for failed scenarios.
func (f *OutputFormatter) Response(resp CLIResponse) error {
	return f.encode(resp)
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(resp)
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Goes to ErrWriter so JSON output stays parseable.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// newFormatter builds a formatter from the global options.
func newFormatter(opts *RootOptions, out, errOut io.Writer) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    out,
		ErrWriter: errOut,
		Verbose:   opts.Verbose,
	}
}

// Styles renders pass/fail marks.
type Styles struct {
	Pass  lipgloss.Style
	Fail  lipgloss.Style
	Label lipgloss.Style
}

// NewStyles returns styles for w. Colour is used with --color always, or
// with --color auto when w is a terminal.
func NewStyles(mode string, w io.Writer) Styles {
	if !colorEnabled(mode, w) {
		plain := lipgloss.NewStyle()
		return Styles{Pass: plain, Fail: plain, Label: plain}
	}

	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI256)
	return Styles{
		Pass:  r.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		Fail:  r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		Label: r.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
	}
}

func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
