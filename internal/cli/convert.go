package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/ndview/internal/dtype"
	"github.com/roach88/ndview/internal/ir"
	"github.com/roach88/ndview/internal/ndarray"
	"github.com/roach88/ndview/internal/nderr"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	InputFormat string // "json" | "yaml", default by extension
	DType       string // forced dtype
	Order       string // row_major | column_major
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert nested input to an n-dimensional array",
		Long: `Convert a nested JSON or YAML sequence into an n-dimensional array
and print its shape, dtype, byte size, strides and items.

Input is read from the file argument, or from stdin when it is omitted.
The input format follows the file extension (.yaml/.yml are YAML,
everything else JSON) unless --input-format is given.

Exit codes:
  0 - Conversion succeeded
  1 - Conversion failed (ArgumentError, TypeError, RangeError, ...)
  2 - Command error (missing file, etc.)

Examples:
  ndview convert data.json
  echo '[[1, 2], [3, 4.5]]' | ndview convert
  ndview convert data.yaml --dtype int8 --order column_major --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runConvert(opts, path, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.InputFormat, "input-format", "", "input format (json|yaml)")
	cmd.Flags().StringVar(&opts.DType, "dtype", "", "force the element dtype (e.g. int32, float64)")
	cmd.Flags().StringVar(&opts.Order, "order", "row_major", "memory layout (row_major|column_major)")

	return cmd
}

func runConvert(opts *ConvertOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	data, format, err := readConvertInput(path, opts.InputFormat, cmd.InOrStdin())
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			_ = formatter.Error(ErrCodeNotFound, exitErr.Message, nil)
			return err
		}
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read input", err)
	}
	formatter.VerboseLog("Read %d byte(s) of %s input", len(data), format)

	var root ir.Value
	switch format {
	case "json":
		root, err = ir.ParseJSON(data)
	case "yaml":
		root, err = ir.ParseYAML(data)
	}
	if err != nil {
		_ = formatter.Error(ErrCodeParse, err.Error(), nil)
		return WrapExitError(ExitFailure, "failed to parse input", err)
	}

	convOpts, err := opts.convertOptions()
	if err != nil {
		return convertFailure(formatter, err)
	}

	arr, err := ndarray.TryConvert(root, convOpts)
	if err != nil {
		return convertFailure(formatter, err)
	}

	if opts.Format == "json" {
		return formatter.Success(arr.Summarize())
	}
	return writeSummaryText(cmd.OutOrStdout(), arr)
}

// readConvertInput returns the raw input and its format.
func readConvertInput(path, format string, stdin io.Reader) ([]byte, string, error) {
	if format != "" && format != "json" && format != "yaml" {
		return nil, "", NewExitError(ExitCommandError, fmt.Sprintf("invalid input format %q: must be json or yaml", format))
	}

	if path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", err
		}
		if format == "" {
			format = "json"
		}
		return data, format, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", NewExitError(ExitCommandError, fmt.Sprintf("input file not found: %s", path))
		}
		return nil, "", err
	}
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			format = "yaml"
		default:
			format = "json"
		}
	}
	return data, format, nil
}

func (o *ConvertOptions) convertOptions() (ndarray.ConvertOptions, error) {
	var opts ndarray.ConvertOptions
	if o.DType != "" {
		dt, err := dtype.Parse(o.DType)
		if err != nil {
			return opts, err
		}
		opts.DType = dt
	}
	order, err := ndarray.ParseOrder(o.Order)
	if err != nil {
		return opts, err
	}
	opts.Order = order
	return opts, nil
}

// convertFailure reports a conversion error and returns exit code 1.
func convertFailure(formatter *OutputFormatter, err error) error {
	var details any
	var ndErr *nderr.Error
	if errors.As(err, &ndErr) && len(ndErr.Details) > 0 {
		details = ndErr.Details
	}
	_ = formatter.Error(ErrorCode(err), err.Error(), details)
	return WrapExitError(ExitFailure, "conversion failed", err)
}

func writeSummaryText(w io.Writer, arr *ndarray.NDArray) error {
	items, err := ir.MarshalCanonical(arr.ToValue())
	if err != nil {
		return fmt.Errorf("render items: %w", err)
	}
	s := arr.Summarize()
	fmt.Fprintf(w, "shape:     %v\n", s.Shape)
	fmt.Fprintf(w, "ndim:      %d\n", s.NDim)
	fmt.Fprintf(w, "dtype:     %s\n", s.DType)
	fmt.Fprintf(w, "order:     %s\n", s.Order)
	fmt.Fprintf(w, "byte_size: %d\n", s.ByteSize)
	fmt.Fprintf(w, "strides:   %v\n", s.Strides)
	fmt.Fprintf(w, "items:     %s\n", items)
	return nil
}
