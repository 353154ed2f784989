package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/ndview/internal/ir"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Color   string // "auto" | "always" | "never"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// ValidColors defines the allowed colour modes.
var ValidColors = []string{"auto", "always", "never"}

// NewRootCommand creates the root command for the ndview CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "ndview",
		Version: ir.ToolVersion,
		Short:   "ndview - nested sequences to n-dimensional arrays",
		Long: `Convert arbitrarily nested sequences of numbers into typed,
strided n-dimensional arrays, and check conversion behaviour with
YAML scenarios.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if !slices.Contains(ValidColors, opts.Color) {
				return fmt.Errorf("invalid color %q: must be one of %v", opts.Color, ValidColors)
			}
			installLogger(newLogger(opts.Verbose, cmd.ErrOrStderr()))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Color, "color", "auto", "colour output (auto|always|never)")

	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}
