package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/wintvf/internal/namematch"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose       bool
	Format        string // "json" | "text"
	CaseSensitive bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Matcher returns the identifier matcher selected by --case-sensitive.
func (o *RootOptions) Matcher() namematch.Matcher {
	return namematch.FromFlag(o.CaseSensitive)
}

// Logger returns a text logger on w. Only errors are logged unless --verbose
// is set, since command results already go to stdout.
func (o *RootOptions) Logger(w io.Writer) *slog.Logger {
	logLevel := slog.LevelError
	if o.Verbose {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// NewRootCommand creates the root command for the wintvf CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "wintvf",
		Short: "wintvf - windowing table function checker",
		Long:  "Validate TUMBLE, HOP and SESSION calls against relation schemas and infer their output row types.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVar(&opts.CaseSensitive, "case-sensitive", false, "match identifiers exactly")

	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewFunctionsCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
