package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/wintvf/internal/analyzer"
	"github.com/roach88/wintvf/internal/catalog"
	"github.com/roach88/wintvf/internal/compiler"
	"github.com/roach88/wintvf/internal/sqltype"
	"github.com/roach88/wintvf/internal/windowfn"
)

// CLI error codes not covered by the spec loader.
const (
	ErrCodeDatabase      = "E007" // SQLite catalog could not be loaded
	ErrCodeQueryNotFound = "E008" // --query names no query
	ErrCodeCatalog       = "E009" // relations collide
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Database string // SQLite database whose tables join the catalog
	Query    string // only check this query
}

// QueryResult is the outcome of checking one query.
type QueryResult struct {
	Name     string       `json:"name"`
	Call     string       `json:"call"`
	Function string       `json:"function,omitempty"`
	RowType  *sqltype.Row `json:"row_type,omitempty"`
	Error    *CLIError    `json:"error,omitempty"`
}

// CheckResult holds the outcome of every checked query.
type CheckResult struct {
	Queries []QueryResult `json:"queries"`
	Valid   int           `json:"valid"`
	Invalid int           `json:"invalid"`
	Total   int           `json:"total"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <specs-dir>",
		Short: "Check window function queries",
		Long: `Check every query in a spec directory and print its output row type.

Relations come from the specs and, with --db, from the tables of a SQLite
database. Each query is validated against the function it names.

Exit codes:
  0 - All queries are valid
  1 - One or more queries are invalid
  2 - Command error (bad specs, missing database, unknown query)

Examples:
  wintvf check ./specs
  wintvf check ./specs --db ./nexmark.db
  wintvf check ./specs --query tumble_bid --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database with additional relations")
	cmd.Flags().StringVar(&opts.Query, "query", "", "check only the named query")

	return cmd
}

func runCheck(opts *CheckOptions, specsDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
		TraceID:   NewTraceID(),
	}
	logger := opts.Logger(formatter.GetErrWriter()).With("trace_id", formatter.TraceID)

	logger.Debug("loading specs", "dir", specsDir)
	specs, loadErrors := compiler.LoadDir(specsDir, compiler.LoadModeCollectAll)
	if len(loadErrors) > 0 {
		return outputLoadErrors(formatter, loadErrors)
	}
	logger.Debug("specs loaded", "files", specs.FileCount, "relations", len(specs.Relations), "queries", len(specs.Queries))

	matcher := opts.Matcher()
	cat, err := specs.Catalog(matcher)
	if err != nil {
		return commandError(formatter, ErrCodeCatalog, err)
	}

	if opts.Database != "" {
		logger.Debug("loading database", "path", opts.Database)
		tables, err := catalog.LoadSQLite(cmd.Context(), opts.Database, matcher)
		if err != nil {
			return commandError(formatter, ErrCodeDatabase, err)
		}
		if err := cat.Merge(tables); err != nil {
			return commandError(formatter, ErrCodeCatalog, err)
		}
		logger.Debug("database loaded", "tables", tables.Len())
	}

	queries := specs.Queries
	if opts.Query != "" {
		q, ok := specs.Query(opts.Query)
		if !ok {
			return commandError(formatter, ErrCodeQueryNotFound, fmt.Errorf("query %s not found in %s", opts.Query, specsDir))
		}
		queries = []compiler.Query{*q}
	}

	formatter.VerboseLog("Checking %d query(s) against %d relation(s)", len(queries), cat.Len())
	an := analyzer.New(cat, matcher, analyzer.WithLogger(logger))
	result := CheckResult{
		Queries: make([]QueryResult, 0, len(queries)),
		Total:   len(queries),
	}
	for _, q := range queries {
		qr := checkQuery(an, q, logger)
		if qr.Error != nil {
			result.Invalid++
		} else {
			result.Valid++
		}
		result.Queries = append(result.Queries, qr)
	}

	if opts.Format == "json" {
		return outputCheckJSON(cmd, formatter, result)
	}
	return outputCheckText(cmd, result)
}

func checkQuery(an *analyzer.Analyzer, q compiler.Query, logger *slog.Logger) QueryResult {
	qr := QueryResult{Name: q.Name, Call: q.Call.String()}

	res, err := an.Analyze(q.Call)
	if err != nil {
		code := windowfn.Code(err)
		if code == "" {
			code = compiler.ErrCodeGeneric
		}
		qr.Error = &CLIError{Code: code, Message: err.Error()}
		logger.Info("query invalid", "query", q.Name, "code", code)
		return qr
	}

	qr.Call = res.Call.String()
	qr.Function = res.Function.Name()
	qr.RowType = res.RowType
	logger.Info("query valid", "query", q.Name, "function", qr.Function)
	return qr
}

// outputLoadErrors reports spec loading failures as a command error.
func outputLoadErrors(formatter *OutputFormatter, errs []error) error {
	code := compiler.ErrCodeGeneric
	var loadErr *compiler.LoadError
	if errors.As(errs[0], &loadErr) {
		code = loadErr.Code
	}

	if formatter.Format == "json" {
		details := make([]CLIError, len(errs))
		for i, err := range errs {
			details[i] = CLIError{Code: compiler.ErrCodeGeneric, Message: err.Error()}
			if errors.As(err, &loadErr) {
				details[i].Code = loadErr.Code
			}
		}
		if err := formatter.Error(code, fmt.Sprintf("%d spec error(s)", len(errs)), details); err != nil {
			return err
		}
	} else {
		for _, err := range errs {
			fmt.Fprintf(formatter.Writer, "Error: %v\n", err)
		}
	}
	return WrapExitError(ExitCommandError, "failed to load specs", errs[0])
}

func commandError(formatter *OutputFormatter, code string, err error) error {
	if outErr := formatter.Error(code, err.Error(), nil); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitCommandError, code, err)
}

func outputCheckJSON(cmd *cobra.Command, formatter *OutputFormatter, result CheckResult) error {
	response := CLIResponse{
		Status:  "ok",
		Data:    result,
		TraceID: formatter.TraceID,
	}
	if result.Invalid > 0 {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_CHECK_FAILED",
			Message: fmt.Sprintf("%d query(s) invalid", result.Invalid),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if result.Invalid > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d query(s) invalid", result.Invalid))
	}
	return nil
}

func outputCheckText(cmd *cobra.Command, result CheckResult) error {
	w := cmd.OutOrStdout()

	for _, q := range result.Queries {
		if q.Error != nil {
			fmt.Fprintf(w, "✗ %s\n", q.Name)
			fmt.Fprintf(w, "  %s\n", q.Error.Message)
			continue
		}
		fmt.Fprintf(w, "✓ %s: %s\n", q.Name, q.Function)
		fmt.Fprintf(w, "  %s\n", q.RowType)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Check Summary: %d valid, %d invalid, %d total\n", result.Valid, result.Invalid, result.Total)

	if result.Invalid > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d query(s) invalid", result.Invalid))
	}
	return nil
}
