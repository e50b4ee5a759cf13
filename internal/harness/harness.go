package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/roach88/wintvf/internal/analyzer"
	"github.com/roach88/wintvf/internal/catalog"
	"github.com/roach88/wintvf/internal/compiler"
	"github.com/roach88/wintvf/internal/namematch"
	"github.com/roach88/wintvf/internal/windowfn"
)

// Option configures a scenario run.
type Option func(*runConfig)

type runConfig struct {
	logger *slog.Logger
}

// WithLogger routes analyzer and harness logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *runConfig) {
		c.logger = logger
	}
}

// Run executes a scenario and returns the result.
//
// An error means the scenario could not be set up: specs that fail to
// compile, bad DDL, a case naming an unknown query. Expectation mismatches
// are reported in Result.Errors instead.
//
// Execution flow:
// 1. Compile every spec directory and merge their relations into a catalog
// 2. Load DDL tables through a scratch SQLite database
// 3. Analyze each case's query and compare with its expectation
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	cfg := &runConfig{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}
	for _, opt := range opts {
		opt(cfg)
	}
	logger := cfg.logger.With("scenario", scenario.Name)

	matcher := namematch.FromFlag(scenario.CaseSensitive)
	cat := catalog.New(matcher)
	queries := make(map[string]*compiler.Query)

	for _, dir := range scenario.Specs {
		specs, errs := compiler.LoadDir(dir, compiler.LoadModeCollectAll)
		if len(errs) > 0 {
			return nil, fmt.Errorf("failed to load specs from %s: %w", dir, errors.Join(errs...))
		}
		specCat, err := specs.Catalog(matcher)
		if err != nil {
			return nil, fmt.Errorf("specs %s: %w", dir, err)
		}
		if err := cat.Merge(specCat); err != nil {
			return nil, fmt.Errorf("specs %s: %w", dir, err)
		}
		for i := range specs.Queries {
			q := &specs.Queries[i]
			if _, dup := queries[q.Name]; dup {
				return nil, fmt.Errorf("specs %s: query %s already defined", dir, q.Name)
			}
			queries[q.Name] = q
		}
		logger.Debug("specs loaded", "dir", dir, "relations", len(specs.Relations), "queries", len(specs.Queries))
	}

	if len(scenario.Tables) > 0 {
		if err := loadTables(scenario.Tables, cat, matcher); err != nil {
			return nil, err
		}
		logger.Debug("tables loaded", "count", len(scenario.Tables))
	}

	an := analyzer.New(cat, matcher, analyzer.WithLogger(logger))
	result := NewResult()

	for i, c := range scenario.Cases {
		q, ok := queries[c.Query]
		if !ok {
			return nil, fmt.Errorf("cases[%d]: query %s not found in specs", i, c.Query)
		}

		res := runCase(an, q, c.Probe)
		result.Cases = append(result.Cases, res)

		for _, err := range checkCase(res, c.Expect) {
			result.AddError(err.Error())
		}
		logger.Info("case completed",
			"query", c.Query,
			"function", res.Function,
			"code", res.Code,
		)
	}

	return result, nil
}

func runCase(an *analyzer.Analyzer, q *compiler.Query, probe bool) CaseResult {
	res := CaseResult{Query: q.Name, Call: q.Call.String()}

	var (
		out *analyzer.Result
		err error
	)
	if probe {
		out, err = an.Probe(q.Call)
	} else {
		out, err = an.Analyze(q.Call)
	}
	if err != nil {
		res.Err = err
		res.Code = windowfn.Code(err)
		return res
	}

	res.Call = out.Call.String()
	res.Function = out.Function.Name()
	res.RowType = out.RowType
	return res
}

// loadTables runs ddl in a scratch SQLite database and merges its tables
// into cat.
func loadTables(ddl []string, cat *catalog.Catalog, matcher namematch.Matcher) error {
	dir, err := os.MkdirTemp("", "wintvf-scenario-")
	if err != nil {
		return fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(dir)

	ctx := context.Background()
	path := filepath.Join(dir, "tables.db")
	if err := catalog.ApplyDDL(ctx, path, ddl); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	tables, err := catalog.LoadSQLite(ctx, path, matcher)
	if err != nil {
		return err
	}
	return cat.Merge(tables)
}
