// Package analyzer drives window function analysis for a single call.
//
// It plays the part of a SQL validator: it finds the function, resolves
// named arguments, assigns a type to each operand from the catalog, then
// hands the bound call to windowfn for checking and row-type inference.
package analyzer

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/wintvf/internal/catalog"
	"github.com/roach88/wintvf/internal/namematch"
	"github.com/roach88/wintvf/internal/sqlnode"
	"github.com/roach88/wintvf/internal/sqltype"
	"github.com/roach88/wintvf/internal/windowfn"
)

// ErrCodeTableNotFound is returned when a TABLE operand names a relation
// the catalog does not have.
const ErrCodeTableNotFound = "E205"

// TableNotFoundError reports an unknown relation.
type TableNotFoundError struct {
	Name string
	Pos  sqlnode.Pos
}

func (e *TableNotFoundError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("[%s] %s: Object '%s' not found", ErrCodeTableNotFound, e.Pos, e.Name)
	}
	return fmt.Sprintf("[%s] Object '%s' not found", ErrCodeTableNotFound, e.Name)
}

// ErrorCode returns ErrCodeTableNotFound.
func (e *TableNotFoundError) ErrorCode() string { return ErrCodeTableNotFound }

// Result is a successfully analyzed call.
type Result struct {
	Function windowfn.Function
	Call     *sqlnode.Call // positional form of the call
	RowType  *sqltype.Row
}

// Analyzer checks window function calls against a catalog.
type Analyzer struct {
	catalog *catalog.Catalog
	matcher namematch.Matcher
	logger  *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// New creates an Analyzer. A nil matcher falls back to the catalog's.
func New(cat *catalog.Catalog, matcher namematch.Matcher, opts ...Option) *Analyzer {
	if matcher == nil {
		matcher = cat.Matcher()
	}
	a := &Analyzer{
		catalog: cat,
		matcher: matcher,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze validates call against the function it names and infers the
// output row type.
//
// Errors are one of *windowfn.NoMatchError (unknown function),
// *windowfn.ArgumentError, *TableNotFoundError,
// *windowfn.UnknownIdentifierError or *windowfn.SignatureError.
func (a *Analyzer) Analyze(call *sqlnode.Call) (*Result, error) {
	fn, ok := windowfn.Lookup(call.Name)
	if !ok {
		a.logger.Warn("unknown function", "name", call.Name, "pos", call.Pos.String())
		return nil, &windowfn.NoMatchError{Name: call.Name, OperandCount: len(call.Operands)}
	}

	b, err := a.bind(fn, call)
	if err != nil {
		return nil, err
	}

	if err := windowfn.Check(fn, b); err != nil {
		a.logger.Warn("operand check failed",
			"function", fn.Name(),
			"code", windowfn.Code(err),
			"error", err,
		)
		return nil, err
	}

	row := fn.InferRowType(b)
	a.logger.Debug("row type inferred",
		"function", fn.Name(),
		"fields", row.FieldCount(),
	)
	return &Result{Function: fn, Call: b.Call(), RowType: row}, nil
}

// Probe finds the first window function that accepts call, ignoring the
// name the call was written with. Shape mismatches are not reported; only
// an unknown descriptor column or an unknown table stops the search.
func (a *Analyzer) Probe(call *sqlnode.Call) (*Result, error) {
	if call.IsNamed() {
		return nil, &windowfn.ArgumentError{
			Function: call.Name,
			Pos:      call.Pos,
			Message:  "named arguments require a known function",
		}
	}

	types, err := a.resolveTypes(call)
	if err != nil {
		return nil, err
	}
	b := windowfn.NewBinding(call, types, a.matcher)

	fn, err := windowfn.Resolve(windowfn.Functions(), b)
	if err != nil {
		a.logger.Debug("probe failed", "call", call.Name, "error", err)
		return nil, err
	}
	a.logger.Debug("probe matched", "call", call.Name, "function", fn.Name())
	return &Result{Function: fn, Call: call, RowType: fn.InferRowType(b)}, nil
}

// bind permutes named arguments and resolves operand types.
func (a *Analyzer) bind(fn windowfn.Function, call *sqlnode.Call) (*windowfn.Binding, error) {
	positional, err := windowfn.Permute(fn, call)
	if err != nil {
		a.logger.Warn("named arguments rejected", "function", fn.Name(), "error", err)
		return nil, err
	}
	if positional != call {
		a.logger.Debug("named arguments permuted", "function", fn.Name(), "call", positional.String())
	}

	types, err := a.resolveTypes(positional)
	if err != nil {
		return nil, err
	}
	return windowfn.NewBinding(positional, types, a.matcher), nil
}

// resolveTypes assigns each operand the type the checker expects to see.
// Descriptors and bare identifiers have no type of their own.
func (a *Analyzer) resolveTypes(call *sqlnode.Call) (windowfn.TypeMap, error) {
	types := make(windowfn.TypeMap, len(call.Operands))
	for _, op := range call.Operands {
		switch n := op.(type) {
		case *sqlnode.TableRef:
			row, ok := a.catalog.Table(n.Name)
			if !ok {
				a.logger.Warn("table not found", "name", n.Name, "pos", n.Pos.String())
				return nil, &TableNotFoundError{Name: n.Name, Pos: n.Pos}
			}
			types[n] = row
		case *sqlnode.IntervalLiteral:
			types[n] = sqltype.NewInterval(n.Unit)
		case *sqlnode.Literal:
			types[n] = &sqltype.Scalar{Type: n.Type}
		}
	}
	a.logger.Debug("operand types resolved", "call", call.Name, "operands", len(call.Operands))
	return types, nil
}
