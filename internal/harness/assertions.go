package harness

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/wintvf/internal/analyzer"
	"github.com/roach88/wintvf/internal/windowfn"
)

// AssertionError is returned when a case does not meet its expectation.
type AssertionError struct {
	Query    string
	What     string // which part of the expectation failed
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s %s\n", e.Query, e.What)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	return buf.String()
}

// checkCase compares a case result with its expectation and returns every
// mismatch.
func checkCase(res CaseResult, expect Expect) []error {
	if expect.wantsError() {
		return checkFailure(res, expect)
	}
	return checkSuccess(res, expect)
}

func checkSuccess(res CaseResult, expect Expect) []error {
	if res.Err != nil {
		return []error{&AssertionError{
			Query:    res.Query,
			What:     "outcome",
			Expected: "success",
			Actual:   res.Err.Error(),
		}}
	}

	var errs []error
	if expect.Function != "" && !strings.EqualFold(expect.Function, res.Function) {
		errs = append(errs, &AssertionError{
			Query:    res.Query,
			What:     "function",
			Expected: expect.Function,
			Actual:   res.Function,
		})
	}
	if expect.Kind != "" && expect.Kind != res.RowType.Kind.String() {
		errs = append(errs, &AssertionError{
			Query:    res.Query,
			What:     "kind",
			Expected: expect.Kind,
			Actual:   res.RowType.Kind.String(),
		})
	}
	if len(expect.Fields) > 0 {
		actual := make([]string, res.RowType.FieldCount())
		for i, f := range res.RowType.Fields {
			actual[i] = f.String()
		}
		if strings.Join(actual, ", ") != strings.Join(expect.Fields, ", ") {
			errs = append(errs, &AssertionError{
				Query:    res.Query,
				What:     "fields",
				Expected: "[" + strings.Join(expect.Fields, ", ") + "]",
				Actual:   "[" + strings.Join(actual, ", ") + "]",
			})
		}
	}
	return errs
}

func checkFailure(res CaseResult, expect Expect) []error {
	if res.Err == nil {
		return []error{&AssertionError{
			Query:    res.Query,
			What:     "outcome",
			Expected: "error " + expect.Error,
			Actual:   "success: " + res.RowType.String(),
		}}
	}

	var errs []error
	if res.Code != expect.Error {
		errs = append(errs, &AssertionError{
			Query:    res.Query,
			What:     "error code",
			Expected: expect.Error,
			Actual:   fmt.Sprintf("%s (%v)", res.Code, res.Err),
		})
	}
	if expect.Identifier != "" {
		if name := errorIdentifier(res.Err); name != expect.Identifier {
			errs = append(errs, &AssertionError{
				Query:    res.Query,
				What:     "identifier",
				Expected: expect.Identifier,
				Actual:   name,
			})
		}
	}
	if expect.Message != "" && !strings.Contains(res.Err.Error(), expect.Message) {
		errs = append(errs, &AssertionError{
			Query:    res.Query,
			What:     "message",
			Expected: "contains " + expect.Message,
			Actual:   res.Err.Error(),
		})
	}
	return errs
}

// errorIdentifier returns the name an error reports as unknown.
func errorIdentifier(err error) string {
	var ue *windowfn.UnknownIdentifierError
	if errors.As(err, &ue) {
		return ue.Name
	}
	var tnf *analyzer.TableNotFoundError
	if errors.As(err, &tnf) {
		return tnf.Name
	}
	var ae *windowfn.ArgumentError
	if errors.As(err, &ae) {
		return ae.Name
	}
	return ""
}
