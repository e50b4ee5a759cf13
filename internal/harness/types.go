package harness

import (
	"github.com/roach88/wintvf/internal/sqltype"
)

// CaseResult is the outcome of analyzing one case's query.
type CaseResult struct {
	Query    string       `json:"query"`
	Call     string       `json:"call"`               // positional form when analysis got that far
	Function string       `json:"function,omitempty"` // function that accepted the call
	RowType  *sqltype.Row `json:"row_type,omitempty"`
	Code     string       `json:"error_code,omitempty"`
	Err      error        `json:"-"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every case met its expectation.
	Pass bool `json:"pass"`

	// Cases holds one entry per scenario case, in order.
	Cases []CaseResult `json:"cases"`

	// Errors contains expectation failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Cases:  []CaseResult{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
