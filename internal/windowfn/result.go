package windowfn

import "github.com/roach88/wintvf/internal/sqlnode"

// Reason identifies which structural rule a call violated.
type Reason int

const (
	// ReasonNone means the check passed.
	ReasonNone Reason = iota

	// ReasonOperandCount means the call has too few or too many operands.
	ReasonOperandCount

	// ReasonNotRelation means operand 0 is not row-typed.
	ReasonNotRelation

	// ReasonNotDescriptor means an operand expected to be a DESCRIPTOR is not one.
	ReasonNotDescriptor

	// ReasonNotInterval means a tailing operand is not interval-typed.
	ReasonNotInterval
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonOperandCount:
		return "operand-count"
	case ReasonNotRelation:
		return "not-a-relation"
	case ReasonNotDescriptor:
		return "not-a-descriptor"
	case ReasonNotInterval:
		return "not-an-interval"
	default:
		return "unknown"
	}
}

// CheckResult is the outcome of a structural check: either a pass, or the
// violated rule and the operand that violated it.
//
// Position is the 0-based operand index, or -1 when the failure is not
// tied to one operand (operand count).
type CheckResult struct {
	Reason   Reason
	Position int
	Pos      sqlnode.Pos
}

// Pass returns a passing result.
func Pass() CheckResult {
	return CheckResult{Reason: ReasonNone, Position: -1}
}

// OK reports whether the check passed.
func (r CheckResult) OK() bool {
	return r.Reason == ReasonNone
}

func fail(reason Reason, b *Binding, position int) CheckResult {
	res := CheckResult{Reason: reason, Position: position}
	if position >= 0 && position < b.OperandCount() {
		res.Pos = b.Operand(position).Position()
	}
	return res
}
