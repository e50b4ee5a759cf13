package windowfn

import (
	"fmt"

	"github.com/roach88/wintvf/internal/namematch"
	"github.com/roach88/wintvf/internal/sqltype"
)

// Kind identifies one of the window functions.
type Kind int

const (
	KindTumble Kind = iota
	KindHop
	KindSession
)

func (k Kind) String() string {
	switch k {
	case KindTumble:
		return "TUMBLE"
	case KindHop:
		return "HOP"
	case KindSession:
		return "SESSION"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Function is a table-valued window function.
//
// This is a sealed interface - only Tumble, Hop and Session implement it.
type Function interface {
	// Name returns the SQL name, e.g. "TUMBLE".
	Name() string

	Kind() Kind

	// Params returns every parameter in positional order, optional ones
	// included.
	Params() []Param

	// OperandCountRange returns the inclusive bounds on the operand count.
	OperandCountRange() (min, max int)

	// Signatures returns the allowed forms, for error messages.
	Signatures() []string

	// CheckOperands validates the operands of a positional call.
	CheckOperands(b *Binding) (CheckResult, error)

	// ArgumentMustBeScalar reports whether operand ordinal must be scalar.
	ArgumentMustBeScalar(ordinal int) bool

	// InferRowType returns the call's row type. CheckOperands must have passed.
	InferRowType(b *Binding) *sqltype.Row

	// paramsFor returns the parameters bound by a positional call with n
	// operands. Seals the interface.
	paramsFor(n int) []Param
}

// base carries what every window function shares.
type base struct {
	kind       Kind
	params     []Param
	minArgs    int
	signatures []string
}

func (f *base) Name() string { return f.kind.String() }
func (f *base) Kind() Kind { return f.kind }
func (f *base) Signatures() []string { return append([]string(nil), f.signatures...) }

func (f *base) Params() []Param {
	return append([]Param(nil), f.params...)
}

func (f *base) OperandCountRange() (int, int) {
	return f.minArgs, len(f.params)
}

func (f *base) ArgumentMustBeScalar(ordinal int) bool {
	return ArgumentMustBeScalar(ordinal)
}

func (f *base) InferRowType(b *Binding) *sqltype.Row {
	return InferRowType(b)
}

// checkCount fails with ReasonOperandCount when n is out of range.
func (f *base) checkCount(b *Binding) (CheckResult, bool) {
	n := b.OperandCount()
	if n < f.minArgs || n > len(f.params) {
		return fail(ReasonOperandCount, b, -1), false
	}
	return Pass(), true
}

// positional returns the first n parameters.
func (f *base) positional(n int) []Param {
	if n > len(f.params) {
		n = len(f.params)
	}
	return f.params[:n]
}

// checkShape runs the shared skeleton: relation, descriptors, then intervals.
func checkShape(b *Binding, descriptors int) (CheckResult, error) {
	res, err := ValidateTableWithDescriptors(b, descriptors)
	if err != nil || !res.OK() {
		return res, err
	}
	start := descriptors + 1
	if !ValidateTailingIntervals(b, start) {
		return fail(ReasonNotInterval, b, firstNonInterval(b, start)), nil
	}
	return Pass(), nil
}

// tumble is TUMBLE(DATA, TIMECOL, SIZE [, OFFSET]).
type tumble struct{ base }

func (f *tumble) CheckOperands(b *Binding) (CheckResult, error) {
	if res, ok := f.checkCount(b); !ok {
		return res, nil
	}
	return checkShape(b, 1)
}

func (f *tumble) paramsFor(n int) []Param { return f.positional(n) }

// hop is HOP(DATA, TIMECOL, SLIDE, SIZE [, OFFSET]).
type hop struct{ base }

func (f *hop) CheckOperands(b *Binding) (CheckResult, error) {
	if res, ok := f.checkCount(b); !ok {
		return res, nil
	}
	return checkShape(b, 1)
}

func (f *hop) paramsFor(n int) []Param { return f.positional(n) }

// session is SESSION(DATA, TIMECOL, [KEY,] SIZE). KEY sits between two
// required parameters, so a 3-operand call binds SIZE to operand 2.
type session struct{ base }

func (f *session) CheckOperands(b *Binding) (CheckResult, error) {
	if res, ok := f.checkCount(b); !ok {
		return res, nil
	}
	if b.OperandCount() == len(f.params) {
		return checkShape(b, 2)
	}
	return checkShape(b, 1)
}

func (f *session) paramsFor(n int) []Param {
	if n >= len(f.params) {
		return f.Params()
	}
	return []Param{ParamData, ParamTimecol, ParamSize}
}

// The window functions.
var (
	Tumble Function = &tumble{base{
		kind:    KindTumble,
		params:  []Param{ParamData, ParamTimecol, ParamSize, ParamOffset},
		minArgs: 3,
		signatures: []string{
			"TUMBLE(TABLE table_name, DESCRIPTOR(timecol), datetime interval[, datetime interval])",
		},
	}}

	Hop Function = &hop{base{
		kind:    KindHop,
		params:  []Param{ParamData, ParamTimecol, ParamSlide, ParamSize, ParamOffset},
		minArgs: 4,
		signatures: []string{
			"HOP(TABLE table_name, DESCRIPTOR(timecol), datetime interval, datetime interval[, datetime interval])",
		},
	}}

	Session Function = &session{base{
		kind:    KindSession,
		params:  []Param{ParamData, ParamTimecol, ParamKey, ParamSize},
		minArgs: 3,
		signatures: []string{
			"SESSION(TABLE table_name, DESCRIPTOR(timecol), datetime interval)",
			"SESSION(TABLE table_name, DESCRIPTOR(timecol), DESCRIPTOR(key), datetime interval)",
		},
	}}
)

// Functions returns all window functions in a fixed order.
func Functions() []Function {
	return []Function{Tumble, Hop, Session}
}

// Lookup finds a window function by name, ignoring case.
func Lookup(name string) (Function, bool) {
	m := namematch.CaseInsensitive()
	for _, fn := range Functions() {
		if m.Matches(fn.Name(), name) {
			return fn, true
		}
	}
	return nil, false
}
