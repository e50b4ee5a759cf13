package windowfn

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/wintvf/internal/sqlnode"
)

// Error codes for window function analysis (E200-E299).
const (
	ErrCodeUnknownIdentifier = "E201" // descriptor names a column the relation lacks
	ErrCodeSignature         = "E202" // operands do not fit the function's signature
	ErrCodeNoMatch           = "E203" // no function/overload accepts the call
	ErrCodeArgument          = "E204" // malformed named arguments
)

// UnknownIdentifierError reports a descriptor column that does not exist in
// the relation operand. It is never downgraded to a soft check failure.
type UnknownIdentifierError struct {
	Name string
	Pos  sqlnode.Pos
}

func (e *UnknownIdentifierError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("[%s] %s: Column '%s' not found in any table", ErrCodeUnknownIdentifier, e.Pos, e.Name)
	}
	return fmt.Sprintf("[%s] Column '%s' not found in any table", ErrCodeUnknownIdentifier, e.Name)
}

// ErrorCode returns ErrCodeUnknownIdentifier.
func (e *UnknownIdentifierError) ErrorCode() string { return ErrCodeUnknownIdentifier }

// SignatureError reports that a call to a known function does not match
// any of its allowed forms.
type SignatureError struct {
	Function   string
	ArgTypes   []string // operand descriptions, e.g. "<ROW>", "<DESCRIPTOR>"
	Reason     Reason
	Position   int   // operand index, -1 if not operand-specific
	Param      Param // parameter at Position, if known
	Pos        sqlnode.Pos
	Signatures []string
}

func (e *SignatureError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] ", ErrCodeSignature)
	if e.Pos.IsValid() {
		fmt.Fprintf(&sb, "%s: ", e.Pos)
	}
	fmt.Fprintf(&sb, "Cannot apply '%s' to arguments of type '%s(%s)'",
		e.Function, e.Function, strings.Join(e.ArgTypes, ", "))
	if detail := e.detail(); detail != "" {
		sb.WriteString(": ")
		sb.WriteString(detail)
	}
	fmt.Fprintf(&sb, ". Supported form(s): '%s'", strings.Join(e.Signatures, "', '"))
	return sb.String()
}

func (e *SignatureError) detail() string {
	switch e.Reason {
	case ReasonOperandCount:
		return "invalid number of arguments"
	case ReasonNotRelation:
		return fmt.Sprintf("parameter %s must be a TABLE", e.paramName())
	case ReasonNotDescriptor:
		return fmt.Sprintf("parameter %s must be a DESCRIPTOR", e.paramName())
	case ReasonNotInterval:
		return fmt.Sprintf("parameter %s must be an INTERVAL", e.paramName())
	default:
		return ""
	}
}

func (e *SignatureError) paramName() string {
	if e.Param != "" {
		return string(e.Param)
	}
	return fmt.Sprintf("#%d", e.Position)
}

// ErrorCode returns ErrCodeSignature.
func (e *SignatureError) ErrorCode() string { return ErrCodeSignature }

// NoMatchError reports that no candidate function accepts the call.
type NoMatchError struct {
	Name         string
	OperandCount int
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("[%s] No match found for function signature %s with %d argument(s)",
		ErrCodeNoMatch, e.Name, e.OperandCount)
}

// ErrorCode returns ErrCodeNoMatch.
func (e *NoMatchError) ErrorCode() string { return ErrCodeNoMatch }

// ArgumentError reports a malformed named-argument list.
type ArgumentError struct {
	Function string
	Name     string // offending argument name, if any
	Pos      sqlnode.Pos
	Message  string
}

func (e *ArgumentError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("[%s] %s: %s: %s", ErrCodeArgument, e.Pos, e.Function, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", ErrCodeArgument, e.Function, e.Message)
}

// ErrorCode returns ErrCodeArgument.
func (e *ArgumentError) ErrorCode() string { return ErrCodeArgument }

// Code returns the error code carried by err or by an error it wraps,
// or "" if there is none.
func Code(err error) string {
	var coded interface{ ErrorCode() string }
	if errors.As(err, &coded) {
		return coded.ErrorCode()
	}
	return ""
}

// IsUnknownIdentifier returns true if err is or wraps an
// *UnknownIdentifierError.
func IsUnknownIdentifier(err error) bool {
	var ue *UnknownIdentifierError
	return errors.As(err, &ue)
}

// newSignatureError converts a failed check into an error for fn.
func newSignatureError(fn Function, b *Binding, res CheckResult) *SignatureError {
	e := &SignatureError{
		Function:   fn.Name(),
		ArgTypes:   b.operandLabels(),
		Reason:     res.Reason,
		Position:   res.Position,
		Pos:        res.Pos,
		Signatures: fn.Signatures(),
	}
	if res.Position >= 0 {
		params := fn.paramsFor(b.OperandCount())
		if res.Position < len(params) {
			e.Param = params[res.Position]
		}
	}
	if !e.Pos.IsValid() {
		e.Pos = b.Call().Pos
	}
	return e
}
