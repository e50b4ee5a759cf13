package compiler

import (
	"fmt"

	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/wintvf/internal/sqlnode"
)

// Spec compilation error codes (E100-E199).
const (
	ErrCodeRelationFields = "E101" // relation fields missing or malformed
	ErrCodeInvalidType    = "E102" // unknown column type
	ErrCodeInvalidKind    = "E103" // unknown struct kind
	ErrCodeQueryFunction  = "E104" // query function missing
	ErrCodeInvalidArg     = "E105" // malformed query argument
	ErrCodeInvalidUnit    = "E106" // unknown interval unit
	ErrCodeDuplicate      = "E107" // relation or query defined twice
)

// CompileError is a spec compilation error with its CUE source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ErrorCode maps the failing field to an error code.
func (e *CompileError) ErrorCode() string {
	return MapFieldToErrorCode(e.Field)
}

// MapFieldToErrorCode maps a compiler error field to an error code.
func MapFieldToErrorCode(field string) string {
	switch field {
	case "fields", "fields.name":
		return ErrCodeRelationFields
	case "type", "literal.type":
		return ErrCodeInvalidType
	case "kind":
		return ErrCodeInvalidKind
	case "function":
		return ErrCodeQueryFunction
	case "args", "args.name", "table", "descriptor", "identifier", "literal", "interval":
		return ErrCodeInvalidArg
	case "unit":
		return ErrCodeInvalidUnit
	case "relation", "query":
		return ErrCodeDuplicate
	default:
		return ErrCodeGeneric
	}
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}

// nodePos converts a CUE position into a node position.
func nodePos(p token.Pos) sqlnode.Pos {
	if !p.IsValid() {
		return sqlnode.Pos{}
	}
	return sqlnode.Pos{File: p.Filename(), Line: p.Line(), Column: p.Column()}
}
