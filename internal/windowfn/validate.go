package windowfn

import (
	"github.com/roach88/wintvf/internal/sqlnode"
	"github.com/roach88/wintvf/internal/sqltype"
)

// ValidateTableWithDescriptors checks that the heading operands have the
// form (ROW, DESCRIPTOR, DESCRIPTOR, ...), with descriptors DESCRIPTOR
// operands following the relation.
//
// Shape mismatches are returned as a failing CheckResult. A descriptor
// column that is not a field of operand 0 is returned as an
// *UnknownIdentifierError regardless of how the caller treats mismatches.
//
// The call must have at least 1+descriptors operands.
func ValidateTableWithDescriptors(b *Binding, descriptors int) (CheckResult, error) {
	row, ok := b.OperandType(0).(*sqltype.Row)
	if !ok {
		return fail(ReasonNotRelation, b, 0), nil
	}
	fieldNames := row.FieldNames()
	for i := 1; i < descriptors+1; i++ {
		operand := b.Operand(i)
		if operand.Kind() != sqlnode.KindDescriptor {
			return fail(ReasonNotDescriptor, b, i), nil
		}
		desc := operand.(*sqlnode.Descriptor)
		if err := validateColumnNames(b, fieldNames, desc.Columns); err != nil {
			return CheckResult{}, err
		}
	}
	return Pass(), nil
}

// ValidateTailingIntervals reports whether every operand from startPos
// (0-based) to the end is interval-typed.
func ValidateTailingIntervals(b *Binding, startPos int) bool {
	return firstNonInterval(b, startPos) < 0
}

// ArgumentMustBeScalar reports whether operand ordinal must be a scalar
// expression. Operand 0 is an explicit TABLE and never is.
func ArgumentMustBeScalar(ordinal int) bool {
	return ordinal != 0
}

func firstNonInterval(b *Binding, startPos int) int {
	for i := startPos; i < b.OperandCount(); i++ {
		if !sqltype.IsInterval(b.OperandType(i)) {
			return i
		}
	}
	return -1
}

func validateColumnNames(b *Binding, fieldNames []string, columns []*sqlnode.Identifier) error {
	matcher := b.Matcher()
	for _, col := range columns {
		if matcher.IndexOf(fieldNames, col.Name) < 0 {
			return &UnknownIdentifierError{Name: col.Name, Pos: col.Pos}
		}
	}
	return nil
}
