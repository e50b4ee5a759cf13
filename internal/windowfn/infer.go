package windowfn

import "github.com/roach88/wintvf/internal/sqltype"

// Names of the columns every window function appends to its input.
const (
	ColumnWindowStart = "window_start"
	ColumnWindowEnd   = "window_end"
)

// InferRowType returns the row type of a window function call: the fields of
// operand 0 in order, followed by window_start and window_end, both
// nullable TIMESTAMP. The struct kind of operand 0 is kept.
//
// Operand 0 must already be known to be row-typed (see
// ValidateTableWithDescriptors). The appended names are not checked against
// existing fields; a relation that already has a window_start column ends
// up with two.
func InferRowType(b *Binding) *sqltype.Row {
	input := b.OperandType(0).(*sqltype.Row)
	timestamp := sqltype.NewScalar(sqltype.TypeTimestamp)
	return sqltype.NewBuilder().
		Kind(input.Kind).
		AddAll(input.Fields).
		Add(ColumnWindowStart, timestamp).
		Add(ColumnWindowEnd, timestamp).
		Build()
}
