package windowfn

import (
	"github.com/roach88/wintvf/internal/namematch"
	"github.com/roach88/wintvf/internal/sqlnode"
	"github.com/roach88/wintvf/internal/sqltype"
)

// TypeResolver returns the type an earlier analysis phase resolved for a
// node, or nil if the node has no type of its own (descriptors, for one).
type TypeResolver interface {
	NodeType(n sqlnode.Node) sqltype.Type
}

// TypeMap is a TypeResolver backed by a map.
type TypeMap map[sqlnode.Node]sqltype.Type

// NodeType implements TypeResolver.
func (m TypeMap) NodeType(n sqlnode.Node) sqltype.Type {
	return m[n]
}

// Binding is a call together with its resolved operand types and the
// name matcher of the session that is analyzing it.
type Binding struct {
	call    *sqlnode.Call
	types   TypeResolver
	matcher namematch.Matcher
}

// NewBinding binds a call. The call and the resolver are borrowed, not copied.
func NewBinding(call *sqlnode.Call, types TypeResolver, matcher namematch.Matcher) *Binding {
	return &Binding{call: call, types: types, matcher: matcher}
}

// Call returns the bound call.
func (b *Binding) Call() *sqlnode.Call { return b.call }

// Matcher returns the identifier matcher.
func (b *Binding) Matcher() namematch.Matcher { return b.matcher }

// OperandCount returns the number of operands.
func (b *Binding) OperandCount() int { return len(b.call.Operands) }

// Operand returns operand i.
func (b *Binding) Operand(i int) sqlnode.Node { return b.call.Operands[i] }

// OperandType returns the resolved type of operand i, or nil.
func (b *Binding) OperandType(i int) sqltype.Type {
	return b.types.NodeType(b.call.Operands[i])
}

// operandLabels describes each operand for error messages: its type when
// it has one, otherwise its syntactic kind.
func (b *Binding) operandLabels() []string {
	labels := make([]string, b.OperandCount())
	for i := range labels {
		switch t := b.OperandType(i).(type) {
		case nil:
			labels[i] = "<" + b.Operand(i).Kind().String() + ">"
		case *sqltype.Row:
			labels[i] = "<ROW>"
		default:
			labels[i] = "<" + sqltype.Label(t) + ">"
		}
	}
	return labels
}
