// Package sqlnode defines the call tree handed to the window function
// analyzer: a function call whose operands are table references,
// descriptors, interval literals and plain literals.
//
// Node is a sealed interface. Backends can switch exhaustively:
//
//	switch n := node.(type) {
//	case *TableRef:
//	case *Descriptor:
//	case *Identifier:
//	case *IntervalLiteral:
//	case *Literal:
//	case *Call:
//	}
//
// Nodes are immutable once built. Analysis passes borrow them and never
// modify them in place.
package sqlnode

import (
	"fmt"
	"strings"

	"github.com/roach88/wintvf/internal/sqltype"
)

// Pos is a source position. The zero value means "unknown".
type Pos struct {
	File   string
	Line   int
	Column int
}

// IsValid reports whether the position is known.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// NodeKind classifies a node syntactically.
type NodeKind int

const (
	KindTableRef NodeKind = iota
	KindDescriptor
	KindIdentifier
	KindIntervalLiteral
	KindLiteral
	KindCall
)

var kindNames = [...]string{
	KindTableRef:        "TABLE",
	KindDescriptor:      "DESCRIPTOR",
	KindIdentifier:      "IDENTIFIER",
	KindIntervalLiteral: "INTERVAL",
	KindLiteral:         "LITERAL",
	KindCall:            "CALL",
}

func (k NodeKind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// Node is a sealed interface; only types in this package implement it.
type Node interface {
	sqlNode() // Marker method - seals interface to this package

	Kind() NodeKind
	Position() Pos
	String() string
}

// TableRef is a TABLE operand: "TABLE Bid".
type TableRef struct {
	Name string
	Pos  Pos
}

func (*TableRef) sqlNode() {}
func (*TableRef) Kind() NodeKind { return KindTableRef }
func (t *TableRef) Position() Pos { return t.Pos }
func (t *TableRef) String() string { return "TABLE " + t.Name }

// Identifier is a simple (unqualified) name.
type Identifier struct {
	Name string
	Pos  Pos
}

func (*Identifier) sqlNode() {}
func (*Identifier) Kind() NodeKind { return KindIdentifier }
func (i *Identifier) Position() Pos { return i.Pos }
func (i *Identifier) String() string { return i.Name }

// Descriptor lists column names of a relation operand:
// "DESCRIPTOR(bidtime)". It carries no types of its own.
type Descriptor struct {
	Columns []*Identifier
	Pos     Pos
}

func (*Descriptor) sqlNode() {}
func (*Descriptor) Kind() NodeKind { return KindDescriptor }
func (d *Descriptor) Position() Pos { return d.Pos }

func (d *Descriptor) String() string {
	return "DESCRIPTOR(" + strings.Join(d.Names(), ", ") + ")"
}

// Names returns the descriptor's column names in order.
func (d *Descriptor) Names() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// IntervalLiteral is "INTERVAL '10' MINUTE". The value text is kept
// verbatim; it is not parsed here.
type IntervalLiteral struct {
	Value string
	Unit  sqltype.IntervalUnit
	Pos   Pos
}

func (*IntervalLiteral) sqlNode() {}
func (*IntervalLiteral) Kind() NodeKind { return KindIntervalLiteral }
func (l *IntervalLiteral) Position() Pos { return l.Pos }

func (l *IntervalLiteral) String() string {
	return fmt.Sprintf("INTERVAL '%s' %s", l.Value, l.Unit)
}

// Literal is any other literal, with the type it was written as.
type Literal struct {
	Value string
	Type  sqltype.TypeName
	Pos   Pos
}

func (*Literal) sqlNode() {}
func (*Literal) Kind() NodeKind { return KindLiteral }
func (l *Literal) Position() Pos { return l.Pos }

func (l *Literal) String() string {
	if l.Type == sqltype.TypeVarchar {
		return "'" + l.Value + "'"
	}
	return l.Value
}

// Call is a function call. ArgNames is empty for a positional call;
// for a call using "name => value" syntax it is parallel to Operands.
type Call struct {
	Name     string
	Operands []Node
	ArgNames []string
	Pos      Pos
}

func (*Call) sqlNode() {}
func (*Call) Kind() NodeKind { return KindCall }
func (c *Call) Position() Pos { return c.Pos }

// IsNamed reports whether the call uses named arguments.
func (c *Call) IsNamed() bool {
	return len(c.ArgNames) > 0
}

func (c *Call) String() string {
	args := make([]string, len(c.Operands))
	for i, op := range c.Operands {
		if c.IsNamed() && i < len(c.ArgNames) && c.ArgNames[i] != "" {
			args[i] = c.ArgNames[i] + " => " + op.String()
			continue
		}
		args[i] = op.String()
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}
