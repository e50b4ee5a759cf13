package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"cuelang.org/go/cue"

	"github.com/roach88/wintvf/internal/sqlnode"
	"github.com/roach88/wintvf/internal/sqltype"
)

// Query is a named window function call from a spec file.
type Query struct {
	Name string
	Call *sqlnode.Call
}

// argKinds are the labels that decide what an argument is. Exactly one
// must be present.
var argKinds = []string{"table", "descriptor", "interval", "literal", "identifier"}

// argLabels are every label an argument struct may carry.
var argLabels = map[string]bool{
	"table": true, "descriptor": true, "interval": true, "unit": true,
	"literal": true, "type": true, "identifier": true, "name": true,
}

// CompileQuery parses a CUE query struct into a call.
//
//	query: q1: {
//		function: "TUMBLE"
//		args: [
//			{table: "Bid"},
//			{descriptor: ["bidtime"]},
//			{interval: "10", unit: "MINUTE"},
//		]
//	}
//
// Every argument may carry a name ("name: \"SIZE\"") to make the call use
// named arguments. Node positions are the CUE source positions.
func CompileQuery(v cue.Value) (*Query, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	q := &Query{Name: labelOf(v)}

	fnVal := v.LookupPath(cue.ParsePath("function"))
	if !fnVal.Exists() {
		return nil, &CompileError{
			Field:   "function",
			Message: fmt.Sprintf("query %s: function is required", q.Name),
			Pos:     v.Pos(),
		}
	}
	fn, err := fnVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	if strings.TrimSpace(fn) == "" {
		return nil, &CompileError{Field: "function", Message: "function must not be empty", Pos: fnVal.Pos()}
	}
	call := &sqlnode.Call{Name: fn, Pos: nodePos(fnVal.Pos())}

	argsVal := v.LookupPath(cue.ParsePath("args"))
	if argsVal.Exists() {
		iter, err := argsVal.List()
		if err != nil {
			return nil, &CompileError{Field: "args", Message: "args must be a list", Pos: argsVal.Pos()}
		}
		var names []string
		named := false
		for iter.Next() {
			node, name, err := parseArg(iter.Value())
			if err != nil {
				return nil, err
			}
			call.Operands = append(call.Operands, node)
			names = append(names, name)
			named = named || name != ""
		}
		if named {
			call.ArgNames = names
		}
	}

	q.Call = call
	return q, nil
}

// parseArg compiles one argument and returns it with its name, if any.
func parseArg(v cue.Value) (sqlnode.Node, string, error) {
	fields, err := v.Fields()
	if err != nil {
		return nil, "", &CompileError{Field: "args", Message: "argument must be a struct", Pos: v.Pos()}
	}
	for fields.Next() {
		if label := fields.Selector().String(); !argLabels[label] {
			return nil, "", &CompileError{
				Field:   "args",
				Message: fmt.Sprintf("unknown argument field %q", label),
				Pos:     fields.Value().Pos(),
			}
		}
	}

	var kind string
	for _, k := range argKinds {
		if v.LookupPath(cue.ParsePath(k)).Exists() {
			if kind != "" {
				return nil, "", &CompileError{
					Field:   "args",
					Message: fmt.Sprintf("argument has both %s and %s", kind, k),
					Pos:     v.Pos(),
				}
			}
			kind = k
		}
	}

	var name string
	if nameVal := v.LookupPath(cue.ParsePath("name")); nameVal.Exists() {
		name, err = nameVal.String()
		if err != nil {
			return nil, "", formatCUEError(err)
		}
		if name == "" {
			return nil, "", &CompileError{Field: "args.name", Message: "argument name must not be empty", Pos: nameVal.Pos()}
		}
	}

	var node sqlnode.Node
	switch kind {
	case "table":
		node, err = parseTable(v.LookupPath(cue.ParsePath("table")))
	case "descriptor":
		node, err = parseDescriptor(v.LookupPath(cue.ParsePath("descriptor")))
	case "interval":
		node, err = parseInterval(v)
	case "literal":
		node, err = parseLiteral(v)
	case "identifier":
		node, err = parseIdentifier(v.LookupPath(cue.ParsePath("identifier")))
	default:
		return nil, "", &CompileError{
			Field:   "args",
			Message: "argument must have one of " + strings.Join(argKinds, ", "),
			Pos:     v.Pos(),
		}
	}
	if err != nil {
		return nil, "", err
	}
	return node, name, nil
}

func parseTable(v cue.Value) (sqlnode.Node, error) {
	s, err := v.String()
	if err != nil {
		return nil, &CompileError{Field: "table", Message: "table must be a string", Pos: v.Pos()}
	}
	if s == "" {
		return nil, &CompileError{Field: "table", Message: "table name must not be empty", Pos: v.Pos()}
	}
	return &sqlnode.TableRef{Name: s, Pos: nodePos(v.Pos())}, nil
}

func parseIdentifier(v cue.Value) (sqlnode.Node, error) {
	s, err := v.String()
	if err != nil || s == "" {
		return nil, &CompileError{Field: "identifier", Message: "identifier must be a non-empty string", Pos: v.Pos()}
	}
	return &sqlnode.Identifier{Name: s, Pos: nodePos(v.Pos())}, nil
}

func parseDescriptor(v cue.Value) (sqlnode.Node, error) {
	iter, err := v.List()
	if err != nil {
		return nil, &CompileError{Field: "descriptor", Message: "descriptor must be a list of column names", Pos: v.Pos()}
	}
	d := &sqlnode.Descriptor{Pos: nodePos(v.Pos())}
	for iter.Next() {
		col := iter.Value()
		s, err := col.String()
		if err != nil || s == "" {
			return nil, &CompileError{Field: "descriptor", Message: "descriptor columns must be non-empty strings", Pos: col.Pos()}
		}
		d.Columns = append(d.Columns, &sqlnode.Identifier{Name: s, Pos: nodePos(col.Pos())})
	}
	if len(d.Columns) == 0 {
		return nil, &CompileError{Field: "descriptor", Message: "descriptor must name at least one column", Pos: v.Pos()}
	}
	return d, nil
}

func parseInterval(v cue.Value) (sqlnode.Node, error) {
	valueVal := v.LookupPath(cue.ParsePath("interval"))
	value, err := scalarText(valueVal)
	if err != nil {
		return nil, &CompileError{Field: "interval", Message: "interval must be a string or number", Pos: valueVal.Pos()}
	}

	unitVal := v.LookupPath(cue.ParsePath("unit"))
	if !unitVal.Exists() {
		return nil, &CompileError{Field: "unit", Message: "interval unit is required", Pos: v.Pos()}
	}
	s, err := unitVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	unit, err := sqltype.ParseIntervalUnit(s)
	if err != nil {
		return nil, &CompileError{Field: "unit", Message: err.Error(), Pos: unitVal.Pos()}
	}
	return &sqlnode.IntervalLiteral{Value: value, Unit: unit, Pos: nodePos(valueVal.Pos())}, nil
}

func parseLiteral(v cue.Value) (sqlnode.Node, error) {
	litVal := v.LookupPath(cue.ParsePath("literal"))
	value, err := scalarText(litVal)
	if err != nil {
		return nil, &CompileError{Field: "literal", Message: "literal must be a string, number or bool", Pos: litVal.Pos()}
	}

	var typ sqltype.TypeName
	if typeVal := v.LookupPath(cue.ParsePath("type")); typeVal.Exists() {
		s, err := typeVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		t, err := sqltype.Parse(s)
		if err != nil {
			return nil, &CompileError{Field: "literal.type", Message: err.Error(), Pos: typeVal.Pos()}
		}
		// A Literal carries only a type name, which would drop the unit.
		if iv, ok := t.(*sqltype.Interval); ok {
			return &sqlnode.IntervalLiteral{Value: value, Unit: iv.Unit, Pos: nodePos(litVal.Pos())}, nil
		}
		typ = t.Name()
	} else {
		typ = defaultLiteralType(litVal.Kind())
	}
	return &sqlnode.Literal{Value: value, Type: typ, Pos: nodePos(litVal.Pos())}, nil
}

func defaultLiteralType(k cue.Kind) sqltype.TypeName {
	switch k {
	case cue.IntKind:
		return sqltype.TypeInteger
	case cue.FloatKind, cue.NumberKind:
		return sqltype.TypeDecimal
	case cue.BoolKind:
		return sqltype.TypeBoolean
	default:
		return sqltype.TypeVarchar
	}
}

// scalarText renders a concrete CUE scalar as literal text.
func scalarText(v cue.Value) (string, error) {
	switch v.Kind() {
	case cue.StringKind:
		return v.String()
	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(n, 10), nil
	case cue.FloatKind, cue.NumberKind:
		f, err := v.Float64()
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	default:
		return "", fmt.Errorf("unsupported literal kind %s", v.Kind())
	}
}
