package compiler

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/roach88/wintvf/internal/sqltype"
)

// CompileRelation parses a CUE relation struct into its name and row type.
//
//	relation: Bid: {
//		kind: "fully_qualified" // optional
//		fields: [{name: "bidtime", type: "timestamp"}, ...]
//	}
//
// Types use sqltype.Parse syntax ("varchar(20)", "timestamp not null").
func CompileRelation(v cue.Value) (string, *sqltype.Row, error) {
	if err := v.Err(); err != nil {
		return "", nil, formatCUEError(err)
	}

	name := labelOf(v)
	builder := sqltype.NewBuilder()

	kindVal := v.LookupPath(cue.ParsePath("kind"))
	if kindVal.Exists() {
		s, err := kindVal.String()
		if err != nil {
			return "", nil, formatCUEError(err)
		}
		kind, err := sqltype.ParseStructKind(s)
		if err != nil {
			return "", nil, &CompileError{Field: "kind", Message: err.Error(), Pos: kindVal.Pos()}
		}
		builder.Kind(kind)
	}

	fieldsVal := v.LookupPath(cue.ParsePath("fields"))
	if !fieldsVal.Exists() {
		return "", nil, &CompileError{
			Field:   "fields",
			Message: fmt.Sprintf("relation %s: fields is required", name),
			Pos:     v.Pos(),
		}
	}
	iter, err := fieldsVal.List()
	if err != nil {
		return "", nil, &CompileError{
			Field:   "fields",
			Message: fmt.Sprintf("relation %s: fields must be a list", name),
			Pos:     fieldsVal.Pos(),
		}
	}

	for iter.Next() {
		fieldName, typ, err := parseField(iter.Value())
		if err != nil {
			return "", nil, err
		}
		builder.Add(fieldName, typ)
	}

	return name, builder.Build(), nil
}

func parseField(v cue.Value) (string, sqltype.Type, error) {
	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return "", nil, &CompileError{Field: "fields.name", Message: "field name is required", Pos: v.Pos()}
	}
	name, err := nameVal.String()
	if err != nil {
		return "", nil, formatCUEError(err)
	}
	if name == "" {
		return "", nil, &CompileError{Field: "fields.name", Message: "field name must not be empty", Pos: nameVal.Pos()}
	}

	typeVal := v.LookupPath(cue.ParsePath("type"))
	if !typeVal.Exists() {
		return "", nil, &CompileError{
			Field:   "type",
			Message: fmt.Sprintf("field %s: type is required", name),
			Pos:     v.Pos(),
		}
	}
	s, err := typeVal.String()
	if err != nil {
		return "", nil, formatCUEError(err)
	}
	typ, err := sqltype.Parse(s)
	if err != nil {
		return "", nil, &CompileError{
			Field:   "type",
			Message: fmt.Sprintf("field %s: %v", name, err),
			Pos:     typeVal.Pos(),
		}
	}
	return name, typ, nil
}

// labelOf returns the last path selector of v, its struct label.
func labelOf(v cue.Value) string {
	labels := v.Path().Selectors()
	if len(labels) == 0 {
		return ""
	}
	return labels[len(labels)-1].String()
}
