package sqltype

import (
	"fmt"
	"strings"
)

// typeAliases maps declared type names to the analyzer's type names.
var typeAliases = map[string]TypeName{
	"bool":              TypeBoolean,
	"boolean":           TypeBoolean,
	"int":               TypeInteger,
	"integer":           TypeInteger,
	"smallint":          TypeInteger,
	"tinyint":           TypeInteger,
	"bigint":            TypeBigInt,
	"decimal":           TypeDecimal,
	"numeric":           TypeDecimal,
	"double":            TypeDouble,
	"double precision":  TypeDouble,
	"float":             TypeDouble,
	"real":              TypeDouble,
	"varchar":           TypeVarchar,
	"char":              TypeVarchar,
	"character":         TypeVarchar,
	"character varying": TypeVarchar,
	"string":            TypeVarchar,
	"text":              TypeVarchar,
	"date":              TypeDate,
	"time":              TypeTime,
	"timestamp":         TypeTimestamp,
	"datetime":          TypeTimestamp,
	"any":               TypeAny,
}

// Parse parses a type string such as "int", "varchar(20) not null",
// "timestamp" or "interval day to second".
func Parse(s string) (Type, error) {
	text := strings.ToLower(strings.Join(strings.Fields(s), " "))
	if text == "" {
		return nil, fmt.Errorf("empty type")
	}

	nullable := true
	if rest, ok := strings.CutSuffix(text, " not null"); ok {
		nullable = false
		text = rest
	}

	if rest, ok := strings.CutPrefix(text, "interval"); ok {
		unit, err := ParseIntervalUnit(rest)
		if err != nil {
			return nil, fmt.Errorf("type %q: %w", s, err)
		}
		return &Interval{Unit: unit, Null: nullable}, nil
	}

	// Drop precision/length: varchar(20), decimal(10, 2), timestamp(3).
	if i := strings.IndexByte(text, '('); i >= 0 {
		if !strings.HasSuffix(text, ")") {
			return nil, fmt.Errorf("type %q: unbalanced parenthesis", s)
		}
		text = strings.TrimSpace(text[:i])
	}

	name, ok := typeAliases[text]
	if !ok {
		return nil, fmt.Errorf("unknown type %q", s)
	}
	return &Scalar{Type: name, Null: nullable}, nil
}

// MustParse is like Parse but panics on error. For tests and static tables.
func MustParse(s string) Type {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}
