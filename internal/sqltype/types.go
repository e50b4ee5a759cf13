package sqltype

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Type is a sealed interface representing a resolved SQL type.
// Only *Scalar, *Interval and *Row implement it.
type Type interface {
	sqlType() // Sealed - only these types implement it

	// Name returns the SQL type name (ROW for rows, INTERVAL for intervals).
	Name() TypeName

	// Nullable reports whether values of this type may be NULL.
	Nullable() bool

	String() string
}

// TypeName enumerates the SQL type names known to the analyzer.
type TypeName string

const (
	TypeBoolean   TypeName = "BOOLEAN"
	TypeInteger   TypeName = "INTEGER"
	TypeBigInt    TypeName = "BIGINT"
	TypeDecimal   TypeName = "DECIMAL"
	TypeDouble    TypeName = "DOUBLE"
	TypeVarchar   TypeName = "VARCHAR"
	TypeDate      TypeName = "DATE"
	TypeTime      TypeName = "TIME"
	TypeTimestamp TypeName = "TIMESTAMP"
	TypeInterval  TypeName = "INTERVAL"
	TypeRow       TypeName = "ROW"
	TypeAny       TypeName = "ANY"
)

// Scalar is a non-composite, non-interval type such as INTEGER or TIMESTAMP.
type Scalar struct {
	Type TypeName
	Null bool
}

func (*Scalar) sqlType() {}

// Name implements Type.
func (s *Scalar) Name() TypeName { return s.Type }

// Nullable implements Type.
func (s *Scalar) Nullable() bool { return s.Null }

func (s *Scalar) String() string {
	if !s.Null {
		return string(s.Type) + " NOT NULL"
	}
	return string(s.Type)
}

// NewScalar returns a nullable scalar type.
func NewScalar(name TypeName) *Scalar {
	return &Scalar{Type: name, Null: true}
}

// Interval is a day-time or year-month interval type.
type Interval struct {
	Unit IntervalUnit
	Null bool
}

func (*Interval) sqlType() {}

// Name implements Type.
func (*Interval) Name() TypeName { return TypeInterval }

// Nullable implements Type.
func (i *Interval) Nullable() bool { return i.Null }

func (i *Interval) String() string {
	s := "INTERVAL " + string(i.Unit)
	if !i.Null {
		s += " NOT NULL"
	}
	return s
}

// NewInterval returns a non-null interval type, the type of an interval literal.
func NewInterval(unit IntervalUnit) *Interval {
	return &Interval{Unit: unit}
}

// IntervalUnit is the qualifier of an interval type.
type IntervalUnit string

const (
	UnitYear           IntervalUnit = "YEAR"
	UnitYearToMonth    IntervalUnit = "YEAR TO MONTH"
	UnitMonth          IntervalUnit = "MONTH"
	UnitDay            IntervalUnit = "DAY"
	UnitDayToHour      IntervalUnit = "DAY TO HOUR"
	UnitDayToMinute    IntervalUnit = "DAY TO MINUTE"
	UnitDayToSecond    IntervalUnit = "DAY TO SECOND"
	UnitHour           IntervalUnit = "HOUR"
	UnitHourToMinute   IntervalUnit = "HOUR TO MINUTE"
	UnitHourToSecond   IntervalUnit = "HOUR TO SECOND"
	UnitMinute         IntervalUnit = "MINUTE"
	UnitMinuteToSecond IntervalUnit = "MINUTE TO SECOND"
	UnitSecond         IntervalUnit = "SECOND"
)

var intervalUnits = []IntervalUnit{
	UnitYear, UnitYearToMonth, UnitMonth,
	UnitDay, UnitDayToHour, UnitDayToMinute, UnitDayToSecond,
	UnitHour, UnitHourToMinute, UnitHourToSecond,
	UnitMinute, UnitMinuteToSecond, UnitSecond,
}

// ParseIntervalUnit parses an interval qualifier such as "minute" or
// "DAY TO SECOND". Whitespace between words is collapsed.
func ParseIntervalUnit(s string) (IntervalUnit, error) {
	norm := strings.ToUpper(strings.Join(strings.Fields(s), " "))
	for _, u := range intervalUnits {
		if string(u) == norm {
			return u, nil
		}
	}
	return "", fmt.Errorf("unknown interval unit %q", s)
}

// StructKind describes how the fields of a row type are referenced:
// as a named record or as a positional tuple whose fields may be peeked.
type StructKind int

const (
	// StructKindNone is an ordinary positional tuple.
	StructKindNone StructKind = iota
	// StructKindFullyQualified is a named record; fields must be qualified.
	StructKindFullyQualified
	// StructKindPeekFields allows fields to be referenced without qualification.
	StructKindPeekFields
	// StructKindPeekFieldsDefault is like PeekFields and is the default in lookups.
	StructKindPeekFieldsDefault
	// StructKindPeekFieldsNoExpand is like PeekFields but is not expanded by "*".
	StructKindPeekFieldsNoExpand
)

var structKindNames = map[StructKind]string{
	StructKindNone:               "none",
	StructKindFullyQualified:     "fully_qualified",
	StructKindPeekFields:         "peek_fields",
	StructKindPeekFieldsDefault:  "peek_fields_default",
	StructKindPeekFieldsNoExpand: "peek_fields_no_expand",
}

func (k StructKind) String() string {
	if s, ok := structKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("StructKind(%d)", int(k))
}

// ParseStructKind parses the snake_case name of a struct kind.
func ParseStructKind(s string) (StructKind, error) {
	for k, name := range structKindNames {
		if strings.EqualFold(name, s) {
			return k, nil
		}
	}
	return StructKindNone, fmt.Errorf("unknown struct kind %q", s)
}

// Field is one named, typed, positioned member of a row type.
type Field struct {
	Name  string
	Index int
	Type  Type
}

func (f Field) String() string {
	return f.Name + ":" + f.Type.String()
}

// Row is an ordered row schema. Field names need not be unique.
//
// Rows are built with Builder and must not be modified afterwards.
type Row struct {
	Kind   StructKind
	Fields []Field
}

func (*Row) sqlType() {}

// Name implements Type.
func (*Row) Name() TypeName { return TypeRow }

// Nullable implements Type. Row types are never nullable.
func (*Row) Nullable() bool { return false }

// FieldCount returns the number of fields.
func (r *Row) FieldCount() int { return len(r.Fields) }

// Field returns the i-th field.
func (r *Row) Field(i int) Field { return r.Fields[i] }

// FieldNames returns the field names in order.
func (r *Row) FieldNames() []string {
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.Name
	}
	return names
}

func (r *Row) String() string {
	parts := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		parts[i] = f.Name + " " + f.Type.String()
	}
	return "ROW(" + strings.Join(parts, ", ") + ")"
}

type fieldJSON struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

// MarshalJSON renders the row as an ordered list of fields.
func (r *Row) MarshalJSON() ([]byte, error) {
	out := struct {
		Kind   string      `json:"kind"`
		Fields []fieldJSON `json:"fields"`
	}{
		Kind:   r.Kind.String(),
		Fields: make([]fieldJSON, len(r.Fields)),
	}
	for i, f := range r.Fields {
		out.Fields[i] = fieldJSON{
			Name:     f.Name,
			Type:     typeLabel(f.Type),
			Nullable: f.Type.Nullable(),
		}
	}
	return json.Marshal(out)
}

// typeLabel is the type rendered without its nullability suffix.
func typeLabel(t Type) string {
	switch typ := t.(type) {
	case *Interval:
		return "INTERVAL " + string(typ.Unit)
	case *Row:
		return typ.String()
	default:
		return string(t.Name())
	}
}

// Label renders a type without nullability, e.g. "TIMESTAMP" or
// "INTERVAL MINUTE".
func Label(t Type) string {
	return typeLabel(t)
}

// IsInterval reports whether t is an interval type.
func IsInterval(t Type) bool {
	_, ok := t.(*Interval)
	return ok
}

// IsRow reports whether t is a row type.
func IsRow(t Type) bool {
	_, ok := t.(*Row)
	return ok
}
