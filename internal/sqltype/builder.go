package sqltype

// Builder assembles a row type field by field.
//
// Example:
//
//	row := NewBuilder().
//	    Kind(input.Kind).
//	    AddAll(input.Fields).
//	    Add("window_start", NewScalar(TypeTimestamp)).
//	    Build()
type Builder struct {
	kind   StructKind
	fields []Field
}

// NewBuilder returns an empty builder producing StructKindFullyQualified rows.
func NewBuilder() *Builder {
	return &Builder{kind: StructKindFullyQualified}
}

// Kind sets the struct kind of the row being built.
func (b *Builder) Kind(k StructKind) *Builder {
	b.kind = k
	return b
}

// Add appends a field.
func (b *Builder) Add(name string, t Type) *Builder {
	b.fields = append(b.fields, Field{Name: name, Type: t})
	return b
}

// AddAll appends copies of the given fields, keeping their order.
func (b *Builder) AddAll(fields []Field) *Builder {
	for _, f := range fields {
		b.Add(f.Name, f.Type)
	}
	return b
}

// Build returns the row. Field indexes are assigned by position.
// The builder may be reused; later additions do not affect returned rows.
func (b *Builder) Build() *Row {
	fields := make([]Field, len(b.fields))
	for i, f := range b.fields {
		f.Index = i
		fields[i] = f
	}
	return &Row{Kind: b.kind, Fields: fields}
}
