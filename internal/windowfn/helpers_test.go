package windowfn

import (
	"github.com/roach88/wintvf/internal/namematch"
	"github.com/roach88/wintvf/internal/sqlnode"
	"github.com/roach88/wintvf/internal/sqltype"
)

// bidRow is (bidtime TIMESTAMP, price DECIMAL, item VARCHAR).
func bidRow() *sqltype.Row {
	return sqltype.NewBuilder().
		Add("bidtime", sqltype.NewScalar(sqltype.TypeTimestamp)).
		Add("price", sqltype.NewScalar(sqltype.TypeDecimal)).
		Add("item", sqltype.NewScalar(sqltype.TypeVarchar)).
		Build()
}

func table(name string) *sqlnode.TableRef {
	return &sqlnode.TableRef{Name: name, Pos: sqlnode.Pos{Line: 1, Column: 8}}
}

func descriptor(names ...string) *sqlnode.Descriptor {
	d := &sqlnode.Descriptor{Pos: sqlnode.Pos{Line: 1, Column: 20}}
	for i, n := range names {
		d.Columns = append(d.Columns, &sqlnode.Identifier{
			Name: n,
			Pos:  sqlnode.Pos{Line: 1, Column: 31 + i*10},
		})
	}
	return d
}

func interval(value string, unit sqltype.IntervalUnit) *sqlnode.IntervalLiteral {
	return &sqlnode.IntervalLiteral{Value: value, Unit: unit, Pos: sqlnode.Pos{Line: 1, Column: 50}}
}

func str(value string) *sqlnode.Literal {
	return &sqlnode.Literal{Value: value, Type: sqltype.TypeVarchar, Pos: sqlnode.Pos{Line: 1, Column: 70}}
}

// resolve assigns the types an analyzer would: table refs get row,
// literals their own type, descriptors nothing.
func resolve(row *sqltype.Row, operands []sqlnode.Node) TypeMap {
	types := TypeMap{}
	for _, op := range operands {
		switch n := op.(type) {
		case *sqlnode.TableRef:
			types[n] = row
		case *sqlnode.IntervalLiteral:
			types[n] = sqltype.NewInterval(n.Unit)
		case *sqlnode.Literal:
			types[n] = &sqltype.Scalar{Type: n.Type}
		}
	}
	return types
}

func bindWith(matcher namematch.Matcher, row *sqltype.Row, name string, operands ...sqlnode.Node) *Binding {
	call := &sqlnode.Call{Name: name, Operands: operands, Pos: sqlnode.Pos{Line: 1, Column: 1}}
	return NewBinding(call, resolve(row, operands), matcher)
}

func bind(row *sqltype.Row, operands ...sqlnode.Node) *Binding {
	return bindWith(namematch.CaseInsensitive(), row, "TUMBLE", operands...)
}
