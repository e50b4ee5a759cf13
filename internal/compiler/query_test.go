package compiler

import (
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wintvf/internal/sqlnode"
	"github.com/roach88/wintvf/internal/sqltype"
)

func compileQuery(t *testing.T, src string) (*Query, error) {
	t.Helper()
	v := cuecontext.New().CompileString(src)
	require.NoError(t, v.Err())
	return CompileQuery(v.LookupPath(cue.ParsePath("query.q")))
}

func TestCompileQueryTumble(t *testing.T) {
	q, err := compileQuery(t, `
query: q: {
	function: "TUMBLE"
	args: [
		{table: "Bid"},
		{descriptor: ["bidtime"]},
		{interval: "10", unit: "minute"},
	]
}
`)

	require.NoError(t, err)
	assert.Equal(t, "q", q.Name)
	assert.Equal(t, "TUMBLE", q.Call.Name)
	assert.False(t, q.Call.IsNamed())
	require.Len(t, q.Call.Operands, 3)

	table, ok := q.Call.Operands[0].(*sqlnode.TableRef)
	require.True(t, ok)
	assert.Equal(t, "Bid", table.Name)
	assert.Equal(t, 5, table.Pos.Line)

	d, ok := q.Call.Operands[1].(*sqlnode.Descriptor)
	require.True(t, ok)
	assert.Equal(t, []string{"bidtime"}, d.Names())
	assert.Equal(t, 6, d.Columns[0].Pos.Line)
	assert.True(t, d.Columns[0].Pos.IsValid())

	iv, ok := q.Call.Operands[2].(*sqlnode.IntervalLiteral)
	require.True(t, ok)
	assert.Equal(t, "10", iv.Value)
	assert.Equal(t, sqltype.UnitMinute, iv.Unit)

	assert.Equal(t, "TUMBLE(TABLE Bid, DESCRIPTOR(bidtime), INTERVAL '10' MINUTE)", q.Call.String())
}

func TestCompileQueryNamedArguments(t *testing.T) {
	q, err := compileQuery(t, `
		query: q: {
			function: "SESSION"
			args: [
				{name: "SIZE", interval: 1, unit: "HOUR"},
				{name: "DATA", table: "Bid"},
				{name: "TIMECOL", descriptor: ["bidtime"]},
			]
		}
	`)

	require.NoError(t, err)
	assert.Equal(t, []string{"SIZE", "DATA", "TIMECOL"}, q.Call.ArgNames)
	iv := q.Call.Operands[0].(*sqlnode.IntervalLiteral)
	assert.Equal(t, "1", iv.Value)
}

func TestCompileQueryPartiallyNamed(t *testing.T) {
	q, err := compileQuery(t, `
		query: q: {
			function: "TUMBLE"
			args: [{name: "DATA", table: "Bid"}, {descriptor: ["bidtime"]}]
		}
	`)

	require.NoError(t, err)
	assert.Equal(t, []string{"DATA", ""}, q.Call.ArgNames, "unnamed slots are kept so mixing can be reported")
}

func TestCompileQueryLiterals(t *testing.T) {
	q, err := compileQuery(t, `
		query: q: {
			function: "TUMBLE"
			args: [
				{literal: "Bid"},
				{literal: 10},
				{literal: 2.5},
				{literal: true},
				{literal: "2024-01-01", type: "date"},
				{identifier: "bidtime"},
			]
		}
	`)

	require.NoError(t, err)
	want := []struct {
		value string
		typ   sqltype.TypeName
	}{
		{"Bid", sqltype.TypeVarchar},
		{"10", sqltype.TypeInteger},
		{"2.5", sqltype.TypeDecimal},
		{"true", sqltype.TypeBoolean},
		{"2024-01-01", sqltype.TypeDate},
	}
	for i, w := range want {
		lit, ok := q.Call.Operands[i].(*sqlnode.Literal)
		require.True(t, ok, "operand %d", i)
		assert.Equal(t, w.value, lit.Value)
		assert.Equal(t, w.typ, lit.Type)
	}
	id, ok := q.Call.Operands[5].(*sqlnode.Identifier)
	require.True(t, ok)
	assert.Equal(t, "bidtime", id.Name)
}

func TestCompileQueryIntervalTypedLiteral(t *testing.T) {
	q, err := compileQuery(t, `
query: q: {
	function: "TUMBLE"
	args: [
		{table: "Bid"},
		{descriptor: ["bidtime"]},
		{literal: "10", type: "interval minute"},
		{literal: 1, type: "INTERVAL HOUR"},
	]
}
`)

	require.NoError(t, err)
	require.Len(t, q.Call.Operands, 4)

	size, ok := q.Call.Operands[2].(*sqlnode.IntervalLiteral)
	require.True(t, ok, "interval-typed literal keeps its unit")
	assert.Equal(t, "10", size.Value)
	assert.Equal(t, sqltype.UnitMinute, size.Unit)
	assert.Equal(t, 7, size.Pos.Line)

	offset, ok := q.Call.Operands[3].(*sqlnode.IntervalLiteral)
	require.True(t, ok)
	assert.Equal(t, "1", offset.Value)
	assert.Equal(t, sqltype.UnitHour, offset.Unit)
}

func TestCompileQueryNoArgs(t *testing.T) {
	q, err := compileQuery(t, `query: q: function: "TUMBLE"`)

	require.NoError(t, err)
	assert.Empty(t, q.Call.Operands)
}

func TestCompileQueryErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code string
		msg  string
	}{
		{
			name: "missing function",
			src:  `query: q: args: [{table: "Bid"}]`,
			code: ErrCodeQueryFunction,
			msg:  "function is required",
		},
		{
			name: "empty function",
			src:  `query: q: function: " "`,
			code: ErrCodeQueryFunction,
		},
		{
			name: "args not a list",
			src:  `query: q: {function: "TUMBLE", args: {table: "Bid"}}`,
			code: ErrCodeInvalidArg,
			msg:  "args must be a list",
		},
		{
			name: "argument without kind",
			src:  `query: q: {function: "TUMBLE", args: [{name: "DATA"}]}`,
			code: ErrCodeInvalidArg,
			msg:  "argument must have one of",
		},
		{
			name: "argument with two kinds",
			src:  `query: q: {function: "TUMBLE", args: [{table: "Bid", descriptor: ["x"]}]}`,
			code: ErrCodeInvalidArg,
			msg:  "argument has both table and descriptor",
		},
		{
			name: "unknown argument field",
			src:  `query: q: {function: "TUMBLE", args: [{tabel: "Bid"}]}`,
			code: ErrCodeInvalidArg,
			msg:  `unknown argument field "tabel"`,
		},
		{
			name: "empty descriptor",
			src:  `query: q: {function: "TUMBLE", args: [{descriptor: []}]}`,
			code: ErrCodeInvalidArg,
			msg:  "at least one column",
		},
		{
			name: "descriptor of numbers",
			src:  `query: q: {function: "TUMBLE", args: [{descriptor: [1]}]}`,
			code: ErrCodeInvalidArg,
		},
		{
			name: "interval without unit",
			src:  `query: q: {function: "TUMBLE", args: [{interval: "1"}]}`,
			code: ErrCodeInvalidUnit,
			msg:  "interval unit is required",
		},
		{
			name: "unknown unit",
			src:  `query: q: {function: "TUMBLE", args: [{interval: "1", unit: "FORTNIGHT"}]}`,
			code: ErrCodeInvalidUnit,
		},
		{
			name: "unknown literal type",
			src:  `query: q: {function: "TUMBLE", args: [{literal: "x", type: "blob"}]}`,
			code: ErrCodeInvalidType,
		},
		{
			name: "empty argument name",
			src:  `query: q: {function: "TUMBLE", args: [{name: "", table: "Bid"}]}`,
			code: ErrCodeInvalidArg,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compileQuery(t, tt.src)

			var ce *CompileError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.code, ce.ErrorCode())
			if tt.msg != "" {
				assert.Contains(t, ce.Message, tt.msg)
			}
		})
	}
}
