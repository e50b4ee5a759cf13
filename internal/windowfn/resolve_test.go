package windowfn

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wintvf/internal/namematch"
	"github.com/roach88/wintvf/internal/sqlnode"
	"github.com/roach88/wintvf/internal/sqltype"
)

func TestCheck_Pass(t *testing.T) {
	b := bind(bidRow(), table("Bid"), descriptor("bidtime"), interval("10", sqltype.UnitMinute))
	assert.NoError(t, Check(Tumble, b))
}

func TestCheck_SignatureError(t *testing.T) {
	b := bind(bidRow(),
		table("Bid"), descriptor("bidtime"),
		interval("5", sqltype.UnitMinute), str("oops"),
	)

	err := Check(Tumble, b)

	var se *SignatureError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "TUMBLE", se.Function)
	assert.Equal(t, ReasonNotInterval, se.Reason)
	assert.Equal(t, 3, se.Position)
	assert.Equal(t, ParamOffset, se.Param)
	assert.Equal(t, []string{"<ROW>", "<DESCRIPTOR>", "<INTERVAL MINUTE>", "<VARCHAR>"}, se.ArgTypes)
	assert.Equal(t, ErrCodeSignature, Code(err))

	msg := err.Error()
	assert.Contains(t, msg, "Cannot apply 'TUMBLE' to arguments of type 'TUMBLE(<ROW>, <DESCRIPTOR>, <INTERVAL MINUTE>, <VARCHAR>)'")
	assert.Contains(t, msg, "parameter OFFSET must be an INTERVAL")
	assert.Contains(t, msg, "Supported form(s): 'TUMBLE(TABLE table_name, DESCRIPTOR(timecol), datetime interval[, datetime interval])'")
}

func TestCheck_SignatureErrorNamesSessionSize(t *testing.T) {
	// With three operands, SESSION binds operand 2 to SIZE, not KEY
	b := bindWith(namematch.CaseInsensitive(), bidRow(), "SESSION",
		table("Bid"), descriptor("bidtime"), str("10"))

	err := Check(Session, b)

	var se *SignatureError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, ParamSize, se.Param)
	assert.Len(t, se.Signatures, 2)
}

func TestCheck_OperandCountUsesCallPosition(t *testing.T) {
	b := bind(bidRow(), table("Bid"))

	err := Check(Tumble, b)

	var se *SignatureError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, ReasonOperandCount, se.Reason)
	assert.Equal(t, -1, se.Position)
	assert.Equal(t, Param(""), se.Param)
	assert.Equal(t, sqlnode.Pos{Line: 1, Column: 1}, se.Pos)
	assert.Contains(t, err.Error(), "invalid number of arguments")
}

func TestCheck_UnknownIdentifierPassesThrough(t *testing.T) {
	b := bind(bidRow(), table("Bid"), descriptor("missing_col"), interval("1", sqltype.UnitHour))

	err := Check(Tumble, b)

	assert.True(t, IsUnknownIdentifier(err))
	var se *SignatureError
	assert.False(t, errors.As(err, &se))
}

func TestResolve_FirstMatchingCandidate(t *testing.T) {
	// 4 operands with descriptor at 2: TUMBLE rejects, HOP rejects, SESSION accepts
	b := bindWith(namematch.CaseInsensitive(), bidRow(), "WINDOW",
		table("Bid"), descriptor("bidtime"), descriptor("item"), interval("10", sqltype.UnitMinute))

	fn, err := Resolve(Functions(), b)

	require.NoError(t, err)
	assert.Equal(t, KindSession, fn.Kind())
}

func TestResolve_SkipsOutOfRangeCandidates(t *testing.T) {
	b := bindWith(namematch.CaseInsensitive(), bidRow(), "WINDOW",
		table("Bid"), descriptor("bidtime"),
		interval("5", sqltype.UnitMinute), interval("10", sqltype.UnitMinute), interval("1", sqltype.UnitMinute))

	fn, err := Resolve(Functions(), b)

	require.NoError(t, err)
	assert.Equal(t, KindHop, fn.Kind())
}

func TestResolve_NoMatch(t *testing.T) {
	b := bindWith(namematch.CaseInsensitive(), bidRow(), "WINDOW",
		table("Bid"), descriptor("bidtime"), str("oops"))

	fn, err := Resolve(Functions(), b)

	assert.Nil(t, fn)
	var nm *NoMatchError
	require.ErrorAs(t, err, &nm)
	assert.Equal(t, "WINDOW", nm.Name)
	assert.Equal(t, 3, nm.OperandCount)
	assert.Equal(t, ErrCodeNoMatch, Code(err))
	assert.Contains(t, err.Error(), "No match found for function signature WINDOW")
}

func TestResolve_UnknownIdentifierStopsResolution(t *testing.T) {
	// The unknown column must surface even though other candidates remain
	b := bindWith(namematch.CaseInsensitive(), bidRow(), "WINDOW",
		table("Bid"), descriptor("missing_col"), interval("10", sqltype.UnitMinute))

	fn, err := Resolve(Functions(), b)

	assert.Nil(t, fn)
	var ue *UnknownIdentifierError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "missing_col", ue.Name)
}

func TestResolve_UnknownIdentifierModeIndependent(t *testing.T) {
	row := sqltype.NewBuilder().
		Add("ts", sqltype.NewScalar(sqltype.TypeTimestamp)).
		Add("id", sqltype.NewScalar(sqltype.TypeInteger)).
		Build()
	b := bind(row, table("T"), descriptor("missing_col"), interval("5", sqltype.UnitMinute))

	_, probeErr := Resolve([]Function{Tumble}, b)
	checkErr := Check(Tumble, b)

	assert.Equal(t, probeErr, checkErr)
	assert.True(t, IsUnknownIdentifier(probeErr))
}

func TestResolve_EmptyCandidates(t *testing.T) {
	b := bind(bidRow(), table("Bid"))

	_, err := Resolve(nil, b)

	var nm *NoMatchError
	assert.ErrorAs(t, err, &nm)
}

func TestCode_Uncoded(t *testing.T) {
	assert.Equal(t, "", Code(assert.AnError))
	assert.False(t, IsUnknownIdentifier(assert.AnError))
}
