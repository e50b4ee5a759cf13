package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wintvf/internal/namematch"
	"github.com/roach88/wintvf/internal/sqltype"
)

func bidRow() *sqltype.Row {
	return sqltype.NewBuilder().
		Add("bidtime", sqltype.NewScalar(sqltype.TypeTimestamp)).
		Add("price", sqltype.NewScalar(sqltype.TypeDecimal)).
		Build()
}

func TestCatalog_AddAndLookup(t *testing.T) {
	cat := New(namematch.CaseInsensitive())
	require.NoError(t, cat.Add("Bid", bidRow()))

	row, ok := cat.Table("BID")
	require.True(t, ok)
	assert.Equal(t, []string{"bidtime", "price"}, row.FieldNames())

	_, ok = cat.Table("Auction")
	assert.False(t, ok)
}

func TestCatalog_CaseSensitive(t *testing.T) {
	cat := New(namematch.CaseSensitive())
	require.NoError(t, cat.Add("Bid", bidRow()))
	require.NoError(t, cat.Add("bid", bidRow()), "distinct names under a case-sensitive matcher")

	_, ok := cat.Table("BID")
	assert.False(t, ok)
	assert.Equal(t, 2, cat.Len())
}

func TestCatalog_AddErrors(t *testing.T) {
	cat := New(nil)
	require.NoError(t, cat.Add("Bid", bidRow()))

	err := cat.Add("bid", bidRow())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `already defined as "Bid"`)

	assert.Error(t, cat.Add("", bidRow()))
	assert.Error(t, cat.Add("Auction", nil))
}

func TestCatalog_Names(t *testing.T) {
	cat := New(nil)
	for _, name := range []string{"Person", "Auction", "Bid"} {
		require.NoError(t, cat.Add(name, bidRow()))
	}

	names := cat.Names()
	assert.Equal(t, []string{"Auction", "Bid", "Person"}, names)

	names[0] = "changed"
	assert.Equal(t, "Auction", cat.Names()[0])
}

func TestCatalog_Merge(t *testing.T) {
	a := New(nil)
	require.NoError(t, a.Add("Bid", bidRow()))
	b := New(nil)
	require.NoError(t, b.Add("Auction", bidRow()))

	require.NoError(t, a.Merge(b))
	assert.Equal(t, []string{"Auction", "Bid"}, a.Names())

	assert.Error(t, a.Merge(b), "second merge collides")
}
