package namematch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexOf(t *testing.T) {
	names := []string{"ts", "id", "Price"}

	tests := []struct {
		name    string
		matcher Matcher
		lookup  string
		want    int
	}{
		{"sensitive exact", CaseSensitive(), "id", 1},
		{"sensitive wrong case", CaseSensitive(), "ID", -1},
		{"insensitive upper", CaseInsensitive(), "ID", 1},
		{"insensitive mixed", CaseInsensitive(), "pRiCe", 2},
		{"insensitive missing", CaseInsensitive(), "missing_col", -1},
		{"sensitive missing", CaseSensitive(), "missing_col", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.matcher.IndexOf(names, tt.lookup))
		})
	}
}

func TestIndexOf_FirstMatchWins(t *testing.T) {
	names := []string{"a", "A", "a"}
	assert.Equal(t, 0, CaseInsensitive().IndexOf(names, "A"))
	assert.Equal(t, 1, CaseSensitive().IndexOf(names, "A"))
}

func TestIndexOf_Empty(t *testing.T) {
	assert.Equal(t, -1, CaseInsensitive().IndexOf(nil, "a"))
}

func TestMatches_UnicodeNormalization(t *testing.T) {
	composed := "caf\u00e9"
	decomposed := "cafe\u0301"

	assert.True(t, CaseSensitive().Matches(composed, decomposed))
	assert.True(t, CaseInsensitive().Matches("CAF\u00c9", decomposed))
	assert.False(t, CaseSensitive().Matches("CAF\u00c9", decomposed))
}

func TestMatches_CaseFolding(t *testing.T) {
	assert.True(t, CaseInsensitive().Matches("STRASSE", "strasse"))
}

func TestFromFlag(t *testing.T) {
	assert.True(t, FromFlag(true).IsCaseSensitive())
	assert.False(t, FromFlag(false).IsCaseSensitive())
}
