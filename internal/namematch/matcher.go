// Package namematch matches identifiers against lists of names under a
// case-sensitivity policy.
//
// Names are compared after Unicode NFC normalization so that composed and
// decomposed spellings of the same identifier match. The case-insensitive
// policy additionally applies full Unicode case folding.
package namematch

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Matcher compares identifiers.
type Matcher interface {
	// IndexOf returns the index of the first name matching name, or -1.
	IndexOf(names []string, name string) int

	// Matches reports whether two identifiers refer to the same name.
	Matches(a, b string) bool

	// IsCaseSensitive reports the matcher's policy.
	IsCaseSensitive() bool
}

// CaseSensitive returns a matcher that compares names exactly.
func CaseSensitive() Matcher {
	return matcher{caseSensitive: true}
}

// CaseInsensitive returns a matcher that ignores case differences.
func CaseInsensitive() Matcher {
	return matcher{caseSensitive: false}
}

// FromFlag returns CaseSensitive() when caseSensitive is set,
// CaseInsensitive() otherwise.
func FromFlag(caseSensitive bool) Matcher {
	if caseSensitive {
		return CaseSensitive()
	}
	return CaseInsensitive()
}

type matcher struct {
	caseSensitive bool
}

func (m matcher) IsCaseSensitive() bool {
	return m.caseSensitive
}

func (m matcher) Matches(a, b string) bool {
	if a == b {
		return true
	}
	return m.key(a) == m.key(b)
}

func (m matcher) IndexOf(names []string, name string) int {
	want := m.key(name)
	for i, n := range names {
		if n == name || m.key(n) == want {
			return i
		}
	}
	return -1
}

// key is the comparison form of a name.
func (m matcher) key(s string) string {
	s = norm.NFC.String(s)
	if m.caseSensitive {
		return s
	}
	// A Caser is stateful and not safe for concurrent use.
	return cases.Fold().String(s)
}
