// Package catalog maps relation names to row types.
//
// A Catalog is what the analyzer consults when a call names a table:
// TABLE Bid resolves to the row type registered under "Bid". Lookup goes
// through a namematch.Matcher so the same catalog serves case-sensitive
// and case-insensitive sessions.
package catalog

import (
	"fmt"
	"sort"

	"github.com/roach88/wintvf/internal/namematch"
	"github.com/roach88/wintvf/internal/sqltype"
)

// Catalog is an in-memory set of named relations.
// Not safe for concurrent mutation; build it once, then share it.
type Catalog struct {
	matcher namematch.Matcher
	names   []string
	rows    []*sqltype.Row
}

// New creates an empty catalog. A nil matcher means case-insensitive.
func New(matcher namematch.Matcher) *Catalog {
	if matcher == nil {
		matcher = namematch.CaseInsensitive()
	}
	return &Catalog{matcher: matcher}
}

// Add registers row under name. Names that collide under the catalog's
// matcher are rejected.
func (c *Catalog) Add(name string, row *sqltype.Row) error {
	if name == "" {
		return fmt.Errorf("relation name must not be empty")
	}
	if row == nil {
		return fmt.Errorf("relation %q: nil row type", name)
	}
	if i := c.matcher.IndexOf(c.names, name); i >= 0 {
		return fmt.Errorf("relation %q already defined as %q", name, c.names[i])
	}
	c.names = append(c.names, name)
	c.rows = append(c.rows, row)
	return nil
}

// Merge adds every relation of other to c. It stops at the first collision.
func (c *Catalog) Merge(other *Catalog) error {
	for i, name := range other.names {
		if err := c.Add(name, other.rows[i]); err != nil {
			return err
		}
	}
	return nil
}

// Table returns the row type registered under name.
func (c *Catalog) Table(name string) (*sqltype.Row, bool) {
	i := c.matcher.IndexOf(c.names, name)
	if i < 0 {
		return nil, false
	}
	return c.rows[i], true
}

// Names returns relation names in sorted order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	sort.Strings(out)
	return out
}

// Len returns the number of relations.
func (c *Catalog) Len() int { return len(c.names) }

// Matcher returns the matcher used for lookups.
func (c *Catalog) Matcher() namematch.Matcher { return c.matcher }
