package filter

import (
	"path"

	"github.com/bfasst/bfasst/internal/design"
)

// Criteria defines filtering criteria for designs.
// All filters are ANDed together - a design must match ALL criteria to pass.
type Criteria struct {
	NameGlob string // Glob pattern for the design name, empty = no filter
	Top      string // Exact match for the top module, empty = no filter
}

// Matches returns true if the design matches all filter criteria.
// Empty criteria values are treated as "match all" for that criterion.
func (c *Criteria) Matches(d *design.Design) bool {
	// Names are slash separated, so * stops at a directory boundary
	if c.NameGlob != "" {
		matched, err := path.Match(c.NameGlob, d.Name)
		if err != nil || !matched {
			return false
		}
	}

	if c.Top != "" && d.Top() != c.Top {
		return false
	}

	return true
}

// HasFilters returns true if any filters are active.
func (c *Criteria) HasFilters() bool {
	return c.NameGlob != "" || c.Top != ""
}

// Validate reports a malformed glob before any design is matched against it.
func (c *Criteria) Validate() error {
	if c.NameGlob == "" {
		return nil
	}
	_, err := path.Match(c.NameGlob, "")
	return err
}
