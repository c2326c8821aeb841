package ninja

// DepSet is an append-only set of paths that keeps first-insertion order.
type DepSet struct {
	order []string
	seen  map[string]struct{}
}

// NewDepSet creates an empty set.
func NewDepSet() *DepSet {
	return &DepSet{seen: make(map[string]struct{})}
}

// Add inserts paths not already present. Empty strings are skipped.
func (s *DepSet) Add(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, ok := s.seen[p]; ok {
			continue
		}
		s.seen[p] = struct{}{}
		s.order = append(s.order, p)
	}
}

// Len returns the number of paths.
func (s *DepSet) Len() int {
	return len(s.order)
}

// List returns a copy of the paths in insertion order.
func (s *DepSet) List() []string {
	return append([]string(nil), s.order...)
}

// Clause renders the set as an escaped, space-separated input list.
func (s *DepSet) Clause() string {
	return JoinPaths(s.order)
}
