package domain

// City is a named node in the road network. Names are unique, case-sensitive
// identifiers; population is informational and carried through unchanged.
type City struct {
	Name       string
	Population int64
}

// Road is a directed, weighted edge between two cities. Distance is a
// non-negative cost; road creation is idempotent per ordered endpoint pair.
type Road struct {
	Source      string
	Destination string
	Distance    int64
}
