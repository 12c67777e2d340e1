package domain

// Route is an ordered sequence of city names connected consecutively by
// roads, with no repeated city. Hops counts the edges; Distance is the
// cumulative edge cost along the route.
type Route struct {
	Cities   []string
	Hops     int
	Distance int64
}
