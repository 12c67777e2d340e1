package domain

import "errors"

// Validation failures surfaced at the graph boundary. Absence of a route is
// never one of these: queries report "no path" as an ordinary empty result.
var (
	// ErrDuplicateCity indicates the city name is already present.
	ErrDuplicateCity = errors.New("city already exists")

	// ErrUnknownCity indicates a road references a city that does not exist.
	ErrUnknownCity = errors.New("unknown city")

	// ErrInvalidDistance indicates a negative distance was supplied.
	ErrInvalidDistance = errors.New("road distance must be non-negative")

	// ErrInvalidInput indicates a malformed request rejected before it
	// reaches the graph.
	ErrInvalidInput = errors.New("invalid input")
)
