package service

// CityInput is the external payload for creating a city.
type CityInput struct {
	Name       string `json:"name"`
	Population int64  `json:"population"`
}

// RoadInput is the external payload for creating a road.
type RoadInput struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Distance    int64  `json:"distance"`
}
