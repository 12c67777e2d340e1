package generator

// Config drives the synthetic road map generator.
type Config struct {
	NumCities     int
	NumRoads      int
	MaxDistance   int64
	MaxPopulation int64
	Seed          int64
}

// DefaultConfig returns baseline settings producing a connected mid-size map.
func DefaultConfig() Config {
	return Config{
		NumCities:     50,
		NumRoads:      160,
		MaxDistance:   100,
		MaxPopulation: 2_000_000,
		Seed:          42,
	}
}
