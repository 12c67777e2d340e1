package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/nour/routegraph/backend/internal/domain"
	"github.com/nour/routegraph/backend/internal/routing"
)

// GraphEngine is the storage-and-query contract the routing facade depends
// on. Two implementations exist: the in-memory routing.Store, which runs the
// traversals itself, and repository.Repository, which delegates them to an
// external graph database.
type GraphEngine interface {
	AddCity(ctx context.Context, city domain.City) error
	AddRoad(ctx context.Context, road domain.Road) error
	ListCities(ctx context.Context, filter string) ([]domain.City, error)
	ListRoads(ctx context.Context) ([]domain.Road, error)
	FindRoutes(ctx context.Context, source, destination string, maxRoutes, maxDepth int) ([]domain.Route, error)
	ShortestByHops(ctx context.Context, source, destination string) (domain.Route, bool, error)
	ShortestByDistance(ctx context.Context, source, destination string) (domain.Route, bool, error)
}

// RoutingService is a thin facade over a GraphEngine: it trims and validates
// inputs and applies the configured enumeration bounds, but performs no
// traversal work itself.
type RoutingService struct {
	engine    GraphEngine
	maxRoutes int
	maxDepth  int
}

// Options tunes route enumeration bounds.
type Options struct {
	MaxRoutes int
	MaxDepth  int
}

// NewRoutingService constructs the facade, falling back to package defaults
// for unset bounds.
func NewRoutingService(engine GraphEngine, opts Options) *RoutingService {
	maxRoutes := opts.MaxRoutes
	if maxRoutes <= 0 {
		maxRoutes = routing.DefaultMaxRoutes
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = routing.DefaultMaxDepth
	}
	return &RoutingService{
		engine:    engine,
		maxRoutes: maxRoutes,
		maxDepth:  maxDepth,
	}
}

// AddCity validates and inserts a city.
func (s *RoutingService) AddCity(ctx context.Context, input CityInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return fmt.Errorf("%w: city name is required", domain.ErrInvalidInput)
	}
	if input.Population < 0 {
		return fmt.Errorf("%w: population must be non-negative", domain.ErrInvalidInput)
	}
	return s.engine.AddCity(ctx, domain.City{Name: name, Population: input.Population})
}

// AddRoad validates and inserts a directed road.
func (s *RoutingService) AddRoad(ctx context.Context, input RoadInput) error {
	source := strings.TrimSpace(input.Source)
	destination := strings.TrimSpace(input.Destination)
	if source == "" || destination == "" {
		return fmt.Errorf("%w: source and destination cities are required", domain.ErrInvalidInput)
	}
	return s.engine.AddRoad(ctx, domain.Road{
		Source:      source,
		Destination: destination,
		Distance:    input.Distance,
	})
}

// ListCities returns cities, optionally filtered by a name substring.
func (s *RoutingService) ListCities(ctx context.Context, filter string) ([]domain.City, error) {
	return s.engine.ListCities(ctx, strings.TrimSpace(filter))
}

// ListRoads returns all roads.
func (s *RoutingService) ListRoads(ctx context.Context) ([]domain.Road, error) {
	return s.engine.ListRoads(ctx)
}

// FindRoutes enumerates directed routes between two cities, bounded by the
// configured limits.
func (s *RoutingService) FindRoutes(ctx context.Context, source, destination string) ([]domain.Route, error) {
	source, destination, err := routeEndpoints(source, destination)
	if err != nil {
		return nil, err
	}
	return s.engine.FindRoutes(ctx, source, destination, s.maxRoutes, s.maxDepth)
}

// ShortestByHops returns one minimum-hop route over the undirected view.
func (s *RoutingService) ShortestByHops(ctx context.Context, source, destination string) (domain.Route, bool, error) {
	source, destination, err := routeEndpoints(source, destination)
	if err != nil {
		return domain.Route{}, false, err
	}
	return s.engine.ShortestByHops(ctx, source, destination)
}

// ShortestByDistance returns the minimum cumulative-distance route over the
// undirected view.
func (s *RoutingService) ShortestByDistance(ctx context.Context, source, destination string) (domain.Route, bool, error) {
	source, destination, err := routeEndpoints(source, destination)
	if err != nil {
		return domain.Route{}, false, err
	}
	return s.engine.ShortestByDistance(ctx, source, destination)
}

func routeEndpoints(source, destination string) (string, string, error) {
	source = strings.TrimSpace(source)
	destination = strings.TrimSpace(destination)
	if source == "" || destination == "" {
		return "", "", fmt.Errorf("%w: source and destination cities are required", domain.ErrInvalidInput)
	}
	return source, destination, nil
}
