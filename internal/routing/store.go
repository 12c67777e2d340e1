package routing

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nour/routegraph/backend/internal/domain"
)

// Defaults applied when a caller does not bound a route enumeration.
const (
	DefaultMaxRoutes = 3
	DefaultMaxDepth  = 32
)

// cancelCheckInterval controls how often long traversals poll the context.
const cancelCheckInterval = 64

// Store owns the in-memory road network: the set of city nodes and the
// directed, weighted edges between them. All exported methods are safe for
// concurrent use; mutations take the write lock, queries hold the read lock
// for their full duration so a traversal never observes a half-applied
// mutation. Iteration order is insertion order throughout, which keeps every
// query deterministic for a given mutation history.
type Store struct {
	mu     sync.RWMutex
	cities map[string]*cityNode
	order  []string
}

type cityNode struct {
	city domain.City
	out  []edge
	in   []edge
}

// edge is one directed road, recorded on both endpoints so the undirected
// view can be walked without scanning the whole network.
type edge struct {
	peer     string
	distance int64
}

// NewStore returns an empty road network.
func NewStore() *Store {
	return &Store{cities: make(map[string]*cityNode)}
}

// AddCity inserts a city node. City names are unique, case-sensitive keys;
// inserting an existing name fails with domain.ErrDuplicateCity.
func (s *Store) AddCity(_ context.Context, city domain.City) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.cities[city.Name]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateCity, city.Name)
	}

	s.cities[city.Name] = &cityNode{city: city}
	s.order = append(s.order, city.Name)
	return nil
}

// AddRoad inserts a directed road between two existing cities. Re-adding a
// road for the same ordered endpoint pair is a no-op, regardless of the
// distance supplied on the repeat call.
func (s *Store) AddRoad(_ context.Context, road domain.Road) error {
	if road.Distance < 0 {
		return fmt.Errorf("%w: got %d", domain.ErrInvalidDistance, road.Distance)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	src, ok := s.cities[road.Source]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownCity, road.Source)
	}
	dst, ok := s.cities[road.Destination]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownCity, road.Destination)
	}

	for _, e := range src.out {
		if e.peer == road.Destination {
			return nil
		}
	}

	src.out = append(src.out, edge{peer: road.Destination, distance: road.Distance})
	dst.in = append(dst.in, edge{peer: road.Source, distance: road.Distance})
	return nil
}

// ListCities returns all cities in insertion order. A non-empty filter keeps
// only cities whose name contains it (case-sensitive substring match).
func (s *Store) ListCities(_ context.Context, filter string) ([]domain.City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cities := make([]domain.City, 0, len(s.order))
	for _, name := range s.order {
		if filter != "" && !strings.Contains(name, filter) {
			continue
		}
		cities = append(cities, s.cities[name].city)
	}
	return cities, nil
}

// ListRoads returns all roads, grouped by source city in insertion order.
func (s *Store) ListRoads(_ context.Context) ([]domain.Road, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var roads []domain.Road
	for _, name := range s.order {
		for _, e := range s.cities[name].out {
			roads = append(roads, domain.Road{
				Source:      name,
				Destination: e.peer,
				Distance:    e.distance,
			})
		}
	}
	return roads, nil
}

// Neighbors returns the roads incident to a city. Directed traversal follows
// outgoing roads only; the undirected view also reports incoming roads with
// the stored endpoint order preserved. Unknown cities yield an empty result.
func (s *Store) Neighbors(_ context.Context, name string, directed bool) ([]domain.Road, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	node, ok := s.cities[name]
	if !ok {
		return nil, nil
	}

	roads := make([]domain.Road, 0, len(node.out))
	for _, e := range node.out {
		roads = append(roads, domain.Road{Source: name, Destination: e.peer, Distance: e.distance})
	}
	if !directed {
		for _, e := range node.in {
			roads = append(roads, domain.Road{Source: e.peer, Destination: name, Distance: e.distance})
		}
	}
	return roads, nil
}

// neighbors is the traversal-facing variant of Neighbors. In the undirected
// view incoming edges follow outgoing ones, both in insertion order, so the
// expansion order seen by BFS and Dijkstra is stable. Callers must hold s.mu.
func (s *Store) neighbors(name string, directed bool) []edge {
	node, ok := s.cities[name]
	if !ok {
		return nil
	}
	if directed {
		return node.out
	}
	all := make([]edge, 0, len(node.out)+len(node.in))
	all = append(all, node.out...)
	all = append(all, node.in...)
	return all
}

// edgeDistance resolves the distance between two adjacent cities in the
// undirected view, preferring the forward road when both directions exist.
// Callers must hold s.mu.
func (s *Store) edgeDistance(from, to string) int64 {
	if node, ok := s.cities[from]; ok {
		for _, e := range node.out {
			if e.peer == to {
				return e.distance
			}
		}
	}
	if node, ok := s.cities[to]; ok {
		for _, e := range node.out {
			if e.peer == from {
				return e.distance
			}
		}
	}
	return 0
}

// buildRoute walks a predecessor chain back from destination to source and
// annotates the result with the cumulative distance along it. Callers must
// hold s.mu and guarantee the chain is rooted at source.
func (s *Store) buildRoute(parent map[string]string, source, destination string) domain.Route {
	var cities []string
	for at := destination; ; at = parent[at] {
		cities = append(cities, at)
		if at == source {
			break
		}
	}
	for i, j := 0, len(cities)-1; i < j; i, j = i+1, j-1 {
		cities[i], cities[j] = cities[j], cities[i]
	}

	var total int64
	for i := 0; i+1 < len(cities); i++ {
		total += s.edgeDistance(cities[i], cities[i+1])
	}

	return domain.Route{
		Cities:   cities,
		Hops:     len(cities) - 1,
		Distance: total,
	}
}
