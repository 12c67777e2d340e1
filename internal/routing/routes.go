package routing

import (
	"context"

	"github.com/nour/routegraph/backend/internal/domain"
)

// FindRoutes enumerates up to maxRoutes distinct simple routes from source to
// destination, following roads in their stored direction only. Routes are
// emitted in depth-first discovery order over insertion-ordered edges, so the
// result is reproducible for a given mutation history. maxDepth caps the
// number of roads in any emitted route; non-positive bounds fall back to the
// package defaults. Absent endpoints or a disconnected pair yield an empty
// result, never an error.
func (s *Store) FindRoutes(ctx context.Context, source, destination string, maxRoutes, maxDepth int) ([]domain.Route, error) {
	if maxRoutes <= 0 {
		maxRoutes = DefaultMaxRoutes
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.cities[source]; !ok {
		return nil, nil
	}
	if _, ok := s.cities[destination]; !ok {
		return nil, nil
	}

	walk := &routeWalk{
		store:       s,
		destination: destination,
		maxRoutes:   maxRoutes,
		maxDepth:    maxDepth,
		path:        []string{source},
		onPath:      map[string]bool{source: true},
	}
	if err := walk.run(ctx, source, 0); err != nil {
		return nil, err
	}
	return walk.routes, nil
}

// routeWalk carries the depth-first traversal state: the current path, the
// set of cities on it (simple-path guarantee), and the routes found so far.
type routeWalk struct {
	store       *Store
	destination string
	maxRoutes   int
	maxDepth    int

	path     []string
	onPath   map[string]bool
	distance int64
	expanded int

	routes []domain.Route
}

func (w *routeWalk) run(ctx context.Context, current string, depth int) error {
	w.expanded++
	if w.expanded%cancelCheckInterval == 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	for _, e := range w.store.neighbors(current, true) {
		if len(w.routes) >= w.maxRoutes {
			return nil
		}
		if w.onPath[e.peer] {
			continue
		}

		if e.peer == w.destination {
			cities := make([]string, len(w.path)+1)
			copy(cities, w.path)
			cities[len(w.path)] = e.peer
			w.routes = append(w.routes, domain.Route{
				Cities:   cities,
				Hops:     len(cities) - 1,
				Distance: w.distance + e.distance,
			})
			continue
		}

		if depth+1 >= w.maxDepth {
			continue
		}

		w.path = append(w.path, e.peer)
		w.onPath[e.peer] = true
		w.distance += e.distance

		if err := w.run(ctx, e.peer, depth+1); err != nil {
			return err
		}

		w.distance -= e.distance
		delete(w.onPath, e.peer)
		w.path = w.path[:len(w.path)-1]
	}
	return nil
}
