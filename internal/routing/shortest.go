package routing

import (
	"container/heap"
	"context"

	"github.com/nour/routegraph/backend/internal/domain"
)

// ShortestByHops returns one minimum-hop route between source and destination
// over the undirected view of the network (roads traversed in either
// direction). The boolean reports whether a route exists; disconnection and
// absent endpoints are ordinary "not found" outcomes, not errors. The route
// is annotated with the cumulative distance along it. When several
// minimum-hop routes exist, the one discovered first under insertion-ordered
// expansion wins.
func (s *Store) ShortestByHops(ctx context.Context, source, destination string) (domain.Route, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.cities[source]; !ok {
		return domain.Route{}, false, nil
	}
	if _, ok := s.cities[destination]; !ok {
		return domain.Route{}, false, nil
	}
	if source == destination {
		return domain.Route{Cities: []string{source}}, true, nil
	}

	parent := map[string]string{source: source}
	queue := []string{source}
	var expanded int

	for len(queue) > 0 {
		expanded++
		if expanded%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return domain.Route{}, false, err
			}
		}

		current := queue[0]
		queue = queue[1:]

		for _, e := range s.neighbors(current, false) {
			if _, seen := parent[e.peer]; seen {
				continue
			}
			parent[e.peer] = current
			if e.peer == destination {
				return s.buildRoute(parent, source, destination), true, nil
			}
			queue = append(queue, e.peer)
		}
	}

	return domain.Route{}, false, nil
}

// ShortestByDistance runs Dijkstra's algorithm over the undirected view and
// returns the minimum cumulative-distance route with its total cost. Negative
// weights cannot occur (AddRoad rejects them). The search stops as soon as
// destination is finalized; equal-cost frontiers resolve by discovery order,
// so the result is deterministic. A one-city route with cost zero is returned
// when source and destination coincide, which is distinct from "no path".
func (s *Store) ShortestByDistance(ctx context.Context, source, destination string) (domain.Route, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.cities[source]; !ok {
		return domain.Route{}, false, nil
	}
	if _, ok := s.cities[destination]; !ok {
		return domain.Route{}, false, nil
	}
	if source == destination {
		return domain.Route{Cities: []string{source}}, true, nil
	}

	best := map[string]int64{source: 0}
	parent := map[string]string{source: source}
	done := make(map[string]bool)

	frontier := &distanceHeap{}
	heap.Init(frontier)
	heap.Push(frontier, &frontierItem{city: source})

	var popped int
	for frontier.Len() > 0 {
		popped++
		if popped%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return domain.Route{}, false, err
			}
		}

		item := heap.Pop(frontier).(*frontierItem)
		if done[item.city] {
			continue
		}
		done[item.city] = true

		if item.city == destination {
			route := s.buildRoute(parent, source, destination)
			route.Distance = item.distance
			return route, true, nil
		}

		for _, e := range s.neighbors(item.city, false) {
			if done[e.peer] {
				continue
			}
			tentative := item.distance + e.distance
			if current, seen := best[e.peer]; seen && current <= tentative {
				continue
			}
			best[e.peer] = tentative
			parent[e.peer] = item.city
			heap.Push(frontier, &frontierItem{city: e.peer, distance: tentative})
		}
	}

	return domain.Route{}, false, nil
}

type frontierItem struct {
	city     string
	distance int64
	seq      int
}

// distanceHeap orders the Dijkstra frontier by cumulative distance, breaking
// ties by discovery order. The sequence number is assigned on push.
type distanceHeap struct {
	items []*frontierItem
	seq   int
}

func (h *distanceHeap) Len() int { return len(h.items) }

func (h *distanceHeap) Less(i, j int) bool {
	if h.items[i].distance != h.items[j].distance {
		return h.items[i].distance < h.items[j].distance
	}
	return h.items[i].seq < h.items[j].seq
}

func (h *distanceHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}

func (h *distanceHeap) Push(x any) {
	item := x.(*frontierItem)
	h.seq++
	item.seq = h.seq
	h.items = append(h.items, item)
}

func (h *distanceHeap) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	h.items = old[:n-1]
	return item
}
