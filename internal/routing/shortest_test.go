package routing

import (
	"context"
	"reflect"
	"testing"

	"github.com/nour/routegraph/backend/internal/domain"
)

// triangleStore builds the reference scenario: A->B (5), B->C (3), A->C (10).
func triangleStore(t *testing.T) *Store {
	t.Helper()
	return newTestStore(t,
		[]domain.City{{Name: "A"}, {Name: "B"}, {Name: "C"}},
		[]domain.Road{
			{Source: "A", Destination: "B", Distance: 5},
			{Source: "B", Destination: "C", Distance: 3},
			{Source: "A", Destination: "C", Distance: 10},
		},
	)
}

func TestShortestByHops_Triangle(t *testing.T) {
	s := triangleStore(t)

	route, found, err := s.ShortestByHops(context.Background(), "A", "C")
	if err != nil {
		t.Fatalf("shortest by hops: %v", err)
	}
	if !found {
		t.Fatal("expected a route")
	}
	if !reflect.DeepEqual(route.Cities, []string{"A", "C"}) {
		t.Fatalf("expected direct route A-C, got %v", route.Cities)
	}
	if route.Hops != 1 {
		t.Fatalf("expected 1 hop, got %d", route.Hops)
	}
	if route.Distance != 10 {
		t.Fatalf("expected annotated distance 10, got %d", route.Distance)
	}
}

func TestShortestByHops_UndirectedTraversal(t *testing.T) {
	// The only road points C->A; BFS still reaches C from A because the
	// hop search treats roads as bidirectional.
	s := newTestStore(t,
		[]domain.City{{Name: "A"}, {Name: "C"}},
		[]domain.Road{{Source: "C", Destination: "A", Distance: 2}},
	)

	route, found, err := s.ShortestByHops(context.Background(), "A", "C")
	if err != nil {
		t.Fatalf("shortest by hops: %v", err)
	}
	if !found {
		t.Fatal("expected a route over the undirected view")
	}
	if !reflect.DeepEqual(route.Cities, []string{"A", "C"}) {
		t.Fatalf("unexpected route %v", route.Cities)
	}
	if route.Distance != 2 {
		t.Fatalf("expected distance 2, got %d", route.Distance)
	}
}

func TestShortestByHops_SelfAndMissing(t *testing.T) {
	s := newTestStore(t, []domain.City{{Name: "A"}, {Name: "B"}}, nil)
	ctx := context.Background()

	route, found, err := s.ShortestByHops(ctx, "A", "A")
	if err != nil || !found {
		t.Fatalf("expected self route, got found=%v err=%v", found, err)
	}
	if !reflect.DeepEqual(route.Cities, []string{"A"}) || route.Hops != 0 || route.Distance != 0 {
		t.Fatalf("expected one-city zero-cost route, got %+v", route)
	}

	_, found, err = s.ShortestByHops(ctx, "A", "B")
	if err != nil || found {
		t.Fatalf("expected no route for disconnected pair, got found=%v err=%v", found, err)
	}

	_, found, err = s.ShortestByHops(ctx, "A", "Nowhere")
	if err != nil || found {
		t.Fatalf("expected no route for unknown city, got found=%v err=%v", found, err)
	}
}

func TestShortestByDistance_Triangle(t *testing.T) {
	s := triangleStore(t)

	route, found, err := s.ShortestByDistance(context.Background(), "A", "C")
	if err != nil {
		t.Fatalf("shortest by distance: %v", err)
	}
	if !found {
		t.Fatal("expected a route")
	}
	if !reflect.DeepEqual(route.Cities, []string{"A", "B", "C"}) {
		t.Fatalf("expected detour A-B-C, got %v", route.Cities)
	}
	if route.Distance != 8 {
		t.Fatalf("expected total distance 8, got %d", route.Distance)
	}
	if route.Hops != 2 {
		t.Fatalf("expected 2 hops, got %d", route.Hops)
	}
}

func TestShortestByDistance_SelfAndMissing(t *testing.T) {
	s := newTestStore(t, []domain.City{{Name: "A"}, {Name: "B"}}, nil)
	ctx := context.Background()

	route, found, err := s.ShortestByDistance(ctx, "A", "A")
	if err != nil || !found {
		t.Fatalf("expected self route, got found=%v err=%v", found, err)
	}
	if route.Distance != 0 || len(route.Cities) != 1 {
		t.Fatalf("expected zero-cost one-city route, got %+v", route)
	}

	_, found, err = s.ShortestByDistance(ctx, "A", "B")
	if err != nil || found {
		t.Fatalf("expected no route for disconnected pair, got found=%v err=%v", found, err)
	}
}

func TestShortestByDistance_DeterministicTieBreak(t *testing.T) {
	// Two equal-cost routes S-X-T and S-Y-T; the X corridor was inserted
	// first, so discovery order selects it every time.
	s := newTestStore(t,
		[]domain.City{{Name: "S"}, {Name: "X"}, {Name: "Y"}, {Name: "T"}},
		[]domain.Road{
			{Source: "S", Destination: "X", Distance: 2},
			{Source: "S", Destination: "Y", Distance: 2},
			{Source: "X", Destination: "T", Distance: 2},
			{Source: "Y", Destination: "T", Distance: 2},
		},
	)

	for i := 0; i < 5; i++ {
		route, found, err := s.ShortestByDistance(context.Background(), "S", "T")
		if err != nil || !found {
			t.Fatalf("expected route, got found=%v err=%v", found, err)
		}
		if !reflect.DeepEqual(route.Cities, []string{"S", "X", "T"}) {
			t.Fatalf("expected stable tie-break via X, got %v", route.Cities)
		}
	}
}

func TestShortestByDistance_ZeroWeightEdges(t *testing.T) {
	s := newTestStore(t,
		[]domain.City{{Name: "A"}, {Name: "B"}, {Name: "C"}},
		[]domain.Road{
			{Source: "A", Destination: "B", Distance: 0},
			{Source: "B", Destination: "C", Distance: 0},
			{Source: "A", Destination: "C", Distance: 1},
		},
	)

	route, found, err := s.ShortestByDistance(context.Background(), "A", "C")
	if err != nil || !found {
		t.Fatalf("expected route, got found=%v err=%v", found, err)
	}
	if route.Distance != 0 {
		t.Fatalf("expected zero-cost route, got %+v", route)
	}
	if !reflect.DeepEqual(route.Cities, []string{"A", "B", "C"}) {
		t.Fatalf("expected A-B-C, got %v", route.Cities)
	}
}

func TestShortestProperties(t *testing.T) {
	// On a fixed network, the hop-optimal route never has more edges than
	// any enumerated route, and the distance-optimal route never costs more
	// than any enumerated or hop-optimal route.
	s := newTestStore(t,
		[]domain.City{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}, {Name: "E"}},
		[]domain.Road{
			{Source: "A", Destination: "B", Distance: 2},
			{Source: "B", Destination: "C", Distance: 2},
			{Source: "C", Destination: "E", Distance: 2},
			{Source: "A", Destination: "D", Distance: 9},
			{Source: "D", Destination: "E", Distance: 9},
			{Source: "A", Destination: "E", Distance: 20},
		},
	)
	ctx := context.Background()

	enumerated, err := s.FindRoutes(ctx, "A", "E", 10, 0)
	if err != nil {
		t.Fatalf("find routes: %v", err)
	}
	if len(enumerated) != 3 {
		t.Fatalf("expected 3 enumerated routes, got %d", len(enumerated))
	}

	byHops, found, err := s.ShortestByHops(ctx, "A", "E")
	if err != nil || !found {
		t.Fatalf("expected hop route, got found=%v err=%v", found, err)
	}
	byDistance, found, err := s.ShortestByDistance(ctx, "A", "E")
	if err != nil || !found {
		t.Fatalf("expected distance route, got found=%v err=%v", found, err)
	}

	for _, r := range enumerated {
		if byHops.Hops > r.Hops {
			t.Fatalf("hop-optimal route %v longer than enumerated %v", byHops.Cities, r.Cities)
		}
		if byDistance.Distance > r.Distance {
			t.Fatalf("distance-optimal route costs %d, enumerated %v costs %d", byDistance.Distance, r.Cities, r.Distance)
		}
	}
	if byDistance.Distance > byHops.Distance {
		t.Fatalf("distance-optimal %d exceeds hop-optimal annotation %d", byDistance.Distance, byHops.Distance)
	}
	if byDistance.Distance != 6 {
		t.Fatalf("expected optimal cost 6 via A-B-C-E, got %d", byDistance.Distance)
	}
	if byHops.Hops != 1 {
		t.Fatalf("expected direct A-E hop route, got %v", byHops.Cities)
	}
}
