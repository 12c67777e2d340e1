package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nour/routegraph/backend/internal/routing"
	"github.com/nour/routegraph/backend/internal/service"
)

func newTestHandlers(t *testing.T) *APIHandlers {
	t.Helper()
	store := routing.NewStore()
	svc := service.NewRoutingService(store, service.Options{})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAPIHandlers(logger, svc)
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func seedTriangle(t *testing.T, handlers *APIHandlers) {
	t.Helper()
	for _, city := range []service.CityInput{
		{Name: "A", Population: 100},
		{Name: "B", Population: 200},
		{Name: "C", Population: 300},
	} {
		if rec := postJSON(t, handlers.handleCreateCity, "/cities", city); rec.Code != http.StatusCreated {
			t.Fatalf("seed city %s: expected 201, got %d", city.Name, rec.Code)
		}
	}
	for _, road := range []service.RoadInput{
		{Source: "A", Destination: "B", Distance: 5},
		{Source: "B", Destination: "C", Distance: 3},
		{Source: "A", Destination: "C", Distance: 10},
	} {
		if rec := postJSON(t, handlers.handleCreateRoad, "/roads", road); rec.Code != http.StatusCreated {
			t.Fatalf("seed road %s->%s: expected 201, got %d", road.Source, road.Destination, rec.Code)
		}
	}
}

func TestHandleCreateCity(t *testing.T) {
	handlers := newTestHandlers(t)

	rec := postJSON(t, handlers.handleCreateCity, "/cities", service.CityInput{Name: "Tunis", Population: 640000})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}

	// Same name again conflicts.
	rec = postJSON(t, handlers.handleCreateCity, "/cities", service.CityInput{Name: "Tunis"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409 for duplicate, got %d", rec.Code)
	}

	rec = postJSON(t, handlers.handleCreateCity, "/cities", service.CityInput{Name: "   "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for blank name, got %d", rec.Code)
	}
}

func TestHandleCreateRoadErrors(t *testing.T) {
	handlers := newTestHandlers(t)

	rec := postJSON(t, handlers.handleCreateCity, "/cities", service.CityInput{Name: "A"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}

	rec = postJSON(t, handlers.handleCreateRoad, "/roads", service.RoadInput{Source: "A", Destination: "Ghost", Distance: 2})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422 for unknown endpoint, got %d", rec.Code)
	}

	rec = postJSON(t, handlers.handleCreateRoad, "/roads", service.RoadInput{Source: "A", Destination: "A", Distance: -1})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for negative distance, got %d", rec.Code)
	}
}

func TestHandleListRoutes(t *testing.T) {
	handlers := newTestHandlers(t)
	seedTriangle(t, handlers)

	req := httptest.NewRequest(http.MethodGet, "/routes?from=A&to=C", nil)
	rec := httptest.NewRecorder()
	handlers.handleListRoutes(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var payload routesQueryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.Routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(payload.Routes))
	}
	if payload.Routes[0].Hops != 2 || payload.Routes[0].Distance != 8 {
		t.Fatalf("expected A-B-C first (2 hops, distance 8), got %+v", payload.Routes[0])
	}
}

func TestHandleListRoutesMissingParams(t *testing.T) {
	handlers := newTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/routes?from=A", nil)
	rec := httptest.NewRecorder()
	handlers.handleListRoutes(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleShortestRouteWithDistance(t *testing.T) {
	handlers := newTestHandlers(t)
	seedTriangle(t, handlers)

	req := httptest.NewRequest(http.MethodGet, "/routes/shortest-with-distance?from=A&to=C", nil)
	rec := httptest.NewRecorder()
	handlers.handleShortestRouteWithDistance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var payload shortestRouteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !payload.Found {
		t.Fatal("expected route to be found")
	}
	if payload.Hops != 1 {
		t.Fatalf("expected 1 hop via direct road, got %d", payload.Hops)
	}
	if payload.Distance == nil || *payload.Distance != 10 {
		t.Fatalf("expected distance 10, got %v", payload.Distance)
	}
}

func TestHandleShortestRouteOmitsDistance(t *testing.T) {
	handlers := newTestHandlers(t)
	seedTriangle(t, handlers)

	req := httptest.NewRequest(http.MethodGet, "/routes/shortest?from=A&to=C", nil)
	rec := httptest.NewRecorder()
	handlers.handleShortestRoute(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var raw map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, present := raw["distance"]; present {
		t.Fatal("expected distance to be omitted from plain shortest response")
	}
}

func TestHandleCheapestRoute(t *testing.T) {
	handlers := newTestHandlers(t)
	seedTriangle(t, handlers)

	req := httptest.NewRequest(http.MethodGet, "/routes/cheapest?from=A&to=C", nil)
	rec := httptest.NewRecorder()
	handlers.handleCheapestRoute(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var payload cheapestRouteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !payload.Found {
		t.Fatal("expected route to be found")
	}
	if payload.Distance != 8 {
		t.Fatalf("expected cheapest distance 8 via B, got %d", payload.Distance)
	}
	if len(payload.Cities) != 3 {
		t.Fatalf("expected 3 cities on cheapest route, got %v", payload.Cities)
	}
}

func TestHandleCheapestRouteNoPath(t *testing.T) {
	handlers := newTestHandlers(t)

	for _, name := range []string{"X", "Y"} {
		if rec := postJSON(t, handlers.handleCreateCity, "/cities", service.CityInput{Name: name}); rec.Code != http.StatusCreated {
			t.Fatalf("seed city %s: expected 201, got %d", name, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/routes/cheapest?from=X&to=Y", nil)
	rec := httptest.NewRecorder()
	handlers.handleCheapestRoute(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 for disconnected pair, got %d", rec.Code)
	}
	var payload cheapestRouteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Found {
		t.Fatal("expected found=false for disconnected pair")
	}
}

func TestHandleListCitiesFilter(t *testing.T) {
	handlers := newTestHandlers(t)
	for _, name := range []string{"Sousse", "Sfax", "Bizerte"} {
		if rec := postJSON(t, handlers.handleCreateCity, "/cities", service.CityInput{Name: name}); rec.Code != http.StatusCreated {
			t.Fatalf("seed city %s: expected 201, got %d", name, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/cities?filter=S", nil)
	rec := httptest.NewRecorder()
	handlers.handleListCities(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var payload citiesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.Cities) != 2 {
		t.Fatalf("expected 2 filtered cities, got %d", len(payload.Cities))
	}
}

func TestRouterHealthAndMethods(t *testing.T) {
	handlers := newTestHandlers(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(logger, RouterDependencies{API: handlers})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 from healthz, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected X-Request-ID header to be set")
	}

	// DELETE is not registered on /cities.
	req = httptest.NewRequest(http.MethodDelete, "/cities", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
}
