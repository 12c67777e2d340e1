package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/nour/routegraph/backend/internal/domain"
	"github.com/nour/routegraph/backend/internal/metrics"
	"github.com/nour/routegraph/backend/internal/service"
)

// APIHandlers exposes HTTP handlers for the routing REST API.
type APIHandlers struct {
	logger  *slog.Logger
	service *service.RoutingService
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, svc *service.RoutingService) *APIHandlers {
	return &APIHandlers{
		logger:  logger,
		service: svc,
	}
}

func (h *APIHandlers) handleCreateCity(w http.ResponseWriter, r *http.Request) {
	var payload service.CityInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	err := h.service.AddCity(r.Context(), payload)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrDuplicateCity):
		writeError(w, http.StatusConflict, err.Error())
	case err != nil:
		h.logger.Error("failed to create city", "error", err, "city", payload.Name)
		writeError(w, http.StatusInternalServerError, "failed to create city")
	default:
		metrics.CitiesCreated.Inc()
		respondJSON(w, http.StatusCreated, cityPayload{
			Name:       payload.Name,
			Population: payload.Population,
		})
	}
}

func (h *APIHandlers) handleListCities(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")

	cities, err := h.service.ListCities(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list cities", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list cities")
		return
	}

	items := make([]cityPayload, 0, len(cities))
	for _, c := range cities {
		items = append(items, cityPayload{Name: c.Name, Population: c.Population})
	}
	respondJSON(w, http.StatusOK, citiesResponse{Cities: items})
}

func (h *APIHandlers) handleCreateRoad(w http.ResponseWriter, r *http.Request) {
	var payload service.RoadInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	err := h.service.AddRoad(r.Context(), payload)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidDistance):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnknownCity):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case err != nil:
		h.logger.Error("failed to create road", "error", err,
			"source", payload.Source, "destination", payload.Destination)
		writeError(w, http.StatusInternalServerError, "failed to create road")
	default:
		metrics.RoadsCreated.Inc()
		respondJSON(w, http.StatusCreated, roadPayload{
			Source:      payload.Source,
			Destination: payload.Destination,
			Distance:    payload.Distance,
		})
	}
}

func (h *APIHandlers) handleListRoads(w http.ResponseWriter, r *http.Request) {
	roads, err := h.service.ListRoads(r.Context())
	if err != nil {
		h.logger.Error("failed to list roads", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list roads")
		return
	}

	items := make([]roadPayload, 0, len(roads))
	for _, rd := range roads {
		items = append(items, roadPayload{
			Source:      rd.Source,
			Destination: rd.Destination,
			Distance:    rd.Distance,
		})
	}
	respondJSON(w, http.StatusOK, roadsResponse{Roads: items})
}

func (h *APIHandlers) handleListRoutes(w http.ResponseWriter, r *http.Request) {
	source, destination, ok := routeQueryParams(w, r)
	if !ok {
		return
	}

	start := time.Now()
	routes, err := h.service.FindRoutes(r.Context(), source, destination)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		metrics.ObserveRouteQuery("enumerate", "error", time.Since(start))
		h.logger.Error("failed to enumerate routes", "error", err, "from", source, "to", destination)
		writeError(w, http.StatusInternalServerError, "failed to enumerate routes")
		return
	}
	metrics.ObserveRouteQuery("enumerate", listOutcome(len(routes)), time.Since(start))

	items := make([]routePayload, 0, len(routes))
	for _, route := range routes {
		items = append(items, routePayload{
			Cities:   route.Cities,
			Hops:     route.Hops,
			Distance: route.Distance,
		})
	}
	respondJSON(w, http.StatusOK, routesQueryResponse{
		Source:      source,
		Destination: destination,
		Routes:      items,
	})
}

func (h *APIHandlers) handleShortestRoute(w http.ResponseWriter, r *http.Request) {
	h.shortestByHops(w, r, false)
}

func (h *APIHandlers) handleShortestRouteWithDistance(w http.ResponseWriter, r *http.Request) {
	h.shortestByHops(w, r, true)
}

func (h *APIHandlers) shortestByHops(w http.ResponseWriter, r *http.Request, withDistance bool) {
	source, destination, ok := routeQueryParams(w, r)
	if !ok {
		return
	}

	start := time.Now()
	route, found, err := h.service.ShortestByHops(r.Context(), source, destination)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		metrics.ObserveRouteQuery("hops", "error", time.Since(start))
		h.logger.Error("failed to compute shortest route", "error", err, "from", source, "to", destination)
		writeError(w, http.StatusInternalServerError, "failed to compute shortest route")
		return
	}
	metrics.ObserveRouteQuery("hops", foundOutcome(found), time.Since(start))

	resp := shortestRouteResponse{
		Source:      source,
		Destination: destination,
		Found:       found,
		Cities:      route.Cities,
		Hops:        route.Hops,
	}
	if withDistance {
		resp.Distance = &route.Distance
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) handleCheapestRoute(w http.ResponseWriter, r *http.Request) {
	source, destination, ok := routeQueryParams(w, r)
	if !ok {
		return
	}

	start := time.Now()
	route, found, err := h.service.ShortestByDistance(r.Context(), source, destination)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		metrics.ObserveRouteQuery("cheapest", "error", time.Since(start))
		h.logger.Error("failed to compute cheapest route", "error", err, "from", source, "to", destination)
		writeError(w, http.StatusInternalServerError, "failed to compute cheapest route")
		return
	}
	metrics.ObserveRouteQuery("cheapest", foundOutcome(found), time.Since(start))

	respondJSON(w, http.StatusOK, cheapestRouteResponse{
		Source:      source,
		Destination: destination,
		Found:       found,
		Cities:      route.Cities,
		Hops:        route.Hops,
		Distance:    route.Distance,
	})
}

func routeQueryParams(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	query := r.URL.Query()
	source := query.Get("from")
	destination := query.Get("to")
	if source == "" || destination == "" {
		writeError(w, http.StatusBadRequest, "query parameters 'from' and 'to' are required")
		return "", "", false
	}
	return source, destination, true
}

func listOutcome(n int) string {
	if n == 0 {
		return "empty"
	}
	return "found"
}

func foundOutcome(found bool) string {
	if found {
		return "found"
	}
	return "empty"
}

type cityPayload struct {
	Name       string `json:"name"`
	Population int64  `json:"population"`
}

type citiesResponse struct {
	Cities []cityPayload `json:"cities"`
}

type roadPayload struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Distance    int64  `json:"distance"`
}

type roadsResponse struct {
	Roads []roadPayload `json:"roads"`
}

type routePayload struct {
	Cities   []string `json:"cities"`
	Hops     int      `json:"hops"`
	Distance int64    `json:"distance"`
}

type routesQueryResponse struct {
	Source      string         `json:"source"`
	Destination string         `json:"destination"`
	Routes      []routePayload `json:"routes"`
}

type shortestRouteResponse struct {
	Source      string   `json:"source"`
	Destination string   `json:"destination"`
	Found       bool     `json:"found"`
	Cities      []string `json:"cities,omitempty"`
	Hops        int      `json:"hops"`
	Distance    *int64   `json:"distance,omitempty"`
}

type cheapestRouteResponse struct {
	Source      string   `json:"source"`
	Destination string   `json:"destination"`
	Found       bool     `json:"found"`
	Cities      []string `json:"cities,omitempty"`
	Hops        int      `json:"hops"`
	Distance    int64    `json:"distance"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}
