package repository

import (
	"context"
	"fmt"

	"github.com/nour/routegraph/backend/internal/domain"
	"github.com/nour/routegraph/backend/internal/graph"
	"github.com/nour/routegraph/backend/internal/routing"
)

// weightedSearchDepth bounds the exhaustive weighted-route query. Unlike
// shortestPath, the reduce-and-order idiom enumerates candidate paths, so it
// needs a hop ceiling to stay tractable on dense networks.
const weightedSearchDepth = 12

// Repository answers routing queries by delegating storage and traversal to
// an external graph engine through Cypher. It implements the same contract as
// the in-memory routing.Store, so the two are interchangeable behind the
// service facade.
type Repository struct {
	client graph.Client
}

// New instantiates a Repository backed by the supplied graph client.
func New(client graph.Client) *Repository {
	return &Repository{client: client}
}

// AddCity creates a city node, rejecting names that are already present.
func (r *Repository) AddCity(ctx context.Context, city domain.City) error {
	if city.Name == "" {
		return fmt.Errorf("%w: city name is required", domain.ErrInvalidInput)
	}

	res, err := r.client.ExecuteRead(ctx, cityExistsCypher, map[string]any{
		"name": city.Name,
	})
	if err != nil {
		return fmt.Errorf("check city %s: %w", city.Name, err)
	}
	if len(res.Records) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateCity, city.Name)
	}

	_, err = r.client.ExecuteWrite(ctx, createCityCypher, map[string]any{
		"name":       city.Name,
		"population": city.Population,
	})
	if err != nil {
		return fmt.Errorf("create city %s: %w", city.Name, err)
	}
	return nil
}

// AddRoad merges a directed road between two existing cities. The MERGE is
// keyed on the endpoint pair and only sets the distance on creation, so
// repeat calls are no-ops.
func (r *Repository) AddRoad(ctx context.Context, road domain.Road) error {
	if road.Distance < 0 {
		return fmt.Errorf("%w: got %d", domain.ErrInvalidDistance, road.Distance)
	}

	res, err := r.client.ExecuteWrite(ctx, mergeRoadCypher, map[string]any{
		"source":      road.Source,
		"destination": road.Destination,
		"distance":    road.Distance,
	})
	if err != nil {
		return fmt.Errorf("merge road %s->%s: %w", road.Source, road.Destination, err)
	}
	if len(res.Records) == 0 {
		return fmt.Errorf("%w: %s or %s", domain.ErrUnknownCity, road.Source, road.Destination)
	}
	return nil
}

// ListCities returns all cities, optionally filtered by a case-sensitive
// name substring.
func (r *Repository) ListCities(ctx context.Context, filter string) ([]domain.City, error) {
	res, err := r.client.ExecuteRead(ctx, listCitiesCypher, map[string]any{
		"filter": filter,
	})
	if err != nil {
		return nil, fmt.Errorf("list cities query: %w", err)
	}

	cities := make([]domain.City, 0, len(res.Records))
	for _, record := range res.Records {
		cities = append(cities, domain.City{
			Name:       toString(record["name"]),
			Population: toInt64(record["population"]),
		})
	}
	return cities, nil
}

// ListRoads returns every directed road with its distance.
func (r *Repository) ListRoads(ctx context.Context) ([]domain.Road, error) {
	res, err := r.client.ExecuteRead(ctx, listRoadsCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("list roads query: %w", err)
	}

	roads := make([]domain.Road, 0, len(res.Records))
	for _, record := range res.Records {
		roads = append(roads, domain.Road{
			Source:      toString(record["source"]),
			Destination: toString(record["destination"]),
			Distance:    toInt64(record["distance"]),
		})
	}
	return roads, nil
}

// FindRoutes enumerates up to maxRoutes simple directed routes. The hop bound
// has to be spliced into the variable-length pattern because Cypher does not
// parameterize it.
func (r *Repository) FindRoutes(ctx context.Context, source, destination string, maxRoutes, maxDepth int) ([]domain.Route, error) {
	if maxRoutes <= 0 {
		maxRoutes = routing.DefaultMaxRoutes
	}
	if maxDepth <= 0 {
		maxDepth = routing.DefaultMaxDepth
	}

	query := fmt.Sprintf(findRoutesCypherTemplate, maxDepth)
	res, err := r.client.ExecuteRead(ctx, query, map[string]any{
		"source":      source,
		"destination": destination,
		"limit":       maxRoutes,
	})
	if err != nil {
		return nil, fmt.Errorf("find routes query: %w", err)
	}

	routes := make([]domain.Route, 0, len(res.Records))
	for _, record := range res.Records {
		route := recordToRoute(record)
		if len(route.Cities) == 0 {
			continue
		}
		routes = append(routes, route)
	}
	return routes, nil
}

// ShortestByHops delegates to the engine's built-in shortestPath over the
// undirected view of the road network.
func (r *Repository) ShortestByHops(ctx context.Context, source, destination string) (domain.Route, bool, error) {
	if source == destination {
		return r.selfRoute(ctx, source)
	}

	res, err := r.client.ExecuteRead(ctx, shortestHopsCypher, map[string]any{
		"source":      source,
		"destination": destination,
	})
	if err != nil {
		return domain.Route{}, false, fmt.Errorf("shortest hops query: %w", err)
	}
	if len(res.Records) == 0 {
		return domain.Route{}, false, nil
	}

	route := recordToRoute(res.Records[0])
	if len(route.Cities) == 0 {
		return domain.Route{}, false, nil
	}
	return route, true, nil
}

// ShortestByDistance enumerates undirected candidate paths and orders them by
// cumulative distance, returning the cheapest.
func (r *Repository) ShortestByDistance(ctx context.Context, source, destination string) (domain.Route, bool, error) {
	if source == destination {
		return r.selfRoute(ctx, source)
	}

	query := fmt.Sprintf(cheapestRouteCypherTemplate, weightedSearchDepth)
	res, err := r.client.ExecuteRead(ctx, query, map[string]any{
		"source":      source,
		"destination": destination,
	})
	if err != nil {
		return domain.Route{}, false, fmt.Errorf("cheapest route query: %w", err)
	}
	if len(res.Records) == 0 {
		return domain.Route{}, false, nil
	}

	route := recordToRoute(res.Records[0])
	if len(route.Cities) == 0 {
		return domain.Route{}, false, nil
	}
	return route, true, nil
}

// selfRoute reports the zero-cost one-city route, provided the city exists.
func (r *Repository) selfRoute(ctx context.Context, name string) (domain.Route, bool, error) {
	res, err := r.client.ExecuteRead(ctx, cityExistsCypher, map[string]any{
		"name": name,
	})
	if err != nil {
		return domain.Route{}, false, fmt.Errorf("check city %s: %w", name, err)
	}
	if len(res.Records) == 0 {
		return domain.Route{}, false, nil
	}
	return domain.Route{Cities: []string{name}}, true, nil
}

func recordToRoute(record graph.Record) domain.Route {
	route := domain.Route{
		Distance: toInt64(record["distance"]),
		Hops:     int(toInt64(record["hops"])),
	}
	route.Cities = toStringSlice(record["cities"])
	if route.Hops == 0 && len(route.Cities) > 1 {
		route.Hops = len(route.Cities) - 1
	}
	return route
}

func toString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func toInt64(val any) int64 {
	switch v := val.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func toStringSlice(val any) []string {
	raw, ok := val.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s := toString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

const cityExistsCypher = `
MATCH (c:City {name: $name})
RETURN c.name AS name
`

const createCityCypher = `
CREATE (c:City {name: $name, population: $population})
RETURN c.name AS name
`

const listCitiesCypher = `
MATCH (c:City)
WHERE $filter = "" OR c.name CONTAINS $filter
RETURN c.name AS name, c.population AS population
`

const listRoadsCypher = `
MATCH (a:City)-[r:ROAD]->(b:City)
RETURN a.name AS source, b.name AS destination, r.distance AS distance
`

const mergeRoadCypher = `
MATCH (a:City {name: $source})
MATCH (b:City {name: $destination})
MERGE (a)-[r:ROAD]->(b)
ON CREATE SET r.distance = $distance
RETURN a.name AS source
`

const findRoutesCypherTemplate = `
MATCH p = (a:City {name: $source})-[:ROAD*1..%d]->(b:City {name: $destination})
WHERE all(n IN nodes(p) WHERE single(m IN nodes(p) WHERE m = n))
RETURN [n IN nodes(p) | n.name] AS cities,
       reduce(total = 0, r IN relationships(p) | total + r.distance) AS distance,
       length(p) AS hops
ORDER BY hops, distance
LIMIT $limit
`

const shortestHopsCypher = `
MATCH (a:City {name: $source}), (b:City {name: $destination})
MATCH p = shortestPath((a)-[:ROAD*]-(b))
RETURN [n IN nodes(p) | n.name] AS cities,
       reduce(total = 0, r IN relationships(p) | total + r.distance) AS distance,
       length(p) AS hops
`

const cheapestRouteCypherTemplate = `
MATCH p = (a:City {name: $source})-[:ROAD*1..%d]-(b:City {name: $destination})
WHERE all(n IN nodes(p) WHERE single(m IN nodes(p) WHERE m = n))
RETURN [n IN nodes(p) | n.name] AS cities,
       reduce(total = 0, r IN relationships(p) | total + r.distance) AS distance,
       length(p) AS hops
ORDER BY distance, hops
LIMIT 1
`
