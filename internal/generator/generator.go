package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/nour/routegraph/backend/internal/service"
)

// Dataset contains the generated cities and roads.
type Dataset struct {
	ID     string              `json:"id"`
	Cities []service.CityInput `json:"cities"`
	Roads  []service.RoadInput `json:"roads"`
}

// Generator produces synthetic road networks aligned with the routing schema.
type Generator struct {
	cfg       Config
	rand      *rand.Rand
	fragments nameFragments
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	if cfg.NumCities <= 0 {
		cfg.NumCities = DefaultConfig().NumCities
	}
	if cfg.NumRoads <= 0 {
		cfg.NumRoads = DefaultConfig().NumRoads
	}
	if cfg.MaxDistance <= 0 {
		cfg.MaxDistance = DefaultConfig().MaxDistance
	}
	if cfg.MaxPopulation <= 0 {
		cfg.MaxPopulation = DefaultConfig().MaxPopulation
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:       cfg,
		rand:      rand.New(rand.NewSource(cfg.Seed)),
		fragments: defaultNameFragments(),
	}
}

// Generate synthesises a connected road network. It respects context
// cancellation. Every city is reachable from the first via a chain of
// roads; the remaining roads are random, deduplicated per ordered pair.
func (g *Generator) Generate(ctx context.Context) (Dataset, error) {
	cities := make([]service.CityInput, g.cfg.NumCities)
	names := g.uniqueCityNames(g.cfg.NumCities)

	for i := 0; i < g.cfg.NumCities; i++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		cities[i] = service.CityInput{
			Name:       names[i],
			Population: g.rand.Int63n(g.cfg.MaxPopulation) + 1,
		}
	}

	roads := make([]service.RoadInput, 0, g.cfg.NumRoads)
	seen := make(map[[2]string]struct{}, g.cfg.NumRoads)

	addRoad := func(src, dst string) {
		key := [2]string{src, dst}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		roads = append(roads, service.RoadInput{
			Source:      src,
			Destination: dst,
			Distance:    g.rand.Int63n(g.cfg.MaxDistance) + 1,
		})
	}

	// Chain first so the map is connected.
	for i := 1; i < len(names) && len(roads) < g.cfg.NumRoads; i++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		addRoad(names[i-1], names[i])
	}

	for attempts := 0; len(roads) < g.cfg.NumRoads && attempts < g.cfg.NumRoads*20; attempts++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		srcIdx := g.rand.Intn(len(names))
		dstIdx := g.rand.Intn(len(names))
		if srcIdx == dstIdx {
			continue
		}
		addRoad(names[srcIdx], names[dstIdx])
	}

	return Dataset{
		ID:     uuid.NewString(),
		Cities: cities,
		Roads:  roads,
	}, nil
}

func (g *Generator) uniqueCityNames(n int) []string {
	names := make([]string, 0, n)
	used := make(map[string]struct{}, n)
	for len(names) < n {
		prefix := g.fragments.prefixes[g.rand.Intn(len(g.fragments.prefixes))]
		stem := g.fragments.stems[g.rand.Intn(len(g.fragments.stems))]
		name := prefix + stem
		if _, dup := used[name]; dup {
			name = fmt.Sprintf("%s %d", name, len(names)+1)
		}
		used[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

type nameFragments struct {
	prefixes []string
	stems    []string
}

func defaultNameFragments() nameFragments {
	return nameFragments{
		prefixes: []string{"North", "South", "East", "West", "New", "Old", "Port", "Fort", "Lake", "Mount", "Grand", "Little"},
		stems:    []string{"haven", "bridge", "field", "wood", "ford", "burg", "ton", "ville", "dale", "crest", "mouth", "gate"},
	}
}
