package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/nour/routegraph/backend/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		cities      = flag.Int("cities", cfg.NumCities, "number of cities to generate")
		roads       = flag.Int("roads", cfg.NumRoads, "number of roads to generate")
		maxDistance = flag.Int64("max-distance", cfg.MaxDistance, "maximum road distance")
		maxPop      = flag.Int64("max-population", cfg.MaxPopulation, "maximum city population")
		seed        = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir   = flag.String("output-dir", "data", "directory to write cities.json and roads.json")
		writeStdout = flag.Bool("stdout", false, "write combined dataset to stdout instead of files")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumCities:     *cities,
		NumRoads:      *roads,
		MaxDistance:   *maxDistance,
		MaxPopulation: *maxPop,
		Seed:          *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gen := generator.New(genCfg)
	dataset, err := gen.Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if *writeStdout {
		if err := json.NewEncoder(os.Stdout).Encode(dataset); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write dataset to stdout: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := generator.WriteDataset(dataset, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d cities and %d roads into %s\n", len(dataset.Cities), len(dataset.Roads), *outputDir)
}
