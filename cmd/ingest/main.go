package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/nour/routegraph/backend/internal/config"
	"github.com/nour/routegraph/backend/internal/graph"
	"github.com/nour/routegraph/backend/internal/logging"
	"github.com/nour/routegraph/backend/internal/repository"
	"github.com/nour/routegraph/backend/internal/service"
)

var (
	errMissingDataset = errors.New("dataset not found")
)

func main() {
	var (
		datasetDir = flag.String("dataset-dir", "./seed-data", "Directory containing cities.json and roads.json")
		citiesPath = flag.String("cities", "", "Path to cities.json (overrides dataset-dir)")
		roadsPath  = flag.String("roads", "", "Path to roads.json (overrides dataset-dir)")
		workers    = flag.Int("workers", 4, "Number of concurrent workers for ingestion")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "ingest")

	cityFile, roadFile, err := resolveDatasetPaths(*datasetDir, *citiesPath, *roadsPath)
	if err != nil {
		logger.Error("dataset resolution failed", "error", err)
		os.Exit(1)
	}

	cities, err := loadCityInputs(cityFile)
	if err != nil {
		logger.Error("failed to load cities", "error", err, "path", cityFile)
		os.Exit(1)
	}
	if len(cities) == 0 {
		logger.Error("cities dataset empty", "path", cityFile)
		os.Exit(1)
	}

	roads, err := loadRoadInputs(roadFile)
	if err != nil {
		logger.Error("failed to load roads", "error", err, "path", roadFile)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	graphClient, err := buildGraphClient(ctx, logger, cfg)
	if err != nil {
		logger.Error("failed to create graph client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := graphClient.Close(context.Background()); err != nil {
			logger.Warn("closing graph client failed", "error", err)
		}
	}()

	repo := repository.New(graphClient)
	svc := service.NewRoutingService(repo, service.Options{
		MaxRoutes: cfg.Routing.MaxRoutes,
		MaxDepth:  cfg.Routing.MaxDepth,
	})
	ingestor := service.NewBulkIngestor(svc, *workers)

	start := time.Now()
	logger.Info("ingesting cities", "count", len(cities), "workers", *workers)
	if err := ingestor.IngestCities(ctx, cities); err != nil {
		logger.Error("city ingestion failed", "error", err)
		os.Exit(1)
	}

	// Roads reference cities, so they load second.
	logger.Info("ingesting roads", "count", len(roads))
	if err := ingestor.IngestRoads(ctx, roads); err != nil {
		logger.Error("road ingestion failed", "error", err)
		os.Exit(1)
	}

	logger.Info("ingestion complete", "duration", time.Since(start).String(), "cities", len(cities), "roads", len(roads))
}

func resolveDatasetPaths(baseDir, citiesPath, roadsPath string) (string, string, error) {
	resolve := func(explicitPath, fallbackFile string) (string, error) {
		if explicitPath != "" {
			if _, err := os.Stat(explicitPath); err != nil {
				return "", fmt.Errorf("stat %s: %w", explicitPath, err)
			}
			return explicitPath, nil
		}
		path := filepath.Join(baseDir, fallbackFile)
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%w: %s", errMissingDataset, path)
		}
		return path, nil
	}

	cityFile, err := resolve(citiesPath, "cities.json")
	if err != nil {
		return "", "", err
	}
	roadFile, err := resolve(roadsPath, "roads.json")
	if err != nil {
		return "", "", err
	}
	return cityFile, roadFile, nil
}

func loadCityInputs(path string) ([]service.CityInput, error) {
	var cities []service.CityInput
	if err := loadJSON(path, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

func loadRoadInputs(path string) ([]service.RoadInput, error) {
	var roads []service.RoadInput
	if err := loadJSON(path, &roads); err != nil {
		return nil, err
	}
	return roads, nil
}

func loadJSON(path string, target any) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func buildGraphClient(ctx context.Context, logger *slog.Logger, cfg config.Config) (graph.Client, error) {
	if cfg.Graph.URI == "" {
		return nil, fmt.Errorf("GRAPH_URI is required for ingestion")
	}
	opts := graph.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
	}
	client, err := graph.NewNeo4jClient(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.VerifyConnectivity(ctx); err != nil {
		_ = client.Close(ctx)
		return nil, err
	}
	logger.Info("connected to graph", "uri", cfg.Graph.URI, "database", cfg.Graph.Database)
	return client, nil
}
