package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/nour/routegraph/backend/internal/config"
	"github.com/nour/routegraph/backend/internal/graph"
	"github.com/nour/routegraph/backend/internal/logging"
	"github.com/nour/routegraph/backend/internal/repository"
	"github.com/nour/routegraph/backend/internal/routing"
	"github.com/nour/routegraph/backend/internal/server"
	"github.com/nour/routegraph/backend/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	engine, graphClient, err := buildEngine(ctx, logger, cfg)
	if err != nil {
		logger.Error("failed to build graph engine", "error", err)
		os.Exit(1)
	}
	defer func() {
		if graphClient != nil {
			if err := graphClient.Close(context.Background()); err != nil {
				logger.Warn("closing graph client failed", "error", err)
			}
		}
	}()

	routingService := service.NewRoutingService(engine, service.Options{
		MaxRoutes: cfg.Routing.MaxRoutes,
		MaxDepth:  cfg.Routing.MaxDepth,
	})
	apiHandlers := server.NewAPIHandlers(logger, routingService)

	deps := server.RouterDependencies{
		API:              apiHandlers,
		AllowedOrigins:   parseAllowedOrigins(cfg.HTTP.AllowedOriginsCSV),
		AllowCredentials: true,
		ExposeMetrics:    cfg.HTTP.MetricsEnabled,
	}
	if graphClient != nil {
		deps.Health = server.GraphHealthService{Client: graphClient}
	}
	router := server.NewRouter(logger, deps)

	srv := server.New(logger, cfg.HTTP, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

// buildEngine picks the graph engine from configuration. The in-memory store
// needs no external connectivity; the neo4j backend returns the client so the
// caller can close it and wire health probes.
func buildEngine(ctx context.Context, logger *slog.Logger, cfg config.Config) (service.GraphEngine, graph.Client, error) {
	switch cfg.Graph.Backend {
	case config.BackendMemory:
		logger.Info("using in-memory graph engine")
		return routing.NewStore(), nil, nil
	case config.BackendNeo4j:
		if cfg.Graph.URI == "" {
			return nil, nil, graph.ErrMissingURI
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
			return nil, nil, err
		}
		logger.Info("using neo4j graph engine", "uri", cfg.Graph.URI, "database", cfg.Graph.Database)
		return repository.New(client), client, nil
	default:
		return nil, nil, fmt.Errorf("unsupported graph backend %q", cfg.Graph.Backend)
	}
}

func parseAllowedOrigins(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	var origins []string
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}
