package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the subset of Config that may be set from a YAML file.
// Pointer fields distinguish "unset" from zero values so the file only
// overrides what it names.
type fileConfig struct {
	Server struct {
		Host           *string `yaml:"host"`
		Port           *int    `yaml:"port"`
		MetricsEnabled *bool   `yaml:"metrics_enabled"`
		AllowedOrigins *string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Graph struct {
		Backend  *string `yaml:"backend"`
		URI      *string `yaml:"uri"`
		Database *string `yaml:"database"`
		Username *string `yaml:"username"`
		Password *string `yaml:"password"`
	} `yaml:"graph"`
	Routing struct {
		MaxRoutes *int `yaml:"max_routes"`
		MaxDepth  *int `yaml:"max_depth"`
	} `yaml:"routing"`
	Logging struct {
		Level  *string `yaml:"level"`
		Format *string `yaml:"format"`
	} `yaml:"logging"`
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Server.Host != nil {
		cfg.HTTP.Host = *fc.Server.Host
	}
	if fc.Server.Port != nil {
		if *fc.Server.Port <= 0 || *fc.Server.Port > 65535 {
			return fmt.Errorf("port %d is out of range", *fc.Server.Port)
		}
		cfg.HTTP.Port = *fc.Server.Port
	}
	if fc.Server.MetricsEnabled != nil {
		cfg.HTTP.MetricsEnabled = *fc.Server.MetricsEnabled
	}
	if fc.Server.AllowedOrigins != nil {
		cfg.HTTP.AllowedOriginsCSV = *fc.Server.AllowedOrigins
	}

	if fc.Graph.Backend != nil {
		if *fc.Graph.Backend != BackendMemory && *fc.Graph.Backend != BackendNeo4j {
			return fmt.Errorf("invalid graph backend %q in %s", *fc.Graph.Backend, path)
		}
		cfg.Graph.Backend = *fc.Graph.Backend
	}
	if fc.Graph.URI != nil {
		cfg.Graph.URI = *fc.Graph.URI
	}
	if fc.Graph.Database != nil {
		cfg.Graph.Database = *fc.Graph.Database
	}
	if fc.Graph.Username != nil {
		cfg.Graph.Username = *fc.Graph.Username
	}
	if fc.Graph.Password != nil {
		cfg.Graph.Password = *fc.Graph.Password
	}

	if fc.Routing.MaxRoutes != nil {
		cfg.Routing.MaxRoutes = *fc.Routing.MaxRoutes
	}
	if fc.Routing.MaxDepth != nil {
		cfg.Routing.MaxDepth = *fc.Routing.MaxDepth
	}

	if fc.Logging.Level != nil {
		cfg.Logging.Level = *fc.Logging.Level
	}
	if fc.Logging.Format != nil {
		cfg.Logging.Format = *fc.Logging.Format
	}

	return nil
}
