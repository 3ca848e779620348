// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"coursewise.yaml",
	"coursewise.yml",
	"/etc/coursewise/config.yaml",
	"/etc/coursewise/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "COURSEWISE_CONFIG"

// defaultConfig returns a Config struct with all default values.
func defaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "json",
			Caller:    false,
			Timestamp: true,
		},
		Catalog: CatalogConfig{
			Source:  SourceBuiltin,
			Timeout: 10 * time.Second,
			Retries: 2,
			Table:   "courses",
			Builtin: BuiltinDefault,
		},
		Recommend: RecommendConfig{
			Weights: WeightsConfig{
				Career:     0.25,
				Learning:   0.20,
				Workload:   0.15,
				Difficulty: 0.20,
				Major:      0.20,
			},
			DefaultTopN:    8,
			MinConfidence:  0,
			MajorBonus:     1.3,
			IncludeFactors: false,
			Cache: CacheConfig{
				Enabled: false,
				Size:    256,
				TTL:     5 * time.Minute,
			},
		},
	}
}

// Default returns the built-in configuration without reading any file or
// environment variable.
func Default() *Config {
	return defaultConfig()
}

// Load builds the configuration from defaults, an optional YAML file and
// environment variables, then validates it.
//
// path is the file named on the command line. When empty, COURSEWISE_CONFIG
// and DefaultConfigPaths are searched and a missing file is not an error;
// an explicit path that cannot be read is.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	configPath := path
	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
	"log_file":   "logging.file",

	// Catalog
	"coursewise_catalog_source":  "catalog.source",
	"coursewise_catalog_path":    "catalog.path",
	"coursewise_catalog_url":     "catalog.url",
	"coursewise_catalog_timeout": "catalog.timeout",
	"coursewise_catalog_retries": "catalog.retries",
	"coursewise_postgres_dsn":    "catalog.postgres_dsn",
	"coursewise_duckdb_path":     "catalog.duckdb_path",
	"coursewise_catalog_table":   "catalog.table",
	"coursewise_catalog_builtin": "catalog.builtin",

	// Recommendation engine
	"coursewise_top_n":             "recommend.default_top_n",
	"coursewise_min_confidence":    "recommend.min_confidence",
	"coursewise_major_bonus":       "recommend.major_bonus",
	"coursewise_include_factors":   "recommend.include_factors",
	"coursewise_cache_enabled":     "recommend.cache.enabled",
	"coursewise_cache_size":        "recommend.cache.size",
	"coursewise_cache_ttl":         "recommend.cache.ttl",
	"coursewise_weight_career":     "recommend.weights.career",
	"coursewise_weight_learning":   "recommend.weights.learning",
	"coursewise_weight_workload":   "recommend.weights.workload",
	"coursewise_weight_difficulty": "recommend.weights.difficulty",
	"coursewise_weight_major":      "recommend.weights.major",

	// Metrics
	"coursewise_metrics_textfile": "metrics.textfile",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return an empty key and are skipped, so unrelated
// environment never pollutes the configuration.
//
// Examples:
//   - COURSEWISE_TOP_N -> recommend.default_top_n
//   - LOG_LEVEL -> logging.level
//   - COURSEWISE_DUCKDB_PATH -> catalog.duckdb_path
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
