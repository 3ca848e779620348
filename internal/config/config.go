// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

// Package config loads Coursewise configuration with koanf v2.
//
// Sources are layered with clear precedence (ENV > File > Defaults):
//  1. Defaults from defaultConfig()
//  2. Optional YAML file (-config flag, COURSEWISE_CONFIG, or coursewise.yaml)
//  3. Environment variables mapped by envTransformFunc
//
// Example coursewise.yaml:
//
//	logging:
//	  level: debug
//	  format: console
//	catalog:
//	  source: duckdb
//	  duckdb_path: /var/lib/coursewise/catalog.duckdb
//	recommend:
//	  default_top_n: 5
//	  min_confidence: 40
//	  weights:
//	    career: 0.3
//	    learning: 0.2
//	    workload: 0.1
//	    difficulty: 0.2
//	    major: 0.2
//	requirements:
//	  majors:
//	    Data Science: [CS101, MATH151, INT010]
package config

import "time"

// Catalog source kinds.
const (
	SourceBuiltin  = "builtin"
	SourceFile     = "file"
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
	SourceDuckDB   = "duckdb"
)

// Built-in catalog modes.
const (
	BuiltinDefault = "default"
	BuiltinEmpty   = "empty"
)

// Config is the complete Coursewise configuration.
type Config struct {
	Logging      LoggingConfig      `koanf:"logging"`
	Catalog      CatalogConfig      `koanf:"catalog"`
	Recommend    RecommendConfig    `koanf:"recommend"`
	Requirements RequirementsConfig `koanf:"requirements"`
	Metrics      MetricsConfig      `koanf:"metrics"`
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller file:line (default: false)
//   - LOG_FILE: append logs to this file instead of stderr
type LoggingConfig struct {
	Level     string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`
	Format    string `koanf:"format" validate:"oneof=json console"`
	Caller    bool   `koanf:"caller"`
	Timestamp bool   `koanf:"timestamp"`
	File      string `koanf:"file"`
}

// CatalogConfig selects where the course catalog is read from. Whatever the
// source, a failed or empty load falls back to the built-in catalog.
//
// Environment Variables:
//   - COURSEWISE_CATALOG_SOURCE: builtin, file, http, postgres, duckdb
//   - COURSEWISE_CATALOG_PATH, COURSEWISE_CATALOG_URL
//   - COURSEWISE_CATALOG_TIMEOUT, COURSEWISE_CATALOG_RETRIES
//   - COURSEWISE_POSTGRES_DSN, COURSEWISE_DUCKDB_PATH, COURSEWISE_CATALOG_TABLE
//   - COURSEWISE_CATALOG_BUILTIN: default or empty (cold-start mode)
type CatalogConfig struct {
	Source      string        `koanf:"source" validate:"oneof=builtin file http postgres duckdb"`
	Path        string        `koanf:"path"`
	URL         string        `koanf:"url" validate:"omitempty,url"`
	Timeout     time.Duration `koanf:"timeout" validate:"gt=0"`
	Retries     int           `koanf:"retries" validate:"min=0,max=10"`
	PostgresDSN string        `koanf:"postgres_dsn"`
	DuckDBPath  string        `koanf:"duckdb_path"`
	Table       string        `koanf:"table" validate:"required"`
	Builtin     string        `koanf:"builtin" validate:"oneof=default empty"`
}

// RecommendConfig tunes the ranking engine.
//
// Environment Variables:
//   - COURSEWISE_TOP_N: default list length (default: 8)
//   - COURSEWISE_MIN_CONFIDENCE: drop entries below this score, never the top one (default: 0)
//   - COURSEWISE_MAJOR_BONUS: multiplier for major requirements (default: 1.3)
//   - COURSEWISE_INCLUDE_FACTORS: add per-factor scores to the output (default: false)
//   - COURSEWISE_CACHE_ENABLED, COURSEWISE_CACHE_SIZE, COURSEWISE_CACHE_TTL
//   - COURSEWISE_WEIGHT_CAREER ... COURSEWISE_WEIGHT_MAJOR
type RecommendConfig struct {
	Weights        WeightsConfig `koanf:"weights"`
	DefaultTopN    int           `koanf:"default_top_n" validate:"min=1"`
	MinConfidence  float64       `koanf:"min_confidence" validate:"finite,gte=0,lte=100"`
	MajorBonus     float64       `koanf:"major_bonus" validate:"finite,gte=1,lte=10"`
	IncludeFactors bool          `koanf:"include_factors"`
	Cache          CacheConfig   `koanf:"cache"`
}

// WeightsConfig holds the per-factor weights. They need not sum to 1.
type WeightsConfig struct {
	Career     float64 `koanf:"career" validate:"finite,gte=0"`
	Learning   float64 `koanf:"learning" validate:"finite,gte=0"`
	Workload   float64 `koanf:"workload" validate:"finite,gte=0"`
	Difficulty float64 `koanf:"difficulty" validate:"finite,gte=0"`
	Major      float64 `koanf:"major" validate:"finite,gte=0"`
}

// CacheConfig controls the optional in-process result cache.
type CacheConfig struct {
	Enabled bool          `koanf:"enabled"`
	Size    int           `koanf:"size" validate:"min=1"`
	TTL     time.Duration `koanf:"ttl" validate:"gt=0"`
}

// RequirementsConfig overrides or extends the built-in major requirement
// table. A listed major replaces the built-in set for that major entirely.
type RequirementsConfig struct {
	Majors map[string][]string `koanf:"majors"`
}

// MetricsConfig controls metrics export.
//
// Environment Variables:
//   - COURSEWISE_METRICS_TEXTFILE: write Prometheus text format here after each run
type MetricsConfig struct {
	Textfile string `koanf:"textfile"`
}
