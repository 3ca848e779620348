// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

package catalog

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/coursewise/internal/config"
)

// NewSource builds the primary Source selected by cfg. It returns nil for
// the builtin source, which the Provider serves as its fallback.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSource(cfg config.CatalogConfig, logger zerolog.Logger) (Source, error) {
	switch cfg.Source {
	case config.SourceBuiltin, "":
		return nil, nil
	case config.SourceFile:
		return NewFileSource(cfg.Path), nil
	case config.SourceHTTP:
		return NewHTTPSource(cfg.URL, HTTPOptions{
			Timeout: cfg.Timeout,
			Retries: cfg.Retries,
		}, logger), nil
	case config.SourcePostgres:
		return NewPostgresSource(cfg.PostgresDSN, cfg.Table, cfg.Timeout), nil
	case config.SourceDuckDB:
		return NewDuckDBSource(cfg.DuckDBPath, cfg.Table), nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}

// NewProviderFromConfig wires the configured source to the built-in fallback.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewProviderFromConfig(cfg config.CatalogConfig, logger zerolog.Logger) (*Provider, error) {
	primary, err := NewSource(cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewProvider(primary, Builtin(cfg.Builtin), logger), nil
}
