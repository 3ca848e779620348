// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

package catalog

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/coursewise/internal/logging"
	"github.com/tomtom215/coursewise/internal/metrics"
	"github.com/tomtom215/coursewise/internal/models"
)

// Load results recorded in metrics.
const (
	resultSuccess  = "success"
	resultError    = "error"
	resultEmpty    = "empty"
	resultFallback = "fallback"
)

// Provider loads a catalog from a primary Source and falls back to the
// built-in catalog whenever the primary fails or yields nothing.
type Provider struct {
	primary  Source
	fallback Source
	logger   zerolog.Logger
}

// NewProvider creates a Provider. primary may be nil, in which case the
// fallback is used directly. A nil fallback means the default built-in catalog.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewProvider(primary, fallback Source, logger zerolog.Logger) *Provider {
	if fallback == nil {
		fallback = Builtin("")
	}
	return &Provider{
		primary:  primary,
		fallback: fallback,
		logger:   logger.With().Str("component", "catalog").Logger(),
	}
}

// Load returns the normalized catalog. It never fails: problems with the
// primary source are logged at warn level and the fallback is returned.
// Log lines carry the request_id stored in ctx, if any.
func (p *Provider) Load(ctx context.Context) []models.Course {
	logger := p.logger
	if id := logging.RequestIDFromContext(ctx); id != "" {
		logger = logger.With().Str("request_id", id).Logger()
	}

	if p.primary != nil {
		if courses, ok := p.loadPrimary(ctx, logger); ok {
			return courses
		}
	}
	return p.loadFallback(ctx, logger)
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func (p *Provider) loadPrimary(ctx context.Context, logger zerolog.Logger) ([]models.Course, bool) {
	name := p.primary.Name()
	start := time.Now()

	raw, err := p.primary.Load(ctx)
	if err != nil {
		metrics.RecordCatalogLoad(name, resultError, time.Since(start))
		logger.Warn().Err(err).Str("source", name).Msg("catalog source failed, using built-in catalog")
		return nil, false
	}

	courses := Normalize(raw, logger)
	if len(courses) == 0 {
		metrics.RecordCatalogLoad(name, resultEmpty, time.Since(start))
		logger.Warn().Err(ErrEmptyCatalog).Str("source", name).Msg("catalog source is empty, using built-in catalog")
		return nil, false
	}

	metrics.RecordCatalogLoad(name, resultSuccess, time.Since(start))
	metrics.SetCatalogSize(len(courses))
	logger.Debug().Str("source", name).Int("courses", len(courses)).Msg("catalog loaded")
	return courses, true
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func (p *Provider) loadFallback(ctx context.Context, logger zerolog.Logger) []models.Course {
	name := p.fallback.Name()
	start := time.Now()

	result := resultSuccess
	if p.primary != nil {
		result = resultFallback
	}

	// The fallback is loaded even when ctx has ended so callers always
	// get a usable catalog.
	raw, err := p.fallback.Load(context.WithoutCancel(ctx))
	if err != nil {
		metrics.RecordCatalogLoad(name, resultError, time.Since(start))
		logger.Error().Err(err).Str("source", name).Msg("fallback catalog failed to load")
		metrics.SetCatalogSize(0)
		return []models.Course{}
	}

	courses := Normalize(raw, logger)
	metrics.RecordCatalogLoad(name, result, time.Since(start))
	metrics.SetCatalogSize(len(courses))
	logger.Debug().Str("source", name).Int("courses", len(courses)).Msg("catalog loaded")
	return courses
}
