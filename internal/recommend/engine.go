// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/coursewise/internal/cache"
	"github.com/tomtom215/coursewise/internal/logging"
	"github.com/tomtom215/coursewise/internal/metrics"
	"github.com/tomtom215/coursewise/internal/models"
	"github.com/tomtom215/coursewise/internal/requirements"
)

// CatalogLoader supplies the course catalog. catalog.Provider implements it;
// Load never fails, it falls back to a built-in catalog instead.
type CatalogLoader interface {
	Load(ctx context.Context) []models.Course
}

// Engine ranks catalog courses for a student profile.
// The catalog is loaded once at construction and never changes afterwards,
// so the engine is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	courses []models.Course
	index   *requirements.Index

	cache *cache.LRU[*Response]

	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
}

// Stats is a snapshot of engine counters.
type Stats struct {
	Requests    int64 `json:"requests"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
	CacheSize   int   `json:"cache_size"`
	Courses     int   `json:"courses"`
}

// NewEngine creates a ranking engine. It validates cfg and loads the catalog
// from loader before returning. A nil cfg uses DefaultConfig and a nil index
// uses the built-in requirement table.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(ctx context.Context, loader CatalogLoader, index *requirements.Index, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if loader == nil {
		return nil, fmt.Errorf("catalog loader is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if index == nil {
		index = requirements.Default()
	}

	e := &Engine{
		config:  cfg,
		logger:  logging.WithComponent(logger, "recommend"),
		courses: loader.Load(ctx),
		index:   index,
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRU[*Response](cfg.Cache.Size, cfg.Cache.TTL)
	}

	e.logger.Debug().
		Int("courses", len(e.courses)).
		Bool("cache", cfg.Cache.Enabled).
		Msg("engine ready")

	return e, nil
}

// Stats returns a snapshot of engine counters.
func (e *Engine) Stats() Stats {
	stats := Stats{
		Requests:    e.requestCount.Load(),
		CacheHits:   e.cacheHits.Load(),
		CacheMisses: e.cacheMisses.Load(),
		Courses:     len(e.courses),
	}
	if e.cache != nil {
		_, _, stats.CacheSize = e.cache.Stats()
	}
	return stats
}

// Recommend ranks the catalog for the requested profile and returns the top
// results. It fails only when ctx is already done before scoring starts.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	req = e.prepareRequest(ctx, req)
	logger := e.createRequestLogger(req)

	if err := ctx.Err(); err != nil {
		metrics.RecordRecommendCanceled()
		logger.Debug().Err(err).Msg("request canceled before scoring")
		return nil, fmt.Errorf("recommend: %w", err)
	}

	weights := e.config.Weights
	if req.Weights != nil {
		if err := req.Weights.Validate(); err != nil {
			logger.Warn().Err(err).Msg("ignoring invalid request weights")
		} else {
			weights = *req.Weights
		}
	}

	cacheKey := ""
	if e.cache != nil {
		cacheKey = cache.GenerateKey("recommend", cacheKeyParams{
			Profile: req.Profile,
			Weights: weights,
			TopN:    req.TopN,
		})
		if resp := e.tryGetCachedResponse(req, cacheKey, start, logger); resp != nil {
			return resp, nil
		}
	}

	recs := e.rank(req.Profile, weights)
	recs = e.applyMinConfidence(recs)
	if len(recs) > req.TopN {
		recs = recs[:req.TopN]
	}

	resp := &Response{
		Recommendations: recs,
		TotalCandidates: len(e.courses),
		Metadata:        e.buildResponseMetadata(req, start, false),
	}

	if e.cache != nil {
		e.cache.Add(cacheKey, resp.clone())
	}

	e.recordResult(resp, start, logger)
	return resp, nil
}

// prepareRequest applies defaults. The request ID comes from the request,
// then from ctx, and is generated when neither carries one.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(ctx context.Context, req Request) Request {
	if req.RequestID == "" {
		req.RequestID = logging.RequestIDFromContext(ctx)
	}
	if req.RequestID == "" {
		req.RequestID = logging.GenerateRequestID()
	}

	if req.TopN < 1 {
		req.TopN = 1
	}

	if strings.TrimSpace(req.Profile.Major) == "" {
		req.Profile.Major = models.DefaultMajor
	}

	return req
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Logger()
}

// tryGetCachedResponse returns a private copy of a cached response, or nil.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) tryGetCachedResponse(req Request, key string, start time.Time, logger zerolog.Logger) *Response {
	cached, ok := e.cache.Get(key)
	metrics.RecordCacheLookup(ok)
	if !ok {
		e.cacheMisses.Add(1)
		return nil
	}

	e.cacheHits.Add(1)
	resp := cached.clone()
	resp.Metadata = e.buildResponseMetadata(req, start, true)

	logger.Debug().Msg("cache hit")
	e.recordResult(resp, start, logger)
	return resp
}

// rank scores every course and sorts by confidence descending, then code.
//
//nolint:gocritic // hugeParam: profile passed by value for immutability
func (e *Engine) rank(profile models.StudentProfile, weights Weights) []models.Recommendation {
	recs := make([]models.Recommendation, 0, len(e.courses))

	for i := range e.courses {
		course := &e.courses[i]
		required := e.index.IsRequired(course.Code, profile.Major)
		factors := scoreCourse(profile, course, required)

		rec := models.Recommendation{
			CourseID:           course.ID,
			CourseCode:         course.Code,
			CourseName:         course.Name,
			Department:         course.Department,
			Credits:            course.Credits,
			ConfidenceScore:    confidence(factors, weights, required, e.config.MajorBonus),
			Reasoning:          Explain(course, profile.Major, required, factors),
			IsMajorRequirement: required,
		}
		if e.config.IncludeFactors {
			f := factors
			rec.Factors = &f
		}
		recs = append(recs, rec)
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].ConfidenceScore != recs[j].ConfidenceScore {
			return recs[i].ConfidenceScore > recs[j].ConfidenceScore
		}
		return recs[i].CourseCode < recs[j].CourseCode
	})

	return recs
}

// applyMinConfidence drops results below the configured floor, always
// keeping the top-ranked one.
func (e *Engine) applyMinConfidence(recs []models.Recommendation) []models.Recommendation {
	floor := e.config.MinConfidence
	if floor <= 0 || len(recs) == 0 {
		return recs
	}

	kept := recs[:1]
	for _, rec := range recs[1:] {
		if rec.ConfidenceScore >= floor {
			kept = append(kept, rec)
		}
	}
	return kept
}

// buildResponseMetadata constructs response metadata.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) buildResponseMetadata(req Request, start time.Time, cacheHit bool) ResponseMetadata {
	return ResponseMetadata{
		RequestID: req.RequestID,
		Major:     req.Profile.Major,
		GPA:       req.Profile.GPA,
		TopN:      req.TopN,
		LatencyMS: time.Since(start).Milliseconds(),
		CacheHit:  cacheHit,
		Timestamp: time.Now(),
	}
}

// recordResult emits the per-request log line and metrics.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) recordResult(resp *Response, start time.Time, logger zerolog.Logger) {
	scores := make([]float64, len(resp.Recommendations))
	for i := range resp.Recommendations {
		scores[i] = resp.Recommendations[i].ConfidenceScore
	}
	metrics.RecordRecommend(time.Since(start), scores)

	logger.Info().
		Int("count", len(resp.Recommendations)).
		Str("major", resp.Metadata.Major).
		Float64("gpa", resp.Metadata.GPA).
		Bool("cache_hit", resp.Metadata.CacheHit).
		Msg("generated recommendations")
}
