// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

package recommend

import (
	"time"

	"github.com/tomtom215/coursewise/internal/models"
)

// Request contains parameters for a recommendation request.
type Request struct {
	// RequestID is a unique identifier for tracing.
	// Taken from the context request ID, or generated, when empty.
	RequestID string `json:"request_id,omitempty"`

	// Profile is the student being advised.
	Profile models.StudentProfile `json:"profile"`

	// Weights overrides the engine's factor weights for this request.
	// Nil uses the configured weights.
	Weights *Weights `json:"weights,omitempty"`

	// TopN is the number of recommendations to return.
	// Values below 1 are treated as 1. There is no upper bound; the
	// result is never longer than the catalog.
	TopN int `json:"top_n"`
}

// Response contains the recommendation results.
type Response struct {
	// Recommendations are ranked by confidence, highest first.
	Recommendations []models.Recommendation `json:"recommendations"`

	// TotalCandidates is the number of catalog courses scored.
	TotalCandidates int `json:"total_candidates"`

	// Metadata contains request processing information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains information about how recommendations were generated.
type ResponseMetadata struct {
	RequestID string    `json:"request_id"`
	Major     string    `json:"major"`
	GPA       float64   `json:"gpa"`
	TopN      int       `json:"top_n"`
	LatencyMS int64     `json:"latency_ms"`
	CacheHit  bool      `json:"cache_hit"`
	Timestamp time.Time `json:"timestamp"`
}

// cacheKeyParams is the part of a request that determines its result.
type cacheKeyParams struct {
	Profile models.StudentProfile `json:"profile"`
	Weights Weights               `json:"weights"`
	TopN    int                   `json:"top_n"`
}

// clone returns a deep copy so cached responses are never shared with callers.
func (r *Response) clone() *Response {
	out := *r
	out.Recommendations = make([]models.Recommendation, len(r.Recommendations))
	for i := range r.Recommendations {
		rec := r.Recommendations[i]
		if rec.Factors != nil {
			f := *rec.Factors
			rec.Factors = &f
		}
		out.Recommendations[i] = rec
	}
	return &out
}
