// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/coursewise/internal/validation"
)

// DefaultMajorBonus is the multiplier applied to major requirements.
const DefaultMajorBonus = 1.3

// Config contains all configuration for the ranking engine.
type Config struct {
	// Weights defines the relative contribution of each factor.
	// Weights need not sum to 1.0.
	Weights Weights `json:"weights"`

	// MinConfidence drops results below this confidence (0-100).
	// The top-ranked result is always kept. Zero disables the filter.
	MinConfidence float64 `json:"min_confidence" validate:"finite,gte=0,lte=100"`

	// MajorBonus multiplies the aggregate score of courses required
	// for the student's major.
	MajorBonus float64 `json:"major_bonus" validate:"finite,gte=1"`

	// IncludeFactors attaches the per-factor breakdown to each result.
	IncludeFactors bool `json:"include_factors"`

	// Cache contains result caching parameters.
	Cache CacheConfig `json:"cache"`
}

// Weights defines the relative contribution of each scoring factor.
type Weights struct {
	Career     float64 `json:"career" validate:"finite,gte=0"`
	Learning   float64 `json:"learning" validate:"finite,gte=0"`
	Workload   float64 `json:"workload" validate:"finite,gte=0"`
	Difficulty float64 `json:"difficulty" validate:"finite,gte=0"`
	Major      float64 `json:"major" validate:"finite,gte=0"`
}

// DefaultWeights returns the standard factor weights.
func DefaultWeights() Weights {
	return Weights{
		Career:     0.25,
		Learning:   0.20,
		Workload:   0.15,
		Difficulty: 0.20,
		Major:      0.20,
	}
}

// Sum returns the total of all weights.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w Weights) Sum() float64 {
	return w.Career + w.Learning + w.Workload + w.Difficulty + w.Major
}

// Validate checks the weights for errors.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w Weights) Validate() error {
	if err := validation.ValidateStruct(w); err != nil {
		return err
	}
	if w.Sum() <= 0 {
		return fmt.Errorf("weights must not all be zero")
	}
	return nil
}

// CacheConfig contains result caching parameters.
type CacheConfig struct {
	// Enabled turns on the in-process result cache.
	Enabled bool `json:"enabled"`

	// Size is the maximum number of cached responses.
	Size int `json:"size" validate:"gte=0"`

	// TTL is how long a cached response stays valid.
	TTL time.Duration `json:"ttl" validate:"gte=0"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights:       DefaultWeights(),
		MinConfidence: 0,
		MajorBonus:    DefaultMajorBonus,
		Cache: CacheConfig{
			Enabled: false,
			Size:    256,
			TTL:     5 * time.Minute,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	return nil
}
