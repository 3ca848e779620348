// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

// Package catalog acquires the course catalog the ranking engine scores.
//
// A Source reads courses from one place (a JSON file, an HTTP document, a
// Postgres or DuckDB table, an embedded fixture). A Provider wraps a primary
// Source with the built-in catalog so that loading never fails: any read,
// parse or connection problem, or an empty result, is logged and counted and
// the built-in catalog is used instead.
package catalog

import (
	"context"
	"errors"

	"github.com/tomtom215/coursewise/internal/models"
)

var (
	// ErrSourceNotFound reports a catalog location that does not exist.
	ErrSourceNotFound = errors.New("catalog source not found")

	// ErrEmptyCatalog reports a source that loaded successfully but held no usable courses.
	ErrEmptyCatalog = errors.New("catalog contains no courses")
)

// Source loads a course catalog from one location.
type Source interface {
	// Name identifies the source kind in logs and metrics (e.g., "file").
	Name() string

	// Load reads the catalog. Returned courses are in source order and not
	// yet normalized.
	Load(ctx context.Context) ([]models.Course, error)
}

// StaticSource serves an in-memory catalog.
type StaticSource struct {
	Label   string
	Courses []models.Course
}

// Name implements Source.
func (s *StaticSource) Name() string {
	if s.Label == "" {
		return "static"
	}
	return s.Label
}

// Load implements Source. The returned slice is a copy.
func (s *StaticSource) Load(ctx context.Context) ([]models.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]models.Course, len(s.Courses))
	copy(out, s.Courses)
	return out, nil
}
