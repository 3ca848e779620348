// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

package catalog

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/tomtom215/coursewise/internal/config"
	"github.com/tomtom215/coursewise/internal/models"
)

//go:embed data/courses.json
var builtinCatalog []byte

// builtinSource serves the embedded default catalog, or nothing in cold-start mode.
type builtinSource struct {
	empty bool
}

// Builtin returns the embedded catalog source. mode is config.BuiltinDefault
// or config.BuiltinEmpty; the latter yields an empty catalog so deployments
// can run without any hard-coded courses.
func Builtin(mode string) Source {
	return &builtinSource{empty: mode == config.BuiltinEmpty}
}

// Name implements Source.
func (b *builtinSource) Name() string {
	if b.empty {
		return "builtin-empty"
	}
	return "builtin"
}

// Load implements Source.
func (b *builtinSource) Load(ctx context.Context) ([]models.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.empty {
		return []models.Course{}, nil
	}
	courses, err := models.DecodeCourses(builtinCatalog)
	if err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}
	return courses, nil
}
