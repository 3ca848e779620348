// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tomtom215/coursewise/internal/models"
)

// FileSource reads a JSON catalog document (an array of course objects) from disk.
type FileSource struct {
	Path string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Name implements Source.
func (f *FileSource) Name() string { return "file" }

// Load implements Source.
func (f *FileSource) Load(ctx context.Context) ([]models.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, f.Path)
		}
		return nil, fmt.Errorf("read catalog %s: %w", f.Path, err)
	}

	courses, err := models.DecodeCourses(data)
	if err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", f.Path, err)
	}
	return courses, nil
}
