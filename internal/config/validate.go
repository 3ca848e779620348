// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tomtom215/coursewise/internal/validation"
)

// tableNamePattern restricts catalog table names to plain (optionally
// schema-qualified) identifiers since they are interpolated into SQL.
var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Validate checks struct tags and the cross-field rules tags cannot express.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	return c.validateRequirements()
}

func (c *Config) validateCatalog() error {
	cat := c.Catalog
	switch cat.Source {
	case SourceFile:
		if strings.TrimSpace(cat.Path) == "" {
			return fmt.Errorf("catalog.path is required when catalog.source=%s", SourceFile)
		}
	case SourceHTTP:
		if cat.URL == "" {
			return fmt.Errorf("catalog.url is required when catalog.source=%s", SourceHTTP)
		}
		if !strings.HasPrefix(cat.URL, "http://") && !strings.HasPrefix(cat.URL, "https://") {
			return fmt.Errorf("catalog.url must use http or https scheme: %s", cat.URL)
		}
	case SourcePostgres:
		if cat.PostgresDSN == "" {
			return fmt.Errorf("catalog.postgres_dsn is required when catalog.source=%s", SourcePostgres)
		}
	case SourceDuckDB:
		if cat.DuckDBPath == "" {
			return fmt.Errorf("catalog.duckdb_path is required when catalog.source=%s", SourceDuckDB)
		}
	}

	if !tableNamePattern.MatchString(cat.Table) {
		return fmt.Errorf("catalog.table %q is not a valid SQL identifier", cat.Table)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	w := c.Recommend.Weights
	if w.Career+w.Learning+w.Workload+w.Difficulty+w.Major <= 0 {
		return errors.New("recommend.weights must contain at least one positive weight")
	}
	return nil
}

func (c *Config) validateRequirements() error {
	for major, codes := range c.Requirements.Majors {
		if strings.TrimSpace(major) == "" {
			return errors.New("requirements.majors contains an empty major name")
		}
		for _, code := range codes {
			if strings.TrimSpace(code) == "" {
				return fmt.Errorf("requirements.majors[%s] contains an empty course code", major)
			}
		}
	}
	return nil
}
