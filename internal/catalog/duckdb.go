// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/coursewise/internal/models"
)

// DuckDBSource reads the catalog from a table in a DuckDB database file.
// The database is opened read-only; list columns may be VARCHAR[] or a
// comma-separated VARCHAR.
type DuckDBSource struct {
	Path  string
	Table string
}

// NewDuckDBSource creates a DuckDBSource.
func NewDuckDBSource(path, table string) *DuckDBSource {
	return &DuckDBSource{Path: path, Table: table}
}

// Name implements Source.
func (d *DuckDBSource) Name() string { return "duckdb" }

// Load implements Source.
func (d *DuckDBSource) Load(ctx context.Context) ([]models.Course, error) {
	if _, err := os.Stat(d.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, d.Path)
		}
		return nil, fmt.Errorf("stat duckdb %s: %w", d.Path, err)
	}

	// Disable auto-install/auto-load so a restricted network cannot stall the load.
	connStr := d.Path + "?access_mode=read_only&autoinstall_known_extensions=false&autoload_known_extensions=false"
	db, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("open duckdb %s: %w", d.Path, err)
	}
	defer db.Close()

	return queryCourses(ctx, db, d.Table)
}

// queryCourses runs the catalog query against a database/sql handle.
func queryCourses(ctx context.Context, db *sql.DB, table string) ([]models.Course, error) {
	rows, err := db.QueryContext(ctx, selectCoursesQuery(table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var (
			id, credits, difficulty sql.NullInt64
			code, name, department  sql.NullString
			prereqs, careers, style any
			workload                sql.NullFloat64
		)
		if err := rows.Scan(&id, &code, &name, &department, &credits, &difficulty,
			&prereqs, &careers, &style, &workload); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}

		row := courseRow{
			Prerequisites:   listValue(prereqs),
			CareerRelevance: listValue(careers),
			LearningStyles:  listValue(style),
		}
		if id.Valid {
			row.ID = &id.Int64
		}
		if code.Valid {
			row.Code = &code.String
		}
		if name.Valid {
			row.Name = &name.String
		}
		if department.Valid {
			row.Department = &department.String
		}
		if credits.Valid {
			row.Credits = &credits.Int64
		}
		if difficulty.Valid {
			row.Difficulty = &difficulty.Int64
		}
		if workload.Valid {
			row.WorkloadHours = &workload.Float64
		}
		courses = append(courses, row.toCourse())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return courses, nil
}
