// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tomtom215/coursewise/internal/models"
)

// PostgresSource reads the catalog from a Postgres table.
//
// Expected schema (list columns are text[]):
//
//	CREATE TABLE courses (
//	    id               integer,
//	    code             text NOT NULL,
//	    name             text,
//	    department       text,
//	    credits          integer,
//	    difficulty       integer,
//	    prerequisites    text[],
//	    career_relevance text[],
//	    learning_style   text[],
//	    workload_hours   double precision
//	);
type PostgresSource struct {
	DSN     string
	Table   string
	Timeout time.Duration
}

// NewPostgresSource creates a PostgresSource.
func NewPostgresSource(dsn, table string, timeout time.Duration) *PostgresSource {
	return &PostgresSource{DSN: dsn, Table: table, Timeout: timeout}
}

// Name implements Source.
func (p *PostgresSource) Name() string { return "postgres" }

// Load implements Source. A short-lived pool is opened for the single query.
func (p *PostgresSource) Load(ctx context.Context) ([]models.Course, error) {
	pcfg, err := pgxpool.ParseConfig(p.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if p.Timeout > 0 {
		pcfg.ConnConfig.ConnectTimeout = p.Timeout
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	pcfg.MaxConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	rows, err := pool.Query(ctx, selectCoursesQuery(p.Table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", p.Table, err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[courseRow])
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", p.Table, err)
	}

	courses := make([]models.Course, 0, len(records))
	for i := range records {
		courses = append(courses, records[i].toCourse())
	}
	return courses, nil
}
