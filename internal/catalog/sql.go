// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

package catalog

import (
	"fmt"
	"math"
	"strings"

	"github.com/tomtom215/coursewise/internal/models"
)

// courseColumns is the column list both SQL sources select, in scan order.
const courseColumns = "id, code, name, department, credits, difficulty, " +
	"prerequisites, career_relevance, learning_style, workload_hours"

// selectCoursesQuery builds the catalog query. table must already be a
// validated identifier (see config.Validate).
func selectCoursesQuery(table string) string {
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY id NULLS LAST, code", courseColumns, table)
}

// courseRow is one catalog row with SQL NULLs preserved as nil pointers.
type courseRow struct {
	ID              *int64   `db:"id"`
	Code            *string  `db:"code"`
	Name            *string  `db:"name"`
	Department      *string  `db:"department"`
	Credits         *int64   `db:"credits"`
	Difficulty      *int64   `db:"difficulty"`
	Prerequisites   []string `db:"prerequisites"`
	CareerRelevance []string `db:"career_relevance"`
	LearningStyles  []string `db:"learning_style"`
	WorkloadHours   *float64 `db:"workload_hours"`
}

// toCourse applies the same defaults the JSON decoder uses.
func (r *courseRow) toCourse() models.Course {
	c := models.Course{
		Difficulty:      models.DefaultDifficulty,
		WorkloadHours:   models.DefaultWorkloadHours,
		Prerequisites:   cleanList(r.Prerequisites),
		CareerRelevance: cleanList(r.CareerRelevance),
		LearningStyles:  cleanList(r.LearningStyles),
	}
	if r.ID != nil {
		c.ID = int(*r.ID)
	}
	if r.Code != nil {
		c.Code = strings.TrimSpace(*r.Code)
	}
	if r.Name != nil {
		c.Name = strings.TrimSpace(*r.Name)
	}
	if r.Department != nil {
		c.Department = strings.TrimSpace(*r.Department)
	}
	if r.Credits != nil {
		c.Credits = int(*r.Credits)
	}
	if r.Difficulty != nil {
		c.Difficulty = int(*r.Difficulty)
	}
	if r.WorkloadHours != nil && !math.IsNaN(*r.WorkloadHours) && !math.IsInf(*r.WorkloadHours, 0) {
		c.WorkloadHours = *r.WorkloadHours
	}
	return c
}

// cleanList trims members and drops empty ones. A nil list becomes empty.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// listValue converts a scanned list column into strings. DuckDB returns LIST
// columns as []any; a plain VARCHAR column is treated as comma-separated.
func listValue(v any) []string {
	switch list := v.(type) {
	case nil:
		return nil
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return strings.Split(list, ",")
	case []byte:
		return strings.Split(string(list), ",")
	default:
		return nil
	}
}
