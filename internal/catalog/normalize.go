// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

package catalog

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/coursewise/internal/metrics"
	"github.com/tomtom215/coursewise/internal/models"
)

// Normalize makes a loaded catalog safe to score:
//   - courses without a code are dropped
//   - duplicate codes keep the first occurrence
//   - difficulty below 1 becomes models.DefaultDifficulty
//   - negative workload becomes models.DefaultWorkloadHours
//   - a zero ID becomes the course's 1-based position in the result
//   - nil lists become empty lists
//
// Source order is preserved. The input slice is not modified.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Normalize(courses []models.Course, logger zerolog.Logger) []models.Course {
	out := make([]models.Course, 0, len(courses))
	seen := make(map[string]struct{}, len(courses))

	for i := range courses {
		c := courses[i]
		c.Code = strings.TrimSpace(c.Code)
		if c.Code == "" {
			metrics.RecordCatalogSkipped("missing_code")
			logger.Warn().Int("position", i).Str("name", c.Name).Msg("skipping course without code")
			continue
		}
		if _, dup := seen[c.Code]; dup {
			metrics.RecordCatalogSkipped("duplicate_code")
			logger.Warn().Str("code", c.Code).Int("position", i).Msg("skipping duplicate course code")
			continue
		}
		seen[c.Code] = struct{}{}

		if c.Difficulty < 1 {
			c.Difficulty = models.DefaultDifficulty
		}
		if c.WorkloadHours < 0 {
			c.WorkloadHours = models.DefaultWorkloadHours
		}
		if c.ID == 0 {
			c.ID = len(out) + 1
		}
		c.Prerequisites = cloneList(c.Prerequisites)
		c.CareerRelevance = cloneList(c.CareerRelevance)
		c.LearningStyles = cloneList(c.LearningStyles)

		out = append(out, c)
	}
	return out
}

func cloneList(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
