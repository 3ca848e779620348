// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

package recommend

import (
	"strings"

	"github.com/tomtom215/coursewise/internal/models"
)

// Reasoning clauses, in the order they are emitted.
const (
	reasonStrongCareer   = "Strong alignment with your career interests"
	reasonCareer         = "Relevant to your career goals"
	reasonStyle          = "Matches your learning style perfectly"
	reasonWorkloadFits   = "Workload fits your study schedule"
	reasonWorkloadHeavy  = "Challenging workload - plan accordingly"
	reasonLevelFits      = "Good match for your academic level"
	reasonExtraEffort    = "May require extra effort based on your GPA"
	reasonFoundational   = "Great foundational course for freshmen"
	reasonGeneralDefault = "General education requirement"

	reasonSeparator = " • "
)

// Explain builds the human-readable justification for recommending a course.
func Explain(course *models.Course, major string, required bool, f models.FactorScores) string {
	reasons := make([]string, 0, 6)

	if required {
		reasons = append(reasons, "Required for "+major+" major")
	}

	switch {
	case f.Career > 0.7:
		reasons = append(reasons, reasonStrongCareer)
	case f.Career > 0.4:
		reasons = append(reasons, reasonCareer)
	}

	if f.Learning > 0.8 {
		reasons = append(reasons, reasonStyle)
	}

	switch {
	case f.Workload > 0.8:
		reasons = append(reasons, reasonWorkloadFits)
	case f.Workload < 0.5:
		reasons = append(reasons, reasonWorkloadHeavy)
	}

	switch {
	case f.Difficulty > 0.8:
		reasons = append(reasons, reasonLevelFits)
	case f.Difficulty < 0.6:
		reasons = append(reasons, reasonExtraEffort)
	}

	if course.Difficulty <= 2 {
		reasons = append(reasons, reasonFoundational)
	}

	if len(reasons) == 0 {
		return reasonGeneralDefault
	}
	return strings.Join(reasons, reasonSeparator)
}
