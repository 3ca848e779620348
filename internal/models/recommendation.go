// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

package models

// Recommendation is one ranked course for a student.
// It is created fresh for every request and never persisted.
type Recommendation struct {
	CourseID           int           `json:"course_id"`
	CourseCode         string        `json:"course_code"`
	CourseName         string        `json:"course_name"`
	Department         string        `json:"department"`
	Credits            int           `json:"credits"`
	ConfidenceScore    float64       `json:"confidence_score"`
	Reasoning          string        `json:"reasoning"`
	IsMajorRequirement bool          `json:"is_major_requirement"`
	Factors            *FactorScores `json:"factors,omitempty"`
}

// FactorScores is the per-axis breakdown behind a confidence score.
// Every value is normalized to [0, 1].
type FactorScores struct {
	Career     float64 `json:"career"`
	Learning   float64 `json:"learning"`
	Workload   float64 `json:"workload"`
	Difficulty float64 `json:"difficulty"`
	Major      float64 `json:"major"`
}

// ErrorDocument is the structured error emitted on the primary output channel
// when a run cannot produce recommendations.
type ErrorDocument struct {
	Error string `json:"error"`
}
