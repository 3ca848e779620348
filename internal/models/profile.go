// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

package models

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Student profile defaults.
const (
	DefaultGPA        = 3.0
	DefaultMajor      = "Undecided"
	DefaultStudyHours = 10.0
)

// StudentProfile holds the declared attributes of a student.
// Every field is optional in the source document.
type StudentProfile struct {
	// StudentID is an opaque identifier, used only for diagnostics.
	StudentID string `json:"student_id,omitempty"`

	// GPA is the grade point average on a 4.0 scale.
	GPA float64 `json:"gpa"`

	// Major is the declared (or intended) major.
	Major string `json:"major"`

	// CareerInterests lists career tags the student cares about.
	CareerInterests []string `json:"career_interests"`

	// LearningStyle is the preferred learning style. Empty means no preference.
	LearningStyle string `json:"learning_style"`

	// StudyHours is the weekly study capacity in hours.
	StudyHours float64 `json:"study_hours"`
}

// DefaultProfile returns the cold-start profile: no interests, default GPA,
// major and study hours.
func DefaultProfile() StudentProfile {
	return StudentProfile{
		GPA:        DefaultGPA,
		Major:      DefaultMajor,
		StudyHours: DefaultStudyHours,
	}
}

// DecodeProfile parses a student profile document (a single JSON object).
//
// Unlike catalogs there is no sensible fallback student, so a document that is
// not a JSON object is an error. Individual fields never fail: a non-numeric
// GPA becomes DefaultGPA, a missing major becomes DefaultMajor, and so on.
func DecodeProfile(data []byte) (StudentProfile, error) {
	if !gjson.ValidBytes(data) {
		return StudentProfile{}, fmt.Errorf("%w: profile is not valid JSON", ErrInputMalformed)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return StudentProfile{}, fmt.Errorf("%w: profile root must be an object, got %s", ErrInputMalformed, root.Type)
	}

	major := stringField(root.Get("major"), "")
	if major == "" {
		major = DefaultMajor
	}

	return StudentProfile{
		StudentID:       idField(root.Get("student_id")),
		GPA:             floatField(root.Get("gpa"), DefaultGPA),
		Major:           major,
		CareerInterests: stringListField(root.Get("career_interests")),
		LearningStyle:   stringField(root.Get("learning_style"), ""),
		StudyHours:      floatField(root.Get("study_hours"), DefaultStudyHours),
	}, nil
}

// idField accepts both string and numeric identifiers.
func idField(r gjson.Result) string {
	switch r.Type {
	case gjson.String, gjson.Number:
		return r.String()
	default:
		return ""
	}
}
