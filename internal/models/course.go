// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Course defaults applied when a catalog document omits a field or carries
// a value of the wrong type.
const (
	DefaultDifficulty    = 3
	DefaultWorkloadHours = 8.0
)

// UniversalRelevance is the career tag marking a course as relevant to every career.
const UniversalRelevance = "All"

// ErrInputMalformed reports a document that is not valid JSON or has the wrong shape.
var ErrInputMalformed = errors.New("malformed input document")

// Course is a single catalog entry. Courses are never mutated after loading.
type Course struct {
	// ID is the numeric catalog identifier.
	ID int `json:"id"`

	// Code is the unique course code (e.g., "CS101").
	Code string `json:"code"`

	// Name is the display name.
	Name string `json:"name"`

	// Department groups courses (Technology, Science, Business, ...).
	Department string `json:"department"`

	// Credits is the credit count awarded on completion.
	Credits int `json:"credits"`

	// Difficulty is the difficulty level on a 1-5 scale.
	Difficulty int `json:"difficulty"`

	// Prerequisites lists the codes of courses required beforehand.
	Prerequisites []string `json:"prerequisites"`

	// CareerRelevance lists the careers this course prepares for.
	CareerRelevance []string `json:"career_relevance"`

	// LearningStyles lists the teaching styles this course uses.
	LearningStyles []string `json:"learning_style"`

	// WorkloadHours is the expected study time per week.
	WorkloadHours float64 `json:"workload_hours"`
}

// DecodeCourses parses a catalog document (a JSON array of course objects).
//
// Per-field type problems are absorbed with defaults. An element that is not an
// object, or carries no code, is skipped. The returned slice preserves document
// order and is not deduplicated; see catalog.Normalize for that.
func DecodeCourses(data []byte) ([]Course, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: catalog is not valid JSON", ErrInputMalformed)
	}

	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: catalog root must be an array, got %s", ErrInputMalformed, root.Type)
	}

	courses := make([]Course, 0, len(root.Array()))
	root.ForEach(func(_, v gjson.Result) bool {
		if !v.IsObject() {
			return true
		}
		c := courseFromResult(v)
		if c.Code == "" {
			return true
		}
		courses = append(courses, c)
		return true
	})

	return courses, nil
}

// courseFromResult converts one catalog object into a Course.
func courseFromResult(v gjson.Result) Course {
	return Course{
		ID:              intField(v.Get("id"), 0),
		Code:            strings.TrimSpace(stringField(v.Get("code"), "")),
		Name:            stringField(v.Get("name"), ""),
		Department:      stringField(v.Get("department"), ""),
		Credits:         intField(v.Get("credits"), 0),
		Difficulty:      intField(v.Get("difficulty"), DefaultDifficulty),
		Prerequisites:   stringListField(v.Get("prerequisites")),
		CareerRelevance: stringListField(v.Get("career_relevance")),
		LearningStyles:  stringListField(v.Get("learning_style")),
		WorkloadHours:   floatField(v.Get("workload_hours"), DefaultWorkloadHours),
	}
}
