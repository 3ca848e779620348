// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

package recommend

import (
	"math"
	"strings"

	"github.com/tomtom215/coursewise/internal/models"
)

// Neutral and partial scores shared by several factors.
const (
	neutralScore   = 0.5
	clusterScore   = 0.7
	mismatchScore  = 0.3
	requiredScore  = 1.0
	electiveScore  = 0.5
	partialLoad    = 0.7
	overloadedLoad = 0.4
)

// styleClusters groups learning styles that suit the same kind of student.
// Keys are lower-case.
var styleClusters = map[string]int{
	"visual":         0,
	"hands-on":       0,
	"analytical":     0,
	"practice-based": 0,
	"reading":        1,
	"writing":        1,
	"discussion":     1,
}

// CareerMatch scores how well a course serves the student's career interests.
// Courses tagged "All" and students with no interests score a neutral 0.5;
// otherwise the score is the fraction of interests the course covers.
func CareerMatch(interests, relevance []string) float64 {
	if len(interests) == 0 {
		return neutralScore
	}
	for _, tag := range relevance {
		if tag == models.UniversalRelevance {
			return neutralScore
		}
	}

	tags := make(map[string]struct{}, len(relevance))
	for _, tag := range relevance {
		tags[tag] = struct{}{}
	}

	matches := 0
	for _, interest := range interests {
		if _, ok := tags[interest]; ok {
			matches++
		}
	}
	return float64(matches) / float64(max(len(interests), 1))
}

// LearningStyleMatch scores a student's preferred style against the styles a
// course uses. Exact matches score 1.0, styles from the same cluster 0.7, and
// anything else 0.3. An empty preference is neutral.
func LearningStyleMatch(style string, courseStyles []string) float64 {
	style = strings.ToLower(strings.TrimSpace(style))
	if style == "" {
		return neutralScore
	}

	cluster, known := styleClusters[style]
	best := mismatchScore
	for _, cs := range courseStyles {
		cs = strings.ToLower(strings.TrimSpace(cs))
		if cs == style {
			return 1.0
		}
		if c, ok := styleClusters[cs]; ok && known && c == cluster {
			best = clusterScore
		}
	}
	return best
}

// WorkloadMatch compares weekly study capacity with a course's workload.
func WorkloadMatch(capacity, load float64) float64 {
	switch {
	case capacity >= load:
		return 1.0
	case capacity >= load*0.7:
		return partialLoad
	default:
		return overloadedLoad
	}
}

// OptimalDifficulty maps a GPA onto the course difficulty the student is best
// placed to handle. GPA is clamped to [0, 4].
func OptimalDifficulty(gpa float64) float64 {
	gpa = math.Max(0, math.Min(gpa, 4))
	switch {
	case gpa >= 3.7:
		return 4.0
	case gpa >= 3.3:
		return 3.5
	case gpa >= 3.0:
		return 3.0
	case gpa >= 2.5:
		return 2.5
	case gpa >= 2.0:
		return 2.0
	default:
		return 1.5
	}
}

// DifficultyMatch scores the distance between a course's difficulty and the
// student's optimal difficulty. Closer is better.
func DifficultyMatch(gpa float64, difficulty int) float64 {
	d := math.Abs(float64(difficulty) - OptimalDifficulty(gpa))
	switch {
	case d == 0:
		return 1.0
	case d <= 0.5:
		return 0.95
	case d <= 1.0:
		return 0.85
	case d <= 1.5:
		return 0.70
	case d <= 2.0:
		return 0.55
	default:
		return 0.40
	}
}

// MajorMatch scores whether a course is required for the student's major.
func MajorMatch(required bool) float64 {
	if required {
		return requiredScore
	}
	return electiveScore
}

// scoreCourse computes every factor for one course.
//
//nolint:gocritic // hugeParam: profile passed by value for immutability
func scoreCourse(profile models.StudentProfile, course *models.Course, required bool) models.FactorScores {
	return models.FactorScores{
		Career:     CareerMatch(profile.CareerInterests, course.CareerRelevance),
		Learning:   LearningStyleMatch(profile.LearningStyle, course.LearningStyles),
		Workload:   WorkloadMatch(profile.StudyHours, course.WorkloadHours),
		Difficulty: DifficultyMatch(profile.GPA, course.Difficulty),
		Major:      MajorMatch(required),
	}
}

// confidence combines factor scores into a 0-100 score rounded to 2 decimals.
func confidence(f models.FactorScores, w Weights, required bool, bonus float64) float64 {
	base := f.Career*w.Career +
		f.Learning*w.Learning +
		f.Workload*w.Workload +
		f.Difficulty*w.Difficulty +
		f.Major*w.Major
	if required {
		base *= bonus
	}

	score := base * 100
	if math.IsNaN(score) {
		return 0
	}
	score = math.Max(0, math.Min(score, 100))
	return math.Round(score*100) / 100
}
