// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

// Package requirements maps academic majors to the course codes they require.
package requirements

import (
	"sort"
	"strings"
)

// defaultMajors is the hand-curated requirement table.
var defaultMajors = map[string][]string{
	"Technology":     {"CS101", "INT008", "INT009", "INT010", "INT011", "INT012", "INT013"},
	"Social Science": {"PSYCH101", "HIST101", "ECON101", "INT021", "INT022"},
	"Engineering":    {"MATH151", "PHYS101", "CHEM101", "INT014", "INT015", "INT016"},
	"Creative":       {"INT001", "INT002", "INT003", "INT004", "INT005", "INT006", "INT007"},
	"Art":            {"ART101", "INT001", "INT002"},
	"Science":        {"BIO101", "CHEM101", "PHYS101", "INT017", "INT018", "INT019", "INT020"},
	"Education":      {"INT023", "PSYCH101", "ENG101"},
	"Business":       {"ECON101", "INT024", "INT025", "INT026", "INT027"},
	"Undecided":      {"ENG101", "MATH151", "CS101", "HIST101"},
}

// major is one table entry; name keeps the display spelling.
type major struct {
	name  string
	codes map[string]struct{}
}

// Index answers "is course X required for major Y". It is read-only after
// construction and safe for concurrent use.
type Index struct {
	majors map[string]major // keyed by normalized major name
}

// normalizeMajor folds a major name for lookup.
func normalizeMajor(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// New builds an Index from a major -> codes table. Blank codes are ignored;
// majors that differ only in case or surrounding space are merged.
func New(table map[string][]string) *Index {
	idx := &Index{majors: make(map[string]major, len(table))}
	idx.merge(table, false)
	return idx
}

// Default returns the built-in requirement table.
func Default() *Index {
	return New(defaultMajors)
}

// WithOverrides returns the built-in table with overrides applied. A major
// named in overrides replaces the built-in set for that major entirely;
// new majors are added.
func WithOverrides(overrides map[string][]string) *Index {
	idx := Default()
	idx.merge(overrides, true)
	return idx
}

func (idx *Index) merge(table map[string][]string, replace bool) {
	// Sorted so merges of case-variant names are deterministic.
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	replaced := make(map[string]bool)
	for _, name := range names {
		key := normalizeMajor(name)
		if key == "" {
			continue
		}
		entry, exists := idx.majors[key]
		if !exists || (replace && !replaced[key]) {
			entry = major{name: strings.TrimSpace(name), codes: make(map[string]struct{})}
			replaced[key] = true
		}
		for _, code := range table[name] {
			if code = strings.TrimSpace(code); code != "" {
				entry.codes[code] = struct{}{}
			}
		}
		idx.majors[key] = entry
	}
}

// IsRequired reports whether code is required for major. Unknown majors
// require nothing. Course codes match exactly.
func (idx *Index) IsRequired(code, majorName string) bool {
	entry, ok := idx.majors[normalizeMajor(majorName)]
	if !ok {
		return false
	}
	_, required := entry.codes[code]
	return required
}

// Codes returns the sorted course codes required for major.
func (idx *Index) Codes(majorName string) []string {
	entry, ok := idx.majors[normalizeMajor(majorName)]
	if !ok {
		return []string{}
	}
	codes := make([]string, 0, len(entry.codes))
	for code := range entry.codes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Majors returns the sorted display names of all known majors.
func (idx *Index) Majors() []string {
	names := make([]string, 0, len(idx.majors))
	for _, entry := range idx.majors {
		names = append(names, entry.name)
	}
	sort.Strings(names)
	return names
}
