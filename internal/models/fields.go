// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

package models

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// floatField reads a number or numeric string, falling back on anything else.
func floatField(r gjson.Result, fallback float64) float64 {
	var f float64
	switch r.Type {
	case gjson.Number:
		f = r.Float()
	case gjson.String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(r.Str), 64)
		if err != nil {
			return fallback
		}
		f = parsed
	default:
		return fallback
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return f
}

// intField reads an integer, truncating fractional values.
func intField(r gjson.Result, fallback int) int {
	f := floatField(r, math.NaN())
	if math.IsNaN(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return fallback
	}
	return int(f)
}

// stringField returns the trimmed string value, or fallback for non-strings.
func stringField(r gjson.Result, fallback string) string {
	if r.Type != gjson.String {
		return fallback
	}
	s := strings.TrimSpace(r.Str)
	if s == "" {
		return fallback
	}
	return s
}

// stringListField reads an array of strings. Non-string members are skipped.
// A bare string is split on commas so "A, B" and ["A", "B"] are equivalent.
func stringListField(r gjson.Result) []string {
	switch {
	case r.IsArray():
		out := make([]string, 0, len(r.Array()))
		r.ForEach(func(_, v gjson.Result) bool {
			if v.Type == gjson.String {
				if s := strings.TrimSpace(v.Str); s != "" {
					out = append(out, s)
				}
			}
			return true
		})
		return out
	case r.Type == gjson.String:
		parts := strings.Split(r.Str, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}
