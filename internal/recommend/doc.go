// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

// Package recommend scores catalog courses against a student profile and
// returns a ranked, explained top-N list.
//
// # Scoring
//
// Every course receives five factor scores in [0, 1]:
//
//   - Career: fraction of the student's career interests the course serves
//   - Learning: fit between preferred and offered learning styles
//   - Workload: weekly study capacity against expected course hours
//   - Difficulty: distance between course difficulty and the GPA-derived optimum
//   - Major: whether the course is required for the student's major
//
// The weighted sum is multiplied by the major bonus for required courses,
// scaled to 0-100, clamped and rounded to two decimals. Results are ordered
// by confidence descending with course code as the tie-breaker, so identical
// inputs always produce identical output.
//
// # Usage
//
//	provider := catalog.NewProvider(nil, nil, logger)
//	engine, err := recommend.NewEngine(ctx, provider, requirements.Default(), recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    Profile: profile,
//	    TopN:    5,
//	})
//
// # Thread Safety
//
// The catalog and requirement index are read-only after NewEngine returns.
// The optional result cache is internally synchronized and hands out copies,
// so Recommend may be called from many goroutines.
package recommend
