// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func histogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m dto.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("write histogram: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestRecordRecommend(t *testing.T) {
	before := testutil.ToFloat64(RecommendRequests.WithLabelValues("success"))
	confBefore := histogramCount(t, RecommendConfidence)
	durBefore := histogramCount(t, RecommendDuration)

	RecordRecommend(3*time.Millisecond, []float64{100, 82.5, 61})

	if got := testutil.ToFloat64(RecommendRequests.WithLabelValues("success")) - before; got != 1 {
		t.Errorf("success requests delta = %v, want 1", got)
	}
	if got := histogramCount(t, RecommendConfidence) - confBefore; got != 3 {
		t.Errorf("confidence observations delta = %d, want 3", got)
	}
	if got := histogramCount(t, RecommendDuration) - durBefore; got != 1 {
		t.Errorf("duration observations delta = %d, want 1", got)
	}
}

func TestRecordRecommendCanceled(t *testing.T) {
	before := testutil.ToFloat64(RecommendRequests.WithLabelValues("canceled"))
	RecordRecommendCanceled()
	if got := testutil.ToFloat64(RecommendRequests.WithLabelValues("canceled")) - before; got != 1 {
		t.Errorf("canceled requests delta = %v, want 1", got)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(RecommendCacheHits)
	misses := testutil.ToFloat64(RecommendCacheMisses)

	RecordCacheLookup(true)
	RecordCacheLookup(false)
	RecordCacheLookup(false)

	if got := testutil.ToFloat64(RecommendCacheHits) - hits; got != 1 {
		t.Errorf("cache hits delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(RecommendCacheMisses) - misses; got != 2 {
		t.Errorf("cache misses delta = %v, want 2", got)
	}
}

func TestRecordCatalogLoad(t *testing.T) {
	tests := []struct {
		source string
		result string
	}{
		{"file", "success"},
		{"http", "error"},
		{"duckdb", "empty"},
		{"builtin", "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.source+"_"+tt.result, func(t *testing.T) {
			before := testutil.ToFloat64(CatalogLoads.WithLabelValues(tt.source, tt.result))
			RecordCatalogLoad(tt.source, tt.result, 2*time.Millisecond)
			after := testutil.ToFloat64(CatalogLoads.WithLabelValues(tt.source, tt.result))
			if after-before != 1 {
				t.Errorf("catalog loads delta = %v, want 1", after-before)
			}
		})
	}
}

func TestCatalogGauges(t *testing.T) {
	SetCatalogSize(37)
	if got := testutil.ToFloat64(CatalogCourses); got != 37 {
		t.Errorf("catalog courses = %v, want 37", got)
	}

	before := testutil.ToFloat64(CatalogSkipped.WithLabelValues("duplicate_code"))
	RecordCatalogSkipped("duplicate_code")
	if got := testutil.ToFloat64(CatalogSkipped.WithLabelValues("duplicate_code")) - before; got != 1 {
		t.Errorf("skipped delta = %v, want 1", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	SetCatalogSize(12)
	path := filepath.Join(t.TempDir(), "coursewise.prom")

	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), "coursewise_catalog_courses 12") {
		t.Errorf("textfile missing catalog gauge:\n%s", data)
	}
}

func TestWriteTextfile_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "coursewise.prom")
	if err := WriteTextfile(path); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestMetricLint(t *testing.T) {
	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Fatalf("GatherAndLint: %v", err)
	}
	for _, p := range problems {
		if strings.HasPrefix(p.Metric, "coursewise_") {
			t.Errorf("metric lint problem: %s: %s", p.Metric, p.Text)
		}
	}
}
