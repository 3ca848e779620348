// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/coursewise/internal/config"
	"github.com/tomtom215/coursewise/internal/models"
)

const technologyStudent = `{
  "student_id": "s-1",
  "gpa": 3.6,
  "major": "Technology",
  "career_interests": ["Software Engineering"],
  "learning_style": "Hands-on",
  "study_hours": 10
}`

// isolateEnv keeps the developer's environment out of config loading.
// t.Setenv restores the original values when the test ends.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{config.ConfigPathEnvVar, "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE", "COURSEWISE_TOP_N", "COURSEWISE_CATALOG_SOURCE", "COURSEWISE_METRICS_TEXTFILE"} {
		t.Setenv(key, "")
		os.Unsetenv(key) //nolint:errcheck // restored by t.Setenv cleanup
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func decodeError(t *testing.T, stdout string) string {
	t.Helper()
	var doc models.ErrorDocument
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("stdout is not an error document: %v\n%s", err, stdout)
	}
	return doc.Error
}

func decodeRecommendations(t *testing.T, stdout string) []models.Recommendation {
	t.Helper()
	var recs []models.Recommendation
	if err := json.Unmarshal([]byte(stdout), &recs); err != nil {
		t.Fatalf("stdout is not a recommendation list: %v\n%s", err, stdout)
	}
	return recs
}

func TestRun_ErrorDocuments(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	student := writeFile(t, dir, "student.json", technologyStudent)
	malformed := writeFile(t, dir, "bad.json", `{"gpa": 3.`)
	array := writeFile(t, dir, "array.json", `[1, 2]`)

	tests := []struct {
		name       string
		args       []string
		wantError  string
		wantPrefix bool
	}{
		{"no arguments", nil, "Missing input file", false},
		{"missing student file", []string{filepath.Join(dir, "nope.json")}, "Input file not found", false},
		{"malformed student file", []string{malformed}, "Invalid student profile: ", true},
		{"student document not an object", []string{array}, "Invalid student profile: ", true},
		{"missing catalog file", []string{student, filepath.Join(dir, "nope.json")}, "Catalog file not found", false},
		{"unknown flag", []string{"-bogus", student}, "Invalid arguments: ", true},
		{"missing config file", []string{"-config", filepath.Join(dir, "nope.yaml"), student}, "Invalid configuration: ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, _ := runCLI(t, tt.args...)
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			got := decodeError(t, stdout)
			if tt.wantPrefix {
				if !strings.HasPrefix(got, tt.wantError) {
					t.Errorf("error = %q, want prefix %q", got, tt.wantError)
				}
			} else if got != tt.wantError {
				t.Errorf("error = %q, want %q", got, tt.wantError)
			}
		})
	}
}

func TestRun_Success(t *testing.T) {
	isolateEnv(t)
	student := writeFile(t, t.TempDir(), "student.json", technologyStudent)

	code, stdout, stderr := runCLI(t, "-top-n", "5", student)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}

	recs := decodeRecommendations(t, stdout)
	if len(recs) != 5 {
		t.Fatalf("expected 5 recommendations, got %d", len(recs))
	}
	if recs[0].CourseCode != "CS101" || recs[0].ConfidenceScore <= 50 {
		t.Errorf("unexpected top recommendation: %+v", recs[0])
	}
	if !strings.Contains(stdout, "\n  {\n    \"course_id\": 1,") {
		t.Errorf("output should be indented with two spaces:\n%s", stdout)
	}
	if !strings.Contains(stderr, "generated recommendations") {
		t.Errorf("expected summary log on stderr:\n%s", stderr)
	}
}

func TestRun_DefaultTopN(t *testing.T) {
	isolateEnv(t)
	student := writeFile(t, t.TempDir(), "student.json", `{}`)

	code, stdout, _ := runCLI(t, student)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if recs := decodeRecommendations(t, stdout); len(recs) != 8 {
		t.Errorf("expected 8 recommendations, got %d", len(recs))
	}
}

func TestRun_TopNFromEnvironment(t *testing.T) {
	isolateEnv(t)
	t.Setenv("COURSEWISE_TOP_N", "3")
	student := writeFile(t, t.TempDir(), "student.json", `{}`)

	code, stdout, _ := runCLI(t, student)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if recs := decodeRecommendations(t, stdout); len(recs) != 3 {
		t.Errorf("expected 3 recommendations, got %d", len(recs))
	}
}

func TestRun_ExplicitTopN(t *testing.T) {
	isolateEnv(t)
	t.Setenv("COURSEWISE_TOP_N", "3")
	student := writeFile(t, t.TempDir(), "student.json", `{}`)

	tests := []struct {
		name string
		topN string
		want int
	}{
		{"zero clamps to one", "0", 1},
		{"negative clamps to one", "-2", 1},
		{"flag beats environment", "5", 5},
		{"beyond catalog", "500", 37},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, "-top-n", tt.topN, student)
			if code != 0 {
				t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
			}
			if recs := decodeRecommendations(t, stdout); len(recs) != tt.want {
				t.Errorf("expected %d recommendations, got %d", tt.want, len(recs))
			}
		})
	}
}

func TestRun_MissingInputReportedBeforeConfig(t *testing.T) {
	isolateEnv(t)
	broken := writeFile(t, t.TempDir(), "broken.yaml", "recommend: [unclosed")
	t.Setenv(config.ConfigPathEnvVar, broken)

	code, stdout, _ := runCLI(t)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if got := decodeError(t, stdout); got != "Missing input file" {
		t.Errorf("error = %q, want Missing input file", got)
	}
}

func TestRun_CustomCatalog(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	student := writeFile(t, dir, "student.json", technologyStudent)
	catalogPath := writeFile(t, dir, "catalog.json", `[
  {"id": 1, "code": "X1", "name": "One", "difficulty": 3, "workload_hours": 5},
  {"id": 2, "code": "X2", "name": "Two", "difficulty": 2, "workload_hours": 20},
  {"code": "X1", "name": "Duplicate"}
]`)

	code, stdout, stderr := runCLI(t, student, catalogPath)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}

	recs := decodeRecommendations(t, stdout)
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d: %+v", len(recs), recs)
	}
	for _, rec := range recs {
		if rec.CourseCode != "X1" && rec.CourseCode != "X2" {
			t.Errorf("unexpected course %s", rec.CourseCode)
		}
	}
}

func TestRun_MalformedCatalogFallsBack(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	student := writeFile(t, dir, "student.json", technologyStudent)
	catalogPath := writeFile(t, dir, "catalog.json", `{"not": "an array"}`)

	code, stdout, stderr := runCLI(t, "-top-n", "3", student, catalogPath)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}
	if recs := decodeRecommendations(t, stdout); len(recs) != 3 || recs[0].CourseCode != "CS101" {
		t.Errorf("expected built-in catalog results, got %+v", recs)
	}
	if !strings.Contains(stderr, "using built-in catalog") {
		t.Errorf("fallback should be logged:\n%s", stderr)
	}
}

func TestRun_ConfigFile(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	student := writeFile(t, dir, "student.json", `{"major": "Art"}`)
	textfile := filepath.Join(dir, "coursewise.prom")
	cfgPath := writeFile(t, dir, "coursewise.yaml", `
recommend:
  default_top_n: 2
  include_factors: true
requirements:
  majors:
    Art: [PSYCH101]
metrics:
  textfile: `+textfile+`
`)

	code, stdout, stderr := runCLI(t, "-config", cfgPath, student)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}

	recs := decodeRecommendations(t, stdout)
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	if recs[0].CourseCode != "PSYCH101" || !recs[0].IsMajorRequirement {
		t.Errorf("override should make PSYCH101 the Art requirement: %+v", recs[0])
	}
	if recs[0].Factors == nil {
		t.Error("include_factors should attach the factor breakdown")
	}

	data, err := os.ReadFile(textfile)
	if err != nil {
		t.Fatalf("metrics textfile not written: %v", err)
	}
	if !strings.Contains(string(data), "coursewise_recommend_requests_total") {
		t.Errorf("textfile missing request counter:\n%s", data)
	}
}

func TestRun_LogFile(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	logPath := filepath.Join(dir, "coursewise.log")
	t.Setenv("LOG_FILE", logPath)
	student := writeFile(t, dir, "student.json", `{}`)

	for i := 0; i < 2; i++ {
		code, _, stderr := runCLI(t, student)
		if code != 0 {
			t.Fatalf("exit code = %d", code)
		}
		if strings.Contains(stderr, "generated recommendations") {
			t.Error("logs should go to the log file, not stderr")
		}
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if n := strings.Count(string(data), "generated recommendations"); n != 2 {
		t.Errorf("log file should be appended across runs, found %d summaries", n)
	}
}

func TestRun_Help(t *testing.T) {
	isolateEnv(t)

	code, stdout, stderr := runCLI(t, "-h")
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if stdout != "" {
		t.Errorf("help should not write to stdout: %q", stdout)
	}
	if !strings.Contains(stderr, "usage: coursewise") {
		t.Errorf("usage missing from stderr:\n%s", stderr)
	}
}
