// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

package main

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/ratingcf/internal/logging"
	"github.com/tomtom215/ratingcf/internal/predict"
	"github.com/tomtom215/ratingcf/internal/report"
)

const (
	trainingData = "M1,U1,5\nM2,U1,3\nM1,U2,4\nM2,U2,2\nM3,U2,4\n"
	titlesData   = "M1,2001,Alpha\nM2,2001,Beta, Part Two\nM3,2003,Gamma\nM9,2003,Never Rated\n"
	testData     = "M3,U1,4\nM1,U2,3\nM2,ghost,1\nM99,U1,4\n"
)

type fixture struct {
	dir      string
	training string
	titles   string
	test     string
}

// isolate clears every variable the config layer reads and moves into an
// empty directory so no stray config.yaml is picked up.
func isolate(t *testing.T) *fixture {
	t.Helper()
	for _, key := range []string{
		"CONFIG_PATH", "LOG_LEVEL", "LOG_FORMAT", "LOG_CALLER",
		"RATINGCF_TRAINING_PATH", "RATINGCF_TITLES_PATH", "RATINGCF_TEST_PATH",
		"RATINGCF_KEY_BY_EXCLUDED_MOVIE", "RATINGCF_PROGRESS_EVERY",
		"RATINGCF_REPORTS_PATH", "RATINGCF_REPORTS_RETAIN", "RATINGCF_REPORTS_GC_INTERVAL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	dir := t.TempDir()
	t.Chdir(dir)
	t.Cleanup(func() { logging.Init(logging.DefaultConfig()) })

	f := &fixture{
		dir:      dir,
		training: writeFile(t, dir, "TrainingRatings.txt", trainingData),
		titles:   writeFile(t, dir, "movie_titles.txt", titlesData),
		test:     writeFile(t, dir, "TestingRatings.txt", testData),
	}
	return f
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", name, err)
	}
	return path
}

// config writes a YAML config with the given data paths and extra lines.
func (f *fixture) config(t *testing.T, withData bool, extra string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("logging:\n  level: error\n")
	if withData {
		fmt.Fprintf(&b, "data:\n  training_path: %s\n  titles_path: %s\n  test_path: %s\n", f.training, f.titles, f.test)
	}
	b.WriteString(extra)
	return writeFile(t, f.dir, "config.test.yaml", b.String())
}

func runCLI(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_Evaluate(t *testing.T) {
	f := isolate(t)
	cfg := f.config(t, true, "")

	code, stdout, stderr := runCLI(t, "", "-config", cfg, "evaluate")
	if code != 0 {
		t.Fatalf("exit = %d, stderr = %s", code, stderr)
	}
	for _, want := range []string{"Mean Absolute Error", "Root Mean Squared Error", "Matched records"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestRun_EvaluateJSON(t *testing.T) {
	f := isolate(t)
	cfg := f.config(t, true, "")

	code, stdout, stderr := runCLI(t, "", "-config", cfg, "-json", "evaluate")
	if code != 0 {
		t.Fatalf("exit = %d, stderr = %s", code, stderr)
	}

	var out evaluation
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("decode %q: %v", stdout, err)
	}
	if out.Result.Matched != 3 || out.Result.Skipped != 1 {
		t.Errorf("matched = %d skipped = %d, want 3 and 1", out.Result.Matched, out.Result.Skipped)
	}
	if math.IsNaN(out.Result.MAE) || out.Result.RMSE < out.Result.MAE {
		t.Errorf("MAE = %v RMSE = %v, want finite with RMSE >= MAE", out.Result.MAE, out.Result.RMSE)
	}
	if out.RunID != "" {
		t.Errorf("RunID = %q with reports disabled", out.RunID)
	}
}

func TestRun_EvaluateSavesReport(t *testing.T) {
	f := isolate(t)
	reportsDir := filepath.Join(f.dir, "reports")
	cfg := f.config(t, true, fmt.Sprintf("reports:\n  path: %s\n  retain: 5\n", reportsDir))

	code, stdout, stderr := runCLI(t, "", "-config", cfg, "-json", "evaluate")
	if code != 0 {
		t.Fatalf("exit = %d, stderr = %s", code, stderr)
	}
	var out evaluation
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.RunID == "" {
		t.Fatal("RunID is empty with reports enabled")
	}

	store, err := report.Open(reportsDir)
	if err != nil {
		t.Fatalf("report.Open() error = %v", err)
	}
	defer store.Close()

	rep, err := store.Get(out.RunID)
	if err != nil {
		t.Fatalf("Get(%s) error = %v", out.RunID, err)
	}
	if rep.TestPath != f.test || rep.Matched != 3 || rep.Users != 2 {
		t.Errorf("report = %+v", rep)
	}
}

func TestRun_Query(t *testing.T) {
	f := isolate(t)
	cfg := f.config(t, true, "")

	code, stdout, stderr := runCLI(t, "", "-config", cfg, "query", "-user", "U1", "-year", "2003")
	if code != 0 {
		t.Fatalf("exit = %d, stderr = %s", code, stderr)
	}
	if !strings.Contains(stdout, "Gamma") {
		t.Errorf("ranking missing Gamma:\n%s", stdout)
	}
	if strings.Contains(stdout, "Never Rated") {
		t.Errorf("ranking lists a movie with no training ratings:\n%s", stdout)
	}
}

func TestRun_QueryJSON(t *testing.T) {
	f := isolate(t)
	cfg := f.config(t, true, "")

	code, stdout, stderr := runCLI(t, "", "-config", cfg, "-json", "query", "-user", "U1", "-year", "2003")
	if code != 0 {
		t.Fatalf("exit = %d, stderr = %s", code, stderr)
	}
	var ranked []predict.RankedMovie
	if err := json.Unmarshal([]byte(stdout), &ranked); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ranked) != 1 || ranked[0].MovieID != "M3" {
		t.Errorf("ranked = %+v, want only M3", ranked)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name       string
		withData   bool
		args       []string
		wantCode   int
		wantStderr string
	}{
		{name: "unknown command", withData: true, args: []string{"train"}, wantCode: 2, wantStderr: "unknown command"},
		{name: "query without flags", withData: true, args: []string{"query"}, wantCode: 2, wantStderr: "-user and -year"},
		{name: "query unknown user", withData: true, args: []string{"query", "-user", "ghost", "-year", "2003"}, wantCode: 1, wantStderr: "not in the training set"},
		{name: "evaluate without paths", args: []string{"evaluate"}, wantCode: 1, wantStderr: "data.training_path"},
		{name: "help", args: []string{"-h"}, wantCode: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := isolate(t)
			args := append([]string{"-config", f.config(t, tt.withData, "")}, tt.args...)

			code, _, stderr := runCLI(t, "", args...)
			if code != tt.wantCode {
				t.Errorf("exit = %d, want %d (stderr %s)", code, tt.wantCode, stderr)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr, tt.wantStderr) {
				t.Errorf("stderr = %q, want it to mention %q", stderr, tt.wantStderr)
			}
		})
	}
}

func TestRun_MissingConfigFile(t *testing.T) {
	isolate(t)
	code, _, stderr := runCLI(t, "", "-config", "does-not-exist.yaml", "evaluate")
	if code != 1 || !strings.Contains(stderr, "does-not-exist.yaml") {
		t.Errorf("exit = %d stderr = %q, want 1 naming the file", code, stderr)
	}
}

func TestInteractive_Query(t *testing.T) {
	f := isolate(t)
	cfg := f.config(t, true, "")

	input := strings.Join([]string{
		"9",     // invalid selection
		"2",     // query
		"ghost", // unknown user
		"U1",
		"2003",
		"maybe", // invalid answer
		"y",
		"U2",
		"2001",
		"n",
		"exit",
	}, "\n") + "\n"

	code, stdout, stderr := runCLI(t, input, "-config", cfg)
	if code != 0 {
		t.Fatalf("exit = %d, stderr = %s", code, stderr)
	}
	for _, want := range []string{
		"That is not a valid selection. Please try again.",
		"That user ID is not in the training set. Please pick a new one: ",
		"Gamma",
		"That was not a valid response. Please try again.",
		"No unseen movies from that year.",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
	if n := strings.Count(stdout, "Please select an option!"); n != 2 {
		t.Errorf("menu shown %d times, want 2", n)
	}
}

func TestInteractive_ClassifyPromptsForPaths(t *testing.T) {
	f := isolate(t)
	cfg := f.config(t, false, "")

	input := strings.Join([]string{f.training, f.titles, "1", f.test, "3"}, "\n") + "\n"

	code, stdout, stderr := runCLI(t, input, "-config", cfg, "interactive")
	if code != 0 {
		t.Fatalf("exit = %d, stderr = %s", code, stderr)
	}
	for _, want := range []string{
		"Enter the name of the file containing your training data: ",
		"Enter the name of the file containing the titles and years of the movies: ",
		"Loaded 5 ratings from 2 users across 3 movies.",
		"The Mean Absolute Error is ",
		"The Root Mean Squared Error is ",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestInteractive_ClassifyBadFileReturnsToMenu(t *testing.T) {
	f := isolate(t)
	cfg := f.config(t, true, "")

	input := "1\n" + filepath.Join(f.dir, "missing.txt") + "\n3\n"
	code, stdout, stderr := runCLI(t, input, "-config", cfg)
	if code != 0 {
		t.Fatalf("exit = %d, stderr = %s", code, stderr)
	}
	if !strings.Contains(stdout, "Evaluation failed:") {
		t.Errorf("output missing failure notice:\n%s", stdout)
	}
	if n := strings.Count(stdout, "Please select an option!"); n != 2 {
		t.Errorf("menu shown %d times, want 2", n)
	}
}

func TestInteractive_EOF(t *testing.T) {
	f := isolate(t)
	cfg := f.config(t, true, "")

	code, _, stderr := runCLI(t, "2\nU1\n", "-config", cfg)
	if code != 0 {
		t.Errorf("exit = %d at end of input, want 0 (stderr %s)", code, stderr)
	}
}

// A ranking query computes weights while excluding the ranked movie. They
// must not leak into a later evaluation in the same session.
func TestInteractive_ClassifyIgnoresEarlierQueries(t *testing.T) {
	f := isolate(t)
	f.training = writeFile(t, f.dir, "lifecycle_training.txt", "M1,U1,5\nM2,U1,1\nM1,U2,5\nM2,U2,1\nM3,U2,1\n")
	f.titles = writeFile(t, f.dir, "lifecycle_titles.txt", "M3,2000,Gamma\n")
	f.test = writeFile(t, f.dir, "lifecycle_test.txt", "M1,U1,5\n")
	cfg := f.config(t, true, "")

	maeLine := func(t *testing.T, stdout string) []string {
		t.Helper()
		var lines []string
		for _, line := range strings.Split(stdout, "\n") {
			if strings.HasPrefix(line, "The Mean Absolute Error is ") {
				lines = append(lines, line)
			}
		}
		return lines
	}

	tests := []struct {
		name  string
		input []string
	}{
		{"fresh", []string{"1", f.test, "3"}},
		{"after query", []string{"2", "U1", "2000", "n", "1", f.test, "3"}},
		{"repeated", []string{"1", f.test, "1", f.test, "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, strings.Join(tt.input, "\n")+"\n", "-config", cfg)
			if code != 0 {
				t.Fatalf("exit = %d, stderr = %s", code, stderr)
			}
			lines := maeLine(t, stdout)
			if len(lines) == 0 {
				t.Fatalf("no MAE in output:\n%s", stdout)
			}
			for _, line := range lines {
				if line != "The Mean Absolute Error is 2" {
					t.Errorf("got %q, want %q", line, "The Mean Absolute Error is 2")
				}
			}
		})
	}
}
