package runner_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/htmlsnob/pkg/config"
	"github.com/yaklabco/htmlsnob/pkg/lint"
	"github.com/yaklabco/htmlsnob/pkg/lint/rules"
	"github.com/yaklabco/htmlsnob/pkg/runner"
)

const testRules = `
rules:
  - kind: tag_name_blacklist
    name: no_font
    tags: [font]
  - kind: tag_name_casing
    style: lower
    autofix: true
`

func newTestRunner() *runner.Runner {
	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	return runner.New(lint.NewPipeline(lint.NewEngine(registry)))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg, err := config.FromYAML([]byte(testRules))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.Backups.Enabled = false
	return cfg
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	pipeline := lint.NewPipeline(lint.NewEngine(lint.NewRegistry()))
	lintRunner := runner.New(pipeline)

	if lintRunner.Pipeline != pipeline {
		t.Error("Pipeline not set correctly")
	}
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     testConfig(t),
	}

	result, err := newTestRunner().Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesDiscovered != 0 {
		t.Errorf("FilesDiscovered = %d, want 0", result.Stats.FilesDiscovered)
	}
	if len(result.Files) != 0 {
		t.Errorf("len(Files) = %d, want 0", len(result.Files))
	}
}

func TestRunner_Run_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"index.html": "<p>x</p>\n"})

	opts := runner.Options{
		Paths:      []string{"index.html"},
		WorkingDir: dir,
		Config:     testConfig(t),
	}

	result, err := newTestRunner().Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesProcessed != 1 {
		t.Errorf("FilesProcessed = %d, want 1", result.Stats.FilesProcessed)
	}
	if result.HasIssues() {
		t.Errorf("unexpected issues: %+v", result.Files[0].Result.Diagnostics)
	}
	if result.Stats.FilesUnformatted != 0 {
		t.Errorf("FilesUnformatted = %d, want 0", result.Stats.FilesUnformatted)
	}
}

func TestRunner_Run_WithDiagnostics(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.html":           "<font>x</font>\n",
		"pages/b.hbs":      "<P>{{title}}</P>\n",
		"pages/clean.html": "<p>ok</p>\n",
	})

	cfg := testConfig(t)
	cfg.Rules[1].Severity = "warning"

	result, err := newTestRunner().Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	stats := result.Stats
	if stats.FilesProcessed != 3 {
		t.Errorf("FilesProcessed = %d, want 3", stats.FilesProcessed)
	}
	if stats.FilesWithIssues != 2 {
		t.Errorf("FilesWithIssues = %d, want 2", stats.FilesWithIssues)
	}
	// no_font reports the open and close tag as one diagnostic; casing reports both tags.
	if stats.DiagnosticsBySeverity["error"] != 1 {
		t.Errorf("errors = %d, want 1", stats.DiagnosticsBySeverity["error"])
	}
	if stats.DiagnosticsBySeverity["warning"] != 2 {
		t.Errorf("warnings = %d, want 2", stats.DiagnosticsBySeverity["warning"])
	}
	if !result.HasFailures() {
		t.Error("HasFailures() = false, want true")
	}
	if stats.FilesUnformatted != 1 {
		t.Errorf("FilesUnformatted = %d, want 1 (the uppercase tags)", stats.FilesUnformatted)
	}

	// Outcomes are sorted by path.
	want := []string{
		filepath.Join(dir, "a.html"),
		filepath.Join(dir, "pages", "b.hbs"),
		filepath.Join(dir, "pages", "clean.html"),
	}
	for i, outcome := range result.Files {
		if outcome.Path != want[i] {
			t.Errorf("Files[%d] = %s, want %s", i, outcome.Path, want[i])
		}
	}
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := make(map[string]string)
	for i := range 20 {
		files[fmt.Sprintf("page%02d.html", i)] = "<div><font>x</font></div>\n"
	}
	writeFiles(t, dir, files)

	run := func(jobs int) *runner.Result {
		result, err := newTestRunner().Run(context.Background(), runner.Options{
			WorkingDir: dir,
			Jobs:       jobs,
			Config:     testConfig(t),
		})
		if err != nil {
			t.Fatalf("Run(jobs=%d) error = %v", jobs, err)
		}
		return result
	}

	serial := run(1)
	parallel := run(8)

	if serial.Stats.DiagnosticsTotal != parallel.Stats.DiagnosticsTotal {
		t.Errorf("DiagnosticsTotal serial=%d parallel=%d", serial.Stats.DiagnosticsTotal, parallel.Stats.DiagnosticsTotal)
	}
	if len(serial.Files) != len(parallel.Files) {
		t.Fatalf("file count serial=%d parallel=%d", len(serial.Files), len(parallel.Files))
	}
	for i := range serial.Files {
		if serial.Files[i].Path != parallel.Files[i].Path {
			t.Errorf("order differs at %d: %s vs %s", i, serial.Files[i].Path, parallel.Files[i].Path)
		}
	}
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.html": "<p></p>", "b.html": "<p></p>"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestRunner().Run(ctx, runner.Options{WorkingDir: dir, Config: testConfig(t)})
	if err == nil {
		t.Error("expected an error for a cancelled context")
	}
}

func TestRunner_Run_FileErrorDoesNotStopRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"good.html": "<p>x</p>\n"})

	lintRunner := newTestRunner()
	files := []string{filepath.Join(dir, "good.html"), filepath.Join(dir, "gone.html")}

	result, err := lintRunner.RunFiles(context.Background(), files, runner.Options{Config: testConfig(t)})
	if err != nil {
		t.Fatalf("RunFiles() error = %v", err)
	}

	if result.Stats.FilesProcessed != 1 || result.Stats.FilesErrored != 1 {
		t.Errorf("processed=%d errored=%d, want 1 and 1", result.Stats.FilesProcessed, result.Stats.FilesErrored)
	}
	if result.Files[1].Error == nil {
		t.Error("expected an error on the missing file")
	}
}

func TestRunner_Run_WithFixes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"page.html": "<DIV>x</DIV>"})

	cfg := testConfig(t)
	cfg.Fix = true

	result, err := newTestRunner().Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesModified != 1 {
		t.Errorf("FilesModified = %d, want 1", result.Stats.FilesModified)
	}

	got, err := os.ReadFile(filepath.Join(dir, "page.html"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "<div>x</div>\n" {
		t.Errorf("content = %q, want fixed", got)
	}
}

func TestRunner_Run_DryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"page.html": "<DIV>x</DIV>\n"})

	cfg := testConfig(t)
	cfg.Fix = true
	cfg.DryRun = true

	result, err := newTestRunner().Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesModified != 0 {
		t.Errorf("FilesModified = %d, want 0 in dry-run", result.Stats.FilesModified)
	}
	if len(result.Files) != 1 {
		t.Fatalf("expected 1 file outcome")
	}
	if result.Files[0].Result == nil || result.Files[0].Result.Diff == nil {
		t.Error("expected diff in dry-run mode")
	}

	got, err := os.ReadFile(filepath.Join(dir, "page.html"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "<DIV>x</DIV>\n" {
		t.Errorf("content = %q, want unchanged", got)
	}
}

func TestResult_HasFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result *runner.Result
		want   bool
	}{
		{
			name:   "nil result",
			result: nil,
			want:   false,
		},
		{
			name: "no errors",
			result: &runner.Result{
				Stats: runner.Stats{
					DiagnosticsBySeverity: map[string]int{"warning": 5, "hint": 1},
				},
			},
			want: false,
		},
		{
			name: "with errors",
			result: &runner.Result{
				Stats: runner.Stats{
					DiagnosticsBySeverity: map[string]int{"error": 1, "warning": 5},
				},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.result.HasFailures()
			if got != tt.want {
				t.Errorf("HasFailures() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResult_HasIssues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result *runner.Result
		want   bool
	}{
		{
			name:   "nil result",
			result: nil,
			want:   false,
		},
		{
			name:   "no issues",
			result: &runner.Result{Stats: runner.Stats{DiagnosticsTotal: 0}},
			want:   false,
		},
		{
			name:   "with issues",
			result: &runner.Result{Stats: runner.Stats{DiagnosticsTotal: 3}},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.result.HasIssues()
			if got != tt.want {
				t.Errorf("HasIssues() = %v, want %v", got, tt.want)
			}
		})
	}
}
