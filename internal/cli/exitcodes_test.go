package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/htmlsnob/internal/configloader"
	"github.com/yaklabco/htmlsnob/pkg/lint"
	"github.com/yaklabco/htmlsnob/pkg/runner"
)

func statsResult(stats runner.Stats) *runner.Result {
	return &runner.Result{Stats: stats}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result *runner.Result
		strict bool
		want   int
	}{
		{name: "nil result", result: nil, want: ExitSuccess},
		{name: "clean", result: statsResult(runner.Stats{}), want: ExitSuccess},
		{
			name:   "errors",
			result: statsResult(runner.Stats{DiagnosticsBySeverity: map[string]int{"error": 2}}),
			want:   ExitLintErrors,
		},
		{
			name:   "warnings are not failures",
			result: statsResult(runner.Stats{DiagnosticsBySeverity: map[string]int{"warning": 1}}),
			want:   ExitSuccess,
		},
		{
			name:   "warnings in strict mode",
			result: statsResult(runner.Stats{DiagnosticsBySeverity: map[string]int{"warning": 1}}),
			strict: true,
			want:   ExitLintWarnings,
		},
		{
			name:   "hints in strict mode",
			result: statsResult(runner.Stats{DiagnosticsBySeverity: map[string]int{"hint": 3, "information": 1}}),
			strict: true,
			want:   ExitSuccess,
		},
		{
			name:   "file errors win",
			result: statsResult(runner.Stats{FilesErrored: 1, DiagnosticsBySeverity: map[string]int{"error": 1}}),
			want:   ExitIOError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCodeFromResult(tt.result, tt.strict))
		})
	}
}

func TestLintExitCode_Check(t *testing.T) {
	t.Parallel()

	unformatted := statsResult(runner.Stats{FilesUnformatted: 2})
	assert.Equal(t, ExitSuccess, lintExitCode(unformatted, false, false))
	assert.Equal(t, ExitLintErrors, lintExitCode(unformatted, false, true))

	fixed := statsResult(runner.Stats{FilesUnformatted: 2, FilesModified: 2})
	assert.Equal(t, ExitSuccess, lintExitCode(fixed, false, true))
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "explicit", err: withExitCode(ExitLintWarnings, ErrLintIssuesFound), want: ExitLintWarnings},
		{
			name: "wrapped explicit",
			err:  fmt.Errorf("run: %w", withExitCode(ExitInvalidUsage, errors.New("bad flag"))),
			want: ExitInvalidUsage,
		},
		{
			name: "validation error",
			err:  &configloader.ValidationError{Field: "indent_size", Message: "must be positive"},
			want: ExitConfigError,
		},
		{name: "rule build error", err: &lint.BuildError{Index: 0, Err: lint.ErrMissingKind}, want: ExitConfigError},
		{name: "rule config", err: fmt.Errorf("%w: boom", lint.ErrRuleConfig), want: ExitConfigError},
		{name: "missing file", err: fmt.Errorf("%w: a.html", lint.ErrFileNotFound), want: ExitIOError},
		{name: "write failure", err: fmt.Errorf("%w: disk full", lint.ErrWriteFailure), want: ExitIOError},
		{name: "anything else", err: errors.New("boom"), want: ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	t.Parallel()

	err := withExitCode(ExitLintErrors, ErrLintIssuesFound)
	assert.ErrorIs(t, err, ErrLintIssuesFound)
	assert.Equal(t, "lint issues found", err.Error())
	assert.NoError(t, withExitCode(ExitLintErrors, nil))
}
