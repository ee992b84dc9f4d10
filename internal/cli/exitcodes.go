package cli

import (
	"errors"

	"github.com/yaklabco/htmlsnob/internal/configloader"
	"github.com/yaklabco/htmlsnob/pkg/lint"
	"github.com/yaklabco/htmlsnob/pkg/runner"
)

// Exit codes for htmlsnob.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitLintErrors indicates the run found errors or unformatted files.
	ExitLintErrors = 1

	// ExitLintWarnings indicates the run found warnings in strict mode.
	ExitLintWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates an unreadable or invalid configuration.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrLintIssuesFound is returned when lint issues are found.
var ErrLintIssuesFound = errors.New("lint issues found")

// ExitError carries the exit code a command wants the process to end with.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// ExitCodeFromResult determines the exit code based on result and strict mode.
// Warnings, information and hints never fail a run unless strict is set, and
// then only warnings do.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.Stats.FilesErrored > 0 {
		return ExitIOError
	}

	errs := result.Stats.DiagnosticsBySeverity["error"]
	warnings := result.Stats.DiagnosticsBySeverity["warning"]

	if errs > 0 {
		return ExitLintErrors
	}

	if strict && warnings > 0 {
		return ExitLintWarnings
	}

	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var validationErr *configloader.ValidationError
	var buildErr *lint.BuildError
	switch {
	case errors.As(err, &validationErr), errors.As(err, &buildErr), errors.Is(err, lint.ErrRuleConfig):
		return ExitConfigError
	case errors.Is(err, lint.ErrFileNotFound), errors.Is(err, lint.ErrPermissionDenied), errors.Is(err, lint.ErrWriteFailure):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
