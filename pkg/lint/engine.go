package lint

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/yaklabco/htmlsnob/internal/logging"
	"github.com/yaklabco/htmlsnob/pkg/config"
	"github.com/yaklabco/htmlsnob/pkg/dialect"
	"github.com/yaklabco/htmlsnob/pkg/format"
	"github.com/yaklabco/htmlsnob/pkg/htmlast"
)

// FormatRuleName is the rule name used for diagnostics reported by --check.
const FormatRuleName = "format"

// FileResult contains the results of linting a single file.
type FileResult struct {
	// Path is the file that was linted.
	Path string

	// Dialect is the template language the file was parsed with.
	Dialect dialect.Dialect

	// AST is the final node slice, with every rule autofix applied.
	AST []htmlast.Node

	// Diagnostics contains all issues found, in report order.
	Diagnostics []Diagnostic

	// Content is the input that was linted.
	Content []byte

	// Formatted is the rendering of AST.
	Formatted []byte
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// NeedsFormatting returns true if the formatted output differs from the content.
func (fr *FileResult) NeedsFormatting() bool {
	return !bytes.Equal(fr.Content, fr.Formatted)
}

// CountBySeverity returns the number of diagnostics with severity s.
func (fr *FileResult) CountBySeverity(s config.Severity) int {
	count := 0
	for _, d := range fr.Diagnostics {
		if d.Severity == s {
			count++
		}
	}
	return count
}

// Engine coordinates rule construction, linting and formatting.
type Engine struct {
	// Registry holds all available rule kinds.
	Registry *Registry
}

// NewEngine creates a new Engine with the given registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{Registry: registry}
}

// LintFile lints and formats a single file.
//
// Rules are stateful, so every call builds its own rule instances and
// concurrent calls never share them.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("linting cancelled: %w", ctx.Err())
	default:
	}

	if cfg == nil {
		cfg = config.NewConfig()
	}
	logger := logging.FromContext(ctx)
	start := time.Now()

	d, err := ResolveDialect(path, content, cfg)
	if err != nil {
		return nil, err
	}

	rules, err := e.Registry.BuildConfig(cfg.ActiveRules())
	if err != nil {
		return nil, fmt.Errorf("build rules: %w", err)
	}

	ast, diags := Lint(string(content), d, rules)
	for i := range diags {
		diags[i].FilePath = path
	}

	result := &FileResult{
		Path:        path,
		Dialect:     d,
		AST:         ast,
		Diagnostics: diags,
		Content:     content,
		Formatted:   []byte(format.Format(ast, cfg.Options)),
	}

	if cfg.Check && result.NeedsFormatting() {
		result.Diagnostics = append(result.Diagnostics, formatDiagnostic(path, content, result.Formatted))
	}

	logger.Debug("linted file",
		logging.FieldDialect, d,
		logging.FieldRules, len(rules),
		logging.FieldDiagnosticsTotal, len(result.Diagnostics),
		logging.FieldDuration, time.Since(start),
	)

	return result, nil
}

// ResolveDialect picks the template language for a file. An explicit
// template_language wins over detection from the file name and content.
func ResolveDialect(path string, content []byte, cfg *config.Config) (dialect.Dialect, error) {
	if cfg != nil && cfg.TemplateLanguage != "" {
		d, err := dialect.Parse(cfg.TemplateLanguage)
		if err != nil {
			return dialect.None, fmt.Errorf("template_language: %w", err)
		}
		return d, nil
	}
	return dialect.Detect(path, content), nil
}

// formatDiagnostic reports the first line where formatting would change the file.
func formatDiagnostic(path string, content, formatted []byte) Diagnostic {
	have := htmlast.SplitLines(string(content))
	want := htmlast.SplitLines(string(formatted))

	line := 0
	for line < len(have) && line < len(want) && have[line] == want[line] {
		line++
	}

	area := htmlast.Area{
		Start: htmlast.Position{Line: line},
		End:   htmlast.Position{Line: line, Column: len([]rune(have.At(line)))},
	}
	return NewDiagnostic(FormatRuleName, FormatRuleName, "File is not formatted", area).
		WithSeverity(config.SeverityWarning).
		WithFilePath(path).
		Build()
}
