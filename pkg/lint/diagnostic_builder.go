package lint

import (
	"regexp"

	"github.com/yaklabco/htmlsnob/pkg/config"
	"github.com/yaklabco/htmlsnob/pkg/htmlast"
)

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts building a diagnostic. An empty name falls back to kind.
func NewDiagnostic(name, kind, message string, areas ...htmlast.Area) *DiagnosticBuilder {
	if name == "" {
		name = kind
	}
	return &DiagnosticBuilder{
		diag: Diagnostic{
			RuleName: name,
			Kind:     kind,
			Severity: config.SeverityError,
			Message:  message,
			Areas:    areas,
		},
	}
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithArea appends another source range.
func (b *DiagnosticBuilder) WithArea(area htmlast.Area) *DiagnosticBuilder {
	b.diag.Areas = append(b.diag.Areas, area)
	return b
}

// WithFilePath sets the file the diagnostic belongs to.
func (b *DiagnosticBuilder) WithFilePath(path string) *DiagnosticBuilder {
	b.diag.FilePath = path
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}

var placeholder = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// DynamicFormat replaces {key} placeholders in template with values from
// vars, given as alternating key, value pairs. Unknown placeholders are kept.
func DynamicFormat(template string, vars ...string) string {
	return placeholder.ReplaceAllStringFunc(template, func(match string) string {
		key := match[1 : len(match)-1]
		for i := 0; i+1 < len(vars); i += 2 {
			if vars[i] == key {
				return vars[i+1]
			}
		}
		return match
	})
}
