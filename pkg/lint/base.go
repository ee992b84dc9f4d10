package lint

import (
	"github.com/yaklabco/htmlsnob/pkg/config"
	"github.com/yaklabco/htmlsnob/pkg/htmlast"
	"github.com/yaklabco/htmlsnob/pkg/parser"
)

// BaseRule provides the shared options and no-op hooks of every rule.
// Embed it with `mapstructure:",squash"` so the common keys decode into it.
//
// Fields carry a Rule prefix to avoid collisions with the interface methods.
type BaseRule struct {
	RuleName     string          `mapstructure:"name"`
	RuleKind     string          `mapstructure:"kind"`
	RuleSeverity config.Severity `mapstructure:"severity"`

	// ErrorMessage is a template with {placeholders}. Rules fill in their
	// default message when it is empty.
	ErrorMessage string `mapstructure:"error_message"`
}

// Name returns the configured name, falling back to the kind.
func (r *BaseRule) Name() string {
	if r.RuleName != "" {
		return r.RuleName
	}
	return r.RuleKind
}

// Kind returns the rule kind.
func (r *BaseRule) Kind() string {
	return r.RuleKind
}

// Severity returns the configured severity. Rules default to error.
func (r *BaseRule) Severity() config.Severity {
	if r.RuleSeverity == "" {
		return config.SeverityError
	}
	return r.RuleSeverity
}

// Message renders the configured error message, or fallback when none was configured.
func (r *BaseRule) Message(fallback string, vars ...string) string {
	template := r.ErrorMessage
	if template == "" {
		template = fallback
	}
	return DynamicFormat(template, vars...)
}

// Report builds a diagnostic attributed to this rule.
func (r *BaseRule) Report(message string, areas ...htmlast.Area) Diagnostic {
	return NewDiagnostic(r.Name(), r.RuleKind, message, areas...).
		WithSeverity(r.Severity()).
		Build()
}

func (*BaseRule) ApplyTag(*htmlast.OpenTag, *htmlast.CloseTag, *parser.ParseState) []Diagnostic {
	return nil
}

func (*BaseRule) ApplyOpenTag(*htmlast.OpenTag, *parser.ParseState) []Diagnostic { return nil }

func (*BaseRule) ApplyCloseTag(*htmlast.CloseTag, *parser.ParseState) []Diagnostic { return nil }

func (*BaseRule) ApplyAttribute(*htmlast.Attribute) []Diagnostic { return nil }

func (*BaseRule) ApplyText(*htmlast.Text, *parser.ParseState) []Diagnostic { return nil }

func (*BaseRule) ApplyComment(*htmlast.Comment, *parser.ParseState) []Diagnostic { return nil }

func (*BaseRule) ApplyDoctype(*htmlast.Doctype, *parser.ParseState) []Diagnostic { return nil }

func (*BaseRule) ApplyTemplateExpression(*htmlast.TemplateExpression, *parser.ParseState) []Diagnostic {
	return nil
}

func (*BaseRule) TrackOpenTag(*htmlast.OpenTag, *parser.ParseState) {}

func (*BaseRule) TrackCloseTag(*htmlast.CloseTag, *parser.ParseState) {}

func (*BaseRule) TrackText(*htmlast.Text, *parser.ParseState) {}

func (*BaseRule) ResetState() {}
