// Package lint provides the rule protocol, validator, diagnostics, and registry for htmlsnob.
package lint

import (
	"github.com/yaklabco/htmlsnob/pkg/config"
	"github.com/yaklabco/htmlsnob/pkg/htmlast"
	"github.com/yaklabco/htmlsnob/pkg/parser"
)

// Diagnostic represents a single lint issue found in a file.
type Diagnostic struct {
	// RuleName is the configured rule name, or the kind when none was given.
	RuleName string `json:"rule"`

	// Kind is the rule kind that produced this diagnostic.
	Kind string `json:"kind"`

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity `json:"severity"`

	// Message is the human-readable description of the issue.
	Message string `json:"message"`

	// Areas are the source ranges involved, in the order the rule reported them.
	// An open and close tag pair is reported as two areas.
	Areas []htmlast.Area `json:"areas"`

	// FilePath is the path to the file containing the issue.
	// It is empty for diagnostics produced by Lint directly.
	FilePath string `json:"-"`
}

// Area returns the first area, which is where the diagnostic is shown.
func (d *Diagnostic) Area() htmlast.Area {
	if len(d.Areas) == 0 {
		return htmlast.Area{}
	}
	return d.Areas[0]
}

// Rule is the capability set a lint rule can implement.
// Embed BaseRule to get no-op defaults and override only the hooks you need.
//
// Apply hooks may mutate the node they receive to fix the issue they report.
// Track hooks observe nodes after every rule has been applied and are the only
// place a rule may update its own state. ResetState is called once at the end
// of every run.
type Rule interface {
	// Name returns the configured name, falling back to the kind.
	Name() string

	// Kind returns the registry key the rule was built from.
	Kind() string

	// Severity returns the configured severity.
	Severity() config.Severity

	// ApplyTag is called with a matched pair when a close tag arrives, with
	// open only for self-closed tags, and with open only for tags still
	// unclosed at the end of input. For an orphan close tag open is nil.
	ApplyTag(open *htmlast.OpenTag, closeTag *htmlast.CloseTag, state *parser.ParseState) []Diagnostic

	ApplyOpenTag(tag *htmlast.OpenTag, state *parser.ParseState) []Diagnostic
	ApplyCloseTag(tag *htmlast.CloseTag, state *parser.ParseState) []Diagnostic
	ApplyAttribute(attr *htmlast.Attribute) []Diagnostic
	ApplyText(text *htmlast.Text, state *parser.ParseState) []Diagnostic
	ApplyComment(comment *htmlast.Comment, state *parser.ParseState) []Diagnostic
	ApplyDoctype(doctype *htmlast.Doctype, state *parser.ParseState) []Diagnostic
	ApplyTemplateExpression(expr *htmlast.TemplateExpression, state *parser.ParseState) []Diagnostic

	TrackOpenTag(tag *htmlast.OpenTag, state *parser.ParseState)
	TrackCloseTag(tag *htmlast.CloseTag, state *parser.ParseState)
	TrackText(text *htmlast.Text, state *parser.ParseState)

	ResetState()
}
