package rules

import (
	"regexp"
	"slices"

	"github.com/yaklabco/htmlsnob/pkg/htmlast"
	"github.com/yaklabco/htmlsnob/pkg/lint"
	"github.com/yaklabco/htmlsnob/pkg/parser"
)

// TextDisallowedRule reports text placed directly inside the listed tags.
type TextDisallowedRule struct {
	lint.BaseRule `mapstructure:",squash"`

	Tags []string `mapstructure:"tags"`
}

// NewTextDisallowedRule creates a text_disallowed rule.
func NewTextDisallowedRule() *TextDisallowedRule {
	return &TextDisallowedRule{}
}

// ApplyText reports text whose parent is a listed tag.
func (r *TextDisallowedRule) ApplyText(text *htmlast.Text, state *parser.ParseState) []lint.Diagnostic {
	parent, ok := state.Parent()
	if !ok || !slices.Contains(r.Tags, parent.Name) {
		return nil
	}
	msg := r.Message("`{tag}` tags must not contain text content", "tag", parent.Name)
	return []lint.Diagnostic{r.Report(msg, nonWhitespaceAreas(text)...)}
}

// TextRegexpRule requires every text node to match a pattern.
type TextRegexpRule struct {
	lint.BaseRule `mapstructure:",squash"`

	Regexp *regexp.Regexp `mapstructure:"regexp"`
}

// NewTextRegexpRule creates a text_regexp rule.
func NewTextRegexpRule() *TextRegexpRule {
	return &TextRegexpRule{}
}

// Prepare requires a pattern.
func (r *TextRegexpRule) Prepare() error {
	return requireRegexp(r.Regexp)
}

// ApplyText checks the text content.
func (r *TextRegexpRule) ApplyText(text *htmlast.Text, _ *parser.ParseState) []lint.Diagnostic {
	if r.Regexp.MatchString(text.Content) {
		return nil
	}
	msg := r.Message("Text `{text}` must match the regexp `{regexp}`",
		"text", text.Content, "regexp", r.Regexp.String())
	return []lint.Diagnostic{r.Report(msg, text.Area)}
}

// TextRequirementRule requires the listed tags to contain text.
//
// A listed tag stays suspect from its open tag until any text node is seen.
// Suspects still pending when the tag closes are reported.
type TextRequirementRule struct {
	lint.BaseRule `mapstructure:",squash"`

	Tags []string `mapstructure:"tags"`

	suspects map[int]bool
}

// NewTextRequirementRule creates a text_requirement rule.
func NewTextRequirementRule() *TextRequirementRule {
	return &TextRequirementRule{suspects: make(map[int]bool)}
}

// ApplyTag reports a closed suspect.
func (r *TextRequirementRule) ApplyTag(
	open *htmlast.OpenTag, closeTag *htmlast.CloseTag, _ *parser.ParseState,
) []lint.Diagnostic {
	if open == nil || closeTag == nil || !r.suspects[open.Index] {
		return nil
	}
	msg := r.Message("`{tag}` tags must contain text", "tag", open.Name)
	return []lint.Diagnostic{r.Report(msg, open.Area, closeTag.Area)}
}

// TrackOpenTag marks listed tags as suspects.
func (r *TextRequirementRule) TrackOpenTag(tag *htmlast.OpenTag, _ *parser.ParseState) {
	if slices.Contains(r.Tags, tag.Name) {
		r.suspects[tag.Index] = true
	}
}

// TrackText clears every suspect.
func (r *TextRequirementRule) TrackText(*htmlast.Text, *parser.ParseState) {
	clear(r.suspects)
}

// ResetState clears every suspect.
func (r *TextRequirementRule) ResetState() {
	clear(r.suspects)
}
