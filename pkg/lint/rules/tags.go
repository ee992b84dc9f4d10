package rules

import (
	"regexp"
	"slices"
	"strings"

	"github.com/yaklabco/htmlsnob/pkg/casing"
	"github.com/yaklabco/htmlsnob/pkg/htmlast"
	"github.com/yaklabco/htmlsnob/pkg/lint"
	"github.com/yaklabco/htmlsnob/pkg/parser"
)

// MissingEndBracketRule reports tags, comments, doctypes and template
// expressions that were cut off before their closing delimiter.
type MissingEndBracketRule struct {
	lint.BaseRule `mapstructure:",squash"`

	Autofix bool `mapstructure:"autofix"`
}

// NewMissingEndBracketRule creates a missing_end_bracket_disallowed rule.
func NewMissingEndBracketRule() *MissingEndBracketRule {
	return &MissingEndBracketRule{}
}

func (r *MissingEndBracketRule) check(missing *bool, area htmlast.Area, what string, fixable bool) []lint.Diagnostic {
	if !*missing {
		return nil
	}
	if r.Autofix && fixable {
		*missing = false
	}
	return []lint.Diagnostic{
		r.Report(r.Message("{name} is missing end bracket", "name", what), area),
	}
}

// ApplyOpenTag checks open tags.
func (r *MissingEndBracketRule) ApplyOpenTag(tag *htmlast.OpenTag, _ *parser.ParseState) []lint.Diagnostic {
	return r.check(&tag.MissingEndBracket, tag.Area, "Open tag `"+tag.Name+"`", true)
}

// ApplyCloseTag checks close tags.
func (r *MissingEndBracketRule) ApplyCloseTag(tag *htmlast.CloseTag, _ *parser.ParseState) []lint.Diagnostic {
	return r.check(&tag.MissingEndBracket, tag.Area, "Close tag `"+tag.Name+"`", true)
}

// ApplyTemplateExpression checks template expressions. The closing delimiter
// depends on the construct, so these are never fixed.
func (r *MissingEndBracketRule) ApplyTemplateExpression(
	expr *htmlast.TemplateExpression, _ *parser.ParseState,
) []lint.Diagnostic {
	return r.check(&expr.MissingEndBracket, expr.Area, "Template expression", false)
}

// ApplyDoctype checks doctypes.
func (r *MissingEndBracketRule) ApplyDoctype(doctype *htmlast.Doctype, _ *parser.ParseState) []lint.Diagnostic {
	return r.check(&doctype.MissingEndBracket, doctype.Area, "Doctype", true)
}

// ApplyComment checks comments.
func (r *MissingEndBracketRule) ApplyComment(comment *htmlast.Comment, _ *parser.ParseState) []lint.Diagnostic {
	return r.check(&comment.MissingEndBracket, comment.Area, "Comment", true)
}

// MissingCloseTagRule reports open tags that are never closed.
type MissingCloseTagRule struct {
	lint.BaseRule `mapstructure:",squash"`

	// ExceptTags are allowed to stay open, typically void elements.
	ExceptTags []string `mapstructure:"except_tags"`
}

// NewMissingCloseTagRule creates a missing_close_tag_disallowed rule.
func NewMissingCloseTagRule() *MissingCloseTagRule {
	return &MissingCloseTagRule{}
}

// ApplyTag reports an open tag that reached the end of input unclosed.
func (r *MissingCloseTagRule) ApplyTag(
	open *htmlast.OpenTag, closeTag *htmlast.CloseTag, _ *parser.ParseState,
) []lint.Diagnostic {
	if open == nil || closeTag != nil || open.SelfClosed {
		return nil
	}
	if slices.Contains(r.ExceptTags, open.Name) {
		return nil
	}
	msg := r.Message("Open tag `{name}` is missing close tag", "name", open.Name)
	return []lint.Diagnostic{r.Report(msg, open.Area)}
}

// MissingOpenTagRule reports close tags without a matching open tag.
type MissingOpenTagRule struct {
	lint.BaseRule `mapstructure:",squash"`
}

// NewMissingOpenTagRule creates a missing_open_tag_disallowed rule.
func NewMissingOpenTagRule() *MissingOpenTagRule {
	return &MissingOpenTagRule{}
}

// ApplyCloseTag reports orphan close tags.
func (r *MissingOpenTagRule) ApplyCloseTag(tag *htmlast.CloseTag, _ *parser.ParseState) []lint.Diagnostic {
	if tag.HasOpenTag() {
		return nil
	}
	msg := r.Message("Close tag `{name}` is missing open tag", "name", tag.Name)
	return []lint.Diagnostic{r.Report(msg, tag.Area)}
}

// SelfClosingStyle is how void-like tags are written.
type SelfClosingStyle string

const (
	SelfClosingClosed SelfClosingStyle = "closed" // <br/>
	SelfClosingOpen   SelfClosingStyle = "open"   // <br>
)

// SelfClosingTagStyleRule enforces <br/> or <br> for the listed tags.
type SelfClosingTagStyleRule struct {
	lint.BaseRule `mapstructure:",squash"`

	Style   SelfClosingStyle `mapstructure:"style"`
	Tags    []string         `mapstructure:"tags"`
	Autofix bool             `mapstructure:"autofix"`
}

// NewSelfClosingTagStyleRule creates a self_closing_tag_style rule.
func NewSelfClosingTagStyleRule() *SelfClosingTagStyleRule {
	return &SelfClosingTagStyleRule{}
}

// Prepare validates the style.
func (r *SelfClosingTagStyleRule) Prepare() error {
	return oneOf(r.Style, "style", SelfClosingClosed, SelfClosingOpen)
}

// ApplyOpenTag checks and optionally fixes the self-closing marker.
func (r *SelfClosingTagStyleRule) ApplyOpenTag(tag *htmlast.OpenTag, _ *parser.ParseState) []lint.Diagnostic {
	if !slices.Contains(r.Tags, tag.Name) {
		return nil
	}

	wantClosed := r.Style == SelfClosingClosed
	if tag.SelfClosed == wantClosed {
		return nil
	}
	if r.Autofix {
		tag.SelfClosed = wantClosed
	}

	example := "<" + tag.Name + ">"
	if wantClosed {
		example = "<" + tag.Name + "/>"
	}
	msg := r.Message("Tag `{name}` must be {style} `{example}`",
		"name", tag.Name, "style", string(r.Style), "example", example)
	return []lint.Diagnostic{r.Report(msg, tag.Area)}
}

// TagNameBlacklistRule reports uses of the listed tags.
type TagNameBlacklistRule struct {
	lint.BaseRule `mapstructure:",squash"`

	Tags []string `mapstructure:"tags"`
}

// NewTagNameBlacklistRule creates a tag_name_blacklist rule.
func NewTagNameBlacklistRule() *TagNameBlacklistRule {
	return &TagNameBlacklistRule{}
}

// ApplyTag reports both halves of a blacklisted tag.
func (r *TagNameBlacklistRule) ApplyTag(
	open *htmlast.OpenTag, closeTag *htmlast.CloseTag, _ *parser.ParseState,
) []lint.Diagnostic {
	name, ok := tagName(open, closeTag)
	if !ok || !slices.Contains(r.Tags, name) {
		return nil
	}
	msg := r.Message("Tag `{name}` is not allowed", "name", name)
	return []lint.Diagnostic{r.Report(msg, tagAreas(open, closeTag)...)}
}

// TagNameWhitelistRule reports tags that are not listed.
type TagNameWhitelistRule struct {
	lint.BaseRule `mapstructure:",squash"`

	Tags []string `mapstructure:"tags"`

	// AllowIfDashed accepts any custom element name containing a dash.
	AllowIfDashed bool `mapstructure:"allow_if_dashed"`
}

// NewTagNameWhitelistRule creates a tag_name_whitelist rule.
func NewTagNameWhitelistRule() *TagNameWhitelistRule {
	return &TagNameWhitelistRule{AllowIfDashed: true}
}

// ApplyTag reports both halves of a tag missing from the whitelist.
func (r *TagNameWhitelistRule) ApplyTag(
	open *htmlast.OpenTag, closeTag *htmlast.CloseTag, _ *parser.ParseState,
) []lint.Diagnostic {
	name, ok := tagName(open, closeTag)
	if !ok || slices.Contains(r.Tags, strings.ToLower(name)) {
		return nil
	}
	if r.AllowIfDashed && strings.Contains(name, "-") {
		return nil
	}
	msg := r.Message("Tag `{name}` is not allowed", "name", name)
	return []lint.Diagnostic{r.Report(msg, tagAreas(open, closeTag)...)}
}

// TagNameCasingRule enforces lowercase or uppercase tag names.
type TagNameCasingRule struct {
	lint.BaseRule `mapstructure:",squash"`

	Style   casing.Style `mapstructure:"style"`
	Autofix bool         `mapstructure:"autofix"`
}

// NewTagNameCasingRule creates a tag_name_casing rule.
func NewTagNameCasingRule() *TagNameCasingRule {
	return &TagNameCasingRule{}
}

// Prepare validates the style.
func (r *TagNameCasingRule) Prepare() error {
	return oneOf(r.Style, "style", casing.Lower, casing.Upper)
}

func (r *TagNameCasingRule) check(name *string, area htmlast.Area) []lint.Diagnostic {
	converted := r.Style.Convert(*name)
	if converted == *name {
		return nil
	}
	msg := r.Message(`Tag name "{name}" should be in {style}, change to "{converted_name}"`,
		"name", *name, "style", r.Style.String(), "converted_name", converted)
	if r.Autofix {
		*name = converted
	}
	return []lint.Diagnostic{r.Report(msg, area)}
}

// ApplyOpenTag checks open tag names.
func (r *TagNameCasingRule) ApplyOpenTag(tag *htmlast.OpenTag, _ *parser.ParseState) []lint.Diagnostic {
	return r.check(&tag.Name, tag.Area)
}

// ApplyCloseTag checks close tag names.
func (r *TagNameCasingRule) ApplyCloseTag(tag *htmlast.CloseTag, _ *parser.ParseState) []lint.Diagnostic {
	return r.check(&tag.Name, tag.Area)
}

// TagNameRegexpRule requires tag names to match a pattern.
type TagNameRegexpRule struct {
	lint.BaseRule `mapstructure:",squash"`

	Regexp *regexp.Regexp `mapstructure:"regexp"`
}

// NewTagNameRegexpRule creates a tag_name_regexp rule.
func NewTagNameRegexpRule() *TagNameRegexpRule {
	return &TagNameRegexpRule{}
}

// Prepare requires a pattern.
func (r *TagNameRegexpRule) Prepare() error {
	return requireRegexp(r.Regexp)
}

func (r *TagNameRegexpRule) check(name string, area htmlast.Area) []lint.Diagnostic {
	if r.Regexp.MatchString(name) {
		return nil
	}
	msg := r.Message("Tag name `{name}` must match the regexp `{regexp}`",
		"name", name, "regexp", r.Regexp.String())
	return []lint.Diagnostic{r.Report(msg, area)}
}

// ApplyOpenTag checks open tag names.
func (r *TagNameRegexpRule) ApplyOpenTag(tag *htmlast.OpenTag, _ *parser.ParseState) []lint.Diagnostic {
	return r.check(tag.Name, tag.Area)
}

// ApplyCloseTag checks close tag names.
func (r *TagNameRegexpRule) ApplyCloseTag(tag *htmlast.CloseTag, _ *parser.ParseState) []lint.Diagnostic {
	return r.check(tag.Name, tag.Area)
}
