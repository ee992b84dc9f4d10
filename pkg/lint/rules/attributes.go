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

// AttributeNameBlacklistRule reports attributes that are not allowed on a tag.
type AttributeNameBlacklistRule struct {
	lint.BaseRule `mapstructure:",squash"`

	// Tags maps a tag name to its forbidden attribute names.
	Tags map[string][]string `mapstructure:"tags"`
}

// NewAttributeNameBlacklistRule creates an attribute_name_blacklist rule.
func NewAttributeNameBlacklistRule() *AttributeNameBlacklistRule {
	return &AttributeNameBlacklistRule{}
}

// ApplyOpenTag reports every blacklisted attribute of the tag.
func (r *AttributeNameBlacklistRule) ApplyOpenTag(tag *htmlast.OpenTag, _ *parser.ParseState) []lint.Diagnostic {
	blacklist, ok := r.Tags[tag.Name]
	if !ok {
		return nil
	}

	var diags []lint.Diagnostic
	for _, attr := range tag.Attributes {
		name, ok := literalName(attr)
		if !ok || !slices.Contains(blacklist, name.Content) {
			continue
		}
		msg := r.Message("Attribute `{name}` is not allowed", "name", name.Content)
		diags = append(diags, r.Report(msg, name.Area))
	}
	return diags
}

// AttributeNameCasingStyleRule enforces a naming style for attribute names.
type AttributeNameCasingStyleRule struct {
	lint.BaseRule `mapstructure:",squash"`

	Style   casing.Style `mapstructure:"style"`
	Autofix bool         `mapstructure:"autofix"`
}

// NewAttributeNameCasingStyleRule creates an attribute_name_casing_style rule.
func NewAttributeNameCasingStyleRule() *AttributeNameCasingStyleRule {
	return &AttributeNameCasingStyleRule{}
}

// Prepare validates the style.
func (r *AttributeNameCasingStyleRule) Prepare() error {
	return validateStyle(r.Style, "style")
}

// ApplyAttribute checks the attribute name.
func (r *AttributeNameCasingStyleRule) ApplyAttribute(attr *htmlast.Attribute) []lint.Diagnostic {
	name, ok := literalName(attr)
	if !ok {
		return nil
	}
	converted := r.Style.Convert(name.Content)
	if converted == name.Content {
		return nil
	}

	msg := r.Message("Attribute name `{name}` should be in {style}, change to `{converted_name}`",
		"name", name.Content, "style", r.Style.String(), "converted_name", converted)
	diag := r.Report(msg, name.Area)

	if r.Autofix {
		attr.Name = &htmlast.StringArea{Content: converted, Area: name.Area}
	}
	return []lint.Diagnostic{diag}
}

// AttributeNameMissingRule reports attributes written as ="value".
type AttributeNameMissingRule struct {
	lint.BaseRule `mapstructure:",squash"`
}

// NewAttributeNameMissingRule creates an attribute_name_missing rule.
func NewAttributeNameMissingRule() *AttributeNameMissingRule {
	return &AttributeNameMissingRule{}
}

// ApplyAttribute reports an empty attribute name.
func (r *AttributeNameMissingRule) ApplyAttribute(attr *htmlast.Attribute) []lint.Diagnostic {
	name, ok := literalName(attr)
	if !ok || name.Content != "" {
		return nil
	}
	msg := r.Message("Attribute name missing, expected a name before the = sign")
	return []lint.Diagnostic{r.Report(msg, attr.Area)}
}

// AttributeNameRegexpRule requires attribute names to match a pattern.
type AttributeNameRegexpRule struct {
	lint.BaseRule `mapstructure:",squash"`

	Regexp *regexp.Regexp `mapstructure:"regexp"`
}

// NewAttributeNameRegexpRule creates an attribute_name_regexp rule.
func NewAttributeNameRegexpRule() *AttributeNameRegexpRule {
	return &AttributeNameRegexpRule{}
}

// Prepare requires a pattern.
func (r *AttributeNameRegexpRule) Prepare() error {
	return requireRegexp(r.Regexp)
}

// ApplyAttribute checks the attribute name.
func (r *AttributeNameRegexpRule) ApplyAttribute(attr *htmlast.Attribute) []lint.Diagnostic {
	name, ok := literalName(attr)
	if !ok || r.Regexp.MatchString(name.Content) {
		return nil
	}
	msg := r.Message("Attribute name `{name}` must match the regexp `{regexp}`",
		"name", name.Content, "regexp", r.Regexp.String())
	return []lint.Diagnostic{r.Report(msg, name.Area)}
}

// AttributeNameRequirementRule requires tags to carry certain attributes.
type AttributeNameRequirementRule struct {
	lint.BaseRule `mapstructure:",squash"`

	// Attributes maps a tag name to the attribute names it must have.
	Attributes map[string][]string `mapstructure:"attributes"`
}

// NewAttributeNameRequirementRule creates an attribute_name_requirement rule.
func NewAttributeNameRequirementRule() *AttributeNameRequirementRule {
	return &AttributeNameRequirementRule{}
}

// ApplyOpenTag reports the required attributes the tag lacks.
func (r *AttributeNameRequirementRule) ApplyOpenTag(tag *htmlast.OpenTag, _ *parser.ParseState) []lint.Diagnostic {
	required, ok := r.Attributes[tag.Name]
	if !ok {
		return nil
	}

	var missing []string
	for _, name := range required {
		if _, found := tag.Attribute(name); !found {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	msg := r.Message("Missing required attributes: {attributes}", "attributes", strings.Join(missing, ", "))
	return []lint.Diagnostic{r.Report(msg, tag.Area)}
}

// AttributeNameWhitelistRule allows only global attributes and the listed
// attributes on the listed tags. Tags without an entry are not checked.
type AttributeNameWhitelistRule struct {
	lint.BaseRule `mapstructure:",squash"`

	Globals []*regexp.Regexp            `mapstructure:"globals"`
	Tags    map[string][]*regexp.Regexp `mapstructure:"tags"`
}

// NewAttributeNameWhitelistRule creates an attribute_name_whitelist rule.
func NewAttributeNameWhitelistRule() *AttributeNameWhitelistRule {
	return &AttributeNameWhitelistRule{}
}

// ApplyOpenTag reports attributes that match neither list.
func (r *AttributeNameWhitelistRule) ApplyOpenTag(tag *htmlast.OpenTag, _ *parser.ParseState) []lint.Diagnostic {
	whitelist, ok := r.Tags[tag.Name]
	if !ok {
		return nil
	}

	var diags []lint.Diagnostic
	for _, attr := range tag.Attributes {
		name, ok := literalName(attr)
		if !ok || name.Content == "" {
			continue
		}
		if matchesAny(r.Globals, name.Content) || matchesAny(whitelist, name.Content) {
			continue
		}
		msg := r.Message("`{name}` not allowed, must be a global attribute or: `{whitelist}`",
			"name", name.Content, "whitelist", joinPatterns(whitelist))
		diags = append(diags, r.Report(msg, name.Area))
	}
	return diags
}

// AttributeValueCasingStyleRule enforces a naming style for every literal
// word of every attribute value.
type AttributeValueCasingStyleRule struct {
	lint.BaseRule `mapstructure:",squash"`

	Style   casing.Style `mapstructure:"style"`
	Autofix bool         `mapstructure:"autofix"`
}

// NewAttributeValueCasingStyleRule creates an attribute_value_casing_style rule.
func NewAttributeValueCasingStyleRule() *AttributeValueCasingStyleRule {
	return &AttributeValueCasingStyleRule{}
}

// Prepare validates the style.
func (r *AttributeValueCasingStyleRule) Prepare() error {
	return validateStyle(r.Style, "style")
}

// ApplyAttribute checks the literal value parts.
func (r *AttributeValueCasingStyleRule) ApplyAttribute(attr *htmlast.Attribute) []lint.Diagnostic {
	if attr.Value == nil {
		return nil
	}
	return convertParts(&r.BaseRule, attr.Value, r.Style, r.Autofix,
		"Attribute value `{value}` should be in {style}, change to `{converted_value}`")
}

// convertParts reports literal value parts not written in style and fixes
// them in place when autofix is set.
func convertParts(
	r *lint.BaseRule, value *htmlast.AttributeValue, style casing.Style, autofix bool, template string,
) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, part := range value.StringAreas() {
		converted := style.Convert(part.Content)
		if converted == part.Content {
			continue
		}
		msg := r.Message(template,
			"value", part.Content, "style", style.String(), "converted_value", converted)
		diags = append(diags, r.Report(msg, part.Area))
		if autofix {
			part.Content = converted
		}
	}
	return diags
}

// QuoteStyle is the quote character attribute values are wrapped in.
type QuoteStyle string

const (
	QuoteSingle QuoteStyle = "single"
	QuoteDouble QuoteStyle = "double"
)

func (q QuoteStyle) rune() rune {
	if q == QuoteSingle {
		return '\''
	}
	return '"'
}

// AttributeValueQuoteStyleRule requires every value to use the same quotes.
type AttributeValueQuoteStyleRule struct {
	lint.BaseRule `mapstructure:",squash"`

	Style   QuoteStyle `mapstructure:"style"`
	Autofix bool       `mapstructure:"autofix"`
}

// NewAttributeValueQuoteStyleRule creates an attribute_value_quote_style rule.
func NewAttributeValueQuoteStyleRule() *AttributeValueQuoteStyleRule {
	return &AttributeValueQuoteStyleRule{}
}

// Prepare validates the style.
func (r *AttributeValueQuoteStyleRule) Prepare() error {
	return oneOf(r.Style, "style", QuoteSingle, QuoteDouble)
}

// ApplyAttribute checks both quote characters of the value.
func (r *AttributeValueQuoteStyleRule) ApplyAttribute(attr *htmlast.Attribute) []lint.Diagnostic {
	value := attr.Value
	if value == nil {
		return nil
	}

	quote := r.Style.rune()
	if value.StartQuote == quote && value.EndQuote == quote {
		return nil
	}
	if r.Autofix {
		value.StartQuote = quote
		value.EndQuote = quote
	}

	msg := r.Message("Attribute value must be quoted with {prefered_quote}{prefered_quote}",
		"prefered_quote", string(quote))
	return []lint.Diagnostic{r.Report(msg, value.Area)}
}

// AttributeValueRegexpRule requires single-part attribute values to match a
// pattern per tag and attribute.
type AttributeValueRegexpRule struct {
	lint.BaseRule `mapstructure:",squash"`

	// Tags maps a tag name to attribute names and their patterns.
	Tags map[string]map[string]*regexp.Regexp `mapstructure:"tags"`
}

// NewAttributeValueRegexpRule creates an attribute_value_regexp rule.
func NewAttributeValueRegexpRule() *AttributeValueRegexpRule {
	return &AttributeValueRegexpRule{}
}

// ApplyOpenTag checks the configured attributes of the tag. Values that
// contain template expressions or several words are skipped.
func (r *AttributeValueRegexpRule) ApplyOpenTag(tag *htmlast.OpenTag, _ *parser.ParseState) []lint.Diagnostic {
	patterns, ok := r.Tags[tag.Name]
	if !ok {
		return nil
	}

	var diags []lint.Diagnostic
	for _, attr := range tag.Attributes {
		name, ok := literalName(attr)
		if !ok || attr.Value == nil {
			continue
		}
		re, ok := patterns[name.Content]
		if !ok {
			continue
		}

		var value string
		switch parts := attr.Value.Parts; len(parts) {
		case 0:
		case 1:
			s, ok := parts[0].(*htmlast.StringArea)
			if !ok {
				continue
			}
			value = s.Content
		default:
			continue
		}

		if re.MatchString(value) {
			continue
		}
		msg := r.Message("Attribute value `{value}` must match the regexp `{regexp}`",
			"value", value, "regexp", re.String())
		diags = append(diags, r.Report(msg, attr.Value.Area))
	}
	return diags
}

// AttributeValueWhitelistRule restricts the words an attribute value may use.
type AttributeValueWhitelistRule struct {
	lint.BaseRule `mapstructure:",squash"`

	// TagAttributes maps tag name, then attribute name, to allowed patterns.
	// It takes precedence over GlobalAttributes.
	TagAttributes map[string]map[string][]*regexp.Regexp `mapstructure:"tag_attributes"`

	// GlobalAttributes maps an attribute name to allowed patterns on any tag.
	GlobalAttributes map[string][]*regexp.Regexp `mapstructure:"global_attributes"`
}

// NewAttributeValueWhitelistRule creates an attribute_value_whitelist rule.
func NewAttributeValueWhitelistRule() *AttributeValueWhitelistRule {
	return &AttributeValueWhitelistRule{}
}

// ApplyOpenTag checks every literal value word of the whitelisted attributes.
func (r *AttributeValueWhitelistRule) ApplyOpenTag(tag *htmlast.OpenTag, _ *parser.ParseState) []lint.Diagnostic {
	var diags []lint.Diagnostic

	for _, attr := range tag.Attributes {
		name, ok := literalName(attr)
		if !ok || attr.Value == nil {
			continue
		}

		whitelist, ok := r.TagAttributes[tag.Name][name.Content]
		if !ok {
			whitelist, ok = r.GlobalAttributes[name.Content]
		}
		if !ok {
			continue
		}

		for _, part := range attr.Value.StringAreas() {
			if matchesAny(whitelist, part.Content) {
				continue
			}
			msg := r.Message("Attribute value `{value}` must be one of `{whitelist}`",
				"value", part.Content, "whitelist", joinPatterns(whitelist))
			diags = append(diags, r.Report(msg, part.Area))
		}
	}
	return diags
}

// AttributesOrderRule requires attributes to appear in a given order.
// Attributes matching none of the patterns may appear anywhere.
type AttributesOrderRule struct {
	lint.BaseRule `mapstructure:",squash"`

	Order []*regexp.Regexp `mapstructure:"order"`
}

// NewAttributesOrderRule creates an attributes_order rule.
func NewAttributesOrderRule() *AttributesOrderRule {
	return &AttributesOrderRule{}
}

// ApplyOpenTag reports attributes that come after a later-ordered one.
func (r *AttributesOrderRule) ApplyOpenTag(tag *htmlast.OpenTag, _ *parser.ParseState) []lint.Diagnostic {
	var diags []lint.Diagnostic

	last := 0
	for _, attr := range tag.Attributes {
		name, ok := literalName(attr)
		if !ok {
			continue
		}
		index := slices.IndexFunc(r.Order, func(re *regexp.Regexp) bool {
			return re.MatchString(name.Content)
		})
		if index < 0 {
			continue
		}
		if index < last {
			msg := r.Message("Attribute `{first_name}` must be before `{second_name}`",
				"first_name", name.Content, "second_name", r.Order[last].String())
			diags = append(diags, r.Report(msg, name.Area))
		}
		last = index
	}
	return diags
}

// BooleanAttributeStyle is how a boolean attribute such as checked is written.
type BooleanAttributeStyle string

const (
	BooleanNoValue    BooleanAttributeStyle = "no_value"    // checked
	BooleanEmptyValue BooleanAttributeStyle = "empty_value" // checked=""
	BooleanSameValue  BooleanAttributeStyle = "same_value"  // checked="checked"
)

// BooleanAttributeStyleRule enforces one way of writing boolean attributes.
type BooleanAttributeStyleRule struct {
	lint.BaseRule `mapstructure:",squash"`

	Style      BooleanAttributeStyle `mapstructure:"style"`
	Attributes []string              `mapstructure:"attributes"`
	Autofix    bool                  `mapstructure:"autofix"`
}

// NewBooleanAttributeStyleRule creates a boolean_attribute_style rule.
func NewBooleanAttributeStyleRule() *BooleanAttributeStyleRule {
	return &BooleanAttributeStyleRule{}
}

// Prepare validates the style.
func (r *BooleanAttributeStyleRule) Prepare() error {
	return oneOf(r.Style, "style", BooleanNoValue, BooleanEmptyValue, BooleanSameValue)
}

func (r *BooleanAttributeStyleRule) matches(name string, value *htmlast.AttributeValue) bool {
	switch r.Style {
	case BooleanNoValue:
		return value == nil
	case BooleanEmptyValue:
		return value != nil && len(value.Parts) == 0
	case BooleanSameValue:
		if value == nil {
			return false
		}
		words := value.StringAreas()
		return len(words) == 1 && words[0].Content == name
	}
	return true
}

func (r *BooleanAttributeStyleRule) description(name string) string {
	switch r.Style {
	case BooleanEmptyValue:
		return lint.DynamicFormat("an empty value `{name}=\"\"`", "name", name)
	case BooleanSameValue:
		return lint.DynamicFormat("the same value as the attribute name `{name}=\"{name}\"`", "name", name)
	default:
		return lint.DynamicFormat("no value `{name}`", "name", name)
	}
}

// ApplyAttribute checks and optionally rewrites the value of a boolean attribute.
func (r *BooleanAttributeStyleRule) ApplyAttribute(attr *htmlast.Attribute) []lint.Diagnostic {
	name, ok := literalName(attr)
	if !ok || !slices.Contains(r.Attributes, name.Content) {
		return nil
	}
	if r.matches(name.Content, attr.Value) {
		return nil
	}

	msg := r.Message("Boolean Attribute must have {description}",
		"name", name.Content, "description", r.description(name.Content))
	diag := r.Report(msg, attr.Area)

	if r.Autofix {
		switch r.Style {
		case BooleanNoValue:
			attr.Value = nil
		case BooleanEmptyValue:
			attr.Value = &htmlast.AttributeValue{StartQuote: '"', EndQuote: '"', Area: attr.Area}
		case BooleanSameValue:
			attr.Value = &htmlast.AttributeValue{
				StartQuote: '"',
				EndQuote:   '"',
				Parts:      []htmlast.Fragment{&htmlast.StringArea{Content: name.Content, Area: attr.Area}},
				Area:       attr.Area,
			}
		}
	}
	return []lint.Diagnostic{diag}
}

// DuplicateAttributeNamesRule reports attributes repeated on one tag.
type DuplicateAttributeNamesRule struct {
	lint.BaseRule `mapstructure:",squash"`
}

// NewDuplicateAttributeNamesRule creates a duplicate_attribute_names_disallowed rule.
func NewDuplicateAttributeNamesRule() *DuplicateAttributeNamesRule {
	return &DuplicateAttributeNamesRule{}
}

// ApplyOpenTag reports every repeat after the first occurrence.
func (r *DuplicateAttributeNamesRule) ApplyOpenTag(tag *htmlast.OpenTag, _ *parser.ParseState) []lint.Diagnostic {
	var diags []lint.Diagnostic

	seen := make(map[string]bool, len(tag.Attributes))
	for _, attr := range tag.Attributes {
		name, ok := literalName(attr)
		if !ok {
			continue
		}
		if seen[name.Content] {
			msg := r.Message(`Attribute "{name}" appears more than once`, "name", name.Content)
			diags = append(diags, r.Report(msg, name.Area))
			continue
		}
		seen[name.Content] = true
	}
	return diags
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	return slices.ContainsFunc(patterns, func(re *regexp.Regexp) bool {
		return re.MatchString(s)
	})
}

func joinPatterns(patterns []*regexp.Regexp) string {
	out := make([]string, len(patterns))
	for i, re := range patterns {
		out[i] = re.String()
	}
	return strings.Join(out, ", ")
}
