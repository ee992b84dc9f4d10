package rules

import (
	"slices"
	"strings"

	"github.com/yaklabco/htmlsnob/pkg/casing"
	"github.com/yaklabco/htmlsnob/pkg/htmlast"
	"github.com/yaklabco/htmlsnob/pkg/lint"
	"github.com/yaklabco/htmlsnob/pkg/parser"
)

// ClassNameCasingStyleRule enforces a naming style for class names.
type ClassNameCasingStyleRule struct {
	lint.BaseRule `mapstructure:",squash"`

	CaseStyle casing.Style `mapstructure:"case_style"`
	Autofix   bool         `mapstructure:"autofix"`
}

// NewClassNameCasingStyleRule creates a class_name_casing_style rule.
func NewClassNameCasingStyleRule() *ClassNameCasingStyleRule {
	return &ClassNameCasingStyleRule{}
}

// Prepare validates the style.
func (r *ClassNameCasingStyleRule) Prepare() error {
	return validateStyle(r.CaseStyle, "case_style")
}

// ApplyAttribute checks every literal class name.
func (r *ClassNameCasingStyleRule) ApplyAttribute(attr *htmlast.Attribute) []lint.Diagnostic {
	if !isAttribute(attr, "class") || attr.Value == nil {
		return nil
	}

	var diags []lint.Diagnostic
	for _, class := range attr.Value.StringAreas() {
		converted := r.CaseStyle.Convert(class.Content)
		if converted == class.Content {
			continue
		}
		msg := r.Message("Class name `{class_name}` should be in {case_style}, change to `{expected_name}`.",
			"class_name", class.Content, "case_style", r.CaseStyle.String(), "expected_name", converted)
		diags = append(diags, r.Report(msg, class.Area))
		if r.Autofix {
			class.Content = converted
		}
	}
	return diags
}

// ClassOrderRule requires the listed classes to appear in the given order.
// Unlisted classes and template expressions keep their positions.
type ClassOrderRule struct {
	lint.BaseRule `mapstructure:",squash"`

	Order   []string `mapstructure:"order"`
	Autofix bool     `mapstructure:"autofix"`
}

// NewClassOrderRule creates a class_order rule.
func NewClassOrderRule() *ClassOrderRule {
	return &ClassOrderRule{}
}

// ApplyAttribute reports out-of-order classes and optionally sorts them.
func (r *ClassOrderRule) ApplyAttribute(attr *htmlast.Attribute) []lint.Diagnostic {
	if !isAttribute(attr, "class") || attr.Value == nil {
		return nil
	}

	var (
		diags  []lint.Diagnostic
		listed []*htmlast.StringArea
		last   int
	)
	for _, class := range attr.Value.StringAreas() {
		index := slices.Index(r.Order, class.Content)
		if index < 0 {
			continue
		}
		listed = append(listed, class)
		if index < last {
			msg := r.Message("`{first_name}` must be before `{second_name}`",
				"first_name", class.Content, "second_name", r.Order[last])
			diags = append(diags, r.Report(msg, class.Area))
		}
		last = index
	}

	if r.Autofix && len(diags) > 0 {
		sorted := slices.Clone(listed)
		slices.SortStableFunc(sorted, func(a, b *htmlast.StringArea) int {
			return slices.Index(r.Order, a.Content) - slices.Index(r.Order, b.Content)
		})
		contents := make([]string, len(sorted))
		for i, class := range sorted {
			contents[i] = class.Content
		}
		// Swap contents rather than parts so each slot keeps its area.
		for i, class := range listed {
			class.Content = contents[i]
		}
	}
	return diags
}

// DuplicateClassesRule reports class names repeated within one class attribute.
type DuplicateClassesRule struct {
	lint.BaseRule `mapstructure:",squash"`

	Autofix bool `mapstructure:"autofix"`
}

// NewDuplicateClassesRule creates a duplicate_classes_disallowed rule.
func NewDuplicateClassesRule() *DuplicateClassesRule {
	return &DuplicateClassesRule{}
}

// ApplyAttribute reports repeats and optionally removes them.
func (r *DuplicateClassesRule) ApplyAttribute(attr *htmlast.Attribute) []lint.Diagnostic {
	if !isAttribute(attr, "class") || attr.Value == nil {
		return nil
	}

	var diags []lint.Diagnostic
	seen := make(map[string]bool)
	kept := attr.Value.Parts[:0:0]
	for _, part := range attr.Value.Parts {
		class, ok := part.(*htmlast.StringArea)
		if !ok {
			kept = append(kept, part)
			continue
		}
		if seen[class.Content] {
			msg := r.Message("Class name `{name}` appears more than once", "name", class.Content)
			diags = append(diags, r.Report(msg, class.Area))
			continue
		}
		seen[class.Content] = true
		kept = append(kept, part)
	}

	if r.Autofix {
		attr.Value.Parts = kept
	}
	return diags
}

// IDCasingStyleRule enforces a naming style for id values.
type IDCasingStyleRule struct {
	lint.BaseRule `mapstructure:",squash"`

	Style   casing.Style `mapstructure:"style"`
	Autofix bool         `mapstructure:"autofix"`
}

// NewIDCasingStyleRule creates an id_casing_style rule.
func NewIDCasingStyleRule() *IDCasingStyleRule {
	return &IDCasingStyleRule{}
}

// Prepare validates the style.
func (r *IDCasingStyleRule) Prepare() error {
	return validateStyle(r.Style, "style")
}

// ApplyAttribute checks the literal parts of an id value.
func (r *IDCasingStyleRule) ApplyAttribute(attr *htmlast.Attribute) []lint.Diagnostic {
	name, ok := literalName(attr)
	if !ok || !strings.EqualFold(name.Content, "id") || attr.Value == nil {
		return nil
	}
	return convertParts(&r.BaseRule, attr.Value, r.Style, r.Autofix,
		"id value `{value}` should be in {style}, change to `{converted_value}`")
}

// IDUniqueRule reports id values used more than once in a document.
type IDUniqueRule struct {
	lint.BaseRule `mapstructure:",squash"`

	seen map[string]bool
}

// NewIDUniqueRule creates an id_unique rule.
func NewIDUniqueRule() *IDUniqueRule {
	return &IDUniqueRule{seen: make(map[string]bool)}
}

// staticID returns the id value when it is a single literal word.
func staticID(attr *htmlast.Attribute) (*htmlast.StringArea, bool) {
	name, ok := literalName(attr)
	if !ok || !strings.EqualFold(name.Content, "id") || attr.Value == nil || len(attr.Value.Parts) != 1 {
		return nil, false
	}
	s, ok := attr.Value.Parts[0].(*htmlast.StringArea)
	return s, ok
}

// ApplyOpenTag reports the first id of the tag that was seen before.
func (r *IDUniqueRule) ApplyOpenTag(tag *htmlast.OpenTag, _ *parser.ParseState) []lint.Diagnostic {
	for _, attr := range tag.Attributes {
		id, ok := staticID(attr)
		if !ok || !r.seen[id.Content] {
			continue
		}
		msg := r.Message("id value `{value}` is used more than once", "value", id.Content)
		return []lint.Diagnostic{r.Report(msg, attr.Value.Area)}
	}
	return nil
}

// TrackOpenTag records the ids of the tag.
func (r *IDUniqueRule) TrackOpenTag(tag *htmlast.OpenTag, _ *parser.ParseState) {
	for _, attr := range tag.Attributes {
		if id, ok := staticID(attr); ok {
			r.seen[id.Content] = true
		}
	}
}

// ResetState forgets every id.
func (r *IDUniqueRule) ResetState() {
	clear(r.seen)
}
