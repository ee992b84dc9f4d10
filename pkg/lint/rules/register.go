package rules

import "github.com/yaklabco/htmlsnob/pkg/lint"

// RegisterAll registers all built-in rule kinds with the given registry.
func RegisterAll(registry *lint.Registry) {
	// Tag rules
	registry.Register(info("missing_end_bracket_disallowed",
		"Tags, comments, doctypes and template expressions must be terminated", true,
		func() lint.Rule { return NewMissingEndBracketRule() }))
	registry.Register(info("missing_close_tag_disallowed",
		"Open tags must have a matching close tag", false,
		func() lint.Rule { return NewMissingCloseTagRule() }))
	registry.Register(info("missing_open_tag_disallowed",
		"Close tags must have a matching open tag", false,
		func() lint.Rule { return NewMissingOpenTagRule() }))
	registry.Register(info("self_closing_tag_style",
		"Listed tags must be written as <tag/> or <tag>", true,
		func() lint.Rule { return NewSelfClosingTagStyleRule() }))
	registry.Register(info("tag_name_blacklist",
		"The listed tags must not be used", false,
		func() lint.Rule { return NewTagNameBlacklistRule() }))
	registry.Register(info("tag_name_whitelist",
		"Only the listed tags may be used", false,
		func() lint.Rule { return NewTagNameWhitelistRule() }))
	registry.Register(info("tag_name_casing",
		"Tag names must be lowercase or uppercase", true,
		func() lint.Rule { return NewTagNameCasingRule() }))
	registry.Register(info("tag_name_regexp",
		"Tag names must match a regular expression", false,
		func() lint.Rule { return NewTagNameRegexpRule() }))

	// Attribute rules
	registry.Register(info("attribute_name_blacklist",
		"The listed attributes must not be used on a tag", false,
		func() lint.Rule { return NewAttributeNameBlacklistRule() }))
	registry.Register(info("attribute_name_casing_style",
		"Attribute names must use a naming style", true,
		func() lint.Rule { return NewAttributeNameCasingStyleRule() }))
	registry.Register(info("attribute_name_missing",
		"Attributes must have a name before the = sign", false,
		func() lint.Rule { return NewAttributeNameMissingRule() }))
	registry.Register(info("attribute_name_regexp",
		"Attribute names must match a regular expression", false,
		func() lint.Rule { return NewAttributeNameRegexpRule() }))
	registry.Register(info("attribute_name_requirement",
		"Tags must have all of the listed attributes", false,
		func() lint.Rule { return NewAttributeNameRequirementRule() }))
	registry.Register(info("attribute_name_whitelist",
		"Tags may only have global or listed attributes", false,
		func() lint.Rule { return NewAttributeNameWhitelistRule() }))
	registry.Register(info("attribute_value_casing_style",
		"Attribute values must use a naming style", true,
		func() lint.Rule { return NewAttributeValueCasingStyleRule() }))
	registry.Register(info("attribute_value_quote_style",
		"Attribute values must use single or double quotes", true,
		func() lint.Rule { return NewAttributeValueQuoteStyleRule() }))
	registry.Register(info("attribute_value_regexp",
		"Attribute values must match a regular expression", false,
		func() lint.Rule { return NewAttributeValueRegexpRule() }))
	registry.Register(info("attribute_value_whitelist",
		"Attribute values must be one of the listed values", false,
		func() lint.Rule { return NewAttributeValueWhitelistRule() }))
	registry.Register(info("attributes_order",
		"Attributes must appear in a given order", false,
		func() lint.Rule { return NewAttributesOrderRule() }))
	registry.Register(info("boolean_attribute_style",
		"Boolean attributes must be written in one style", true,
		func() lint.Rule { return NewBooleanAttributeStyleRule() }))
	registry.Register(info("duplicate_attribute_names_disallowed",
		"Attributes must not be repeated on a tag", false,
		func() lint.Rule { return NewDuplicateAttributeNamesRule() }))

	// Class and id rules
	registry.Register(info("class_name_casing_style",
		"Class names must use a naming style", true,
		func() lint.Rule { return NewClassNameCasingStyleRule() }))
	registry.Register(info("class_order",
		"Listed classes must appear in a given order", true,
		func() lint.Rule { return NewClassOrderRule() }))
	registry.Register(info("duplicate_classes_disallowed",
		"Class names must not be repeated in a class attribute", true,
		func() lint.Rule { return NewDuplicateClassesRule() }))
	registry.Register(info("id_casing_style",
		"Id values must use a naming style", true,
		func() lint.Rule { return NewIDCasingStyleRule() }))
	registry.Register(info("id_unique",
		"Id values must be unique within a document", false,
		func() lint.Rule { return NewIDUniqueRule() }))

	// Content rules
	registry.Register(info("text_disallowed",
		"The listed tags must not contain text", false,
		func() lint.Rule { return NewTextDisallowedRule() }))
	registry.Register(info("text_regexp",
		"Text must match a regular expression", false,
		func() lint.Rule { return NewTextRegexpRule() }))
	registry.Register(info("text_requirement",
		"The listed tags must contain text", false,
		func() lint.Rule { return NewTextRequirementRule() }))

	// Structure rules
	registry.Register(info("ancestor_blacklist",
		"Tags must not be nested inside the listed ancestors", false,
		func() lint.Rule { return NewAncestorBlacklistRule() }))
	registry.Register(info("ancestor_requirement",
		"Tags must be nested inside one of the listed ancestors", false,
		func() lint.Rule { return NewAncestorRequirementRule() }))
	registry.Register(info("child_blacklist",
		"Parents must not have the listed direct children", false,
		func() lint.Rule { return NewChildBlacklistRule() }))
	registry.Register(info("child_whitelist",
		"Parents may only have the listed direct children", false,
		func() lint.Rule { return NewChildWhitelistRule() }))
	registry.Register(info("child_requirement",
		"Parents must have all of the listed direct children", false,
		func() lint.Rule { return NewChildRequirementRule() }))
	registry.Register(info("descendant_requirement",
		"Tags must contain all of the listed tags at any depth", false,
		func() lint.Rule { return NewDescendantRequirementRule() }))
	registry.Register(info("duplicate_elements_blacklist",
		"The listed tags may occur only once in a document", false,
		func() lint.Rule { return NewDuplicateElementsBlacklistRule() }))
	registry.Register(info("maximum_nesting_depth",
		"Elements must not be nested deeper than a limit", false,
		func() lint.Rule { return NewMaximumNestingDepthRule() }))
}

func info(kind, description string, fixable bool, factory lint.Factory) lint.RuleInfo {
	return lint.RuleInfo{Kind: kind, Description: description, Fixable: fixable, New: factory}
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
}
