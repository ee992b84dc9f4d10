// Package rules provides the built-in rule kinds for htmlsnob.
//
// # Rule Kinds
//
// A rule kind is instantiated once per entry in the configured rule list, so
// the same kind can appear several times with different options and names.
//
//   - Tags: missing_end_bracket_disallowed, missing_close_tag_disallowed,
//     missing_open_tag_disallowed, self_closing_tag_style, tag_name_blacklist,
//     tag_name_whitelist, tag_name_casing, tag_name_regexp
//
//   - Attributes: attribute_name_blacklist, attribute_name_casing_style,
//     attribute_name_missing, attribute_name_regexp, attribute_name_requirement,
//     attribute_name_whitelist, attribute_value_casing_style,
//     attribute_value_quote_style, attribute_value_regexp,
//     attribute_value_whitelist, attributes_order, boolean_attribute_style,
//     duplicate_attribute_names_disallowed
//
//   - Class and id: class_name_casing_style, class_order,
//     duplicate_classes_disallowed, id_casing_style, id_unique
//
//   - Content: text_disallowed, text_regexp, text_requirement
//
//   - Structure: ancestor_blacklist, ancestor_requirement, child_blacklist,
//     child_whitelist, child_requirement, descendant_requirement,
//     duplicate_elements_blacklist, maximum_nesting_depth
//
// Every kind accepts name, severity and error_message. Messages are templates
// whose {placeholders} are filled per diagnostic.
//
// Regular expressions are unanchored, as in regexp.MatchString. Write ^ and $
// to match a whole name.
//
// # Autofix
//
// Rules with an autofix option rewrite the node they report on. The
// formatter then renders the fixed tree.
//
// # Rule Packs
//
// Packs are embedded configuration documents for common use cases:
//
//   - recommended: well-formed markup and a few safe fixes (the default)
//   - strict: recommended plus naming, ordering and structure checks
//   - relaxed: only markup the parser had to guess about
//
// Use PackByName or Packs to access pack definitions programmatically.
//
// # Registration
//
// Rule kinds are registered with lint.DefaultRegistry via RegisterAll.
package rules
