package rules

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/htmlsnob/pkg/htmlast"
	"github.com/yaklabco/htmlsnob/pkg/lint"
	"github.com/yaklabco/htmlsnob/pkg/parser"
)

// AncestorBlacklistRule reports tags nested anywhere inside a forbidden ancestor.
type AncestorBlacklistRule struct {
	lint.BaseRule `mapstructure:",squash"`

	// Tags maps a tag name to the ancestors it must not have.
	Tags map[string][]string `mapstructure:"tags"`
}

// NewAncestorBlacklistRule creates an ancestor_blacklist rule.
func NewAncestorBlacklistRule() *AncestorBlacklistRule {
	return &AncestorBlacklistRule{}
}

// ApplyTag reports the outermost forbidden ancestor.
func (r *AncestorBlacklistRule) ApplyTag(
	open *htmlast.OpenTag, closeTag *htmlast.CloseTag, state *parser.ParseState,
) []lint.Diagnostic {
	if open == nil {
		return nil
	}
	blacklist, ok := r.Tags[open.Name]
	if !ok {
		return nil
	}

	for _, ancestor := range ancestors(open, state) {
		if !slices.Contains(blacklist, ancestor.Name) {
			continue
		}
		msg := r.Message("Tag `{tag}` is not allowed within `{ancestor}`",
			"tag", open.Name, "ancestor", ancestor.Name)
		return []lint.Diagnostic{r.Report(msg, tagAreas(open, closeTag)...)}
	}
	return nil
}

// AncestorRequirementRule requires tags to be nested inside one of the given ancestors.
type AncestorRequirementRule struct {
	lint.BaseRule `mapstructure:",squash"`

	// Tags maps a tag name to the ancestors of which it needs at least one.
	Tags map[string][]string `mapstructure:"tags"`
}

// NewAncestorRequirementRule creates an ancestor_requirement rule.
func NewAncestorRequirementRule() *AncestorRequirementRule {
	return &AncestorRequirementRule{}
}

// ApplyTag reports a tag none of whose ancestors is allowed.
func (r *AncestorRequirementRule) ApplyTag(
	open *htmlast.OpenTag, closeTag *htmlast.CloseTag, state *parser.ParseState,
) []lint.Diagnostic {
	if open == nil {
		return nil
	}
	required, ok := r.Tags[open.Name]
	if !ok {
		return nil
	}

	found := slices.ContainsFunc(ancestors(open, state), func(a *htmlast.OpenTag) bool {
		return slices.Contains(required, a.Name)
	})
	if found {
		return nil
	}

	msg := r.Message("`{tag}` must be a descendant of one of: `{required_ancestors}`",
		"tag", open.Name, "required_ancestors", strings.Join(required, ", "))
	return []lint.Diagnostic{r.Report(msg, tagAreas(open, closeTag)...)}
}

// ChildBlacklistRule reports direct children a parent must not have.
type ChildBlacklistRule struct {
	lint.BaseRule `mapstructure:",squash"`

	// Tags maps a parent tag name to its forbidden children.
	Tags map[string][]string `mapstructure:"tags"`
}

// NewChildBlacklistRule creates a child_blacklist rule.
func NewChildBlacklistRule() *ChildBlacklistRule {
	return &ChildBlacklistRule{}
}

// ApplyTag reports a tag whose parent forbids it.
func (r *ChildBlacklistRule) ApplyTag(
	open *htmlast.OpenTag, closeTag *htmlast.CloseTag, state *parser.ParseState,
) []lint.Diagnostic {
	if open == nil {
		return nil
	}
	p, ok := parent(open, state)
	if !ok {
		return nil
	}
	blacklist, ok := r.Tags[p.Name]
	if !ok || !slices.Contains(blacklist, open.Name) {
		return nil
	}

	msg := r.Message("Invalid child element: {child} is forbidden in {parent}, blacklisted elements are: {blacklist}",
		"child", open.Name, "parent", p.Name, "blacklist", strings.Join(blacklist, ", "))
	return []lint.Diagnostic{r.Report(msg, tagAreas(open, closeTag)...)}
}

// ChildWhitelistRule allows a parent only the listed direct children.
type ChildWhitelistRule struct {
	lint.BaseRule `mapstructure:",squash"`

	// Tags maps a parent tag name to its allowed children.
	Tags map[string][]string `mapstructure:"tags"`
}

// NewChildWhitelistRule creates a child_whitelist rule.
func NewChildWhitelistRule() *ChildWhitelistRule {
	return &ChildWhitelistRule{}
}

// ApplyTag reports a tag its parent does not allow.
func (r *ChildWhitelistRule) ApplyTag(
	open *htmlast.OpenTag, closeTag *htmlast.CloseTag, state *parser.ParseState,
) []lint.Diagnostic {
	if open == nil {
		return nil
	}
	p, ok := parent(open, state)
	if !ok {
		return nil
	}
	whitelist, ok := r.Tags[p.Name]
	if !ok || slices.Contains(whitelist, open.Name) {
		return nil
	}

	msg := r.Message("{child} is not allowed in {parent}, must be one of: {whitelist}",
		"child", open.Name, "parent", p.Name, "whitelist", strings.Join(whitelist, ", "))
	return []lint.Diagnostic{r.Report(msg, tagAreas(open, closeTag)...)}
}

// ChildRequirementRule requires tags to have certain direct children.
type ChildRequirementRule struct {
	lint.BaseRule `mapstructure:",squash"`

	// Tags maps a parent tag name to the children it must have.
	Tags map[string][]string `mapstructure:"tags"`

	// missing maps an open tag index to the children not seen yet.
	missing map[int][]string
}

// NewChildRequirementRule creates a child_requirement rule.
func NewChildRequirementRule() *ChildRequirementRule {
	return &ChildRequirementRule{missing: make(map[int][]string)}
}

// ApplyTag reports the children still missing when the tag ends.
func (r *ChildRequirementRule) ApplyTag(
	open *htmlast.OpenTag, closeTag *htmlast.CloseTag, _ *parser.ParseState,
) []lint.Diagnostic {
	if open == nil {
		return nil
	}
	if _, ok := r.Tags[open.Name]; !ok {
		return nil
	}

	missing := slices.Clone(r.missing[open.Index])
	if open.SelfClosed {
		missing = slices.Clone(r.Tags[open.Name])
	}
	if len(missing) == 0 {
		return nil
	}
	slices.Sort(missing)

	msg := r.Message("Must contain `{missing_children}`", "missing_children", strings.Join(missing, ", "))
	return []lint.Diagnostic{r.Report(msg, tagAreas(open, closeTag)...)}
}

// TrackOpenTag ticks off the tag in its parent's list and starts a list of its own.
func (r *ChildRequirementRule) TrackOpenTag(tag *htmlast.OpenTag, state *parser.ParseState) {
	if p, ok := state.Parent(); ok {
		if pending, ok := r.missing[p.Index]; ok {
			r.missing[p.Index] = slices.DeleteFunc(pending, func(name string) bool {
				return name == tag.Name
			})
		}
	}
	if required, ok := r.Tags[tag.Name]; ok && !tag.SelfClosed {
		r.missing[tag.Index] = slices.Clone(required)
	}
}

// ResetState forgets every pending list.
func (r *ChildRequirementRule) ResetState() {
	clear(r.missing)
}

// DescendantRequirementRule requires tags to contain certain tags at any depth.
type DescendantRequirementRule struct {
	lint.BaseRule `mapstructure:",squash"`

	// Tags maps a tag name to the descendants it must have.
	Tags map[string][]string `mapstructure:"tags"`

	// missing maps a descendant name to the open tag indexes still waiting for it.
	missing map[string][]int
}

// NewDescendantRequirementRule creates a descendant_requirement rule.
func NewDescendantRequirementRule() *DescendantRequirementRule {
	return &DescendantRequirementRule{missing: make(map[string][]int)}
}

// ApplyTag reports the descendants still missing when the tag ends.
func (r *DescendantRequirementRule) ApplyTag(
	open *htmlast.OpenTag, closeTag *htmlast.CloseTag, _ *parser.ParseState,
) []lint.Diagnostic {
	if open == nil {
		return nil
	}
	if _, ok := r.Tags[open.Name]; !ok {
		return nil
	}

	var missing []string
	if open.SelfClosed {
		missing = slices.Clone(r.Tags[open.Name])
	} else {
		for name, waiting := range r.missing {
			if slices.Contains(waiting, open.Index) {
				missing = append(missing, name)
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}
	slices.Sort(missing)

	msg := r.Message("Must be a parent of `{missing_descendants}`",
		"missing_descendants", strings.Join(missing, ", "))
	return []lint.Diagnostic{r.Report(msg, tagAreas(open, closeTag)...)}
}

// TrackOpenTag satisfies every open tag waiting for this one and registers
// the tag's own requirements.
func (r *DescendantRequirementRule) TrackOpenTag(tag *htmlast.OpenTag, _ *parser.ParseState) {
	delete(r.missing, tag.Name)
	if tag.SelfClosed {
		return
	}
	for _, name := range r.Tags[tag.Name] {
		r.missing[name] = append(r.missing[name], tag.Index)
	}
}

// ResetState forgets every pending requirement.
func (r *DescendantRequirementRule) ResetState() {
	clear(r.missing)
}

// DuplicateElementsBlacklistRule reports the listed tags when they occur
// more than once in a document.
type DuplicateElementsBlacklistRule struct {
	lint.BaseRule `mapstructure:",squash"`

	Tags []string `mapstructure:"tags"`

	seen map[string][]int
}

// NewDuplicateElementsBlacklistRule creates a duplicate_elements_blacklist rule.
func NewDuplicateElementsBlacklistRule() *DuplicateElementsBlacklistRule {
	return &DuplicateElementsBlacklistRule{seen: make(map[string][]int)}
}

// ApplyTag reports a listed tag once more than one occurrence has been seen.
func (r *DuplicateElementsBlacklistRule) ApplyTag(
	open *htmlast.OpenTag, closeTag *htmlast.CloseTag, _ *parser.ParseState,
) []lint.Diagnostic {
	if open == nil || !slices.Contains(r.Tags, open.Name) {
		return nil
	}

	count := len(r.seen[open.Name])
	if !slices.Contains(r.seen[open.Name], open.Index) {
		count++
	}
	if count <= 1 {
		return nil
	}

	msg := r.Message("`{tag}` is not allowed to occur more than once", "tag", open.Name)
	return []lint.Diagnostic{r.Report(msg, tagAreas(open, closeTag)...)}
}

// TrackOpenTag counts occurrences of the listed tags.
func (r *DuplicateElementsBlacklistRule) TrackOpenTag(tag *htmlast.OpenTag, _ *parser.ParseState) {
	if slices.Contains(r.Tags, tag.Name) {
		r.seen[tag.Name] = append(r.seen[tag.Name], tag.Index)
	}
}

// ResetState forgets every occurrence.
func (r *DuplicateElementsBlacklistRule) ResetState() {
	clear(r.seen)
}

// MaximumNestingDepthRule limits how many ancestors an element may have.
type MaximumNestingDepthRule struct {
	lint.BaseRule `mapstructure:",squash"`

	MaximumDepth int `mapstructure:"maximum_depth"`
}

// NewMaximumNestingDepthRule creates a maximum_nesting_depth rule.
func NewMaximumNestingDepthRule() *MaximumNestingDepthRule {
	return &MaximumNestingDepthRule{}
}

// Prepare requires a positive depth.
func (r *MaximumNestingDepthRule) Prepare() error {
	if r.MaximumDepth <= 0 {
		return errors.New("maximum_depth must be positive")
	}
	return nil
}

// ApplyOpenTag reports a tag with more ancestors than allowed.
func (r *MaximumNestingDepthRule) ApplyOpenTag(tag *htmlast.OpenTag, state *parser.ParseState) []lint.Diagnostic {
	if state.Depth() <= r.MaximumDepth {
		return nil
	}
	msg := r.Message("Element is nested too deeply (maximum depth is {maximum_depth})",
		"maximum_depth", strconv.Itoa(r.MaximumDepth))
	return []lint.Diagnostic{r.Report(msg, tag.Area)}
}
