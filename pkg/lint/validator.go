package lint

import (
	"github.com/yaklabco/htmlsnob/pkg/htmlast"
	"github.com/yaklabco/htmlsnob/pkg/parser"
)

// Validator drives an ordered rule list over the node stream of one run.
type Validator struct {
	rules []Rule

	// ignored holds open tags that arrived inside an ignore region.
	ignored map[int]bool
}

// NewValidator creates a validator for the given rules.
// Rules run in slice order on every node.
func NewValidator(rules []Rule) *Validator {
	return &Validator{rules: rules, ignored: make(map[int]bool)}
}

// Validate applies every rule to node and then lets every rule track it.
// When ignore is true, only tracking happens: no rule reports on or
// rewrites the node.
//
// Node must be the value NextNode returned, before it is handed to AddNode.
func (v *Validator) Validate(node htmlast.Node, state *parser.ParseState, ignore bool) []Diagnostic {
	if ignore {
		if tag, ok := node.(*htmlast.OpenTag); ok {
			v.ignored[tag.Index] = true
		}
		v.track(node, state)
		return nil
	}

	diags := v.apply(node, state)
	v.track(node, state)
	return diags
}

// Finalize reports on open tags that were never closed and resets every rule.
func (v *Validator) Finalize(state *parser.ParseState) []Diagnostic {
	var diags []Diagnostic

	for _, idx := range state.OpenTagIndexes {
		if v.ignored[idx] {
			continue
		}
		open := state.OpenTag(idx)
		for _, rule := range v.rules {
			diags = append(diags, rule.ApplyTag(open, nil, state)...)
		}
	}

	for _, rule := range v.rules {
		rule.ResetState()
	}
	clear(v.ignored)

	return diags
}

func (v *Validator) apply(node htmlast.Node, state *parser.ParseState) []Diagnostic {
	var diags []Diagnostic

	for _, rule := range v.rules {
		switch n := node.(type) {
		case *htmlast.OpenTag:
			diags = append(diags, rule.ApplyOpenTag(n, state)...)
			for _, attr := range n.Attributes {
				diags = append(diags, rule.ApplyAttribute(attr)...)
			}
			if n.SelfClosed {
				diags = append(diags, rule.ApplyTag(n, nil, state)...)
			}
		case *htmlast.CloseTag:
			var open *htmlast.OpenTag
			if n.HasOpenTag() {
				open = state.OpenTag(n.OpenTagIndex)
			}
			diags = append(diags, rule.ApplyCloseTag(n, state)...)
			diags = append(diags, rule.ApplyTag(open, n, state)...)
		case *htmlast.Text:
			diags = append(diags, rule.ApplyText(n, state)...)
		case *htmlast.TemplateExpression:
			diags = append(diags, rule.ApplyTemplateExpression(n, state)...)
		case *htmlast.Doctype:
			diags = append(diags, rule.ApplyDoctype(n, state)...)
		case *htmlast.Comment:
			diags = append(diags, rule.ApplyComment(n, state)...)
		}
	}

	return diags
}

func (v *Validator) track(node htmlast.Node, state *parser.ParseState) {
	for _, rule := range v.rules {
		switch n := node.(type) {
		case *htmlast.OpenTag:
			rule.TrackOpenTag(n, state)
		case *htmlast.CloseTag:
			rule.TrackCloseTag(n, state)
		case *htmlast.Text:
			rule.TrackText(n, state)
		}
	}
}
