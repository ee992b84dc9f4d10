package lint

import (
	"github.com/yaklabco/htmlsnob/pkg/dialect"
	"github.com/yaklabco/htmlsnob/pkg/htmlast"
	"github.com/yaklabco/htmlsnob/pkg/parser"
)

// Lint parses input, runs rules over every node as it is produced and
// returns the final node slice with the diagnostics in report order.
//
// Rules may fix the nodes they inspect, so the returned tree reflects every
// autofix. Rules are reset before Lint returns and can be reused.
func Lint(input string, d dialect.Dialect, rules []Rule) ([]htmlast.Node, []Diagnostic) {
	p := parser.New(input, d)
	v := NewValidator(rules)

	var diags []Diagnostic
	for {
		node, ok := p.NextNode()
		if !ok {
			break
		}
		diags = append(diags, v.Validate(node, p.State, p.Ignoring())...)
		p.AddNode(node)
	}
	diags = append(diags, v.Finalize(p.State)...)

	return p.State.AST, diags
}
