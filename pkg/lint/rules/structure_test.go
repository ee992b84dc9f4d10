package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/htmlsnob/pkg/lint/linttest"
)

func TestAncestorBlacklist(t *testing.T) {
	t.Parallel()

	const config = `
rules:
  - kind: ancestor_blacklist
    tags:
      form: [table]
`
	runCases(t, []ruleCase{
		{
			name:   "form inside table",
			config: config,
			fixture: annotated(
				"<table><tr><form> </form></tr></table>",
				"           ------ -------",
				"ancestor_blacklist: Tag `form` is not allowed within `table`",
			),
		},
		{
			name:   "unclosed form inside table",
			config: config,
			fixture: annotated(
				"<table><form>",
				"       ------",
				"ancestor_blacklist: Tag `form` is not allowed within `table`",
			),
		},
		{
			name:    "table inside form",
			config:  config,
			fixture: "<form><table></table></form>",
		},
	})
}

func TestAncestorRequirement(t *testing.T) {
	t.Parallel()

	const config = `
rules:
  - kind: ancestor_requirement
    tags:
      li: [ul, ol]
`
	runCases(t, []ruleCase{
		{
			name:   "list item outside list",
			config: config,
			fixture: annotated(
				"<div><li>x</li></div>",
				"     ---- -----",
				"ancestor_requirement: `li` must be a descendant of one of: `ul, ol`",
			),
		},
		{
			name:    "list item in nested list",
			config:  config,
			fixture: "<ol><div><li>x</li></div></ol>",
		},
	})
}

func TestChildBlacklist(t *testing.T) {
	t.Parallel()

	const config = `
expansions:
  INLINE: [span, a]
  BLOCK: [div, p]
rules:
  - kind: child_blacklist
    tags:
      INLINE: [BLOCK]
`
	runCases(t, []ruleCase{
		{
			name:   "block inside inline",
			config: config,
			fixture: annotated(
				"<span><div>x</div></span>",
				"      ----- ------",
				"child_blacklist: Invalid child element: div is forbidden in span, blacklisted elements are: div, p",
			),
		},
		{
			name:   "self closed child",
			config: config,
			fixture: annotated(
				"<a><p/></a>",
				"   ----",
				"child_blacklist: Invalid child element: p is forbidden in a, blacklisted elements are: div, p",
			),
		},
		{
			name:    "grandchild is allowed",
			config:  config,
			fixture: "<span><em><div>x</div></em></span>",
		},
	})
}

func TestChildWhitelist(t *testing.T) {
	t.Parallel()

	const config = `
rules:
  - kind: child_whitelist
    tags:
      ul: [li]
`
	runCases(t, []ruleCase{
		{
			name:   "div in list",
			config: config,
			fixture: annotated(
				"<ul><div>x</div></ul>",
				"    ----- ------",
				"child_whitelist: div is not allowed in ul, must be one of: li",
			),
		},
		{
			name:    "list items",
			config:  config,
			fixture: "<ul><li>a</li><li>b</li></ul>",
		},
	})
}

func TestChildRequirement(t *testing.T) {
	t.Parallel()

	const config = `
rules:
  - kind: child_requirement
    tags:
      html: [head, body]
`
	runCases(t, []ruleCase{
		{
			name:   "missing body",
			config: config,
			fixture: annotated(
				"<html><head></head></html>",
				"------             -------",
				"child_requirement: Must contain `body`",
			),
		},
		{
			name:   "self closed parent",
			config: config,
			fixture: annotated(
				"<html/>",
				"-------",
				"child_requirement: Must contain `body, head`",
			),
		},
		{
			name:   "grandchildren do not count",
			config: config,
			fixture: annotated(
				"<html><div><head></head><body></body></div></html>",
				"------                                     -------",
				"child_requirement: Must contain `body, head`",
			),
		},
		{
			name:    "all children present",
			config:  config,
			fixture: "<html><head></head><body></body></html>",
		},
	})
}

func TestDescendantRequirement(t *testing.T) {
	t.Parallel()

	const config = `
rules:
  - kind: descendant_requirement
    tags:
      form: [button]
`
	runCases(t, []ruleCase{
		{
			name:   "form without button",
			config: config,
			fixture: annotated(
				"<form><div></div></form>",
				"------           -------",
				"descendant_requirement: Must be a parent of `button`",
			),
		},
		{
			name:    "nested button",
			config:  config,
			fixture: "<form><div><button></button></div></form>",
		},
	})
}

func TestDuplicateElementsBlacklist(t *testing.T) {
	t.Parallel()

	const config = `
rules:
  - kind: duplicate_elements_blacklist
    tags: [main, h1]
`
	runCases(t, []ruleCase{
		{
			name:   "second main",
			config: config,
			fixture: annotated(
				"<main>a</main><main>b</main>",
				"              ------ -------",
				"duplicate_elements_blacklist: `main` is not allowed to occur more than once",
			),
		},
		{
			name:    "one of each",
			config:  config,
			fixture: "<main><h1>a</h1></main>",
		},
	})
}

func TestMaximumNestingDepth(t *testing.T) {
	t.Parallel()

	const config = `
rules:
  - kind: maximum_nesting_depth
    maximum_depth: 2
`
	runCases(t, []ruleCase{
		{
			name:   "too deep",
			config: config,
			fixture: annotated(
				"<div><div><div><p></p></div></div></div>",
				"               ---",
				"maximum_nesting_depth: Element is nested too deeply (maximum depth is 2)",
			),
		},
		{
			name:    "at the limit",
			config:  config,
			fixture: "<div><div><p></p></div></div>",
		},
	})
}

func TestMaximumNestingDepthMultiline(t *testing.T) {
	t.Parallel()

	const config = `
rules:
  - kind: maximum_nesting_depth
    maximum_depth: 1
`
	input := "<ul>\n  <li>\n    <a>x</a>\n  </li>\n</ul>"
	_, diags, _ := linttest.Run(t, newTestRegistry(), config, input)
	require.Len(t, diags, 1)
	require.Len(t, diags[0].Areas, 1)

	area := diags[0].Areas[0]
	assert.Equal(t, 2, area.Start.Line)
	assert.Equal(t, 4, area.Start.Column)
	assert.Equal(t, 7, area.End.Column)
}
