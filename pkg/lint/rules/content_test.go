package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/htmlsnob/pkg/htmlast"
	"github.com/yaklabco/htmlsnob/pkg/lint/linttest"
)

func TestTextDisallowed(t *testing.T) {
	t.Parallel()

	const config = `
rules:
  - kind: text_disallowed
    tags: [audio, video]
`
	runCases(t, []ruleCase{
		{
			name:   "text in audio",
			config: config,
			fixture: annotated(
				"<div><audio>Hello</audio></div>",
				"            -----",
				"text_disallowed: `audio` tags must not contain text content",
			),
		},
		{
			name:    "text in nested element",
			config:  config,
			fixture: "<video><p>Hello</p></video>",
		},
	})
}

func TestTextDisallowedMultiline(t *testing.T) {
	t.Parallel()

	const config = `
rules:
  - kind: text_disallowed
    tags: [audio]
`
	input := "<audio>\n  first\n\n  second\n</audio>"
	_, diags, _ := linttest.Run(t, newTestRegistry(), config, input)
	require.Len(t, diags, 1)

	assert.Equal(t, []htmlast.Area{
		{Start: htmlast.Position{Line: 1, Column: 2}, End: htmlast.Position{Line: 1, Column: 7}},
		{Start: htmlast.Position{Line: 3, Column: 2}, End: htmlast.Position{Line: 3, Column: 8}},
	}, diags[0].Areas)
}

func TestTextRegexp(t *testing.T) {
	t.Parallel()

	const config = `
rules:
  - kind: text_regexp
    regexp: "^[A-Z]"
`
	runCases(t, []ruleCase{
		{
			name:   "lowercase sentence",
			config: config,
			fixture: annotated(
				"<p>hello</p>",
				"   -----",
				"text_regexp: Text `hello` must match the regexp `^[A-Z]`",
			),
		},
		{
			name:    "capitalized sentence",
			config:  config,
			fixture: "<p>Hello</p>",
		},
	})
}

func TestTextRequirement(t *testing.T) {
	t.Parallel()

	const config = `
rules:
  - kind: text_requirement
    tags: [p, h1]
`
	runCases(t, []ruleCase{
		{
			name:   "whitespace only paragraph",
			config: config,
			fixture: annotated(
				"<div><p> </p></div>",
				"     --- ----",
				"text_requirement: `p` tags must contain text",
			),
		},
		{
			name:    "paragraph with text",
			config:  config,
			fixture: "<div><p>Hello</p></div>",
		},
		{
			name:    "text in child element",
			config:  config,
			fixture: "<h1><span>Title</span></h1>",
		},
		{
			name:    "unlisted empty tag",
			config:  config,
			fixture: "<div></div>",
		},
	})
}
