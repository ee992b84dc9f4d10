// Package linttest checks rules against annotated HTML fixtures.
//
// A fixture is the HTML input with expected diagnostic columns marked by a
// line of dashes under the source line they refer to. The first non-empty line
// after a dash line is the expected "name: message" of the first diagnostic:
//
//	<div onclick="x"></div>
//	     -------
//	attribute_name_blacklist: Attribute `onclick` is not allowed
//
// Dash and message lines are removed before linting and the remaining input
// is trimmed.
package linttest

import (
	"slices"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/htmlsnob/pkg/config"
	"github.com/yaklabco/htmlsnob/pkg/dialect"
	"github.com/yaklabco/htmlsnob/pkg/format"
	"github.com/yaklabco/htmlsnob/pkg/htmlast"
	"github.com/yaklabco/htmlsnob/pkg/lint"
)

// Span is a column range on one line.
type Span struct {
	Start int
	End   int
}

// Fixture is a parsed fixture.
type Fixture struct {
	Input   string
	Spans   []Span
	Message string
}

// Parse splits a fixture into input, expected spans and expected message.
func Parse(fixture string) Fixture {
	var (
		out         Fixture
		kept        []string
		offset      int
		wantMessage bool
	)

	for _, line := range strings.Split(fixture, "\n") {
		if wantMessage && strings.TrimSpace(line) != "" {
			out.Message = strings.TrimSpace(line)
			wantMessage = false
			continue
		}
		if isMarker(line) {
			out.Spans = markerSpans(line, offset)
			wantMessage = true
			continue
		}
		offset = len(line) - len(strings.TrimLeft(line, " "))
		kept = append(kept, line)
	}

	out.Input = strings.TrimSpace(strings.Join(kept, "\n"))
	return out
}

func isMarker(line string) bool {
	return strings.Contains(line, "-") && strings.Trim(line, " -") == ""
}

func markerSpans(line string, offset int) []Span {
	var spans []Span
	start := -1
	for i, r := range []rune(line + " ") {
		switch {
		case r == '-' && start < 0:
			start = i
		case r != '-' && start >= 0:
			spans = append(spans, Span{Start: start - offset, End: i - offset})
			start = -1
		}
	}
	return spans
}

// Run lints fixture input with the rules configured in configYAML.
func Run(t testing.TB, registry *lint.Registry, configYAML, input string) ([]htmlast.Node, []lint.Diagnostic, *config.Config) {
	t.Helper()

	cfg, err := config.FromYAML([]byte(configYAML))
	require.NoError(t, err, "parse config")

	rules, err := registry.BuildConfig(cfg.Rules)
	require.NoError(t, err, "build rules")

	d, err := dialect.Parse(cfg.TemplateLanguage)
	require.NoError(t, err, "template_language")

	ast, diags := lint.Lint(input, d, rules)
	return ast, diags, cfg
}

// Case asserts that fixture produces the marked diagnostics and that
// formatting leaves it unchanged apart from whitespace.
func Case(t testing.TB, registry *lint.Registry, configYAML, fixture string) {
	t.Helper()
	Autofix(t, registry, configYAML, fixture, fixture)
}

// Autofix is Case for rules that rewrite the input. The formatted output must
// equal expected, ignoring whitespace and letter case.
func Autofix(t testing.TB, registry *lint.Registry, configYAML, fixture, expected string) {
	t.Helper()

	want := Parse(fixture)
	ast, diags, cfg := Run(t, registry, configYAML, want.Input)
	output := format.Format(ast, cfg.Options)

	assert.Equal(t, squash(Parse(expected).Input), squash(output),
		"formatted output\n  input:  %s\n  output: %s", want.Input, output)

	for _, d := range diags {
		assert.NotContainsf(t, d.Message, "{", "message %q has an unfilled placeholder", d.Message)
		assert.NotContainsf(t, d.Message, "}", "message %q has an unfilled placeholder", d.Message)
	}

	var got []Span
	for _, d := range diags {
		for _, area := range d.Areas {
			got = append(got, Span{Start: area.Start.Column, End: area.End.Column})
		}
	}
	slices.SortStableFunc(got, func(a, b Span) int { return a.Start - b.Start })

	require.Equal(t, render(want.Spans), render(got), "diagnostic spans for\n%s", want.Input)
	require.Len(t, got, len(want.Spans), "diagnostic area count for\n%s", want.Input)

	if want.Message != "" {
		require.NotEmpty(t, diags)
		assert.Equal(t, want.Message, diags[0].RuleName+": "+diags[0].Message)
	}
}

// render draws spans as a dash line so mismatches read like the fixture.
func render(spans []Span) string {
	var sb strings.Builder
	col := 0
	for _, s := range spans {
		for ; col < s.Start; col++ {
			sb.WriteByte(' ')
		}
		for ; col < s.End; col++ {
			sb.WriteByte('-')
		}
	}
	return sb.String()
}

func squash(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}
