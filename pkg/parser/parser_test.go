package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/htmlsnob/pkg/dialect"
	"github.com/yaklabco/htmlsnob/pkg/htmlast"
)

func parseAll(input string, d dialect.Dialect) *ParseState {
	p := New(input, d)
	for {
		node, ok := p.NextNode()
		if !ok {
			return p.State
		}
		p.AddNode(node)
	}
}

func area(l1, c1, l2, c2 int) htmlast.Area {
	return htmlast.Area{
		Start: htmlast.Position{Line: l1, Column: c1},
		End:   htmlast.Position{Line: l2, Column: c2},
	}
}

func TestParse_SimpleElement(t *testing.T) {
	t.Parallel()

	state := parseAll(`<div class="a b">hi</div>`, dialect.None)

	want := []htmlast.Node{
		&htmlast.OpenTag{
			Name: "div",
			Attributes: []*htmlast.Attribute{{
				Name: &htmlast.StringArea{Content: "class", Area: area(0, 5, 0, 10)},
				Value: &htmlast.AttributeValue{
					StartQuote: '"',
					EndQuote:   '"',
					Parts: []htmlast.Fragment{
						&htmlast.StringArea{Content: "a", Area: area(0, 12, 0, 13)},
						&htmlast.StringArea{Content: "b", Area: area(0, 14, 0, 15)},
					},
					Area: area(0, 11, 0, 16),
				},
				Area: area(0, 5, 0, 16),
			}},
			Area:          area(0, 0, 0, 17),
			CloseTagIndex: 2,
			Index:         0,
		},
		&htmlast.Text{Content: "hi", Area: area(0, 17, 0, 19)},
		&htmlast.CloseTag{Name: "div", Area: area(0, 19, 0, 25), OpenTagIndex: 0},
	}

	if diff := cmp.Diff(want, state.AST); diff != "" {
		t.Errorf("AST mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, state.OpenTagIndexes)
}

func TestParse_StackRecovery(t *testing.T) {
	t.Parallel()

	state := parseAll("<a><b></a>", dialect.None)
	require.Len(t, state.AST, 3)

	a := state.OpenTag(0)
	b := state.OpenTag(1)
	closeTag, ok := state.AST[2].(*htmlast.CloseTag)
	require.True(t, ok)

	assert.Equal(t, 2, a.CloseTagIndex)
	assert.Equal(t, 0, closeTag.OpenTagIndex)
	assert.False(t, b.HasCloseTag())
	assert.Empty(t, state.OpenTagIndexes)
}

func TestParse_OrphanCloseTag(t *testing.T) {
	t.Parallel()

	state := parseAll("<div></a>", dialect.None)
	require.Len(t, state.AST, 2)

	closeTag, ok := state.AST[1].(*htmlast.CloseTag)
	require.True(t, ok)
	assert.False(t, closeTag.HasOpenTag())
	assert.Equal(t, []int{0}, state.OpenTagIndexes)
	assert.False(t, state.OpenTag(0).HasCloseTag())
}

func TestParse_CaseInsensitiveMatch(t *testing.T) {
	t.Parallel()

	state := parseAll("<DIV></div>", dialect.None)
	assert.Equal(t, 1, state.OpenTag(0).CloseTagIndex)
}

func TestParse_PairingIsSymmetric(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"<html><body><p>a<p>b</body></html>",
		"<ul><li>1<li>2</ul></ul><br/>",
		"</x><a><b><c></b></a></c>",
		"<div><span></div></span><div>",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			state := parseAll(input, dialect.None)
			for i, node := range state.AST {
				switch n := node.(type) {
				case *htmlast.OpenTag:
					assert.Equal(t, i, n.Index)
					if n.HasCloseTag() {
						closeTag, ok := state.AST[n.CloseTagIndex].(*htmlast.CloseTag)
						require.True(t, ok)
						assert.Equal(t, i, closeTag.OpenTagIndex)
					}
				case *htmlast.CloseTag:
					if n.HasOpenTag() {
						assert.Equal(t, i, state.OpenTag(n.OpenTagIndex).CloseTagIndex)
					}
				}
			}
		})
	}
}

func TestParse_SelfClosedTagIsNotPushed(t *testing.T) {
	t.Parallel()

	state := parseAll("<br/><img src=x />", dialect.None)
	require.Len(t, state.AST, 2)
	assert.True(t, state.OpenTag(0).SelfClosed)
	assert.True(t, state.OpenTag(1).SelfClosed)
	assert.Empty(t, state.OpenTagIndexes)
}

func TestParse_MissingEndBrackets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		check func(t *testing.T, node htmlast.Node)
	}{
		{"open tag before next tag", "<div <span>", func(t *testing.T, node htmlast.Node) {
			t.Helper()
			tag, ok := node.(*htmlast.OpenTag)
			require.True(t, ok)
			assert.Equal(t, "div", tag.Name)
			assert.True(t, tag.MissingEndBracket)
		}},
		{"open tag at eof", `<div class="a"`, func(t *testing.T, node htmlast.Node) {
			t.Helper()
			tag, ok := node.(*htmlast.OpenTag)
			require.True(t, ok)
			assert.True(t, tag.MissingEndBracket)
			require.Len(t, tag.Attributes, 1)
		}},
		{"unterminated quote", `<div class="a`, func(t *testing.T, node htmlast.Node) {
			t.Helper()
			tag, ok := node.(*htmlast.OpenTag)
			require.True(t, ok)
			assert.True(t, tag.MissingEndBracket)
		}},
		{"close tag", "</div", func(t *testing.T, node htmlast.Node) {
			t.Helper()
			tag, ok := node.(*htmlast.CloseTag)
			require.True(t, ok)
			assert.Equal(t, "div", tag.Name)
			assert.True(t, tag.MissingEndBracket)
		}},
		{"comment", "<!-- open", func(t *testing.T, node htmlast.Node) {
			t.Helper()
			comment, ok := node.(*htmlast.Comment)
			require.True(t, ok)
			assert.Equal(t, " open", comment.Content)
			assert.True(t, comment.MissingEndBracket)
		}},
		{"doctype", "<!DOCTYPE html", func(t *testing.T, node htmlast.Node) {
			t.Helper()
			doctype, ok := node.(*htmlast.Doctype)
			require.True(t, ok)
			assert.Equal(t, "DOCTYPE html", doctype.Content)
			assert.True(t, doctype.MissingEndBracket)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			state := parseAll(tt.input, dialect.None)
			require.NotEmpty(t, state.AST)
			tt.check(t, state.AST[0])
		})
	}
}

func TestParse_NoDialectKeepsBracesAsText(t *testing.T) {
	t.Parallel()

	state := parseAll("<p>{{x}}</p>", dialect.None)
	require.Len(t, state.AST, 3)

	text, ok := state.AST[1].(*htmlast.Text)
	require.True(t, ok)
	assert.Equal(t, "{{x}}", text.Content)
}

func TestParse_TemplateExpressions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		d       dialect.Dialect
		input   string
		content string
		kind    htmlast.Construct
		missing bool
	}{
		{"quoted close", dialect.Handlebars, `{{ "}}" }} tail`, `{{ "}}" }}`, htmlast.ConstructExpression, false},
		{"jinja if", dialect.Jinja2, "{% if x %}a", "{% if x %}", htmlast.ConstructIf, false},
		{"comment ignores quotes", dialect.Jinja2, `{# it's #}`, `{# it's #}`, htmlast.ConstructComment, false},
		{"unterminated", dialect.Go, "{{ .Name", "{{ .Name", htmlast.ConstructExpression, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			state := parseAll(tt.input, tt.d)
			require.NotEmpty(t, state.AST)

			expr, ok := state.AST[0].(*htmlast.TemplateExpression)
			require.True(t, ok)
			assert.Equal(t, tt.content, expr.Content)
			assert.Equal(t, tt.kind, expr.Kind)
			assert.Equal(t, tt.missing, expr.MissingEndBracket)
		})
	}
}

func TestParse_EscapedTemplateIsText(t *testing.T) {
	t.Parallel()

	state := parseAll(`a \{{ b }}`, dialect.Handlebars)
	require.Len(t, state.AST, 1)

	text, ok := state.AST[0].(*htmlast.Text)
	require.True(t, ok)
	assert.Equal(t, `a \{{ b }}`, text.Content)
}

func TestParse_TextAndTemplateSplit(t *testing.T) {
	t.Parallel()

	state := parseAll("Hello {{ name }}!", dialect.Handlebars)
	require.Len(t, state.AST, 3)

	assert.Equal(t, &htmlast.Text{Content: "Hello", Area: area(0, 0, 0, 5)}, state.AST[0])
	_, ok := state.AST[1].(*htmlast.TemplateExpression)
	assert.True(t, ok)
	assert.Equal(t, &htmlast.Text{Content: "!", Area: area(0, 16, 0, 17)}, state.AST[2])
}

func TestParse_LessThanInText(t *testing.T) {
	t.Parallel()

	state := parseAll("<p>a < b</p>", dialect.None)
	require.Len(t, state.AST, 3)
	assert.Equal(t, "a < b", state.AST[1].(*htmlast.Text).Content)
}

func TestParse_AttributeParts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		d        dialect.Dialect
		input    string
		parts    []string
		quoted   bool
		hasValue bool
	}{
		{"boolean", dialect.None, "<input disabled>", nil, false, false},
		{"empty", dialect.None, `<input value="">`, nil, true, true},
		{"unquoted", dialect.None, "<input value=x>", []string{"x"}, false, true},
		{"single quotes", dialect.None, "<a title='one two'>", []string{"one", "two"}, true, true},
		{"template part", dialect.Handlebars, `<a class="x {{y}} z">`, []string{"x", "{{y}}", "z"}, true, true},
		{"touching parts", dialect.Go, `<a class="btn-{{.Size}}">`, []string{"btn-", "{{.Size}}"}, true, true},
		{"unquoted template", dialect.Handlebars, "<a href={{url}}>", []string{"{{url}}"}, false, true},
		{"quote inside parens", dialect.None, `<a x-on="f(")")">`, []string{`f(")")`}, true, true},
		{"sad smiley", dialect.None, `<img alt="Smiley :(" src=x>`, []string{"Smiley", ":("}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			state := parseAll(tt.input, tt.d)
			tag := state.OpenTag(0)
			require.NotEmpty(t, tag.Attributes)
			assert.False(t, tag.MissingEndBracket)

			value := tag.Attributes[0].Value
			if !tt.hasValue {
				assert.Nil(t, value)
				return
			}
			require.NotNil(t, value)
			assert.Equal(t, tt.quoted, value.IsQuoted())

			var got []string
			for _, part := range value.Parts {
				switch p := part.(type) {
				case *htmlast.StringArea:
					got = append(got, p.Content)
				case *htmlast.TemplateExpression:
					got = append(got, p.Content)
				}
			}
			assert.Equal(t, tt.parts, got)
		})
	}
}

func TestParse_TemplateAttributeName(t *testing.T) {
	t.Parallel()

	state := parseAll(`<input {{#if on}}checked{{/if}} type="checkbox">`, dialect.Handlebars)
	tag := state.OpenTag(0)
	require.Len(t, tag.Attributes, 4)

	_, isTemplate := tag.Attributes[0].Name.(*htmlast.TemplateExpression)
	assert.True(t, isTemplate)
	name, ok := tag.Attributes[1].LiteralName()
	assert.True(t, ok)
	assert.Equal(t, "checked", name)
	name, _ = tag.Attributes[3].LiteralName()
	assert.Equal(t, "type", name)
}

func TestParse_TemplateRightAfterTagName(t *testing.T) {
	t.Parallel()

	state := parseAll("<p<% end %>", dialect.Erb)
	require.Len(t, state.AST, 1)
	tag := state.OpenTag(0)
	assert.Equal(t, "p", tag.Name)
	assert.True(t, tag.MissingEndBracket)
	require.Len(t, tag.Attributes, 1)
	_, isTemplate := tag.Attributes[0].Name.(*htmlast.TemplateExpression)
	assert.True(t, isTemplate)

	state = parseAll("<div<% if x %> hidden<% end %>></div>", dialect.Erb)
	tag = state.OpenTag(0)
	assert.Equal(t, "div", tag.Name)
	assert.False(t, tag.MissingEndBracket)
	assert.Len(t, tag.Attributes, 3)

	state = parseAll("<p<div>", dialect.Erb)
	assert.True(t, state.OpenTag(0).MissingEndBracket, "a plain tag still ends the name")
}

func TestParse_RawText(t *testing.T) {
	t.Parallel()

	state := parseAll("<script>\n  if (a < b) { x = \"</div>\" }\n</script><p></p>", dialect.None)
	require.Len(t, state.AST, 5)

	text, ok := state.AST[1].(*htmlast.Text)
	require.True(t, ok)
	assert.Equal(t, `if (a < b) { x = "</div>" }`, text.Content)
	assert.Equal(t, 2, state.OpenTag(0).CloseTagIndex)
	assert.Empty(t, state.RawTextEndTag)
}

func TestParse_EmptyRawTextHasNoTextNode(t *testing.T) {
	t.Parallel()

	state := parseAll(`<script src="a.js"></script>`, dialect.None)
	require.Len(t, state.AST, 2)
	assert.Equal(t, 1, state.OpenTag(0).CloseTagIndex)
}

func TestParse_Positions(t *testing.T) {
	t.Parallel()

	state := parseAll("<ul>\n  <li>é</li>\n</ul>", dialect.None)
	require.Len(t, state.AST, 5)

	assert.Equal(t, area(1, 2, 1, 6), state.AST[1].Location())
	assert.Equal(t, area(1, 6, 1, 7), state.AST[2].Location())
	assert.Equal(t, area(1, 7, 1, 12), state.AST[3].Location())
	assert.Equal(t, area(2, 0, 2, 5), state.AST[4].Location())
}

func TestParse_IgnoreDirectives(t *testing.T) {
	t.Parallel()

	p := New("<!-- htmlsnob: ignore below --><b><!-- ignore above --><i>", dialect.None)

	var ignoring []bool
	for {
		node, ok := p.NextNode()
		if !ok {
			break
		}
		ignoring = append(ignoring, p.Ignoring())
		p.AddNode(node)
	}

	assert.Equal(t, []bool{true, true, false, false}, ignoring)
}

func TestParseState_OpenTagPanicsOnBadIndex(t *testing.T) {
	t.Parallel()

	state := parseAll("text", dialect.None)
	assert.PanicsWithValue(t, "Expected OpenTag at index 0", func() { state.OpenTag(0) })
	assert.Panics(t, func() { state.OpenTag(7) })
}

func TestParseState_OpenTagNames(t *testing.T) {
	t.Parallel()

	state := parseAll("<html><body><main>", dialect.None)
	assert.Equal(t, []string{"html", "body", "main"}, state.OpenTagNames())
	assert.Equal(t, 3, state.Depth())

	parent, ok := state.Parent()
	require.True(t, ok)
	assert.Equal(t, "main", parent.Name)
}

func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"<div>",
		"</div>",
		`<a href="x">y</a>`,
		"<!-- c",
		"<!DOCTYPE",
		"{{#if a}}<b>{{/if}}",
		`<p class="{{ "}}" }}`,
		"<script>a < b",
		`<x y="(">`,
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		for _, d := range dialect.All() {
			state := parseAll(input, d)
			for i, node := range state.AST {
				if tag, ok := node.(*htmlast.OpenTag); ok && tag.HasCloseTag() {
					closeTag, isClose := state.AST[tag.CloseTagIndex].(*htmlast.CloseTag)
					if !isClose || closeTag.OpenTagIndex != i {
						t.Fatalf("unpaired open tag at %d", i)
					}
				}
			}
		}
	})
}
