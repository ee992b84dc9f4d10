package dialect

import (
	"regexp"
	"strings"
	"sync"

	"github.com/yaklabco/htmlsnob/pkg/htmlast"
)

// Entry recognizes one template construct.
// Start decides whether the construct begins at the cursor. Open and Close
// match the delimiters that surround it.
type Entry struct {
	Start *regexp.Regexp
	Open  *regexp.Regexp
	Close *regexp.Regexp
	Kind  htmlast.Construct
}

// wildcards restores the few pattern operators allowed in table literals:
// `\.` any rune, `\*` zero or more, `\+` one or more.
var wildcards = strings.NewReplacer(`\\\.`, ".", `\\\*`, "*", `\\\+`, "+")

func compile(pattern string) *regexp.Regexp {
	return regexp.MustCompile("^" + wildcards.Replace(regexp.QuoteMeta(pattern)))
}

func entry(start, open, closer string, kind htmlast.Construct) Entry {
	return Entry{Start: compile(start), Open: compile(open), Close: compile(closer), Kind: kind}
}

// tagged expands {% word and {%- word into two entries of the same kind.
func tagged(word string, kind htmlast.Construct) []Entry {
	return []Entry{
		entry("{% "+word, "{%", "%}", kind),
		entry("{%- "+word, "{%", "%}", kind),
	}
}

func join(groups ...[]Entry) []Entry {
	var out []Entry
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

//nolint:gochecknoglobals // Tables are built once and never mutated.
var (
	tablesOnce sync.Once
	tables     map[Dialect][]Entry
)

// Table returns the ordered construct table for d. The first matching entry wins.
func (d Dialect) Table() []Entry {
	tablesOnce.Do(buildTables)
	return tables[d]
}

func buildTables() {
	const (
		stmt    = htmlast.ConstructStatement
		expr    = htmlast.ConstructExpression
		ifc     = htmlast.ConstructIf
		elsec   = htmlast.ConstructElse
		endIf   = htmlast.ConstructEndIf
		loop    = htmlast.ConstructLoop
		endLoop = htmlast.ConstructEndLoop
		sw      = htmlast.ConstructSwitch
		cs      = htmlast.ConstructCase
		endSw   = htmlast.ConstructEndSwitch
		block   = htmlast.ConstructBlock
		endBlk  = htmlast.ConstructEndBlock
		comment = htmlast.ConstructComment
	)

	tables = map[Dialect][]Entry{
		None: nil,

		Handlebars: {
			entry("{{#if", "{{", "}}", ifc),
			entry("{{else", "{{", "}}", elsec),
			entry("{{/if", "{{", "}}", endIf),
			entry("{{#each", "{{", "}}", loop),
			entry("{{/each", "{{", "}}", endLoop),
			entry("{{^", "{{", "}}", block),
			entry("{{#", "{{", "}}", block),
			entry("{{/", "{{", "}}", endBlk),
			entry("{{{", "{{{", "}}}", expr),
			entry("{{", "{{", "}}", expr),
		},

		Jinja2: join(
			tagged("if", ifc),
			tagged("else", elsec),
			tagged("elif", elsec),
			tagged("for", loop),
			tagged("block", block),
			tagged("raw", block),
			tagged("macro", block),
			tagged("with", block),
			tagged("endif", endIf),
			tagged("endfor", endLoop),
			tagged("endblock", endBlk),
			tagged("endraw", endBlk),
			tagged("endmacro", endBlk),
			tagged("endwith", endBlk),
			[]Entry{
				entry("{{", "{{", "}}", expr),
				entry("{%", "{%", "%}", stmt),
				entry("{#", "{#", "#}", comment),
			},
		),

		Liquid: join(
			tagged("if", ifc),
			tagged("else", elsec),
			tagged("elsif", elsec),
			tagged("for", loop),
			tagged("case", sw),
			tagged("when", cs),
			tagged("raw", block),
			tagged("comment", block),
			tagged("capture", block),
			tagged("endif", endIf),
			tagged("endfor", endLoop),
			tagged("endcase", endSw),
			tagged("endraw", endBlk),
			tagged("endcomment", endBlk),
			tagged("endcapture", endBlk),
			[]Entry{
				entry("{{", "{{", "}}", expr),
				entry("{%", "{%", "%}", stmt),
			},
		),

		Mustache: {
			entry("{{#", "{{", "}}", block),
			entry("{{^", "{{", "}}", block),
			entry("{{/", "{{", "}}", endBlk),
			entry("{{{", "{{{", "}}}", expr),
			entry("{{", "{{", "}}", expr),
		},

		Twig: join(
			tagged("if", ifc),
			tagged("else", elsec),
			tagged("elseif", elsec),
			tagged("endif", endIf),
			tagged("for", loop),
			tagged("endfor", endLoop),
			tagged("block", block),
			tagged("endblock", endBlk),
			tagged("macro", block),
			tagged("endmacro", endBlk),
			tagged("raw", block),
			tagged("endraw", endBlk),
			tagged("embed", block),
			tagged("endembed", endBlk),
			tagged("verbatim", block),
			tagged("endverbatim", endBlk),
			tagged("filter", block),
			tagged("endfilter", endBlk),
			tagged("spaceless", block),
			tagged("endspaceless", endBlk),
			[]Entry{
				entry("{{", "{{", "}}", expr),
				entry("{%", "{%", "%}", stmt),
				entry("{#", "{#", "#}", comment),
			},
		),

		// case has no detectable end, so it opens a plain block closed by <% end %>.
		Eex: {
			entry("<% if", "<%", "%>", ifc),
			entry("<%= if", "<%", "%>", ifc),
			entry("<% unless", "<%", "%>", ifc),
			entry("<%= unless", "<%", "%>", ifc),
			entry("<% else", "<%", "%>", elsec),
			entry("<% elsif", "<%", "%>", elsec),
			entry("<% for", "<%", "%>", loop),
			entry("<%= for", "<%", "%>", loop),
			entry("<% case", "<%", "%>", block),
			entry("<%= case", "<%", "%>", block),
			entry("<% do ", "<%", "%>", block),
			entry("<%= do ", "<%", "%>", block),
			entry("<% begin", "<%", "%>", block),
			entry("<%= begin", "<%", "%>", block),
			entry("<% rescue", "<%", "%>", elsec),
			entry("<%= rescue", "<%", "%>", elsec),
			entry("<% ensure", "<%", "%>", elsec),
			entry("<% cond", "<%", "%>", sw),
			entry("<%= cond", "<%", "%>", sw),
			entry("<% end", "<%", "%>", endBlk),
			entry("<%=", "<%", "%>", expr),
			entry("<%==", "<%", "%>", expr),
			entry("<%", "<%", "%>", stmt),
		},

		Erb: {
			entry("<% if", "<%", "%>", ifc),
			entry("<% unless", "<%", "%>", ifc),
			entry("<% while", "<%", "%>", block),
			entry("<% until", "<%", "%>", block),
			entry("<% else", "<%", "%>", elsec),
			entry("<% elsif", "<%", "%>", elsec),
			entry("<% end", "<%", "%>", endBlk),
			entry("<% for", "<%", "%>", loop),
			entry("<% case", "<%", "%>", expr),
			entry("<% when", "<%", "%>", cs),
			entry("<% do", "<%", "%>", block),
			entry("<% begin", "<%", "%>", block),
			entry("<% rescue", "<%", "%>", elsec),
			entry("<% ensure", "<%", "%>", elsec),
			entry("<%=", "<%", "%>", expr),
			entry(`<%\.\+ do \*|\.\+| \*%>`, "<%", "%>", block),
			entry(`<%\.\+ do \*%>`, "<%", "%>", block),
			entry("<%", "<%", "%>", stmt),
		},

		Go: join(
			goAction("/*", comment),
			goAction("if", ifc),
			goAction("else if", elsec),
			goAction("else", elsec),
			goAction("end", endBlk),
			goAction("range", loop),
			goAction("with", block),
			goAction("block", block),
			goAction("define", block),
			[]Entry{entry("{{", "{{", "}}", expr)},
		),
	}
}

// goAction covers {{word, {{ word and the trim-marker form {{- word.
// Comments close on the plain delimiter so that "*/ -}}" is accepted too.
func goAction(word string, kind htmlast.Construct) []Entry {
	return []Entry{
		entry("{{"+word, "{{", "}}", kind),
		entry("{{ "+word, "{{", "}}", kind),
		entry("{{- "+word, "{{", "}}", kind),
	}
}
