package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/htmlsnob/pkg/config"
	"github.com/yaklabco/htmlsnob/pkg/htmlast"
)

func area(line, start, end int) htmlast.Area {
	return htmlast.Area{
		Start: htmlast.Position{Line: line, Column: start},
		End:   htmlast.Position{Line: line, Column: end},
	}
}

func TestNewDiagnostic(t *testing.T) {
	diag := NewDiagnostic("no_font", "tag_name_blacklist", "Tag `font` is not allowed", area(0, 0, 6)).Build()

	assert.Equal(t, "no_font", diag.RuleName)
	assert.Equal(t, "tag_name_blacklist", diag.Kind)
	assert.Equal(t, config.SeverityError, diag.Severity)
	assert.Equal(t, "Tag `font` is not allowed", diag.Message)
	assert.Equal(t, []htmlast.Area{area(0, 0, 6)}, diag.Areas)
	assert.Empty(t, diag.FilePath)
}

func TestNewDiagnostic_NameFallsBackToKind(t *testing.T) {
	diag := NewDiagnostic("", "id_unique", "dup").Build()
	assert.Equal(t, "id_unique", diag.RuleName)
}

func TestDiagnosticBuilder_Chaining(t *testing.T) {
	diag := NewDiagnostic("r", "k", "m", area(0, 0, 3)).
		WithSeverity(config.SeverityHint).
		WithArea(area(2, 0, 4)).
		WithFilePath("index.html").
		Build()

	assert.Equal(t, config.SeverityHint, diag.Severity)
	assert.Equal(t, []htmlast.Area{area(0, 0, 3), area(2, 0, 4)}, diag.Areas)
	assert.Equal(t, "index.html", diag.FilePath)
}

func TestDiagnostic_Area(t *testing.T) {
	diag := NewDiagnostic("r", "k", "m", area(1, 2, 3), area(4, 0, 1)).Build()
	assert.Equal(t, area(1, 2, 3), diag.Area())

	empty := Diagnostic{}
	assert.Equal(t, htmlast.Area{}, empty.Area())
}

func TestDynamicFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		vars     []string
		want     string
	}{
		{
			name:     "single placeholder",
			template: "Tag `{name}` is not allowed",
			vars:     []string{"name", "font"},
			want:     "Tag `font` is not allowed",
		},
		{
			name:     "repeated placeholder",
			template: "must be quoted with {q}{q}",
			vars:     []string{"q", `"`},
			want:     `must be quoted with ""`,
		},
		{
			name:     "unknown placeholder is kept",
			template: "{child} in {parent}",
			vars:     []string{"child", "div"},
			want:     "div in {parent}",
		},
		{
			name:     "values are not expanded again",
			template: "{a}",
			vars:     []string{"a", "{b}", "b", "x"},
			want:     "{b}",
		},
		{
			name:     "odd trailing key is ignored",
			template: "{a}",
			vars:     []string{"a"},
			want:     "{a}",
		},
		{
			name:     "no placeholders",
			template: "plain",
			want:     "plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DynamicFormat(tt.template, tt.vars...))
		})
	}
}

func TestBaseRule_Message(t *testing.T) {
	rule := &BaseRule{RuleKind: "tag_name_blacklist"}
	assert.Equal(t, "Tag font", rule.Message("Tag {name}", "name", "font"))

	rule.ErrorMessage = "Avoid <{name}>"
	assert.Equal(t, "Avoid <font>", rule.Message("Tag {name}", "name", "font"))
}

func TestBaseRule_Report(t *testing.T) {
	rule := &BaseRule{RuleKind: "id_unique", RuleName: "ids", RuleSeverity: config.SeverityWarning}

	diag := rule.Report("dup", area(0, 1, 2))
	assert.Equal(t, "ids", diag.RuleName)
	assert.Equal(t, "id_unique", diag.Kind)
	assert.Equal(t, config.SeverityWarning, diag.Severity)
	assert.Equal(t, []htmlast.Area{area(0, 1, 2)}, diag.Areas)
}
