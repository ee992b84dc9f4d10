package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/htmlsnob/internal/ui/pretty"
	"github.com/yaklabco/htmlsnob/pkg/config"
	"github.com/yaklabco/htmlsnob/pkg/htmlast"
	"github.com/yaklabco/htmlsnob/pkg/lint"
	"github.com/yaklabco/htmlsnob/pkg/runner"
)

func tableResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "index.html",
				Result: &lint.PipelineResult{FileResult: &lint.FileResult{Diagnostics: []lint.Diagnostic{
					{RuleName: "no_font", Kind: "tag_name_blacklist", Severity: config.SeverityError,
						Message: "Tag `font` is not allowed", Areas: []htmlast.Area{area(1, 2, 1, 8)}},
				}}},
			},
			{Path: "clean.html", Result: &lint.PipelineResult{FileResult: &lint.FileResult{}}},
			{
				Path: "about.html",
				Result: &lint.PipelineResult{FileResult: &lint.FileResult{Diagnostics: []lint.Diagnostic{
					{RuleName: "lowercase", Kind: "tag_name_casing", Severity: config.SeverityWarning,
						Message: "Tag name \"DIV\" should be in lower"},
				}}},
			},
		},
		Stats: runner.Stats{
			FilesProcessed:        3,
			DiagnosticsBySeverity: map[string]int{"error": 1, "warning": 1},
		},
	}
}

func TestTableFormatter_FormatTable(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 120, config.RuleFormatName)

	table := formatter.FormatTable(tableResult())

	lines := strings.Split(strings.TrimSuffix(table, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 6)
	assert.True(t, strings.HasPrefix(lines[0], " FILE"))
	assert.Contains(t, lines[0], "RULE")
	assert.Contains(t, table, "index.html")
	assert.Contains(t, table, "2:3")
	assert.Contains(t, table, "no_font")
	assert.Contains(t, table, "about.html")
	assert.NotContains(t, table, "clean.html")
	assert.Contains(t, table, "Legend")
}

func TestTableFormatter_Empty(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 0, config.RuleFormatName)

	assert.Empty(t, formatter.FormatTable(nil))
	assert.Empty(t, formatter.FormatTable(&runner.Result{}))
	assert.Empty(t, formatter.FormatFileTable(runner.FileOutcome{Path: "x.html"}))
}

func TestTableFormatter_FormatFileTable(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 120, config.RuleFormatKind)

	table := formatter.FormatFileTable(tableResult().Files[0])

	assert.NotContains(t, table, "FILE")
	assert.Contains(t, table, "tag_name_blacklist")
	assert.Contains(t, table, "1 error")
}

func TestTableFormatter_TruncatesToTerminal(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 60, config.RuleFormatName)

	result := tableResult()
	result.Files[0].Result.Diagnostics[0].Message = strings.Repeat("long message ", 20)

	table := formatter.FormatTable(result)
	assert.Contains(t, table, "...")
}

func TestTableFormatter_FormatTableSummary(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 100, config.RuleFormatName)

	summary := formatter.FormatTableSummary(tableResult().Stats, "12ms")

	assert.Equal(t, " 3 files checked | 1 error | 1 warning | 12ms", summary)
}

func TestDiagnosticToTableRow(t *testing.T) {
	diag := &lint.Diagnostic{
		RuleName: "no_font",
		Kind:     "tag_name_blacklist",
		Severity: config.SeverityError,
		Message:  "Tag `font` is not allowed",
		Areas:    []htmlast.Area{area(4, 0, 4, 6)},
	}

	row := pretty.DiagnosticToTableRow("index.html", diag, config.RuleFormatCombined)

	assert.Equal(t, "index.html", row.File)
	assert.Equal(t, "5:1", row.Location)
	assert.Equal(t, "tag_name_blacklist/no_font", row.Rule)
	assert.Equal(t, config.SeverityError, row.Severity)
}
