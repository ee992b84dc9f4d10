package pretty

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/htmlsnob/pkg/config"
	"github.com/yaklabco/htmlsnob/pkg/lint"
	"github.com/yaklabco/htmlsnob/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding       = 2
	tableColumnCount   = 4 // FILE, LOC, MESSAGE, RULE
	perFileColumnCount = 3 // LOC, MESSAGE, RULE
	minFileWidth       = 20
	minLocWidth        = 8
	minMessageWidth    = 35
	minRuleWidth       = 8
	heavySeparator     = "="
	lightSeparator     = "-"
	defaultTermWidth   = 100
	ellipsis           = "..."
)

// TableRow represents a single row in the diagnostic table.
type TableRow struct {
	File     string
	Location string
	Message  string
	Rule     string
	Severity config.Severity
}

// TableFormatter formats diagnostics as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
	ruleFormat   config.RuleFormat
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int, ruleFormat config.RuleFormat) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
		ruleFormat:   ruleFormat,
	}
}

// DiagnosticToTableRow converts a lint diagnostic to a table row.
func DiagnosticToTableRow(path string, diag *lint.Diagnostic, ruleFormat config.RuleFormat) TableRow {
	return TableRow{
		File:     path,
		Location: diag.Area().Start.String(),
		Message:  diag.Message,
		Rule:     config.FormatRuleName(ruleFormat, diag.Kind, diag.RuleName),
		Severity: diag.Severity,
	}
}

func (t *TableFormatter) fileRows(file runner.FileOutcome) []TableRow {
	if file.Result == nil || file.Result.FileResult == nil {
		return nil
	}
	diagnostics := file.Result.Diagnostics
	rows := make([]TableRow, 0, len(diagnostics))
	for i := range diagnostics {
		rows = append(rows, DiagnosticToTableRow(file.Path, &diagnostics[i], t.ruleFormat))
	}
	return rows
}

// FormatTable formats runner results as a styled table.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	var groups [][]TableRow
	for _, file := range result.Files {
		if rows := t.fileRows(file); len(rows) > 0 {
			groups = append(groups, rows)
		}
	}
	if len(groups) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(groups)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths.total(), heavySeparator))
	builder.WriteString("\n")

	for i, group := range groups {
		if i > 0 {
			builder.WriteString(t.formatSeparator(widths.total(), lightSeparator))
			builder.WriteString("\n")
		}
		for _, row := range group {
			builder.WriteString(t.formatRow(row, widths))
			builder.WriteString("\n")
		}
	}

	builder.WriteString(t.formatSeparator(widths.total(), heavySeparator))
	builder.WriteString("\n")
	builder.WriteString(t.formatLegend())
	builder.WriteString("\n")

	return builder.String()
}

// FormatFileTable formats a single file's diagnostics as a standalone table.
func (t *TableFormatter) FormatFileTable(file runner.FileOutcome) string {
	rows := t.fileRows(file)
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths([][]TableRow{rows})
	widths.file = 0

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths.total(), heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths.total(), heavySeparator))
	builder.WriteString("\n")
	builder.WriteString(t.formatFileSummary(rows))
	builder.WriteString("\n")

	return builder.String()
}

// columnWidths holds display widths; a zero file width drops the FILE column.
type columnWidths struct {
	file    int
	loc     int
	message int
	rule    int
}

func (w columnWidths) total() int {
	columns := perFileColumnCount
	width := w.loc + w.message + w.rule
	if w.file > 0 {
		columns = tableColumnCount
		width += w.file
	}
	return width + tablePadding*columns
}

// calculateColumnWidths determines column widths from content, then shrinks
// the message and file columns to fit the terminal.
func (t *TableFormatter) calculateColumnWidths(groups [][]TableRow) columnWidths {
	widths := columnWidths{
		file:    minFileWidth,
		loc:     minLocWidth,
		message: minMessageWidth,
		rule:    minRuleWidth,
	}

	for _, group := range groups {
		for _, row := range group {
			widths.file = max(widths.file, runewidth.StringWidth(row.File))
			widths.loc = max(widths.loc, runewidth.StringWidth(row.Location))
			widths.message = max(widths.message, runewidth.StringWidth(row.Message))
			widths.rule = max(widths.rule, runewidth.StringWidth(row.Rule))
		}
	}

	if excess := widths.total() - t.termWidth; excess > 0 {
		widths.message = max(minMessageWidth, widths.message-excess)
	}
	if excess := widths.total() - t.termWidth; excess > 0 {
		widths.file = max(minFileWidth, widths.file-excess)
	}

	return widths
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	var builder strings.Builder
	builder.WriteString(" ")
	if widths.file > 0 {
		builder.WriteString(pad("FILE", widths.file) + "  ")
	}
	builder.WriteString(pad("LOC", widths.loc) + "  ")
	builder.WriteString(pad("MESSAGE", widths.message) + "  ")
	builder.WriteString(pad("RULE", widths.rule))
	return t.styles.TableHeader.Render(builder.String())
}

func (t *TableFormatter) formatSeparator(width int, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, width))
}

// formatRow formats a single table row with severity-based styling.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	var builder strings.Builder
	builder.WriteString(" ")
	if widths.file > 0 {
		builder.WriteString(pad(truncateFilePath(row.File, widths.file), widths.file) + "  ")
	}
	builder.WriteString(pad(truncateString(row.Location, widths.loc), widths.loc) + "  ")
	builder.WriteString(pad(truncateString(row.Message, widths.message), widths.message) + "  ")
	builder.WriteString(pad(truncateString(row.Rule, widths.rule), widths.rule))

	return t.styles.Row(row.Severity).Render(builder.String())
}

// formatFileSummary formats a summary line for a single file.
func (t *TableFormatter) formatFileSummary(rows []TableRow) string {
	counts := make(map[string]int)
	for _, row := range rows {
		sev := row.Severity
		if sev == "" {
			sev = config.SeverityError
		}
		counts[string(sev)]++
	}
	return " " + strings.Join(t.styles.severityParts(counts), " | ")
}

func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(" Legend: LOC is line:column")
	}

	return t.styles.TableLegend.Render(
		fmt.Sprintf(" Legend: %s  %s  %s  %s",
			t.styles.Row(config.SeverityError).Render(" error "),
			t.styles.Row(config.SeverityWarning).Render(" warning "),
			t.styles.Row(config.SeverityInformation).Render(" information "),
			t.styles.Row(config.SeverityHint).Render(" hint ")),
	)
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	parts := []string{fmt.Sprintf("%d %s checked", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles))}
	parts = append(parts, t.styles.severityParts(stats.DiagnosticsBySeverity)...)
	parts = append(parts, t.styles.formattingParts(stats)...)

	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}

	return " " + strings.Join(parts, " | ")
}

// pad right-pads str to a display width.
func pad(str string, width int) string {
	return runewidth.FillRight(str, width)
}

// truncateString truncates a string to a display width, adding "..." if truncated.
func truncateString(str string, maxWidth int) string {
	if runewidth.StringWidth(str) <= maxWidth {
		return str
	}
	if maxWidth <= len(ellipsis) {
		return runewidth.Truncate(str, maxWidth, "")
	}
	return runewidth.Truncate(str, maxWidth, ellipsis)
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxWidth int) string {
	if runewidth.StringWidth(path) <= maxWidth {
		return path
	}
	runes := []rune(path)
	keep := maxWidth - len(ellipsis)
	if keep <= 0 {
		return string(runes[len(runes)-min(maxWidth, len(runes)):])
	}
	tail := runes[len(runes)-1:]
	for i := len(runes) - 2; i >= 0 && runewidth.StringWidth(string(runes[i:])) <= keep; i-- {
		tail = runes[i:]
	}
	return ellipsis + string(tail)
}
