package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/htmlsnob/internal/ui/pretty"
	"github.com/yaklabco/htmlsnob/pkg/analysis"
	"github.com/yaklabco/htmlsnob/pkg/config"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	tableWidth         = 90 // Width of table separators (same for both tables).
	ruleColWidth       = 30 // Width of the rule name column.
	fileColWidth       = 60 // Width of the file path column (wider for relative paths).
	numColWidth        = 7  // Width of numeric columns.
	warnColWidth       = 8  // Width of warnings column.
	otherColWidth      = 8  // Width of the information and hints column.
	maxRuleNameLength  = 28 // Maximum characters for rule name before truncation.
	maxFilePathLength  = 58 // Maximum characters for file path before truncation.
	totalPartsCapacity = 2  // Expected number of parts in total summary line.
)

// padRight pads a string to the given display width on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// padLeft pads a string to the given display width on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}

// SummaryRenderer formats results as aggregated summary tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Issues == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No issues found"))
		return nil
	}

	if r.opts.FilesFirst {
		r.renderFileTable(report.ByFile)
		fmt.Fprintln(r.out)
		r.renderRuleTable(report.ByRule)
	} else {
		r.renderRuleTable(report.ByRule)
		fmt.Fprintln(r.out)
		r.renderFileTable(report.ByFile)
	}

	fmt.Fprintln(r.out)
	r.renderTotals(report.Totals)

	return nil
}

func (r *SummaryRenderer) renderRuleTable(rules []analysis.RuleAnalysis) {
	if len(rules) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Rules Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	// Header - pad first, then style
	fmt.Fprintf(r.out, "%s %s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("Rule", ruleColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
		r.styles.TableHeader.Render(padLeft("Other", otherColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	// Rows
	for _, rule := range rules {
		ruleName := runewidth.Truncate(rule.Rule, maxRuleNameLength+1, "…")

		// Pad first, then style
		paddedName := padRight(ruleName, ruleColWidth)
		styledName := paddedName
		if sev, ok := worstSeverity(rule.Counts); ok {
			styledName = r.styles.Row(sev).Render(paddedName)
		}

		fmt.Fprintf(r.out, "%s %s %s %s %s\n",
			styledName,
			padLeft(strconv.Itoa(rule.Issues), numColWidth),
			padLeft(strconv.Itoa(rule.Errors), numColWidth),
			padLeft(strconv.Itoa(rule.Warnings), warnColWidth),
			padLeft(strconv.Itoa(rule.Infos+rule.Hints), otherColWidth),
		)
	}
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	// Header - pad first, then style
	fmt.Fprintf(r.out, "%s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	// Rows
	for _, file := range files {
		path := file.Path
		if runes := []rune(path); len(runes) > maxFilePathLength {
			path = "…" + string(runes[len(runes)-(maxFilePathLength-1):])
		}

		// Pad first, then style
		paddedPath := padRight(path, fileColWidth)
		styledPath := paddedPath
		if sev, ok := worstSeverity(file.Counts); ok {
			styledPath = r.styles.Row(sev).Render(paddedPath)
		}

		fmt.Fprintf(r.out, "%s %s %s %s\n",
			styledPath,
			padLeft(strconv.Itoa(file.Issues), numColWidth),
			padLeft(strconv.Itoa(file.Errors), numColWidth),
			padLeft(strconv.Itoa(file.Warnings), warnColWidth),
		)
	}
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	parts := make([]string, 0, totalPartsCapacity)

	issueWord := pluralize(totals.Issues, "issue", "issues")
	parts = append(parts, fmt.Sprintf("%d %s", totals.Issues, issueWord))

	var severityParts []string
	for _, part := range []struct {
		sev config.Severity
		n   int
	}{
		{config.SeverityError, totals.Errors},
		{config.SeverityWarning, totals.Warnings},
		{config.SeverityInformation, totals.Infos},
		{config.SeverityHint, totals.Hints},
	} {
		if part.n > 0 {
			severityParts = append(severityParts, r.styles.Severity(part.sev).Render(severityCount(part.sev, part.n)))
		}
	}
	if len(severityParts) > 0 {
		parts[0] = fmt.Sprintf("%d %s (%s)", totals.Issues, issueWord, strings.Join(severityParts, ", "))
	}

	parts = append(parts, fmt.Sprintf("in %d %s", totals.FilesWithIssues, pluralize(totals.FilesWithIssues, "file", "files")))

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+strings.Join(parts, " "))
}

// worstSeverity returns the most important severity present in c.
func worstSeverity(c analysis.Counts) (config.Severity, bool) {
	switch {
	case c.Errors > 0:
		return config.SeverityError, true
	case c.Warnings > 0:
		return config.SeverityWarning, true
	case c.Infos > 0:
		return config.SeverityInformation, true
	case c.Hints > 0:
		return config.SeverityHint, true
	default:
		return "", false
	}
}

func severityCount(sev config.Severity, n int) string {
	if sev == config.SeverityInformation {
		return fmt.Sprintf("%d information", n)
	}
	return fmt.Sprintf("%d %s", n, pluralize(n, string(sev), string(sev)+"s"))
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
