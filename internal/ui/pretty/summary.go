package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/htmlsnob/pkg/config"
	"github.com/yaklabco/htmlsnob/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// severityParts renders the non-zero severity counts in rank order.
func (s *Styles) severityParts(bySeverity map[string]int) []string {
	var parts []string
	for _, sev := range severityOrder {
		if n := bySeverity[string(sev)]; n > 0 {
			parts = append(parts, s.Severity(sev).Render(severityCount(sev, n)))
		}
	}
	return parts
}

// severityOrder lists severities most important first.
//
//nolint:gochecknoglobals // Static lookup table.
var severityOrder = []config.Severity{
	config.SeverityError,
	config.SeverityWarning,
	config.SeverityInformation,
	config.SeverityHint,
}

// severityCount renders "3 errors", "1 warning" or "2 information".
func severityCount(sev config.Severity, n int) string {
	if sev == config.SeverityInformation {
		return fmt.Sprintf("%d information", n)
	}
	return fmt.Sprintf("%d %s", n, plural(n, string(sev), string(sev)+"s"))
}

// formattingParts reports written and unformatted files.
func (s *Styles) formattingParts(stats runner.Stats) []string {
	var parts []string
	if stats.FilesModified > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s fixed",
			stats.FilesModified, plural(stats.FilesModified, wordFile, wordFiles))))
	}
	if unformatted := stats.FilesUnformatted - stats.FilesModified; unformatted > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s not formatted",
			unformatted, plural(unformatted, wordFile, wordFiles))))
	}
	return parts
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 issues (8 errors, 4 warnings) in 3 files, 2 files fixed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.DiagnosticsTotal == 0 {
		msg := s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)))
		if extra := s.formattingParts(stats); len(extra) > 0 {
			msg += ", " + strings.Join(extra, ", ")
		}
		return msg + "\n"
	}

	issueWord := plural(stats.DiagnosticsTotal, "issue", "issues")

	var parts []string
	if severityParts := s.severityParts(stats.DiagnosticsBySeverity); len(severityParts) > 0 {
		parts = append(parts, fmt.Sprintf("%d %s (%s)", stats.DiagnosticsTotal, issueWord, strings.Join(severityParts, ", ")))
	} else {
		parts = append(parts, fmt.Sprintf("%d %s", stats.DiagnosticsTotal, issueWord))
	}
	parts[0] += fmt.Sprintf(" in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, wordFile, wordFiles))

	parts = append(parts, s.formattingParts(stats)...)

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesWithIssues > 0 {
		builder.WriteString("  Files with issues: " +
			s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)) + "\n")
	}
	if stats.FilesUnformatted > 0 {
		builder.WriteString("  Files unformatted: " +
			s.Warning.Render(strconv.Itoa(stats.FilesUnformatted)) + "\n")
	}
	if stats.FilesModified > 0 {
		builder.WriteString("  Files fixed:       " +
			s.Success.Render(strconv.Itoa(stats.FilesModified)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Total issues:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)) + "\n")

	rows := []struct {
		label string
		sev   config.Severity
		style func(...string) string
	}{
		{"    Errors:          ", config.SeverityError, s.Error.Render},
		{"    Warnings:        ", config.SeverityWarning, s.Warning.Render},
		{"    Information:     ", config.SeverityInformation, s.Info.Render},
		{"    Hints:           ", config.SeverityHint, s.Hint.Render},
	}
	for _, row := range rows {
		if n := stats.DiagnosticsBySeverity[string(row.sev)]; n > 0 {
			builder.WriteString(row.label + row.style(strconv.Itoa(n)) + "\n")
		}
	}

	builder.WriteString("\n")

	switch {
	case stats.DiagnosticsBySeverity[string(config.SeverityError)] > 0:
		builder.WriteString(s.Failure.Render("Lint failed with errors"))
	case stats.DiagnosticsBySeverity[string(config.SeverityWarning)] > 0:
		builder.WriteString(s.Warning.Render("Lint completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Lint passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
