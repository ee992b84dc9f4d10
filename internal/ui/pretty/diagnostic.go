package pretty

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/htmlsnob/pkg/config"
	"github.com/yaklabco/htmlsnob/pkg/htmlast"
	"github.com/yaklabco/htmlsnob/pkg/lint"
)

// contextIndent aligns source context under the diagnostic line.
const contextIndent = "        "

// FormatDiagnostic formats a single diagnostic for terminal output,
// identifying the rule by its configured name.
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, showContext bool, sourceLine string) string {
	return s.FormatDiagnosticWithFormat(diag, showContext, sourceLine, config.RuleFormatName)
}

// FormatDiagnosticWithFormat formats a diagnostic with configurable rule identifier format.
// sourceLine is the line the diagnostic's first area starts on.
func (s *Styles) FormatDiagnosticWithFormat(diag *lint.Diagnostic, showContext bool, sourceLine string, ruleFormat config.RuleFormat) string {
	var builder strings.Builder

	area := diag.Area()

	// Location: path:line:col, 1-based for humans.
	location := s.FilePath.Render(diag.FilePath) + ":" + s.Location.Render(area.Start.String())

	ruleIdentifier := config.FormatRuleName(ruleFormat, diag.Kind, diag.RuleName)
	ruleDisplay := s.RuleID.Render("(" + ruleIdentifier + ")")

	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		ruleDisplay,
	))

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, area))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	if sev == "" {
		sev = config.SeverityError
	}
	return s.Severity(sev).Render(string(sev))
}

// FormatSourceContext formats the source line and underlines area on it.
// A single-line area is underlined with dashes across its width; an area that
// continues onto later lines gets a caret at its start.
func (s *Styles) FormatSourceContext(line string, area htmlast.Area) string {
	var builder strings.Builder

	line = strings.TrimRight(line, "\r\n")
	builder.WriteString(contextIndent + s.SourceLine.Render(line) + "\n")

	runes := []rune(line)
	start := min(area.Start.Column, len(runes))
	padding := runewidth.StringWidth(string(runes[:start]))

	marker := "^"
	if area.IsSingleLine() && area.End.Column > area.Start.Column {
		end := min(area.End.Column, len(runes))
		marker = strings.Repeat("-", max(1, runewidth.StringWidth(string(runes[start:end]))))
	}

	builder.WriteString(contextIndent + strings.Repeat(" ", padding) + s.Caret.Render(marker) + "\n")

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
