// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/htmlsnob/pkg/config"
)

// ANSI 256 palette indexes.
const (
	colorGray   = "8"
	colorSilver = "7"
	colorRed    = "9"
	colorGreen  = "10"
	colorYellow = "11"
	colorBlue   = "12"
	colorCyan   = "14"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Severity labels. Use Severity to pick one.
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Hint    lipgloss.Style

	// Diagnostic components
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table rows, one per severity. Use Row to pick one.
	TableErrorRow lipgloss.Style
	TableWarnRow  lipgloss.Style
	TableInfoRow  lipgloss.Style
	TableHintRow  lipgloss.Style

	TableHeader    lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// palette builds styles that collapse to plain text when color is off.
type palette struct {
	color bool
}

func (p palette) plain() lipgloss.Style {
	return lipgloss.NewStyle()
}

func (p palette) fg(c string) lipgloss.Style {
	if !p.color {
		return p.plain()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

func (p palette) bold(c string) lipgloss.Style {
	if !p.color {
		return p.plain()
	}
	style := lipgloss.NewStyle().Bold(true)
	if c != "" {
		style = style.Foreground(lipgloss.Color(c))
	}
	return style
}

func (p palette) italic(c string) lipgloss.Style {
	if !p.color {
		return p.plain()
	}
	return p.fg(c).Italic(true)
}

// NewStyles creates the output styles; with colorEnabled false every style
// renders its input unchanged.
func NewStyles(colorEnabled bool) *Styles {
	p := palette{color: colorEnabled}
	return &Styles{
		Error:   p.bold(colorRed),
		Warning: p.bold(colorYellow),
		Info:    p.bold(colorBlue),
		Hint:    p.fg(colorCyan),

		FilePath:   p.bold(""),
		Location:   p.fg(colorGray),
		RuleID:     p.fg(colorGray),
		Message:    p.plain(),
		SourceLine: p.fg(colorSilver),
		Caret:      p.fg(colorRed),

		DiffHeader:  p.bold(""),
		DiffHunk:    p.fg(colorCyan),
		DiffAdd:     p.fg(colorGreen),
		DiffRemove:  p.fg(colorRed),
		DiffContext: p.fg(colorGray),

		SummaryTitle: p.bold(""),
		SummaryValue: p.plain(),
		Success:      p.bold(colorGreen),
		Failure:      p.bold(colorRed),

		TableErrorRow: p.fg(colorRed),
		TableWarnRow:  p.fg(colorYellow),
		TableInfoRow:  p.fg(colorBlue),
		TableHintRow:  p.fg(colorCyan),

		TableHeader:    p.bold(colorSilver),
		TableLegend:    p.italic(colorGray),
		TableSeparator: p.fg(colorGray),

		Dim:  p.fg(colorGray),
		Bold: p.bold(""),
	}
}

// Severity returns the label style for sev. The empty severity is an error.
func (s *Styles) Severity(sev config.Severity) lipgloss.Style {
	switch sev {
	case config.SeverityWarning:
		return s.Warning
	case config.SeverityInformation:
		return s.Info
	case config.SeverityHint:
		return s.Hint
	default:
		return s.Error
	}
}

// Row returns the table row style for sev.
func (s *Styles) Row(sev config.Severity) lipgloss.Style {
	switch sev {
	case config.SeverityWarning:
		return s.TableWarnRow
	case config.SeverityInformation:
		return s.TableInfoRow
	case config.SeverityHint:
		return s.TableHintRow
	default:
		return s.TableErrorRow
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
