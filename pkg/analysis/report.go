// Package analysis aggregates runner results into per-rule and per-file views.
package analysis

import "time"

// Report contains pre-computed views of lint results.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// ByFile groups diagnostics by file path.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByRule groups diagnostics by rule.
	ByRule []RuleAnalysis `json:"byRule,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// Counts splits an issue count by severity.
type Counts struct {
	Issues   int `json:"issues"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"information"`
	Hints    int `json:"hints"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Counts

	Files            int `json:"filesChecked"`
	FilesWithIssues  int `json:"filesWithIssues"`
	FilesUnformatted int `json:"filesUnformatted"`
	FilesModified    int `json:"filesModified"`
}

// HasIssues returns true if there are any issues.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors returns true if there are any errors.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Counts

	Path  string   `json:"path"`
	Rules []string `json:"rules,omitempty"`
}

// RuleAnalysis contains aggregated data for a single rule.
type RuleAnalysis struct {
	Counts

	Rule  string   `json:"rule"`
	Kind  string   `json:"kind"`
	Files []string `json:"files,omitempty"`
}
