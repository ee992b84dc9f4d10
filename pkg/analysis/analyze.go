package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/htmlsnob/pkg/config"
	"github.com/yaklabco/htmlsnob/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	ruleMap   map[string]*RuleAnalysis
	fileMap   map[string]*FileAnalysis
	ruleFiles map[string]map[string]bool
	fileRules map[string]map[string]bool
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		ruleMap:   make(map[string]*RuleAnalysis),
		fileMap:   make(map[string]*FileAnalysis),
		ruleFiles: make(map[string]map[string]bool),
		fileRules: make(map[string]map[string]bool),
	}
}

// normalizeSeverity maps the empty severity to error, which is what rules default to.
func normalizeSeverity(sev config.Severity) config.Severity {
	if sev == "" {
		return config.SeverityError
	}
	return sev
}

// add counts one issue of the given severity.
func (c *Counts) add(sev config.Severity) {
	c.Issues++
	switch sev {
	case config.SeverityError:
		c.Errors++
	case config.SeverityWarning:
		c.Warnings++
	case config.SeverityInformation:
		c.Infos++
	default:
		c.Hints++
	}
}

func (ctx *analysisContext) getOrCreateFileAnalysis(path string) *FileAnalysis {
	if _, ok := ctx.fileMap[path]; !ok {
		ctx.fileMap[path] = &FileAnalysis{Path: path}
		ctx.fileRules[path] = make(map[string]bool)
	}
	return ctx.fileMap[path]
}

func (ctx *analysisContext) getOrCreateRuleAnalysis(name, kind string) *RuleAnalysis {
	if _, ok := ctx.ruleMap[name]; !ok {
		ctx.ruleMap[name] = &RuleAnalysis{Rule: name, Kind: kind}
		ctx.ruleFiles[name] = make(map[string]bool)
	}
	return ctx.ruleMap[name]
}

func (ctx *analysisContext) buildByRule(opts Options) []RuleAnalysis {
	result := make([]RuleAnalysis, 0, len(ctx.ruleMap))
	for name, ra := range ctx.ruleMap {
		for f := range ctx.ruleFiles[name] {
			ra.Files = append(ra.Files, f)
		}
		slices.Sort(ra.Files)
		result = append(result, *ra)
	}
	sortRuleAnalysis(result, opts.Order)
	return result
}

func (ctx *analysisContext) buildByFile(opts Options) []FileAnalysis {
	var result []FileAnalysis
	for path, fa := range ctx.fileMap {
		if fa.Issues == 0 {
			continue
		}
		for r := range ctx.fileRules[path] {
			fa.Rules = append(fa.Rules, r)
		}
		slices.Sort(fa.Rules)
		result = append(result, *fa)
	}
	sortFileAnalysis(result, opts.Order)
	return result
}

// Analyze transforms a runner.Result into a Report.
// It performs a single pass through diagnostics to compute all views.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	ctx := newAnalysisContext()

	for _, file := range result.Files {
		report.Totals.Files++
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}
		if file.Result.NeedsFormatting() {
			report.Totals.FilesUnformatted++
		}
		if file.Result.Written {
			report.Totals.FilesModified++
		}
		if len(file.Result.Diagnostics) > 0 {
			report.Totals.FilesWithIssues++
		}

		displayPath := makeRelativePath(file.Path, opts.WorkingDir)
		fa := ctx.getOrCreateFileAnalysis(displayPath)

		for i := range file.Result.Diagnostics {
			diag := &file.Result.Diagnostics[i]
			severity := normalizeSeverity(diag.Severity)
			name := config.FormatRuleName(opts.RuleFormat, diag.Kind, diag.RuleName)

			report.Totals.add(severity)
			fa.add(severity)
			ctx.fileRules[displayPath][name] = true

			ra := ctx.getOrCreateRuleAnalysis(name, diag.Kind)
			ra.add(severity)
			ctx.ruleFiles[name][displayPath] = true
		}
	}

	report.ByRule = ctx.buildByRule(opts)
	report.ByFile = ctx.buildByFile(opts)

	return report
}

// compareSeverity puts entries with more errors first, then more warnings,
// then more issues overall.
func compareSeverity(left, right Counts) int {
	return cmp.Or(
		cmp.Compare(right.Errors, left.Errors),
		cmp.Compare(right.Warnings, left.Warnings),
		cmp.Compare(right.Issues, left.Issues),
	)
}

// compareOrder compares two entries under order; ties fall back to the key.
func compareOrder(order Order, left, right Counts, leftKey, rightKey string) int {
	var result int
	switch order {
	case OrderName:
	case OrderSeverity:
		result = compareSeverity(left, right)
	default:
		result = cmp.Compare(right.Issues, left.Issues)
	}
	return cmp.Or(result, cmp.Compare(leftKey, rightKey))
}

func sortRuleAnalysis(rules []RuleAnalysis, order Order) {
	slices.SortFunc(rules, func(left, right RuleAnalysis) int {
		return compareOrder(order, left.Counts, right.Counts, left.Rule, right.Rule)
	})
}

func sortFileAnalysis(files []FileAnalysis, order Order) {
	slices.SortFunc(files, func(left, right FileAnalysis) int {
		return compareOrder(order, left.Counts, right.Counts, left.Path, right.Path)
	})
}
