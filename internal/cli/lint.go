package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/htmlsnob/internal/logging"
	"github.com/yaklabco/htmlsnob/pkg/analysis"
	"github.com/yaklabco/htmlsnob/pkg/config"
	"github.com/yaklabco/htmlsnob/pkg/reporter"
	"github.com/yaklabco/htmlsnob/pkg/runner"
)

type lintFlags struct {
	sourceFlags

	format     string
	fix        bool
	dryRun     bool
	check      bool
	enable     []string
	disable    []string
	strict     bool
	noContext  bool
	compact    bool
	perFile    bool
	filesFirst bool
	sortOrder  string
	ruleFormat string
	watch      bool
}

func newLintCommand(info BuildInfo) *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint HTML and template files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags, info)
		},
	}

	addLintFlags(cmd, flags)

	return cmd
}

const lintLongDescription = `Lint HTML and template files against the configured rules.

By default, lints every .html, .htm and template file (.hbs, .jinja2, .liquid,
.twig, .erb, .gohtml, ...) in the current directory and subdirectories.
Specify paths to lint specific files or directories.

Examples:
  htmlsnob lint                    # Lint current directory
  htmlsnob lint templates/         # Lint templates directory
  htmlsnob lint index.html         # Lint single file
  htmlsnob lint --fix              # Apply autofixes and formatting
  htmlsnob lint --fix --dry-run    # Show the changes without writing them
  htmlsnob lint --check            # Also report files that are not formatted
  htmlsnob lint --format sarif     # Output SARIF for code scanning
  htmlsnob lint --watch            # Re-lint files as they are saved`

func runLint(cmd *cobra.Command, args []string, flags *lintFlags, info BuildInfo) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return withExitCode(ExitInvalidUsage, fmt.Errorf("invalid format: %w", err))
	}

	order, err := analysis.ParseOrder(flags.sortOrder)
	if err != nil {
		return withExitCode(ExitInvalidUsage, fmt.Errorf("invalid sort: %w", err))
	}

	ruleFormat := config.RuleFormat(flags.ruleFormat)
	if !slices.Contains([]config.RuleFormat{config.RuleFormatName, config.RuleFormatKind, config.RuleFormatCombined}, ruleFormat) {
		return withExitCode(ExitInvalidUsage, fmt.Errorf("invalid rule format %q: must be name, kind or combined", flags.ruleFormat))
	}

	cfg, workDir, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// CLI-only settings.
	cfg.Fix = flags.fix
	cfg.DryRun = flags.dryRun
	cfg.Check = flags.check
	cfg.EnableRules = flags.enable
	cfg.DisableRules = flags.disable
	cfg.NoBackups = flags.noBackups
	cfg.RuleFormat = ruleFormat
	cfg.Format = config.OutputFormat(format)

	logger.Debug("lint settings",
		logging.FieldFix, cfg.Fix,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldCheck, cfg.Check,
		logging.FieldRules, len(cfg.ActiveRules()),
	)

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode(cmd),
		ShowContext: !flags.noContext,
		ShowSummary: true,
		GroupByFile: true,
		Compact:     flags.compact,
		PerFile:     flags.perFile,
		RuleFormat:  ruleFormat,
		FilesFirst:  flags.filesFirst,
		Order:       order,
		ToolVersion: info.Version,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	lintRunner := newRunner()
	runOpts := runnerOptions(args, workDir, cfg)

	if flags.watch {
		return watch(ctx, lintRunner, rep, runOpts)
	}

	logger.Debug("starting lint run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := lintRunner.Run(ctx, runOpts)
	if err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("lint run failed: %w", err))
	}

	logger.Debug("lint run finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldFilesModified, result.Stats.FilesModified,
	)

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if code := lintExitCode(result, flags.strict, cfg.Check); code != ExitSuccess {
		return withExitCode(code, ErrLintIssuesFound)
	}

	return nil
}

// lintExitCode extends ExitCodeFromResult with --check, where a file left
// unformatted fails the run.
func lintExitCode(result *runner.Result, strict, check bool) int {
	code := ExitCodeFromResult(result, strict)
	if code == ExitSuccess && check && result.Stats.FilesUnformatted > result.Stats.FilesModified {
		return ExitLintErrors
	}
	return code
}

func addLintFlags(cmd *cobra.Command, flags *lintFlags) {
	addSourceFlags(cmd, &flags.sourceFlags)

	cmd.Flags().BoolVar(&flags.fix, "fix", false, "apply autofixes and write formatted output")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show fixes without applying them")
	cmd.Flags().BoolVar(&flags.check, "check", false, "report files that are not formatted")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: "+reporter.FormatNames())
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "only run rules with these names or kinds")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "skip rules with these names or kinds")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.perFile, "per-file", false, "output separate report for each file (table format)")
	cmd.Flags().BoolVar(&flags.filesFirst, "files-first", false, "show the files table before the rules table (summary format)")
	cmd.Flags().StringVar(&flags.sortOrder, "sort", "count",
		"order of the rules and files tables (summary format): count, name, or severity")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, kind, or combined")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "keep running and re-lint files when they change")
}
