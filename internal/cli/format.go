package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/htmlsnob/internal/logging"
	"github.com/yaklabco/htmlsnob/pkg/reporter"
	"github.com/yaklabco/htmlsnob/pkg/runner"
)

type formatFlags struct {
	sourceFlags

	check  bool
	dryRun bool
}

func newFormatCommand() *cobra.Command {
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:   "format [paths...]",
		Short: "Rewrite HTML and template files into canonical layout",
		Long: `Rewrite files into canonical layout: one indent level per nesting depth,
long tags wrapped one attribute per line, and the autofixes of the configured
rules applied. Lint diagnostics are not printed; use 'htmlsnob lint' for those.

Examples:
  htmlsnob format                  # Format every file under the current directory
  htmlsnob format --check          # List files that would change, exit 1 if any
  htmlsnob format --dry-run        # Print a diff instead of writing`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, flags)
		},
	}

	addSourceFlags(cmd, &flags.sourceFlags)
	cmd.Flags().BoolVar(&flags.check, "check", false, "list files that are not formatted without writing them")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "print a diff of the changes without writing them")

	return cmd
}

func runFormat(cmd *cobra.Command, args []string, flags *formatFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	cfg, workDir, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	cfg.Fix = !flags.check
	cfg.DryRun = flags.dryRun
	cfg.NoBackups = flags.noBackups

	result, err := newRunner().Run(ctx, runnerOptions(args, workDir, cfg))
	if err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("format run failed: %w", err))
	}

	for _, file := range result.Files {
		if file.Error != nil {
			logger.Error("format failed", logging.FieldPath, file.Path, logging.FieldError, file.Error)
		}
	}

	out := cmd.OutOrStdout()

	switch {
	case flags.dryRun:
		rep := reporter.NewDiffReporter(reporter.Options{
			Writer:      out,
			Color:       colorMode(cmd),
			ShowSummary: true,
			WorkingDir:  workDir,
		})
		if _, err := rep.Report(ctx, result); err != nil {
			return fmt.Errorf("report results: %w", err)
		}

	case flags.check:
		for _, path := range unformattedFiles(result) {
			fmt.Fprintln(out, path)
		}
		if result.Stats.FilesUnformatted > 0 {
			return withExitCode(ExitLintErrors, ErrLintIssuesFound)
		}

	default:
		for _, file := range result.Files {
			if file.Result != nil && file.Result.Written {
				logger.Info("formatted", logging.FieldPath, file.Path)
			}
		}
		logger.Info("format complete",
			logging.FieldFilesProcessed, result.Stats.FilesProcessed,
			logging.FieldFilesModified, result.Stats.FilesModified,
		)
	}

	if result.Stats.FilesErrored > 0 {
		return withExitCode(ExitIOError, fmt.Errorf("%d files could not be formatted", result.Stats.FilesErrored))
	}

	return nil
}

// unformattedFiles lists the files whose formatted output differs from their content.
func unformattedFiles(result *runner.Result) []string {
	var paths []string
	for _, file := range result.Files {
		if file.Result != nil && file.Result.FileResult != nil && file.Result.NeedsFormatting() {
			paths = append(paths, file.Path)
		}
	}
	return paths
}
