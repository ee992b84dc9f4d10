package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/htmlsnob/internal/configloader"
	"github.com/yaklabco/htmlsnob/internal/logging"
	"github.com/yaklabco/htmlsnob/pkg/config"
	"github.com/yaklabco/htmlsnob/pkg/lint"
	"github.com/yaklabco/htmlsnob/pkg/runner"
)

// sourceFlags are the flags lint and format share. The config loader reads
// the ones that override config keys straight from the flag set, so these
// fields only hold what cobra parsed.
type sourceFlags struct {
	ignore        []string
	dialect       string
	indentSize    int
	maxLineLength int
	jobs          int
	noBackups     bool
}

func addSourceFlags(cmd *cobra.Command, flags *sourceFlags) {
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringVar(&flags.dialect, "dialect", "",
		"template language for every file: none, handlebars, jinja2, liquid, mustache, twig, eex, erb, go (default: by extension)")
	cmd.Flags().IntVar(&flags.indentSize, "indent-size", config.DefaultIndentSize, "spaces per nesting level in formatted output")
	cmd.Flags().IntVar(&flags.maxLineLength, "max-line-length", config.DefaultMaxLineLength,
		"width the formatter tries to stay within")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation when writing files")
}

// loadConfig resolves the configuration for cmd from files, the
// environment and changed flags. It also returns the working directory.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Flags:        cmd.Flags(),
	})
	if err != nil {
		return nil, "", withExitCode(ExitConfigError, fmt.Errorf("load configuration: %w", err))
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	} else {
		logger.Debug("using built-in pack", "pack", loadResult.DefaultPack)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldRules, len(cfg.Rules),
		"indent_size", cfg.IndentSize,
		"max_line_length", cfg.MaxLineLength,
		"template_language", cfg.TemplateLanguage,
		logging.FieldJobs, cfg.Jobs,
	)

	return cfg, workDir, nil
}

// newRunner builds the runner over the built-in rule registry.
func newRunner() *runner.Runner {
	engine := lint.NewEngine(lint.DefaultRegistry)
	return runner.New(lint.NewPipeline(engine))
}

func runnerOptions(args []string, workDir string, cfg *config.Config) runner.Options {
	return runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Config:       cfg,
	}
}

// colorMode reads the root --color flag.
func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}
