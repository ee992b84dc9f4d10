package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/htmlsnob/internal/logging"
	"github.com/yaklabco/htmlsnob/pkg/config"
	"github.com/yaklabco/htmlsnob/pkg/lint"
	"github.com/yaklabco/htmlsnob/pkg/lint/rules"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
	pack   string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new htmlsnob configuration file",
		Long: `Create a new .htmlsnob.yml configuration file in the current directory,
starting from one of the built-in packs. The file can then be customized to
add or remove rules, change severities and set formatter options.

Examples:
  htmlsnob init                      Create .htmlsnob.yml from the recommended pack
  htmlsnob init --pack strict        Start from the strict pack
  htmlsnob init --full               Append a commented catalogue of every rule kind
  htmlsnob init --format json        Create .htmlsnob.json instead
  htmlsnob init --output -           Print the configuration to stdout`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Append a commented catalogue of every rule kind")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path, - for stdout (default: .htmlsnob.yml or .htmlsnob.json)")
	cmd.Flags().StringVar(&flags.pack, "pack", rules.DefaultPackName,
		"Built-in pack to start from: "+strings.Join(rules.PackNames(), ", "))

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	// Validate format
	if flags.format != "yaml" && flags.format != "json" {
		return withExitCode(ExitInvalidUsage, fmt.Errorf("invalid format %q: must be yaml or json", flags.format))
	}

	pack := rules.PackByName(flags.pack)
	if pack == nil {
		return withExitCode(ExitInvalidUsage, fmt.Errorf("unknown pack %q: must be one of %s",
			flags.pack, strings.Join(rules.PackNames(), ", ")))
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Base:   pack.YAML,
		Full:   flags.full,
		Format: flags.format,
		Rules:  templateRules(lint.DefaultRegistry.Infos()),
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if flags.output == "-" {
		_, err := cmd.OutOrStdout().Write(content)
		return err
	}

	// Determine output path
	outputPath := flags.output
	if outputPath == "" {
		if flags.format == "json" {
			outputPath = ".htmlsnob.json"
		} else {
			outputPath = ".htmlsnob.yml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		switch {
		case flags.force:
			logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
		case isTerminal(cmd.InOrStdin()):
			if !confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), fmt.Sprintf("%s already exists. Overwrite?", outputPath)) {
				return fmt.Errorf("file %q already exists", outputPath)
			}
		default:
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("write file: %w", err))
	}

	logger.Info("created configuration file", logging.FieldOutput, outputPath, logging.FieldName, pack.Name)

	if flags.full {
		logger.Info("the rule catalogue at the end of the file lists every rule kind")
	}

	logger.Info("customize your configuration by editing the file")
	logger.Info("run 'htmlsnob rules' to see all available rules")

	return nil
}

func templateRules(infos []lint.RuleInfo) []config.RuleInfo {
	out := make([]config.RuleInfo, 0, len(infos))
	for _, info := range infos {
		out = append(out, config.RuleInfo{
			Kind:        info.Kind,
			Description: info.Description,
			Fixable:     info.Fixable,
		})
	}
	return out
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// confirm asks a yes/no question; anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
