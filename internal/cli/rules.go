package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/htmlsnob/internal/logging"
	"github.com/yaklabco/htmlsnob/pkg/lint"
	"github.com/yaklabco/htmlsnob/pkg/lint/rules"
)

type rulesFlags struct {
	format string
	packs  bool
}

const formatJSON = "json"

// ruleInfo represents a rule kind in JSON output.
type ruleInfo struct {
	Kind        string `json:"kind"`
	Description string `json:"description"`
	Fixable     bool   `json:"fixable"`
}

// packInfo represents a built-in pack in JSON output.
type packInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available rule kinds",
		Long: `List every rule kind that can appear in the rules list of a configuration,
with a description and whether it rewrites the markup it reports on.

With --packs, list the built-in configuration packs instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if flags.packs {
				if flags.format == formatJSON {
					return writeJSON(out, packInfos())
				}
				logger := logging.NewInteractive()
				for _, pack := range rules.Packs() {
					logger.Info(pack.Name, logging.FieldDescription, pack.Description)
				}
				return nil
			}

			infos := lint.DefaultRegistry.Infos()

			if flags.format == formatJSON {
				return writeJSON(out, ruleInfos(infos))
			}

			logger := logging.NewInteractive()

			if len(infos) == 0 {
				logger.Info("no rules registered")
				return nil
			}

			logger.Info("available rules")

			for _, info := range infos {
				fixable := "-"
				if info.Fixable {
					fixable = "yes"
				}

				logger.Info(info.Kind,
					logging.FieldFixable, fixable,
					logging.FieldDescription, info.Description,
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().BoolVar(&flags.packs, "packs", false, "list built-in configuration packs")

	return cmd
}

func ruleInfos(infos []lint.RuleInfo) []ruleInfo {
	out := make([]ruleInfo, 0, len(infos))
	for _, info := range infos {
		out = append(out, ruleInfo{
			Kind:        info.Kind,
			Description: info.Description,
			Fixable:     info.Fixable,
		})
	}
	return out
}

func packInfos() []packInfo {
	packs := rules.Packs()
	out := make([]packInfo, 0, len(packs))
	for _, pack := range packs {
		out = append(out, packInfo{Name: pack.Name, Description: pack.Description})
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
