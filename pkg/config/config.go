// Package config defines core configuration types for htmlsnob.
// These types are pure data structures; layering and discovery live in internal/configloader.
package config

import (
	"fmt"
	"strings"
)

// Defaults for the formatter options.
const (
	DefaultIndentSize    = 2
	DefaultMaxLineLength = 80
)

// Severity represents the severity level of a lint diagnostic.
type Severity string

const (
	SeverityError       Severity = "error"
	SeverityWarning     Severity = "warning"
	SeverityInformation Severity = "information"
	SeverityHint        Severity = "hint"
)

// ParseSeverity converts a configuration value into a Severity.
// The empty string yields SeverityError.
func ParseSeverity(s string) (Severity, error) {
	switch sev := Severity(strings.ToLower(strings.TrimSpace(s))); sev {
	case "":
		return SeverityError, nil
	case SeverityError, SeverityWarning, SeverityInformation, SeverityHint:
		return sev, nil
	case "info":
		return SeverityInformation, nil
	default:
		return "", fmt.Errorf("unknown severity %q", s)
	}
}

// Rank orders severities from most (1) to least (4) important.
func (s Severity) Rank() int {
	switch s {
	case SeverityError, "":
		return 1
	case SeverityWarning:
		return 2
	case SeverityInformation:
		return 3
	default:
		return 4
	}
}

// Options are the settings the parser and formatter read directly.
type Options struct {
	// IndentSize is the number of spaces per nesting level.
	IndentSize int `mapstructure:"indent_size" yaml:"indent_size"`

	// MaxLineLength is the width the formatter tries to stay within.
	MaxLineLength int `mapstructure:"max_line_length" yaml:"max_line_length"`

	// TemplateLanguage forces a dialect for every file. When empty the
	// dialect is chosen per file from its extension.
	TemplateLanguage string `mapstructure:"template_language" yaml:"template_language,omitempty"`
}

// DefaultOptions returns the formatter defaults.
func DefaultOptions() Options {
	return Options{
		IndentSize:    DefaultIndentSize,
		MaxLineLength: DefaultMaxLineLength,
	}
}

// RuleConfig is one entry of the ordered rule list.
// Kind selects the rule implementation; everything not named here is passed
// to the rule as its options.
type RuleConfig struct {
	Kind         string         `mapstructure:"kind" yaml:"kind"`
	Name         string         `mapstructure:"name" yaml:"name,omitempty"`
	Severity     string         `mapstructure:"severity" yaml:"severity,omitempty"`
	ErrorMessage string         `mapstructure:"error_message" yaml:"error_message,omitempty"`
	Options      map[string]any `mapstructure:",remain" yaml:",inline"`
}

// DisplayName returns the configured name, falling back to the kind.
func (rc RuleConfig) DisplayName() string {
	if rc.Name != "" {
		return rc.Name
	}
	return rc.Kind
}

// Raw flattens the entry back into the map a rule decodes its options from.
func (rc RuleConfig) Raw() map[string]any {
	raw := make(map[string]any, len(rc.Options)+4)
	for k, v := range rc.Options {
		raw[k] = v
	}
	raw["kind"] = rc.Kind
	if rc.Name != "" {
		raw["name"] = rc.Name
	}
	if rc.Severity != "" {
		raw["severity"] = rc.Severity
	}
	if rc.ErrorMessage != "" {
		raw["error_message"] = rc.ErrorMessage
	}
	return raw
}

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode"` // "sidecar" or "none"
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "no-inline-handlers"
	RuleFormatKind     RuleFormat = "kind"     // "attribute_name_blacklist"
	RuleFormatCombined RuleFormat = "combined" // "attribute_name_blacklist/no-inline-handlers"
)

// Config is the root configuration structure for htmlsnob.
type Config struct {
	Options `mapstructure:",squash" yaml:",inline"`

	// Expansions maps a name to the list it stands for anywhere else in the document.
	Expansions map[string][]string `mapstructure:"expansions" yaml:"expansions,omitempty"`

	// Rules is the ordered rule list. Rules run in this order on every node.
	Rules []RuleConfig `mapstructure:"rules" yaml:"rules"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// Backups configures backup behavior when fixing.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups"`

	// Jobs specifies the number of parallel workers. 0 means GOMAXPROCS.
	Jobs int `mapstructure:"jobs" yaml:"jobs,omitempty"`

	// CLI-level options (not persisted to config files).

	// Fix writes formatted output back to the files.
	Fix bool `mapstructure:"-" yaml:"-"`

	// DryRun shows what would be fixed without making changes.
	DryRun bool `mapstructure:"-" yaml:"-"`

	// Check reports files that are not formatted.
	Check bool `mapstructure:"-" yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `mapstructure:"-" yaml:"-"`

	// EnableRules restricts the rule list to these names or kinds.
	EnableRules []string `mapstructure:"-" yaml:"-"`

	// DisableRules removes rules with these names or kinds.
	DisableRules []string `mapstructure:"-" yaml:"-"`

	// NoBackups disables backup creation when fixing.
	NoBackups bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Options: DefaultOptions(),
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format:     FormatText,
		RuleFormat: RuleFormatName,
	}
}

// ActiveRules returns the rule entries left after applying EnableRules and DisableRules.
func (c *Config) ActiveRules() []RuleConfig {
	matches := func(list []string, rc RuleConfig) bool {
		for _, key := range list {
			if key == rc.Kind || key == rc.Name {
				return true
			}
		}
		return false
	}

	out := make([]RuleConfig, 0, len(c.Rules))
	for _, rc := range c.Rules {
		if len(c.EnableRules) > 0 && !matches(c.EnableRules, rc) {
			continue
		}
		if matches(c.DisableRules, rc) {
			continue
		}
		out = append(out, rc)
	}
	return out
}
