package configloader

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/yaklabco/htmlsnob/pkg/config"
	"github.com/yaklabco/htmlsnob/pkg/lint/rules"
)

// flagKeys maps command line flags to the config keys they override.
//
//nolint:gochecknoglobals // Read-only lookup table.
var flagKeys = map[string]string{
	"indent-size":     "indent_size",
	"max-line-length": "max_line_length",
	"dialect":         "template_language",
	"jobs":            "jobs",
	"ignore":          "ignore",
}

// loadDefaults seeds k with the values every layer starts from.
func loadDefaults(k *koanf.Koanf) error {
	defaults := config.NewConfig()
	err := k.Load(confmap.Provider(map[string]any{
		"indent_size":     defaults.IndentSize,
		"max_line_length": defaults.MaxLineLength,
		"backups.enabled": defaults.Backups.Enabled,
		"backups.mode":    defaults.Backups.Mode,
	}, "."), nil)
	if err != nil {
		return fmt.Errorf("load defaults: %w", err)
	}
	return nil
}

// loadFile merges a YAML file into k.
func loadFile(k *koanf.Koanf, path string) error {
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// loadPack merges a built-in pack into k.
func loadPack(k *koanf.Koanf, name string) error {
	pack := rules.PackByName(name)
	if pack == nil {
		return fmt.Errorf("unknown pack %q", name)
	}

	doc, err := yaml.Parser().Unmarshal(pack.YAML)
	if err != nil {
		return fmt.Errorf("parse pack %s: %w", name, err)
	}
	if err := k.Load(confmap.Provider(doc, ""), nil); err != nil {
		return fmt.Errorf("load pack %s: %w", name, err)
	}
	return nil
}

// loadFlags merges the changed flags listed in flagKeys into k.
func loadFlags(k *koanf.Koanf, flags *pflag.FlagSet) error {
	return k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
		if !f.Changed {
			return "", nil
		}
		key, ok := flagKeys[f.Name]
		if !ok {
			return "", nil
		}
		value := posflag.FlagVal(flags, f)
		if s, isString := value.(string); isString {
			value = strings.TrimSpace(s)
		}
		return key, value
	}), nil)
}
