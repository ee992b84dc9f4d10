// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, layered merging,
// environment variable and flag overrides, key expansion and validation.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/yaklabco/htmlsnob/internal/logging"
	"github.com/yaklabco/htmlsnob/pkg/config"
	"github.com/yaklabco/htmlsnob/pkg/lint"
	"github.com/yaklabco/htmlsnob/pkg/lint/rules"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// Flags contains the parsed command line. Only changed flags are applied.
	Flags *pflag.FlagSet

	// Registry is used to validate rule kinds. Defaults to lint.DefaultRegistry.
	Registry *lint.Registry
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// DefaultPack is the built-in pack used when no file was loaded.
	DefaultPack string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. Changed CLI flags (opts.Flags)
//  2. Environment variables (HTMLSNOB_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.htmlsnob.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/htmlsnob/config.yaml)
//  6. System config (/etc/htmlsnob/config.yaml)
//  7. The recommended pack, only when none of 3-6 exist
//  8. Defaults
//
// Nested maps merge key by key; lists, the rule list included, are replaced
// by the higher layer. Expansions are applied once after all layers merged.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, err
	}

	layers := []struct {
		name string
		path string
		skip bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}
	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}
		if err := loadFile(k, layer.path); err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		logger.Debug("loaded config", logging.FieldPath, layer.path, "layer", layer.name)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if len(result.LoadedFrom) == 0 {
		if err := loadPack(k, rules.DefaultPackName); err != nil {
			return nil, err
		}
		result.DefaultPack = rules.DefaultPackName
		logger.Debug("no config file found, using built-in pack", "pack", rules.DefaultPackName)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(k); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.Flags != nil {
		if err := loadFlags(k, opts.Flags); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	cfg, err := config.Decode(config.Expand(k.Raw()))
	if err != nil {
		return nil, err
	}

	registry := opts.Registry
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	validation := ValidateWithFile(cfg, registry, lastLoaded(result.LoadedFrom))
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// LoadFile loads a single configuration file with defaults and expansion
// applied, without discovery or overrides.
func LoadFile(path string) (*config.Config, error) {
	k := koanf.New(".")
	if err := loadDefaults(k); err != nil {
		return nil, err
	}
	if err := loadFile(k, path); err != nil {
		return nil, err
	}
	return config.Decode(config.Expand(k.Raw()))
}

func lastLoaded(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	return paths[len(paths)-1]
}
