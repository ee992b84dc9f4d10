// Package runner provides multi-file linting orchestration.
package runner

import (
	"slices"

	"github.com/yaklabco/htmlsnob/pkg/config"
	"github.com/yaklabco/htmlsnob/pkg/dialect"
)

// Options controls multi-file linting behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// picked up while walking directories. Defaults to LintableExtensions().
	// Files named explicitly in Paths are always processed.
	Extensions []string

	// IncludeGlobs are additional glob patterns to include, relative to WorkingDir.
	// Empty means "include everything that matches Extensions".
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	// These merge ignore rules from config and CLI (e.g. --ignore).
	ExcludeGlobs []string

	// IncludeVendored disables skipping of vendored directories such as
	// node_modules and bower_components while walking.
	IncludeVendored bool

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// htmlExtensions are always lintable, whatever the dialect.
//
//nolint:gochecknoglobals // Static lookup table.
var htmlExtensions = []string{".html", ".htm"}

// DefaultExtensions returns HTML extensions plus every extension with a
// known template dialect, sorted.
func DefaultExtensions() []string {
	exts := append(slices.Clone(htmlExtensions), dialect.Extensions()...)
	slices.Sort(exts)
	return exts
}

// LintableExtensions returns the extensions picked up while walking.
// Explicit Extensions win. Otherwise a configured template_language narrows
// the set to HTML plus that dialect's own extensions; "none" leaves HTML only.
func (o Options) LintableExtensions() []string {
	if len(o.Extensions) > 0 {
		return o.Extensions
	}
	if o.Config == nil || o.Config.TemplateLanguage == "" {
		return DefaultExtensions()
	}
	d, err := dialect.Parse(o.Config.TemplateLanguage)
	if err != nil {
		return DefaultExtensions()
	}
	exts := append(slices.Clone(htmlExtensions), dialect.ExtensionsOf(d)...)
	slices.Sort(exts)
	return exts
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
