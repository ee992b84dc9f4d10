package runner

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// globSet matches slash-separated paths relative to the working directory.
//
// A pattern matches a path, anything below it, or (when it has no slash)
// the base name alone. A leading "**/" also matches at the top level, so
// "**/drafts" skips both "drafts" and "site/drafts".
type globSet struct {
	paths     []glob.Glob
	basenames []glob.Glob
}

// CheckGlob reports whether pattern is a usable ignore or include glob.
func CheckGlob(pattern string) error {
	_, err := compileGlobs([]string{pattern})
	return err
}

func compileGlobs(patterns []string) (globSet, error) {
	var set globSet
	for _, pattern := range patterns {
		normalized := normalizeGlob(pattern)
		if normalized == "" {
			continue
		}
		for _, variant := range globVariants(normalized) {
			g, err := glob.Compile(variant, '/')
			if err != nil {
				return globSet{}, fmt.Errorf("invalid glob %q: %w", pattern, err)
			}
			set.paths = append(set.paths, g)
		}
		if !strings.Contains(normalized, "/") {
			g, err := glob.Compile(normalized, '/')
			if err != nil {
				return globSet{}, fmt.Errorf("invalid glob %q: %w", pattern, err)
			}
			set.basenames = append(set.basenames, g)
		}
	}
	return set, nil
}

func normalizeGlob(pattern string) string {
	p := filepath.ToSlash(strings.TrimSpace(pattern))
	p = strings.TrimPrefix(p, "./")
	return strings.TrimSuffix(p, "/")
}

func globVariants(p string) []string {
	roots := []string{p}
	if rest, ok := strings.CutPrefix(p, "**/"); ok && rest != "" {
		roots = append(roots, rest)
	}
	variants := make([]string, 0, 2*len(roots))
	for _, root := range roots {
		variants = append(variants, root)
		if dir, ok := strings.CutSuffix(root, "/**"); ok {
			variants = append(variants, dir)
		} else {
			variants = append(variants, root+"/**")
		}
	}
	return variants
}

func (s globSet) empty() bool {
	return len(s.paths) == 0 && len(s.basenames) == 0
}

func (s globSet) match(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, g := range s.paths {
		if g.Match(rel) {
			return true
		}
	}
	base := path.Base(rel)
	for _, g := range s.basenames {
		if g.Match(base) {
			return true
		}
	}
	return false
}
