package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Discover finds the documents to lint and returns their absolute paths,
// sorted and deduplicated.
//
// Directories in opts.Paths are walked for files with a lintable extension.
// Files named directly are kept whatever their extension, unless an exclude
// glob matches them.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	exclude, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("exclude: %w", err)
	}
	include, err := compileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("include: %w", err)
	}

	w := &walker{
		ctx:        ctx,
		workDir:    workDir,
		extensions: opts.LintableExtensions(),
		exclude:    exclude,
		include:    include,
		opts:       opts,
		seen:       make(map[string]struct{}),
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if info.IsDir() {
			if err := w.walk(abs); err != nil {
				return nil, err
			}
			continue
		}
		if !exclude.match(w.rel(abs)) {
			w.add(abs)
		}
	}

	slices.Sort(w.files)
	return w.files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walker collects documents below one or more directory roots.
type walker struct {
	ctx        context.Context
	workDir    string
	extensions []string
	exclude    globSet
	include    globSet
	opts       Options
	seen       map[string]struct{}
	files      []string
}

func (w *walker) walk(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		switch {
		case entry.IsDir():
			if w.skipDir(path, entry.Name(), path == root) {
				return filepath.SkipDir
			}
		case entry.Type()&fs.ModeSymlink != 0:
			return w.symlink(path, entry.Name())
		default:
			w.consider(path, entry.Name())
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// skipDir reports whether a directory is pruned. Roots the user named are
// only subject to exclude globs.
func (w *walker) skipDir(path, name string, isRoot bool) bool {
	rel := w.rel(path)
	if w.exclude.match(rel) {
		return true
	}
	if isRoot {
		return false
	}
	if strings.HasPrefix(name, ".") {
		return true
	}
	return !w.opts.IncludeVendored && enry.IsVendor(filepath.ToSlash(rel)+"/")
}

// symlink handles a link met while walking. Broken links are skipped; links
// to directories are walked only with FollowSymlinks.
func (w *walker) symlink(path, name string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // Broken links are skipped.
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // Unreadable targets are skipped.
	}
	if !info.IsDir() {
		w.consider(path, name)
		return nil
	}
	if !w.opts.FollowSymlinks || w.skipDir(path, name, false) {
		return nil
	}
	// WalkDir does not follow links, so walk the resolved target instead.
	return w.walk(target)
}

func (w *walker) consider(path, name string) {
	if strings.HasPrefix(name, ".") {
		return
	}
	if !slices.Contains(w.extensions, strings.ToLower(filepath.Ext(name))) {
		return
	}
	rel := w.rel(path)
	if w.exclude.match(rel) {
		return
	}
	if !w.include.empty() && !w.include.match(rel) {
		return
	}
	w.add(path)
}

func (w *walker) add(path string) {
	if _, dup := w.seen[path]; dup {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

func (w *walker) rel(path string) string {
	rel, err := filepath.Rel(w.workDir, path)
	if err != nil {
		return path
	}
	return rel
}
