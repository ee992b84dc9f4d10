package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/htmlsnob/internal/logging"
	"github.com/yaklabco/htmlsnob/pkg/reporter"
	"github.com/yaklabco/htmlsnob/pkg/runner"
)

// watchDebounce is how long writes must settle before a re-lint.
const watchDebounce = 100 * time.Millisecond

// watch lints everything once, then re-lints files as they are written
// until ctx is cancelled.
func watch(ctx context.Context, lintRunner *runner.Runner, rep reporter.Reporter, opts runner.Options) error {
	logger := logging.FromContext(ctx)

	files, err := runner.Discover(ctx, opts)
	if err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("discover files: %w", err))
	}

	if err := lintAndReport(ctx, lintRunner, rep, files, opts); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range watchDirs(files, opts) {
		if err := watcher.Add(dir); err != nil {
			return withExitCode(ExitIOError, fmt.Errorf("watch %s: %w", dir, err))
		}
		logger.Debug("watching directory", logging.FieldPath, dir)
	}

	logger.Info("watching for changes, press Ctrl+C to stop")

	extensions := opts.LintableExtensions()

	pending := make(map[string]struct{})
	var debounce *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !slices.Contains(extensions, strings.ToLower(filepath.Ext(event.Name))) {
				continue
			}
			pending[event.Name] = struct{}{}

			if debounce == nil {
				debounce = time.NewTimer(watchDebounce)
			} else {
				debounce.Reset(watchDebounce)
			}
			fire = debounce.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", logging.FieldError, err)

		case <-fire:
			fire = nil
			changed := changedFiles(pending)
			clear(pending)
			if len(changed) == 0 {
				continue
			}

			// Discovery applies the ignore globs to the changed files.
			watchOpts := opts
			watchOpts.Paths = changed
			files, err := runner.Discover(ctx, watchOpts)
			if err != nil {
				logger.Warn("discover changed files", logging.FieldError, err)
				continue
			}
			if err := lintAndReport(ctx, lintRunner, rep, files, opts); err != nil {
				logger.Error("lint failed", logging.FieldError, err)
			}
		}
	}
}

func lintAndReport(ctx context.Context, lintRunner *runner.Runner, rep reporter.Reporter, files []string, opts runner.Options) error {
	if len(files) == 0 {
		return nil
	}

	result, err := lintRunner.RunFiles(ctx, files, opts)
	if err != nil {
		return fmt.Errorf("lint run failed: %w", err)
	}
	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}
	return nil
}

// watchDirs returns the directories holding files plus the directories
// named on the command line, so new files there are picked up too.
func watchDirs(files []string, opts runner.Options) []string {
	seen := make(map[string]struct{})
	var dirs []string
	add := func(dir string) {
		if _, ok := seen[dir]; !ok {
			seen[dir] = struct{}{}
			dirs = append(dirs, dir)
		}
	}

	for _, file := range files {
		add(filepath.Dir(file))
	}

	paths := opts.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, path := range paths {
		if !filepath.IsAbs(path) {
			path = filepath.Join(opts.WorkingDir, path)
		}
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			add(filepath.Clean(path))
		}
	}

	slices.Sort(dirs)
	return dirs
}

// changedFiles returns the pending paths that still exist, sorted.
func changedFiles(pending map[string]struct{}) []string {
	files := make([]string, 0, len(pending))
	for path := range pending {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			files = append(files, path)
		}
	}
	slices.Sort(files)
	return files
}
