package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/htmlsnob/pkg/runner"
)

func TestWatchDirs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	pages := filepath.Join(root, "pages")
	partials := filepath.Join(root, "partials")
	require.NoError(t, os.MkdirAll(pages, 0o755))
	require.NoError(t, os.MkdirAll(partials, 0o755))

	files := []string{
		filepath.Join(pages, "b.html"),
		filepath.Join(pages, "a.html"),
		filepath.Join(partials, "nav.hbs"),
	}

	dirs := watchDirs(files, runner.Options{WorkingDir: root, Paths: []string{".", "missing", "pages/a.html"}})
	assert.Equal(t, []string{root, pages, partials}, dirs)
}

func TestWatchDirs_DefaultsToWorkingDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	assert.Equal(t, []string{root}, watchDirs(nil, runner.Options{WorkingDir: root}))
}

func TestChangedFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	kept := filepath.Join(root, "b.html")
	other := filepath.Join(root, "a.html")
	require.NoError(t, os.WriteFile(kept, []byte("<p>b</p>\n"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("<p>a</p>\n"), 0o644))

	pending := make(map[string]struct{})
	for _, path := range []string{kept, other, filepath.Join(root, "gone.html"), root} {
		pending[path] = struct{}{}
	}

	assert.Equal(t, []string{other, kept}, changedFiles(pending))
}
