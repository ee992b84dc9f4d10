package fix_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/htmlsnob/pkg/fix"
)

func TestGenerateDiff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		original      string
		modified      string
		wantNil       bool
		wantAdditions int
		wantDeletions int
		wantContains  []string
	}{
		{
			name:     "identical content",
			original: "<div></div>\n",
			modified: "<div></div>\n",
			wantNil:  true,
		},
		{
			name:    "both empty",
			wantNil: true,
		},
		{
			name:          "reindented child",
			original:      "<div>\n<p>a</p>\n</div>\n",
			modified:      "<div>\n  <p>a</p>\n</div>\n",
			wantAdditions: 1,
			wantDeletions: 1,
			wantContains:  []string{"--- a/index.html\n+++ b/index.html\n", "-<p>a</p>\n", "+  <p>a</p>\n", "@@ -1,3 +1,3 @@"},
		},
		{
			name:          "collapsed lines",
			original:      "<div>\n</div>\n",
			modified:      "<div></div>\n",
			wantAdditions: 1,
			wantDeletions: 2,
		},
		{
			name:          "added trailing newline content",
			original:      "<br>\n",
			modified:      "<br>\n<hr>\n",
			wantAdditions: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			diff := fix.GenerateDiff("index.html", []byte(tt.original), []byte(tt.modified))
			if tt.wantNil {
				assert.Nil(t, diff)
				assert.False(t, diff.HasChanges())
				assert.Empty(t, diff.String())
				return
			}

			require.NotNil(t, diff)
			assert.True(t, diff.HasChanges())
			assert.Equal(t, tt.wantAdditions, diff.Additions)
			assert.Equal(t, tt.wantDeletions, diff.Deletions)
			for _, want := range tt.wantContains {
				assert.Contains(t, diff.String(), want)
			}
		})
	}
}

func TestDiff_FullString(t *testing.T) {
	t.Parallel()

	diff := fix.GenerateDiff("/site/index.html", []byte("<p>\n"), []byte("<p></p>\n"))
	require.NotNil(t, diff)

	full := diff.FullString()
	assert.True(t, strings.HasPrefix(full, "diff --git a/site/index.html b/site/index.html\n--- a/site/index.html\n"))

	var nilDiff *fix.Diff
	assert.Empty(t, nilDiff.FullString())
	assert.Empty(t, nilDiff.GitHeader())
}
