package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/htmlsnob/pkg/config"
)

func TestExpand(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"expansions": map[string]any{
			"void_tags": []any{"br", "hr"},
			"headings":  []any{"h1", "h2"},
		},
		"rules": []any{
			map[string]any{
				"kind":        "missing_close_tag_disallowed",
				"except_tags": "void_tags",
			},
			map[string]any{
				"kind": "tag_name_blacklist",
				"tags": []any{"center", "void_tags", []any{"font"}},
			},
			map[string]any{
				"kind": "child_blacklist",
				"tags": map[string]any{"headings": []any{"div"}},
			},
		},
	}

	got := config.Expand(doc)

	rules := got["rules"].([]any)
	assert.Equal(t, []any{"br", "hr"}, rules[0].(map[string]any)["except_tags"])
	assert.Equal(t, []any{"center", "br", "hr", "font"}, rules[1].(map[string]any)["tags"])
	assert.Equal(t, map[string]any{
		"h1": []any{"div"},
		"h2": []any{"div"},
	}, rules[2].(map[string]any)["tags"])

	assert.Equal(t, []any{"br", "hr"}, got["expansions"].(map[string]any)["void_tags"],
		"the expansions section is kept as written")
}

func TestExpand_KeyCollisionIsDeterministic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		group string
		want  map[string]any
	}{
		{
			name:  "expansion sorts after literal key",
			group: "headings",
			want:  map[string]any{"h1": []any{"div"}, "h2": []any{"div"}},
		},
		{
			name:  "expansion sorts before literal key",
			group: "all_headings",
			want:  map[string]any{"h1": []any{"p"}, "h2": []any{"div"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for range 50 {
				doc := map[string]any{
					"expansions": map[string]any{tt.group: []any{"h1", "h2"}},
					"tags": map[string]any{
						"h1":     []any{"p"},
						tt.group: []any{"div"},
					},
				}
				require.Equal(t, tt.want, config.Expand(doc)["tags"])
			}
		})
	}
}

func TestExpand_NoTable(t *testing.T) {
	t.Parallel()

	doc := map[string]any{"rules": []any{"void_tags"}}
	assert.Equal(t, map[string]any{"rules": []any{"void_tags"}}, config.Expand(doc))
}

func TestFromYAML_Expands(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML([]byte(`
expansions:
  void_tags: [br, img]
rules:
  - kind: missing_close_tag_disallowed
    except_tags: void_tags
`))
	require.NoError(t, err)

	require.Len(t, cfg.Rules, 1)
	assert.Equal(t, []any{"br", "img"}, cfg.Rules[0].Options["except_tags"])
	assert.Equal(t, map[string][]string{"void_tags": {"br", "img"}}, cfg.Expansions)
}

func TestDecode_WeakTyping(t *testing.T) {
	t.Parallel()

	cfg, err := config.Decode(map[string]any{
		"indent_size": "4",
		"jobs":        "2",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.IndentSize)
	assert.Equal(t, 2, cfg.Jobs)
	assert.Equal(t, config.DefaultMaxLineLength, cfg.MaxLineLength)
}
