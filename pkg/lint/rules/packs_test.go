package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/htmlsnob/pkg/dialect"
	"github.com/yaklabco/htmlsnob/pkg/lint"
)

func TestPacksBuild(t *testing.T) {
	t.Parallel()

	for _, pack := range Packs() {
		t.Run(pack.Name, func(t *testing.T) {
			t.Parallel()

			assert.NotEmpty(t, pack.Description)

			cfg, err := pack.Config()
			require.NoError(t, err)
			require.NotEmpty(t, cfg.Rules)
			assert.Positive(t, cfg.IndentSize)
			assert.Positive(t, cfg.MaxLineLength)

			built, err := newTestRegistry().BuildConfig(cfg.Rules)
			require.NoError(t, err)
			assert.Len(t, built, len(cfg.Rules))
		})
	}
}

func TestPackByName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"recommended", "strict", "relaxed"}, PackNames())

	pack := PackByName(DefaultPackName)
	require.NotNil(t, pack)
	assert.Equal(t, "recommended", pack.Name)

	assert.Nil(t, PackByName("pedantic"))
}

func TestRecommendedPack(t *testing.T) {
	t.Parallel()

	cfg, err := PackByName("recommended").Config()
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "clean document",
			input: `<html><head><title>x</title></head><body><img alt="" src="a.png"><br></body></html>`,
		},
		{
			name:  "obsolete tag and unquoted value",
			input: `<center class=a>x</center>`,
			want:  []string{"no_obsolete_tags", "attribute_value_quote_style"},
		},
		{
			name:  "missing alt and duplicate id",
			input: `<p id="a"></p><img id="a" src="x.png">`,
			want:  []string{"attribute_name_requirement", "id_unique"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rules, err := newTestRegistry().BuildConfig(cfg.Rules)
			require.NoError(t, err)

			_, diags := lint.Lint(tt.input, dialect.None, rules)
			names := make([]string, 0, len(diags))
			for _, d := range diags {
				names = append(names, d.RuleName)
			}
			assert.ElementsMatch(t, tt.want, names)
		})
	}
}
