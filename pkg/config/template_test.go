package config_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/htmlsnob/pkg/config"
)

const templateBase = `indent_size: 4
rules:
  - kind: id_unique
`

var templateRules = []config.RuleInfo{
	{Kind: "tag_name_casing", Description: "Enforces a case style for tag names", Fixable: true},
	{Kind: "id_unique", Description: "Ids must be unique within a document"},
}

func TestGenerateTemplate_Minimal(t *testing.T) {
	t.Parallel()

	out, err := config.GenerateTemplate(config.TemplateOptions{Base: []byte(templateBase), Rules: templateRules})
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasPrefix(text, config.DefaultTemplateHeader()))
	assert.Contains(t, text, "indent_size: 4")
	assert.NotContains(t, text, "Available rule kinds")

	cfg, err := config.FromYAML(out)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.IndentSize)
	require.Len(t, cfg.Rules, 1)
}

func TestGenerateTemplate_KeepsExistingHeader(t *testing.T) {
	t.Parallel()

	base := "# my pack\n" + templateBase
	out, err := config.GenerateTemplate(config.TemplateOptions{Base: []byte(base)})
	require.NoError(t, err)
	assert.Equal(t, base, string(out))
}

func TestGenerateTemplate_Full(t *testing.T) {
	t.Parallel()

	out, err := config.GenerateTemplate(config.TemplateOptions{
		Base:  []byte(templateBase),
		Full:  true,
		Rules: templateRules,
	})
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "#  - kind: id_unique")
	assert.Contains(t, text, "#  - kind: tag_name_casing")
	assert.Contains(t, text, "# Auto-fix: yes")
	assert.Less(t, strings.Index(text, "kind: id_unique\n#"), strings.Index(text, "kind: tag_name_casing"),
		"catalogue is sorted by kind")

	// The catalogue is all comments, so the document still decodes to the base.
	cfg, err := config.FromYAML(out)
	require.NoError(t, err)
	assert.Len(t, cfg.Rules, 1)
}

func TestGenerateTemplate_IncludeRules(t *testing.T) {
	t.Parallel()

	out, err := config.GenerateTemplate(config.TemplateOptions{
		Base:         []byte(templateBase),
		Full:         true,
		Rules:        templateRules,
		IncludeRules: []string{"tag_name_casing"},
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "#  - kind: tag_name_casing")
	assert.NotContains(t, string(out), "#  - kind: id_unique")
}

func TestGenerateTemplate_JSON(t *testing.T) {
	t.Parallel()

	out, err := config.GenerateTemplate(config.TemplateOptions{Base: []byte(templateBase), Format: "json", Full: true})
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.EqualValues(t, 4, doc["indent_size"])
	assert.Len(t, doc["rules"], 1)
}

func TestGenerateTemplate_Errors(t *testing.T) {
	t.Parallel()

	_, err := config.GenerateTemplate(config.TemplateOptions{})
	require.Error(t, err)

	_, err = config.GenerateTemplate(config.TemplateOptions{Base: []byte("rules: [\n")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base configuration")
}
