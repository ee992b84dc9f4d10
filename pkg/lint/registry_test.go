package lint

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/htmlsnob/pkg/config"
)

// optionRule exercises option decoding.
type optionRule struct {
	BaseRule `mapstructure:",squash"`

	Pattern *regexp.Regexp            `mapstructure:"pattern"`
	Tags    map[string]*regexp.Regexp `mapstructure:"tags"`
	Limit   int                       `mapstructure:"limit"`
	Autofix bool                      `mapstructure:"autofix"`
}

func (r *optionRule) Prepare() error {
	if r.Limit < 0 {
		return errors.New("limit must not be negative")
	}
	return nil
}

func newOptionRegistry() *Registry {
	reg := NewRegistry()
	reg.Register(RuleInfo{
		Kind:        "option_rule",
		Description: "test rule",
		Fixable:     true,
		New:         func() Rule { return &optionRule{Limit: 3} },
	})
	return reg
}

func TestRegistry_Register_And_Get(t *testing.T) {
	reg := newOptionRegistry()

	info, ok := reg.Get("option_rule")
	require.True(t, ok)
	assert.Equal(t, "test rule", info.Description)
	assert.True(t, info.Fixable)
	assert.True(t, reg.Has("option_rule"))

	_, ok = reg.Get("nonexistent")
	assert.False(t, ok)
	assert.False(t, reg.Has("nonexistent"))
}

func TestRegistry_Register_Replaces(t *testing.T) {
	reg := newOptionRegistry()
	reg.Register(RuleInfo{Kind: "option_rule", Description: "replaced"})

	info, ok := reg.Get("option_rule")
	require.True(t, ok)
	assert.Equal(t, "replaced", info.Description)
	assert.Len(t, reg.Infos(), 1)
}

func TestRegistry_Kinds_Sorted(t *testing.T) {
	reg := NewRegistry()
	for _, kind := range []string{"tag_name_casing", "id_unique", "attributes_order"} {
		reg.Register(RuleInfo{Kind: kind})
	}

	assert.Equal(t, []string{"attributes_order", "id_unique", "tag_name_casing"}, reg.Kinds())
}

func TestRegistry_New(t *testing.T) {
	reg := newOptionRegistry()

	rule, err := reg.New(map[string]any{
		"kind":     "option_rule",
		"name":     "custom",
		"severity": "warning",
		"pattern":  "^data-",
		"tags":     map[string]any{"a": "^/", "img": "\\.png$"},
		"limit":    "7",
	})
	require.NoError(t, err)

	opt, ok := rule.(*optionRule)
	require.True(t, ok)
	assert.Equal(t, "custom", opt.Name())
	assert.Equal(t, "option_rule", opt.Kind())
	assert.Equal(t, config.SeverityWarning, opt.Severity())
	assert.True(t, opt.Pattern.MatchString("data-id"))
	assert.True(t, opt.Tags["img"].MatchString("a.png"))
	assert.Equal(t, 7, opt.Limit, "weakly typed input")
	assert.False(t, opt.Autofix)
}

func TestRegistry_New_Defaults(t *testing.T) {
	reg := newOptionRegistry()

	rule, err := reg.New(map[string]any{"kind": "option_rule"})
	require.NoError(t, err)

	opt := rule.(*optionRule)
	assert.Equal(t, 3, opt.Limit, "factory defaults survive decoding")
	assert.Equal(t, "option_rule", opt.Name(), "name falls back to kind")
	assert.Equal(t, config.SeverityError, opt.Severity())
}

func TestRegistry_New_Errors(t *testing.T) {
	tests := []struct {
		name    string
		raw     map[string]any
		wantIs  error
		wantMsg string
	}{
		{
			name:   "missing kind",
			raw:    map[string]any{"name": "x"},
			wantIs: ErrMissingKind,
		},
		{
			name:    "unknown kind",
			raw:     map[string]any{"kind": "no_such_rule"},
			wantIs:  ErrUnknownKind,
			wantMsg: "Unknown Rule of kind: no_such_rule",
		},
		{
			name:    "unknown option",
			raw:     map[string]any{"kind": "option_rule", "colour": "red"},
			wantMsg: "colour",
		},
		{
			name:    "invalid regexp",
			raw:     map[string]any{"kind": "option_rule", "pattern": "(["},
			wantMsg: "invalid regexp",
		},
		{
			name:    "prepare failure",
			raw:     map[string]any{"kind": "option_rule", "limit": -1},
			wantMsg: "option_rule: limit must not be negative",
		},
	}

	reg := newOptionRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.New(tt.raw)
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestRegistry_Build(t *testing.T) {
	reg := newOptionRegistry()

	rules, err := reg.Build([]map[string]any{
		{"kind": "option_rule", "name": "first"},
		{"kind": "option_rule", "name": "second"},
	})
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "first", rules[0].Name())
	assert.Equal(t, "second", rules[1].Name())

	_, err = reg.Build([]map[string]any{
		{"kind": "option_rule"},
		{"kind": "missing_rule"},
	})
	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, 1, buildErr.Index)
	assert.Equal(t, "missing_rule", buildErr.Kind)
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Contains(t, err.Error(), "rules[1]")
}

func TestRegistry_BuildConfig(t *testing.T) {
	reg := newOptionRegistry()

	rules, err := reg.BuildConfig([]config.RuleConfig{
		{Kind: "option_rule", Name: "custom", Options: map[string]any{"limit": 5}},
	})
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, 5, rules[0].(*optionRule).Limit)

	_, err = reg.BuildConfig([]config.RuleConfig{{Name: "nameless"}})
	assert.ErrorIs(t, err, ErrMissingKind)
}

func TestDecodeOptions_RegexpList(t *testing.T) {
	var target struct {
		Order []*regexp.Regexp `mapstructure:"order"`
	}

	err := DecodeOptions(map[string]any{"order": []any{"class", "data-.+"}}, &target)
	require.NoError(t, err)
	require.Len(t, target.Order, 2)
	assert.True(t, target.Order[1].MatchString("data-id"))
	assert.True(t, target.Order[0].MatchString("subclass"), "patterns are unanchored")
}
