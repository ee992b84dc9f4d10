package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/yaklabco/htmlsnob/pkg/config"
	"github.com/yaklabco/htmlsnob/pkg/lint"
)

// newProject creates a temp directory that upward discovery will not leave.
func newProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("create .git: %v", err)
	}
	return dir
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_DefaultPack(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(newProject(t)))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.DefaultPack != "recommended" {
		t.Errorf("DefaultPack = %q, want recommended", result.DefaultPack)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("LoadedFrom = %v, want none", result.LoadedFrom)
	}
	if len(result.Config.Rules) == 0 {
		t.Fatal("expected rules from the default pack")
	}
	if result.Config.IndentSize != config.DefaultIndentSize {
		t.Errorf("IndentSize = %d, want %d", result.Config.IndentSize, config.DefaultIndentSize)
	}

	// The pack's void_tags expansion must already be applied.
	for _, rc := range result.Config.Rules {
		if rc.Kind != "missing_close_tag_disallowed" {
			continue
		}
		tags, ok := rc.Options["except_tags"].([]any)
		if !ok || !slices.Contains(tags, any("br")) {
			t.Errorf("except_tags = %v, want expanded void tags", rc.Options["except_tags"])
		}
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeConfig(t, filepath.Join(dir, ".htmlsnob.yml"), `
indent_size: 4
expansions:
  legacy: [font, center]
rules:
  - kind: tag_name_blacklist
    name: no_legacy
    tags: legacy
`)

	result, err := Load(context.Background(), isolated(dir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.DefaultPack != "" {
		t.Errorf("DefaultPack = %q, want none when a project config exists", result.DefaultPack)
	}
	if len(result.LoadedFrom) != 1 || filepath.Base(result.LoadedFrom[0]) != ".htmlsnob.yml" {
		t.Errorf("LoadedFrom = %v", result.LoadedFrom)
	}

	cfg := result.Config
	if cfg.IndentSize != 4 {
		t.Errorf("IndentSize = %d, want 4", cfg.IndentSize)
	}
	if cfg.MaxLineLength != config.DefaultMaxLineLength {
		t.Errorf("MaxLineLength = %d, want default", cfg.MaxLineLength)
	}
	if !cfg.Backups.Enabled || cfg.Backups.Mode != "sidecar" {
		t.Errorf("Backups = %+v, want defaults", cfg.Backups)
	}
	if len(cfg.Rules) != 1 {
		t.Fatalf("Rules = %d, want 1", len(cfg.Rules))
	}
	if got := cfg.Rules[0].Options["tags"]; !equalAny(got, []any{"font", "center"}) {
		t.Errorf("tags = %v, want expanded list", got)
	}
}

func TestLoad_UpwardSearch(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeConfig(t, filepath.Join(dir, "htmlsnob.yaml"), "max_line_length: 120\nrules: []\n")

	sub := filepath.Join(dir, "templates", "partials")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(sub))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.MaxLineLength != 120 {
		t.Errorf("MaxLineLength = %d, want 120", result.Config.MaxLineLength)
	}
	if len(result.Config.Rules) != 0 {
		t.Errorf("Rules = %v, want the empty list from the file", result.Config.Rules)
	}
}

func TestLoad_ExplicitOverridesProject(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeConfig(t, filepath.Join(dir, ".htmlsnob.yml"), `
indent_size: 4
rules:
  - kind: id_unique
  - kind: class_casing_style
    style: kebab-case
`)
	explicit := filepath.Join(dir, "ci", "strict.yml")
	writeConfig(t, explicit, `
max_line_length: 100
rules:
  - kind: tag_name_casing
    style: lower
`)

	opts := isolated(dir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.IndentSize != 4 {
		t.Errorf("IndentSize = %d, want 4 from the project layer", cfg.IndentSize)
	}
	if cfg.MaxLineLength != 100 {
		t.Errorf("MaxLineLength = %d, want 100 from the explicit layer", cfg.MaxLineLength)
	}
	if len(cfg.Rules) != 1 || cfg.Rules[0].Kind != "tag_name_casing" {
		t.Errorf("Rules = %+v, want the explicit list to replace the project list", cfg.Rules)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != explicit {
		t.Errorf("LoadedFrom = %v", result.LoadedFrom)
	}
}

func TestLoad_Env(t *testing.T) {
	dir := newProject(t)
	writeConfig(t, filepath.Join(dir, ".htmlsnob.yml"), "indent_size: 4\nrules: []\n")

	t.Setenv("HTMLSNOB_INDENT_SIZE", "8")
	t.Setenv("HTMLSNOB_TEMPLATE_LANGUAGE", "jinja2")
	t.Setenv("HTMLSNOB_IGNORE", "vendor/**, dist/*.html")
	t.Setenv("HTMLSNOB_UNRELATED", "x")

	opts := isolated(dir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.IndentSize != 8 {
		t.Errorf("IndentSize = %d, want 8", cfg.IndentSize)
	}
	if cfg.TemplateLanguage != "jinja2" {
		t.Errorf("TemplateLanguage = %q, want jinja2", cfg.TemplateLanguage)
	}
	if !slices.Equal(cfg.Ignore, []string{"vendor/**", "dist/*.html"}) {
		t.Errorf("Ignore = %v", cfg.Ignore)
	}
}

func TestLoad_Flags(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeConfig(t, filepath.Join(dir, ".htmlsnob.yml"), "indent_size: 4\nmax_line_length: 90\nrules: []\n")

	flags := pflag.NewFlagSet("lint", pflag.ContinueOnError)
	flags.Int("indent-size", 2, "")
	flags.Int("max-line-length", 80, "")
	flags.String("dialect", "", "")
	flags.StringSlice("ignore", nil, "")
	flags.Bool("fix", false, "")
	if err := flags.Parse([]string{"--indent-size=3", "--dialect", "twig", "--ignore=build/**", "--fix"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	opts := isolated(dir)
	opts.Flags = flags

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.IndentSize != 3 {
		t.Errorf("IndentSize = %d, want 3 from the flag", cfg.IndentSize)
	}
	if cfg.MaxLineLength != 90 {
		t.Errorf("MaxLineLength = %d, want 90 since the flag was not changed", cfg.MaxLineLength)
	}
	if cfg.TemplateLanguage != "twig" {
		t.Errorf("TemplateLanguage = %q, want twig", cfg.TemplateLanguage)
	}
	if !slices.Equal(cfg.Ignore, []string{"build/**"}) {
		t.Errorf("Ignore = %v", cfg.Ignore)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "unknown rule kind",
			content: "rules:\n  - kind: nope\n",
			want:    "Unknown Rule of kind: nope",
		},
		{
			name:    "missing rule kind",
			content: "rules:\n  - name: nameless\n",
			want:    "Missing field `kind`",
		},
		{
			name:    "unknown template language",
			content: "template_language: cobol\n",
			want:    "template_language",
		},
		{
			name:    "invalid yaml",
			content: "rules: [\n",
			want:    "load project config",
		},
		{
			name:    "bad severity",
			content: "rules:\n  - kind: id_unique\n    severity: fatal\n",
			want:    "rules[0].severity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := newProject(t)
			writeConfig(t, filepath.Join(dir, ".htmlsnob.yml"), tt.content)

			_, err := Load(context.Background(), isolated(dir))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestLoad_ValidationErrorCarriesFile(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	path := filepath.Join(dir, ".htmlsnob.yml")
	writeConfig(t, path, "indent_size: 0\n")

	_, err := Load(context.Background(), isolated(dir))

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if verr.Field != "indent_size" {
		t.Errorf("Field = %q, want indent_size", verr.Field)
	}
	if verr.FilePath != path {
		t.Errorf("FilePath = %q, want %q", verr.FilePath, path)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.yml")
	writeConfig(t, path, "expansions:\n  inline: [b, i]\nrules:\n  - kind: child_whitelist\n    tags: {p: inline}\n")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.IndentSize != config.DefaultIndentSize {
		t.Errorf("IndentSize = %d, want default", cfg.IndentSize)
	}
	tags, ok := cfg.Rules[0].Options["tags"].(map[string]any)
	if !ok || !equalAny(tags["p"], []any{"b", "i"}) {
		t.Errorf("tags = %v, want expanded", cfg.Rules[0].Options["tags"])
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(lint.RuleInfo{Kind: "id_unique"})

	tests := []struct {
		name         string
		mutate       func(*config.Config)
		wantField    string
		wantWarnings int
	}{
		{name: "defaults are valid", mutate: func(*config.Config) {}},
		{
			name:      "negative line length",
			mutate:    func(c *config.Config) { c.MaxLineLength = -1 },
			wantField: "max_line_length",
		},
		{
			name:      "negative jobs",
			mutate:    func(c *config.Config) { c.Jobs = -2 },
			wantField: "jobs",
		},
		{
			name:      "bad backup mode",
			mutate:    func(c *config.Config) { c.Backups.Mode = "cloud" },
			wantField: "backups.mode",
		},
		{
			name:      "unknown kind",
			mutate:    func(c *config.Config) { c.Rules = []config.RuleConfig{{Kind: "nope"}} },
			wantField: "rules[0].kind",
		},
		{
			name:      "bad ignore glob",
			mutate:    func(c *config.Config) { c.Ignore = []string{"**/[a-"} },
			wantField: "ignore[0]",
		},
		{
			name:   "double star glob",
			mutate: func(c *config.Config) { c.Ignore = []string{"vendor/**/*.html"} },
		},
		{
			name: "duplicate names warn",
			mutate: func(c *config.Config) {
				c.Rules = []config.RuleConfig{{Kind: "id_unique", Name: "ids"}, {Kind: "id_unique", Name: "ids"}}
			},
			wantWarnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.mutate(cfg)

			result := Validate(cfg, registry)
			if tt.wantField == "" {
				if !result.Valid() {
					t.Fatalf("unexpected errors: %v", result.AllMessages())
				}
			} else {
				if result.Valid() {
					t.Fatal("expected a validation error")
				}
				if result.Errors[0].Field != tt.wantField {
					t.Errorf("Field = %q, want %q", result.Errors[0].Field, tt.wantField)
				}
			}
			if len(result.Warnings) != tt.wantWarnings {
				t.Errorf("Warnings = %v, want %d", result.Warnings, tt.wantWarnings)
			}
		})
	}
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeConfig(t, filepath.Join(outer, ".htmlsnob.yml"), "rules: []\n")

	repo := filepath.Join(outer, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := FindProjectConfig(context.Background(), repo)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if got != "" {
		t.Errorf("FindProjectConfig() = %q, want nothing beyond the repository root", got)
	}
}

func TestParseSliceValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{" a , b ,, c ", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		if got := parseSliceValue(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("parseSliceValue(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEnvVarNames(t *testing.T) {
	t.Parallel()

	if got := GetEnvVarName("max_line_length"); got != "HTMLSNOB_MAX_LINE_LENGTH" {
		t.Errorf("GetEnvVarName() = %q", got)
	}
	if got := GetEnvVarName("rules"); got != "" {
		t.Errorf("GetEnvVarName(rules) = %q, want empty", got)
	}

	vars := ListEnvVars()
	if _, ok := vars["HTMLSNOB_TEMPLATE_LANGUAGE"]; !ok {
		t.Error("ListEnvVars() is missing HTMLSNOB_TEMPLATE_LANGUAGE")
	}
}

func equalAny(got any, want []any) bool {
	list, ok := got.([]any)
	return ok && slices.Equal(list, want)
}
