package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Base is the configuration document the template starts from,
	// usually one of the built-in packs.
	Base []byte

	// Full appends a commented catalogue of every rule kind.
	Full bool

	// Format is the output format: "yaml" or "json".
	// JSON output carries no comments.
	Format string

	// IncludeRules limits the catalogue to these kinds.
	// If empty, all rules are included.
	IncludeRules []string

	// Rules is the catalogue of available rule kinds.
	Rules []RuleInfo
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	Kind        string
	Description string
	Fixable     bool
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if len(bytes.TrimSpace(opts.Base)) == 0 {
		return nil, errors.New("template needs a base configuration")
	}

	// Reject a base the loader would refuse later.
	if _, err := FromYAML(opts.Base); err != nil {
		return nil, fmt.Errorf("base configuration: %w", err)
	}

	if opts.Format == "json" {
		return templateToJSON(opts.Base)
	}

	var buf bytes.Buffer
	if !bytes.HasPrefix(opts.Base, []byte("#")) {
		buf.WriteString(DefaultTemplateHeader())
		buf.WriteString("\n\n")
	}
	buf.Write(opts.Base)
	if !bytes.HasSuffix(opts.Base, []byte("\n")) {
		buf.WriteByte('\n')
	}

	if opts.Full {
		writeCatalogue(&buf, filterRules(opts.Rules, opts.IncludeRules))
	}

	return buf.Bytes(), nil
}

func filterRules(rules []RuleInfo, include []string) []RuleInfo {
	out := make([]RuleInfo, 0, len(rules))
	for _, r := range rules {
		if len(include) > 0 && !slices.Contains(include, r.Kind) {
			continue
		}
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b RuleInfo) int {
		return strings.Compare(a.Kind, b.Kind)
	})
	return out
}

// writeCatalogue appends one commented example entry per rule kind.
func writeCatalogue(buf *bytes.Buffer, rules []RuleInfo) {
	if len(rules) == 0 {
		return
	}

	buf.WriteString("\n# Available rule kinds. Copy an entry into `rules` to enable it.\n")
	for _, rule := range rules {
		fmt.Fprintf(buf, "#\n# %s\n", wrapComment(rule.Description, commentWrapWidth))
		if rule.Fixable {
			buf.WriteString("# Auto-fix: yes\n")
		}
		fmt.Fprintf(buf, "#  - kind: %s\n", rule.Kind)
		buf.WriteString("#    name: my-rule\n")
		buf.WriteString("#    severity: error\n")
	}
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n# ")
}

// templateToJSON converts a YAML template to JSON format.
func templateToJSON(yamlContent []byte) ([]byte, error) {
	doc := map[string]any{}
	if err := yaml.Unmarshal(yamlContent, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# htmlsnob configuration
# See: https://github.com/yaklabco/htmlsnob`
}
