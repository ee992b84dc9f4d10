package rules

import (
	"embed"
	"fmt"

	"github.com/yaklabco/htmlsnob/pkg/config"
)

//go:embed packs/*.yml
var packFiles embed.FS

// Pack is a named, ready-to-use configuration document.
// Packs are starting points for .htmlsnob.yml files.
type Pack struct {
	// Name is the short identifier for the pack (e.g., "recommended", "strict").
	Name string

	// Description explains the purpose and characteristics of the pack.
	Description string

	// YAML is the configuration document, comments included.
	YAML []byte
}

// DefaultPackName is the pack used when no configuration file is found.
const DefaultPackName = "recommended"

// Config parses the pack into a configuration.
func (p Pack) Config() (*config.Config, error) {
	cfg, err := config.FromYAML(p.YAML)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", p.Name, err)
	}
	return cfg, nil
}

// Packs returns all built-in packs.
func Packs() []Pack {
	return []Pack{
		load("recommended", "Well-formed markup, lowercase tags, double quotes, unique ids"),
		load("strict", "Recommended plus naming styles, attribute order and document structure"),
		load("relaxed", "Only markup the parser had to guess about, mostly as warnings"),
	}
}

// PackByName returns a pack by name, or nil if not found.
func PackByName(name string) *Pack {
	for _, p := range Packs() {
		if p.Name == name {
			return &p
		}
	}
	return nil
}

// PackNames returns the names of all available packs.
func PackNames() []string {
	packs := Packs()
	names := make([]string, len(packs))
	for i, p := range packs {
		names[i] = p.Name
	}
	return names
}

func load(name, description string) Pack {
	data, err := packFiles.ReadFile("packs/" + name + ".yml")
	if err != nil {
		panic(fmt.Sprintf("missing embedded pack %s: %v", name, err))
	}
	return Pack{Name: name, Description: description, YAML: data}
}
