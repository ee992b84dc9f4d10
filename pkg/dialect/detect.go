package dialect

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

//nolint:gochecknoglobals // Static lookup tables.
var (
	extensions = map[string]Dialect{
		".eex":        Eex,
		".heex":       Eex,
		".leex":       Eex,
		".erb":        Erb,
		".rhtml":      Erb,
		".gohtml":     Go,
		".tmpl":       Go,
		".gotmpl":     Go,
		".hbs":        Handlebars,
		".handlebars": Handlebars,
		".jinja":      Jinja2,
		".jinja2":     Jinja2,
		".j2":         Jinja2,
		".liquid":     Liquid,
		".mustache":   Mustache,
		".twig":       Twig,
	}

	// linguistNames maps enry (linguist) language names onto dialects.
	linguistNames = map[string]Dialect{
		"Handlebars":  Handlebars,
		"Jinja":       Jinja2,
		"Liquid":      Liquid,
		"Mustache":    Mustache,
		"Twig":        Twig,
		"HTML+ERB":    Erb,
		"HTML+EEX":    Eex,
		"Go Template": Go,
	}
)

// FromFilename selects a dialect from the file extension alone.
// Unknown extensions map to None.
func FromFilename(name string) Dialect {
	if d, ok := extensions[strings.ToLower(filepath.Ext(name))]; ok {
		return d
	}
	return None
}

// Detect selects a dialect from the file extension, falling back to
// linguist-based language detection on the name and content.
func Detect(name string, content []byte) Dialect {
	if d := FromFilename(name); d != None {
		return d
	}
	if d, ok := linguistNames[enry.GetLanguage(filepath.Base(name), content)]; ok {
		return d
	}
	return None
}

// Extensions returns the file extensions with a known dialect, sorted.
func Extensions() []string {
	return slices.Sorted(maps.Keys(extensions))
}

// ExtensionsOf returns the file extensions that select d, sorted.
// None has no extensions of its own.
func ExtensionsOf(d Dialect) []string {
	var out []string
	for ext, owner := range extensions {
		if owner == d {
			out = append(out, ext)
		}
	}
	slices.Sort(out)
	return out
}
