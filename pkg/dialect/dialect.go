// Package dialect describes the template languages that can be embedded in HTML
// and how their constructs are recognized.
package dialect

import (
	"fmt"
	"slices"
	"strings"
)

// Dialect names a template language.
type Dialect string

// Supported dialects.
const (
	None       Dialect = "none"
	Eex        Dialect = "eex"
	Erb        Dialect = "erb"
	Go         Dialect = "go"
	Handlebars Dialect = "handlebars"
	Jinja2     Dialect = "jinja2"
	Liquid     Dialect = "liquid"
	Mustache   Dialect = "mustache"
	Twig       Dialect = "twig"
)

// All returns every dialect in a stable order.
func All() []Dialect {
	return []Dialect{None, Eex, Erb, Go, Handlebars, Jinja2, Liquid, Mustache, Twig}
}

// Parse converts a configuration value into a Dialect.
// The empty string is treated as None.
func Parse(s string) (Dialect, error) {
	d := Dialect(strings.ToLower(strings.TrimSpace(s)))
	if d == "" {
		return None, nil
	}
	if !d.IsValid() {
		return None, fmt.Errorf("unknown template language %q", s)
	}
	return d, nil
}

// IsValid returns true if d is a known dialect.
func (d Dialect) IsValid() bool {
	return slices.Contains(All(), d)
}

// String implements fmt.Stringer.
func (d Dialect) String() string {
	if d == "" {
		return string(None)
	}
	return string(d)
}

// SupportsQuoting reports whether quoted strings inside a construct can hide
// its closing delimiter.
func (d Dialect) SupportsQuoting() bool {
	switch d {
	case Handlebars, Jinja2, Liquid, Mustache, Twig:
		return true
	default:
		return false
	}
}
