// Package casing converts identifiers between naming styles.
package casing

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Style is a naming convention as written in configuration.
type Style string

// Supported styles.
const (
	CamelCase  Style = "camel_case"
	PascalCase Style = "pascal_case"
	SnakeCase  Style = "snake_case"
	KebabCase  Style = "kebab_case"
	UpperCase  Style = "upper_case"

	// Lower and Upper change letter case only and keep word separators.
	Lower Style = "lower"
	Upper Style = "upper"
)

// Styles returns every style in a stable order.
func Styles() []Style {
	return []Style{CamelCase, PascalCase, SnakeCase, KebabCase, UpperCase, Lower, Upper}
}

// Validate returns an error for unknown styles.
func (s Style) Validate() error {
	for _, known := range Styles() {
		if s == known {
			return nil
		}
	}
	return fmt.Errorf("unknown case style %q", string(s))
}

// String returns the display form used in messages, e.g. "kebab-case".
func (s Style) String() string {
	switch s {
	case CamelCase:
		return "camelCase"
	case PascalCase:
		return "PascalCase"
	case SnakeCase:
		return "snake_case"
	case KebabCase:
		return "kebab-case"
	case UpperCase:
		return "UPPER_CASE"
	case Lower:
		return "lowercase"
	case Upper:
		return "uppercase"
	default:
		return string(s)
	}
}

// Convert rewrites input in style s. Unknown styles return input unchanged.
func (s Style) Convert(input string) string {
	switch s {
	case CamelCase:
		words := Words(input)
		if len(words) == 0 {
			return ""
		}
		return words[0] + capitalizeAll(words[1:])
	case PascalCase:
		return capitalizeAll(Words(input))
	case SnakeCase:
		return strings.Join(Words(input), "_")
	case KebabCase:
		return strings.Join(Words(input), "-")
	case UpperCase:
		return cases.Upper(language.Und).String(strings.Join(Words(input), "_"))
	case Lower:
		return cases.Lower(language.Und).String(input)
	case Upper:
		return cases.Upper(language.Und).String(input)
	default:
		return input
	}
}

// Matches reports whether input is already written in style s.
func (s Style) Matches(input string) bool {
	return s.Convert(input) == input
}

//nolint:gochecknoglobals // Compiled once.
var (
	lowerUpper      = regexp.MustCompile(`([a-z])([A-Z])`)
	upperUpperLower = regexp.MustCompile(`([A-Z])([A-Z][a-z])`)
	separators      = strings.NewReplacer("-", "|", "_", "|")
)

// Words splits an identifier into lowercase words. Boundaries are "-", "_",
// a lowercase letter followed by an uppercase one, and the last capital of an
// acronym followed by a capitalized word ("XMLHttp" is "xml", "http").
func Words(input string) []string {
	if input == "" {
		return nil
	}

	marked := separators.Replace(input)
	marked = lowerUpper.ReplaceAllString(marked, "${1}|${2}")
	marked = upperUpperLower.ReplaceAllString(marked, "${1}|${2}")

	lower := cases.Lower(language.Und)
	words := strings.Split(marked, "|")
	for i, w := range words {
		words[i] = lower.String(w)
	}
	return words
}

func capitalizeAll(words []string) string {
	title := cases.Title(language.Und, cases.NoLower)
	var sb strings.Builder
	for _, w := range words {
		sb.WriteString(title.String(w))
	}
	return sb.String()
}
