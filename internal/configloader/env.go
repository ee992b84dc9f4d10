package configloader

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// envVarPrefix is the prefix for all htmlsnob environment variables.
const envVarPrefix = "HTMLSNOB_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeScalar envFieldType = iota
	envTypeSlice
)

// envMapping defines an environment variable to config key mapping.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config keys.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"INDENT_SIZE":       {field: "indent_size", description: "Spaces per nesting level in formatted output"},
	"MAX_LINE_LENGTH":   {field: "max_line_length", description: "Width the formatter tries to stay within"},
	"TEMPLATE_LANGUAGE": {field: "template_language", description: "Template dialect for every file (none, handlebars, jinja2, ...)"},
	"JOBS":              {field: "jobs", description: "Number of parallel workers (0 = auto)"},
	"IGNORE":            {field: "ignore", typ: envTypeSlice, description: "Comma-separated list of ignore patterns"},
	"BACKUPS_ENABLED":   {field: "backups.enabled", description: "Enable backups when fixing: true or false"},
	"BACKUPS_MODE":      {field: "backups.mode", description: "Backup mode: sidecar or none"},
}

// LoadFromEnv merges HTMLSNOB_* environment variables into k.
// Unknown HTMLSNOB_ variables are ignored. Values are strings; decoding
// converts them to the target type.
func LoadFromEnv(k *koanf.Koanf) error {
	provider := env.ProviderWithValue(envVarPrefix, ".", func(key, value string) (string, any) {
		mapping, ok := envMappings[strings.TrimPrefix(key, envVarPrefix)]
		if !ok || value == "" {
			return "", nil
		}
		if mapping.typ == envTypeSlice {
			return mapping.field, parseSliceValue(value)
		}
		return mapping.field, strings.TrimSpace(value)
	})

	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("read %s* variables: %w", envVarPrefix, err)
	}
	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// GetEnvVarName returns the full environment variable name for a config key.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
