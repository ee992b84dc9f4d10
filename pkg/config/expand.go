package config

import (
	"fmt"
	"maps"
	"slices"

	"github.com/go-viper/mapstructure/v2"
)

// ExpansionsKey is the top-level key holding the expansion table.
const ExpansionsKey = "expansions"

// Expand rewrites a raw configuration document in place using its own
// expansions table and returns it.
//
// Outside the expansions section, a string equal to an expansion name becomes
// the list it names, list items that are lists are flattened one level, and a
// map key equal to an expansion name is replaced by one key per item, each
// sharing the value. Map keys are applied in sorted order, later ones winning.
func Expand(doc map[string]any) map[string]any {
	table := expansionTable(doc[ExpansionsKey])
	if len(table) == 0 {
		return doc
	}

	for key, value := range doc {
		if key == ExpansionsKey {
			continue
		}
		doc[key] = expandValue(value, table)
	}
	return doc
}

func expansionTable(raw any) map[string][]any {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}

	table := make(map[string][]any, len(m))
	for name, value := range m {
		var items []any
		switch list := value.(type) {
		case []any:
			for _, item := range list {
				if s, ok := item.(string); ok {
					items = append(items, s)
				}
			}
		case []string:
			for _, s := range list {
				items = append(items, s)
			}
		default:
			continue
		}
		table[name] = items
	}
	return table
}

func expandValue(value any, table map[string][]any) any {
	switch v := value.(type) {
	case string:
		if items, ok := table[v]; ok {
			return append([]any(nil), items...)
		}
		return v
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			expanded := expandValue(item, table)
			if inner, ok := expanded.([]any); ok {
				out = append(out, inner...)
			} else {
				out = append(out, expanded)
			}
		}
		return out
	case map[string]any:
		// Keys apply in sorted order so a collision between an expanded key
		// and a literal one always resolves the same way: the later key wins.
		out := make(map[string]any, len(v))
		for _, key := range slices.Sorted(maps.Keys(v)) {
			expanded := expandValue(v[key], table)
			names, ok := table[key]
			if !ok {
				out[key] = expanded
				continue
			}
			for _, name := range names {
				out[name.(string)] = expanded
			}
		}
		return out
	default:
		return v
	}
}

// Decode builds a Config from a raw document, starting from NewConfig defaults.
// The document is expected to be expanded already.
func Decode(doc map[string]any) (*Config, error) {
	cfg := NewConfig()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}
	if err := decoder.Decode(doc); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
