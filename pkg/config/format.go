package config

// FormatRuleName formats a rule identifier based on the given format.
// Falls back to the kind if name is empty.
func FormatRuleName(format RuleFormat, kind, name string) string {
	if name == "" {
		return kind
	}
	if kind == "" {
		return name
	}

	switch format {
	case RuleFormatKind:
		return kind
	case RuleFormatCombined:
		if kind == name {
			return kind
		}
		return kind + "/" + name
	default:
		return name
	}
}
