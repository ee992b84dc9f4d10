package analysis

import (
	"fmt"
	"strings"

	"github.com/yaklabco/htmlsnob/pkg/config"
)

// Order selects how the per-rule and per-file views are sorted.
type Order string

const (
	// OrderCount puts the noisiest rules and files first.
	OrderCount Order = "count"
	// OrderName sorts rules and paths alphabetically.
	OrderName Order = "name"
	// OrderSeverity puts entries with errors first, then warnings.
	OrderSeverity Order = "severity"
)

// Orders lists every accepted order, default first.
func Orders() []Order {
	return []Order{OrderCount, OrderName, OrderSeverity}
}

// ParseOrder reads a --sort value. The empty string yields OrderCount.
func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return OrderCount, nil
	case OrderCount, OrderName, OrderSeverity:
		return o, nil
	default:
		return "", fmt.Errorf("unknown sort order %q; valid orders: count, name, severity", s)
	}
}

// Options configures Analyze.
type Options struct {
	// Order sorts ByRule and ByFile. Empty means OrderCount.
	Order Order

	// RuleFormat controls how rules are keyed and displayed.
	RuleFormat config.RuleFormat

	// WorkingDir is the directory paths are made relative to.
	// If empty, paths are kept as-is.
	WorkingDir string
}
