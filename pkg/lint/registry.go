package lint

import (
	"cmp"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"sync"

	"github.com/go-viper/mapstructure/v2"

	"github.com/yaklabco/htmlsnob/pkg/config"
)

// Rule construction errors.
var (
	//nolint:staticcheck // User-facing wording.
	ErrMissingKind = errors.New("Missing field `kind`")

	//nolint:staticcheck // User-facing wording.
	ErrUnknownKind = errors.New("Unknown Rule of kind")
)

// BuildError reports a rule entry that could not be turned into a Rule.
type BuildError struct {
	// Index is the position of the entry in the rule list.
	Index int

	// Kind is the entry's kind, empty when it was missing.
	Kind string

	Err error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("rules[%d]: %v", e.Index, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Factory returns a zero-valued rule ready to have its options decoded into it.
// The returned value must be a pointer to a struct.
type Factory func() Rule

// Preparer is implemented by rules that need to check or derive fields after
// their options are decoded.
type Preparer interface {
	Prepare() error
}

// RuleInfo describes a registered rule kind.
type RuleInfo struct {
	Kind        string
	Description string

	// Fixable is true if the rule can rewrite the nodes it reports on.
	Fixable bool

	New Factory
}

// Registry maps rule kinds to their constructors.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]RuleInfo
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{kinds: make(map[string]RuleInfo)}
}

// Register adds a rule kind to the registry.
// If the kind already exists, it is replaced.
func (r *Registry) Register(info RuleInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[info.Kind] = info
}

// Get retrieves a rule kind.
func (r *Registry) Get(kind string) (RuleInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.kinds[kind]
	return info, ok
}

// Has reports whether kind is registered.
func (r *Registry) Has(kind string) bool {
	_, ok := r.Get(kind)
	return ok
}

// Infos returns all registered kinds sorted by kind.
func (r *Registry) Infos() []RuleInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]RuleInfo, 0, len(r.kinds))
	for _, info := range r.kinds {
		result = append(result, info)
	}

	slices.SortFunc(result, func(a, b RuleInfo) int {
		return cmp.Compare(a.Kind, b.Kind)
	})

	return result
}

// Kinds returns all registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	infos := r.Infos()
	kinds := make([]string, len(infos))
	for i, info := range infos {
		kinds[i] = info.Kind
	}
	return kinds
}

// New builds one rule from its raw option map. The map must contain "kind".
func (r *Registry) New(raw map[string]any) (Rule, error) {
	kindValue, ok := raw["kind"]
	if !ok {
		return nil, ErrMissingKind
	}
	kind := fmt.Sprint(kindValue)

	info, ok := r.Get(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	rule := info.New()
	if err := DecodeOptions(raw, rule); err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	if p, ok := rule.(Preparer); ok {
		if err := p.Prepare(); err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
	}

	return rule, nil
}

// Build turns raw rule entries into rules, preserving their order.
func (r *Registry) Build(entries []map[string]any) ([]Rule, error) {
	rules := make([]Rule, 0, len(entries))
	for i, raw := range entries {
		rule, err := r.New(raw)
		if err != nil {
			kind, _ := raw["kind"].(string)
			return nil, &BuildError{Index: i, Kind: kind, Err: err}
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// BuildConfig turns configured rule entries into rules.
func (r *Registry) BuildConfig(entries []config.RuleConfig) ([]Rule, error) {
	raws := make([]map[string]any, len(entries))
	for i, rc := range entries {
		raws[i] = rc.Raw()
		if rc.Kind == "" {
			delete(raws[i], "kind")
		}
	}
	return r.Build(raws)
}

// DecodeOptions decodes a raw option map into a rule struct.
// Strings are compiled when the target field is a *regexp.Regexp.
func DecodeOptions(raw map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.DecodeHookFuncType(stringToRegexpHook),
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("decode options: %w", err)
	}
	return nil
}

//nolint:gochecknoglobals // Reflection constant.
var regexpType = reflect.TypeFor[*regexp.Regexp]()

func stringToRegexpHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != regexpType {
		return data, nil
	}
	re, err := regexp.Compile(data.(string))
	if err != nil {
		return nil, fmt.Errorf("invalid regexp %q: %w", data, err)
	}
	return re, nil
}

// DefaultRegistry is the global registry for built-in rules.
// Rules register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
