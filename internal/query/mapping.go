package query

import (
	"strings"
	"sync"
)

// Tag identifies one side of a property mapping, e.g. the public read shape of a
// resource or its storage row.
type Tag string

// MappingValue lists the storage columns a public field sorts by. Revert flips the
// requested direction, for fields whose natural order runs against their column.
type MappingValue struct {
	DestinationFields []string
	Revert            bool
}

// Mapping translates public field names to storage columns. Keys are matched
// case-insensitively.
type Mapping struct {
	entries map[string]MappingValue
}

// NewMapping builds a Mapping from name/value pairs.
func NewMapping(entries map[string]MappingValue) Mapping {
	m := Mapping{entries: make(map[string]MappingValue, len(entries))}
	for name, v := range entries {
		m.entries[strings.ToLower(name)] = v
	}
	return m
}

// Lookup returns the entry for name, ignoring case.
func (m Mapping) Lookup(name string) (MappingValue, bool) {
	v, ok := m.entries[strings.ToLower(name)]
	return v, ok
}

// Len returns the number of mapped fields.
func (m Mapping) Len() int {
	return len(m.entries)
}

// ValidOrderBy reports whether every clause of a comma-separated order-by
// expression names a mapped field. A blank expression is valid.
func (m Mapping) ValidOrderBy(expr string) bool {
	if strings.TrimSpace(expr) == "" {
		return true
	}
	for _, clause := range strings.Split(expr, ",") {
		if _, ok := m.Lookup(clauseField(strings.TrimSpace(clause))); !ok {
			return false
		}
	}
	return true
}

// clauseField strips an optional direction token from a trimmed clause.
func clauseField(clause string) string {
	if i := strings.Index(clause, " "); i >= 0 {
		return clause[:i]
	}
	return clause
}

type mappingKey struct {
	source Tag
	target Tag
}

// Registry holds one Mapping per (source, target) pair. Register everything at
// startup; lookups are safe for concurrent use afterwards.
type Registry struct {
	mu       sync.RWMutex
	mappings map[mappingKey]Mapping
}

func NewRegistry() *Registry {
	return &Registry{mappings: make(map[mappingKey]Mapping)}
}

// Register adds the mapping for a pair. Registering the same pair twice is an
// ambiguity and fails.
func (r *Registry) Register(source, target Tag, m Mapping) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := mappingKey{source: source, target: target}
	if _, exists := r.mappings[key]; exists {
		return &ConfigurationError{Source: source, Target: target, Reason: "mapping registered more than once"}
	}
	r.mappings[key] = m
	return nil
}

// MustRegister is Register for package-level setup code.
func (r *Registry) MustRegister(source, target Tag, m Mapping) *Registry {
	if err := r.Register(source, target, m); err != nil {
		panic(err)
	}
	return r
}

// Mapping returns the mapping registered for the pair.
func (r *Registry) Mapping(source, target Tag) (Mapping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.mappings[mappingKey{source: source, target: target}]
	if !ok {
		return Mapping{}, &ConfigurationError{Source: source, Target: target, Reason: "no mapping registered"}
	}
	return m, nil
}
