// FILE: lixenwraith/flags/collection.go
package flags

import (
	"fmt"
	"strings"
)

// List parses comma-separated strings. Elements are trimmed and empty
// elements are dropped, so "" yields an empty list.
type List struct{}

func (List) Type() string { return "list" }

func (List) Parse(text string) ([]string, error) {
	return splitList(text), nil
}

func (List) Format(v []string) string { return strings.Join(v, ",") }

func (List) Validate(v []string) error {
	for _, elem := range v {
		if elem == "" || elem != strings.TrimSpace(elem) {
			return fmt.Errorf("list element %q is empty or padded", elem)
		}
		if strings.Contains(elem, ",") {
			return fmt.Errorf("list element %q contains a comma", elem)
		}
	}
	return nil
}

func splitList(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// OrderedMap is a string-keyed map that remembers insertion order.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

// NewOrderedMap returns an empty map.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{values: make(map[string]V)}
}

// Set inserts or replaces key. Replacing keeps the original position.
func (m *OrderedMap[V]) Set(key string, v V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get looks up key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Map copies the entries into a plain Go map.
func (m *OrderedMap[V]) Map() map[string]V {
	out := make(map[string]V, m.Len())
	if m == nil {
		return out
	}
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// Map parses comma-separated key=value pairs. Duplicate keys are an error.
type Map[V any] struct {
	Value Coercer[V]
}

// MapOf is shorthand for Map[V]{Value: value}.
func MapOf[V any](value Coercer[V]) Map[V] {
	return Map[V]{Value: value}
}

func (c Map[V]) Type() string { return "map[" + c.Value.Type() + "]" }

func (c Map[V]) Parse(text string) (*OrderedMap[V], error) {
	m := NewOrderedMap[V]()
	if strings.TrimSpace(text) == "" {
		return m, nil
	}
	for _, pair := range strings.Split(text, ",") {
		key, raw, found := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, fmt.Errorf("malformed pair %q, expected key=value", strings.TrimSpace(pair))
		}
		if _, dup := m.values[key]; dup {
			return nil, fmt.Errorf("duplicate key %q", key)
		}
		v, err := c.Value.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		m.Set(key, v)
	}
	return m, nil
}

func (c Map[V]) Format(v *OrderedMap[V]) string {
	if v == nil {
		return ""
	}
	pairs := make([]string, 0, len(v.keys))
	for _, k := range v.keys {
		pairs = append(pairs, k+"="+c.Value.Format(v.values[k]))
	}
	return strings.Join(pairs, ",")
}

func (c Map[V]) Validate(v *OrderedMap[V]) error {
	if v == nil {
		return nil
	}
	for _, k := range v.keys {
		if err := c.Value.Validate(v.values[k]); err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
	}
	return nil
}
