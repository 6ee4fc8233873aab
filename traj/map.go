package traj

import (
	"bytes"
	"encoding/json"
	"iter"
	"slices"

	"github.com/goccy/go-yaml"
)

// Pair is a single key-value entry of a [Map].
type Pair struct {
	Key   string
	Value any
}

// Map is an insertion-ordered mapping from string keys to values.
//
// Trajectory documents are order-sensitive: init entries are evaluated in
// declaration order and later loop variables see earlier ones, so documents
// are decoded into Maps rather than Go maps.
//
// The zero value is an empty Map ready to use.
type Map struct {
	pairs []Pair
	index map[string]int
}

// NewMap returns a Map holding pairs in order.
// A repeated key replaces the earlier value and keeps its position.
func NewMap(pairs ...Pair) *Map {
	m := &Map{}
	for _, p := range pairs {
		m.Set(p.Key, p.Value)
	}

	return m
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}

	return len(m.pairs)
}

// Set binds key to value.
func (m *Map) Set(key string, value any) {
	if m.index == nil {
		m.index = make(map[string]int)
	}

	if i, ok := m.index[key]; ok {
		m.pairs[i].Value = value

		return
	}

	m.index[key] = len(m.pairs)
	m.pairs = append(m.pairs, Pair{Key: key, Value: value})
}

// Get returns the value bound to key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}

	i, ok := m.index[key]
	if !ok {
		return nil, false
	}

	return m.pairs[i].Value, true
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)

	return ok
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}

	keys := make([]string, len(m.pairs))
	for i, p := range m.pairs {
		keys[i] = p.Key
	}

	return keys
}

// Pairs returns a copy of the entries in insertion order.
func (m *Map) Pairs() []Pair {
	if m == nil {
		return nil
	}

	return slices.Clone(m.pairs)
}

// All returns an iterator over the entries in insertion order.
func (m *Map) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if m == nil {
			return
		}

		for _, p := range m.pairs {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Native returns the contents as a map[string]any, converting nested Maps
// and sequences recursively. Key order is lost.
func (m *Map) Native() any {
	out := make(map[string]any, m.Len())
	for k, v := range m.All() {
		out[k] = native(v)
	}

	return out
}

func native(v any) any {
	switch val := v.(type) {
	case *Map:
		return val.Native()

	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = native(elem)
		}

		return out

	default:
		return v
	}
}

// MarshalJSON implements json.Marshaler, preserving key order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, p := range m.Pairs() {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}

		val, err := json.Marshal(p.Value)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.InterfaceMarshaler, preserving key order.
func (m *Map) MarshalYAML() (any, error) {
	out := make(yaml.MapSlice, 0, m.Len())
	for k, v := range m.All() {
		out = append(out, yaml.MapItem{Key: k, Value: v})
	}

	return out, nil
}

// TypeName returns the document type name of a decoded value.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case *Map:
		return "mapping"
	case []any:
		return "sequence"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, float64:
		return "number"
	default:
		return "unknown"
	}
}
