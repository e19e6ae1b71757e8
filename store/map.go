package store

import (
	"bytes"
	"encoding/json"
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Map is an insertion-ordered mapping of keys to optional values.
// A nil value is a placeholder for a translation that has not been written.
// The zero value is not usable; create maps with [NewMap].
type Map struct {
	om *orderedmap.OrderedMap[string, *string]
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{om: orderedmap.New[string, *string]()}
}

// Value returns a pointer to a copy of s.
func Value(s string) *string { return &s }

// Len returns the number of entries.
func (m *Map) Len() int { return m.om.Len() }

// Get returns the value of key and whether the key is present.
func (m *Map) Get(key string) (*string, bool) { return m.om.Get(key) }

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.om.Get(key)

	return ok
}

// Set sets the value of key. A new key is appended; an existing key keeps
// its position.
func (m *Map) Set(key string, value *string) { m.om.Set(key, value) }

// SetDefault appends key with value unless key is already present.
// It reports whether the key was added.
func (m *Map) SetDefault(key string, value *string) bool {
	if m.Has(key) {
		return false
	}

	m.om.Set(key, value)

	return true
}

// Delete removes key.
func (m *Map) Delete(key string) { m.om.Delete(key) }

// All yields the entries in order.
func (m *Map) All() iter.Seq2[string, *string] {
	return func(yield func(string, *string) bool) {
		for p := m.om.Oldest(); p != nil; p = p.Next() {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Keys yields the keys in order.
func (m *Map) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for k := range m.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Retain removes, in place, every entry for which keep returns false.
// It returns the number of removed entries.
func (m *Map) Retain(keep func(key string, value *string) bool) int {
	var drop []string

	for k, v := range m.All() {
		if !keep(k, v) {
			drop = append(drop, k)
		}
	}

	for _, k := range drop {
		m.om.Delete(k)
	}

	return len(drop)
}

// Clone returns a copy of m. Values are shared, not copied.
func (m *Map) Clone() *Map {
	c := NewMap()

	for k, v := range m.All() {
		c.om.Set(k, v)
	}

	return c
}

// Strings returns the non-null entries as a plain map.
func (m *Map) Strings() map[string]string {
	out := make(map[string]string, m.Len())

	for k, v := range m.All() {
		if v != nil {
			out[k] = *v
		}
	}

	return out
}

// UnmarshalJSON decodes a JSON object of strings and nulls, keeping the
// order of its members.
func (m *Map) UnmarshalJSON(data []byte) error {
	om := orderedmap.New[string, *string]()
	if err := om.UnmarshalJSON(data); err != nil {
		return err
	}

	m.om = om

	return nil
}

// MarshalJSON encodes m as a compact JSON object.
func (m *Map) MarshalJSON() ([]byte, error) {
	return m.encode("")
}

// Encode returns m as a JSON object indented by two spaces, followed by a
// newline. HTML characters are not escaped.
func (m *Map) Encode() ([]byte, error) {
	data, err := m.encode("  ")
	if err != nil {
		return nil, err
	}

	return append(data, '\n'), nil
}

func (m *Map) encode(indent string) ([]byte, error) {
	if m.Len() == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	sep, colon := "\n"+indent, ": "
	if indent == "" {
		sep, colon = "", ":"
	}

	buf.WriteByte('{')

	first := true

	for k, v := range m.All() {
		if !first {
			buf.WriteByte(',')
		}

		first = false

		buf.WriteString(sep)

		if err := enc.Encode(k); err != nil {
			return nil, err
		}

		buf.Truncate(buf.Len() - 1) // Encoder appends a newline
		buf.WriteString(colon)

		if err := enc.Encode(v); err != nil {
			return nil, err
		}

		buf.Truncate(buf.Len() - 1)
	}

	if indent != "" {
		buf.WriteByte('\n')
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
