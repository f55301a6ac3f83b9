// Copyright © 2018 One Concern

package model

import (
	"bytes"
	"fmt"
	"sort"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v2"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Metadata is an ordered mapping of string keys to values.
//
// Values are strings, numbers, booleans, lists ([]interface{}) or nested *Metadata.
// The order of keys is preserved through YAML and JSON serialization.
type Metadata struct {
	keys   []string
	values map[string]interface{}
}

// NewMetadata builds an empty metadata map
func NewMetadata() *Metadata {
	return &Metadata{values: make(map[string]interface{})}
}

// Len yields the number of fields
func (m *Metadata) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys yields the field names, in order
func (m *Metadata) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Get a field value and tells if the field is present
func (m *Metadata) Get(key string) (interface{}, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Value of a field, or nil when absent
func (m *Metadata) Value(key string) interface{} {
	v, _ := m.Get(key)
	return v
}

// Has tells if a field is present
func (m *Metadata) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// String value of a field, or the empty string when absent or not a string
func (m *Metadata) String(key string) string {
	s, _ := m.Value(key).(string)
	return s
}

// Set a field value. New fields are appended after existing ones.
func (m *Metadata) Set(key string, value interface{}) *Metadata {
	if m.values == nil {
		m.values = make(map[string]interface{})
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = normalize(value)
	return m
}

// Delete a field
func (m *Metadata) Delete(key string) {
	if !m.Has(key) {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Clone performs a deep copy of the metadata
func (m *Metadata) Clone() *Metadata {
	if m == nil {
		return NewMetadata()
	}
	c := &Metadata{
		keys:   make([]string, len(m.keys)),
		values: make(map[string]interface{}, len(m.values)),
	}
	copy(c.keys, m.keys)
	for k, v := range m.values {
		c.values[k] = cloneValue(v)
	}
	return c
}

// Equal compares two metadata maps, regardless of the order of keys
func (m *Metadata) Equal(other *Metadata) bool {
	return Equal(m, other)
}

// MarshalYAML renders the metadata as an ordered YAML mapping
func (m *Metadata) MarshalYAML() (interface{}, error) {
	return toMapSlice(m), nil
}

// UnmarshalYAML reads an ordered YAML mapping
func (m *Metadata) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var ms yaml.MapSlice
	if err := unmarshal(&ms); err != nil {
		return err
	}
	*m = *fromMapSlice(ms)
	return nil
}

// MarshalJSON renders the metadata as a JSON object, preserving the order of keys
func (m *Metadata) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func toMapSlice(m *Metadata) yaml.MapSlice {
	ms := make(yaml.MapSlice, 0, m.Len())
	for _, k := range m.Keys() {
		ms = append(ms, yaml.MapItem{Key: k, Value: toYAMLValue(m.values[k])})
	}
	return ms
}

func toYAMLValue(v interface{}) interface{} {
	switch t := v.(type) {
	case *Metadata:
		return toMapSlice(t)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = toYAMLValue(e)
		}
		return out
	default:
		return v
	}
}

func fromMapSlice(ms yaml.MapSlice) *Metadata {
	m := NewMetadata()
	for _, item := range ms {
		m.Set(fmt.Sprint(item.Key), item.Value)
	}
	return m
}

// normalize converts the generic containers produced by decoders into the
// value types supported by Metadata
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case yaml.MapSlice:
		return fromMapSlice(t)
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMetadata()
		for _, k := range keys {
			m.Set(k, t[k])
		}
		return m
	case map[interface{}]interface{}:
		keys := make([]string, 0, len(t))
		byKey := make(map[string]interface{}, len(t))
		for k, e := range t {
			sk := fmt.Sprint(k)
			keys = append(keys, sk)
			byKey[sk] = e
		}
		sort.Strings(keys)
		m := NewMetadata()
		for _, k := range keys {
			m.Set(k, byKey[k])
		}
		return m
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	case []string:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = e
		}
		return out
	default:
		return v
	}
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case *Metadata:
		return t.Clone()
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
