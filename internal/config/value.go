package config

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValueKind identifies the shape of an extra-metadata value.
type ValueKind int

const (
	// KindString is a plain scalar value.
	KindString ValueKind = iota
	// KindList is a flat list of strings.
	KindList
	// KindMap is a nested mapping of field name to Value.
	KindMap
)

// Value is a tagged extra-metadata value from the config file's
// metadata section: a string, a list of strings, or a nested mapping.
// Keeping the shapes explicit keeps the render step's input contract
// checkable instead of passing an open-ended any around.
type Value struct {
	kind ValueKind
	str  string
	list []string
	m    map[string]Value
}

// StringValue creates a scalar Value.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// ListValue creates a list Value.
func ListValue(items ...string) Value {
	return Value{kind: KindList, list: items}
}

// MapValue creates a nested mapping Value.
func MapValue(m map[string]Value) Value {
	return Value{kind: KindMap, m: m}
}

// Kind returns the value's shape.
func (v Value) Kind() ValueKind {
	return v.kind
}

// List returns the list items for a KindList value, nil otherwise.
func (v Value) List() []string {
	return v.list
}

// Map returns the nested mapping for a KindMap value, nil otherwise.
func (v Value) Map() map[string]Value {
	return v.m
}

// Keys returns the nested mapping's keys in sorted order, so rendering
// is deterministic.
func (v Value) Keys() []string {
	keys := make([]string, 0, len(v.m))
	for k := range v.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders the value as a single header line payload.
// Lists join with ", "; mappings render as "key: value" pairs.
func (v Value) String() string {
	switch v.kind {
	case KindList:
		return strings.Join(v.list, ", ")
	case KindMap:
		parts := make([]string, 0, len(v.m))
		for _, k := range v.Keys() {
			parts = append(parts, fmt.Sprintf("%s: %s", k, v.m[k].String()))
		}
		return strings.Join(parts, ", ")
	default:
		return v.str
	}
}

// UnmarshalYAML decodes a scalar, sequence, or mapping node into the
// matching Value shape. Any other node kind is a configuration error.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		v.kind = KindString
		return node.Decode(&v.str)
	case yaml.SequenceNode:
		v.kind = KindList
		return node.Decode(&v.list)
	case yaml.MappingNode:
		v.kind = KindMap
		return node.Decode(&v.m)
	default:
		return fmt.Errorf("metadata value at line %d: expected string, list, or mapping", node.Line)
	}
}

// MarshalYAML emits the value in its original shape, so frontmatter
// round-trips the config file's structure.
func (v Value) MarshalYAML() (interface{}, error) {
	switch v.kind {
	case KindList:
		return v.list, nil
	case KindMap:
		out := make(map[string]Value, len(v.m))
		for k, val := range v.m {
			out[k] = val
		}
		return out, nil
	default:
		return v.str, nil
	}
}
