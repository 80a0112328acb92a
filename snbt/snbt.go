// Package snbt writes stringified NBT, the text form Minecraft uses for item
// data and, since 1.20.5, for text components stored on items.
package snbt

import (
	"bytes"
)

// Value is the generic SNBT value type.
// - Compound or map[string]any for compounds
// - []any for lists
// - string for strings
// - int / int64 / float64 for numbers
// - bool for booleans
type Value = any

// Field is one key of a Compound.
type Field struct {
	Key   string
	Value Value
}

// Compound is a compound tag that keeps its keys in insertion order. Plain
// maps are written with sorted keys instead.
type Compound []Field

// Set appends key, replacing an existing value for the same key in place.
func (c *Compound) Set(key string, v Value) {
	for i := range *c {
		if (*c)[i].Key == key {
			(*c)[i].Value = v
			return
		}
	}
	*c = append(*c, Field{Key: key, Value: v})
}

// Get returns the value stored under key.
func (c Compound) Get(key string) (Value, bool) {
	for _, f := range c {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Marshal encodes v and returns the SNBT text.
func Marshal(v Value) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}
