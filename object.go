package fhirconv

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// Object is an insertion-ordered string-keyed map. Output key order is
// schema-declared, which a plain Go map cannot preserve through encoding.
type Object struct {
	keys []string
	vals map[string]any
}

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return &Object{vals: make(map[string]any)}
}

// Set assigns the value for a key. A key set for the first time is appended
// to the key order; re-setting an existing key keeps its original position.
func (o *Object) Set(key string, v any) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Get returns the value for a key and whether it is present.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Has reports whether the key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.vals[key]
	return ok
}

// Len returns the number of keys.
func (o *Object) Len() int { return len(o.keys) }

// Keys returns the keys in insertion order. The returned slice is shared;
// callers must not modify it.
func (o *Object) Keys() []string { return o.keys }

// MarshalJSON encodes the object with keys in insertion order. Values are
// delegated to the JSON encoder, so nested objects, slices and Decimal
// literals encode through their own marshalers.
func (o *Object) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		b.Write(kb)
		b.WriteByte(':')
		vb, err := json.Marshal(o.vals[k])
		if err != nil {
			return nil, err
		}
		b.Write(vb)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}
