package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// UnitNotImplemented is the unit recorded for a quantity that a model
// could not compute.
const UnitNotImplemented = "NotImplemented"

// Quantity is one recorded value and its unit.
// A nil Value means the quantity was not computed.
type Quantity struct {
	Value *Number `json:"value"`
	Unit  string  `json:"unit"`
}

// Computed reports whether the quantity carries a value.
func (q Quantity) Computed() bool {
	return q.Value != nil
}

// Float64 returns the value, or NaN when it was not computed.
func (q Quantity) Float64() float64 {
	if q.Value == nil {
		return math.NaN()
	}
	return q.Value.Float64()
}

// Quantities is an insertion-ordered map from key to Quantity.
// Setting an existing key replaces its value in place.
//
// Design decision: Go maps have no order, but inputs.json and outputs.json
// should list values in the order they were computed so two runs can be
// diffed line by line. The zero value is ready to use.
type Quantities struct {
	keys   []string
	values map[string]Quantity
}

// Set records a computed value.
func (q *Quantities) Set(key string, value float64, unit string) {
	n := Number(value)
	q.put(key, Quantity{Value: &n, Unit: unit})
}

// SetMissing records that key could not be computed.
func (q *Quantities) SetMissing(key string) {
	q.put(key, Quantity{Unit: UnitNotImplemented})
}

func (q *Quantities) put(key string, v Quantity) {
	if q.values == nil {
		q.values = make(map[string]Quantity)
	}
	if _, ok := q.values[key]; !ok {
		q.keys = append(q.keys, key)
	}
	q.values[key] = v
}

// Get returns the quantity stored under key.
func (q Quantities) Get(key string) (Quantity, bool) {
	v, ok := q.values[key]
	return v, ok
}

// Value returns the computed value under key. ok is false when the key is
// absent or was not computed.
func (q Quantities) Value(key string) (float64, bool) {
	v, found := q.values[key]
	if !found || v.Value == nil {
		return 0, false
	}
	return v.Value.Float64(), true
}

// Keys returns the keys in insertion order.
func (q Quantities) Keys() []string {
	out := make([]string, len(q.keys))
	copy(out, q.keys)
	return out
}

// Len returns the number of keys.
func (q Quantities) Len() int {
	return len(q.keys)
}

// MarshalJSON writes the quantities as a JSON object in insertion order.
func (q Quantities) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range q.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(q.values[k])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping the key order of the document.
func (q *Quantities) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*q = Quantities{}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("quantities must be a JSON object")
	}

	var out Quantities
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected key token %v", tok)
		}
		var v Quantity
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("failed to decode %q: %w", key, err)
		}
		out.put(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*q = out
	return nil
}
