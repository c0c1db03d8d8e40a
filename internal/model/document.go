package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errNotObject = errors.New("document must be a JSON object")

// marshalWithExtra encodes known and folds the extra fields into the same
// object. Known fields win on key collisions.
func marshalWithExtra(known any, extra bson.M) ([]byte, error) {
	b, err := json.Marshal(known)
	if err != nil || len(extra) == 0 {
		return b, err
	}

	var out map[string]json.RawMessage
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, ok := out[k]; ok {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		out[k] = raw
	}
	return json.Marshal(out)
}

// splitExtra returns every top-level field of data not listed in known.
// Known names match case-insensitively, as encoding/json does when it fills
// the typed fields. Whole numbers are kept as int64 so they are stored as
// BSON integers rather than doubles.
func splitExtra(data []byte, known ...string) (bson.M, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var all map[string]any
	if err := dec.Decode(&all); err != nil {
		return nil, err
	}
	if all == nil {
		return nil, errNotObject
	}

	extra := bson.M{}
	for k, v := range all {
		if isKnown(k, known) {
			continue
		}
		extra[k] = normalizeNumbers(v)
	}
	if len(extra) == 0 {
		return nil, nil
	}
	return extra, nil
}

func isKnown(key string, known []string) bool {
	for _, k := range known {
		if strings.EqualFold(key, k) {
			return true
		}
	}
	return false
}

func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		f, _ := t.Float64()
		return f
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeNumbers(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalizeNumbers(e)
		}
		return t
	default:
		return v
	}
}

// stringField reads a string field, empty when absent or not a string.
func stringField(m bson.M, key string) string {
	s, _ := m[key].(string)
	return s
}

// stringList reads an array field of strings. Arrays decode as primitive.A
// from BSON and as []any from JSON.
func stringList(m bson.M, key string) []string {
	var items []any
	switch t := m[key].(type) {
	case primitive.A:
		items = t
	case []any:
		items = t
	case []string:
		return t
	default:
		return nil
	}
	return cast.ToStringSlice(items)
}
