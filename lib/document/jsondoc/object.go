package jsondoc

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// object is a json object that remembers the order of its keys.
// Values are nil, string, json.Number, bool, *object or []any.
type object struct {
	keys   []string
	values map[string]any
}

func newObject() *object {
	return &object{values: map[string]any{}}
}

// Get returns the value of a key
func (o *object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Object returns the value of a key if it is an object
func (o *object) Object(key string) (*object, bool) {
	v, ok := o.values[key]
	if !ok {
		return nil, false
	}
	obj, ok := v.(*object)
	return obj, ok
}

// Set inserts or replaces a value. A replaced key keeps its position.
func (o *object) Set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Keys returns the keys in insertion order
func (o *object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// ObjectKeys returns the keys whose values are objects, in insertion order
func (o *object) ObjectKeys() []string {
	var keys []string
	for _, k := range o.keys {
		if _, ok := o.values[k].(*object); ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// MarshalJSON implements json.Marshaler
func (o *object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// marshal encodes v without escaping html characters, so markup in settings
// stays readable in the file
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// marshalIndent encodes v like marshal, indented by two spaces
func marshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unmarshal decodes a single json value keeping the key order of objects
func unmarshal(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after the top-level value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		// string, json.Number, bool or nil
		return tok, nil
	}

	switch delim {
	case '{':
		obj := newObject()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, errors.Errorf("unexpected object key %v", keyTok)
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, errors.WithMessagef(err, "key %q", key)
			}
			obj.Set(key, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, errors.Errorf("unexpected delimiter %v", delim)
	}
}
