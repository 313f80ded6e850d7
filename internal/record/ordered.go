package record

import (
	"bytes"
	"encoding/json"
)

// MarshalPlain encodes v as compact JSON without escaping HTML characters,
// so URLs keep their literal ampersands.
func MarshalPlain(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalOrdered encodes keys and their values as a JSON object, keeping the
// order of keys.
func MarshalOrdered(keys []string, value func(key string) any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := MarshalPlain(key)
		if err != nil {
			return nil, err
		}
		v, err := MarshalPlain(value(key))
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
