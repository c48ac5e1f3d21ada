package fastjson

import (
	"io"

	gojson "github.com/goccy/go-json"
)

// Marshal serializes v to JSON using the fast encoder.
// This is a drop-in replacement for encoding/json.Marshal
// but is 2-3x faster.
func Marshal(v interface{}) ([]byte, error) {
	return gojson.Marshal(v)
}

// Unmarshal deserializes JSON data into v using the fast decoder.
// This is a drop-in replacement for encoding/json.Unmarshal.
func Unmarshal(data []byte, v interface{}) error {
	return gojson.Unmarshal(data, v)
}

// NewEncoder creates a new JSON encoder that writes to w.
func NewEncoder(w io.Writer) *gojson.Encoder {
	return gojson.NewEncoder(w)
}

// ToMap converts v into a generic JSON object by a marshal/unmarshal round
// trip. Values that do not encode to an object yield an error.
func ToMap(v interface{}) (map[string]interface{}, error) {
	b, err := gojson.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := map[string]interface{}{}
	if err := gojson.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
