// Package jsonutil provides thin JSON round-trip helpers.
package jsonutil

import (
	"encoding/json"
	"fmt"
)

// ToJSON serializes v to its JSON text. Struct fields keep declaration order,
// map keys follow the standard library's sorting.
func ToJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshaling to JSON: %w", err)
	}
	return string(data), nil
}

// FromJSON parses data into a value of type T, so the result carries T's
// method set. Unknown fields are ignored, matching standard decoding.
func FromJSON[T any](data string) (*T, error) {
	var v T
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return nil, fmt.Errorf("unmarshaling from JSON: %w", err)
	}
	return &v, nil
}
