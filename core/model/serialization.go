package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrSerialization = errors.New("serialization failure")

// Serialize encodes v into its wire form.
func Serialize(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	return b, nil
}

// Deserialize decodes a value previously produced by Serialize.
func Deserialize[T any](b []byte) (T, error) {
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return v, fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	return v, nil
}
