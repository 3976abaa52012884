package catalog

import (
	"bytes"
	"encoding/json"
)

// Field is an optional member of a partial update. It tells a key missing
// from the request body apart from a key explicitly set to null.
type Field[T any] struct {
	// Set reports whether the key was present.
	Set bool

	// Value is nil when the key was present with a null value.
	Value *T
}

// Some returns a set field holding v.
func Some[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: &v}
}

// Null returns a set field holding null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true}
}

// IsNull reports whether the key was present with a null value.
func (f Field[T]) IsNull() bool {
	return f.Set && f.Value == nil
}

// UnmarshalJSON is only called for keys present in the document.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.Value = &v
	return nil
}

// MarshalJSON encodes the value or null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*f.Value)
}
