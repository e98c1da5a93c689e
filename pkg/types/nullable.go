package types

import (
	"bytes"
	"encoding/json"
)

// Nullable tracks whether a JSON field was present and whether it was null.
// Present is false when the key was absent; Value is nil when it was null.
type Nullable[T any] struct {
	Present bool
	Value   *T
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	n.Present = true
	if bytes.Equal(trimmed, []byte("null")) {
		n.Value = nil
		return nil
	}

	var parsed T
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		return err
	}
	n.Value = &parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// Some builds a present, non-null value.
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Present: true, Value: &v}
}

// Null builds a present, explicitly null value.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Present: true}
}

// Or returns the value when set, fallback otherwise (absent or null).
func (n Nullable[T]) Or(fallback T) T {
	if n.Value == nil {
		return fallback
	}
	return *n.Value
}
