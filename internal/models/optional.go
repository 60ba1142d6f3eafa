package models

import (
	"bytes"
	"encoding/json"
)

// Optional is an update-payload field that distinguishes "omitted" from
// "explicitly set to null" from "set to a value". Change-sets are computed
// from Set before any defaulting runs, so a stale stored value that the
// caller never touched is never reported as a change.
type Optional[T any] struct {
	Set   bool
	Valid bool // false when the payload carried an explicit null
	Value T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(b, []byte("null")) {
		o.Valid = false
		var zero T
		o.Value = zero
		return nil
	}
	o.Valid = true
	return json.Unmarshal(b, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Ptr returns the value as a nullable pointer: nil for both omitted and
// explicit null.
func (o Optional[T]) Ptr() *T {
	if !o.Set || !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}
