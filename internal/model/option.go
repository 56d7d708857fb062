package model

import (
	"bytes"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
)

// Option holds a value that may be absent. It encodes as JSON null and SQL
// NULL when empty.
type Option[T comparable] struct {
	value T
	valid bool
}

func Some[T comparable](v T) Option[T] {
	return Option[T]{value: v, valid: true}
}

func None[T comparable]() Option[T] {
	return Option[T]{}
}

func (o Option[T]) Get() (T, bool) {
	return o.value, o.valid
}

func (o Option[T]) IsSome() bool {
	return o.valid
}

func (o Option[T]) OrElse(fallback T) T {
	if o.valid {
		return o.value
	}
	return fallback
}

// Equal is true when both are absent or both hold the same value.
func (o Option[T]) Equal(other Option[T]) bool {
	if o.valid != other.valid {
		return false
	}
	return !o.valid || o.value == other.value
}

func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o *Option[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Option[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

func (o *Option[T]) Scan(src interface{}) error {
	var n sql.Null[T]
	if err := n.Scan(src); err != nil {
		return err
	}
	*o = Option[T]{value: n.V, valid: n.Valid}
	return nil
}

func (o Option[T]) Value() (driver.Value, error) {
	return sql.Null[T]{V: o.value, Valid: o.valid}.Value()
}
