package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Optional is a tagged value: either Some(v) or None.
// None marshals to JSON null and means "use the backend default".
type Optional[T any] struct {
	value T
	set   bool
}

// Some wraps a present value
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an absent value
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSome reports whether a value is present
func (o Optional[T]) IsSome() bool {
	return o.set
}

// OrElse returns the value, or def when absent
func (o Optional[T]) OrElse(def T) T {
	if o.set {
		return o.value
	}
	return def
}

// String renders the value or "none"
func (o Optional[T]) String() string {
	if !o.set {
		return "none"
	}
	return fmt.Sprintf("%v", o.value)
}

// MarshalJSON implements custom JSON marshaling for Optional
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON implements custom JSON unmarshaling for Optional
// A JSON null (or missing field) leaves the value absent.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = None[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
