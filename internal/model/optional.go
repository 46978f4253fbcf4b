package model

import "encoding/json"

// Optional tracks whether a JSON field was present in a request body.
// A field that is absent or explicitly null is reported as not present,
// so partial updates keep the stored value in both cases.
type Optional[T any] struct {
    Value T
    Set   bool // the key appeared in the document
    Null  bool // the key appeared with a null value
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] { return Optional[T]{Value: v, Set: true} }

// Present reports whether a non-null value was supplied.
func (o Optional[T]) Present() bool { return o.Set && !o.Null }

// Get returns the value and whether it was supplied.
func (o Optional[T]) Get() (T, bool) { return o.Value, o.Present() }

// UnmarshalJSON is only invoked when the key exists in the payload.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
    o.Set = true
    if string(b) == "null" {
        o.Null = true
        var zero T
        o.Value = zero
        return nil
    }
    o.Null = false
    return json.Unmarshal(b, &o.Value)
}

// MarshalJSON writes the value, or null when nothing was supplied.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
    if !o.Present() {
        return []byte("null"), nil
    }
    return json.Marshal(o.Value)
}
