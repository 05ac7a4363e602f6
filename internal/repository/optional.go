package repository

import "encoding/json"

// Optional is a JSON field that distinguishes "absent" from "explicitly
// null". Partial updates need the distinction: an absent field leaves
// the column unchanged, while an explicit null (or empty string) clears
// it. The zero value means the field was not present in the request.
type Optional[T any] struct {
	Set   bool // field appeared in the JSON body
	Valid bool // field carried a non-null value
	Value T
}

// NewOptional returns a present, non-null Optional holding v.
func NewOptional[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

// NullOptional returns a present Optional carrying an explicit null.
func NullOptional[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON is only invoked for fields present in the body, so Set
// is always true here; absent fields keep the zero value.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		var zero T
		o.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}
