package story

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind identifies which member of the Value union is set.
type Kind string

const (
	KindNumber  Kind = "number"
	KindString  Kind = "string"
	KindBoolean Kind = "boolean"
)

// Value is a closed tagged union of the three variable kinds the scripting
// language supports. Kind mismatches are rejected explicitly rather than
// coerced.
type Value struct {
	Kind Kind
	Num  int
	Str  string
	Bool bool
}

// Number returns a numeric Value.
func Number(n int) Value { return Value{Kind: KindNumber, Num: n} }

// String returns a string Value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Boolean returns a boolean Value.
func Boolean(b bool) Value { return Value{Kind: KindBoolean, Bool: b} }

// Display renders the value the way it appears inside interpolated narration.
func (v Value) Display() string {
	switch v.Kind {
	case KindNumber:
		return strconv.Itoa(v.Num)
	case KindBoolean:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}

// Equal reports whether two values of the same kind are equal.
// Comparing values of different kinds is a type error, not false.
func (v Value) Equal(other Value) (bool, error) {
	if v.Kind != other.Kind {
		return false, &TypeMismatchError{Op: "=", Left: v.Kind, Right: other.Kind}
	}
	switch v.Kind {
	case KindNumber:
		return v.Num == other.Num, nil
	case KindBoolean:
		return v.Bool == other.Bool, nil
	default:
		return v.Str == other.Str, nil
	}
}

// Compare orders two numeric values, returning -1, 0 or 1.
// Ordering is defined only for numbers.
func (v Value) Compare(other Value, op Op) (int, error) {
	if v.Kind != KindNumber || other.Kind != KindNumber {
		return 0, &TypeMismatchError{Op: string(op), Left: v.Kind, Right: other.Kind}
	}
	switch {
	case v.Num < other.Num:
		return -1, nil
	case v.Num > other.Num:
		return 1, nil
	default:
		return 0, nil
	}
}

// valueJSON is the tagged wire form, used by stores that serialize sessions.
type valueJSON struct {
	Kind Kind            `json:"kind"`
	Val  json.RawMessage `json:"value"`
}

// MarshalJSON encodes the value in tagged form so the kind survives a
// round-trip through a serializing store.
func (v Value) MarshalJSON() ([]byte, error) {
	var raw []byte
	var err error
	switch v.Kind {
	case KindNumber:
		raw, err = json.Marshal(v.Num)
	case KindBoolean:
		raw, err = json.Marshal(v.Bool)
	case KindString:
		raw, err = json.Marshal(v.Str)
	default:
		return nil, fmt.Errorf("cannot marshal value of unknown kind %q", v.Kind)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(valueJSON{Kind: v.Kind, Val: raw})
}

// UnmarshalJSON decodes the tagged form produced by MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	var wire valueJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	switch wire.Kind {
	case KindNumber:
		var n int
		if err := json.Unmarshal(wire.Val, &n); err != nil {
			return fmt.Errorf("number value: %w", err)
		}
		*v = Number(n)
	case KindBoolean:
		var b bool
		if err := json.Unmarshal(wire.Val, &b); err != nil {
			return fmt.Errorf("boolean value: %w", err)
		}
		*v = Boolean(b)
	case KindString:
		var s string
		if err := json.Unmarshal(wire.Val, &s); err != nil {
			return fmt.Errorf("string value: %w", err)
		}
		*v = String(s)
	default:
		return fmt.Errorf("cannot unmarshal value of unknown kind %q", wire.Kind)
	}
	return nil
}
