// Package model defines the value types shared by the reconciliation packages.
package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Kind classifies a raw registry value.
type Kind int

const (
	KindMissing Kind = iota
	KindString
	KindNumber
)

// Value is one raw cell contributed by a source record. A FieldValueSet is
// a []Value; every collapsing rule accepts that shape.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
}

// Missing returns the missing value.
func Missing() Value {
	return Value{}
}

// String wraps a text cell. The empty string is kept as a string value;
// rules decide whether blank text counts as missing.
func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// Number wraps a numeric cell. NaN is treated as missing.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Missing()
	}
	return Value{Kind: KindNumber, Num: f}
}

// Strings wraps each element as a String value.
func Strings(ss ...string) []Value {
	out := make([]Value, len(ss))
	for i, s := range ss {
		out[i] = String(s)
	}
	return out
}

// Numbers wraps each element as a Number value.
func Numbers(fs ...float64) []Value {
	out := make([]Value, len(fs))
	for i, f := range fs {
		out[i] = Number(f)
	}
	return out
}

// IsMissing reports whether the value is missing or blank text.
func (v Value) IsMissing() bool {
	switch v.Kind {
	case KindString:
		return strings.TrimSpace(v.Str) == ""
	case KindNumber:
		return false
	default:
		return true
	}
}

// Text renders the value as text. Whole numbers are rendered without a
// fractional part; missing values render as "".
func (v Value) Text() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return FormatNumber(v.Num)
	default:
		return ""
	}
}

// FormatNumber renders whole numbers as integers and everything else in
// the shortest exact decimal form.
func FormatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// MarshalJSON encodes missing as null, numbers as JSON numbers and strings as JSON strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString:
		return json.Marshal(v.Str)
	case KindNumber:
		return json.Marshal(v.Num)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, a JSON string or a JSON number.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case string:
		*v = String(x)
	case float64:
		*v = Number(x)
	case nil:
		*v = Missing()
	default:
		return eris.Errorf("model: unsupported value %s", string(data))
	}
	return nil
}
