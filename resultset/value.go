package resultset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind discriminates the variants of Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindText
	KindInt
	KindFloat
	KindDecimal
	KindBool
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindDecimal:
		return "decimal"
	case KindBool:
		return "bool"
	case KindOther:
		return "other"
	}
	return "unknown"
}

// Value is a single cell as produced by a query executor: text, a numeric
// variant, a boolean, NULL, or an opaque value of some other type (dates,
// byte arrays, ranges, ...). Opaque values take part in comparison via their
// printed representation and are otherwise left alone.
type Value struct {
	kind  Kind
	text  string
	i     int64
	f     float64
	dec   decimal.Decimal
	b     bool
	other any
}

func NullValue() Value { return Value{kind: KindNull} }

func TextValue(s string) Value { return Value{kind: KindText, text: s} }

func IntValue(i int64) Value { return Value{kind: KindInt, i: i} }

func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f} }

func DecimalValue(d decimal.Decimal) Value { return Value{kind: KindDecimal, dec: d} }

func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

func OtherValue(v any) Value { return Value{kind: KindOther, other: v} }

func (v Value) Kind() Kind { return v.kind }

// Text returns the text payload. Valid only for KindText.
func (v Value) Text() string { return v.text }

// Float returns the float payload. Valid only for KindFloat.
func (v Value) Float() float64 { return v.f }

// Other returns the opaque payload. Valid only for KindOther.
func (v Value) Other() any { return v.other }

// Key returns a stable string key for the value. Two values get the same key
// exactly when they are the same variant carrying an equal payload. Keys are
// prefixed per kind so payloads of different kinds never collide.
func (v Value) Key() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindText:
		return "s:" + v.text
	case KindInt:
		return "i:" + strconv.FormatInt(v.i, 10)
	case KindFloat:
		return "f:" + strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindDecimal:
		return "d:" + v.dec.String()
	case KindBool:
		return "b:" + strconv.FormatBool(v.b)
	default:
		return "o:" + fmt.Sprint(v.other)
	}
}

// Normalize canonicalizes a value for comparison:
//
//   - text is trimmed and lower-cased; the boolean-ish tokens "true"/"yes"/"1"
//     and "false"/"no"/"0" collapse to the numbers 1 and 0
//   - booleans collapse to the numbers 1 and 0
//   - every numeric variant becomes a float rounded to 5 fractional digits,
//     which absorbs float noise and decimal/float representation differences
//   - NULL and opaque values pass through unchanged
//
// Normalize is idempotent: the boolean-token branch terminates in the numeric
// branch, and the numeric branch is a fixed point under rounding.
func Normalize(v Value) Value {
	switch v.kind {
	case KindText:
		t := strings.ToLower(strings.TrimSpace(v.text))
		switch t {
		case "true", "yes", "1":
			return Normalize(IntValue(1))
		case "false", "no", "0":
			return Normalize(IntValue(0))
		}
		return TextValue(t)
	case KindBool:
		if v.b {
			return Normalize(IntValue(1))
		}
		return Normalize(IntValue(0))
	case KindInt:
		return FloatValue(round5(float64(v.i)))
	case KindFloat:
		return FloatValue(round5(v.f))
	case KindDecimal:
		return FloatValue(v.dec.RoundBank(5).InexactFloat64())
	default:
		return v
	}
}

// round5 rounds to 5 fractional decimal digits, ties to even, by formatting
// at fixed precision and parsing back. Formatting rounds against the exact
// binary value of f, so this agrees with decimal rounding of the same number.
func round5(f float64) float64 {
	s := strconv.FormatFloat(f, 'f', 5, 64)
	out, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// NaN and the infinities round-trip through ParseFloat; nothing
		// else FormatFloat emits can fail to parse.
		return f
	}
	if out == 0 {
		// Collapse -0 so it keys identically to 0.
		return 0
	}
	return out
}
