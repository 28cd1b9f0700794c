package screener

import (
	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

type valueKind uint8

const (
	nullValue valueKind = iota
	numberValue
	textValue
)

// Value is a single scalar cell of a Record: null, an exact number or a text.
// Its zero value is Null.
type Value struct {
	kind valueKind
	num  decimal.Decimal
	str  string
}

// N returns a numeric Value.
func N[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Value {
	return Value{kind: numberValue, num: newDecimal(value)}
}

// S returns a text Value.
func S(s string) Value { return Value{kind: textValue, str: s} }

// Null returns the null Value.
func Null() Value { return Value{} }

func (v Value) IsNull() bool   { return v.kind == nullValue }
func (v Value) IsNumber() bool { return v.kind == numberValue }
func (v Value) IsText() bool   { return v.kind == textValue }

// Number returns the numeric content of v, ok is false if v is not a number.
func (v Value) Number() (d decimal.Decimal, ok bool) { return v.num, v.kind == numberValue }

// Text returns the text content of v, ok is false if v is not a text.
func (v Value) Text() (s string, ok bool) { return v.str, v.kind == textValue }

// String returns the display string of the value, used for search and lexicographic sort.
// Null is displayed as the empty string.
func (v Value) String() string {
	switch v.kind {
	case numberValue:
		return v.num.String()
	case textValue:
		return v.str
	default:
		return ""
	}
}

// Equal reports whether v and w have the same kind and content.
// Numbers are compared by value, so 1.50 equals 1.5.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case numberValue:
		return v.num.Equal(w.num)
	case textValue:
		return v.str == w.str
	default:
		return true
	}
}

// IsEmpty returns true for null values and empty texts.
func (v Value) IsEmpty() bool {
	return v.kind == nullValue || (v.kind == textValue && v.str == "")
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case numberValue:
		// decimal marshals as a quoted string by default, records want a JSON number.
		return []byte(v.num.String()), nil
	case textValue:
		return marshalString(v.str)
	default:
		return []byte("null"), nil
	}
}
