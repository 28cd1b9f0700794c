package screener

import "fmt"

// FieldKind classifies a field of a dataset for filtering and rendering.
type FieldKind int

const (
	// Categorical fields hold texts, they are filtered by exact match.
	Categorical FieldKind = iota
	// Numeric fields hold numbers, they are filtered by exact match, range or threshold.
	Numeric
)

func (k FieldKind) String() string {
	switch k {
	case Categorical:
		return "categorical"
	case Numeric:
		return "numeric"
	default:
		return "unknown"
	}
}

// ParseFieldKind parses a string into a FieldKind.
func ParseFieldKind(s string) (FieldKind, error) {
	switch s {
	case "categorical", "qualitative":
		return Categorical, nil
	case "numeric", "quantitative":
		return Numeric, nil
	default:
		return 0, fmt.Errorf("unknown field kind: %q", s)
	}
}

// kindOf returns the kind a value implies. Null, for a field without any value, is Categorical.
func kindOf(v Value) FieldKind {
	if v.IsNumber() {
		return Numeric
	}
	return Categorical
}
