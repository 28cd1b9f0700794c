package screener

import (
	"fmt"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparator selects how a sort field is compared.
type Comparator int

const (
	// Lexicographic compares the display strings with a locale aware collation, even for
	// numeric fields: "10" sorts before "9".
	Lexicographic Comparator = iota
	// NumericAware compares numbers by value, numbers sort before any other value, and the
	// rest is compared like Lexicographic.
	NumericAware
)

func (c Comparator) String() string {
	switch c {
	case Lexicographic:
		return "lexicographic"
	case NumericAware:
		return "numeric"
	default:
		return "unknown"
	}
}

// ParseComparator parses a string into a Comparator.
func ParseComparator(s string) (Comparator, error) {
	switch s {
	case "lexicographic", "":
		return Lexicographic, nil
	case "numeric", "numeric-aware":
		return NumericAware, nil
	default:
		return 0, fmt.Errorf("unknown sort comparator: %q", s)
	}
}

// collator is not safe for concurrent use, it is guarded by collatorMu.
var (
	collatorMu sync.Mutex
	collator   = collate.New(language.English)
)

func compareStrings(a, b string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return collator.CompareString(a, b)
}

// compare returns -1, 0 or +1 comparing a and b with the comparator c.
func (c Comparator) compare(a, b Value) int {
	if c == NumericAware {
		an, aok := a.Number()
		bn, bok := b.Number()
		switch {
		case aok && bok:
			return an.Cmp(bn)
		case aok:
			return -1
		case bok:
			return 1
		}
	}
	return compareStrings(a.String(), b.String())
}
