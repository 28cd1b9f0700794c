package screener

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

type predicateOp int

const (
	inactive predicateOp = iota
	equalText
	equalNumber
	between
	above
)

// Predicate is a constraint on a single field. Its zero value is inactive and matches any value.
type Predicate struct {
	op     predicateOp
	text   string
	lo, hi decimal.Decimal
}

// Is returns a predicate matching values whose display string is exactly s.
func Is(s string) Predicate { return Predicate{op: equalText, text: s} }

// Eq returns a predicate matching numbers equal to v.
func Eq[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](v T) Predicate {
	d := newDecimal(v)
	return Predicate{op: equalNumber, lo: d, hi: d}
}

// Between returns a predicate matching numbers in the closed range [min, max].
// If min is greater than max, they are swapped.
func Between[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](min, max T) Predicate {
	lo, hi := newDecimal(min), newDecimal(max)
	if lo.GreaterThan(hi) {
		lo, hi = hi, lo
	}
	return Predicate{op: between, lo: lo, hi: hi}
}

// Above returns a predicate matching numbers strictly greater than v.
func Above[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](v T) Predicate {
	return Predicate{op: above, lo: newDecimal(v)}
}

// IsActive returns false for the zero predicate.
func (p Predicate) IsActive() bool { return p.op != inactive }

// Kind returns the field kind this predicate applies to.
func (p Predicate) Kind() FieldKind {
	if p.op == equalText || p.op == inactive {
		return Categorical
	}
	return Numeric
}

// Match reports whether v satisfies the predicate.
// Text predicates compare display strings, so a number in a categorical field matches its
// display string. Numeric predicates only match numbers.
func (p Predicate) Match(v Value) bool {
	if p.op == inactive {
		return true
	}
	if p.op == equalText {
		return v.String() == p.text
	}
	d, ok := v.Number()
	if !ok {
		return false
	}
	switch p.op {
	case equalNumber:
		return d.Equal(p.lo)
	case between:
		return d.GreaterThanOrEqual(p.lo) && d.LessThanOrEqual(p.hi)
	case above:
		return d.GreaterThan(p.lo)
	default:
		return false
	}
}

// String returns the predicate in the filter expression syntax, without the field name.
func (p Predicate) String() string {
	switch p.op {
	case equalText:
		return "=" + p.text
	case equalNumber:
		return "==" + p.lo.String()
	case between:
		return "=" + p.lo.String() + ".." + p.hi.String()
	case above:
		return ">" + p.lo.String()
	default:
		return ""
	}
}

// Filters maps field names to predicates. Missing or inactive entries are vacuously satisfied,
// active entries are ANDed.
type Filters map[string]Predicate

// Active returns the names of the fields with an active predicate, sorted.
func (fs Filters) Active() []string {
	names := slices.Collect(maps.Keys(fs))
	names = slices.DeleteFunc(names, func(name string) bool { return !fs[name].IsActive() })
	slices.Sort(names)
	return names
}

// Validate checks every active predicate against the schema: the field must exist and its
// kind must match the predicate kind. It returns all failures joined.
func (fs Filters) Validate(schema Schema) error {
	var errs []error
	for _, name := range fs.Active() {
		p := fs[name]
		kind, err := schema.Kind(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("filter %s%s: %w", name, p, err))
			continue
		}
		if kind != p.Kind() {
			errs = append(errs, fmt.Errorf("filter %s%s: %w: %s field", name, p, ErrKindMismatch, kind))
		}
	}
	return errors.Join(errs...)
}

// Match reports whether the record satisfies all active predicates.
func (fs Filters) Match(r *Record) bool {
	for name, p := range fs {
		if !p.Match(r.Get(name)) {
			return false
		}
	}
	return true
}

// ParseFilter parses a filter expression:
//
//	sector=Energy     exact text, or exact number if 'price' is a numeric field
//	price==150        exact number
//	price=100..200    numbers in the closed range
//	price>90          numbers strictly greater
//
// The schema is used to interpret 'field=value' on numeric fields, and to validate the result.
func ParseFilter(schema Schema, expr string) (name string, p Predicate, err error) {
	i := strings.IndexAny(expr, "=>")
	if i <= 0 {
		return "", Predicate{}, fmt.Errorf("invalid filter %q: expected field=value, field==number, field=min..max or field>number", expr)
	}
	name, op, rest := strings.TrimSpace(expr[:i]), expr[i:i+1], expr[i+1:]
	kind, err := schema.Kind(name)
	if err != nil {
		return "", Predicate{}, fmt.Errorf("invalid filter %q: %w", expr, err)
	}

	number := func(s string) (decimal.Decimal, error) {
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return d, fmt.Errorf("invalid filter %q: %q is not a number", expr, s)
		}
		return d, nil
	}

	switch {
	case op == ">":
		d, err := number(rest)
		if err != nil {
			return "", Predicate{}, err
		}
		p = Above(d)
	case strings.HasPrefix(rest, "="):
		d, err := number(rest[1:])
		if err != nil {
			return "", Predicate{}, err
		}
		p = Eq(d)
	case kind == Numeric:
		if lo, hi, found := strings.Cut(rest, ".."); found {
			dlo, err := number(lo)
			if err != nil {
				return "", Predicate{}, err
			}
			dhi, err := number(hi)
			if err != nil {
				return "", Predicate{}, err
			}
			p = Between(dlo, dhi)
		} else {
			d, err := number(rest)
			if err != nil {
				return "", Predicate{}, err
			}
			p = Eq(d)
		}
	default:
		p = Is(rest)
	}

	if err := (Filters{name: p}).Validate(schema); err != nil {
		return "", Predicate{}, err
	}
	return name, p, nil
}
