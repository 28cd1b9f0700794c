package screener

import (
	"math"
	"slices"

	"github.com/shopspring/decimal"
)

// MaxOptions bounds the number of threshold options generated for a numeric facet.
const MaxOptions = 1000

// CategoricalStats holds the facet of a categorical field.
type CategoricalStats struct {
	// Values are the unique non empty display strings, in order of first appearance.
	Values []string
}

// Contains returns true if s is one of the facet values.
func (c CategoricalStats) Contains(s string) bool { return slices.Contains(c.Values, s) }

// NumericStats holds the facet of a numeric field.
type NumericStats struct {
	Count          int // number of numeric values
	Min, Max, Mean decimal.Decimal
	StdDev         float64 // population standard deviation
}

// Facet is the filter metadata of a single field. Exactly one of Categorical or Numeric is set.
type Facet struct {
	Name        string
	Kind        FieldKind
	Categorical *CategoricalStats
	Numeric     *NumericStats
}

// Facets is the ordered list of facets of a dataset, in schema order.
type Facets []Facet

// Lookup returns the facet of the field 'name'.
func (fs Facets) Lookup(name string) (Facet, bool) {
	i := slices.IndexFunc(fs, func(f Facet) bool { return f.Name == name })
	if i < 0 {
		return Facet{}, false
	}
	return fs[i], true
}

// Kind filters the facets of a given kind.
func (fs Facets) Kind(k FieldKind) Facets {
	var res Facets
	for _, f := range fs {
		if f.Kind == k {
			res = append(res, f)
		}
	}
	return res
}

// DeriveFacets computes the facets of a dataset using its inferred schema.
func DeriveFacets(ds Dataset) Facets { return DeriveFacetsWith(InferSchema(ds), ds) }

// DeriveFacetsWith computes the facets of a dataset for an explicit schema.
//
// Categorical fields collect the unique display strings of every record, null and empty
// values excluded. Numeric fields collect every numeric value, other values are ignored, and
// a numeric field without any numeric value has no facet.
//
// The result only depends on the dataset content and is safe to memoize.
func DeriveFacetsWith(schema Schema, ds Dataset) Facets {
	fs := make(Facets, 0, len(schema))
	if len(ds) == 0 {
		return fs
	}
	for _, col := range schema {
		switch col.Kind {
		case Categorical:
			fs = append(fs, Facet{Name: col.Name, Kind: Categorical, Categorical: categoricalStats(col.Name, ds)})
		case Numeric:
			if stats, ok := numericStats(col.Name, ds); ok {
				fs = append(fs, Facet{Name: col.Name, Kind: Numeric, Numeric: stats})
			}
		}
	}
	return fs
}

func categoricalStats(name string, ds Dataset) *CategoricalStats {
	seen := make(map[string]bool)
	stats := &CategoricalStats{Values: []string{}}
	for _, r := range ds {
		v := r.Get(name)
		if v.IsEmpty() {
			continue
		}
		s := v.String()
		if seen[s] {
			continue
		}
		seen[s] = true
		stats.Values = append(stats.Values, s)
	}
	return stats
}

func numericStats(name string, ds Dataset) (*NumericStats, bool) {
	values := make([]decimal.Decimal, 0, len(ds))
	for _, r := range ds {
		if d, ok := r.Get(name).Number(); ok {
			values = append(values, d)
		}
	}
	if len(values) == 0 {
		return nil, false
	}
	n := decimal.NewFromInt(int64(len(values)))
	mean := decimal.Sum(values[0], values[1:]...).Div(n)

	variance := decimal.Zero
	for _, v := range values {
		dev := v.Sub(mean)
		variance = variance.Add(dev.Mul(dev))
	}
	variance = variance.Div(n)

	return &NumericStats{
		Count:  len(values),
		Min:    decimal.Min(values[0], values[1:]...),
		Max:    decimal.Max(values[0], values[1:]...),
		Mean:   mean,
		StdDev: math.Sqrt(variance.InexactFloat64()),
	}, true
}

// Step returns the threshold step for a standard deviation: the deviation rounded up to
// its leading digit (86.95 gives 90, 0.042 gives 0.05).
// There is no step for a zero, negative or non finite deviation.
func Step(stdDev float64) (decimal.Decimal, bool) {
	if !(stdDev > 0) || math.IsInf(stdDev, 0) {
		return decimal.Zero, false
	}
	exp := math.Floor(math.Log10(stdDev))
	magnitude := decimal.New(1, int32(exp))
	step := decimal.NewFromFloat(stdDev).Div(magnitude).Ceil().Mul(magnitude)
	if !step.IsPositive() {
		return decimal.Zero, false
	}
	return step, true
}

// Option is a numeric threshold choice, it reads "greater than Value".
type Option struct {
	Value decimal.Decimal
	Label string
}

// Step returns the threshold step of the facet.
func (s NumericStats) Step() (decimal.Decimal, bool) { return Step(s.StdDev) }

// Options returns the threshold choices step, 2*step, ... up to Max.
// A facet without step has no options, and at most MaxOptions are generated.
func (s NumericStats) Options() []Option {
	step, ok := s.Step()
	if !ok {
		return nil
	}
	var opts []Option
	for i := 1; i <= MaxOptions; i++ {
		current := step.Mul(decimal.NewFromInt(int64(i)))
		if current.GreaterThan(s.Max) {
			break
		}
		opts = append(opts, Option{Value: current, Label: "> " + Compact(current)})
	}
	return opts
}
