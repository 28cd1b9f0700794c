package screener

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDeriveFacets(t *testing.T) {
	fs := DeriveFacets(stocks())

	if diff := cmp.Diff([]string{"ticker", "sector", "price"}, facetNames(fs)); diff != "" {
		t.Fatalf("facet names mismatch (-want +got):\n%s", diff)
	}

	sector, _ := fs.Lookup("sector")
	if sector.Kind != Categorical || sector.Categorical == nil {
		t.Fatalf("sector facet = %+v, want categorical", sector)
	}
	if diff := cmp.Diff([]string{"Tech", "Energy"}, sector.Categorical.Values); diff != "" {
		t.Errorf("sector values mismatch (-want +got):\n%s", diff)
	}

	price, _ := fs.Lookup("price")
	if price.Kind != Numeric || price.Numeric == nil {
		t.Fatalf("price facet = %+v, want numeric", price)
	}
	s := price.Numeric
	if s.Count != 3 || !s.Min.Equal(dec("90")) || !s.Max.Equal(dec("300")) || !s.Mean.Equal(dec("180")) {
		t.Errorf("price stats = count %d min %v max %v mean %v, want 3 90 300 180", s.Count, s.Min, s.Max, s.Mean)
	}
	// population deviation: sqrt((30² + 120² + 90²) / 3)
	if want := math.Sqrt(7800); math.Abs(s.StdDev-want) > 1e-9 {
		t.Errorf("price std = %v, want %v", s.StdDev, want)
	}
}

func TestDeriveFacets_Empty(t *testing.T) {
	if fs := DeriveFacets(nil); len(fs) != 0 {
		t.Errorf("DeriveFacets(nil) = %v, want no facets", fs)
	}
	if fs := DeriveFacets(Dataset{}); len(fs) != 0 {
		t.Errorf("DeriveFacets([]) = %v, want no facets", fs)
	}
}

func TestDeriveFacets_Heterogeneous(t *testing.T) {
	ds := Dataset{
		NewRecord(F("name", S("a")), F("score", N(10)), F("rating", N(1))),
		NewRecord(F("name", S("")), F("score", S("n/a")), F("rating", Null())),
		NewRecord(F("name", Null()), F("score", N(20))),
		NewRecord(F("name", N(7)), F("score", N(30))),
		NewRecord(F("name", S("a"))),
	}
	fs := DeriveFacets(ds)

	name, _ := fs.Lookup("name")
	// empty and null are dropped, numbers in a categorical field use their display string.
	if diff := cmp.Diff([]string{"a", "7"}, name.Categorical.Values); diff != "" {
		t.Errorf("name values mismatch (-want +got):\n%s", diff)
	}

	score, _ := fs.Lookup("score")
	if score.Numeric.Count != 3 || !score.Numeric.Mean.Equal(dec("20")) {
		t.Errorf("score stats = %+v, want 3 values with mean 20", score.Numeric)
	}

	rating, _ := fs.Lookup("rating")
	if rating.Numeric.StdDev != 0 {
		t.Errorf("rating std = %v, want 0", rating.Numeric.StdDev)
	}
	if opts := rating.Numeric.Options(); len(opts) != 0 {
		t.Errorf("rating options = %v, want none for a zero deviation", opts)
	}
}

func TestDeriveFacets_NumericWithoutNumbers(t *testing.T) {
	ds := Dataset{
		NewRecord(F("ticker", S("A")), F("price", N(1))),
		NewRecord(F("ticker", S("B")), F("price", N(2))),
	}
	schema := Schema{{Name: "ticker", Kind: Categorical}, {Name: "missing", Kind: Numeric}}
	fs := DeriveFacetsWith(schema, ds)
	if _, ok := fs.Lookup("missing"); ok {
		t.Error("a numeric field without numbers must not have a facet")
	}
	if diff := cmp.Diff([]string{"ticker"}, facetNames(fs)); diff != "" {
		t.Errorf("facet names mismatch (-want +got):\n%s", diff)
	}
}

func TestDeriveFacets_NullFirst(t *testing.T) {
	ds := Dataset{
		NewRecord(F("ticker", S("NEW")), F("price", Null())),
		NewRecord(F("ticker", S("AAPL")), F("price", N(150))),
		NewRecord(F("ticker", S("MSFT")), F("price", N(300))),
	}
	price, ok := DeriveFacets(ds).Lookup("price")
	if !ok || price.Kind != Numeric || price.Numeric == nil || price.Categorical != nil {
		t.Fatalf("price facet = %+v, want numeric", price)
	}
	if s := price.Numeric; s.Count != 2 || !s.Min.Equal(dec("150")) || !s.Mean.Equal(dec("225")) {
		t.Errorf("price stats = %+v, want 2 values from 150 with mean 225", s)
	}
}

func TestDeriveFacets_Deterministic(t *testing.T) {
	a := DeriveFacets(stocks())
	b := DeriveFacets(stocks())
	opts := cmp.Comparer(func(x, y decimal.Decimal) bool { return x.Equal(y) })
	if diff := cmp.Diff(a, b, opts); diff != "" {
		t.Errorf("facets of equal datasets differ (-a +b):\n%s", diff)
	}
}

func TestStep(t *testing.T) {
	tests := []struct {
		std  float64
		want string
		ok   bool
	}{
		{std: 86.95, want: "90", ok: true},
		{std: math.Sqrt(7800), want: "90", ok: true},
		{std: 0.042, want: "0.05", ok: true},
		{std: 0.3, want: "0.3", ok: true},
		{std: 1000, want: "1000", ok: true},
		{std: 1, want: "1", ok: true},
		{std: 12345, want: "20000", ok: true},
		{std: 0},
		{std: -5},
		{std: math.NaN()},
		{std: math.Inf(1)},
	}
	for _, tt := range tests {
		got, ok := Step(tt.std)
		if ok != tt.ok {
			t.Errorf("Step(%v) ok = %v, want %v", tt.std, ok, tt.ok)
			continue
		}
		if ok && !got.Equal(dec(tt.want)) {
			t.Errorf("Step(%v) = %v, want %v", tt.std, got, tt.want)
		}
	}
}

func TestNumericStats_Options(t *testing.T) {
	price, _ := DeriveFacets(stocks()).Lookup("price")
	opts := price.Numeric.Options()

	var labels []string
	for _, o := range opts {
		labels = append(labels, o.Label)
	}
	if diff := cmp.Diff([]string{"> 90", "> 180", "> 270"}, labels); diff != "" {
		t.Errorf("option labels mismatch (-want +got):\n%s", diff)
	}
	if !opts[2].Value.Equal(dec("270")) {
		t.Errorf("last option = %v, want 270", opts[2].Value)
	}
}

func TestNumericStats_OptionsBounded(t *testing.T) {
	// A tiny deviation over a large range would loop for a long time without the bound.
	s := NumericStats{Count: 2, Min: dec("0"), Max: dec("1000000"), StdDev: 0.001}
	if got := len(s.Options()); got != MaxOptions {
		t.Errorf("len(Options()) = %d, want %d", got, MaxOptions)
	}

	s = NumericStats{Count: 2, Min: dec("-10"), Max: dec("-1"), StdDev: 2}
	if got := s.Options(); len(got) != 0 {
		t.Errorf("Options() = %v, want none when max is below the step", got)
	}
}

func TestCompact(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"90", "90"},
		{"1.234", "1.23"},
		{"999", "999"},
		{"1500", "1.5K"},
		{"20000", "20K"},
		{"999999", "1M"},
		{"2000000", "2M"},
		{"3250000000", "3.25B"},
		{"1000000000000", "1T"},
		{"-1500", "-1.5K"},
	}
	for _, tt := range tests {
		if got := Compact(dec(tt.in)); got != tt.want {
			t.Errorf("Compact(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func facetNames(fs Facets) []string {
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.Name
	}
	return names
}
