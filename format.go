package screener

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// numberFormatter formats numbers with thousand separators and two decimals, without currency.
var numberFormatter = money.NewFormatter(2, ".", ",", "", "1")

// maxCents is the largest amount the formatter handles, in hundredths.
var maxCents = decimal.NewFromInt(math.MaxInt64)

// FormatNumber formats d with thousand separators and at most two decimals: 1234.5 is
// "1,234.5" and 150 is "150".
// Numbers too large for int64 hundredths (about 9.2e16) are printed without separators.
func FormatNumber(d decimal.Decimal) string {
	var s string
	if cents := d.Round(2).Shift(2); cents.Abs().GreaterThan(maxCents) {
		s = d.StringFixed(2)
	} else {
		s = numberFormatter.Format(cents.IntPart())
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

var compactUnits = []struct {
	scale  decimal.Decimal
	suffix string
}{
	{decimal.New(1, 12), "T"},
	{decimal.New(1, 9), "B"},
	{decimal.New(1, 6), "M"},
	{decimal.New(1, 3), "K"},
}

// Compact formats d in a short notation with at most two decimals: 90, 1.5K, 2M, 3.25B.
func Compact(d decimal.Decimal) string {
	abs := d.Abs()
	for i, u := range compactUnits {
		if abs.LessThan(u.scale) {
			continue
		}
		scaled := d.Div(u.scale).Round(2)
		// 999_999 rounds to 1000K, display it with the upper unit.
		if i > 0 && scaled.Abs().GreaterThanOrEqual(decimal.New(1, 3)) {
			scaled = d.Div(compactUnits[i-1].scale).Round(2)
			return scaled.String() + compactUnits[i-1].suffix
		}
		return scaled.String() + u.suffix
	}
	scaled := d.Round(2)
	if scaled.Abs().GreaterThanOrEqual(decimal.New(1, 3)) {
		return d.Div(decimal.New(1, 3)).Round(2).String() + "K"
	}
	return scaled.String()
}
