package renderer

import (
	"io"
	"strconv"
	"strings"

	"github.com/etnz/screener"
	"github.com/shopspring/decimal"
)

// FacetsReport is the printable form of the facets of a dataset.
type FacetsReport struct {
	Qualitative  []QualitativeFacet
	Quantitative []QuantitativeFacet
}

// QualitativeFacet lists the values of a categorical field.
type QualitativeFacet struct {
	Name   string
	Values string // badges separated by spaces
}

// QuantitativeFacet holds the formatted statistics of a numeric field.
type QuantitativeFacet struct {
	Name                          string
	Count, Min, Max, Mean, StdDev string
	Step                          string
	Options                       string // threshold options separated by spaces
}

// NewFacetsReport formats facets for rendering.
func NewFacetsReport(fs screener.Facets) *FacetsReport {
	r := &FacetsReport{}
	for _, f := range fs {
		switch {
		case f.Categorical != nil:
			values := make([]string, len(f.Categorical.Values))
			for i, v := range f.Categorical.Values {
				values[i] = "`" + escape(v) + "`"
			}
			r.Qualitative = append(r.Qualitative, QualitativeFacet{Name: escape(f.Name), Values: strings.Join(values, " ")})

		case f.Numeric != nil:
			n := f.Numeric
			q := QuantitativeFacet{Name: escape(f.Name), Count: strconv.Itoa(n.Count)}
			if n.Count > 0 {
				q.Min = screener.FormatNumber(n.Min)
				q.Max = screener.FormatNumber(n.Max)
				q.Mean = screener.FormatNumber(n.Mean)
				q.StdDev = screener.FormatNumber(decimal.NewFromFloat(n.StdDev))
			}
			if step, ok := n.Step(); ok {
				q.Step = screener.FormatNumber(step)
			}
			var options []string
			for _, o := range n.Options() {
				options = append(options, "`"+o.Label+"`")
			}
			q.Options = strings.Join(options, " ")
			r.Quantitative = append(r.Quantitative, q)
		}
	}
	return r
}

// Facets writes the qualitative and quantitative sections of the facets. Empty sections are
// omitted.
func Facets(w io.Writer, fs screener.Facets) {
	partials := map[string]string{
		"facets_qualitative":  "facets_qualitative.md",
		"facets_quantitative": "facets_quantitative.md",
	}
	render(w, "facets", "facets.md", partials, NewFacetsReport(fs))
}

// FacetsMarkdown renders the facets to a markdown string.
func FacetsMarkdown(fs screener.Facets) string {
	var b strings.Builder
	Facets(&b, fs)
	return b.String()
}
