package screener

import (
	"fmt"
	"slices"
	"strings"
)

// DefaultRowsPerPage is the page size used when none is configured.
const DefaultRowsPerPage = 10

// SortState is the sort of a view. An empty Field keeps the dataset order.
type SortState struct {
	Field    string
	Reversed bool
}

// PageState is the pagination of a view. ActivePage is 1-based.
type PageState struct {
	RowsPerPage int
	ActivePage  int
}

// State is everything that defines a view over a dataset, except the selection.
type State struct {
	Search     string
	Sort       SortState
	Comparator Comparator
	Page       PageState
	Filters    Filters
}

// View is one page of the filtered and sorted dataset.
type View struct {
	Rows               Dataset // rows of the active page
	TotalFilteredCount int     // rows matching filters and search, all pages
	TotalPages         int     // at least 1
	ActivePage         int     // clamped into [1, TotalPages]
	RowsPerPage        int
	Sort               SortState
}

// Offset returns the position of the first row of the page in the filtered rows.
func (v View) Offset() int { return (v.ActivePage - 1) * v.RowsPerPage }

// ComputeView filters, searches, sorts and paginates the dataset, with the schema inferred
// from its first record. See ComputeViewWith.
func ComputeView(ds Dataset, st State) (View, error) {
	return ComputeViewWith(InferSchema(ds), ds, st)
}

// ComputeViewWith filters, searches, sorts and paginates the dataset.
//
// Active filters are validated against the schema first: a filter on an unknown field or of
// the wrong kind is an error and no view is computed. Otherwise it never fails: an out of range
// page is clamped and an empty dataset yields an empty single page.
// It never modifies the dataset or its records.
func ComputeViewWith(schema Schema, ds Dataset, st State) (View, error) {
	if err := st.Filters.Validate(schema); err != nil {
		return View{}, err
	}
	return computeView(ds, st), nil
}

// computeView is ComputeViewWith for filters already validated.
func computeView(ds Dataset, st State) View {
	rows := filter(ds, st.Filters, st.Search)
	Sort(rows, st.Sort, st.Comparator)

	n := st.Page.RowsPerPage
	if n <= 0 {
		n = DefaultRowsPerPage
	}
	total := len(rows)
	pages := max(1, (total+n-1)/n)
	page := min(max(st.Page.ActivePage, 1), pages)

	start := min((page-1)*n, total)
	end := min(start+n, total)
	return View{
		Rows:               rows[start:end:end],
		TotalFilteredCount: total,
		TotalPages:         pages,
		ActivePage:         page,
		RowsPerPage:        n,
		Sort:               st.Sort,
	}
}

// filter returns a new dataset with the records matching all filters and the search query.
func filter(ds Dataset, filters Filters, search string) Dataset {
	q := strings.ToLower(search)
	rows := make(Dataset, 0, len(ds))
	for _, r := range ds {
		if filters.Match(r) && Search(r, q) {
			rows = append(rows, r)
		}
	}
	return rows
}

// Search reports whether any field's display string contains the query, ignoring case.
// An empty query matches every record.
func Search(r *Record, query string) bool {
	if query == "" {
		return true
	}
	query = strings.ToLower(query)
	for f := range r.Fields() {
		if strings.Contains(strings.ToLower(f.Value.String()), query) {
			return true
		}
	}
	return false
}

// Sort sorts rows in place by the sort field, ties keep their relative order.
func Sort(rows Dataset, s SortState, c Comparator) {
	if s.Field == "" {
		return
	}
	slices.SortStableFunc(rows, func(a, b *Record) int {
		res := c.compare(a.Get(s.Field), b.Get(s.Field))
		if s.Reversed {
			return -res
		}
		return res
	})
}

// GridOptions configures a Grid. Zero values select the defaults.
type GridOptions struct {
	Schema      Schema     // inferred from the first record if nil
	RowsPerPage int        // DefaultRowsPerPage if <= 0
	Comparator  Comparator // Lexicographic by default
	Identity    Identity   // Structural if nil
}

// Grid holds a dataset and the state of its view: search, filters, sort, page and selection.
//
// State changes follow the table conventions: editing the search or the filters goes back to
// the first page, changing the sort keeps the page.
type Grid struct {
	data      Dataset
	schema    Schema
	inferred  bool
	state     State
	selection *Selection
}

// NewGrid creates a grid over a dataset.
func NewGrid(ds Dataset, opts GridOptions) *Grid {
	g := &Grid{
		data:      ds,
		schema:    opts.Schema,
		selection: NewSelection(opts.Identity),
		state: State{
			Comparator: opts.Comparator,
			Filters:    Filters{},
			Page:       PageState{RowsPerPage: opts.RowsPerPage, ActivePage: 1},
		},
	}
	if g.state.Page.RowsPerPage <= 0 {
		g.state.Page.RowsPerPage = DefaultRowsPerPage
	}
	if g.schema == nil {
		g.schema = InferSchema(ds)
		g.inferred = true
	}
	return g
}

func (g *Grid) Dataset() Dataset      { return g.data }
func (g *Grid) Schema() Schema        { return g.schema }
func (g *Grid) Selection() *Selection { return g.selection }
func (g *Grid) Facets() Facets        { return DeriveFacetsWith(g.schema, g.data) }

// Cells returns the cell kinds of the dataset, see NewCells.
func (g *Grid) Cells(threshold int) *Cells { return NewCells(g.data, threshold) }

// State returns a copy of the current state.
func (g *Grid) State() State {
	st := g.state
	st.Filters = make(Filters, len(g.state.Filters))
	for k, p := range g.state.Filters {
		st.Filters[k] = p
	}
	return st
}

// Load replaces the dataset. The selection is cleared and the view goes back to the first
// page. The schema is inferred again unless it was provided. Current filters must be valid
// for the new schema, otherwise nothing changes and the validation error is returned.
func (g *Grid) Load(ds Dataset) error {
	schema := g.schema
	if g.inferred {
		schema = InferSchema(ds)
	}
	if err := g.state.Filters.Validate(schema); err != nil {
		return err
	}
	g.data, g.schema = ds, schema
	g.state.Page.ActivePage = 1
	g.selection.Clear()
	return nil
}

// SetSearch changes the search query and goes back to the first page.
func (g *Grid) SetSearch(q string) {
	g.state.Search = q
	g.state.Page.ActivePage = 1
}

// SetFilter sets the predicate of a field and goes back to the first page.
// An inactive predicate removes the filter.
func (g *Grid) SetFilter(name string, p Predicate) error {
	if !p.IsActive() {
		g.ClearFilter(name)
		return nil
	}
	if err := (Filters{name: p}).Validate(g.schema); err != nil {
		return err
	}
	g.state.Filters[name] = p
	g.state.Page.ActivePage = 1
	return nil
}

// SetFilters replaces all filters and goes back to the first page.
func (g *Grid) SetFilters(fs Filters) error {
	if err := fs.Validate(g.schema); err != nil {
		return err
	}
	g.state.Filters = make(Filters, len(fs))
	for k, p := range fs {
		if p.IsActive() {
			g.state.Filters[k] = p
		}
	}
	g.state.Page.ActivePage = 1
	return nil
}

// ClearFilter removes the filter of a field and goes back to the first page.
func (g *Grid) ClearFilter(name string) {
	delete(g.state.Filters, name)
	g.state.Page.ActivePage = 1
}

// SetSort sorts by 'field', an empty field restores the dataset order. The page is kept.
func (g *Grid) SetSort(field string, reversed bool) error {
	if field != "" {
		if _, err := g.schema.Kind(field); err != nil {
			return fmt.Errorf("cannot sort: %w", err)
		}
	}
	g.state.Sort = SortState{Field: field, Reversed: reversed}
	return nil
}

// ToggleSort behaves like clicking a column header: the same field reverses the order,
// another field sorts ascending.
func (g *Grid) ToggleSort(field string) error {
	reversed := false
	if field == g.state.Sort.Field {
		reversed = !g.state.Sort.Reversed
	}
	return g.SetSort(field, reversed)
}

// SetComparator changes how the sort field is compared.
func (g *Grid) SetComparator(c Comparator) { g.state.Comparator = c }

// SetRowsPerPage changes the page size, n must be positive.
func (g *Grid) SetRowsPerPage(n int) error {
	if n <= 0 {
		return fmt.Errorf("rows per page must be positive, got %d", n)
	}
	g.state.Page.RowsPerPage = n
	return nil
}

// SetPage selects the active page. Out of range pages are clamped by View.
func (g *Grid) SetPage(page int) { g.state.Page.ActivePage = page }

// View computes the current view. The active page is clamped and remembered.
// Filters were validated when set, so View never fails.
func (g *Grid) View() View {
	v := computeView(g.data, g.state)
	g.state.Page.ActivePage = v.ActivePage
	return v
}

// Toggle toggles the selection of a record.
func (g *Grid) Toggle(r *Record) bool { return g.selection.Toggle(r) }
