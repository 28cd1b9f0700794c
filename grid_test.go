package screener

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// view computes the view of ds and fails the test on error.
func view(t *testing.T, ds Dataset, st State) View {
	t.Helper()
	v, err := ComputeView(ds, st)
	if err != nil {
		t.Fatalf("ComputeView() error = %v", err)
	}
	return v
}

func TestComputeView_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		state     State
		want      []string
		wantTotal int
		wantPages int
	}{
		{
			name:      "search matches sector case insensitively",
			state:     State{Search: "tech"},
			want:      []string{"AAPL", "MSFT"},
			wantTotal: 2,
			wantPages: 1,
		},
		{
			name:      "second page of two rows",
			state:     State{Page: PageState{RowsPerPage: 2, ActivePage: 2}},
			want:      []string{"XOM"},
			wantTotal: 3,
			wantPages: 2,
		},
		{
			name:      "categorical predicate",
			state:     State{Filters: Filters{"sector": Is("Energy")}},
			want:      []string{"XOM"},
			wantTotal: 1,
			wantPages: 1,
		},
		{
			name:      "numeric range predicate",
			state:     State{Filters: Filters{"price": Between(100, 200)}},
			want:      []string{"AAPL"},
			wantTotal: 1,
			wantPages: 1,
		},
		{
			name:      "range bounds are inclusive",
			state:     State{Filters: Filters{"price": Between(90, 150)}},
			want:      []string{"AAPL", "XOM"},
			wantTotal: 2,
			wantPages: 1,
		},
		{
			name:      "exact number",
			state:     State{Filters: Filters{"price": Eq(300)}},
			want:      []string{"MSFT"},
			wantTotal: 1,
			wantPages: 1,
		},
		{
			name:      "threshold",
			state:     State{Filters: Filters{"price": Above(90)}},
			want:      []string{"AAPL", "MSFT"},
			wantTotal: 2,
			wantPages: 1,
		},
		{
			name:      "predicates and search are ANDed",
			state:     State{Search: "a", Filters: Filters{"sector": Is("Tech"), "price": Above(100)}},
			want:      []string{"AAPL"},
			wantTotal: 1,
			wantPages: 1,
		},
		{
			name:      "inactive predicates are ignored",
			state:     State{Filters: Filters{"sector": {}}},
			want:      []string{"AAPL", "MSFT", "XOM"},
			wantTotal: 3,
			wantPages: 1,
		},
		{
			name:      "no match",
			state:     State{Search: "zzz"},
			want:      []string{},
			wantTotal: 0,
			wantPages: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := view(t, stocks(), tt.state)
			if diff := cmp.Diff(tt.want, tickers(v.Rows)); diff != "" {
				t.Errorf("rows mismatch (-want +got):\n%s", diff)
			}
			if v.TotalFilteredCount != tt.wantTotal {
				t.Errorf("TotalFilteredCount = %d, want %d", v.TotalFilteredCount, tt.wantTotal)
			}
			if v.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", v.TotalPages, tt.wantPages)
			}
		})
	}
}

func TestComputeView_InvalidFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		want    error
	}{
		{name: "text on a numeric field", filters: Filters{"price": Is("150")}, want: ErrKindMismatch},
		{name: "threshold on a categorical field", filters: Filters{"sector": Above(1)}, want: ErrKindMismatch},
		{name: "range on a categorical field", filters: Filters{"sector": Between(1, 2)}, want: ErrKindMismatch},
		{name: "unknown field", filters: Filters{"nope": Is("x")}, want: ErrUnknownField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ComputeView(stocks(), State{Filters: tt.filters})
			if !errors.Is(err, tt.want) {
				t.Fatalf("ComputeView() error = %v, want %v", err, tt.want)
			}
			if v.Rows != nil || v.TotalFilteredCount != 0 {
				t.Errorf("ComputeView() = %+v, want no view on error", v)
			}
		})
	}

	// every failing filter is reported.
	_, err := ComputeView(stocks(), State{Filters: Filters{"price": Is("150"), "sector": Above(1)}})
	for _, field := range []string{"price", "sector"} {
		if err == nil || !strings.Contains(err.Error(), "filter "+field) {
			t.Errorf("ComputeView() error = %v, want it to name %q", err, field)
		}
	}
}

func TestComputeViewWith_Schema(t *testing.T) {
	// an explicit schema takes precedence over the first record.
	schema := Schema{{Name: "ticker", Kind: Categorical}, {Name: "sector", Kind: Categorical}, {Name: "price", Kind: Categorical}}
	v, err := ComputeViewWith(schema, stocks(), State{Filters: Filters{"price": Is("150")}})
	if err != nil {
		t.Fatalf("ComputeViewWith() error = %v", err)
	}
	if diff := cmp.Diff([]string{"AAPL"}, tickers(v.Rows)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if _, err := ComputeViewWith(schema, stocks(), State{Filters: Filters{"price": Above(100)}}); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("ComputeViewWith() error = %v, want %v", err, ErrKindMismatch)
	}
}

func TestComputeView_Empty(t *testing.T) {
	v := view(t, Dataset{}, State{Page: PageState{RowsPerPage: 10, ActivePage: 3}})
	if len(v.Rows) != 0 || v.TotalFilteredCount != 0 || v.TotalPages != 1 || v.ActivePage != 1 {
		t.Errorf("ComputeView([]) = %+v, want no rows, 0 count, 1 page", v)
	}
}

func TestComputeView_ClampsPage(t *testing.T) {
	tests := []struct {
		page, want int
	}{
		{page: -3, want: 1},
		{page: 0, want: 1},
		{page: 2, want: 2},
		{page: 99, want: 2},
	}
	for _, tt := range tests {
		v := view(t, stocks(), State{Page: PageState{RowsPerPage: 2, ActivePage: tt.page}})
		if v.ActivePage != tt.want {
			t.Errorf("page %d: ActivePage = %d, want %d", tt.page, v.ActivePage, tt.want)
		}
	}
}

func TestComputeView_Sort(t *testing.T) {
	tests := []struct {
		name string
		sort SortState
		cmp  Comparator
		want []string
	}{
		{name: "dataset order", want: []string{"AAPL", "MSFT", "XOM"}},
		{name: "ticker descending", sort: SortState{Field: "ticker", Reversed: true}, want: []string{"XOM", "MSFT", "AAPL"}},
		{name: "stable ties", sort: SortState{Field: "sector"}, want: []string{"XOM", "AAPL", "MSFT"}},
		{name: "stable ties reversed", sort: SortState{Field: "sector", Reversed: true}, want: []string{"AAPL", "MSFT", "XOM"}},
		// "150" < "300" < "90" as strings.
		{name: "lexicographic numbers", sort: SortState{Field: "price"}, want: []string{"AAPL", "MSFT", "XOM"}},
		{name: "numeric aware", sort: SortState{Field: "price"}, cmp: NumericAware, want: []string{"XOM", "AAPL", "MSFT"}},
		{name: "numeric aware reversed", sort: SortState{Field: "price", Reversed: true}, cmp: NumericAware, want: []string{"MSFT", "AAPL", "XOM"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := view(t, stocks(), State{Sort: tt.sort, Comparator: tt.cmp})
			if diff := cmp.Diff(tt.want, tickers(v.Rows)); diff != "" {
				t.Errorf("rows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComputeView_NumericAwareMixed(t *testing.T) {
	ds := Dataset{
		NewRecord(F("ticker", S("A")), F("v", S("n/a"))),
		NewRecord(F("ticker", S("B")), F("v", N(10))),
		NewRecord(F("ticker", S("C")), F("v", N(9))),
	}
	v := view(t, ds, State{Sort: SortState{Field: "v"}, Comparator: NumericAware})
	if diff := cmp.Diff([]string{"C", "B", "A"}, tickers(v.Rows)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

// bigDataset returns n records with a few repeated values.
func bigDataset(n int) Dataset {
	sectors := []string{"Tech", "Energy", "Health", "Finance"}
	ds := make(Dataset, n)
	for i := range ds {
		ds[i] = NewRecord(
			F("ticker", S("T"+strings.Repeat("x", i%5)+string(rune('A'+i%26)))),
			F("sector", S(sectors[i%len(sectors)])),
			F("price", N((i*37)%101)),
		)
	}
	return ds
}

func TestComputeView_Properties(t *testing.T) {
	ds := bigDataset(53)
	snapshot := slices.Clone(ds)

	t.Run("idempotent and does not mutate", func(t *testing.T) {
		st := State{Search: "x", Sort: SortState{Field: "price"}, Page: PageState{RowsPerPage: 7, ActivePage: 2}}
		a := view(t, ds, st)
		b := view(t, ds, st)
		if !slices.Equal(a.Rows, b.Rows) || a.TotalFilteredCount != b.TotalFilteredCount {
			t.Error("two calls with the same state returned different views")
		}
		if !slices.Equal(ds, snapshot) {
			t.Error("ComputeView reordered the input dataset")
		}
	})

	t.Run("filters never add rows", func(t *testing.T) {
		for _, fs := range []Filters{{}, {"sector": Is("Tech")}, {"price": Between(10, 50)}, {"price": Above(1000)}} {
			if v := view(t, ds, State{Filters: fs}); v.TotalFilteredCount > len(ds) {
				t.Errorf("filters %v: count %d > %d", fs, v.TotalFilteredCount, len(ds))
			}
		}
	})

	t.Run("search substring law", func(t *testing.T) {
		q := "XXA"
		rows := filter(ds, nil, q)
		for _, r := range ds {
			if slices.Contains(rows, r) != Search(r, strings.ToLower(q)) {
				t.Errorf("record %s inclusion does not match its search", must(r.MarshalJSON()))
			}
		}
		for _, r := range rows {
			if !strings.Contains(strings.ToLower(r.Get("ticker").String()), "xxa") {
				t.Errorf("record %s does not contain %q", must(r.MarshalJSON()), q)
			}
		}
	})

	t.Run("sort toggled twice restores order", func(t *testing.T) {
		g := NewGrid(ds, GridOptions{RowsPerPage: 100})
		g.ToggleSort("sector")
		first := slices.Clone(g.View().Rows)
		g.ToggleSort("sector")
		g.ToggleSort("sector")
		if !slices.Equal(first, g.View().Rows) {
			t.Error("reversing the sort twice changed the order")
		}
	})

	t.Run("pages cover the filtered rows", func(t *testing.T) {
		st := State{Search: "t", Sort: SortState{Field: "price"}, Comparator: NumericAware, Page: PageState{RowsPerPage: 5}}
		all := view(t, ds, State{Search: st.Search, Sort: st.Sort, Comparator: st.Comparator, Page: PageState{RowsPerPage: len(ds)}})
		var got Dataset
		pages := view(t, ds, st).TotalPages
		for p := 1; p <= pages; p++ {
			st.Page.ActivePage = p
			got = append(got, view(t, ds, st).Rows...)
		}
		if !slices.Equal(all.Rows, got) {
			t.Errorf("concatenated pages (%d rows) differ from the filtered rows (%d)", len(got), len(all.Rows))
		}
	})
}

func TestGrid_PageResets(t *testing.T) {
	g := NewGrid(stocks(), GridOptions{RowsPerPage: 1})
	g.SetPage(3)
	if err := g.SetSort("price", true); err != nil {
		t.Fatalf("SetSort() error = %v", err)
	}
	if got := g.View().ActivePage; got != 3 {
		t.Errorf("after sort ActivePage = %d, want 3", got)
	}

	g.SetSearch("t")
	if got := g.View().ActivePage; got != 1 {
		t.Errorf("after search ActivePage = %d, want 1", got)
	}

	g.SetPage(2)
	if err := g.SetFilter("sector", Is("Tech")); err != nil {
		t.Fatalf("SetFilter() error = %v", err)
	}
	if got := g.View().ActivePage; got != 1 {
		t.Errorf("after filter ActivePage = %d, want 1", got)
	}

	g.SetPage(2)
	g.ClearFilter("sector")
	if got := g.View().ActivePage; got != 1 {
		t.Errorf("after clear ActivePage = %d, want 1", got)
	}
}

func TestGrid_ClampRemembered(t *testing.T) {
	g := NewGrid(stocks(), GridOptions{RowsPerPage: 1})
	g.SetPage(99)
	if v := g.View(); v.ActivePage != 3 {
		t.Errorf("View().ActivePage = %d, want 3", v.ActivePage)
	}
	if got := g.State().Page.ActivePage; got != 3 {
		t.Errorf("State().Page.ActivePage = %d, want 3", got)
	}
}

func TestGrid_ToggleSort(t *testing.T) {
	g := NewGrid(stocks(), GridOptions{})
	steps := []struct {
		field string
		want  SortState
	}{
		{"ticker", SortState{Field: "ticker"}},
		{"ticker", SortState{Field: "ticker", Reversed: true}},
		{"ticker", SortState{Field: "ticker"}},
		{"ticker", SortState{Field: "ticker", Reversed: true}},
		{"price", SortState{Field: "price"}},
	}
	for i, s := range steps {
		if err := g.ToggleSort(s.field); err != nil {
			t.Fatalf("ToggleSort(%q) error = %v", s.field, err)
		}
		if got := g.State().Sort; got != s.want {
			t.Errorf("step %d: sort = %+v, want %+v", i, got, s.want)
		}
	}
	if err := g.ToggleSort("unknown"); err == nil {
		t.Error("ToggleSort(unknown) expected an error")
	}
}

func TestGrid_InvalidFilter(t *testing.T) {
	g := NewGrid(stocks(), GridOptions{})
	if err := g.SetFilter("sector", Between(1, 2)); err == nil {
		t.Error("a range on a categorical field must be rejected")
	}
	if err := g.SetFilter("price", Is("cheap")); err == nil {
		t.Error("a text on a numeric field must be rejected")
	}
	if err := g.SetFilters(Filters{"nope": Is("x")}); err == nil {
		t.Error("a filter on an unknown field must be rejected")
	}
	if n := len(g.State().Filters); n != 0 {
		t.Errorf("rejected filters were stored: %v", g.State().Filters)
	}
}

func TestGrid_Load(t *testing.T) {
	g := NewGrid(stocks(), GridOptions{RowsPerPage: 1, Identity: ByField("ticker")})
	g.Toggle(g.Dataset()[0])
	g.SetPage(2)

	fresh := stocks()
	if err := g.Load(fresh); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if g.Selection().Len() != 0 {
		t.Error("Load must clear the selection")
	}
	if got := g.View().ActivePage; got != 1 {
		t.Errorf("after load ActivePage = %d, want 1", got)
	}

	if err := g.SetFilter("sector", Is("Tech")); err != nil {
		t.Fatal(err)
	}
	other := Dataset{NewRecord(F("name", S("x")))}
	if err := g.Load(other); err == nil {
		t.Error("Load must refuse a dataset that invalidates the filters")
	}
	if len(g.Dataset()) != 3 {
		t.Error("a refused Load must keep the previous dataset")
	}
}
