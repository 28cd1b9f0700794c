package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/etnz/screener"
	"github.com/etnz/screener/config"
	"github.com/etnz/screener/renderer"
	"github.com/etnz/screener/source"
	"github.com/google/subcommands"
)

// stringsFlag is a repeatable string flag.
type stringsFlag []string

func (s *stringsFlag) String() string     { return strings.Join(*s, ", ") }
func (s *stringsFlag) Set(v string) error { *s = append(*s, v); return nil }

// viewCmd holds the flags for the 'view' subcommand.
type viewCmd struct {
	search   string
	sort     string
	reversed bool
	numeric  bool
	page     int
	rows     int
	where    stringsFlag
	key      string
	columns  string
	watch    bool
}

func (*viewCmd) Name() string     { return "view" }
func (*viewCmd) Synopsis() string { return "display a page of the filtered and sorted dataset" }
func (*viewCmd) Usage() string {
	return `scr view [-q <text>] [-sort <field> [-r] [-numeric]] [-where <expr>]... [-page <n>] [-rows <n>] [-w]

  Displays the dataset as a table: records matching every -where filter and
  the -q search, sorted, one page at a time. Selected records are marked.

  Filter expressions:
    sector=Energy     exact text, or exact number on a numeric field
    price==150        exact number
    price=100..200    numbers in the closed range
    price>90          numbers strictly greater
`
}

func (c *viewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.search, "q", "", "case insensitive text searched in every field")
	f.StringVar(&c.sort, "sort", "", "field to sort by (defaults to the configuration)")
	f.BoolVar(&c.reversed, "r", false, "sort in descending order")
	f.BoolVar(&c.numeric, "numeric", false, "compare numbers by value when sorting instead of as text")
	f.IntVar(&c.page, "page", 1, "page to display")
	f.IntVar(&c.rows, "rows", 0, "rows per page (defaults to the configuration)")
	f.Var(&c.where, "where", "filter expression, can be repeated")
	f.StringVar(&c.key, "key", "", "field identifying records in the selection (defaults to the configuration)")
	f.StringVar(&c.columns, "columns", "", "comma separated list of the columns to display")
	f.BoolVar(&c.watch, "w", false, "watch the dataset file and display it again when it changes")
}

func (c *viewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, ds, status := setup(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	if c.watch && source.IsURL(cfg.Data) {
		fmt.Fprintln(os.Stderr, "Error: -w can only watch a dataset file")
		return subcommands.ExitUsageError
	}

	g, err := c.grid(ds, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	opts, err := c.options(g, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	key := keyOf(c.key, cfg)
	saved, err := loadSelection(cfg.SelectionFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading selection: %v\n", err)
		return subcommands.ExitFailure
	}
	restoreSelection(g, key, saved)

	printMarkdown(renderer.ViewMarkdown(g.View(), opts))
	if !c.watch {
		return subcommands.ExitSuccess
	}

	w, err := source.NewWatcher(cfg.Data)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer w.Close()
	w.Run(ctx, func() {
		ds, err := openDataset(ctx, cfg)
		if err != nil {
			log.Printf("reload: %v", err)
			return
		}
		// the selection refers to the previous dataset, Load clears it.
		if err := g.Load(ds); err != nil {
			log.Printf("reload: %v", err)
			return
		}
		if err := saveSelection(cfg.SelectionFile, key, g.Selection()); err != nil {
			log.Printf("reload: cannot save selection: %v", err)
		}
		opts.Cells = g.Cells(cfg.BadgeThreshold)
		printMarkdown(renderer.ViewMarkdown(g.View(), opts))
	})
	return subcommands.ExitSuccess
}

// grid creates the grid over ds with the view flags applied.
func (c *viewCmd) grid(ds screener.Dataset, cfg *config.Config) (*screener.Grid, error) {
	comparator, err := screener.ParseComparator(cfg.Comparator)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if c.numeric {
		comparator = screener.NumericAware
	}
	rows := c.rows
	if rows <= 0 {
		rows = cfg.RowsPerPage
	}
	g := screener.NewGrid(ds, screener.GridOptions{
		RowsPerPage: rows,
		Comparator:  comparator,
		Identity:    screener.ByField(keyOf(c.key, cfg)),
	})

	for _, expr := range c.where {
		name, p, err := screener.ParseFilter(g.Schema(), expr)
		if err != nil {
			return nil, err
		}
		if err := g.SetFilter(name, p); err != nil {
			return nil, err
		}
	}
	g.SetSearch(c.search)

	sort := c.sort
	if sort == "" {
		sort = cfg.Sort
	}
	if err := g.SetSort(sort, c.reversed); err != nil {
		return nil, err
	}
	g.SetPage(c.page)
	return g, nil
}

// options returns how the grid is rendered.
func (c *viewCmd) options(g *screener.Grid, cfg *config.Config) (renderer.ViewOptions, error) {
	columns := g.Schema()
	if c.columns != "" {
		var err error
		columns, err = columns.Select(strings.Split(c.columns, ",")...)
		if err != nil {
			return renderer.ViewOptions{}, fmt.Errorf("invalid -columns: %w", err)
		}
	}
	return renderer.ViewOptions{
		Columns:   columns,
		Cells:     g.Cells(cfg.BadgeThreshold),
		Selection: g.Selection(),
	}, nil
}

// keyOf returns the key flag or the configured key.
func keyOf(key string, cfg *config.Config) string {
	if key == "" {
		return cfg.Key
	}
	return key
}
