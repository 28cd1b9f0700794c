package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/screener"
	"github.com/etnz/screener/renderer"
	"github.com/etnz/screener/source"
	"github.com/google/subcommands"
)

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	key   string
	value string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display a JSON object of weights as a table" }
func (*holdingsCmd) Usage() string {
	return `scr -data <file|url> -path <jsonpath> holdings [-key ticker] [-value weight]

  Displays the object located by -path, like the weights of an optimized
  portfolio at '$.result.portfolio.weights', as a table sorted by decreasing value.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.key, "key", "ticker", "name of the column holding the object keys")
	f.StringVar(&c.value, "value", "weight", "name of the column holding the object values")
}

func (c *holdingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if cfg.Data == "" || cfg.Path == "" {
		fmt.Fprintln(os.Stderr, "Error: holdings requires -data and -path")
		return subcommands.ExitUsageError
	}

	v, err := source.Fetch(ctx, cfg.Data, source.Options{Path: cfg.Path, Client: source.Daily(cfg.CacheDir)})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	ds, err := source.Entries(v, c.key, c.value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading holdings: %v\n", err)
		return subcommands.ExitFailure
	}

	columns := screener.Schema{{Name: c.key, Kind: screener.Categorical}, {Name: c.value, Kind: screener.Numeric}}
	view, err := screener.ComputeViewWith(columns, ds, screener.State{
		Sort:       screener.SortState{Field: c.value, Reversed: true},
		Comparator: screener.NumericAware,
		Page:       screener.PageState{RowsPerPage: max(1, len(ds))},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.ViewMarkdown(view, renderer.ViewOptions{
		Columns: columns,
		Cells:   screener.NewCells(ds, 1),
	}))
	return subcommands.ExitSuccess
}
