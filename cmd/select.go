package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/screener"
	"github.com/etnz/screener/renderer"
	"github.com/google/subcommands"
)

// selectCmd holds the flags for the 'select' subcommand.
type selectCmd struct {
	key   string
	clear bool
}

func (*selectCmd) Name() string     { return "select" }
func (*selectCmd) Synopsis() string { return "toggle the selection of records" }
func (*selectCmd) Usage() string {
	return `scr select [-key <field>] [-clear] [<value>...]

  Toggles the selection of the records whose key field is equal to each value,
  saves the selection and displays the selected records.
`
}

func (c *selectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.key, "key", "", "field identifying records (defaults to the configuration)")
	f.BoolVar(&c.clear, "clear", false, "clear the selection before toggling")
}

func (c *selectCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, ds, status := setup(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	key := keyOf(c.key, cfg)
	g := screener.NewGrid(ds, screener.GridOptions{Identity: screener.ByField(key)})
	if _, err := g.Schema().Kind(key); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid key: %v\n", err)
		return subcommands.ExitUsageError
	}

	if !c.clear {
		saved, err := loadSelection(cfg.SelectionFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading selection: %v\n", err)
			return subcommands.ExitFailure
		}
		restoreSelection(g, key, saved)
	}

	for _, value := range f.Args() {
		r := findByKey(ds, key, value)
		if r == nil {
			fmt.Fprintf(os.Stderr, "Error: no record with %s %q\n", key, value)
			return subcommands.ExitFailure
		}
		g.Toggle(r)
	}

	if err := saveSelection(cfg.SelectionFile, key, g.Selection()); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving selection: %v\n", err)
		return subcommands.ExitFailure
	}

	if g.Selection().Len() == 0 {
		printMarkdown("No selection\n")
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.SelectedMarkdown(g.Selection(), renderer.ViewOptions{
		Columns: g.Schema(),
		Cells:   g.Cells(cfg.BadgeThreshold),
	}))
	return subcommands.ExitSuccess
}
