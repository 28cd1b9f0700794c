package cmd

import (
	"context"
	"flag"

	"github.com/etnz/screener"
	"github.com/etnz/screener/renderer"
	"github.com/google/subcommands"
)

type facetsCmd struct{}

func (*facetsCmd) Name() string     { return "facets" }
func (*facetsCmd) Synopsis() string { return "display the values and statistics of every field" }
func (*facetsCmd) Usage() string {
	return `scr facets

  Displays the distinct values of categorical fields, and the statistics of
  numeric fields with the thresholds usable in 'scr view -where field>value'.
`
}

func (*facetsCmd) SetFlags(f *flag.FlagSet) {}

func (*facetsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, ds, status := setup(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	printMarkdown(renderer.FacetsMarkdown(screener.DeriveFacets(ds)))
	return subcommands.ExitSuccess
}
