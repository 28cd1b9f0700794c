// Package cmd implements the scr command line screener.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/etnz/screener"
	"github.com/etnz/screener/config"
	"github.com/etnz/screener/source"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&viewCmd{}, "screening")
	c.Register(&facetsCmd{}, "screening")
	c.Register(&selectCmd{}, "screening")
	c.Register(&holdingsCmd{}, "screening")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	dataFlag      = flag.String("data", "", "Dataset file (.json, .jsonl) or http(s) URL")
	pathFlag      = flag.String("path", "", "JSONPath to the records in the dataset document ($.data for URLs)")
	selectionFlag = flag.String("selection-file", "selected-tickers.json", "Path to the file persisting the selection")
	configFile    = flag.String("config", "screener.yaml", "Path to the optional configuration file")
	rawFlag       = flag.Bool("markdown", false, "print raw markdown instead of rendering it for the terminal")
	Verbose       = flag.Bool("v", false, "print HTTP traces and warnings")
)

// stdout is where commands print their reports.
var stdout io.Writer = os.Stdout

// SetupLog discards the log unless the verbose flag is set.
func SetupLog() {
	if !*Verbose {
		log.SetOutput(io.Discard)
	}
}

// settings loads the configuration and applies the global flags explicitly set.
func settings() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data":
			cfg.Data = *dataFlag
		case "path":
			cfg.Path = *pathFlag
		case "selection-file":
			cfg.SelectionFile = *selectionFlag
		}
	})
	return cfg, nil
}

// openDataset loads the configured dataset.
func openDataset(ctx context.Context, cfg *config.Config) (screener.Dataset, error) {
	if cfg.Data == "" {
		return nil, errors.New("no dataset: use -data or set 'data' in the configuration")
	}
	ds, err := source.Open(ctx, cfg.Data, source.Options{Path: cfg.Path, Client: source.Daily(cfg.CacheDir)})
	if err != nil {
		return nil, fmt.Errorf("cannot load dataset: %w", err)
	}
	return ds, nil
}

// setup loads the configuration and the dataset for a command.
// On errors, it prints a message and returns the exit status.
func setup(ctx context.Context) (*config.Config, screener.Dataset, subcommands.ExitStatus) {
	cfg, err := settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return nil, nil, subcommands.ExitFailure
	}
	ds, err := openDataset(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, nil, subcommands.ExitFailure
	}
	return cfg, ds, subcommands.ExitSuccess
}
