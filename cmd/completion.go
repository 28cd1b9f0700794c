package cmd

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion.
// Installed with COMP_INSTALL=1 scr, removed with COMP_UNINSTALL=1 scr.
func Completion() *complete.Command {
	key := predict.Set{"ticker", "symbol", "name"}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"data":           predict.Files("*.json*"),
			"path":           predict.Set{"$", "$.data", "$.result.portfolio.weights"},
			"selection-file": predict.Files("*.json"),
			"config":         predict.Files("*.yaml"),
			"markdown":       predict.Nothing,
			"v":              predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"view": {
				Flags: map[string]complete.Predictor{
					"q":       predict.Something,
					"sort":    predict.Something,
					"r":       predict.Nothing,
					"numeric": predict.Nothing,
					"page":    predict.Something,
					"rows":    predict.Set{"10", "25", "50", "100"},
					"where":   predict.Something,
					"key":     key,
					"columns": predict.Something,
					"w":       predict.Nothing,
				},
			},
			"facets": {},
			"select": {
				Flags: map[string]complete.Predictor{
					"key":   key,
					"clear": predict.Nothing,
				},
				Args: predict.Something,
			},
			"holdings": {
				Flags: map[string]complete.Predictor{
					"key":   key,
					"value": predict.Set{"weight"},
				},
			},
			"help":  {},
			"flags": {},
		},
	}
}
