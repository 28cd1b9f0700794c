package cmd

import (
	"fmt"
	"log"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders markdown for the terminal, or prints it raw with -markdown.
func printMarkdown(md string) {
	if *rawFlag {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	log.Printf("cannot render markdown (printed raw): %v", err)
	fmt.Fprint(stdout, md)
}
