package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/screener"
)

// Sort markers appended to the header of the sorted column.
const (
	Ascending  = "▲"
	Descending = "▼"
)

// ViewOptions configures how a view is rendered. Zero values select the defaults.
type ViewOptions struct {
	// Columns are the displayed columns, in order. Defaults to the fields of the first row.
	Columns screener.Schema
	// Cells tells how cells are displayed. Defaults to the cells of the rows of the view.
	Cells *screener.Cells
	// Selection adds a first column marking the selected rows with an X.
	Selection *screener.Selection
}

// View writes the view as a markdown table followed by a page footer.
func View(w io.Writer, v screener.View, opts ViewOptions) {
	columns := opts.Columns
	if columns == nil {
		columns = screener.InferSchema(v.Rows)
	}
	cells := opts.Cells
	if cells == nil {
		cells = screener.NewCells(v.Rows, 0)
	}

	if len(columns) == 0 {
		fmt.Fprint(w, "No data found\n\n")
	} else {
		writeTable(w, v.Rows, columns, cells, opts.Selection, v.Sort)
		if len(v.Rows) == 0 {
			row := make([]string, len(columns))
			row[0] = "No data found"
			if opts.Selection != nil {
				row = append([]string{""}, row...)
			}
			fmt.Fprintf(w, "| %s |\n", strings.Join(row, " | "))
		}
		fmt.Fprintln(w)
	}

	rows := "rows"
	if v.TotalFilteredCount == 1 {
		rows = "row"
	}
	fmt.Fprintf(w, "Page %d of %d (%d %s)\n", v.ActivePage, v.TotalPages, v.TotalFilteredCount, rows)
}

// ViewMarkdown renders the view to a markdown string.
func ViewMarkdown(v screener.View, opts ViewOptions) string {
	var b strings.Builder
	View(&b, v, opts)
	return b.String()
}

// Selected writes a "Selected" section with the selected records, nothing if the selection is
// empty.
func Selected(w io.Writer, s *screener.Selection, opts ViewOptions) {
	ConditionalBlock(w, func(w io.Writer) bool {
		rows := screener.Dataset(s.Records())
		if len(rows) == 0 {
			return false
		}
		columns := opts.Columns
		if columns == nil {
			columns = screener.InferSchema(rows)
		}
		cells := opts.Cells
		if cells == nil {
			cells = screener.NewCells(rows, 0)
		}
		fmt.Fprintf(w, "## Selected\n\n")
		writeTable(w, rows, columns, cells, nil, screener.SortState{})
		fmt.Fprintln(w)
		return true
	})
}

// writeTable writes the header and the rows of a table.
func writeTable(w io.Writer, rows screener.Dataset, columns screener.Schema, cells *screener.Cells, sel *screener.Selection, sort screener.SortState) {
	var header, align []string
	if sel != nil {
		header = append(header, " ")
		align = append(align, ":---:")
	}
	for _, c := range columns {
		title := escape(c.Name)
		if c.Name == sort.Field {
			if sort.Reversed {
				title += " " + Descending
			} else {
				title += " " + Ascending
			}
		}
		header = append(header, title)
		if c.Kind == screener.Numeric {
			align = append(align, "---:")
		} else {
			align = append(align, ":---")
		}
	}
	fmt.Fprintf(w, "| %s |\n", strings.Join(header, " | "))
	fmt.Fprintf(w, "|%s|\n", strings.Join(align, "|"))

	for _, r := range rows {
		var row []string
		if sel != nil {
			mark := " "
			if sel.Contains(r) {
				mark = "X"
			}
			row = append(row, mark)
		}
		for _, c := range columns {
			row = append(row, cell(cells, c.Name, r.Get(c.Name)))
		}
		fmt.Fprintf(w, "| %s |\n", strings.Join(row, " | "))
	}
}

// cell returns the markdown of a single cell.
func cell(cells *screener.Cells, name string, v screener.Value) string {
	text, kind := cells.Format(name, v)
	if kind == screener.CellBadge && text != "" {
		return "`" + escape(text) + "`"
	}
	return escape(text)
}

// SelectedMarkdown renders the selected records to a markdown string.
func SelectedMarkdown(s *screener.Selection, opts ViewOptions) string {
	var b strings.Builder
	Selected(&b, s, opts)
	return b.String()
}
