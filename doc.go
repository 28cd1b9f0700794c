// Package screener provides a tabular data engine for screening datasets of flat records,
// like a list of stocks with their sector and price.
//
// The core functionalities include:
//   - Records and Datasets: immutable ordered rows of scalar values (null, exact numbers,
//     texts), decoded from JSON or JSONL without losing the column order.
//   - Facets: a stateless derivation of filter metadata from a dataset: unique values of
//     categorical fields, min, max, mean and standard deviation of numeric fields, and
//     "greater than" threshold options.
//   - Grid: the composition of filters, free-text search, stable sort and pagination into a
//     view, plus a selection of records with a pluggable identity.
//   - Cells: the inference of how each cell should be displayed (number, badge or text).
//
// This package serves as the foundational logic for the `scr` command-line tool, rendering
// and data sources live in the renderer and source packages.
package screener
