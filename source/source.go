// Package source loads screener datasets from JSON files and HTTP endpoints.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/screener"
)

// DefaultURLPath locates the records in the documents served by screening endpoints.
const DefaultURLPath = "$.data"

// Options configures how a location is read.
type Options struct {
	// Path is a JSONPath to the records inside the document. URLs default to DefaultURLPath,
	// files to the document root.
	Path string
	// Client is used for URLs. If nil, a Daily client with the default cache is used.
	Client *http.Client
}

// IsURL returns true if location is an http or https address.
func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Open loads the dataset at 'location', a file path or a URL.
//
// Files ending with .jsonl hold one record per line, any other file is a JSON document.
// When records are read from the root of a document, their field order is preserved. Records
// located with a JSONPath have their fields sorted by name.
func Open(ctx context.Context, location string, opts Options) (screener.Dataset, error) {
	path := opts.path(location)
	if !IsURL(location) && isRoot(path) && strings.EqualFold(filepath.Ext(location), ".jsonl") {
		f, err := os.Open(location)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return screener.DecodeDatasetLines(f)
	}

	content, err := read(ctx, location, opts)
	if err != nil {
		return nil, err
	}
	if isRoot(path) {
		ds, err := screener.DecodeDataset(bytes.NewReader(content))
		if err != nil {
			return nil, fmt.Errorf("cannot decode %q: %w", location, err)
		}
		return ds, nil
	}

	v, err := query(content, path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", location, err)
	}
	ds, err := Records(v)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q at %s: %w", location, path, err)
	}
	return ds, nil
}

// Fetch returns the JSON value at opts.Path in the document at 'location'.
// Numbers are returned as json.Number.
func Fetch(ctx context.Context, location string, opts Options) (any, error) {
	content, err := read(ctx, location, opts)
	if err != nil {
		return nil, err
	}
	v, err := query(content, opts.path(location))
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", location, err)
	}
	return v, nil
}

// Records converts a JSON array of flat objects into a dataset. Fields are sorted by name.
func Records(v any) (screener.Dataset, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expecting an array of objects, got %T", v)
	}
	ds := make(screener.Dataset, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record #%d: expecting an object, got %T", i, item)
		}
		fields := make([]screener.Field, 0, len(obj))
		for _, name := range slices.Sorted(maps.Keys(obj)) {
			val, err := screener.ValueOf(obj[name])
			if err != nil {
				return nil, fmt.Errorf("record #%d: field %q: %w", i, name, err)
			}
			fields = append(fields, screener.F(name, val))
		}
		ds = append(ds, screener.NewRecord(fields...))
	}
	return ds, nil
}

// Entries converts a JSON object into two-field records, one per key, sorted by key:
// {"AAPL": 0.4} becomes {keyField: "AAPL", valueField: 0.4}.
func Entries(v any, keyField, valueField string) (screener.Dataset, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expecting an object, got %T", v)
	}
	ds := make(screener.Dataset, 0, len(obj))
	for _, key := range slices.Sorted(maps.Keys(obj)) {
		val, err := screener.ValueOf(obj[key])
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", key, err)
		}
		ds = append(ds, screener.NewRecord(screener.F(keyField, screener.S(key)), screener.F(valueField, val)))
	}
	return ds, nil
}

func (o Options) path(location string) string {
	if o.Path == "" && IsURL(location) {
		return DefaultURLPath
	}
	return o.Path
}

func isRoot(path string) bool { return path == "" || path == "$" }

// read returns the content of a file or a URL.
func read(ctx context.Context, location string, opts Options) ([]byte, error) {
	if !IsURL(location) {
		return os.ReadFile(location)
	}
	client := opts.Client
	if client == nil {
		client = Daily("")
	}
	return get(ctx, client, location)
}

// query decodes a JSON document and evaluates a JSONPath on it.
func query(content []byte, path string) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if isRoot(path) {
		return doc, nil
	}
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}
	// jsonpath returns either the value or a list of matches, keep the value for a single
	// match that is itself a list.
	if list, ok := v.([]any); ok && len(list) == 1 {
		if inner, ok := list[0].([]any); ok {
			v = inner
		}
	}
	return v, nil
}
