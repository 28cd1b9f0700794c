package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/etnz/screener"
)

// selectionFile is the persisted form of a selection: the key field and the key values of the
// selected records, in selection order.
type selectionFile struct {
	Key    string   `json:"key"`
	Values []string `json:"values"`
}

// loadSelection reads the selection file. A missing file is an empty selection.
func loadSelection(file string) (selectionFile, error) {
	var s selectionFile
	content, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(content, &s); err != nil {
		return s, fmt.Errorf("invalid selection file %q: %w", file, err)
	}
	return s, nil
}

// saveSelection writes the selection of the grid identified by 'key'.
func saveSelection(file, key string, sel *screener.Selection) error {
	s := selectionFile{Key: key, Values: []string{}}
	for _, r := range sel.Records() {
		s.Values = append(s.Values, r.Get(key).String())
	}
	content, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, append(content, '\n'), 0644)
}

// restoreSelection selects the records of the grid matching the persisted values.
// Values not found in the dataset are dropped with a warning.
func restoreSelection(g *screener.Grid, key string, s selectionFile) {
	if len(s.Values) == 0 {
		return
	}
	if s.Key != key {
		log.Printf("warning: selection was saved with key %q, ignored for key %q", s.Key, key)
		return
	}
	var records []*screener.Record
	for _, v := range s.Values {
		r := findByKey(g.Dataset(), key, v)
		if r == nil {
			log.Printf("warning: selected %s %q is not in the dataset anymore", key, v)
			continue
		}
		records = append(records, r)
	}
	g.Selection().Set(records...)
}

// findByKey returns the first record whose 'key' field displays as 'value'.
func findByKey(ds screener.Dataset, key, value string) *screener.Record {
	for _, r := range ds {
		if r.Has(key) && r.Get(key).String() == value {
			return r
		}
	}
	return nil
}
