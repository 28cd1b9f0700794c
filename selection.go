package screener

import (
	"fmt"
	"slices"
)

// Identity maps a record to the key that identifies it in a Selection.
type Identity func(*Record) string

// ByReference identifies records by pointer: two distinct records with the same content are
// different selection entries, and a reloaded dataset never matches a previous selection.
func ByReference(r *Record) string { return fmt.Sprintf("%p", r) }

// Structural identifies records by content: records with the same fields and values are the
// same selection entry.
func Structural(r *Record) string {
	b, err := r.MarshalJSON()
	if err != nil {
		return ByReference(r)
	}
	return string(b)
}

// ByField identifies records by the value of a key field, like a ticker.
func ByField(name string) Identity {
	return func(r *Record) string { return valueKey(r.Get(name)) }
}

// Selection is an ordered set of records. Iteration follows insertion order.
// Its zero value is not usable, use NewSelection.
type Selection struct {
	identity Identity
	keys     []string
	records  map[string]*Record
	onChange func([]*Record)
}

// NewSelection returns an empty selection using 'id' to identify records.
// A nil identity uses Structural.
func NewSelection(id Identity) *Selection {
	if id == nil {
		id = Structural
	}
	return &Selection{identity: id, records: make(map[string]*Record)}
}

// OnChange registers a function called with the selected records after every change.
func (s *Selection) OnChange(f func(selected []*Record)) { s.onChange = f }

// Len returns the number of selected records.
func (s *Selection) Len() int { return len(s.keys) }

// Key returns the identity key of r.
func (s *Selection) Key(r *Record) string { return s.identity(r) }

// Contains returns true if r is selected.
func (s *Selection) Contains(r *Record) bool {
	_, ok := s.records[s.identity(r)]
	return ok
}

// Toggle removes r if it is selected, adds it otherwise. It returns true if r is now selected.
func (s *Selection) Toggle(r *Record) bool {
	key := s.identity(r)
	_, selected := s.records[key]
	if selected {
		delete(s.records, key)
		s.keys = slices.DeleteFunc(s.keys, func(k string) bool { return k == key })
	} else {
		s.records[key] = r
		s.keys = append(s.keys, key)
	}
	s.changed()
	return !selected
}

// Set replaces the whole selection by 'records'. Duplicates are ignored.
func (s *Selection) Set(records ...*Record) {
	s.keys = make([]string, 0, len(records))
	s.records = make(map[string]*Record, len(records))
	for _, r := range records {
		key := s.identity(r)
		if _, exists := s.records[key]; exists {
			continue
		}
		s.records[key] = r
		s.keys = append(s.keys, key)
	}
	s.changed()
}

// Clear empties the selection.
func (s *Selection) Clear() { s.Set() }

// Records returns the selected records in insertion order.
func (s *Selection) Records() []*Record {
	res := make([]*Record, len(s.keys))
	for i, k := range s.keys {
		res[i] = s.records[k]
	}
	return res
}

// Clone returns a copy of the selection without the change hook.
func (s *Selection) Clone() *Selection {
	c := NewSelection(s.identity)
	c.keys = slices.Clone(s.keys)
	for k, r := range s.records {
		c.records[k] = r
	}
	return c
}

// Equal reports whether both selections hold the same keys in the same order.
func (s *Selection) Equal(o *Selection) bool { return slices.Equal(s.keys, o.keys) }

func (s *Selection) changed() {
	if s.onChange != nil {
		s.onChange(s.Records())
	}
}
