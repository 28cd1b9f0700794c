package screener

import (
	"iter"
	"slices"
)

// Field is a named Value, used to build records.
type Field struct {
	Name  string
	Value Value
}

// F is a short hand to create a Field.
func F(name string, value Value) Field { return Field{Name: name, Value: value} }

// Record is an immutable flat row: an ordered mapping from field name to Value.
//
// Records are shared by reference between views of a dataset, no operation of this
// package ever modifies a Record once created.
type Record struct {
	names  []string
	values map[string]Value
}

// NewRecord creates a record with fields in the given order.
// If a name is repeated, the last value wins but the first position is kept.
func NewRecord(fields ...Field) *Record {
	r := &Record{
		names:  make([]string, 0, len(fields)),
		values: make(map[string]Value, len(fields)),
	}
	for _, f := range fields {
		if _, exists := r.values[f.Name]; !exists {
			r.names = append(r.names, f.Name)
		}
		r.values[f.Name] = f.Value
	}
	return r
}

// Len returns the number of fields.
func (r *Record) Len() int { return len(r.names) }

// Names returns the field names in insertion order.
func (r *Record) Names() []string { return slices.Clone(r.names) }

// Get returns the value of the field 'name', or Null if the record has no such field.
func (r *Record) Get(name string) Value { return r.values[name] }

// Has returns true if the record declares the field 'name'.
func (r *Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Fields iterates over the fields in insertion order.
func (r *Record) Fields() iter.Seq[Field] {
	return func(yield func(Field) bool) {
		for _, name := range r.names {
			if !yield(Field{Name: name, Value: r.values[name]}) {
				return
			}
		}
	}
}

// Equal reports whether both records have the same fields, in the same order, with equal values.
func (r *Record) Equal(o *Record) bool {
	if r == o {
		return true
	}
	if r == nil || o == nil || len(r.names) != len(o.names) {
		return false
	}
	for i, name := range r.names {
		if o.names[i] != name || !r.values[name].Equal(o.values[name]) {
			return false
		}
	}
	return true
}

// MarshalJSON writes the record as a JSON object preserving the field order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	for f := range r.Fields() {
		w.Append(f.Name, f.Value)
	}
	return w.MarshalJSON()
}

// Dataset is an ordered sequence of records sharing a schema.
type Dataset []*Record
