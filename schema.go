package screener

import (
	"fmt"
	"slices"
)

// Column describes one field of a dataset.
type Column struct {
	Name string
	Kind FieldKind
}

// Schema is the ordered list of columns of a dataset.
type Schema []Column

// InferSchema derives the schema of a dataset: field order is the first record's order, and
// each kind is implied by the first non null value of the field, scanning records in order.
// A field that is null everywhere is Categorical. Fields missing from the first record are not
// part of the schema. An empty dataset has an empty schema.
func InferSchema(ds Dataset) Schema {
	if len(ds) == 0 {
		return Schema{}
	}
	first := ds[0]
	s := make(Schema, 0, first.Len())
	for f := range first.Fields() {
		s = append(s, Column{Name: f.Name, Kind: kindOf(firstDefined(ds, f.Name))})
	}
	return s
}

// firstDefined returns the first non null value of the field 'name'.
func firstDefined(ds Dataset, name string) Value {
	for _, r := range ds {
		if v := r.Get(name); !v.IsNull() {
			return v
		}
	}
	return Null()
}

// Names returns the column names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// Lookup returns the column named 'name'.
func (s Schema) Lookup(name string) (Column, bool) {
	i := slices.IndexFunc(s, func(c Column) bool { return c.Name == name })
	if i < 0 {
		return Column{}, false
	}
	return s[i], true
}

// Kind returns the kind of the column 'name' or an ErrUnknownField error.
func (s Schema) Kind(name string) (FieldKind, error) {
	c, ok := s.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	return c.Kind, nil
}

// Select returns a new schema restricted to the given column names, in that order.
func (s Schema) Select(names ...string) (Schema, error) {
	res := make(Schema, 0, len(names))
	for _, name := range names {
		c, ok := s.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownField, name)
		}
		res = append(res, c)
	}
	return res, nil
}
