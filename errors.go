package screener

import "errors"

var (
	// ErrUnknownField is returned when a field is not part of the schema.
	ErrUnknownField = errors.New("unknown field")
	// ErrKindMismatch is returned when a predicate does not match its field kind.
	ErrKindMismatch = errors.New("predicate does not match field kind")
	// ErrNotFlat is returned when decoding a record holding nested objects or arrays.
	ErrNotFlat = errors.New("record is not flat")
)
