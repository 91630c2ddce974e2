package domain

import "fmt"

// SchemaError reports a header or row whose column count does not match
// the export schema. A schema violation aborts preparation; no partial
// dataset is built from a malformed file.
type SchemaError struct {
	Line     int
	Expected int
	Got      int
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("line %d: expected %d columns, got %d", e.Line, e.Expected, e.Got)
}

// ParseError reports a numeric field that could not be interpreted. The
// row is kept with the field defaulted to zero; callers decide how loud
// to be about it.
type ParseError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: field %s: cannot parse %q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
