// Package scanner defines the row sources a cursor pulls from.
//
// A source yields rows as []any holding the raw, driver-native values of
// each column. Sources are forward-only and exhaustible.
package scanner

// Rows is a pull-based, exhaustible sequence of rows.
type Rows interface {
	// Next fetches the next row. It returns io.EOF once the source is
	// exhausted; any other error is a fetch failure.
	Next() ([]any, error)
	// Exhausted reports whether the source has no further rows. It must not
	// consume a row.
	Exhausted() bool
	// Columns returns the schema of the rows, in column order.
	Columns() []Column
	// Driver identifies the underlying data source.
	Driver() string
}
