// Package scanner provides implementations of the Rows interface for various data sources.
// This file defines a scanner for database/sql-compatible rows.
package scanner

import (
	"database/sql"
	"io"

	"github.com/pkg/errors"
)

// sqlRowsScanner wraps a *sql.Rows and implements the Rows interface.
// database/sql only reports exhaustion by advancing, so one row is looked
// ahead to answer Exhausted without losing it.
type sqlRowsScanner struct {
	*sql.Rows

	driver  string
	columns []Column
	peeked  bool
	done    bool
}

// FromSQL creates a Rows-compatible wrapper around a *sql.Rows object.
// The driver name is required for metadata and contextual information.
func FromSQL(rows *sql.Rows, driver string) (Rows, error) {
	cc, err := rows.ColumnTypes()
	if err != nil {
		return nil, errors.Wrap(err, "read column types")
	}
	s := &sqlRowsScanner{Rows: rows, driver: driver}
	for _, c := range cc {
		s.columns = append(s.columns, &sqlColumn{ColumnType: c})
	}
	return s, nil
}

// sqlColumn implements the Column interface using *sql.ColumnType
// provided by the standard database/sql package. database/sql carries no
// schema or table information.
type sqlColumn struct {
	*sql.ColumnType
}

func (c *sqlColumn) Schema() string {
	return ""
}

func (c *sqlColumn) Table() string {
	return ""
}

// Columns returns column metadata for the SQL result set.
func (s *sqlRowsScanner) Columns() []Column {
	return s.columns
}

func (s *sqlRowsScanner) lookAhead() {
	if s.peeked || s.done {
		return
	}
	s.peeked = true
	if !s.Rows.Next() {
		s.done = true
	}
}

// Exhausted reports whether the result set has no further rows.
func (s *sqlRowsScanner) Exhausted() bool {
	s.lookAhead()
	return s.done
}

// Next reads and returns the next row from the SQL result set.
// It uses pointer indirection to fill a []any with values.
func (s *sqlRowsScanner) Next() ([]any, error) {
	s.lookAhead()
	if s.done {
		if err := s.Rows.Err(); err != nil {
			return nil, errors.Wrap(err, "fetch row")
		}
		return nil, io.EOF
	}
	s.peeked = false
	row := make([]any, len(s.columns))
	ptrs := make([]any, len(s.columns))
	for i := range row {
		ptrs[i] = &row[i]
	}
	if err := s.Rows.Scan(ptrs...); err != nil {
		return nil, errors.Wrap(err, "scan row")
	}
	return row, nil
}

// Driver returns the name of the SQL driver used.
func (s *sqlRowsScanner) Driver() string {
	return s.driver
}
