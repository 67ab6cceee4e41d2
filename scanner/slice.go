// Package scanner defines interfaces and implementations for reading tabular data.
// This file provides an in-memory implementation of Rows backed by a slice of rows.
package scanner

import (
	"fmt"
	"io"
	"reflect"
)

// sliceRowsScanner implements the Rows interface using a slice of slices.
// It is useful for testing or small in-memory data sources.
type sliceRowsScanner struct {
	rows    [][]any  // The raw data: each inner slice is a row.
	columns []Column // Declared or inferred column metadata.
	cursor  int      // The index of the next row to return.
}

// FromData creates a new Rows scanner from a 2D slice of data.
// Each inner slice represents a row. When no columns are given, column
// metadata is inferred from the first row.
func FromData(rows [][]any, columns ...Column) Rows {
	s := &sliceRowsScanner{rows: rows, columns: columns}
	if len(s.columns) == 0 {
		s.columns = inferColumns(rows)
	}
	return s
}

// Driver returns a string identifying the data source as an in-memory slice.
func (s *sliceRowsScanner) Driver() string {
	return "go-slice"
}

// Exhausted reports whether every row has been returned.
func (s *sliceRowsScanner) Exhausted() bool {
	return s.cursor >= len(s.rows)
}

// Next returns the next row, or io.EOF when none are left. Every row must
// have as many values as there are columns.
func (s *sliceRowsScanner) Next() ([]any, error) {
	if s.cursor >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.cursor]
	if len(row) != len(s.columns) {
		return nil, fmt.Errorf("length of row %d != number of columns: %d != %d", s.cursor+1, len(row), len(s.columns))
	}
	s.cursor++
	return row, nil
}

// Columns returns the column metadata.
func (s *sliceRowsScanner) Columns() []Column {
	return s.columns
}

func inferColumns(rows [][]any) []Column {
	if len(rows) == 0 {
		return nil
	}
	columns := make([]Column, 0, len(rows[0]))
	for i, v := range rows[0] {
		goType := "nil"
		if v != nil {
			goType = reflect.TypeOf(v).String()
		}
		columns = append(columns, NewColumn("", "", fmt.Sprintf("column_%d", i), goType))
	}
	return columns
}
