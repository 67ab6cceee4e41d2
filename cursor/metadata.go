package cursor

import (
	"fmt"
	"strings"

	"github.com/go-data-exporter/rowcursor/scanner"
)

// Column describes one column of a cursor.
type Column struct {
	Schema   string
	Table    string
	Name     string
	TypeName string
	Computed bool
}

// Metadata is the ordered, immutable set of columns of a cursor.
type Metadata struct {
	columns []Column
}

func newMetadata(cols []scanner.Column) *Metadata {
	m := &Metadata{columns: make([]Column, 0, len(cols))}
	for _, c := range cols {
		m.columns = append(m.columns, Column{
			Schema:   c.Schema(),
			Table:    c.Table(),
			Name:     c.Name(),
			TypeName: c.DatabaseTypeName(),
		})
	}
	return m
}

// Len returns the number of columns.
func (m *Metadata) Len() int {
	return len(m.columns)
}

// Column returns the column at the 1-based index.
func (m *Metadata) Column(index int) (Column, error) {
	if index < 1 || index > len(m.columns) {
		return Column{}, fmt.Errorf("%w: %d of %d", ErrColumnIndex, index, len(m.columns))
	}
	return m.columns[index-1], nil
}

// Columns returns a copy of all columns in order.
func (m *Metadata) Columns() []Column {
	out := make([]Column, len(m.columns))
	copy(out, m.columns)
	return out
}

// Find returns the 1-based index of the named column. An exact match wins
// over a case-insensitive one; among equals the first column wins.
func (m *Metadata) Find(name string) (int, error) {
	for i, c := range m.columns {
		if c.Name == name {
			return i + 1, nil
		}
	}
	for i, c := range m.columns {
		if strings.EqualFold(c.Name, name) {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}
