package scanner

import (
	"io"
	"reflect"

	"github.com/gocql/gocql"
	"github.com/pkg/errors"
)

// cqlIter is the part of *gocql.Iter the scanner uses.
type cqlIter interface {
	Columns() []gocql.ColumnInfo
	RowData() (gocql.RowData, error)
	Scan(dest ...any) bool
	Close() error
}

// cqlRowsScanner reads a Cassandra result through a gocql iterator.
// Values are scanned into **T destinations so that NULL cells stay nil
// instead of collapsing into zero values. gocql scans a tuple column into
// one destination per element; widths records how many destinations each
// column takes so tuples are folded back into a single []any.
type cqlRowsScanner struct {
	iter    cqlIter
	columns []Column
	widths  []int
	dests   []any
	pending []any
	done    bool
	err     error
}

// FromCQLIter adapts a gocql iterator. The iterator is closed once it is
// exhausted or when the returned Rows is closed.
func FromCQLIter(iter *gocql.Iter) (Rows, error) {
	return fromCQL(iter)
}

func fromCQL(iter cqlIter) (*cqlRowsScanner, error) {
	rd, err := iter.RowData()
	if err != nil {
		return nil, errors.Wrap(err, "read cql row layout")
	}
	infos := iter.Columns()
	s := &cqlRowsScanner{
		iter:    iter,
		columns: cqlColumns(infos),
		widths:  make([]int, len(infos)),
		dests:   make([]any, len(rd.Values)),
	}
	total := 0
	for i, info := range infos {
		s.widths[i] = 1
		if tuple, ok := info.TypeInfo.(gocql.TupleTypeInfo); ok {
			s.widths[i] = len(tuple.Elems)
		}
		total += s.widths[i]
	}
	if total != len(rd.Values) {
		return nil, errors.Errorf("cql row layout has %d values for %d column slots", len(rd.Values), total)
	}
	for i, v := range rd.Values {
		// v is a *T; reflect.New of its type yields a **T.
		s.dests[i] = reflect.New(reflect.TypeOf(v)).Interface()
	}
	return s, nil
}

func deref(dest any) any {
	if p := reflect.ValueOf(dest).Elem(); !p.IsNil() {
		return p.Elem().Interface()
	}
	return nil
}

func (s *cqlRowsScanner) fill() {
	if s.pending != nil || s.done {
		return
	}
	for _, d := range s.dests {
		reflect.ValueOf(d).Elem().SetZero()
	}
	if !s.iter.Scan(s.dests...) {
		s.done = true
		s.err = s.iter.Close()
		return
	}
	row := make([]any, len(s.columns))
	slot := 0
	for i := range s.columns {
		if _, ok := s.columns[i].(*cqlTupleColumn); ok {
			elems := make([]any, s.widths[i])
			for j := range elems {
				elems[j] = deref(s.dests[slot+j])
			}
			row[i] = elems
		} else {
			row[i] = deref(s.dests[slot])
		}
		slot += s.widths[i]
	}
	s.pending = row
}

func (s *cqlRowsScanner) Exhausted() bool {
	s.fill()
	return s.done
}

func (s *cqlRowsScanner) Next() ([]any, error) {
	s.fill()
	if s.done {
		if s.err != nil {
			return nil, errors.Wrap(s.err, "cql fetch")
		}
		return nil, io.EOF
	}
	row := s.pending
	s.pending = nil
	return row, nil
}

func (s *cqlRowsScanner) Columns() []Column {
	return s.columns
}

func (s *cqlRowsScanner) Driver() string {
	return "gocql"
}

// Close closes the iterator if it is still open.
func (s *cqlRowsScanner) Close() error {
	if s.done {
		return nil
	}
	s.done = true
	s.pending = nil
	return s.iter.Close()
}

// cqlTupleColumn marks a tuple column, whose raw value is a []any holding
// one entry per element.
type cqlTupleColumn struct {
	Column
}

func cqlColumns(infos []gocql.ColumnInfo) []Column {
	columns := make([]Column, 0, len(infos))
	for _, info := range infos {
		typeName := ""
		if info.TypeInfo != nil {
			typeName = info.TypeInfo.Type().String()
		}
		col := NewColumn(info.Keyspace, info.Table, info.Name, typeName)
		if _, ok := info.TypeInfo.(gocql.TupleTypeInfo); ok {
			col = &cqlTupleColumn{Column: col}
		}
		columns = append(columns, col)
	}
	return columns
}
