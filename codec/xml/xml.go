// Package xmlcodec renders the rows of a cursor as an XML document with one
// <row> element per row and one child element per non-NULL column.
package xmlcodec

import (
	"bufio"
	"encoding/xml"
	"io"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-data-exporter/rowcursor/cursor"
	"github.com/go-data-exporter/rowcursor/tostring"
)

// Metadata locates a value passed to a custom type mapper.
type Metadata struct {
	RowID  int
	Driver string
	Column cursor.Column
}

type xmlCodec struct {
	customMapper     map[reflect.Type]func(any, Metadata) tostring.String
	preProcessorFunc func(rowID int, row []string) ([]string, bool)
	limit            int
}

type Option func(*xmlCodec)

func New(opts ...Option) *xmlCodec {
	c := &xmlCodec{
		customMapper: make(map[reflect.Type]func(any, Metadata) tostring.String),
		limit:        -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithCustomType registers a string conversion for values of type T. A
// result with IsNULL set drops the element like a NULL value.
func WithCustomType[T any](fn func(v T, metadata Metadata) tostring.String) Option {
	return func(c *xmlCodec) {
		typ := reflect.TypeOf((*T)(nil)).Elem()
		if c.customMapper == nil {
			c.customMapper = make(map[reflect.Type]func(any, Metadata) tostring.String)
		}
		c.customMapper[typ] = func(v any, metadata Metadata) tostring.String {
			return fn(v.(T), metadata)
		}
	}
}

// WithPreProcessorFunc rewrites or filters each row before it is written.
// rowID is the cursor row number.
func WithPreProcessorFunc(fn func(rowID int, row []string) ([]string, bool)) Option {
	return func(c *xmlCodec) {
		c.preProcessorFunc = fn
	}
}

// WithLimit caps the number of rows written. Negative means unlimited.
func WithLimit(limit int) Option {
	return func(c *xmlCodec) {
		c.limit = limit
	}
}

// Write renders the remaining rows. Nothing is written when no row passes
// the pre-processor.
func (c *xmlCodec) Write(cur *cursor.Cursor, writer io.Writer) (err error) {
	if c.limit == 0 {
		return nil
	}
	cols := cur.Metadata().Columns()
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = elementName(col.Name)
	}
	w := bufio.NewWriter(writer)
	written := 0
	defer func() {
		if err == nil && written > 0 {
			w.WriteString("</data>\n")
		}
		if ferr := w.Flush(); err == nil {
			err = ferr
		}
	}()
	for {
		ok, err := cur.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		rowID := cur.Row()
		row := make([]string, len(cols))
		null := make([]bool, len(cols))
		for i, col := range cols {
			v, err := cur.Read(i+1, cursor.Any)
			if err != nil {
				return err
			}
			s := c.toString(v, Metadata{RowID: rowID, Driver: cur.Driver(), Column: col})
			row[i], null[i] = s.String, s.IsNULL
		}

		writeRow := true
		if c.preProcessorFunc != nil {
			row, writeRow = c.preProcessorFunc(rowID, row)
		}
		if !writeRow {
			continue
		}
		if written == 0 {
			w.WriteString(xml.Header)
			w.WriteString("<data>\n")
		}
		w.WriteString("<row>")
		for i := range row {
			if i >= len(names) || null[i] {
				continue
			}
			w.WriteString("<" + names[i] + ">")
			if err := xml.EscapeText(w, []byte(row[i])); err != nil {
				return err
			}
			w.WriteString("</" + names[i] + ">")
		}
		w.WriteString("</row>\n")
		written++
		if c.limit > 0 && written >= c.limit {
			return nil
		}
	}
}

func (c *xmlCodec) toString(v any, metadata Metadata) tostring.String {
	if v == nil {
		return tostring.String{IsNULL: true}
	}
	if fn, ok := c.customMapper[reflect.TypeOf(v)]; ok {
		return fn(v, metadata)
	}
	return tostring.ToString(v)
}

// elementName turns a column name into a valid XML element name by
// replacing disallowed runes with '_'.
func elementName(name string) string {
	if name == "" {
		return "_"
	}
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
		default:
			r = '_'
		}
		b.WriteRune(r)
	}
	return b.String()
}
