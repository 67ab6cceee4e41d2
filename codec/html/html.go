// Package htmlcodec renders the rows of a cursor as a standalone HTML page
// holding one table, with column names and declared types in the header.
package htmlcodec

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"reflect"
	"strings"

	"github.com/go-data-exporter/rowcursor/cursor"
	"github.com/go-data-exporter/rowcursor/tostring"
)

type htmlCodec struct {
	customMapper      map[reflect.Type]func(any, string, cursor.Column) tostring.String
	preProcessorFunc  func(row []string) ([]string, bool)
	toStringFunc      func(v any) tostring.String
	writeHeader       bool
	writeHeaderNoData bool
	nullValue         string
}

type Option func(*htmlCodec)

func New(opts ...Option) *htmlCodec {
	cw := &htmlCodec{
		customMapper:      make(map[reflect.Type]func(any, string, cursor.Column) tostring.String),
		writeHeader:       true,
		writeHeaderNoData: true,
		toStringFunc:      tostring.ToString,
		nullValue:         `<span style="color:#aaaaaa;">[NULL]</span>`,
	}
	for _, opt := range opts {
		opt(cw)
	}
	return cw
}

func WithCustomType[T any](fn func(v T, driver string, column cursor.Column) tostring.String) Option {
	return func(cw *htmlCodec) {
		typ := reflect.TypeOf((*T)(nil)).Elem()
		if cw.customMapper == nil {
			cw.customMapper = make(map[reflect.Type]func(any, string, cursor.Column) tostring.String)
		}
		cw.customMapper[typ] = func(v any, driver string, column cursor.Column) tostring.String {
			return fn(v.(T), driver, column)
		}
	}
}

// WithPreProcessorFunc rewrites or filters each row. Cells are already
// HTML-escaped when fn sees them.
func WithPreProcessorFunc(fn func(row []string) ([]string, bool)) Option {
	return func(cw *htmlCodec) {
		cw.preProcessorFunc = fn
	}
}

func WithCustomToStringFunc(fn func(v any) tostring.String) Option {
	return func(cw *htmlCodec) {
		cw.toStringFunc = fn
	}
}

func WithHeader(writeHeader bool) Option {
	return func(cw *htmlCodec) {
		cw.writeHeader = writeHeader
	}
}

// WithCustomNULL sets the markup written for NULL cells. It is not escaped.
func WithCustomNULL(nullValue string) Option {
	return func(cw *htmlCodec) {
		cw.nullValue = nullValue
	}
}

// WithWriteHeaderWhenNoData controls whether the page and table header are
// written for a result without rows.
func WithWriteHeaderWhenNoData(writeHeaderNoData bool) Option {
	return func(cw *htmlCodec) {
		cw.writeHeaderNoData = writeHeaderNoData
	}
}

var htmlPrefix = strings.Join(strings.Fields(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>Query Result</title><style>
	body, html { margin: 0; padding: 0; }
	th { border: 1px solid #dedede; border-top: 0; border-left: 0; padding: 15px; }
	td {
	  border: 1px solid #dedede;
	  border-top: 0;
	  border-left: 0;
	  padding: 10px;
	  max-width: 700px;
	  overflow-x: auto;
	  white-space: nowrap;
	}
	p.typ { margin-top: 5px; color: #333; }
	</style></head><body><table style="width:100%;border-spacing:0px;">`), " ")

const htmlSuffix = `</table></body></html>`

// openPage writes the page prologue up to the open table, with a header
// row when head is set.
func openPage(w *bufio.Writer, cols []cursor.Column, head bool) {
	w.WriteString(htmlPrefix)
	if !head {
		return
	}
	w.WriteString(`<thead style="position:sticky;top:0;z-index:99;background:#f9f9f9;">`)
	for _, col := range cols {
		fmt.Fprintf(w, "<th><p>%s</p><p class=typ>%s</p></th>",
			html.EscapeString(col.Name), html.EscapeString(strings.ToLower(col.TypeName)))
	}
	w.WriteString(`</thead>`)
}

// Write renders the remaining rows. The page is opened before the first
// row, or up front when the header is also wanted for an empty result.
func (c *htmlCodec) Write(cur *cursor.Cursor, writer io.Writer) (err error) {
	cols := cur.Metadata().Columns()
	w := bufio.NewWriter(writer)
	headerFirst := c.writeHeader && c.writeHeaderNoData && len(cols) != 0
	if headerFirst {
		openPage(w, cols, true)
	}
	written := 0
	defer func() {
		if err == nil {
			if written != 0 {
				w.WriteString(`</tbody>`)
			}
			if written != 0 || headerFirst {
				w.WriteString(htmlSuffix)
			}
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
		row := make([]string, len(cols))
		for i := range cols {
			v, err := cur.Read(i+1, cursor.Any)
			if err != nil {
				return err
			}
			row[i] = c.toString(v, cur.Driver(), cols[i])
		}
		writeRow := true
		if c.preProcessorFunc != nil {
			row, writeRow = c.preProcessorFunc(row)
		}
		if !writeRow {
			continue
		}
		if written == 0 {
			if !headerFirst {
				openPage(w, cols, c.writeHeader)
			}
			w.WriteString(`<tbody>`)
		}
		w.WriteString(`<tr>`)
		for _, cell := range row {
			w.WriteString(`<td>` + cell + `</td>`)
		}
		w.WriteString(`</tr>`)
		written++
	}
}

func (c *htmlCodec) toString(v any, driver string, column cursor.Column) string {
	if v == nil {
		return c.nullValue
	}
	var s tostring.String
	if fn, ok := c.customMapper[reflect.TypeOf(v)]; ok {
		s = fn(v, driver, column)
	} else {
		s = c.toStringFunc(v)
	}
	if s.IsNULL {
		return c.nullValue
	}
	return html.EscapeString(s.String)
}
