package jsoncodec

import (
	"io"
	"reflect"

	jsoniter "github.com/json-iterator/go"

	"github.com/go-data-exporter/rowcursor/cursor"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Metadata locates a value passed to a custom type mapper.
type Metadata struct {
	RowID  int
	Driver string
	Column cursor.Column
}

type Option func(*jsonCodec)

type jsonCodec struct {
	customMapper     map[reflect.Type]func(any, Metadata) any
	preProcessorFunc func(rowID int, row map[string]any) (map[string]any, bool)
	newlineDelimited bool
	limit            int
}

func New(opts ...Option) *jsonCodec {
	c := &jsonCodec{
		customMapper: make(map[reflect.Type]func(any, Metadata) any),
		limit:        -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithPreProcessorFunc(fn func(rowID int, row map[string]any) (map[string]any, bool)) Option {
	return func(c *jsonCodec) {
		c.preProcessorFunc = fn
	}
}

func WithNewlineDelimited(isNewlineDelimited bool) Option {
	return func(c *jsonCodec) {
		c.newlineDelimited = isNewlineDelimited
	}
}

func WithCustomType[T any](fn func(v T, metadata Metadata) any) Option {
	return func(c *jsonCodec) {
		typ := reflect.TypeOf((*T)(nil)).Elem()
		if c.customMapper == nil {
			c.customMapper = make(map[reflect.Type]func(any, Metadata) any)
		}
		c.customMapper[typ] = func(v any, metadata Metadata) any {
			return fn(v.(T), metadata)
		}
	}
}

// WithLimit caps the number of rows written. Negative means unlimited.
func WithLimit(limit int) Option {
	return func(c *jsonCodec) {
		c.limit = limit
	}
}

// Write renders the remaining rows as a JSON array, or one object per line
// when newline-delimited. Binary values are base64 encoded.
func (c *jsonCodec) Write(cur *cursor.Cursor, writer io.Writer) (err error) {
	cols := cur.Metadata().Columns()
	written := 0
	defer func() {
		if err == nil && !c.newlineDelimited && written != 0 {
			_, err = io.WriteString(writer, "\n]\n")
		}
	}()
	if c.limit == 0 {
		return nil
	}
	for {
		ok, err := cur.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		rowID := cur.Row()
		row := make(map[string]any, len(cols))
		for i, col := range cols {
			v, err := cur.Read(i+1, cursor.Any)
			if err != nil {
				return err
			}
			if fn, ok := c.customMapper[reflect.TypeOf(v)]; ok && v != nil {
				v = fn(v, Metadata{RowID: rowID, Driver: cur.Driver(), Column: col})
			}
			row[col.Name] = v
		}

		writeRow := true
		if c.preProcessorFunc != nil {
			row, writeRow = c.preProcessorFunc(rowID, row)
		}
		if !writeRow {
			continue
		}

		data, err := json.Marshal(row)
		if err != nil {
			return err
		}
		if err := c.emit(writer, data, written == 0); err != nil {
			return err
		}
		written++
		if c.limit > 0 && written >= c.limit {
			return nil
		}
	}
}

func (c *jsonCodec) emit(writer io.Writer, data []byte, first bool) error {
	if c.newlineDelimited {
		data = append(data, '\n')
	} else {
		sep := ",\n"
		if first {
			sep = "[\n"
		}
		if _, err := io.WriteString(writer, sep); err != nil {
			return err
		}
	}
	_, err := writer.Write(data)
	return err
}
