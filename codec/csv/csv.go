package csvcodec

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/go-data-exporter/rowcursor/cursor"
	"github.com/go-data-exporter/rowcursor/tostring"
)

type csvCodec struct {
	customMapper     map[reflect.Type]func(any, string, cursor.Column) string
	preProcessorFunc func(row []string) ([]string, bool)
	delimiter        rune
	useCRLF          bool
	writeHeader      bool
	customHeader     []string
	nullValue        string
}

type Option func(*csvCodec)

func New(opts ...Option) *csvCodec {
	cw := &csvCodec{
		customMapper: make(map[reflect.Type]func(any, string, cursor.Column) string),
		delimiter:    ',',
		useCRLF:      false,
		writeHeader:  true,
	}
	for _, opt := range opts {
		opt(cw)
	}
	return cw
}

func WithCustomType[T any](fn func(v T, driver string, column cursor.Column) string) Option {
	return func(cw *csvCodec) {
		typ := reflect.TypeOf((*T)(nil)).Elem()
		if cw.customMapper == nil {
			cw.customMapper = make(map[reflect.Type]func(any, string, cursor.Column) string)
		}
		cw.customMapper[typ] = func(v any, driver string, column cursor.Column) string {
			return fn(v.(T), driver, column)
		}
	}
}

// Write reads every column of every remaining row with cursor.Any and
// writes it as CSV.
func (cs *csvCodec) Write(c *cursor.Cursor, writer io.Writer) error {
	cols := c.Metadata().Columns()
	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = col.Name
	}
	if cs.customHeader != nil {
		if len(cs.customHeader) != len(cols) {
			return errors.New("invalid header length")
		}
		header = cs.customHeader
	}
	w := csv.NewWriter(writer)
	if cs.delimiter != 0 {
		w.Comma = cs.delimiter
	}
	w.UseCRLF = cs.useCRLF
	defer w.Flush()

	if cs.writeHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for {
		ok, err := c.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		row := make([]string, len(cols))
		for i := range cols {
			v, err := c.Read(i+1, cursor.Any)
			if err != nil {
				return err
			}
			row[i] = cs.toString(v, c.Driver(), cols[i])
		}
		writeRow := true
		if cs.preProcessorFunc != nil {
			row, writeRow = cs.preProcessorFunc(row)
		}
		if writeRow {
			if err := w.Write(row); err != nil {
				return fmt.Errorf("failed to write row %d: %w", c.Row(), err)
			}
		}
	}
	w.Flush()
	return w.Error()
}

// toString uses a custom mapper registered for the value's type, the NULL
// text for nil, and tostring.ToString otherwise.
func (cs *csvCodec) toString(v any, driver string, column cursor.Column) string {
	if v == nil {
		return cs.nullValue
	}
	if fn, ok := cs.customMapper[reflect.TypeOf(v)]; ok {
		return fn(v, driver, column)
	}
	s := tostring.ToString(v)
	if s.IsNULL {
		return cs.nullValue
	}
	return s.String
}

func WithPreProcessorFunc(fn func(row []string) ([]string, bool)) Option {
	return func(cw *csvCodec) {
		cw.preProcessorFunc = fn
	}
}

func WithCustomDelimiter(delimiter rune) Option {
	return func(cw *csvCodec) {
		cw.delimiter = delimiter
	}
}

func WithCRLF(useCRLF bool) Option {
	return func(cw *csvCodec) {
		cw.useCRLF = useCRLF
	}
}

func WithHeader(writeHeader bool) Option {
	return func(cw *csvCodec) {
		cw.writeHeader = writeHeader
	}
}

func WithCustomHeader(customHeader []string) Option {
	return func(cw *csvCodec) {
		cw.customHeader = customHeader
	}
}

func WithCustomNULL(nullValue string) Option {
	return func(cw *csvCodec) {
		cw.nullValue = nullValue
	}
}
