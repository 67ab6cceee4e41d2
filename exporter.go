// Package rowcursor exports the rows of a typed cursor through a codec.
package rowcursor

import (
	"io"
	"os"

	"github.com/go-data-exporter/rowcursor/codec"
	"github.com/go-data-exporter/rowcursor/cursor"
)

type Exporter struct {
	cursor *cursor.Cursor
	codec  codec.Codec
}

// New returns an Exporter that drains c through codec. The caller keeps
// ownership of c and closes it.
func New(c *cursor.Cursor, codec codec.Codec) *Exporter {
	return &Exporter{
		cursor: c,
		codec:  codec,
	}
}

func (e *Exporter) Write(writer io.Writer) error {
	return e.codec.Write(e.cursor, writer)
}

func (e *Exporter) WriteFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := e.Write(f); err != nil {
		return err
	}
	return f.Close()
}
