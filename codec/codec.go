// Package codec renders the rows of a cursor.
package codec

import (
	"io"

	csvcodec "github.com/go-data-exporter/rowcursor/codec/csv"
	htmlcodec "github.com/go-data-exporter/rowcursor/codec/html"
	jsoncodec "github.com/go-data-exporter/rowcursor/codec/json"
	xmlcodec "github.com/go-data-exporter/rowcursor/codec/xml"
	"github.com/go-data-exporter/rowcursor/cursor"
)

// Codec writes every remaining row of a cursor to a writer.
type Codec interface {
	Write(c *cursor.Cursor, writer io.Writer) error
}

func JSON(opts ...jsoncodec.Option) Codec {
	return jsoncodec.New(opts...)
}

func CSV(opts ...csvcodec.Option) Codec {
	return csvcodec.New(opts...)
}

func XML(opts ...xmlcodec.Option) Codec {
	return xmlcodec.New(opts...)
}

func HTML(opts ...htmlcodec.Option) Codec {
	return htmlcodec.New(opts...)
}
