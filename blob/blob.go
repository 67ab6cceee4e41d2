// Package blob provides a read-only large-object handle over a byte buffer.
//
// A Blob keeps a reference to the buffer it was created from and only
// copies bytes when a caller asks for them.
package blob

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ErrFreed is returned by every accessor once Free has been called.
var ErrFreed = errors.New("blob: already freed")

// Blob is a lazy view over binary data.
type Blob struct {
	buf   []byte
	freed bool
}

// New wraps buf. The buffer is not copied and must not be modified while
// the Blob is in use.
func New(buf []byte) *Blob {
	return &Blob{buf: buf}
}

// Len returns the number of bytes in the blob.
func (b *Blob) Len() (int64, error) {
	if b.freed {
		return 0, ErrFreed
	}
	return int64(len(b.buf)), nil
}

// Bytes returns a copy of the whole content.
func (b *Blob) Bytes() ([]byte, error) {
	if b.freed {
		return nil, ErrFreed
	}
	return bytes.Clone(b.buf), nil
}

// Slice returns a copy of at most n bytes starting at off. Reading past the
// end is truncated; an offset beyond the end is an error.
func (b *Blob) Slice(off int64, n int) ([]byte, error) {
	if b.freed {
		return nil, ErrFreed
	}
	if off < 0 || off > int64(len(b.buf)) || n < 0 {
		return nil, fmt.Errorf("blob: invalid range off=%d n=%d for length %d", off, n, len(b.buf))
	}
	end := int64(len(b.buf))
	if int64(n) < end-off {
		end = off + int64(n)
	}
	return bytes.Clone(b.buf[off:end]), nil
}

// ReadAt implements io.ReaderAt.
func (b *Blob) ReadAt(p []byte, off int64) (int, error) {
	if b.freed {
		return 0, ErrFreed
	}
	if off < 0 {
		return 0, fmt.Errorf("blob: negative offset %d", off)
	}
	if off >= int64(len(b.buf)) {
		return 0, io.EOF
	}
	n := copy(p, b.buf[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Reader returns a reader over the whole content.
func (b *Blob) Reader() (*io.SectionReader, error) {
	if b.freed {
		return nil, ErrFreed
	}
	return io.NewSectionReader(b, 0, int64(len(b.buf))), nil
}

// Index returns the offset of the first occurrence of pattern at or after
// start, or -1 if there is none.
func (b *Blob) Index(pattern []byte, start int64) (int64, error) {
	if b.freed {
		return -1, ErrFreed
	}
	if start < 0 || start > int64(len(b.buf)) {
		return -1, nil
	}
	i := bytes.Index(b.buf[start:], pattern)
	if i < 0 {
		return -1, nil
	}
	return start + int64(i), nil
}

// Free drops the reference to the buffer. Calling it again is a no-op.
func (b *Blob) Free() error {
	b.buf = nil
	b.freed = true
	return nil
}
