// Package cursor exposes a forward-only row source through typed column
// reads.
//
// A Cursor is advanced with Next and read with Read, which converts the raw
// value of a column to a requested Target. Cursors are read-only and cannot
// be repositioned. A Cursor is not safe for concurrent use.
package cursor

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/go-data-exporter/rowcursor/scanner"
)

type state int

const (
	unstarted state = iota
	active
	exhausted
	closed
)

func (s state) String() string {
	switch s {
	case unstarted:
		return "unstarted"
	case active:
		return "active"
	case exhausted:
		return "exhausted"
	case closed:
		return "closed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// position is the cursor's place in the source. It only changes through
// the transition methods below.
type position struct {
	state state
	row   []any
	num   int
}

func (p position) canAdvance() bool {
	return p.state == unstarted || p.state == active
}

func (p position) advance(row []any) position {
	return position{state: active, row: row, num: p.num + 1}
}

func (p position) exhaust() position {
	return position{state: exhausted, num: p.num}
}

func (p position) close() position {
	return position{state: closed}
}

// Cursor is a forward-only, read-only view over a scanner.Rows.
type Cursor struct {
	source  scanner.Rows
	meta    *Metadata
	driver  string
	pos     position
	wasNull bool
	quiet   bool
	logger  *zap.Logger
}

// New creates a cursor over src. src may be nil, which yields a cursor with
// no columns and no rows. Column metadata is read from src once.
func New(src scanner.Rows, opts ...Option) *Cursor {
	c := &Cursor{
		source: src,
		logger: zap.NewNop(),
	}
	var cols []scanner.Column
	if src != nil {
		cols = src.Columns()
		c.driver = src.Driver()
	}
	c.meta = newMetadata(cols)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Metadata returns the column metadata.
func (c *Cursor) Metadata() *Metadata {
	return c.meta
}

// Driver returns the name of the source driver.
func (c *Cursor) Driver() string {
	return c.driver
}

// Source returns the underlying row source, or nil once closed.
func (c *Cursor) Source() scanner.Rows {
	return c.source
}

// Row returns the 1-based number of the current row, or 0 when there is none.
func (c *Cursor) Row() int {
	if c.pos.state != active {
		return 0
	}
	return c.pos.num
}

// WasNull reports whether the last value read was NULL.
func (c *Cursor) WasNull() bool {
	return c.wasNull
}

// HasMore reports whether the source may still yield rows. It never
// consumes a row.
func (c *Cursor) HasMore() bool {
	return c.source != nil && c.pos.canAdvance() && !c.source.Exhausted()
}

// Next advances to the next row. It returns false once the source is
// exhausted or the cursor is closed, and keeps returning false afterwards.
// Only a bare io.EOF from the source means exhaustion; any other error,
// including one wrapping io.EOF, is returned as a *DataAccessError.
func (c *Cursor) Next() (bool, error) {
	if c.source == nil || !c.pos.canAdvance() {
		if c.pos.state != closed {
			c.pos = c.pos.exhaust()
		}
		c.logger.Debug("no more rows", zap.Stringer("state", c.pos.state))
		return false, nil
	}
	row, err := c.source.Next()
	if err == io.EOF {
		c.pos = c.pos.exhaust()
		c.logger.Debug("row source exhausted", zap.Int("rows", c.pos.num))
		return false, nil
	}
	if err != nil {
		c.logger.Debug("fetching row failed", zap.Int("row", c.pos.num+1), zap.Error(err))
		return false, &DataAccessError{Op: "next", Row: c.pos.num + 1, Err: err}
	}
	c.pos = c.pos.advance(row)
	c.logger.Debug("fetched row", zap.Int("row", c.pos.num), zap.Int("columns", len(row)))
	return true, nil
}

// Read returns the value of the 1-based column index of the current row,
// converted to target. A NULL value, or a read without a current row,
// returns nil and sets WasNull.
//
// Any and Text reads never fail on a non-null value. Other targets fail with
// a *DataAccessError wrapping a *CastError when the value does not fit,
// unless the cursor is quiet, in which case nil is returned.
func (c *Cursor) Read(index int, target Target) (any, error) {
	if ce := c.logger.Check(zap.DebugLevel, "reading value"); ce != nil {
		ce.Write(zap.Int("row", c.Row()), zap.Int("column", index), zap.Stringer("target", target))
	}
	if c.pos.state != active {
		c.wasNull = true
		return nil, nil
	}
	row := c.pos.row
	if index < 1 || index > len(row) {
		return nil, &DataAccessError{
			Op:     "read",
			Row:    c.pos.num,
			Column: index,
			Err:    fmt.Errorf("%w: %d of %d", ErrColumnIndex, index, len(row)),
		}
	}
	raw := row[index-1]
	if isNull(raw) {
		c.wasNull = true
		c.logger.Debug("read NULL", zap.Int("row", c.pos.num), zap.Int("column", index))
		return nil, nil
	}
	c.wasNull = false

	v, err := coerce(raw, target)
	if err != nil {
		c.logger.Warn("cannot convert value",
			zap.Int("row", c.pos.num),
			zap.Int("column", index),
			zap.Stringer("target", target),
			zap.Any("raw", raw),
			zap.Error(err),
		)
		if c.quiet {
			return nil, nil
		}
		return nil, &DataAccessError{Op: "read", Row: c.pos.num, Column: index, Err: err}
	}
	if ce := c.logger.Check(zap.DebugLevel, "read value"); ce != nil {
		ce.Write(zap.Int("row", c.pos.num), zap.Int("column", index), zap.Any("raw", raw), zap.Any("converted", v))
	}
	return v, nil
}

// ReadColumn is Read with the column resolved by name.
func (c *Cursor) ReadColumn(name string, target Target) (any, error) {
	index, err := c.meta.Find(name)
	if err != nil {
		return nil, err
	}
	return c.Read(index, target)
}

// Update always fails: cursors are read-only.
func (c *Cursor) Update(index int, value any) error {
	return fmt.Errorf("update column %d: %w", index, ErrNotSupported)
}

// MoveTo always fails: cursors only move forward through Next.
func (c *Cursor) MoveTo(offset int, relative bool) error {
	if relative {
		return fmt.Errorf("move by %d rows: %w", offset, ErrNotSupported)
	}
	return fmt.Errorf("move to row %d: %w", offset, ErrNotSupported)
}

// Close releases the source and the current row. Sources implementing
// io.Closer are closed. Calling Close again is a no-op.
func (c *Cursor) Close() error {
	if c.pos.state == closed {
		return nil
	}
	src := c.source
	c.source = nil
	c.pos = c.pos.close()
	c.logger.Debug("cursor closed")
	if closer, ok := src.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return &DataAccessError{Op: "close", Err: err}
		}
	}
	return nil
}

// Value reads the 1-based column index as T. ok is false when the value is
// NULL, there is no current row, or a quiet cursor could not convert it.
func Value[T any](c *Cursor, index int) (v T, ok bool, err error) {
	raw, err := c.Read(index, TargetOf[T]())
	if err != nil || raw == nil {
		return v, false, err
	}
	v, ok = raw.(T)
	return v, ok, nil
}
