package scanner

import (
	"context"
	"io"
	"strings"

	"github.com/beltran/gohive"
	"github.com/pkg/errors"
)

// hiveCursor is the part of *gohive.Cursor the scanner uses.
type hiveCursor interface {
	HasMore(ctx context.Context) bool
	RowMap(ctx context.Context) map[string]any
	Error() error
	Close()
	Description() [][]string
}

// hiveRowsScanner reads rows through RowMap, which keeps NULLs as nil and
// does not need typed destinations. keys holds the description name of
// each column, in column order.
type hiveRowsScanner struct {
	cursor  hiveCursor
	ctx     context.Context
	columns []Column
	keys    []string
	dup     string
}

// FromHiveCursor adapts a gohive cursor that has already executed a query.
// Every fetch is bound to ctx.
func FromHiveCursor(cursor *gohive.Cursor, ctx context.Context) Rows {
	return fromHive(cursor, ctx)
}

func fromHive(cursor hiveCursor, ctx context.Context) *hiveRowsScanner {
	description := cursor.Description()
	h := &hiveRowsScanner{
		cursor:  cursor,
		ctx:     ctx,
		columns: hiveColumns(description),
	}
	seen := make(map[string]bool, len(description))
	for _, d := range description {
		if len(d) == 0 {
			continue
		}
		if seen[d[0]] && h.dup == "" {
			h.dup = d[0]
		}
		seen[d[0]] = true
		h.keys = append(h.keys, d[0])
	}
	return h
}

func (h *hiveRowsScanner) Exhausted() bool {
	return !h.cursor.HasMore(h.ctx)
}

func (h *hiveRowsScanner) Next() ([]any, error) {
	if !h.cursor.HasMore(h.ctx) {
		if err := h.cursor.Error(); err != nil {
			return nil, errors.Wrap(err, "hive fetch")
		}
		return nil, io.EOF
	}
	if h.dup != "" {
		return nil, errors.Errorf("hive fetch: duplicate column name %q", h.dup)
	}
	m := h.cursor.RowMap(h.ctx)
	if err := h.cursor.Error(); err != nil {
		return nil, errors.Wrap(err, "hive fetch")
	}
	if m == nil {
		return nil, errors.New("hive fetch: row does not match the result description")
	}
	row := make([]any, len(h.keys))
	for i, key := range h.keys {
		row[i] = m[key]
	}
	return row, nil
}

func (h *hiveRowsScanner) Columns() []Column {
	return h.columns
}

func (h *hiveRowsScanner) Driver() string {
	return "gohive"
}

// Close releases the underlying cursor and reports any error raised while
// resetting its operation.
func (h *hiveRowsScanner) Close() error {
	h.cursor.Close()
	if err := h.cursor.Error(); err != nil {
		return errors.Wrap(err, "hive close")
	}
	return nil
}

// hiveColumns converts a gohive description, where each entry is
// [name, type] and the name may be qualified as "table.column".
func hiveColumns(description [][]string) []Column {
	var columns []Column
	for _, c := range description {
		if len(c) == 0 {
			continue
		}
		var col hiveColumn
		col.name = c[0]
		if len(c) >= 2 {
			col.hiveType = c[1]
		}
		if table, name, ok := strings.Cut(col.name, "."); ok {
			col.table = table
			col.name = name
		}
		col.hiveType = strings.TrimSuffix(col.hiveType, "_TYPE")
		columns = append(columns, &col)
	}
	return columns
}

type hiveColumn struct {
	table    string
	name     string
	hiveType string
}

func (c *hiveColumn) Schema() string {
	return ""
}

func (c *hiveColumn) Table() string {
	return c.table
}

func (c *hiveColumn) Name() string {
	return c.name
}

func (c *hiveColumn) DatabaseTypeName() string {
	return c.hiveType
}
