// Package cursor provides a forward-only iterator over an already
// materialized result set, grounded on original_source/cursor.h's
// Cursor class. That class left every method as an empty stub; this is
// the real implementation: constructed with a schema and a result set
// of rows, with iteration that is forward-only and idempotent from
// MoveToFirst.
package cursor

import (
	"errors"

	"minirel/schema"
)

// ErrNoRow is returned by GetString/GetStringByIndex when called before
// the first MoveToFirst or after the cursor has run past the last row.
var ErrNoRow = errors.New("cursor: no current row")

// Cursor walks a fixed [][]string result set produced by a table scan or a
// join, exposing columns by name via the schema it was built with.
type Cursor struct {
	schema *schema.Schema
	rows   [][]string
	pos    int // -1 before first row, len(rows) after last
}

// New builds a Cursor over rows, described by s. rows is not copied;
// callers should not mutate it while the cursor is in use.
func New(s *schema.Schema, rows [][]string) *Cursor {
	return &Cursor{schema: s, rows: rows, pos: -1}
}

// MoveToFirst resets the cursor to just before the first row and
// advances to it. It is idempotent: calling it again always returns to
// row 0. Reports whether a row is now current.
func (c *Cursor) MoveToFirst() bool {
	c.pos = 0
	return len(c.rows) > 0
}

// MoveToNext advances to the next row. Reports whether a row is now
// current.
func (c *Cursor) MoveToNext() bool {
	if c.pos < len(c.rows) {
		c.pos++
	}
	return c.pos < len(c.rows)
}

// Len returns the number of rows in the result set.
func (c *Cursor) Len() int { return len(c.rows) }

// GetColumnIndex returns the schema position of name, or -1 if absent.
func (c *Cursor) GetColumnIndex(name string) int {
	return c.schema.ColumnPosition(name)
}

// GetStringByIndex returns the current row's value at column index idx.
func (c *Cursor) GetStringByIndex(idx int) (string, error) {
	if c.pos < 0 || c.pos >= len(c.rows) {
		return "", ErrNoRow
	}
	row := c.rows[c.pos]
	if idx < 0 || idx >= len(row) {
		return "", errors.New("cursor: column index out of range")
	}
	return row[idx], nil
}

// GetString returns the current row's value for the named column.
func (c *Cursor) GetString(columnName string) (string, error) {
	idx := c.GetColumnIndex(columnName)
	if idx < 0 {
		return "", errors.New("cursor: unknown column " + columnName)
	}
	return c.GetStringByIndex(idx)
}
