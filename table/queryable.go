package table

import (
	"minirel/pkindex"
	"minirel/schema"
)

// Queryable is a minimal read surface of a relation, grounded on
// original_source/queryable.h's Queryable interface
// (getRow/getRowById/getSchema/getHeader). *Table satisfies it directly.
// join.Join and bench take *table.Table rather than this interface, and
// cursor.Cursor is built from a schema and rows, not from a Queryable.
type Queryable interface {
	GetRow(offset int64) ([]string, error)
	GetRowByID(id int64) ([]string, error)
	Schema() *schema.Schema
	IndexEntries() []pkindex.Entry
}

var _ Queryable = (*Table)(nil)
