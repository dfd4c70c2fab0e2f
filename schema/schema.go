// Package schema describes the ordered, typed column list of a table.
package schema

import (
	"errors"
	"fmt"
)

// ColumnType is the finite tag of a SchemaColumn.
type ColumnType int

const (
	Int32 ColumnType = iota
	Int64
	Char
	Float
	Double
	ForeignKey // stored identically to Int64; marks intent only
)

func (t ColumnType) String() string {
	switch t {
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Char:
		return "char"
	case Float:
		return "float"
	case Double:
		return "double"
	case ForeignKey:
		return "foreign_key"
	default:
		return fmt.Sprintf("ColumnType(%d)", int(t))
	}
}

var typeByName = map[string]ColumnType{
	"int32":       Int32,
	"int64":       Int64,
	"char":        Char,
	"float":       Float,
	"double":      Double,
	"foreign_key": ForeignKey,
}

// ErrParse is returned for malformed schema text or an unknown column type.
var ErrParse = errors.New("schema: parse error")

// ErrReservedName is returned when a caller tries to add a column named "_id".
var ErrReservedName = errors.New("schema: \"_id\" is reserved")

// SchemaColumn is one ordered, typed column.
type SchemaColumn struct {
	Name      string
	Type      ColumnType
	ArraySize uint
}

// Size is the on-disk width of the column: one element plus ArraySize
// additional elements — a scalar column declares ArraySize 0 and still
// occupies exactly one element's width.
func (c SchemaColumn) Size() uint {
	switch c.Type {
	case Int32, Float:
		return 4 * (c.ArraySize + 1)
	case Int64, ForeignKey, Double:
		return 8 * (c.ArraySize + 1)
	case Char:
		return 1 * (c.ArraySize + 1)
	default:
		return 0
	}
}

// Schema is an ordered sequence of SchemaColumns. The first column is
// always "_id": INT64, inserted implicitly at construction.
type Schema struct {
	cols []SchemaColumn
	size uint
	// sizeValid caches whether size has been computed; cleared whenever
	// a column is appended so Size() recomputes lazily.
	sizeValid bool
}

// New returns a Schema with only the implicit "_id" column.
func New() *Schema {
	s := &Schema{}
	s.cols = append(s.cols, SchemaColumn{Name: "_id", Type: Int64, ArraySize: 0})
	return s
}

// AddColumn appends a user column. It fails with ErrReservedName if name
// is "_id".
func (s *Schema) AddColumn(name string, typ ColumnType, arraySize uint) error {
	if name == "_id" {
		return ErrReservedName
	}
	s.cols = append(s.cols, SchemaColumn{Name: name, Type: typ, ArraySize: arraySize})
	s.sizeValid = false
	return nil
}

// Columns returns the ordered column list, "_id" first. Callers must not
// mutate the returned slice.
func (s *Schema) Columns() []SchemaColumn {
	return s.cols
}

// NumberOfColumns returns len(Columns()).
func (s *Schema) NumberOfColumns() int {
	return len(s.cols)
}

// Size is the sum of all column widths, cached after the first call.
func (s *Schema) Size() uint {
	if s.sizeValid {
		return s.size
	}
	var total uint
	for _, c := range s.cols {
		total += c.Size()
	}
	s.size = total
	s.sizeValid = true
	return total
}

// ColumnPosition returns the index of name in Columns(), or -1 if absent.
//
// The C++ original (schema.h::getColPosition) bounds its search loop by
// the cached byte size instead of the column count, so it returns -1 for
// almost every column; this is corrected here to bound on len(s.cols).
func (s *Schema) ColumnPosition(name string) int {
	for i, c := range s.cols {
		if c.Name == name {
			return i
		}
	}
	return -1
}
