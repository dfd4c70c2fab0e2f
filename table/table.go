// Package table binds a schema, heap file, and primary-key index into a
// single named relation: open/insert/get/import/drop plus the
// access paths layered on top in access.go.
// Grounded on pranavdb/table/table.go, whose Table struct plays the same
// binding role but stores the index as a bare slice with no corruption
// or schema-mismatch handling.
package table

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"minirel/codec"
	"minirel/heap"
	"minirel/pkindex"
	"minirel/schema"
)

// ErrNotFound is returned by every point-lookup access path on a miss.
var ErrNotFound = errors.New("table: row not found")

// ErrNoSchema is returned by operations that need a schema before one
// has been attached via SetSchema or ImportSchema.
var ErrNoSchema = errors.New("table: no schema set")

// Table is one named relation: a schema, its heap file, and its
// primary-key index, plus the lazily-built caches the access paths in
// access.go use.
type Table struct {
	name    string
	dataDir string
	schema  *schema.Schema
	heap    *heap.HeapFile
	index   *pkindex.IndexFile

	hashIdx *hashCache
	btree   *btreeCache
}

// Open loads (or creates) the index file for name under dataDir. No
// schema is attached yet; call SetSchema or ImportSchema before Insert
// or GetRow.
func Open(dataDir, name string) (*Table, error) {
	idx, err := pkindex.Open(filepath.Join(dataDir, name+"_h.dat"))
	if err != nil {
		return nil, fmt.Errorf("table: open %q: %w", name, err)
	}
	return &Table{name: name, dataDir: dataDir, index: idx}, nil
}

// SetSchema attaches s to the table and opens its heap file.
func (t *Table) SetSchema(s *schema.Schema) error {
	h, err := heap.Open(filepath.Join(t.dataDir, t.name+".dat"), t.name, s)
	if err != nil {
		return err
	}
	t.schema = s
	t.heap = h
	return nil
}

// ImportSchema parses a schema text file and attaches it via SetSchema.
func (t *Table) ImportSchema(path string) error {
	s, err := schema.Import(path)
	if err != nil {
		return err
	}
	return t.SetSchema(s)
}

// Name returns the table's name.
func (t *Table) Name() string { return t.name }

// Schema returns the attached schema, or nil if none has been set.
func (t *Table) Schema() *schema.Schema { return t.schema }

// Close releases the heap and index file handles.
func (t *Table) Close() error {
	var errs []error
	if t.heap != nil {
		if err := t.heap.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := t.index.Close(); err != nil {
		errs = append(errs, err)
	}
	if t.btree != nil {
		if err := t.btree.close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Insert assigns the next dense id, encodes rowWithoutID under that id,
// appends it to the heap file, and appends (id, offset) to the index
// file and its in-memory mirror.
func (t *Table) Insert(rowWithoutID []string) (int64, error) {
	if t.schema == nil {
		return 0, ErrNoSchema
	}
	id := int64(t.index.Len())
	values := make([]string, 0, len(rowWithoutID)+1)
	values = append(values, strconv.FormatInt(id, 10))
	values = append(values, rowWithoutID...)

	body, err := codec.EncodeRow(t.schema.Columns(), values)
	if err != nil {
		return 0, err
	}
	offset, err := t.heap.AppendRecord(body)
	if err != nil {
		return 0, err
	}
	if err := t.index.Append(id, offset); err != nil {
		return 0, err
	}
	if t.hashIdx != nil {
		t.hashIdx.insert(id, offset)
	}
	if t.btree != nil {
		// The B+-tree cache is invalidated rather than kept live: a
		// mid-insert failure would otherwise leave it ahead of the
		// index it's meant to mirror. Its file is removed too, so the
		// next BTreeLookup rebuilds it from the index.
		t.btree.drop()
		t.btree = nil
	}
	return id, nil
}

// GetRow decodes the row stored at a heap-file offset, as returned by
// any access path.
func (t *Table) GetRow(offset int64) ([]string, error) {
	if t.schema == nil {
		return nil, ErrNoSchema
	}
	return t.heap.GetRow(offset)
}

// GetRowByID resolves id directly via I1 (id equals its position in the
// dense in-memory index) and falls back to a linear search if that
// invariant somehow doesn't hold (e.g. a future implementation allowing
// deletions).
func (t *Table) GetRowByID(id int64) ([]string, error) {
	entries := t.index.Entries()
	if id >= 0 && int(id) < len(entries) && entries[id].ID == id {
		return t.GetRow(entries[id].Offset)
	}
	for _, e := range entries {
		if e.ID == id {
			return t.GetRow(e.Offset)
		}
	}
	return nil, ErrNotFound
}

// ImportCSV reads a header-skipped, comma-separated file and inserts one
// row per remaining line.
func (t *Table) ImportCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("table: open csv %q: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	first := true
	for sc.Scan() {
		if first {
			first = false
			continue
		}
		line := sc.Text()
		if line == "" {
			continue
		}
		if _, err := t.Insert(strings.Split(line, ",")); err != nil {
			return fmt.Errorf("table: insert from %q: %w", path, err)
		}
	}
	return sc.Err()
}

// Drop deletes the heap and index files and clears the in-memory index.
// The Table is unusable afterward.
func (t *Table) Drop() error {
	if t.heap != nil {
		if err := t.heap.Close(); err != nil {
			return err
		}
		if err := os.Remove(filepath.Join(t.dataDir, t.name+".dat")); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("table: remove heap file: %w", err)
		}
		t.heap = nil
	}
	if err := t.index.Drop(); err != nil {
		return err
	}
	if t.btree != nil {
		t.btree.drop()
		t.btree = nil
	}
	t.hashIdx = nil
	return nil
}

// IndexEntries exposes the in-memory (id, offset) mirror in ascending id
// order, for access paths and the join engine.
func (t *Table) IndexEntries() []pkindex.Entry {
	return t.index.Entries()
}

// ColumnValue returns row[schema.ColumnPosition(column)], the value the
// join engine compares on.
func (t *Table) ColumnValue(row []string, column string) (string, error) {
	pos := t.schema.ColumnPosition(column)
	if pos < 0 || pos >= len(row) {
		return "", fmt.Errorf("table: unknown column %q", column)
	}
	return row[pos], nil
}
