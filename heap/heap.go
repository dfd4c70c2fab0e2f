// Package heap implements the append-only, schema-typed record file
// ("<table>.dat"), holding one RecordHeader followed by one fixed-width
// body per record.
//
// The file handle is held open for the lifetime of the HeapFile (grounded
// on pranavdb/memory/pageManager.go's long-lived *os.File Pager, adapted
// from fixed pages to variable-header append records), but every public
// call flushes before returning rather than leaving writes buffered.
package heap

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"minirel/codec"
	"minirel/schema"
)

// ErrCorruption is returned when a record's declared registry_size
// disagrees with HeaderSize + the schema's body size.
var ErrCorruption = errors.New("heap: corrupt record")

// ErrNameTooLong is returned by Open when tableName would overflow the
// fixed-width table-name field of a record header. The original truncates
// silently with strncpy; the table name is written into every record
// header here, so a silent truncation would corrupt it for the life of
// the file instead of failing once at open.
var ErrNameTooLong = errors.New("heap: table name too long")

// HeapFile is the append-only backing store for one table.
type HeapFile struct {
	tableName string
	path      string
	schema    *schema.Schema
	file      *os.File
}

// Open opens (creating if absent) the heap file at path for table
// tableName, described by s.
func Open(path, tableName string, s *schema.Schema) (*HeapFile, error) {
	if len(tableName) > tableNameSize {
		return nil, fmt.Errorf("heap: table name %q: %w", tableName, ErrNameTooLong)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("heap: open %q: %w", path, err)
	}
	return &HeapFile{tableName: tableName, path: path, schema: s, file: f}, nil
}

// Close flushes and releases the underlying file handle.
func (h *HeapFile) Close() error {
	if h.file == nil {
		return nil
	}
	err := h.file.Close()
	h.file = nil
	return err
}

// AppendRecord writes one record (header + body) to the end of the heap
// file and returns the byte offset of the record's header — the value
// later stored in the primary-key index.
func (h *HeapFile) AppendRecord(body []byte) (int64, error) {
	offset, err := h.file.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("heap: seek end: %w", err)
	}

	rh := newRecordHeader(h.tableName, uint(len(body)))
	buf := make([]byte, 0, HeaderSize+len(body))
	buf = append(buf, rh.tableName[:]...)
	var sizeBuf [4]byte
	binary.LittleEndian.PutUint32(sizeBuf[:], rh.registrySize)
	buf = append(buf, sizeBuf[:]...)
	var tsBuf [8]byte
	binary.LittleEndian.PutUint64(tsBuf[:], uint64(rh.timestamp))
	buf = append(buf, tsBuf[:]...)
	buf = append(buf, body...)

	if _, err := h.file.WriteAt(buf, offset); err != nil {
		return 0, fmt.Errorf("heap: write record at %d: %w", offset, err)
	}
	if err := h.file.Sync(); err != nil {
		return 0, fmt.Errorf("heap: sync: %w", err)
	}
	return offset, nil
}

// GetRow seeks to offset, reads the header, and decodes the body into its
// column-ordered string values (including "_id" at position 0).
//
// A short header read (fewer than HeaderSize bytes, including zero) is
// treated as clean end-of-file and reported as io.EOF; a short body read
// is ErrCorruption.
func (h *HeapFile) GetRow(offset int64) ([]string, error) {
	headerBuf := make([]byte, HeaderSize)
	n, err := h.file.ReadAt(headerBuf, offset)
	if n < HeaderSize {
		if err == io.EOF || err == nil {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("heap: read header at %d: %w", offset, err)
	}

	registrySize := binary.LittleEndian.Uint32(headerBuf[tableNameSize : tableNameSize+4])

	bodySize := h.schema.Size()
	if uint(registrySize) != uint(HeaderSize)+bodySize {
		return nil, fmt.Errorf("%w: offset %d declares registry_size %d, expected %d",
			ErrCorruption, offset, registrySize, uint(HeaderSize)+bodySize)
	}

	body := make([]byte, bodySize)
	n2, err := h.file.ReadAt(body, offset+HeaderSize)
	if uint(n2) != bodySize {
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("heap: read body at %d: %w", offset, err)
		}
		return nil, fmt.Errorf("%w: short body read at %d (%d of %d bytes)", ErrCorruption, offset, n2, bodySize)
	}

	return codec.DecodeRow(h.schema.Columns(), body)
}

// TableName returns the name this heap file was opened for.
func (h *HeapFile) TableName() string { return h.tableName }

// ForEach decodes every record from the start of the file in order,
// calling fn with each record's header offset and decoded row. Since
// every record in a heap file shares the same schema.Size() body width,
// successive offsets can be computed without re-reading registry_size.
// fn's error (including a sentinel used to stop early) aborts the scan.
func (h *HeapFile) ForEach(fn func(offset int64, row []string) error) error {
	recSize := int64(HeaderSize) + int64(h.schema.Size())
	for offset := int64(0); ; offset += recSize {
		row, err := h.GetRow(offset)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(offset, row); err != nil {
			return err
		}
	}
}
