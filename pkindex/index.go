// Package pkindex implements the primary-key index file ("<table>_h.dat")
// and its in-memory mirror — a sequence of (id, offset) int64 pairs, one
// per heap record, loaded in full on open and kept append-only in
// lockstep with the heap file.
package pkindex

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Entry is one (id, offset) pair: id is the row's primary key, offset is
// the byte position of that row's RecordHeader in the heap file.
type Entry struct {
	ID     int64
	Offset int64
}

const entrySize = 16 // two int64 fields

// IndexFile is the on-disk (id, offset) pair file plus its fully-loaded,
// ordered in-memory mirror.
type IndexFile struct {
	path    string
	file    *os.File
	entries []Entry
}

// Open opens (creating if absent) the index file at path and loads its
// entries into memory. An absent file yields an empty index.
func Open(path string) (*IndexFile, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("pkindex: open %q: %w", path, err)
	}
	idx := &IndexFile{path: path, file: f}
	if err := idx.loadAll(); err != nil {
		f.Close()
		return nil, err
	}
	return idx, nil
}

func (idx *IndexFile) loadAll() error {
	if _, err := idx.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("pkindex: seek start: %w", err)
	}
	buf := make([]byte, entrySize)
	for {
		n, err := io.ReadFull(idx.file, buf)
		if n == entrySize {
			idx.entries = append(idx.entries, Entry{
				ID:     int64(binary.LittleEndian.Uint64(buf[0:8])),
				Offset: int64(binary.LittleEndian.Uint64(buf[8:16])),
			})
			continue
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			// A short trailing read is a dangling, unindexed heap tail —
			// stop cleanly rather than erroring.
			return nil
		}
		return fmt.Errorf("pkindex: read %q: %w", idx.path, err)
	}
}

// Close flushes and releases the underlying file handle.
func (idx *IndexFile) Close() error {
	if idx.file == nil {
		return nil
	}
	err := idx.file.Close()
	idx.file = nil
	return err
}

// Append writes (id, offset) to the index file and to the in-memory
// mirror in one logical step, maintaining invariant I1 (ascending,
// dense ids) as long as callers only ever append with the next dense id.
func (idx *IndexFile) Append(id, offset int64) error {
	var buf [entrySize]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(id))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(offset))

	pos, err := idx.file.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("pkindex: seek end: %w", err)
	}
	if _, err := idx.file.WriteAt(buf[:], pos); err != nil {
		return fmt.Errorf("pkindex: write: %w", err)
	}
	if err := idx.file.Sync(); err != nil {
		return fmt.Errorf("pkindex: sync: %w", err)
	}
	idx.entries = append(idx.entries, Entry{ID: id, Offset: offset})
	return nil
}

// Entries returns the in-memory index, ordered ascending by id (I1).
// Callers must not mutate the returned slice.
func (idx *IndexFile) Entries() []Entry {
	return idx.entries
}

// Len returns the number of entries, equal to the heap record count (I2).
func (idx *IndexFile) Len() int {
	return len(idx.entries)
}

// Drop deletes both the on-disk file and the in-memory mirror. The
// IndexFile is unusable afterward.
func (idx *IndexFile) Drop() error {
	if err := idx.Close(); err != nil {
		return err
	}
	idx.entries = nil
	if err := os.Remove(idx.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("pkindex: remove %q: %w", idx.path, err)
	}
	return nil
}
