// Package hashindex implements a hash table mapping primary-key id to
// heap-file offset — access path 4 of a Table. Bucketing uses SipHash-2-4
// (github.com/dchest/siphash, also used elsewhere in the wider pack for
// hash-keyed structures) over the 8 little-endian bytes of the id, rather
// than Go's builtin map, so the hash function matches the one the rest of
// the storage layer would use for any other on-disk hashed structure.
//
// Duplicate keys are supported (multimap semantics): a single id can
// have recorded more than one offset, a case a unique map gets wrong by
// silently overwriting earlier entries.
package hashindex

import (
	"encoding/binary"

	"github.com/dchest/siphash"
)

const (
	hashK0 = 0x6d696e6972656c31
	hashK1 = 0x6861736869646e78
)

// Entry is one id -> offset mapping, mirroring pkindex.Entry.
type Entry struct {
	ID     int64
	Offset int64
}

// Index is an in-memory separate-chaining hash table keyed by int64 id,
// storing all offsets recorded for that id (duplicates preserved).
type Index struct {
	buckets [][]Entry
	count   int
}

// New builds an Index sized for n expected entries.
func New(n int) *Index {
	size := nextPow2(n*2 + 1)
	if size < 8 {
		size = 8
	}
	return &Index{buckets: make([][]Entry, size)}
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func hashKey(id int64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(id))
	return siphash.Hash(hashK0, hashK1, buf[:])
}

func (idx *Index) bucketFor(id int64) int {
	return int(hashKey(id) % uint64(len(idx.buckets)))
}

// Insert adds id -> offset. Existing entries for id are kept.
func (idx *Index) Insert(id, offset int64) {
	b := idx.bucketFor(id)
	idx.buckets[b] = append(idx.buckets[b], Entry{ID: id, Offset: offset})
	idx.count++
}

// Lookup returns every offset recorded for id, in insertion order.
func (idx *Index) Lookup(id int64) []int64 {
	var out []int64
	for _, e := range idx.buckets[idx.bucketFor(id)] {
		if e.ID == id {
			out = append(out, e.Offset)
		}
	}
	return out
}

// Len returns the number of entries inserted, counting duplicates.
func (idx *Index) Len() int { return idx.count }

// Build constructs an Index from a slice of entries in one pass, the
// shape table.ensureHashIndex needs to build access path 4 lazily from
// a table's in-memory primary-key index.
func Build(entries []Entry) *Index {
	idx := New(len(entries))
	for _, e := range entries {
		idx.Insert(e.ID, e.Offset)
	}
	return idx
}
