// access.go implements five point-lookup and range-scan access paths:
// sequential file scan, sequential index scan, binary
// search on the ordered index, a cached hash lookup, and a disk-backed
// B+-tree lookup. Each is deliberately a separate method rather than a
// single parameterized "find" so benchmarking code (bench/) can time
// them independently, mirroring how pranavdb/table/table.go exposes
// getRow/sequentialScan/binarySearch as distinct entry points.
package table

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"minirel/bptree"
	"minirel/hashindex"
)

var errStopScan = fmt.Errorf("table: scan stop")

const btreeOrder = 64

// hashCache lazily builds a hashindex.Index over the table's current
// in-memory index and keeps it updated on Insert.
type hashCache struct {
	idx *hashindex.Index
}

func (c *hashCache) insert(id, offset int64) {
	c.idx.Insert(id, offset)
}

// btreeCache owns the disk-backed B+-tree file built for BTreeLookup.
type btreeCache struct {
	file *bptree.File
	path string
}

func (c *btreeCache) close() error { return c.file.Close() }

func (c *btreeCache) drop() {
	c.file.Close()
	os.Remove(c.path)
}

// formatID renders id as a fixed-width, zero-padded decimal string so
// that lexicographic order (what the B+-tree compares on) agrees with
// numeric order.
func formatID(id int64) bptree.StringKey {
	return bptree.StringKey(fmt.Sprintf("%020d", id))
}

// SequentialFileScan walks the heap file record by record until it
// finds id, the most expensive access path (O(N) heap reads).
func (t *Table) SequentialFileScan(id int64) ([]string, error) {
	if t.schema == nil {
		return nil, ErrNoSchema
	}
	want := strconv.FormatInt(id, 10)
	var found []string
	err := t.heap.ForEach(func(_ int64, row []string) error {
		if row[0] == want {
			found = row
			return errStopScan
		}
		return nil
	})
	if err != nil && err != errStopScan {
		return nil, err
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// SequentialFileScanRange returns every row with id in [min, max],
// ascending, by walking the heap file once.
func (t *Table) SequentialFileScanRange(min, max int64) ([][]string, error) {
	if t.schema == nil {
		return nil, ErrNoSchema
	}
	var out [][]string
	err := t.heap.ForEach(func(_ int64, row []string) error {
		id, perr := strconv.ParseInt(row[0], 10, 64)
		if perr != nil {
			return perr
		}
		if id < min {
			return nil
		}
		if id > max {
			return errStopScan
		}
		out = append(out, row)
		return nil
	})
	if err != nil && err != errStopScan {
		return nil, err
	}
	return out, nil
}

// SequentialIndexScan walks the in-memory index linearly, O(N) without
// any heap I/O until the match.
func (t *Table) SequentialIndexScan(id int64) ([]string, error) {
	for _, e := range t.IndexEntries() {
		if e.ID == id {
			return t.GetRow(e.Offset)
		}
	}
	return nil, ErrNotFound
}

// SequentialIndexScanRange walks the ordered index from its start,
// stopping as soon as ids exceed max.
func (t *Table) SequentialIndexScanRange(min, max int64) ([][]string, error) {
	var out [][]string
	for _, e := range t.IndexEntries() {
		if e.ID < min {
			continue
		}
		if e.ID > max {
			break
		}
		row, err := t.GetRow(e.Offset)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

// BinarySearchIndex relies on invariant I1 (the in-memory index is
// sorted ascending by id) to resolve id in O(log N).
func (t *Table) BinarySearchIndex(id int64) ([]string, error) {
	entries := t.IndexEntries()
	i := sort.Search(len(entries), func(i int) bool { return entries[i].ID >= id })
	if i == len(entries) || entries[i].ID != id {
		return nil, ErrNotFound
	}
	return t.GetRow(entries[i].Offset)
}

// BinarySearchIndexRange lower-bounds min and walks forward until id
// exceeds max.
func (t *Table) BinarySearchIndexRange(min, max int64) ([][]string, error) {
	entries := t.IndexEntries()
	i := sort.Search(len(entries), func(i int) bool { return entries[i].ID >= min })
	var out [][]string
	for ; i < len(entries) && entries[i].ID <= max; i++ {
		row, err := t.GetRow(entries[i].Offset)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

func (t *Table) ensureHashIndex() *hashindex.Index {
	if t.hashIdx == nil {
		entries := t.IndexEntries()
		hentries := make([]hashindex.Entry, len(entries))
		for i, e := range entries {
			hentries[i] = hashindex.Entry{ID: e.ID, Offset: e.Offset}
		}
		t.hashIdx = &hashCache{idx: hashindex.Build(hentries)}
	}
	return t.hashIdx.idx
}

// HashLookup builds (or reuses) an id -> offset hash table over the
// in-memory index and performs one O(1)-amortized lookup.
func (t *Table) HashLookup(id int64) ([]string, error) {
	offsets := t.ensureHashIndex().Lookup(id)
	if len(offsets) == 0 {
		return nil, ErrNotFound
	}
	return t.GetRow(offsets[0])
}

// HashLookupRange has no native ordering to exploit — a hash-backed
// range query need only match the expected set, not preserve an order —
// so it probes every id in the range individually.
func (t *Table) HashLookupRange(min, max int64) ([][]string, error) {
	idx := t.ensureHashIndex()
	var out [][]string
	for id := min; id <= max; id++ {
		offsets := idx.Lookup(id)
		if len(offsets) == 0 {
			continue
		}
		row, err := t.GetRow(offsets[0])
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

func (t *Table) btreePath() string {
	return filepath.Join(t.dataDir, t.name+"_bt.dat")
}

func (t *Table) ensureBTree() (*bptree.File, error) {
	if t.btree != nil {
		return t.btree.file, nil
	}
	path := t.btreePath()
	if _, err := os.Stat(path); err == nil {
		f, err := bptree.Open(path)
		if err != nil {
			return nil, err
		}
		t.btree = &btreeCache{file: f, path: path}
		return f, nil
	}

	f, err := bptree.Create(path, btreeOrder)
	if err != nil {
		return nil, err
	}
	for _, e := range t.IndexEntries() {
		if err := f.Insert(formatID(e.ID), e.Offset); err != nil {
			f.Close()
			os.Remove(path)
			return nil, err
		}
	}
	t.btree = &btreeCache{file: f, path: path}
	return f, nil
}

// BTreeLookup indexes every (str(id), offset) pair into a disk-backed
// B+-tree, building it on first use, then does one tree search.
func (t *Table) BTreeLookup(id int64) ([]string, error) {
	f, err := t.ensureBTree()
	if err != nil {
		return nil, err
	}
	offset, err := f.Search(formatID(id))
	if err == bptree.ErrNotFoundDisk {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t.GetRow(offset)
}

// BTreeLookupRange uses the tree's native leaf-chain range scan.
func (t *Table) BTreeLookupRange(min, max int64) ([][]string, error) {
	f, err := t.ensureBTree()
	if err != nil {
		return nil, err
	}
	pairs, err := f.RangeScan(formatID(min), formatID(max))
	if err != nil {
		return nil, err
	}
	out := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		row, err := t.GetRow(p.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}
