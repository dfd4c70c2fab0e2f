// Package bptree is a disk-backed B+-tree index: File persists each node
// as one fixed-size page in a single file, grounded on
// pranavdb/index/diskTree.go and pranavdb/index/indexFile.go's
// header-page-plus-node-pages layout. Child and sibling links are encoded
// as real page IDs (see codec.go) rather than left as zero-filled
// placeholders, so a File survives Close/Open.
//
// File only ever indexes StringKey values, matching the "(str(id), offset)"
// shape of the on-disk index.
package bptree

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// headerPage layout: [magic u32][order u32][rootPage u32][nextPage u32]
const headerPageFields = 4 * 4

// StringKey orders keys lexicographically, used for the "(str(id), offset)"
// B+-tree index.
type StringKey string

// LeafPair holds one key-value pair returned by RangeScan.
type LeafPair struct {
	Key   StringKey
	Value int64
}

// File is a disk-backed B+-tree keyed by StringKey, storing int64 values
// (heap-file byte offsets).
type File struct {
	f        *os.File
	order    int
	rootPage uint32
	nextPage uint32 // next free page id to allocate
}

// ErrNotFoundDisk is returned by Search when the key is absent.
var ErrNotFoundDisk = errors.New("bptree: key not found")

// ErrDuplicateKey is returned by Insert when the key is already present.
var ErrDuplicateKey = errors.New("bptree: duplicate key")

// Create initializes a new index file of the given order (>=3) at path.
func Create(path string, order int) (*File, error) {
	if order < 3 {
		return nil, errors.New("bptree: order must be >= 3")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("bptree: create %q: %w", path, err)
	}
	file := &File{f: f, order: order, rootPage: 1, nextPage: 2}
	rootLeaf, err := encodeLeaf(diskLeaf{})
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := file.writePage(1, rootLeaf); err != nil {
		f.Close()
		return nil, err
	}
	if err := file.writeHeader(); err != nil {
		f.Close()
		return nil, err
	}
	return file, nil
}

// Open opens an existing index file written by Create.
func Open(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("bptree: open %q: %w", path, err)
	}
	file := &File{f: f}
	if err := file.readHeader(); err != nil {
		f.Close()
		return nil, err
	}
	return file, nil
}

// Close flushes and releases the underlying file handle.
func (file *File) Close() error {
	if file.f == nil {
		return nil
	}
	err := file.f.Close()
	file.f = nil
	return err
}

func (file *File) writeHeader() error {
	var buf [pageSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], headerPageMagic)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(file.order))
	binary.LittleEndian.PutUint32(buf[8:12], file.rootPage)
	binary.LittleEndian.PutUint32(buf[12:16], file.nextPage)
	return file.writePage(0, buf[:])
}

func (file *File) readHeader() error {
	buf := make([]byte, pageSize)
	if _, err := file.f.ReadAt(buf, 0); err != nil {
		return fmt.Errorf("bptree: read header page: %w", err)
	}
	magic := binary.LittleEndian.Uint32(buf[0:4])
	if magic != headerPageMagic {
		return errors.New("bptree: bad header magic")
	}
	file.order = int(binary.LittleEndian.Uint32(buf[4:8]))
	file.rootPage = binary.LittleEndian.Uint32(buf[8:12])
	file.nextPage = binary.LittleEndian.Uint32(buf[12:16])
	return nil
}

func (file *File) pageOffset(id uint32) int64 {
	return int64(id) * pageSize
}

func (file *File) readPage(id uint32) ([]byte, error) {
	buf := make([]byte, pageSize)
	if _, err := file.f.ReadAt(buf, file.pageOffset(id)); err != nil {
		return nil, fmt.Errorf("bptree: read page %d: %w", id, err)
	}
	return buf, nil
}

func (file *File) writePage(id uint32, data []byte) error {
	if _, err := file.f.WriteAt(data, file.pageOffset(id)); err != nil {
		return fmt.Errorf("bptree: write page %d: %w", id, err)
	}
	return file.f.Sync()
}

func (file *File) allocPage() uint32 {
	id := file.nextPage
	file.nextPage++
	return id
}

// Search returns the value stored for key, or ErrNotFoundDisk.
func (file *File) Search(key StringKey) (int64, error) {
	page, err := file.descend(file.rootPage, key)
	if err != nil {
		return 0, err
	}
	leaf, err := decodeLeaf(page)
	if err != nil {
		return 0, err
	}
	for _, p := range leaf.Pairs {
		if p.Key == key {
			return p.Value, nil
		}
	}
	return 0, ErrNotFoundDisk
}

// RangeScan returns all (key, value) pairs with min <= key <= max, walking
// the on-disk leaf chain starting from the leaf that would hold min.
func (file *File) RangeScan(min, max StringKey) ([]LeafPair, error) {
	pageID, err := file.descendID(file.rootPage, min)
	if err != nil {
		return nil, err
	}
	var out []LeafPair
	for pageID != 0 {
		data, err := file.readPage(pageID)
		if err != nil {
			return nil, err
		}
		leaf, err := decodeLeaf(data)
		if err != nil {
			return nil, err
		}
		for _, p := range leaf.Pairs {
			if p.Key < min {
				continue
			}
			if p.Key > max {
				return out, nil
			}
			out = append(out, LeafPair{Key: p.Key, Value: p.Value})
		}
		pageID = leaf.NextPage
	}
	return out, nil
}

func (file *File) descend(pageID uint32, key StringKey) ([]byte, error) {
	data, err := file.readPage(pageID)
	if err != nil {
		return nil, err
	}
	if nodeTypeOf(data) == nodeTypeLeaf {
		return data, nil
	}
	intern, err := decodeIntern(data)
	if err != nil {
		return nil, err
	}
	idx := stringUpperBound(key, intern.Keys)
	return file.descend(intern.Pointers[idx], key)
}

func (file *File) descendID(pageID uint32, key StringKey) (uint32, error) {
	data, err := file.readPage(pageID)
	if err != nil {
		return 0, err
	}
	if nodeTypeOf(data) == nodeTypeLeaf {
		return pageID, nil
	}
	intern, err := decodeIntern(data)
	if err != nil {
		return 0, err
	}
	idx := stringUpperBound(key, intern.Keys)
	return file.descendID(intern.Pointers[idx], key)
}

// Insert adds key -> value, splitting pages on overflow. Order is the
// maximum number of pairs/keys a page may hold before splitting.
func (file *File) Insert(key StringKey, value int64) error {
	promoted, newRight, err := file.insertInto(file.rootPage, key, value)
	if err != nil {
		return err
	}
	if newRight == 0 {
		return nil
	}
	newRootID := file.allocPage()
	newRoot := diskIntern{Keys: []StringKey{promoted}, Pointers: []uint32{file.rootPage, newRight}}
	data, err := encodeIntern(newRoot)
	if err != nil {
		return err
	}
	if err := file.writePage(newRootID, data); err != nil {
		return err
	}
	file.rootPage = newRootID
	return file.writeHeader()
}

// insertInto returns (promotedKey, newRightPageID) when pageID split, or
// ("", 0) otherwise.
func (file *File) insertInto(pageID uint32, key StringKey, value int64) (StringKey, uint32, error) {
	data, err := file.readPage(pageID)
	if err != nil {
		return "", 0, err
	}

	if nodeTypeOf(data) == nodeTypeLeaf {
		leaf, err := decodeLeaf(data)
		if err != nil {
			return "", 0, err
		}
		idx := stringLeafUpperBound(key, leaf.Pairs)
		if idx > 0 && leaf.Pairs[idx-1].Key == key {
			return "", 0, ErrDuplicateKey
		}
		leaf.Pairs = insertDiskPairAt(leaf.Pairs, idx, diskPair{Key: key, Value: value})
		if len(leaf.Pairs) < file.order {
			enc, err := encodeLeaf(leaf)
			if err != nil {
				return "", 0, err
			}
			return "", 0, file.writePage(pageID, enc)
		}

		mid := len(leaf.Pairs) / 2
		rightID := file.allocPage()
		right := diskLeaf{Pairs: append([]diskPair{}, leaf.Pairs[mid:]...), NextPage: leaf.NextPage}
		leaf.Pairs = leaf.Pairs[:mid]
		leaf.NextPage = rightID

		leftEnc, err := encodeLeaf(leaf)
		if err != nil {
			return "", 0, err
		}
		rightEnc, err := encodeLeaf(right)
		if err != nil {
			return "", 0, err
		}
		if err := file.writePage(pageID, leftEnc); err != nil {
			return "", 0, err
		}
		if err := file.writePage(rightID, rightEnc); err != nil {
			return "", 0, err
		}
		return right.Pairs[0].Key, rightID, nil
	}

	intern, err := decodeIntern(data)
	if err != nil {
		return "", 0, err
	}
	idx := stringUpperBound(key, intern.Keys)
	promoted, newRight, err := file.insertInto(intern.Pointers[idx], key, value)
	if err != nil {
		return "", 0, err
	}
	if newRight == 0 {
		return "", 0, nil
	}

	intern.Keys = insertStringKeyAt(intern.Keys, idx, promoted)
	intern.Pointers = insertUint32At(intern.Pointers, idx+1, newRight)
	if len(intern.Keys) < file.order {
		enc, err := encodeIntern(intern)
		if err != nil {
			return "", 0, err
		}
		return "", 0, file.writePage(pageID, enc)
	}

	mid := len(intern.Keys) / 2
	midKey := intern.Keys[mid]
	rightID := file.allocPage()
	rightNode := diskIntern{
		Keys:     append([]StringKey{}, intern.Keys[mid+1:]...),
		Pointers: append([]uint32{}, intern.Pointers[mid+1:]...),
	}
	intern.Keys = intern.Keys[:mid]
	intern.Pointers = intern.Pointers[:mid+1]

	leftEnc, err := encodeIntern(intern)
	if err != nil {
		return "", 0, err
	}
	rightEnc, err := encodeIntern(rightNode)
	if err != nil {
		return "", 0, err
	}
	if err := file.writePage(pageID, leftEnc); err != nil {
		return "", 0, err
	}
	if err := file.writePage(rightID, rightEnc); err != nil {
		return "", 0, err
	}
	return midKey, rightID, nil
}

func stringUpperBound(key StringKey, keys []StringKey) int {
	lo, hi := 0, len(keys)
	for lo < hi {
		mid := (lo + hi) / 2
		if key < keys[mid] {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

func stringLeafUpperBound(key StringKey, pairs []diskPair) int {
	lo, hi := 0, len(pairs)
	for lo < hi {
		mid := (lo + hi) / 2
		if key < pairs[mid].Key {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

func insertDiskPairAt(s []diskPair, idx int, v diskPair) []diskPair {
	s = append(s, diskPair{})
	copy(s[idx+1:], s[idx:])
	s[idx] = v
	return s
}

func insertStringKeyAt(s []StringKey, idx int, v StringKey) []StringKey {
	s = append(s, "")
	copy(s[idx+1:], s[idx:])
	s[idx] = v
	return s
}

func insertUint32At(s []uint32, idx int, v uint32) []uint32 {
	s = append(s, 0)
	copy(s[idx+1:], s[idx:])
	s[idx] = v
	return s
}
