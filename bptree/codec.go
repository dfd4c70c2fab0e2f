package bptree

import (
	"encoding/binary"
	"errors"
)

// Disk node wire format (one node per page, grounded on
// pranavdb/page/pageHandler.go's IndexPageCodec, but with real page-ID
// pointers instead of zero-byte placeholders):
//
//	leaf:     [type=1][numPairs u16]{[keyLen u16][key][value i64]}... [nextPage u32]
//	internal: [type=0][numKeys u16]{[keyLen u16][key]}... [numPtrs u16]{[pageID u32]}...
const (
	nodeTypeInternal = 0
	nodeTypeLeaf     = 1
)

var errPageTooSmall = errors.New("bptree: node does not fit in one page")

type diskPair struct {
	Key   StringKey
	Value int64
}

type diskLeaf struct {
	Pairs    []diskPair
	NextPage uint32 // 0 = none
}

type diskIntern struct {
	Keys     []StringKey
	Pointers []uint32 // len == len(Keys)+1
}

func encodeLeaf(n diskLeaf) ([]byte, error) {
	buf := make([]byte, 0, pageSize)
	buf = append(buf, nodeTypeLeaf)
	buf = appendUint16(buf, uint16(len(n.Pairs)))
	for _, p := range n.Pairs {
		buf = appendUint16(buf, uint16(len(p.Key)))
		buf = append(buf, []byte(p.Key)...)
		buf = appendInt64(buf, p.Value)
	}
	buf = appendUint32(buf, n.NextPage)
	if len(buf) > pageSize {
		return nil, errPageTooSmall
	}
	out := make([]byte, pageSize)
	copy(out, buf)
	return out, nil
}

func decodeLeaf(data []byte) (diskLeaf, error) {
	if len(data) < 1 || data[0] != nodeTypeLeaf {
		return diskLeaf{}, errors.New("bptree: not a leaf page")
	}
	off := 1
	numPairs, off2 := readUint16(data, off)
	off = off2
	pairs := make([]diskPair, 0, numPairs)
	for i := uint16(0); i < numPairs; i++ {
		keyLen, o := readUint16(data, off)
		off = o
		key := StringKey(data[off : off+int(keyLen)])
		off += int(keyLen)
		val, o2 := readInt64(data, off)
		off = o2
		pairs = append(pairs, diskPair{Key: key, Value: val})
	}
	next, _ := readUint32(data, off)
	return diskLeaf{Pairs: pairs, NextPage: next}, nil
}

func encodeIntern(n diskIntern) ([]byte, error) {
	buf := make([]byte, 0, pageSize)
	buf = append(buf, nodeTypeInternal)
	buf = appendUint16(buf, uint16(len(n.Keys)))
	for _, k := range n.Keys {
		buf = appendUint16(buf, uint16(len(k)))
		buf = append(buf, []byte(k)...)
	}
	buf = appendUint16(buf, uint16(len(n.Pointers)))
	for _, p := range n.Pointers {
		buf = appendUint32(buf, p)
	}
	if len(buf) > pageSize {
		return nil, errPageTooSmall
	}
	out := make([]byte, pageSize)
	copy(out, buf)
	return out, nil
}

func decodeIntern(data []byte) (diskIntern, error) {
	if len(data) < 1 || data[0] != nodeTypeInternal {
		return diskIntern{}, errors.New("bptree: not an internal page")
	}
	off := 1
	numKeys, off2 := readUint16(data, off)
	off = off2
	keys := make([]StringKey, 0, numKeys)
	for i := uint16(0); i < numKeys; i++ {
		keyLen, o := readUint16(data, off)
		off = o
		keys = append(keys, StringKey(data[off:off+int(keyLen)]))
		off += int(keyLen)
	}
	numPtrs, o := readUint16(data, off)
	off = o
	ptrs := make([]uint32, 0, numPtrs)
	for i := uint16(0); i < numPtrs; i++ {
		p, o2 := readUint32(data, off)
		off = o2
		ptrs = append(ptrs, p)
	}
	return diskIntern{Keys: keys, Pointers: ptrs}, nil
}

func nodeTypeOf(data []byte) byte {
	if len(data) == 0 {
		return nodeTypeLeaf
	}
	return data[0]
}

func appendUint16(b []byte, v uint16) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return append(b, tmp[:]...)
}

func appendUint32(b []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}

func appendInt64(b []byte, v int64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(v))
	return append(b, tmp[:]...)
}

func readUint16(b []byte, off int) (uint16, int) {
	return binary.LittleEndian.Uint16(b[off : off+2]), off + 2
}

func readUint32(b []byte, off int) (uint32, int) {
	return binary.LittleEndian.Uint32(b[off : off+4]), off + 4
}

func readInt64(b []byte, off int) (int64, int) {
	return int64(binary.LittleEndian.Uint64(b[off : off+8])), off + 8
}
