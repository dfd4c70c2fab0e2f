package heap

import "time"

// recordHeader is the per-record on-disk preface, grounded on
// original_source/table.h's RegistryHeader: a fixed 255-byte table name,
// the registry size (header + body), and an insertion timestamp.
const (
	tableNameSize = 255
	// headerSize is tableNameSize bytes of name + 4 bytes of registry_size
	// (uint32) + 8 bytes of timestamp (int64), matching the C struct's
	// packed layout field for field.
	headerSize = tableNameSize + 4 + 8
)

// HeaderSize is the fixed on-disk width of a RecordHeader, captured once
// and reused by every read/write.
const HeaderSize = headerSize

type recordHeader struct {
	tableName    [tableNameSize]byte
	registrySize uint32
	timestamp    int64
}

func newRecordHeader(tableName string, bodySize uint) recordHeader {
	var h recordHeader
	copy(h.tableName[:], tableName)
	h.registrySize = uint32(HeaderSize) + uint32(bodySize)
	h.timestamp = time.Now().Unix()
	return h
}
