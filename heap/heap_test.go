package heap

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minirel/codec"
	"minirel/schema"
)

func newTestSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s := schema.New()
	require.NoError(t, s.AddColumn("name", schema.Char, 9))
	require.NoError(t, s.AddColumn("grade", schema.Int32, 0))
	return s
}

func TestAppendThenGetRowRoundTrips(t *testing.T) {
	s := newTestSchema(t)
	path := filepath.Join(t.TempDir(), "alunos.dat")
	h, err := Open(path, "alunos", s)
	require.NoError(t, err)
	defer h.Close()

	body, err := codec.EncodeRow(s.Columns(), []string{"0", "ana", "90"})
	require.NoError(t, err)

	offset, err := h.AppendRecord(body)
	require.NoError(t, err)
	assert.EqualValues(t, 0, offset)

	row, err := h.GetRow(offset)
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "ana", "90"}, row)
}

func TestGetRowPastEndIsEOF(t *testing.T) {
	s := newTestSchema(t)
	h, err := Open(filepath.Join(t.TempDir(), "t.dat"), "t", s)
	require.NoError(t, err)
	defer h.Close()

	_, err = h.GetRow(0)
	assert.ErrorIs(t, err, io.EOF)
}

func TestForEachVisitsRecordsInOrder(t *testing.T) {
	s := newTestSchema(t)
	h, err := Open(filepath.Join(t.TempDir(), "t.dat"), "t", s)
	require.NoError(t, err)
	defer h.Close()

	rows := [][]string{{"0", "ana", "90"}, {"1", "bob", "75"}, {"2", "cid", "88"}}
	for _, r := range rows {
		body, err := codec.EncodeRow(s.Columns(), r)
		require.NoError(t, err)
		_, err = h.AppendRecord(body)
		require.NoError(t, err)
	}

	var seen [][]string
	require.NoError(t, h.ForEach(func(_ int64, row []string) error {
		seen = append(seen, row)
		return nil
	}))
	assert.Equal(t, rows, seen)
}

func TestGetRowDetectsRegistrySizeCorruption(t *testing.T) {
	s := newTestSchema(t)
	path := filepath.Join(t.TempDir(), "t.dat")
	h, err := Open(path, "t", s)
	require.NoError(t, err)
	defer h.Close()

	rh := newRecordHeader("t", s.Size())
	rh.registrySize = 3 // deliberately wrong
	buf := make([]byte, 0, HeaderSize+int(s.Size()))
	buf = append(buf, rh.tableName[:]...)
	var sizeBuf [4]byte
	sizeBuf[0] = byte(rh.registrySize)
	buf = append(buf, sizeBuf[:]...)
	buf = append(buf, make([]byte, 8)...) // timestamp
	buf = append(buf, make([]byte, s.Size())...)
	_, err = h.file.WriteAt(buf, 0)
	require.NoError(t, err)

	_, err = h.GetRow(0)
	assert.ErrorIs(t, err, ErrCorruption)
}

func TestOpenRejectsOverlongTableName(t *testing.T) {
	s := newTestSchema(t)
	longName := make([]byte, tableNameSize+1)
	for i := range longName {
		longName[i] = 'a'
	}
	_, err := Open(filepath.Join(t.TempDir(), "t.dat"), string(longName), s)
	assert.ErrorIs(t, err, ErrNameTooLong)
}
