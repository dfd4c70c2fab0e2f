package bptree

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileInsertSearchSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idx.bt")
	f, err := Create(path, 4)
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		key := StringKey(fmt.Sprintf("%020d", i))
		require.NoError(t, f.Insert(key, int64(i*8)))
	}
	require.NoError(t, f.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	for i := 0; i < 200; i++ {
		key := StringKey(fmt.Sprintf("%020d", i))
		val, err := reopened.Search(key)
		require.NoError(t, err)
		assert.EqualValues(t, i*8, val)
	}
}

func TestFileSearchMissReturnsErrNotFoundDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idx.bt")
	f, err := Create(path, 4)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, f.Insert(StringKey(fmt.Sprintf("%020d", 1)), 10))
	_, err = f.Search(StringKey(fmt.Sprintf("%020d", 2)))
	assert.ErrorIs(t, err, ErrNotFoundDisk)
}

func TestFileInsertDuplicateFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idx.bt")
	f, err := Create(path, 4)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, f.Insert(StringKey("a"), 1))
	err = f.Insert(StringKey("a"), 2)
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestCreateRejectsSmallOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idx.bt")
	_, err := Create(path, 2)
	assert.Error(t, err)
}

func TestFileRangeScanZeroPaddedKeysOrderNumerically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idx.bt")
	f, err := Create(path, 4)
	require.NoError(t, err)
	defer f.Close()

	for i := 0; i < 30; i++ {
		require.NoError(t, f.Insert(StringKey(fmt.Sprintf("%020d", i)), int64(i)))
	}

	pairs, err := f.RangeScan(StringKey(fmt.Sprintf("%020d", 10)), StringKey(fmt.Sprintf("%020d", 15)))
	require.NoError(t, err)
	require.Len(t, pairs, 6)
	for i, p := range pairs {
		assert.EqualValues(t, 10+i, p.Value)
	}
}
