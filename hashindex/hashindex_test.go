package hashindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupReturnsOffsetForKnownID(t *testing.T) {
	idx := New(10)
	idx.Insert(5, 500)
	idx.Insert(6, 600)

	assert.Equal(t, []int64{500}, idx.Lookup(5))
	assert.Nil(t, idx.Lookup(99))
}

func TestLookupReturnsAllOffsetsForDuplicateKey(t *testing.T) {
	idx := New(4)
	idx.Insert(1, 10)
	idx.Insert(1, 20)
	idx.Insert(1, 30)

	assert.ElementsMatch(t, []int64{10, 20, 30}, idx.Lookup(1))
	assert.Equal(t, 3, idx.Len())
}

func TestBuildFromEntries(t *testing.T) {
	idx := Build([]Entry{{ID: 1, Offset: 10}, {ID: 2, Offset: 20}, {ID: 1, Offset: 11}})
	assert.ElementsMatch(t, []int64{10, 11}, idx.Lookup(1))
	assert.Equal(t, []int64{20}, idx.Lookup(2))
}
