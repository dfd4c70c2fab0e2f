package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minirel/schema"
	"minirel/table"
)

func newPopulatedTable(t *testing.T) *table.Table {
	t.Helper()
	dir := t.TempDir()
	tbl, err := table.Open(dir, "t")
	require.NoError(t, err)
	s := schema.New()
	require.NoError(t, s.AddColumn("grade", schema.Int32, 0))
	require.NoError(t, tbl.SetSchema(s))
	for i := 0; i < 50; i++ {
		_, err := tbl.Insert([]string{"1"})
		require.NoError(t, err)
	}
	t.Cleanup(func() { tbl.Close() })
	return tbl
}

func TestPointLookupsReturnsAllFivePaths(t *testing.T) {
	tbl := newPopulatedTable(t)
	results, err := PointLookups(tbl, 25)
	require.NoError(t, err)
	require.Len(t, results, 5)
	for _, r := range results {
		assert.True(t, r.Found, r.Name)
	}
}

func TestRangeQueriesReturnsAllFivePaths(t *testing.T) {
	tbl := newPopulatedTable(t)
	results, err := RangeQueries(tbl, 10, 15)
	require.NoError(t, err)
	require.Len(t, results, 5)
	for _, r := range results {
		assert.True(t, r.Found, r.Name)
	}
}

func TestJoinAlgorithmsReturnsAllThree(t *testing.T) {
	tbl := newPopulatedTable(t)
	results, err := JoinAlgorithms(tbl, "_id", tbl, "_id")
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.True(t, r.Found, r.Name)
	}
}
