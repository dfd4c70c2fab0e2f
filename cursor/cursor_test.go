package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minirel/schema"
)

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s := schema.New()
	require.NoError(t, s.AddColumn("name", schema.Char, 9))
	require.NoError(t, s.AddColumn("grade", schema.Int32, 0))
	return s
}

func TestMoveToFirstThenNextIteratesAllRows(t *testing.T) {
	rows := [][]string{{"0", "ana", "90"}, {"1", "bob", "75"}}
	c := New(testSchema(t), rows)

	require.True(t, c.MoveToFirst())
	name, err := c.GetString("name")
	require.NoError(t, err)
	assert.Equal(t, "ana", name)

	require.True(t, c.MoveToNext())
	name, err = c.GetString("name")
	require.NoError(t, err)
	assert.Equal(t, "bob", name)

	assert.False(t, c.MoveToNext())
}

func TestMoveToFirstIsIdempotent(t *testing.T) {
	rows := [][]string{{"0", "ana", "90"}, {"1", "bob", "75"}}
	c := New(testSchema(t), rows)
	require.True(t, c.MoveToFirst())
	require.True(t, c.MoveToNext())
	require.True(t, c.MoveToFirst())

	name, err := c.GetString("name")
	require.NoError(t, err)
	assert.Equal(t, "ana", name)
}

func TestGetStringBeforeMoveToFirstFails(t *testing.T) {
	c := New(testSchema(t), [][]string{{"0", "ana", "90"}})
	_, err := c.GetString("name")
	assert.ErrorIs(t, err, ErrNoRow)
}

func TestGetColumnIndexUnknownColumn(t *testing.T) {
	c := New(testSchema(t), nil)
	assert.Equal(t, -1, c.GetColumnIndex("nope"))
}
