package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHasImplicitID(t *testing.T) {
	s := New()
	require.Equal(t, 1, s.NumberOfColumns())
	assert.Equal(t, "_id", s.Columns()[0].Name)
	assert.Equal(t, Int64, s.Columns()[0].Type)
}

func TestAddColumnRejectsReservedName(t *testing.T) {
	s := New()
	err := s.AddColumn("_id", Int32, 0)
	assert.ErrorIs(t, err, ErrReservedName)
}

func TestColumnPositionAcrossManyColumns(t *testing.T) {
	s := New()
	require.NoError(t, s.AddColumn("a", Int32, 0))
	require.NoError(t, s.AddColumn("b", Char, 255))
	require.NoError(t, s.AddColumn("c", Double, 0))
	require.NoError(t, s.AddColumn("d", Int64, 0))
	require.NoError(t, s.AddColumn("e", Float, 0))

	assert.Equal(t, 0, s.ColumnPosition("_id"))
	assert.Equal(t, 4, s.ColumnPosition("d"))
	assert.Equal(t, -1, s.ColumnPosition("missing"))
}

func TestSizeIsSumOfColumnWidths(t *testing.T) {
	s := New() // _id: 8 bytes
	require.NoError(t, s.AddColumn("name", Char, 9))   // 10 bytes
	require.NoError(t, s.AddColumn("grade", Int32, 0)) // 4 bytes
	assert.EqualValues(t, 8+10+4, s.Size())
}

func TestImportParsesLinesInOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alunos.schema")
	content := "name:char:255\ngrade:int32\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Import(path)
	require.NoError(t, err)
	require.Equal(t, 3, s.NumberOfColumns())
	assert.Equal(t, "name", s.Columns()[1].Name)
	assert.Equal(t, Char, s.Columns()[1].Type)
	assert.EqualValues(t, 255, s.Columns()[1].ArraySize)
	assert.Equal(t, "grade", s.Columns()[2].Name)
	assert.Equal(t, Int32, s.Columns()[2].Type)
}

func TestImportRejectsUnknownType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.schema")
	require.NoError(t, os.WriteFile(path, []byte("x:blob\n"), 0o644))

	_, err := Import(path)
	assert.ErrorIs(t, err, ErrParse)
}
