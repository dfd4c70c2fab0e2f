package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minirel/schema"
)

func TestEncodeDecodeRoundTripsEachType(t *testing.T) {
	cases := []struct {
		col   schema.SchemaColumn
		value string
	}{
		{schema.SchemaColumn{Name: "a", Type: schema.Int32}, "-42"},
		{schema.SchemaColumn{Name: "b", Type: schema.Int64}, "9000000000"},
		{schema.SchemaColumn{Name: "c", Type: schema.Float}, "3.5"},
		{schema.SchemaColumn{Name: "d", Type: schema.Double}, "2.718281828"},
		{schema.SchemaColumn{Name: "e", Type: schema.ForeignKey}, "7"},
		{schema.SchemaColumn{Name: "f", Type: schema.Char, ArraySize: 9}, "hello"},
	}
	for _, c := range cases {
		encoded, err := Encode(c.col, c.value)
		require.NoError(t, err, c.col.Name)
		require.Len(t, encoded, int(c.col.Size()), c.col.Name)

		decoded, err := Decode(c.col, encoded)
		require.NoError(t, err, c.col.Name)
		assert.Equal(t, c.value, decoded.String(), c.col.Name)
	}
}

func TestEncodeRejectsUnparseableValue(t *testing.T) {
	_, err := Encode(schema.SchemaColumn{Type: schema.Int32}, "not-a-number")
	assert.ErrorIs(t, err, ErrParse)
}

func TestCharPadsAndTrimsTrailingZeros(t *testing.T) {
	col := schema.SchemaColumn{Type: schema.Char, ArraySize: 4} // width 5
	encoded, err := Encode(col, "hi")
	require.NoError(t, err)
	assert.Len(t, encoded, 5)

	decoded, err := Decode(col, encoded)
	require.NoError(t, err)
	assert.Equal(t, "hi", decoded.String())
}

func TestEncodeRowDecodeRowRoundTrip(t *testing.T) {
	s := schema.New()
	require.NoError(t, s.AddColumn("name", schema.Char, 9))
	require.NoError(t, s.AddColumn("grade", schema.Int32, 0))

	values := []string{"0", "ana", "90"}
	body, err := EncodeRow(s.Columns(), values)
	require.NoError(t, err)
	require.Len(t, body, int(s.Size()))

	decoded, err := DecodeRow(s.Columns(), body)
	require.NoError(t, err)
	assert.Equal(t, values, decoded)
}

func TestEncodeRowRejectsMismatchedLength(t *testing.T) {
	s := schema.New()
	_, err := EncodeRow(s.Columns(), []string{"0", "extra"})
	assert.ErrorIs(t, err, ErrParse)
}
