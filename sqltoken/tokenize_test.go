package sqltoken

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelectOnly(t *testing.T) {
	q, err := Parse("SELECT a, b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, q.SelectColumns)
	assert.Empty(t, q.WhereColumns)
}

func TestParseSelectWithWhere(t *testing.T) {
	q, err := Parse("SELECT a, b WHERE c = 1, d >= 2")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, q.SelectColumns)
	assert.Equal(t, []string{"c", "d"}, q.WhereColumns)
	assert.Equal(t, []string{"=", ">="}, q.Comparators)
	assert.Equal(t, []string{"1", "2"}, q.Values)
}

func TestParseRejectsNonSelect(t *testing.T) {
	_, err := Parse("DROP TABLE t")
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestParseRejectsMalformedWhereTerm(t *testing.T) {
	_, err := Parse("SELECT a WHERE c")
	assert.ErrorIs(t, err, ErrSyntax)
}
